package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/models"
	"github.com/tablebook/reservation-app/utils"
)

// SeatingService performs the only two operations that touch both entities:
// assigning a booked reservation to a table and releasing it again. Both run
// inside a single transaction so a half-applied assignment is never visible.
type SeatingService struct {
	DB *gorm.DB
}

func NewSeatingService(db *gorm.DB) *SeatingService {
	return &SeatingService{DB: db}
}

// Seat marks the reservation seated and occupies the table. The table is
// claimed with a conditional update on reservation_id so that two concurrent
// calls against the same free table cannot both win.
func (s *SeatingService) Seat(reservationID, tableID uint) (*models.Table, error) {
	var table models.Table

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundf("reservation_id %d not found.", reservationID)
			}
			return err
		}
		if !reservation.Status.CanTransitionTo(models.StatusSeated) {
			return utils.Conflictf("Reservation status of %s cannot be seated.", reservation.Status)
		}

		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundf("table_id %d does not exist.", tableID)
			}
			return err
		}
		if table.Capacity < reservation.People {
			return utils.Conflictf("%s does not have enough capacity for %d people.", table.TableName, reservation.People)
		}
		if table.ReservationID != nil {
			return utils.Conflictf("%s is currently occupied.", table.TableName)
		}

		claim := tx.Model(&models.Table{}).
			Where("id = ? AND reservation_id IS NULL", tableID).
			Update("reservation_id", reservationID)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			// Lost the race to a concurrent seat.
			return utils.Conflictf("%s is currently occupied.", table.TableName)
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", reservationID).
			Update("status", models.StatusSeated).Error; err != nil {
			return err
		}

		return tx.First(&table, tableID).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Finish releases the table and moves its reservation to finished.
func (s *SeatingService) Finish(tableID uint) (*models.Table, error) {
	var table models.Table

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundf("table_id %d does not exist.", tableID)
			}
			return err
		}
		if table.ReservationID == nil {
			return utils.Conflictf("table_id %d is not occupied.", tableID)
		}
		reservationID := *table.ReservationID

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", reservationID).
			Update("status", models.StatusFinished).Error; err != nil {
			return err
		}

		release := tx.Model(&models.Table{}).
			Where("id = ? AND reservation_id = ?", tableID, reservationID).
			Update("reservation_id", nil)
		if release.Error != nil {
			return release.Error
		}
		if release.RowsAffected == 0 {
			return utils.Conflictf("table_id %d is not occupied.", tableID)
		}

		return tx.First(&table, tableID).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
