package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/models"
	"github.com/tablebook/reservation-app/utils"
)

func seedReservation(t *testing.T, db *gorm.DB, people int) *models.Reservation {
	t.Helper()
	svc := NewReservationService(db)
	input := validReservationInput(t)
	input.People = people
	reservation, err := svc.Create(input)
	if err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return reservation
}

func seedTable(t *testing.T, db *gorm.DB, name string, capacity int) *models.Table {
	t.Helper()
	table, err := NewTableService(db).Create(TableInput{TableName: name, Capacity: capacity})
	if err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func TestSeatThenFinishRoundTrip(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	reservation := seedReservation(t, db, 2)
	table := seedTable(t, db, "Window 1", 4)

	seated, err := seating.Seat(reservation.ID, table.ID)
	assert.NoError(t, err)
	assert.NotNil(t, seated.ReservationID)
	assert.Equal(t, reservation.ID, *seated.ReservationID)

	var current models.Reservation
	assert.NoError(t, db.First(&current, reservation.ID).Error)
	assert.Equal(t, models.StatusSeated, current.Status)

	freed, err := seating.Finish(table.ID)
	assert.NoError(t, err)
	assert.Nil(t, freed.ReservationID)

	assert.NoError(t, db.First(&current, reservation.ID).Error)
	assert.Equal(t, models.StatusFinished, current.Status)
}

func TestSeatCapacityConflictLeavesStatusUnchanged(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	reservation := seedReservation(t, db, 6)
	table := seedTable(t, db, "Bar 1", 2)

	_, err := seating.Seat(reservation.ID, table.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Contains(t, err.Error(), "capacity")

	var current models.Reservation
	assert.NoError(t, db.First(&current, reservation.ID).Error)
	assert.Equal(t, models.StatusBooked, current.Status)

	var currentTable models.Table
	assert.NoError(t, db.First(&currentTable, table.ID).Error)
	assert.Nil(t, currentTable.ReservationID)
}

func TestSeatOccupiedTableConflict(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	first := seedReservation(t, db, 2)
	second := seedReservation(t, db, 2)
	table := seedTable(t, db, "Patio 1", 4)

	_, err := seating.Seat(first.ID, table.ID)
	assert.NoError(t, err)

	_, err = seating.Seat(second.ID, table.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Contains(t, err.Error(), "occupied")

	// The losing reservation stays booked.
	var current models.Reservation
	assert.NoError(t, db.First(&current, second.ID).Error)
	assert.Equal(t, models.StatusBooked, current.Status)
}

func TestSeatRejectsNonBookedReservations(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	for _, status := range []models.ReservationStatus{
		models.StatusSeated, models.StatusFinished, models.StatusCancelled,
	} {
		reservation := seedReservation(t, db, 2)
		err := db.Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("status", status).Error
		assert.NoError(t, err)

		table := seedTable(t, db, "Booth "+string(status), 4)
		_, err = seating.Seat(reservation.ID, table.ID)
		assert.Error(t, err, "status %s should not be seatable", status)
		assert.True(t, utils.IsKind(err, utils.KindConflict))
	}
}

func TestSeatNotFound(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	table := seedTable(t, db, "Corner 1", 4)
	_, err := seating.Seat(9999, table.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	reservation := seedReservation(t, db, 2)
	_, err = seating.Seat(reservation.ID, 9999)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestFinishUnoccupiedTableConflict(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)

	table := seedTable(t, db, "Main 1", 4)
	_, err := seating.Finish(table.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Contains(t, err.Error(), "not occupied")
}

func TestFinishUnknownTable(t *testing.T) {
	seating := NewSeatingService(setupServiceDB(t))

	_, err := seating.Finish(9999)
	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestFinishedReservationCannotBeCancelled(t *testing.T) {
	db := setupServiceDB(t)
	seating := NewSeatingService(db)
	reservations := NewReservationService(db)

	reservation := seedReservation(t, db, 2)
	table := seedTable(t, db, "Main 2", 4)

	_, err := seating.Seat(reservation.ID, table.ID)
	assert.NoError(t, err)
	_, err = seating.Finish(table.ID)
	assert.NoError(t, err)

	_, err = reservations.UpdateStatus(reservation.ID, models.StatusCancelled)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "finished")
}
