package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/models"
)

type DashboardStats struct {
	TotalTables    int64 `json:"total_tables"`
	FreeTables     int64 `json:"free_tables"`
	OccupiedTables int64 `json:"occupied_tables"`
	BookedToday    int64 `json:"booked_today"`
	SeatedToday    int64 `json:"seated_today"`
	FinishedToday  int64 `json:"finished_today"`
	CancelledToday int64 `json:"cancelled_today"`
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Stats snapshots table occupancy and today's reservation counts for the
// dashboard view.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	var stats DashboardStats
	today := time.Now().Format(dateLayout)

	if err := s.DB.Model(&models.Table{}).Count(&stats.TotalTables).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Table{}).Where("reservation_id IS NULL").Count(&stats.FreeTables).Error; err != nil {
		return nil, err
	}
	stats.OccupiedTables = stats.TotalTables - stats.FreeTables

	counts := []struct {
		status models.ReservationStatus
		dest   *int64
	}{
		{models.StatusBooked, &stats.BookedToday},
		{models.StatusSeated, &stats.SeatedToday},
		{models.StatusFinished, &stats.FinishedToday},
		{models.StatusCancelled, &stats.CancelledToday},
	}
	for _, count := range counts {
		err := s.DB.Model(&models.Reservation{}).
			Where("reservation_date = ? AND status = ?", today, count.status).
			Count(count.dest).Error
		if err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
