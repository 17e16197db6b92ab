package services

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/models"
	"github.com/tablebook/reservation-app/utils"
)

const (
	dateLayout = "2006-01-02"

	// Operating window, inclusive on both ends.
	openingTime = "10:30:00"
	closingTime = "21:30:00"
)

var (
	// Zero-padded HH:MM:SS only; time.Parse would accept "9:30:00".
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

type ReservationInput struct {
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	MobileNumber    string                   `json:"mobile_number"`
	ReservationDate string                   `json:"reservation_date"`
	ReservationTime string                   `json:"reservation_time"`
	People          int                      `json:"people"`
	Status          models.ReservationStatus `json:"status"`
}

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// validateFields runs the field-level and business-rule checks shared by
// Create and Update. Status handling differs between the two and is done by
// the callers.
func validateFields(input ReservationInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", input.FirstName},
		{"last_name", input.LastName},
		{"mobile_number", input.MobileNumber},
		{"reservation_date", input.ReservationDate},
		{"reservation_time", input.ReservationTime},
	}
	for _, field := range required {
		if field.value == "" {
			return utils.Validationf("Missing '%s' property.", field.name)
		}
	}
	if input.People <= 0 {
		return utils.Validationf("people must be a number greater than 0")
	}

	date, err := time.ParseInLocation(dateLayout, input.ReservationDate, time.Local)
	if err != nil {
		return utils.Validationf("reservation_date is invalid.")
	}
	if !timePattern.MatchString(input.ReservationTime) {
		return utils.Validationf("reservation_time is invalid.")
	}
	if date.Weekday() == time.Tuesday {
		return utils.Validationf("We are closed on Tuesdays.")
	}

	// Lexical comparison is safe: the zero-padded format was just verified.
	if input.ReservationTime < openingTime || input.ReservationTime > closingTime {
		return utils.Validationf("Invalid time for reservation. Reservation must be scheduled between 10:30 AM and 9:30 PM.")
	}

	when, err := time.ParseInLocation(dateLayout+" 15:04:05", input.ReservationDate+" "+input.ReservationTime, time.Local)
	if err != nil {
		return utils.Validationf("reservation_time is invalid.")
	}
	if !when.After(time.Now()) {
		return utils.Validationf("Must be a future date.")
	}

	return nil
}

// Create validates and persists a new reservation. The stored status is
// always booked; any other initial status is rejected.
func (s *ReservationService) Create(input ReservationInput) (*models.Reservation, error) {
	if err := validateFields(input); err != nil {
		return nil, err
	}
	if input.Status != "" && input.Status != models.StatusBooked {
		return nil, utils.Validationf("Initial status cannot be %q.", input.Status)
	}

	reservation := models.Reservation{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		MobileNumber:    input.MobileNumber,
		ReservationDate: input.ReservationDate,
		ReservationTime: input.ReservationTime,
		People:          input.People,
		Status:          models.StatusBooked,
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) Get(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("Reservation with ID %d does not exist", id)
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.Order("reservation_time").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByDate returns the reservations for one calendar date, hiding finished
// ones, ordered by time of day.
func (s *ReservationService) ListByDate(date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Where("reservation_date = ? AND status <> ?", date, models.StatusFinished).
		Order("reservation_time").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// strippedMobile mirrors the punctuation the original schema stripped with
// translate(mobile_number, '() -', '') and is portable across the three
// supported drivers.
const strippedMobile = "REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), ' ', ''), '-', '')"

// Search matches reservations whose phone number contains the given
// fragment after both sides are reduced to digits.
func (s *ReservationService) Search(mobileNumber string) ([]models.Reservation, error) {
	fragment := nonDigits.ReplaceAllString(mobileNumber, "")

	var reservations []models.Reservation
	err := s.DB.
		Where(strippedMobile+" LIKE ?", "%"+fragment+"%").
		Order("reservation_date").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// Update replaces the editable fields of an existing reservation. Finished
// reservations are immutable, and a status change must be a legal
// transition.
func (s *ReservationService) Update(id uint, input ReservationInput) (*models.Reservation, error) {
	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == models.StatusFinished {
		return nil, utils.Validationf("Reservations with the current status of 'finished' cannot be modified.")
	}
	if err := validateFields(input); err != nil {
		return nil, err
	}
	if input.Status != "" && input.Status != reservation.Status {
		if !input.Status.Valid() {
			return nil, utils.Validationf("Status of %s is invalid.", input.Status)
		}
		if !reservation.Status.CanTransitionTo(input.Status) {
			return nil, utils.Validationf("Status cannot change from %q to %q.", reservation.Status, input.Status)
		}
		reservation.Status = input.Status
	}

	reservation.FirstName = input.FirstName
	reservation.LastName = input.LastName
	reservation.MobileNumber = input.MobileNumber
	reservation.ReservationDate = input.ReservationDate
	reservation.ReservationTime = input.ReservationTime
	reservation.People = input.People

	if err := s.DB.Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateStatus moves a reservation along the status state machine. Anything
// outside the legal-transition table is rejected.
func (s *ReservationService) UpdateStatus(id uint, status models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, utils.Validationf("Status of %s is invalid.", status)
	}
	if reservation.Status == models.StatusFinished {
		return nil, utils.Validationf("Reservations with the current status of 'finished' cannot be modified.")
	}
	if !reservation.Status.CanTransitionTo(status) {
		return nil, utils.Validationf("Status cannot change from %q to %q.", reservation.Status, status)
	}

	reservation.Status = status
	if err := s.DB.Model(reservation).Update("status", status).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}
