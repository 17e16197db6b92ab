package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/events"
	"github.com/tablebook/reservation-app/models"
	"github.com/tablebook/reservation-app/services"
	"github.com/tablebook/reservation-app/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// List -> all reservations, or filtered by ?date= / ?mobile_number=
func (rc *ReservationController) List(c *gin.Context) {
	date := c.Query("date")
	mobile := c.Query("mobile_number")

	var (
		reservations []models.Reservation
		err          error
	)
	switch {
	case date != "":
		reservations, err = rc.Service.ListByDate(date)
	case mobile != "":
		reservations, err = rc.Service.Search(mobile)
	default:
		reservations, err = rc.Service.List()
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservations)
}

// Create -> new reservation, status always starts as booked
func (rc *ReservationController) Create(c *gin.Context) {
	var body struct {
		Data *services.ReservationInput `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		utils.RespondError(c, utils.Validationf("Please fill out the form."))
		return
	}

	reservation, err := rc.Service.Create(*body.Data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	events.BroadcastReservationCreate(*reservation)
	utils.InfoLogger.Printf("New reservation created: %d (%s %s, party of %d)",
		reservation.ID, reservation.FirstName, reservation.LastName, reservation.People)
	utils.RespondJSON(c, http.StatusCreated, reservation)
}

// Get -> detail of one reservation
func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		utils.RespondError(c, utils.NotFoundf("Reservation with ID %s does not exist", c.Param("reservation_id")))
		return
	}

	reservation, err := rc.Service.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// Update -> edit an existing reservation
func (rc *ReservationController) Update(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		utils.RespondError(c, utils.NotFoundf("Reservation with ID %s does not exist", c.Param("reservation_id")))
		return
	}

	var body struct {
		Data *services.ReservationInput `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		utils.RespondError(c, utils.Validationf("Please fill out the form."))
		return
	}

	reservation, err := rc.Service.Update(id, *body.Data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// UpdateStatus -> move a reservation along the status lifecycle
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		utils.RespondError(c, utils.NotFoundf("Reservation with ID %s does not exist", c.Param("reservation_id")))
		return
	}

	var body struct {
		Data *struct {
			Status models.ReservationStatus `json:"status"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		utils.RespondError(c, utils.Validationf("Please fill out the form."))
		return
	}

	reservation, err := rc.Service.UpdateStatus(id, body.Data.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)
	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
