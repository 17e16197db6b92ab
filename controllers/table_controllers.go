package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/events"
	"github.com/tablebook/reservation-app/services"
	"github.com/tablebook/reservation-app/utils"
)

type TableController struct {
	Service   *services.TableService
	Seating   *services.SeatingService
	Dashboard *services.DashboardService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		Service:   services.NewTableService(db),
		Seating:   services.NewSeatingService(db),
		Dashboard: services.NewDashboardService(db),
	}
}

// Create -> add a new table
func (tc *TableController) Create(c *gin.Context) {
	var body struct {
		Data *services.TableInput `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		utils.RespondError(c, utils.Validationf("No content in request body"))
		return
	}

	table, err := tc.Service.Create(*body.Data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	events.BroadcastTableCreate(*table)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableName, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, table)
}

// List -> all tables ordered by name
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.Service.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

// Seat -> assign a booked reservation to this table
func (tc *TableController) Seat(c *gin.Context) {
	tableID, ok := paramID(c, "table_id")
	if !ok {
		utils.RespondError(c, utils.NotFoundf("table_id %s does not exist.", c.Param("table_id")))
		return
	}

	var body struct {
		Data *struct {
			ReservationID uint `json:"reservation_id"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil || body.Data.ReservationID == 0 {
		utils.RespondError(c, utils.Validationf("Request data missing or reservation_id was missing."))
		return
	}

	table, err := tc.Seating.Seat(body.Data.ReservationID, tableID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	tc.broadcastSeatingChange(table.ID)
	utils.InfoLogger.Printf("Reservation %d seated at table %s", body.Data.ReservationID, table.TableName)
	utils.RespondJSON(c, http.StatusOK, table)
}

// Finish -> release the table and finish its reservation
func (tc *TableController) Finish(c *gin.Context) {
	tableID, ok := paramID(c, "table_id")
	if !ok {
		utils.RespondError(c, utils.NotFoundf("table_id %s does not exist.", c.Param("table_id")))
		return
	}

	table, err := tc.Seating.Finish(tableID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	tc.broadcastSeatingChange(table.ID)
	utils.InfoLogger.Printf("Table %s is free again", table.TableName)
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) broadcastSeatingChange(tableID uint) {
	if table, err := tc.Service.Get(tableID); err == nil {
		events.BroadcastTableUpdate(*table)
	}
	if stats, err := tc.Dashboard.Stats(); err == nil {
		events.BroadcastDashboardUpdate(stats)
	}
}
