package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/controllers"
	"github.com/tablebook/reservation-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 50).RateLimit())

	reservationCtrl := controllers.NewReservationController(db)
	tableCtrl := controllers.NewTableController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/reservations", reservationCtrl.List)
	r.POST("/reservations", reservationCtrl.Create)
	r.GET("/reservations/:reservation_id", reservationCtrl.Get)
	r.PUT("/reservations/:reservation_id", reservationCtrl.Update)
	r.PUT("/reservations/:reservation_id/status", reservationCtrl.UpdateStatus)

	r.GET("/tables", tableCtrl.List)
	r.POST("/tables", tableCtrl.Create)
	r.PUT("/tables/:table_id/seat", tableCtrl.Seat)
	r.DELETE("/tables/:table_id/seat", tableCtrl.Finish)

	r.GET("/dashboard/stats", dashboardCtrl.GetStats)
	r.GET("/dashboard/ws", dashboardCtrl.Stream)

	return r
}
