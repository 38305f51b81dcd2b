package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleet-agenda-api-server/internal/api/handlers"
	"fleet-agenda-api-server/internal/socket"
	"fleet-agenda-api-server/internal/store"
)

// SetupRouter wires every handler onto /api/v1.
func SetupRouter(st *store.Store, wsHub *socket.Hub, watcher *store.Watcher) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	driverHandler := &handlers.DriverHandler{Store: st}
	vehicleHandler := &handlers.VehicleHandler{Store: st}
	trailerHandler := &handlers.TrailerHandler{Store: st}
	scheduleHandler := &handlers.ScheduleHandler{Store: st}
	reportHandler := &handlers.ReportHandler{Store: st}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Watcher: watcher}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		drivers := apiV1.Group("/drivers")
		{
			drivers.POST("/", driverHandler.CreateDriver)
			drivers.GET("/", driverHandler.GetAllDrivers)
			drivers.GET("/stats", driverHandler.GetDriverStats)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PUT("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
			drivers.PATCH("/:id/scheduling-status", driverHandler.UpdateSchedulingStatus)
			drivers.PATCH("/:id/rest-status", driverHandler.UpdateRestStatus)
		}

		vehicles := apiV1.Group("/vehicles")
		{
			vehicles.POST("/", vehicleHandler.CreateVehicle)
			vehicles.GET("/", vehicleHandler.GetAllVehicles)
			vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		trailers := apiV1.Group("/trailers")
		{
			trailers.POST("/", trailerHandler.CreateTrailer)
			trailers.GET("/", trailerHandler.GetAllTrailers)
			trailers.PUT("/:id", trailerHandler.UpdateTrailer)
			trailers.DELETE("/:id", trailerHandler.DeleteTrailer)
		}

		schedule := apiV1.Group("/schedule")
		{
			schedule.POST("/status", scheduleHandler.SaveStatus)
			schedule.POST("/cargo", scheduleHandler.SaveCargo)
			schedule.DELETE("/cargo", scheduleHandler.DeleteCargo)
			schedule.POST("/grid", scheduleHandler.Grid)
		}

		reports := apiV1.Group("/reports")
		{
			reports.GET("/folgas", reportHandler.GetFolgas)
		}
	}

	return router
}
