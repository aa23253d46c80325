// internal/app/router.go
package app

import (
	"net/http"

	"flota-service/internal/config"
	authhandler "flota-service/internal/handlers/auth"
	driverhandler "flota-service/internal/handlers/driver"
	fuelhandler "flota-service/internal/handlers/fuel"
	reporthandler "flota-service/internal/handlers/report"
	telemetryhandler "flota-service/internal/handlers/telemetry"
	triphandler "flota-service/internal/handlers/trip"
	vehiclehandler "flota-service/internal/handlers/vehicle"
	"flota-service/internal/middleware"
	authsvc "flota-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type routerHandlers struct {
	auth      *authhandler.AuthHandler
	driver    *driverhandler.DriverHandler
	vehicle   *vehiclehandler.VehicleHandler
	trip      *triphandler.TripHandler
	fuel      *fuelhandler.FuelHandler
	report    *reporthandler.ReportHandler
	telemetry *telemetryhandler.GPSHandler
}

func newRouter(cfg *config.AppConfig, logger *zap.Logger, authService *authsvc.AuthService, h routerHandlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// GPS devices retry on 404 but give up on 405, so method mismatches
	// must be answered correctly.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"status": "error", "message": "method not allowed"})
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Device-facing ingestion endpoint, outside the authenticated API.
	r.POST("/api/gps", h.telemetry.Ingest)

	r.POST("/auth/login", h.auth.Login)

	authed := r.Group("/", middleware.Auth(authService))
	{
		authed.POST("/auth/logout", h.auth.Logout)
		authed.GET("/auth/me", h.auth.Me)

		authed.GET("/dashboard", h.report.Dashboard)
		authed.GET("/reports", h.report.Report)
		authed.GET("/reports/fuel", h.report.FuelStats)
		authed.GET("/reports/export", h.report.Export)

		authed.GET("/drivers", h.driver.List)
		authed.GET("/drivers/:id", h.driver.Get)
		authed.GET("/vehicles", h.vehicle.List)
		authed.GET("/vehicles/:id", h.vehicle.Get)
		authed.GET("/trips", h.trip.List)
		authed.GET("/fuel", h.fuel.List)

		authed.POST("/trips", h.trip.Start)
		authed.PUT("/trips/:id/close", h.trip.Close)
		authed.POST("/fuel", h.fuel.Create)

		// Fleet state mutations are restricted to admins.
		admin := authed.Group("/", middleware.AdminOnly())
		{
			admin.POST("/drivers", h.driver.Create)
			admin.POST("/drivers/:id/disable", h.driver.Disable)
			admin.DELETE("/drivers/:id", h.driver.Delete)

			admin.POST("/vehicles", h.vehicle.Create)
			admin.PUT("/vehicles/:id/driver", h.vehicle.AssignDriver)
			admin.DELETE("/vehicles/:id", h.vehicle.Delete)

			admin.DELETE("/trips/:id", h.trip.Delete)
			admin.DELETE("/fuel/:id", h.fuel.Delete)
		}
	}

	return r
}
