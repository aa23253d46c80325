// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flota-service/internal/config"
	"flota-service/internal/db"
	authhandler "flota-service/internal/handlers/auth"
	driverhandler "flota-service/internal/handlers/driver"
	fuelhandler "flota-service/internal/handlers/fuel"
	reporthandler "flota-service/internal/handlers/report"
	triphandler "flota-service/internal/handlers/trip"
	vehiclehandler "flota-service/internal/handlers/vehicle"
	telemetryhandler "flota-service/internal/handlers/telemetry"
	"flota-service/internal/pkg/jwt"
	"flota-service/internal/pkg/session"
	"flota-service/internal/repository/postgres"
	authsvc "flota-service/internal/service/auth"
	driversvc "flota-service/internal/service/driver"
	fuelsvc "flota-service/internal/service/fuel"
	reportsvc "flota-service/internal/service/report"
	telemetrysvc "flota-service/internal/service/telemetry"
	tripsvc "flota-service/internal/service/trip"
	vehiclesvc "flota-service/internal/service/vehicle"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Server owns the HTTP server and the shared infrastructure handles.
type Server struct {
	cfg    *config.AppConfig
	logger *zap.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

func NewServer(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("jwt: %w", err)
	}

	sessions := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	driverRepo := postgres.NewDriverRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	fuelRepo := postgres.NewFuelRepository(pool)

	renderer, err := reportsvc.NewHTMLRenderer()
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	authService := authsvc.NewAuthService(driverRepo, jwtManager, sessions, rateLimiter, logger)
	driverService := driversvc.NewDriverService(driverRepo, logger)
	vehicleService := vehiclesvc.NewVehicleService(vehicleRepo, driverRepo, logger)
	tripService := tripsvc.NewTripService(tripRepo, driverRepo, vehicleRepo, logger)
	fuelService := fuelsvc.NewFuelService(fuelRepo, vehicleRepo, logger)
	reportService := reportsvc.NewReportService(tripRepo, fuelRepo, driverRepo, renderer, logger)
	telemetryService := telemetrysvc.NewTelemetryService(vehicleRepo, rateLimiter, logger)

	handlers := routerHandlers{
		auth:      authhandler.NewAuthHandler(authService),
		driver:    driverhandler.NewDriverHandler(driverService),
		vehicle:   vehiclehandler.NewVehicleHandler(vehicleService),
		trip:      triphandler.NewTripHandler(tripService),
		fuel:      fuelhandler.NewFuelHandler(fuelService),
		report:    reporthandler.NewReportHandler(reportService),
		telemetry: telemetryhandler.NewGPSHandler(telemetryService, cfg.GPSDeviceTokens),
	}

	engine := newRouter(cfg, logger, authService, handlers)

	return &Server{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Run serves until the HTTP server stops.
func (s *Server) Run() error {
	s.logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes infrastructure handles.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.pool.Close()
	if cerr := s.redis.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
