package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"truck-dispatch/config"
	"truck-dispatch/internal/airport"
	"truck-dispatch/internal/assignment"
	"truck-dispatch/internal/auth"
	"truck-dispatch/internal/common"
	"truck-dispatch/internal/departure"
	"truck-dispatch/internal/driver"
	"truck-dispatch/internal/intersection"
	"truck-dispatch/internal/jwt"
	"truck-dispatch/internal/redis"
	pgmigrate "truck-dispatch/internal/repo/postgres"
	"truck-dispatch/internal/routing"
	"truck-dispatch/internal/traffic"
	"truck-dispatch/internal/transportation"
	"truck-dispatch/internal/trip"
	"truck-dispatch/internal/truck"
)

type AppContext struct {
	DB     *sqlx.DB
	Config *config.Config
	Redis  *goredis.Client
	Router *gin.Engine

	// Infrastructure
	JWTService       *jwt.Service
	FlightCache      *redis.FlightInfoCache
	IdempotencyStore *redis.IdempotencyStore
	RateLimiter      *redis.RateLimiter
	RoutingClient    *routing.GoogleClient
	Transportation   *transportation.Client

	TripHandler       *trip.Handler
	AssignmentHandler *assignment.Handler
	AuthHandler       *auth.Handler

	TripService       trip.Service
	AssignmentService *assignment.Service

	TripRepo   trip.Repository
	DriverRepo driver.Repository
	TruckRepo  truck.Repository

	RefreshAt assignment.ClockTime
	ClearAt   assignment.ClockTime
}

func wireApp(cfg *config.Config) (*AppContext, error) {
	// ── Postgres ──
	db, err := pgmigrate.Connect(cfg.Postgres.DSN(), pgmigrate.DefaultPoolConfig())
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	if err := pgmigrate.RunMigrationsUp(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	// ── Redis ──
	var rdb *goredis.Client
	if cfg.Redis.URL != "" {
		opts, err := goredis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis parse url: %w", err)
		}
		rdb = goredis.NewClient(opts)
	} else {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	// ── Zone and schedule ──
	zone, err := time.LoadLocation(cfg.Dispatch.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dispatch timezone: %w", err)
	}
	refreshAt, err := assignment.ParseClockTime(cfg.Dispatch.RefreshAt)
	if err != nil {
		return nil, fmt.Errorf("refresh schedule: %w", err)
	}
	clearAt, err := assignment.ParseClockTime(cfg.Dispatch.ClearAt)
	if err != nil {
		return nil, fmt.Errorf("clear schedule: %w", err)
	}

	// ── Infrastructure ──
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	flightCache := redis.NewFlightInfoCache(rdb, cfg.Dispatch.FlightCacheTTLSec)
	idempotencyStore := redis.NewIdempotencyStore(rdb, cfg.Dispatch.IdempotencyTTLSec)
	rateLimiter := redis.NewRateLimiter(rdb, cfg.RateLimiter.MaxRequests, cfg.RateLimiter.WindowSeconds)

	routingClient, err := routing.NewGoogleClient(cfg.GoogleMaps.APIKey)
	if err != nil {
		return nil, fmt.Errorf("google maps: %w", err)
	}
	transportClient := transportation.NewClient(
		cfg.Transportation.BaseURL,
		cfg.Transportation.Token,
		time.Duration(cfg.Transportation.TimeoutSec)*time.Second,
	)
	trafficClient := traffic.NewSimClient()
	parkingClient := airport.NewSimClient()
	osmClient := intersection.NewSimClient()
	batchCache := intersection.NewBatchCache()

	airportLoc := common.NewLocation(cfg.Dispatch.AirportLat, cfg.Dispatch.AirportLng)

	// ── Repositories ──
	tripRepo := trip.NewRepository()
	driverRepo := driver.NewRepository()
	truckRepo := truck.NewRepository()

	// ── Services ──
	tripService := trip.NewTripService(tripRepo, driverRepo, truckRepo, db,
		trafficClient, routingClient, parkingClient, osmClient, batchCache,
		trip.Config{
			Airport:           airportLoc,
			IntersectionCount: cfg.Trip.IntersectionCount,
			BatchSize:         cfg.Trip.BatchSize,
			DelayPenalty:      time.Duration(cfg.Trip.DelayPenaltyMin) * time.Minute,
		})

	legSolver := departure.NewSolver(routingClient)
	assignmentService := assignment.NewService(transportClient, legSolver, flightCache,
		assignment.Config{
			Airport:      airportLoc,
			Zone:         zone,
			PickupBuffer: time.Duration(cfg.Dispatch.PickupBufferMin) * time.Minute,
		})

	authService := auth.NewAuthService(jwtService)

	// ── Handlers ──
	authHandler := auth.NewHandler(authService)
	tripHandler := trip.NewHandler(tripService)
	assignmentHandler := assignment.NewHandler(assignmentService)

	return &AppContext{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Router: gin.Default(),

		JWTService:       jwtService,
		FlightCache:      flightCache,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		RoutingClient:    routingClient,
		Transportation:   transportClient,

		TripRepo:   tripRepo,
		DriverRepo: driverRepo,
		TruckRepo:  truckRepo,

		TripService:       tripService,
		AssignmentService: assignmentService,

		AuthHandler:       authHandler,
		TripHandler:       tripHandler,
		AssignmentHandler: assignmentHandler,

		RefreshAt: refreshAt,
		ClearAt:   clearAt,
	}, nil
}

func (a *AppContext) Close() {
	a.DB.Close()
	a.Redis.Close()
}

func (a *AppContext) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := map[string]string{}
	healthy := true

	if err := a.DB.PingContext(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": checks,
	})
}
