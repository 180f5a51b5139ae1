package main

import (
	"truck-dispatch/internal/middleware"
)

func (a *AppContext) setupRoutes() {
	r := a.Router

	// ── Global Middleware (outermost → innermost) ──
	r.Use(middleware.Logger())                 // 1. Request logging
	r.Use(middleware.Recovery())               // 2. Panic recovery
	r.Use(middleware.RateLimit(a.RateLimiter)) // 3. Per-IP rate limiting
	r.Use(middleware.Auth(a.JWTService))       // 4. JWT auth (skips /auth/token)

	// ── Health (no auth, no rate limit) ──
	r.GET("/health", a.healthCheck)

	// ── Auth (no role guard, no idempotency) ──
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/token", a.AuthHandler.GenerateToken)
	}

	// ── Trucker Routes (role: trucker) ──
	api := r.Group("/api/airflow")
	api.Use(middleware.RoleGuard("trucker"))
	api.Use(middleware.CircuitBreaker(a.Config.CircuitBreaker.FailureThreshold, a.Config.CircuitBreaker.CooldownSeconds))
	{
		// Read-only assignment and trip queries
		reads := api.Group("")
		reads.Use(middleware.Bulkhead(a.Config.Bulkhead.ReadPool))
		{
			reads.GET("/todays-assignments", a.AssignmentHandler.TodaysAssignments)
			reads.GET("/driverassignment", a.AssignmentHandler.DriverAssignment)
			reads.GET("/flightinfo", a.AssignmentHandler.FlightInfo)
			reads.GET("/trips/:tripId", a.TripHandler.GetTrip)
		}

		// Location updates get their own pool (high frequency)
		location := api.Group("")
		location.Use(middleware.Bulkhead(a.Config.Bulkhead.LocationPool))
		{
			location.PUT("/trips/:tripId/location", a.TripHandler.UpdateLocation)
		}

		// Mutations get the mutation pool
		mutations := api.Group("")
		mutations.Use(middleware.Bulkhead(a.Config.Bulkhead.MutationPool))
		mutations.Use(middleware.Idempotency(a.IdempotencyStore))
		{
			mutations.POST("/scheduletowards", a.TripHandler.ScheduleTowards)
			mutations.PUT("/trips/:tripId/complete", a.TripHandler.CompleteTrip)
		}
	}
}
