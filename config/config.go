package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server         ServerConfig
	JWT            JWTConfig
	Postgres       PostgresConfig
	Redis          RedisConfig
	RateLimiter    RateLimiterConfig
	CircuitBreaker CircuitBreakerConfig
	Bulkhead       BulkheadConfig
	GoogleMaps     GoogleMapsConfig
	Transportation TransportationConfig
	Dispatch       DispatchConfig
	Trip           TripConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type PostgresConfig struct {
	URL      string // DATABASE_URL takes precedence if set
	Host     string
	Port     int
	User     string
	Password string
	DB       string
	SSLMode  string
}

type RedisConfig struct {
	URL      string // REDIS_URL takes precedence if set
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	MaxRequests   int
	WindowSeconds int
}

type CircuitBreakerConfig struct {
	FailureThreshold int
	CooldownSeconds  int
}

type BulkheadConfig struct {
	LocationPool int
	MutationPool int
	ReadPool     int
}

type GoogleMapsConfig struct {
	APIKey string
}

type TransportationConfig struct {
	BaseURL    string
	Token      string
	TimeoutSec int
}

// DispatchConfig drives the daily assignment cycle and the flight-pickup
// scheduler. Times are wall-clock "HH:MM" in Timezone.
type DispatchConfig struct {
	AirportLat        float64
	AirportLng        float64
	Timezone          string
	RefreshAt         string
	ClearAt           string
	PickupBufferMin   int
	FlightCacheTTLSec int
	IdempotencyTTLSec int
}

type TripConfig struct {
	IntersectionCount int
	BatchSize         int
	DelayPenaltyMin   int
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvInt("PORT", getenvInt("SERVER_PORT", 8080)),
			ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:      getenv("JWT_SECRET", "default-secret-change-me"),
			ExpiryHours: time.Duration(getenvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		},
		Postgres: PostgresConfig{
			URL:      getenv("DATABASE_URL", ""),
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenvInt("POSTGRES_PORT", 5432),
			User:     getenv("POSTGRES_USER", "dispatch_admin"),
			Password: getenv("POSTGRES_PASSWORD", "secure_password"),
			DB:       getenv("POSTGRES_DB", "truck_dispatch"),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getenv("REDIS_URL", ""),
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenvInt("REDIS_PORT", 6379),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		RateLimiter: RateLimiterConfig{
			MaxRequests:   getenvInt("RATE_LIMIT_MAX_REQUESTS", 100),
			WindowSeconds: getenvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		CircuitBreaker: CircuitBreakerConfig{
			FailureThreshold: getenvInt("CB_FAILURE_THRESHOLD", 5),
			CooldownSeconds:  getenvInt("CB_COOLDOWN_SECONDS", 30),
		},
		Bulkhead: BulkheadConfig{
			LocationPool: getenvInt("BULKHEAD_LOCATION_POOL", 100),
			MutationPool: getenvInt("BULKHEAD_MUTATION_POOL", 50),
			ReadPool:     getenvInt("BULKHEAD_READ_POOL", 100),
		},
		GoogleMaps: GoogleMapsConfig{
			APIKey: getenv("GOOGLE_MAPS_API_KEY", ""),
		},
		Transportation: TransportationConfig{
			BaseURL:    getenv("TRANSPORTATION_BASE_URL", "http://localhost:9090"),
			Token:      getenv("TRANSPORTATION_TOKEN", ""),
			TimeoutSec: getenvInt("TRANSPORTATION_TIMEOUT_SECONDS", 10),
		},
		Dispatch: DispatchConfig{
			AirportLat:        getenvFloat("AIRPORT_LAT", 32.8998),
			AirportLng:        getenvFloat("AIRPORT_LNG", -97.0403),
			Timezone:          getenv("DISPATCH_TIMEZONE", "America/Chicago"),
			RefreshAt:         getenv("ASSIGNMENT_REFRESH_AT", "04:05"),
			ClearAt:           getenv("ASSIGNMENT_CLEAR_AT", "23:59"),
			PickupBufferMin:   getenvInt("PICKUP_BUFFER_MINUTES", 60),
			FlightCacheTTLSec: getenvInt("FLIGHT_CACHE_TTL_SECONDS", 3600),
			IdempotencyTTLSec: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		},
		Trip: TripConfig{
			IntersectionCount: getenvInt("TRIP_INTERSECTION_COUNT", 10),
			BatchSize:         getenvInt("TRIP_BATCH_SIZE", 3),
			DelayPenaltyMin:   getenvInt("TRIP_DELAY_PENALTY_MINUTES", 5),
		},
	}

	return cfg, nil
}

func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
