package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// FlightInfoCache stores computed flight pickup schedules (TimeDetails
// projections) keyed by assignment id. Best-effort: a miss or a redis failure
// simply forces recomputation.
type FlightInfoCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewFlightInfoCache(client *goredis.Client, ttlSeconds int) *FlightInfoCache {
	return &FlightInfoCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

func (c *FlightInfoCache) Set(ctx context.Context, assignmentID string, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal flight info: %w", err)
	}
	return c.client.Set(ctx, flightInfoKey(assignmentID), bytes, c.ttl).Err()
}

// Get unmarshals the cached entry into dst and reports whether one was found.
func (c *FlightInfoCache) Get(ctx context.Context, assignmentID string, dst any) (bool, error) {
	bytes, err := c.client.Get(ctx, flightInfoKey(assignmentID)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get flight info: %w", err)
	}

	if err := json.Unmarshal(bytes, dst); err != nil {
		return false, fmt.Errorf("unmarshal flight info: %w", err)
	}
	return true, nil
}

func flightInfoKey(assignmentID string) string {
	return fmt.Sprintf("flightinfo:%s", assignmentID)
}
