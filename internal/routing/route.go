package routing

import (
	"context"
	"time"

	"truck-dispatch/internal/common"
)

// Route is the outcome of a single origin→destination computation. It lives
// only in memory; trips recompute their route after any reload.
type Route struct {
	DurationSeconds int64  `json:"duration_seconds"`
	DistanceMeters  int64  `json:"distance_meters"`
	EncodedPath     string `json:"encoded_path,omitempty"`
}

func (r *Route) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

// Source computes driving routes and traffic-aware travel durations.
type Source interface {
	ComputeRoute(ctx context.Context, origin, destination common.Location) (*Route, error)
	// DurationForArrival returns the traffic-aware driving duration for a
	// departure at the given arrival instant. The arrival instant stands in
	// for departure-time traffic conditions; this is an approximation, not a
	// backward simulation.
	DurationForArrival(ctx context.Context, origin, destination common.Location, arrival time.Time) (time.Duration, error)
}
