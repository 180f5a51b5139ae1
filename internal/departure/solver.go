package departure

import (
	"context"
	"time"

	"truck-dispatch/internal/common"
	domainerrors "truck-dispatch/internal/errors"
)

// RoutingSource is the slice of the routing layer the solver needs.
type RoutingSource interface {
	DurationForArrival(ctx context.Context, origin, destination common.Location, arrival time.Time) (time.Duration, error)
}

// Solver computes, for a single leg, the latest departure time that still
// meets a fixed arrival deadline under current traffic conditions.
type Solver struct {
	routing RoutingSource
}

func NewSolver(routing RoutingSource) *Solver {
	return &Solver{routing: routing}
}

// SolveLeg returns targetArrival minus the traffic-aware driving duration,
// truncated to whole seconds. The routing source is queried with the arrival
// instant as a proxy for departure-time traffic.
func (s *Solver) SolveLeg(ctx context.Context, origin, destination common.Location, targetArrival time.Time) (time.Time, error) {
	dur, err := s.routing.DurationForArrival(ctx, origin, destination, targetArrival)
	if err != nil {
		return time.Time{}, domainerrors.RouteFetchFailed(err)
	}
	return targetArrival.Add(-dur.Truncate(time.Second)), nil
}
