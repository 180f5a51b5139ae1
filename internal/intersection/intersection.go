package intersection

import (
	"context"

	"truck-dispatch/internal/common"
	"truck-dispatch/internal/routing"
	"truck-dispatch/internal/traffic"
)

// Intersection is one point along a trip's route, numbered 1-based in route
// order. The advisory is attached lazily as the intersection is dequeued.
type Intersection struct {
	Sequence int               `json:"sequence_number"`
	Location common.Location   `json:"location"`
	Advisory *traffic.Advisory `json:"advisory,omitempty"`
}

// Source produces the ordered intersection sequence along a route.
type Source interface {
	GetIntersections(ctx context.Context, route *routing.Route, start, end common.Location, count int) ([]Intersection, error)
}
