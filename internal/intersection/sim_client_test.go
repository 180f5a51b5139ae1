package intersection

import (
	"context"
	"math"
	"testing"

	"truck-dispatch/internal/common"
)

func TestSimClient_GeneratesOrderedIntersections(t *testing.T) {
	c := NewSimClient()
	start := common.NewLocation(32.75, -96.80)
	end := common.NewLocation(32.90, -97.04)

	got, err := c.GetIntersections(context.Background(), nil, start, end, 10)
	if err != nil {
		t.Fatalf("get intersections: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 intersections, got %d", len(got))
	}

	for i, in := range got {
		if in.Sequence != i+1 {
			t.Fatalf("expected sequence %d at position %d, got %d", i+1, i, in.Sequence)
		}
		// Jitter is bounded, so every point stays near the straight line.
		frac := float64(i+1) / 11.0
		wantLat := start.Lat + (end.Lat-start.Lat)*frac
		wantLng := start.Lng + (end.Lng-start.Lng)*frac
		if math.Abs(in.Location.Lat-wantLat) > 0.006 || math.Abs(in.Location.Lng-wantLng) > 0.006 {
			t.Fatalf("intersection %d too far from route: (%f, %f)", in.Sequence, in.Location.Lat, in.Location.Lng)
		}
	}
}
