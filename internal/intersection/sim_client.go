package intersection

import (
	"context"
	"math/rand"

	"truck-dispatch/internal/common"
	"truck-dispatch/internal/routing"
)

// SimClient generates intersections along the straight line between start and
// end with slight jitter, standing in for the OSM intersection API.
type SimClient struct{}

func NewSimClient() *SimClient {
	return &SimClient{}
}

func (c *SimClient) GetIntersections(_ context.Context, _ *routing.Route, start, end common.Location, count int) ([]Intersection, error) {
	latStep := (end.Lat - start.Lat) / float64(count+1)
	lngStep := (end.Lng - start.Lng) / float64(count+1)

	intersections := make([]Intersection, 0, count)
	for i := 1; i <= count; i++ {
		lat := start.Lat + latStep*float64(i) + rand.Float64()*0.005
		lng := start.Lng + lngStep*float64(i) + rand.Float64()*0.005
		intersections = append(intersections, Intersection{
			Sequence: i,
			Location: common.NewLocation(lat, lng),
		})
	}
	return intersections, nil
}
