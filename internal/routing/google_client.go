package routing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"truck-dispatch/internal/common"
)

var ErrNoRoutes = errors.New("no routes returned")

// GoogleClient is the production Source backed by the Google Directions API.
type GoogleClient struct {
	client *maps.Client
}

func NewGoogleClient(apiKey string) (*GoogleClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

func (g *GoogleClient) ComputeRoute(ctx context.Context, origin, destination common.Location) (*Route, error) {
	req := &maps.DirectionsRequest{
		Origin:      formatLatLng(origin),
		Destination: formatLatLng(destination),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoutes
	}

	leg := routes[0].Legs[0]
	return &Route{
		DurationSeconds: int64(leg.Duration / time.Second),
		DistanceMeters:  int64(leg.Distance.Meters),
		EncodedPath:     routes[0].OverviewPolyline.Points,
	}, nil
}

func (g *GoogleClient) DurationForArrival(ctx context.Context, origin, destination common.Location, arrival time.Time) (time.Duration, error) {
	req := &maps.DirectionsRequest{
		Origin:        formatLatLng(origin),
		Destination:   formatLatLng(destination),
		Mode:          maps.TravelModeDriving,
		DepartureTime: strconv.FormatInt(arrival.Unix(), 10),
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("directions request: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, ErrNoRoutes
	}

	leg := routes[0].Legs[0]
	if leg.DurationInTraffic > 0 {
		return leg.DurationInTraffic, nil
	}
	return leg.Duration, nil
}

func formatLatLng(loc common.Location) string {
	return fmt.Sprintf("%f,%f", loc.Lat, loc.Lng)
}
