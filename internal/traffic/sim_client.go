package traffic

import (
	"context"
	"log/slog"
	"math/rand"

	"truck-dispatch/internal/common"
)

// advisoryOptions mirrors the advisory feed of the DALI roadside system.
var advisoryOptions = []Advisory{
	{Message: "Maintain ~50 km/h to pass next light while green.", Severity: SeverityInfo},
	{Message: "Traffic congestion ahead; expect 5 min delay.", Severity: SeverityInfo},
	{Message: "Optimal speed is 60 km/h for current road conditions.", Severity: SeverityInfo},
	{Message: "Road closure reported ahead, change route immediately.", Severity: SeverityWarning, RouteChanged: true},
	{Message: "Accident reported at next intersection, consider alternate route.", Severity: SeverityWarning, RouteChanged: true},
	{Message: "Expect a brief stop at traffic light, maintain 40 km/h.", Severity: SeverityInfo},
}

// SimClient serves advisories from a canned option table, standing in for the
// DALI roadside HTTP API.
type SimClient struct{}

func NewSimClient() *SimClient {
	return &SimClient{}
}

func (c *SimClient) GetAdvisory(_ context.Context, loc common.Location) (*Advisory, error) {
	selected := advisoryOptions[rand.Intn(len(advisoryOptions))]

	if selected.RouteChanged {
		// Pin the incident near the reported position.
		incident := common.NewLocation(
			loc.Lat+0.02+rand.Float64()*0.01,
			loc.Lng-0.02-rand.Float64()*0.01,
		)
		selected.RelevantLocation = &incident
	}
	return &selected, nil
}

func (c *SimClient) NotifyLocation(ctx context.Context, loc common.Location, driverID string) {
	slog.InfoContext(ctx, "location update forwarded to traffic service",
		slog.String("driver_id", driverID),
		slog.Float64("lat", loc.Lat),
		slog.Float64("lng", loc.Lng),
	)
}
