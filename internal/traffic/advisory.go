package traffic

import (
	"context"
	"strings"

	"truck-dispatch/internal/common"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
)

// Advisory is a traffic-condition message for a location. RouteChanged signals
// that the current route should be abandoned and recomputed.
type Advisory struct {
	Message          string           `json:"message"`
	Severity         Severity         `json:"severity"`
	RouteChanged     bool             `json:"route_changed"`
	RelevantLocation *common.Location `json:"relevant_location,omitempty"`
}

// DenotesDelay reports whether the advisory text describes a delay condition
// that should push the estimated arrival back without a reroute.
func (a *Advisory) DenotesDelay() bool {
	return strings.Contains(a.Message, "delay")
}

// Source provides live traffic advisories for truck locations.
type Source interface {
	GetAdvisory(ctx context.Context, loc common.Location) (*Advisory, error)
	// NotifyLocation reports a truck position upstream. Best-effort; callers
	// must not treat it as a hard dependency.
	NotifyLocation(ctx context.Context, loc common.Location, driverID string)
}
