package assignment

import (
	"time"

	"truck-dispatch/internal/common"
)

// TimeDetails is the computed flight-pickup schedule for one assignment: the
// flight's arrival deadline and the backward-chained departure/arrival
// instants for both legs, plus the airside resources reserved for the
// pickup. Produced on demand; cached best-effort only.
type TimeDetails struct {
	AssignmentID   string `json:"assignment_id"`
	FlightNumber   string `json:"flight_number"`
	FlightTerminal string `json:"flight_terminal"`

	// Leg pickup → airport.
	TargetArrival   time.Time `json:"estimated_end_time_from_pickup"`
	PickupDeparture time.Time `json:"estimated_start_time_from_pickup"`

	// Leg current position → pickup. PickupArrival leaves a fixed loading
	// buffer before PickupDeparture.
	PickupArrival    time.Time `json:"estimated_end_time_from_current"`
	CurrentDeparture time.Time `json:"estimated_start_time_from_current"`

	ParkingID       string          `json:"parking_id"`
	ParkingLocation common.Location `json:"parking_location"`
	DockID          string          `json:"dock_id"`
	DockLocation    common.Location `json:"dock_location"`
}
