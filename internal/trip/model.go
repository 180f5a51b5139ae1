package trip

import (
	"time"

	"github.com/google/uuid"

	"truck-dispatch/internal/common"
	domainerrors "truck-dispatch/internal/errors"
	"truck-dispatch/internal/intersection"
	"truck-dispatch/internal/routing"
	"truck-dispatch/internal/traffic"
)

// Trip is the central mutable aggregate: one truck's run toward the airport.
// Route, advisory and the upcoming-intersections batch are ephemeral: they
// live only on the in-memory object and are recomputed on every reload, never
// written to the durable store.
type Trip struct {
	ID               string    `db:"trip_id" json:"trip_id"`
	DriverID         string    `db:"driver_id" json:"driver_id"`
	TruckID          string    `db:"truck_id" json:"truck_id"`
	SlotID           string    `db:"parking_slot_id" json:"parking_slot_id"`
	SlotGate         string    `db:"parking_slot_gate" json:"parking_slot_gate"`
	CurrentLat       float64   `db:"current_lat" json:"current_lat"`
	CurrentLng       float64   `db:"current_lng" json:"current_lng"`
	StartTime        time.Time `db:"start_time" json:"start_time"`
	EstimatedArrival time.Time `db:"estimated_arrival_time" json:"estimated_arrival_time"`
	Active           bool      `db:"active" json:"active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`

	// Ephemeral, in-memory only.
	CurrentRoute          *routing.Route              `db:"-" json:"current_route,omitempty"`
	LatestAdvisory        *traffic.Advisory           `db:"-" json:"latest_advisory,omitempty"`
	UpcomingIntersections []intersection.Intersection `db:"-" json:"upcoming_intersections,omitempty"`
}

func NewTrip(driverID, truckID string, loc common.Location) *Trip {
	now := time.Now()
	return &Trip{
		ID:         uuid.New().String(),
		DriverID:   driverID,
		TruckID:    truckID,
		CurrentLat: loc.Lat,
		CurrentLng: loc.Lng,
		StartTime:  now,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (t *Trip) CurrentLocation() common.Location {
	return common.NewLocation(t.CurrentLat, t.CurrentLng)
}

func (t *Trip) SetCurrentLocation(loc common.Location) {
	t.CurrentLat = loc.Lat
	t.CurrentLng = loc.Lng
	t.UpdatedAt = time.Now()
}

func (t *Trip) HoldSlot(slotID, gate string) {
	t.SlotID = slotID
	t.SlotGate = gate
	t.UpdatedAt = time.Now()
}

// Complete moves the trip to its terminal state. Completed is terminal: any
// later transition fails.
func (t *Trip) Complete() error {
	if !t.Active {
		return domainerrors.TripAlreadyCompleted(t.ID)
	}
	t.Active = false
	t.UpdatedAt = time.Now()
	return nil
}
