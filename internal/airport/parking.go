package airport

import (
	"context"
)

// ParkingSlot is an airport parking resource. At most one trip holds a given
// slot id at a time.
type ParkingSlot struct {
	SlotID   string `json:"slot_id"`
	Gate     string `json:"gate"`
	Reserved bool   `json:"reserved"`
}

// Source is the airport parking/dock backend the trip lifecycle depends on.
// Reserve and Verify return nil (with nil error) when the slot is taken or no
// longer valid.
type Source interface {
	ListAvailable(ctx context.Context) ([]ParkingSlot, error)
	Reserve(ctx context.Context, slotID string) (*ParkingSlot, error)
	Verify(ctx context.Context, slotID string) (*ParkingSlot, error)
	ConfirmArrival(ctx context.Context, truckID string) error
}
