package airport

import (
	"context"
	"log/slog"
	"sync"
)

// SimClient simulates the airport parking backend with an in-memory slot
// table. Reservation is compare-and-set under one lock, so two concurrent
// Reserve calls for the same slot yield exactly one winner.
type SimClient struct {
	mu    sync.Mutex
	slots []*ParkingSlot
}

func NewSimClient() *SimClient {
	return &SimClient{
		slots: []*ParkingSlot{
			{SlotID: "SLOT-A1", Gate: "GateA"},
			{SlotID: "SLOT-A2", Gate: "GateA"},
			{SlotID: "SLOT-B1", Gate: "GateB"},
			{SlotID: "SLOT-B2", Gate: "GateB"},
			{SlotID: "SLOT-C1", Gate: "GateC"},
			{SlotID: "SLOT-C2", Gate: "GateC"},
		},
	}
}

func (c *SimClient) ListAvailable(_ context.Context) ([]ParkingSlot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var available []ParkingSlot
	for _, slot := range c.slots {
		if !slot.Reserved {
			available = append(available, *slot)
		}
	}
	return available, nil
}

func (c *SimClient) Reserve(_ context.Context, slotID string) (*ParkingSlot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, slot := range c.slots {
		if slot.SlotID == slotID && !slot.Reserved {
			slot.Reserved = true
			reserved := *slot
			return &reserved, nil
		}
	}
	return nil, nil
}

func (c *SimClient) Verify(_ context.Context, slotID string) (*ParkingSlot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, slot := range c.slots {
		if slot.SlotID == slotID && slot.Reserved {
			held := *slot
			return &held, nil
		}
	}
	return nil, nil
}

// Release frees a slot. The real backend expires reservations on its own;
// the simulator exposes this so tests can exercise re-reservation.
func (c *SimClient) Release(slotID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, slot := range c.slots {
		if slot.SlotID == slotID {
			slot.Reserved = false
			return
		}
	}
}

func (c *SimClient) ConfirmArrival(ctx context.Context, truckID string) error {
	slog.InfoContext(ctx, "airport notified of truck arrival", slog.String("truck_id", truckID))
	return nil
}
