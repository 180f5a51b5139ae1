package trip

import (
	"time"

	"truck-dispatch/internal/common"
)

type ScheduleRequest struct {
	Location common.Location `json:"location" binding:"required"`
}

type UpdateLocationRequest struct {
	Location common.Location `json:"location" binding:"required"`
}

type TripResponse struct {
	Trip *Trip `json:"trip"`
}

// Confirmation is the minimal completion receipt; the full projection is not
// returned because the record is being retired.
type Confirmation struct {
	TripID      string    `json:"trip_id"`
	TruckID     string    `json:"truck_id"`
	CompletedAt time.Time `json:"completed_at"`
}
