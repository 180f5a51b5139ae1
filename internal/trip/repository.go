package trip

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const columns = `trip_id, driver_id, truck_id, parking_slot_id, parking_slot_gate, current_lat, current_lng, start_time, estimated_arrival_time, active, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, ext sqlx.ExtContext, t *Trip) error
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Trip, error)
	Update(ctx context.Context, ext sqlx.ExtContext, t *Trip) error
}

type tripRepository struct{}

func NewRepository() Repository {
	return &tripRepository{}
}

func (r *tripRepository) Create(ctx context.Context, ext sqlx.ExtContext, t *Trip) error {
	const query = `INSERT INTO trips (trip_id, driver_id, truck_id, parking_slot_id, parking_slot_gate, current_lat, current_lng, start_time, estimated_arrival_time, active, created_at, updated_at)
		VALUES (:trip_id, :driver_id, :truck_id, :parking_slot_id, :parking_slot_gate, :current_lat, :current_lng, :start_time, :estimated_arrival_time, :active, :created_at, :updated_at)`

	_, err := sqlx.NamedExecContext(ctx, ext, query, t)
	return err
}

func (r *tripRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Trip, error) {
	var t Trip
	query := fmt.Sprintf(`SELECT %s FROM trips WHERE trip_id = $1`, columns)
	if err := sqlx.GetContext(ctx, ext, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tripRepository) Update(ctx context.Context, ext sqlx.ExtContext, t *Trip) error {
	const query = `UPDATE trips SET parking_slot_id = :parking_slot_id, parking_slot_gate = :parking_slot_gate, current_lat = :current_lat, current_lng = :current_lng, estimated_arrival_time = :estimated_arrival_time, active = :active, updated_at = :updated_at WHERE trip_id = :trip_id`
	_, err := sqlx.NamedExecContext(ctx, ext, query, t)
	return err
}
