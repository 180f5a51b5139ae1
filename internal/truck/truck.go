package truck

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Truck is the catalog record for a vehicle in the fleet.
type Truck struct {
	TruckID      string `db:"truck_id" json:"truck_id"`
	LicensePlate string `db:"license_plate" json:"license_plate"`
	Model        string `db:"model" json:"model"`
	Capacity     string `db:"capacity" json:"capacity"`
}

type Repository interface {
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error)
}

type truckRepository struct{}

func NewRepository() Repository {
	return &truckRepository{}
}

func (r *truckRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Truck, error) {
	var t Truck
	const query = `SELECT truck_id, license_plate, model, capacity FROM trucks WHERE truck_id = $1`
	if err := sqlx.GetContext(ctx, ext, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}
