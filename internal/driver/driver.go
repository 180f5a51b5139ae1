package driver

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Driver is the catalog record for a trucker. Managed out of band; this
// service only reads it.
type Driver struct {
	DriverID      string `db:"driver_id" json:"driver_id"`
	Name          string `db:"name" json:"name"`
	LicenseNumber string `db:"license_number" json:"license_number"`
	PhoneNumber   string `db:"phone_number" json:"phone_number"`
}

type Repository interface {
	GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error)
}

type driverRepository struct{}

func NewRepository() Repository {
	return &driverRepository{}
}

func (r *driverRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*Driver, error) {
	var d Driver
	const query = `SELECT driver_id, name, license_number, phone_number FROM drivers WHERE driver_id = $1`
	if err := sqlx.GetContext(ctx, ext, &d, query, id); err != nil {
		return nil, err
	}
	return &d, nil
}
