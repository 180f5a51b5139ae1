package errors

import "fmt"

const (
	ErrDriverNotFound       = "DRIVER_NOT_FOUND"
	ErrTruckNotFound        = "TRUCK_NOT_FOUND"
	ErrTripNotFound         = "TRIP_NOT_FOUND"
	ErrAssignmentNotFound   = "ASSIGNMENT_NOT_FOUND"
	ErrTripCompleted        = "TRIP_ALREADY_COMPLETED"
	ErrRouteFetch           = "ROUTE_FETCH_FAILED"
	ErrOSMFetch             = "OSM_FETCH_FAILED"
	ErrNoParkingSlots       = "NO_PARKING_SLOTS"
	ErrSlotReservation      = "SLOT_RESERVATION_FAILED"
	ErrSlotUnavailable      = "PARKING_SLOT_UNAVAILABLE"
	ErrDBSave               = "DB_SAVE_FAILED"
	ErrFlightInfoFetch      = "FLIGHT_INFO_FETCH_FAILED"
	ErrManifestFetch        = "MANIFEST_FETCH_FAILED"
	ErrValidation           = "VALIDATION"
	ErrUnauthorized         = "UNAUTHORIZED"
	ErrForbidden            = "FORBIDDEN"
	ErrInternal             = "INTERNAL"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func Wrap(code, msg string, err error) *DomainError {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// --- Entities ---

func DriverNotFound(id string) *DomainError {
	return &DomainError{Code: ErrDriverNotFound, Message: fmt.Sprintf("driver %s not found", id)}
}

func TruckNotFound(id string) *DomainError {
	return &DomainError{Code: ErrTruckNotFound, Message: fmt.Sprintf("truck %s not found", id)}
}

func TripNotFound(id string) *DomainError {
	return &DomainError{Code: ErrTripNotFound, Message: fmt.Sprintf("trip %s not found", id)}
}

func AssignmentNotFound(id string) *DomainError {
	return &DomainError{Code: ErrAssignmentNotFound, Message: fmt.Sprintf("assignment %s not found", id)}
}

// --- Trip lifecycle ---

func TripAlreadyCompleted(id string) *DomainError {
	return &DomainError{Code: ErrTripCompleted, Message: fmt.Sprintf("trip %s is already completed", id)}
}

// --- Upstream sources ---

func RouteFetchFailed(err error) *DomainError {
	return &DomainError{Code: ErrRouteFetch, Message: "failed to compute route", Err: err}
}

func OSMFetchFailed(err error) *DomainError {
	return &DomainError{Code: ErrOSMFetch, Message: "failed to fetch route intersections", Err: err}
}

func FlightInfoFetchFailed(flightNumber string, err error) *DomainError {
	return &DomainError{Code: ErrFlightInfoFetch, Message: fmt.Sprintf("failed to fetch info for flight %s", flightNumber), Err: err}
}

func ManifestFetchFailed(err error) *DomainError {
	return &DomainError{Code: ErrManifestFetch, Message: "failed to fetch daily manifests", Err: err}
}

// --- Parking ---

func NoParkingSlots() *DomainError {
	return &DomainError{Code: ErrNoParkingSlots, Message: "no available parking slots at the airport"}
}

func SlotReservationFailed(slotID string) *DomainError {
	return &DomainError{Code: ErrSlotReservation, Message: fmt.Sprintf("failed to reserve parking slot %s", slotID)}
}

func SlotUnavailable(slotID string) *DomainError {
	return &DomainError{Code: ErrSlotUnavailable, Message: fmt.Sprintf("reserved parking slot %s is no longer available", slotID)}
}

// --- Persistence ---

func DBSaveFailed(err error) *DomainError {
	return &DomainError{Code: ErrDBSave, Message: "failed to persist record", Err: err}
}

// --- Boundary ---

func NewValidation(msg string) *DomainError {
	return &DomainError{Code: ErrValidation, Message: msg}
}

func NewUnauthorized(msg string) *DomainError {
	return &DomainError{Code: ErrUnauthorized, Message: msg}
}

func NewForbidden(msg string) *DomainError {
	return &DomainError{Code: ErrForbidden, Message: msg}
}

func NewInternal(msg string, err error) *DomainError {
	return &DomainError{Code: ErrInternal, Message: msg, Err: err}
}
