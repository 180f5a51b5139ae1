package transportation

import "truck-dispatch/internal/common"

// Manifest is one unit of planned work as published by the logistics API.
type Manifest struct {
	CompanyName    string          `json:"company_name"`
	DispatcherName string          `json:"dispatcher_name"`
	Location       common.Location `json:"location"`
	TaskType       string          `json:"task_type"`
	FlightNumber   string          `json:"flight_number"`
	PickupTime     string          `json:"pickup_time"`
	Priority       string          `json:"priority"`
}

// Assignment is one dispatched unit of work: a manifest bound to a truck and
// trucker. The ID is assigned locally at cache-insertion time, fresh each
// daily cycle.
type Assignment struct {
	ID             string          `json:"id"`
	CompanyName    string          `json:"company_name"`
	DispatcherName string          `json:"dispatcher_name"`
	Location       common.Location `json:"location"`
	TaskType       string          `json:"task_type"`
	FlightNumber   string          `json:"flight_number"`
	PickupTime     string          `json:"pickup_time"`
	Priority       string          `json:"priority"`
	TruckerName    string          `json:"trucker_name"`
	TruckID        string          `json:"truck_id"`
}

// FlightInfo describes an inbound flight; ArrivalTime is local wall-clock
// "HH:MM" in the dispatch zone.
type FlightInfo struct {
	FlightNumber string `json:"flight_number"`
	ArrivalTime  string `json:"arrival_time"`
	Terminal     string `json:"terminal"`
}

// ParkingReservation and DockReservation are airside resources granted by the
// airport side of the transportation API for a scheduled pickup.
type ParkingReservation struct {
	ParkingID string          `json:"parkingId"`
	Location  common.Location `json:"location"`
}

type DockReservation struct {
	DockID   string          `json:"dockId"`
	Location common.Location `json:"location"`
}

type manifestsResponse struct {
	Manifests []Manifest `json:"manifests"`
}

type assignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
}
