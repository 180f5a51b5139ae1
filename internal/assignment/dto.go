package assignment

import "truck-dispatch/internal/transportation"

type AssignmentsResponse struct {
	Assignments []transportation.Assignment `json:"assignments"`
}
