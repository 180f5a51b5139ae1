package assignment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"truck-dispatch/internal/common"
	domainerrors "truck-dispatch/internal/errors"
	"truck-dispatch/internal/transportation"
)

// TransportationAPI is the slice of the transportation client the scheduler
// and flight-info path depend on.
type TransportationAPI interface {
	GetManifests(ctx context.Context) ([]transportation.Manifest, error)
	AssignTasks(ctx context.Context, manifests []transportation.Manifest) ([]transportation.Assignment, error)
	FetchFlightInfo(ctx context.Context, flightNumber string) (*transportation.FlightInfo, error)
	ReserveParking(ctx context.Context) (*transportation.ParkingReservation, error)
	ReserveDock(ctx context.Context, terminal string) (*transportation.DockReservation, error)
}

// LegSolver computes the latest departure for one origin→destination leg.
type LegSolver interface {
	SolveLeg(ctx context.Context, origin, destination common.Location, targetArrival time.Time) (time.Time, error)
}

// FlightCache is the best-effort TimeDetails cache keyed by assignment id.
type FlightCache interface {
	Set(ctx context.Context, assignmentID string, v any) error
	Get(ctx context.Context, assignmentID string, dst any) (bool, error)
}

// Config carries the flight-pickup scheduling knobs.
type Config struct {
	Airport      common.Location
	Zone         *time.Location
	PickupBuffer time.Duration
}

// Service maintains the day's dispatch-assignment snapshot and serves the
// flight-info (departure chain) query path.
//
// The snapshot map is replaced wholesale on refresh and clear, never mutated
// in place, so readers holding the previous map pointer are unaffected and no
// reader ever observes a partially-populated set.
type Service struct {
	api    TransportationAPI
	solver LegSolver
	cache  FlightCache
	cfg    Config
	now    func() time.Time

	mu       sync.RWMutex
	snapshot map[string]transportation.Assignment
}

func NewService(api TransportationAPI, solver LegSolver, cache FlightCache, cfg Config) *Service {
	return &Service{
		api:      api,
		solver:   solver,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
		snapshot: make(map[string]transportation.Assignment),
	}
}

// -------------------------------------------------------------------------------------------------
// Refresh fetches the day's manifests, submits them for dispatch assignment,
// and atomically replaces the snapshot with the new set under freshly
// generated ids. On upstream failure the previous snapshot is left intact.
func (s *Service) Refresh(ctx context.Context) error {
	manifests, err := s.api.GetManifests(ctx)
	if err != nil {
		return domainerrors.ManifestFetchFailed(err)
	}

	assigned, err := s.api.AssignTasks(ctx, manifests)
	if err != nil {
		return domainerrors.ManifestFetchFailed(err)
	}

	next := make(map[string]transportation.Assignment, len(assigned))
	for _, a := range assigned {
		a.ID = uuid.New().String()
		next[a.ID] = a
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	slog.InfoContext(ctx, "assignment cache refreshed", slog.Int("count", len(next)))
	return nil
}

// Clear empties the cache ahead of the next day's refresh window.
func (s *Service) Clear() {
	s.mu.Lock()
	s.snapshot = make(map[string]transportation.Assignment)
	s.mu.Unlock()

	slog.Info("assignment cache cleared")
}

// -------------------------------------------------------------------------------------------------
func (s *Service) GetAll() []transportation.Assignment {
	snap := s.current()
	out := make([]transportation.Assignment, 0, len(snap))
	for _, a := range snap {
		out = append(out, a)
	}
	return out
}

func (s *Service) GetByID(id string) (transportation.Assignment, error) {
	a, ok := s.current()[id]
	if !ok {
		return transportation.Assignment{}, domainerrors.AssignmentNotFound(id)
	}
	return a, nil
}

func (s *Service) GetByTruck(truckID string) []transportation.Assignment {
	var out []transportation.Assignment
	for _, a := range s.current() {
		if a.TruckID == truckID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Service) current() map[string]transportation.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// -------------------------------------------------------------------------------------------------
// FlightInfo resolves the full pickup schedule for an assignment: flight
// details, the backward-chained departure instants for both legs, and airside
// parking/dock reservations for the flight's terminal.
//
// All civil-time arithmetic happens in the dispatch zone; a flight time that
// has already passed today is read as its next occurrence.
func (s *Service) FlightInfo(ctx context.Context, assignmentID string, current common.Location) (*TimeDetails, error) {
	a, err := s.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}

	info, err := s.api.FetchFlightInfo(ctx, a.FlightNumber)
	if err != nil {
		return nil, domainerrors.FlightInfoFetchFailed(a.FlightNumber, err)
	}

	arrival, err := time.Parse("15:04", info.ArrivalTime)
	if err != nil {
		return nil, domainerrors.FlightInfoFetchFailed(a.FlightNumber, err)
	}

	now := s.now().In(s.cfg.Zone)
	targetArrival := time.Date(now.Year(), now.Month(), now.Day(), arrival.Hour(), arrival.Minute(), 0, 0, s.cfg.Zone)

	pickupDeparture, err := s.solver.SolveLeg(ctx, a.Location, s.cfg.Airport, targetArrival)
	if err != nil {
		return nil, err
	}
	if !pickupDeparture.After(now) {
		// The listed arrival already passed today; schedule against the next
		// occurrence.
		targetArrival = targetArrival.AddDate(0, 0, 1)
		pickupDeparture, err = s.solver.SolveLeg(ctx, a.Location, s.cfg.Airport, targetArrival)
		if err != nil {
			return nil, err
		}
	}

	pickupArrival := pickupDeparture.Add(-s.cfg.PickupBuffer)
	if pickupArrival.Before(now) {
		pickupArrival = pickupArrival.AddDate(0, 0, 1)
	}

	currentDeparture, err := s.solver.SolveLeg(ctx, current, a.Location, pickupArrival)
	if err != nil {
		return nil, err
	}

	parking, err := s.api.ReserveParking(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrSlotReservation, "failed to reserve airside parking", err)
	}
	dock, err := s.api.ReserveDock(ctx, info.Terminal)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrSlotReservation, "failed to reserve dock", err)
	}

	details := &TimeDetails{
		AssignmentID:     assignmentID,
		FlightNumber:     a.FlightNumber,
		FlightTerminal:   info.Terminal,
		TargetArrival:    targetArrival,
		PickupDeparture:  pickupDeparture,
		PickupArrival:    pickupArrival,
		CurrentDeparture: currentDeparture,
		ParkingID:        parking.ParkingID,
		ParkingLocation:  parking.Location,
		DockID:           dock.DockID,
		DockLocation:     dock.Location,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, assignmentID, details); err != nil {
			slog.WarnContext(ctx, "flight info cache write failed",
				slog.String("assignment_id", assignmentID),
				slog.String("error", err.Error()),
			)
		}
	}
	return details, nil
}

// CachedFlightInfo returns the last computed schedule for an assignment, if
// the cache still holds one.
func (s *Service) CachedFlightInfo(ctx context.Context, assignmentID string) (*TimeDetails, bool) {
	if s.cache == nil {
		return nil, false
	}
	var details TimeDetails
	found, err := s.cache.Get(ctx, assignmentID, &details)
	if err != nil || !found {
		return nil, false
	}
	return &details, true
}
