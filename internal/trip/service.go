package trip

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"truck-dispatch/internal/airport"
	"truck-dispatch/internal/common"
	"truck-dispatch/internal/driver"
	domainerrors "truck-dispatch/internal/errors"
	"truck-dispatch/internal/intersection"
	"truck-dispatch/internal/routing"
	"truck-dispatch/internal/traffic"
	"truck-dispatch/internal/truck"
)

type Service interface {
	Schedule(ctx context.Context, truckID, driverID string, loc common.Location) (*Trip, error)
	UpdateLocation(ctx context.Context, tripID string, loc common.Location) (*Trip, error)
	Complete(ctx context.Context, tripID string) (*Confirmation, error)
	Get(ctx context.Context, tripID string) (*Trip, error)
}

// Config carries the dispatch knobs for the trip lifecycle.
type Config struct {
	Airport           common.Location
	IntersectionCount int
	BatchSize         int
	DelayPenalty      time.Duration
}

type service struct {
	repo       Repository
	driverRepo driver.Repository
	truckRepo  truck.Repository
	db         *sqlx.DB
	traffic    traffic.Source
	routing    routing.Source
	parking    airport.Source
	osm        intersection.Source
	batches    *intersection.BatchCache
	cfg        Config
	now        func() time.Time
}

func NewTripService(
	repo Repository,
	driverRepo driver.Repository,
	truckRepo truck.Repository,
	db *sqlx.DB,
	trafficSrc traffic.Source,
	routingSrc routing.Source,
	parkingSrc airport.Source,
	osmSrc intersection.Source,
	batches *intersection.BatchCache,
	cfg Config,
) Service {
	return &service{
		repo:       repo,
		driverRepo: driverRepo,
		truckRepo:  truckRepo,
		db:         db,
		traffic:    trafficSrc,
		routing:    routingSrc,
		parking:    parkingSrc,
		osm:        osmSrc,
		batches:    batches,
		cfg:        cfg,
		now:        time.Now,
	}
}

// -------------------------------------------------------------------------------------------------
// Schedule validates the driver/truck pair, computes the route to the
// airport, reserves a parking slot, persists the trip, and primes the
// upcoming-intersections queue, returning the first batch with advisories
// attached.
//
// A slot reserved here is not released if a later step fails; the airport
// backend expires stale reservations on its own.
func (s *service) Schedule(ctx context.Context, truckID, driverID string, loc common.Location) (*Trip, error) {
	if _, err := s.driverRepo.GetByID(ctx, s.db, driverID); err != nil {
		return nil, domainerrors.DriverNotFound(driverID)
	}
	if _, err := s.truckRepo.GetByID(ctx, s.db, truckID); err != nil {
		return nil, domainerrors.TruckNotFound(truckID)
	}

	// Initial advisory is informational only; failure to obtain one does not
	// block scheduling.
	advisory, err := s.traffic.GetAdvisory(ctx, loc)
	if err != nil {
		slog.WarnContext(ctx, "initial advisory unavailable", slog.String("error", err.Error()))
	}

	route, err := s.routing.ComputeRoute(ctx, loc, s.cfg.Airport)
	if err != nil {
		return nil, domainerrors.RouteFetchFailed(err)
	}

	slot, err := s.reserveFirstAvailable(ctx)
	if err != nil {
		return nil, err
	}

	t := NewTrip(driverID, truckID, loc)
	t.HoldSlot(slot.SlotID, slot.Gate)
	now := s.now()
	t.StartTime = now
	t.EstimatedArrival = now.Add(route.Duration())

	if err := s.repo.Create(ctx, s.db, t); err != nil {
		return nil, domainerrors.DBSaveFailed(err)
	}

	intersections, err := s.osm.GetIntersections(ctx, route, loc, s.cfg.Airport, s.cfg.IntersectionCount)
	if err != nil {
		return nil, domainerrors.OSMFetchFailed(err)
	}
	s.batches.Put(t.ID, intersections)

	t.CurrentRoute = route
	t.LatestAdvisory = advisory
	t.UpcomingIntersections = s.drawBatch(ctx, t.ID)

	return t, nil
}

// -------------------------------------------------------------------------------------------------
// UpdateLocation moves the truck, refreshes the advisory, reroutes or applies
// the delay penalty as the advisory dictates, re-verifies the held parking
// slot, and persists the result.
func (s *service) UpdateLocation(ctx context.Context, tripID string, loc common.Location) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, s.db, tripID)
	if err != nil {
		return nil, domainerrors.TripNotFound(tripID)
	}
	if !t.Active {
		return nil, domainerrors.TripAlreadyCompleted(tripID)
	}

	t.SetCurrentLocation(loc)
	s.traffic.NotifyLocation(ctx, loc, t.DriverID)

	advisory, err := s.traffic.GetAdvisory(ctx, loc)
	if err != nil {
		// Degrade to position bookkeeping; the next update retries.
		slog.WarnContext(ctx, "advisory refresh failed",
			slog.String("trip_id", tripID),
			slog.String("error", err.Error()),
		)
	}
	t.LatestAdvisory = advisory

	switch {
	case advisory != nil && advisory.RouteChanged:
		s.batches.Remove(t.ID)

		route, err := s.routing.ComputeRoute(ctx, loc, s.cfg.Airport)
		if err != nil {
			return nil, domainerrors.RouteFetchFailed(err)
		}
		t.CurrentRoute = route
		t.EstimatedArrival = s.now().Add(route.Duration())

		intersections, err := s.osm.GetIntersections(ctx, route, loc, s.cfg.Airport, s.cfg.IntersectionCount)
		if err != nil {
			return nil, domainerrors.OSMFetchFailed(err)
		}
		s.batches.Put(t.ID, intersections)

	case advisory != nil:
		if advisory.DenotesDelay() {
			t.EstimatedArrival = t.EstimatedArrival.Add(s.cfg.DelayPenalty)
		}
		t.UpcomingIntersections = s.drawBatch(ctx, t.ID)
	}

	if err := s.verifyOrReplaceSlot(ctx, t); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, s.db, t); err != nil {
		return nil, domainerrors.DBSaveFailed(err)
	}
	return t, nil
}

// -------------------------------------------------------------------------------------------------
// Complete retires the trip: arrival is confirmed with the airport, the
// intersection queue is discarded, and the durable record is marked terminal.
func (s *service) Complete(ctx context.Context, tripID string) (*Confirmation, error) {
	t, err := s.repo.GetByID(ctx, s.db, tripID)
	if err != nil {
		return nil, domainerrors.TripNotFound(tripID)
	}
	if err := t.Complete(); err != nil {
		return nil, err
	}

	if err := s.parking.ConfirmArrival(ctx, t.TruckID); err != nil {
		slog.WarnContext(ctx, "arrival confirmation failed",
			slog.String("trip_id", tripID),
			slog.String("error", err.Error()),
		)
	}
	s.batches.Remove(t.ID)

	if err := s.repo.Update(ctx, s.db, t); err != nil {
		return nil, domainerrors.DBSaveFailed(err)
	}

	return &Confirmation{TripID: t.ID, TruckID: t.TruckID, CompletedAt: t.UpdatedAt}, nil
}

// -------------------------------------------------------------------------------------------------
func (s *service) Get(ctx context.Context, tripID string) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, s.db, tripID)
	if err != nil {
		return nil, domainerrors.TripNotFound(tripID)
	}
	return t, nil
}

// -------------------------------------------------------------------------------------------------
func (s *service) reserveFirstAvailable(ctx context.Context) (*airport.ParkingSlot, error) {
	slots, err := s.parking.ListAvailable(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrSlotReservation, "failed to list parking slots", err)
	}
	if len(slots) == 0 {
		return nil, domainerrors.NoParkingSlots()
	}

	// Slots can be snatched between list and reserve; walk the list until a
	// compare-and-set reservation wins.
	for _, candidate := range slots {
		reserved, err := s.parking.Reserve(ctx, candidate.SlotID)
		if err != nil {
			return nil, domainerrors.SlotReservationFailed(candidate.SlotID)
		}
		if reserved != nil {
			return reserved, nil
		}
	}
	return nil, domainerrors.NoParkingSlots()
}

func (s *service) verifyOrReplaceSlot(ctx context.Context, t *Trip) error {
	held, err := s.parking.Verify(ctx, t.SlotID)
	if err == nil && held != nil {
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "slot verification failed, re-reserving",
			slog.String("trip_id", t.ID),
			slog.String("slot_id", t.SlotID),
			slog.String("error", err.Error()),
		)
	}

	replacement, rerr := s.reserveFirstAvailable(ctx)
	if rerr != nil {
		return rerr
	}
	t.HoldSlot(replacement.SlotID, replacement.Gate)
	return nil
}

// drawBatch dequeues the next batch for the trip and attaches a fresh
// advisory to each intersection. Advisory failures leave the field unset.
func (s *service) drawBatch(ctx context.Context, tripID string) []intersection.Intersection {
	batch := s.batches.NextBatch(tripID, s.cfg.BatchSize)
	for i := range batch {
		advisory, err := s.traffic.GetAdvisory(ctx, batch[i].Location)
		if err != nil {
			continue
		}
		batch[i].Advisory = advisory
	}
	return batch
}
