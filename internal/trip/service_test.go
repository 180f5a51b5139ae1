package trip

import (
	"context"
	"errors"
	"testing"
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

// --- fakes ---

type fakeTripRepo struct {
	store     map[string]Trip
	createErr error
	updateErr error
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{store: make(map[string]Trip)}
}

func (r *fakeTripRepo) Create(_ context.Context, _ sqlx.ExtContext, t *Trip) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store[t.ID] = *t
	return nil
}

func (r *fakeTripRepo) GetByID(_ context.Context, _ sqlx.ExtContext, id string) (*Trip, error) {
	t, ok := r.store[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	copied := t
	return &copied, nil
}

func (r *fakeTripRepo) Update(_ context.Context, _ sqlx.ExtContext, t *Trip) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.store[t.ID] = *t
	return nil
}

type fakeDriverRepo struct{ known map[string]bool }

func (r *fakeDriverRepo) GetByID(_ context.Context, _ sqlx.ExtContext, id string) (*driver.Driver, error) {
	if !r.known[id] {
		return nil, errors.New("no rows")
	}
	return &driver.Driver{DriverID: id, Name: "Marcus Hale"}, nil
}

type fakeTruckRepo struct{ known map[string]bool }

func (r *fakeTruckRepo) GetByID(_ context.Context, _ sqlx.ExtContext, id string) (*truck.Truck, error) {
	if !r.known[id] {
		return nil, errors.New("no rows")
	}
	return &truck.Truck{TruckID: id, LicensePlate: "HXD-5521"}, nil
}

type fakeTraffic struct {
	advisory *traffic.Advisory
	err      error
	notified int
}

func (f *fakeTraffic) GetAdvisory(context.Context, common.Location) (*traffic.Advisory, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.advisory == nil {
		return &traffic.Advisory{Message: "Maintain ~50 km/h.", Severity: traffic.SeverityInfo}, nil
	}
	copied := *f.advisory
	return &copied, nil
}

func (f *fakeTraffic) NotifyLocation(context.Context, common.Location, string) {
	f.notified++
}

type fakeRouting struct {
	durationSec int64
	err         error
	calls       int
}

func (f *fakeRouting) ComputeRoute(context.Context, common.Location, common.Location) (*routing.Route, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	return &routing.Route{DurationSeconds: f.durationSec, DistanceMeters: 24000, EncodedPath: "abc"}, nil
}

func (f *fakeRouting) DurationForArrival(context.Context, common.Location, common.Location, time.Time) (time.Duration, error) {
	if f.err != nil {
		return 0, f.err
	}
	return time.Duration(f.durationSec) * time.Second, nil
}

type fakeOSM struct {
	err error
}

func (f *fakeOSM) GetIntersections(_ context.Context, _ *routing.Route, start, end common.Location, count int) ([]intersection.Intersection, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]intersection.Intersection, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, intersection.Intersection{Sequence: i, Location: start})
	}
	return out, nil
}

type fixture struct {
	svc     *service
	repo    *fakeTripRepo
	traffic *fakeTraffic
	routing *fakeRouting
	osm     *fakeOSM
	parking *airport.SimClient
	batches *intersection.BatchCache
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:    newFakeTripRepo(),
		traffic: &fakeTraffic{},
		routing: &fakeRouting{durationSec: 1800},
		osm:     &fakeOSM{},
		parking: airport.NewSimClient(),
		batches: intersection.NewBatchCache(),
		now:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	svc := NewTripService(
		f.repo,
		&fakeDriverRepo{known: map[string]bool{"DRV-1001": true}},
		&fakeTruckRepo{known: map[string]bool{"TRK-2001": true}},
		nil,
		f.traffic, f.routing, f.parking, f.osm, f.batches,
		Config{
			Airport:           common.NewLocation(32.8998, -97.0403),
			IntersectionCount: 10,
			BatchSize:         3,
			DelayPenalty:      5 * time.Minute,
		},
	)
	f.svc = svc.(*service)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) schedule(t *testing.T) *Trip {
	t.Helper()
	trip, err := f.svc.Schedule(context.Background(), "TRK-2001", "DRV-1001", common.NewLocation(32.90, -96.80))
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return trip
}

func sequences(batch []intersection.Intersection) []int {
	out := make([]int, 0, len(batch))
	for _, in := range batch {
		out = append(out, in.Sequence)
	}
	return out
}

// --- Schedule ---

func TestSchedule_CreatesActiveTrip(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)

	if !trip.Active {
		t.Fatal("expected active trip")
	}
	if trip.SlotID == "" || trip.SlotGate == "" {
		t.Fatalf("expected reserved slot, got %q at %q", trip.SlotID, trip.SlotGate)
	}
	if trip.CurrentRoute == nil {
		t.Fatal("expected route on fresh trip")
	}
	if want := f.now.Add(30 * time.Minute); !trip.EstimatedArrival.Equal(want) {
		t.Fatalf("expected ETA %v, got %v", want, trip.EstimatedArrival)
	}
	if _, ok := f.repo.store[trip.ID]; !ok {
		t.Fatal("expected trip persisted")
	}

	got := sequences(trip.UpcomingIntersections)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected first batch 1..3, got %v", got)
	}
}

func TestSchedule_UnknownDriver(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Schedule(context.Background(), "TRK-2001", "DRV-9999", common.NewLocation(32.90, -96.80))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrDriverNotFound {
		t.Fatalf("expected DRIVER_NOT_FOUND, got %v", err)
	}
}

func TestSchedule_UnknownTruck(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Schedule(context.Background(), "TRK-9999", "DRV-1001", common.NewLocation(32.90, -96.80))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrTruckNotFound {
		t.Fatalf("expected TRUCK_NOT_FOUND, got %v", err)
	}
}

func TestSchedule_RouteFailure(t *testing.T) {
	f := newFixture(t)
	f.routing.err = errors.New("maps down")

	_, err := f.svc.Schedule(context.Background(), "TRK-2001", "DRV-1001", common.NewLocation(32.90, -96.80))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrRouteFetch {
		t.Fatalf("expected ROUTE_FETCH_FAILED, got %v", err)
	}
}

func TestSchedule_NoSlotsLeft(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"SLOT-A1", "SLOT-A2", "SLOT-B1", "SLOT-B2", "SLOT-C1", "SLOT-C2"} {
		if _, err := f.parking.Reserve(context.Background(), id); err != nil {
			t.Fatalf("reserve %s: %v", id, err)
		}
	}

	_, err := f.svc.Schedule(context.Background(), "TRK-2001", "DRV-1001", common.NewLocation(32.90, -96.80))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrNoParkingSlots {
		t.Fatalf("expected NO_PARKING_SLOTS, got %v", err)
	}
}

func TestSchedule_PersistFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errors.New("disk full")

	_, err := f.svc.Schedule(context.Background(), "TRK-2001", "DRV-1001", common.NewLocation(32.90, -96.80))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrDBSave {
		t.Fatalf("expected DB_SAVE_FAILED, got %v", err)
	}
}

// --- UpdateLocation ---

func TestUpdateLocation_DelayAdvisoryPushesETA(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)
	etaBefore := trip.EstimatedArrival

	f.traffic.advisory = &traffic.Advisory{Message: "Traffic congestion ahead; expect 5 min delay.", Severity: traffic.SeverityInfo}

	updated, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.88, -96.90))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if want := etaBefore.Add(5 * time.Minute); !updated.EstimatedArrival.Equal(want) {
		t.Fatalf("expected ETA %v, got %v", want, updated.EstimatedArrival)
	}
	got := sequences(updated.UpcomingIntersections)
	if len(got) != 3 || got[0] != 4 {
		t.Fatalf("expected next batch 4..6, got %v", got)
	}
	if f.traffic.notified == 0 {
		t.Fatal("expected location forwarded to traffic service")
	}

	stored := f.repo.store[trip.ID]
	if stored.CurrentLat != 32.88 || stored.CurrentLng != -96.90 {
		t.Fatalf("position not persisted: (%f, %f)", stored.CurrentLat, stored.CurrentLng)
	}
}

func TestUpdateLocation_RouteChangedRebuildsQueue(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)

	f.traffic.advisory = &traffic.Advisory{
		Message:      "Road closure reported ahead, change route immediately.",
		Severity:     traffic.SeverityWarning,
		RouteChanged: true,
	}

	updated, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.88, -96.90))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CurrentRoute == nil {
		t.Fatal("expected recomputed route")
	}
	if want := f.now.Add(30 * time.Minute); !updated.EstimatedArrival.Equal(want) {
		t.Fatalf("expected ETA reset to %v, got %v", want, updated.EstimatedArrival)
	}
	// No batch is dispensed on the reroute update itself.
	if len(updated.UpcomingIntersections) != 0 {
		t.Fatalf("expected no batch on reroute, got %v", sequences(updated.UpcomingIntersections))
	}

	// The next non-reroute update draws from the fresh sequence.
	f.traffic.advisory = &traffic.Advisory{Message: "Expect a brief stop, minor delay.", Severity: traffic.SeverityInfo}
	next, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.87, -96.92))
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	got := sequences(next.UpcomingIntersections)
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("expected rebuilt queue starting at 1, got %v", got)
	}
}

func TestUpdateLocation_AdvisoryFailureDegrades(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)
	etaBefore := trip.EstimatedArrival

	f.traffic.err = errors.New("advisory feed down")

	updated, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.88, -96.90))
	if err != nil {
		t.Fatalf("update should degrade, got %v", err)
	}
	if !updated.EstimatedArrival.Equal(etaBefore) {
		t.Fatal("ETA must not move without an advisory")
	}
	if len(updated.UpcomingIntersections) != 0 {
		t.Fatal("no batch should be drawn without an advisory")
	}
}

func TestUpdateLocation_ReReservesLostSlot(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)
	original := trip.SlotID

	// The airport backend expired the reservation out from under us.
	f.parking.Release(original)

	updated, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.88, -96.90))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SlotID == "" {
		t.Fatal("expected a replacement slot")
	}
	held, _ := f.parking.Verify(context.Background(), updated.SlotID)
	if held == nil {
		t.Fatalf("replacement slot %s not actually held", updated.SlotID)
	}
}

func TestUpdateLocation_UnknownTrip(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateLocation(context.Background(), "missing", common.NewLocation(32.88, -96.90))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrTripNotFound {
		t.Fatalf("expected TRIP_NOT_FOUND, got %v", err)
	}
}

func TestUpdateLocation_CompletedTripRejected(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)
	if _, err := f.svc.Complete(context.Background(), trip.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err := f.svc.UpdateLocation(context.Background(), trip.ID, common.NewLocation(32.88, -96.90))
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrTripCompleted {
		t.Fatalf("expected TRIP_ALREADY_COMPLETED, got %v", err)
	}
}

// --- Complete ---

func TestComplete_RetiresTrip(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)

	confirmation, err := f.svc.Complete(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if confirmation.TripID != trip.ID || confirmation.TruckID != "TRK-2001" {
		t.Fatalf("unexpected confirmation: %+v", confirmation)
	}

	stored := f.repo.store[trip.ID]
	if stored.Active {
		t.Fatal("expected trip marked inactive")
	}
	if batch := f.batches.NextBatch(trip.ID, 3); batch != nil {
		t.Fatal("expected intersection queue discarded")
	}
}

func TestComplete_IsTerminal(t *testing.T) {
	f := newFixture(t)
	trip := f.schedule(t)

	if _, err := f.svc.Complete(context.Background(), trip.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}

	_, err := f.svc.Complete(context.Background(), trip.ID)
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrTripCompleted {
		t.Fatalf("expected TRIP_ALREADY_COMPLETED, got %v", err)
	}
}

func TestComplete_UnknownTrip(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Complete(context.Background(), "missing")
	var derr *domainerrors.DomainError
	if !errors.As(err, &derr) || derr.Code != domainerrors.ErrTripNotFound {
		t.Fatalf("expected TRIP_NOT_FOUND, got %v", err)
	}
}
