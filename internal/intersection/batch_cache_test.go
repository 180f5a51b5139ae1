package intersection

import (
	"testing"

	"truck-dispatch/internal/common"
)

func makeIntersections(n int) []Intersection {
	out := make([]Intersection, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Intersection{
			Sequence: i,
			Location: common.NewLocation(32.8+float64(i)*0.01, -97.0),
		})
	}
	return out
}

func TestBatchCache_DrainsInSequence(t *testing.T) {
	cache := NewBatchCache()
	cache.Put("trip-1", makeIntersections(10))

	var got []int
	for {
		batch := cache.NextBatch("trip-1", 3)
		if len(batch) == 0 {
			break
		}
		if len(batch) > 3 {
			t.Fatalf("batch larger than requested: %d", len(batch))
		}
		for _, in := range batch {
			got = append(got, in.Sequence)
		}
	}

	if len(got) != 10 {
		t.Fatalf("expected all 10 intersections, got %d", len(got))
	}
	for i, seq := range got {
		if seq != i+1 {
			t.Fatalf("out of order at position %d: got sequence %d", i, seq)
		}
	}
}

func TestBatchCache_FinalBatchIsShort(t *testing.T) {
	cache := NewBatchCache()
	cache.Put("trip-1", makeIntersections(7))

	cache.NextBatch("trip-1", 3)
	cache.NextBatch("trip-1", 3)

	last := cache.NextBatch("trip-1", 3)
	if len(last) != 1 {
		t.Fatalf("expected final batch of 1, got %d", len(last))
	}
	if last[0].Sequence != 7 {
		t.Fatalf("expected sequence 7, got %d", last[0].Sequence)
	}

	if extra := cache.NextBatch("trip-1", 3); extra != nil {
		t.Fatalf("expected nil for exhausted queue, got %d items", len(extra))
	}
}

func TestBatchCache_UnknownTrip(t *testing.T) {
	cache := NewBatchCache()
	if batch := cache.NextBatch("nope", 3); batch != nil {
		t.Fatalf("expected nil for unknown trip, got %d items", len(batch))
	}
}

func TestBatchCache_PutReplacesQueue(t *testing.T) {
	cache := NewBatchCache()
	cache.Put("trip-1", makeIntersections(10))
	cache.NextBatch("trip-1", 3)

	// Reroute: a fresh sequence replaces the remainder wholesale.
	cache.Put("trip-1", makeIntersections(5))

	batch := cache.NextBatch("trip-1", 3)
	if len(batch) != 3 || batch[0].Sequence != 1 {
		t.Fatalf("expected new queue starting at sequence 1, got %+v", batch)
	}
}

func TestBatchCache_Remove(t *testing.T) {
	cache := NewBatchCache()
	cache.Put("trip-1", makeIntersections(5))
	cache.Remove("trip-1")

	if batch := cache.NextBatch("trip-1", 3); batch != nil {
		t.Fatalf("expected nil after removal, got %d items", len(batch))
	}
}

func TestBatchCache_PutCopiesInput(t *testing.T) {
	cache := NewBatchCache()
	src := makeIntersections(3)
	cache.Put("trip-1", src)

	src[0].Sequence = 99

	batch := cache.NextBatch("trip-1", 1)
	if batch[0].Sequence != 1 {
		t.Fatalf("cache aliased caller slice: got sequence %d", batch[0].Sequence)
	}
}

func TestBatchCache_ConcurrentDrainExactlyOnce(t *testing.T) {
	cache := NewBatchCache()
	cache.Put("trip-1", makeIntersections(90))

	results := make(chan []Intersection, 30)
	for i := 0; i < 30; i++ {
		go func() {
			results <- cache.NextBatch("trip-1", 3)
		}()
	}

	seen := make(map[int]bool)
	total := 0
	for i := 0; i < 30; i++ {
		batch := <-results
		for _, in := range batch {
			if seen[in.Sequence] {
				t.Fatalf("sequence %d delivered twice", in.Sequence)
			}
			seen[in.Sequence] = true
			total++
		}
	}
	if total != 90 {
		t.Fatalf("expected 90 intersections delivered, got %d", total)
	}
}
