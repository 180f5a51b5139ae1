package intersection

import "sync"

// BatchCache holds, per trip, the ordered pending queue of upcoming
// intersections and dispenses them in fixed-size batches. Dequeue happens
// under the lock so concurrent drains still deliver each intersection exactly
// once, in sequence order. Contents are in-memory only; a trip's sequence is
// regenerable from its route.
type BatchCache struct {
	mu     sync.Mutex
	queues map[string][]Intersection
}

func NewBatchCache() *BatchCache {
	return &BatchCache{queues: make(map[string][]Intersection)}
}

// Put replaces any existing queue for the trip wholesale.
func (c *BatchCache) Put(tripID string, intersections []Intersection) {
	queue := make([]Intersection, len(intersections))
	copy(queue, intersections)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queues[tripID] = queue
}

// NextBatch dequeues up to n intersections in original order. It returns
// fewer than n (including none) once the queue is exhausted, and never errors
// on an unknown trip.
func (c *BatchCache) NextBatch(tripID string, n int) []Intersection {
	if n <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	queue, ok := c.queues[tripID]
	if !ok || len(queue) == 0 {
		return nil
	}

	if n > len(queue) {
		n = len(queue)
	}
	batch := make([]Intersection, n)
	copy(batch, queue[:n])
	c.queues[tripID] = queue[n:]
	return batch
}

// Remove discards the trip's queue.
func (c *BatchCache) Remove(tripID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.queues, tripID)
}
