package availability

import (
	"sort"
	"sync"
	"time"
)

// Interval is a half-open reserved range [Start, End) on a staff calendar.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries (one ends exactly where the other starts) do not overlap.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && start.Before(iv.End)
}

// intervalIndex holds the committed reserved intervals per staff id. It is
// the single source of truth for booking-conflict checks; registration and
// retraction are idempotent so the index never drifts from the committed
// bookings that drive it.
type intervalIndex struct {
	mu        sync.RWMutex
	intervals map[string][]Interval
	gen       map[string]uint64 // bumped on every mutation; embedded in cache keys

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func newIntervalIndex() *intervalIndex {
	return &intervalIndex{
		intervals: make(map[string][]Interval),
		gen:       make(map[string]uint64),
		locks:     make(map[string]*sync.Mutex),
	}
}

// staffLock returns the mutex serializing check-and-commit sequences for
// one staff member. Operations on different staff ids are fully independent.
func (idx *intervalIndex) staffLock(staffID string) *sync.Mutex {
	idx.lockMu.Lock()
	defer idx.lockMu.Unlock()
	lock, ok := idx.locks[staffID]
	if !ok {
		lock = &sync.Mutex{}
		idx.locks[staffID] = lock
	}
	return lock
}

// add registers an interval. Registering an identical interval twice is a
// no-op, so replays cannot inflate the index.
func (idx *intervalIndex) add(staffID string, start, end time.Time) {
	if !start.Before(end) {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, iv := range idx.intervals[staffID] {
		if iv.Start.Equal(start) && iv.End.Equal(end) {
			return
		}
	}
	ivs := append(idx.intervals[staffID], Interval{Start: start, End: end})
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
	idx.intervals[staffID] = ivs
	idx.gen[staffID]++
}

// remove retracts an interval. Removing an interval not present is a no-op.
func (idx *intervalIndex) remove(staffID string, start, end time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	ivs := idx.intervals[staffID]
	for i, iv := range ivs {
		if iv.Start.Equal(start) && iv.End.Equal(end) {
			idx.intervals[staffID] = append(ivs[:i], ivs[i+1:]...)
			idx.gen[staffID]++
			return
		}
	}
}

// overlapping returns the committed intervals intersecting [start, end).
func (idx *intervalIndex) overlapping(staffID string, start, end time.Time) []Interval {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []Interval
	for _, iv := range idx.intervals[staffID] {
		if iv.Overlaps(start, end) {
			out = append(out, iv)
		}
	}
	return out
}

// countOn returns how many committed intervals start on the given date,
// used as the utilization tie-break for staff assignment.
func (idx *intervalIndex) countOn(staffID string, date time.Time) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	y, m, d := date.Date()
	count := 0
	for _, iv := range idx.intervals[staffID] {
		iy, im, id := iv.Start.Date()
		if iy == y && im == m && id == d {
			count++
		}
	}
	return count
}

// generation returns the mutation counter for a staff id.
func (idx *intervalIndex) generation(staffID string) uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.gen[staffID]
}

// snapshot returns a copy of a staff member's intervals, for tests and
// invariant checks.
func (idx *intervalIndex) snapshot(staffID string) []Interval {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]Interval(nil), idx.intervals[staffID]...)
}
