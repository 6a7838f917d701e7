package store

import "sync/atomic"

// Clock is the monotonic logical clock stamping run records.
//
// All log ordering uses seq numbers from this clock, never wall time,
// so replaying a log produces identical order.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the store's single-writer design means one goroutine typically
// calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used to resume from the last persisted seq (see Store.LastSeq).
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
