package hydration

import (
	"log"
	"sync"

	"FitTrack/internal/engine"
	"FitTrack/internal/store"
)

// Counter tracks today's water cups with concurrency safety. Writes are
// optimistic: the local count changes first and the store write follows
// synchronously. A failed write keeps the local count and is surfaced
// through LastError, matching the fire-and-forget semantics the mobile
// client uses.
type Counter struct {
	mu      sync.Mutex
	store   store.Store
	day     string
	cups    int
	lastErr error
}

// NewCounter creates a counter synced to the given day.
func NewCounter(st store.Store, day string) (*Counter, error) {
	c := &Counter{store: st}
	if err := c.Sync(day); err != nil {
		return nil, err
	}
	return c, nil
}

// Sync points the counter at a day and loads its persisted count. Used
// at startup and on day rollover.
func (c *Counter) Sync(day string) error {
	cups, err := c.store.HydrationCups(day)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.day = day
	c.cups = cups
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// Adopt replaces the local count with a pushed store snapshot. The
// snapshot wins over any local value; last writer wins.
func (c *Counter) Adopt(cups int) {
	c.mu.Lock()
	c.cups = cups
	c.mu.Unlock()
}

// Increment adds a cup and returns the new count.
func (c *Counter) Increment() int {
	return c.apply(engine.IncrementCups)
}

// Decrement removes a cup, never going below zero, and returns the new
// count.
func (c *Counter) Decrement() int {
	return c.apply(engine.DecrementCups)
}

func (c *Counter) apply(transition func(int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cups = transition(c.cups)
	if err := c.store.SetHydrationCups(c.day, c.cups); err != nil {
		log.Printf("[ERROR] hydration write for %s failed: %v", c.day, err)
		c.lastErr = err
	} else {
		c.lastErr = nil
	}
	return c.cups
}

// Cups returns the current local count.
func (c *Counter) Cups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cups
}

// Day returns the day the counter is synced to.
func (c *Counter) Day() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// LastError reports the most recent failed write, or nil if the last
// write succeeded.
func (c *Counter) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
