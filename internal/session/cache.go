// Package session holds per-user state: the single-slot itinerary cache, the
// phase of the current generation cycle, and a TTL store that hands out one
// Session per client so itineraries never leak between users.
package session

import (
	"errors"
	"sync"

	"github.com/Yates-Labs/roam/internal/itinerary"
	"github.com/Yates-Labs/roam/internal/trip"
)

// ErrNotOK is returned when a failed result is offered to the cache.
var ErrNotOK = errors.New("only successful results can be cached")

// Entry is a cached itinerary together with the request that produced it.
type Entry struct {
	Result  itinerary.Result
	Request trip.Request
}

// Cache is a single-slot store for the most recent successful itinerary.
type Cache struct {
	mu    sync.RWMutex
	entry *Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Invalidate clears the slot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Set stores result and the request that produced it. Failed results are
// rejected with ErrNotOK and leave the slot untouched.
func (c *Cache) Set(result itinerary.Result, req trip.Request) error {
	if !result.OK() {
		return ErrNotOK
	}
	c.mu.Lock()
	c.entry = &Entry{Result: result, Request: req}
	c.mu.Unlock()
	return nil
}

// Get returns the cached entry, or false when the slot is empty.
func (c *Cache) Get() (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return Entry{}, false
	}
	return *c.entry, true
}
