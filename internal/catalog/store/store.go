// Package store holds the catalog's canonical event collection in memory.
// There is no persistence: a process restart resets the collection to the
// bundled source data it was constructed with.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/aria-live/concert-catalog/internal/catalog"
)

// Store is the owned, mutable working copy of the event collection. All
// accessors copy events out so callers never alias internal state. A single
// RWMutex guards the collection since the HTTP surface introduces concurrent
// readers and writers.
type Store struct {
	mu     sync.RWMutex
	events []catalog.Event
}

// New creates a store seeded with the given events. The slice is copied.
func New(initial []catalog.Event) *Store {
	events := make([]catalog.Event, len(initial))
	copy(events, initial)
	return &Store{events: events}
}

// List returns a copy of all events in insertion order.
func (s *Store) List() []catalog.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]catalog.Event, len(s.events))
	copy(events, s.events)
	return events
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// GetBySequence retrieves an event by sequence number.
// Returns catalog.ErrNotFound when no event matches.
func (s *Store) GetBySequence(seq int) (catalog.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.SequenceNumber == seq {
			return e, nil
		}
	}
	return catalog.Event{}, catalog.ErrNotFound
}

// GetByID retrieves an event by its string id.
// Returns catalog.ErrNotFound when no event matches.
func (s *Store) GetByID(id string) (catalog.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return catalog.Event{}, catalog.ErrNotFound
}

// Add appends an event, assigning the next sequence number (max + 1, or 1
// for an empty collection). An empty id becomes "event-<seq>" and an empty
// slug is derived from the name. Returns the stored record.
func (s *Store) Add(e catalog.Event) catalog.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxSeq := 0
	for _, existing := range s.events {
		if existing.SequenceNumber > maxSeq {
			maxSeq = existing.SequenceNumber
		}
	}
	e.SequenceNumber = maxSeq + 1

	if e.ID == "" {
		e.ID = fmt.Sprintf("event-%d", e.SequenceNumber)
	}
	if e.Slug == "" {
		e.Slug = catalog.Slugify(e.Name)
	}
	if len(e.Awards) > 0 {
		awards := make([]catalog.Award, len(e.Awards))
		copy(awards, e.Awards)
		for i := range awards {
			if awards[i].ID == "" {
				awards[i].ID = fmt.Sprintf("award-%d-%d", e.SequenceNumber, i)
			}
		}
		e.Awards = awards
	}

	s.events = append(s.events, e)
	return e
}

// Update merges a partial patch into the event with the given sequence
// number. Returns catalog.ErrNotFound when no event matches; the collection
// is untouched in that case.
func (s *Store) Update(seq int, patch catalog.EventPatch, now time.Time) (catalog.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.events {
		if e.SequenceNumber == seq {
			updated := patch.Apply(e, now)
			s.events[i] = updated
			return updated, nil
		}
	}
	return catalog.Event{}, catalog.ErrNotFound
}

// Remove deletes the event with the given sequence number. Reports whether
// a record was removed.
func (s *Store) Remove(seq int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.events {
		if e.SequenceNumber == seq {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the whole collection, copying the input. Used when the
// bundled dataset is reloaded.
func (s *Store) Replace(events []catalog.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := make([]catalog.Event, len(events))
	copy(replacement, events)
	s.events = replacement
}
