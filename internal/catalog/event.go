package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus is the lifecycle state of an event relative to the clock.
// Upcoming and past are derived from the event date; cancelled and ongoing
// are externally supplied and never overwritten by derivation.
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusPast      EventStatus = "past"
	StatusCancelled EventStatus = "cancelled"
	StatusOngoing   EventStatus = "ongoing"
)

// EventType is the performance category.
type EventType string

const (
	TypeSolo        EventType = "solo"
	TypeOrchestra   EventType = "orchestra"
	TypeChamber     EventType = "chamber"
	TypeCompetition EventType = "competition"
	TypeMasterclass EventType = "masterclass"
	TypeOther       EventType = "other"
)

// Award is a named recognition attached to an event. Name is the
// de-duplication key for aggregate statistics; IDs are positional within one
// event's award list and not globally unique.
type Award struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Category string `json:"category,omitempty"`
}

// Location describes where an event takes place. Venue always carries a
// value; when the source omits it the sentinel "Venue not specified" is used.
type Location struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Venue    string `json:"venue"`
	Building string `json:"building,omitempty"`
}

// Media holds image references for an event. May be empty.
type Media struct {
	ImageURLs []string `json:"image_urls"`
}

// TicketInfo carries pricing from archive records that include a fee.
type TicketInfo struct {
	IsFree   bool             `json:"is_free"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

// Event is the canonical performance record the catalog owns.
type Event struct {
	ID             string      `json:"id"`
	SequenceNumber int         `json:"sequence_number"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Type           EventType   `json:"type"`
	Status         EventStatus `json:"status"`
	Description    string      `json:"description,omitempty"`

	// Date is the sole timestamp used for sorting and the upcoming/past
	// partition. Comparison is chronological, never lexicographic.
	Date time.Time `json:"date"`

	Location      Location    `json:"location"`
	Collaborators []string    `json:"collaborators,omitempty"`
	Media         Media       `json:"media"`
	TicketInfo    *TicketInfo `json:"ticket_info,omitempty"`
	Program       []string    `json:"program,omitempty"`
	Awards        []Award     `json:"awards"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveStatus partitions a date against now. The boundary is closed on the
// upcoming side: an event exactly at now counts as upcoming.
func DeriveStatus(date, now time.Time) EventStatus {
	if !date.Before(now) {
		return StatusUpcoming
	}
	return StatusPast
}

// StatusAt returns the event's status relative to now. Externally supplied
// cancelled/ongoing states win over derivation.
func (e Event) StatusAt(now time.Time) EventStatus {
	if e.Status == StatusCancelled || e.Status == StatusOngoing {
		return e.Status
	}
	return DeriveStatus(e.Date, now)
}

// IsUpcoming reports whether the event date is at or after now.
func (e Event) IsUpcoming(now time.Time) bool {
	return !e.Date.Before(now)
}

// IsPast reports whether the event date is strictly before now.
func (e Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}

// Year returns the calendar year of the event date.
func (e Event) Year() int {
	return e.Date.Year()
}

// Validate ensures the event carries the attributes every consumer relies on.
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.Location.Country == "" {
		return fmt.Errorf("location.country is required")
	}
	if e.Location.City == "" {
		return fmt.Errorf("location.city is required")
	}
	return nil
}
