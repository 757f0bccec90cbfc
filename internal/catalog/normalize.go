package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// VenueNotSpecified is the sentinel venue used when a source record carries
// neither a venue nor a building. An empty venue is never emitted.
const VenueNotSpecified = "Venue not specified"

// RawAward is an award as it appears in legacy literal data.
type RawAward struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// RawLocation is the nested location of the legacy literal shape. Venue and
// building are both optional; venue wins when both are present.
type RawLocation struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Building string `json:"building,omitempty"`
	Venue    string `json:"venue,omitempty"`
}

// RawEvent is the legacy literal shape of an event record. It is one of two
// raw shapes the catalog normalizes; the other lives in the archive package.
type RawEvent struct {
	SequenceNumber int         `json:"sequence_number"`
	Name           string      `json:"name"`
	Date           string      `json:"date"`
	Location       RawLocation `json:"location"`
	Image          string      `json:"image,omitempty"`
	Awards         []RawAward  `json:"awards,omitempty"`
	Description    string      `json:"description,omitempty"`
	Collaborators  []string    `json:"collaborators,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats found across the raw sources: full
// RFC 3339 timestamps, zone-less timestamps, and bare calendar dates.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Slugify derives a URL-safe identifier from a display name: lower-cased,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// ConvertEvent normalizes one legacy raw record into the canonical shape.
// The returned error is an *InvalidDateError when the date cannot be parsed;
// no event is produced in that case.
func ConvertEvent(raw RawEvent, now time.Time) (Event, error) {
	id := fmt.Sprintf("event-%d", raw.SequenceNumber)

	date, err := ParseDate(raw.Date)
	if err != nil {
		return Event{}, &InvalidDateError{ID: id, Value: raw.Date, Err: err}
	}

	venue := raw.Location.Venue
	if venue == "" {
		venue = raw.Location.Building
	}
	if venue == "" {
		venue = VenueNotSpecified
	}

	var imageURLs []string
	if raw.Image != "" {
		imageURLs = []string{raw.Image}
	}

	awards := make([]Award, len(raw.Awards))
	for i, a := range raw.Awards {
		awards[i] = Award{
			ID:   fmt.Sprintf("award-%d-%d", raw.SequenceNumber, i),
			Name: a.Name,
			Year: a.Year,
		}
	}

	return Event{
		ID:             id,
		SequenceNumber: raw.SequenceNumber,
		Name:           raw.Name,
		Slug:           Slugify(raw.Name),
		Type:           TypeSolo,
		Status:         DeriveStatus(date, now),
		Description:    raw.Description,
		Date:           date,
		Location: Location{
			Country:  raw.Location.Country,
			City:     raw.Location.City,
			Venue:    venue,
			Building: raw.Location.Building,
		},
		Collaborators: raw.Collaborators,
		Media:         Media{ImageURLs: imageURLs},
		Awards:        awards,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ConvertEvents normalizes a batch of legacy records. Records with an
// unparseable date are skipped; their errors are joined and returned
// alongside the successfully converted events so a partial load never aborts
// the whole collection.
func ConvertEvents(raws []RawEvent, now time.Time) ([]Event, error) {
	events := make([]Event, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		evt, err := ConvertEvent(raw, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, evt)
	}
	return events, errors.Join(errs...)
}
