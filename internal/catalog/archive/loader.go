// Package archive loads the bundled concert archive document and maps its
// records into the canonical catalog shape. The archive is the richer of the
// two raw shapes the catalog accepts; it carries touring metadata (program,
// artists, fees) that the legacy literal shape lacks.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aria-live/concert-catalog/internal/catalog"
)

// CityNotSpecified is the sentinel city for archive records with a null city.
const CityNotSpecified = "City not specified"

// Record is one entry of the archive document.
type Record struct {
	ID         string   `json:"id" yaml:"id"`
	DateISO    string   `json:"dateISO" yaml:"dateISO"`
	Year       int      `json:"year" yaml:"year"`
	Country    string   `json:"country" yaml:"country"`
	City       string   `json:"city" yaml:"city"`
	Venue      string   `json:"venue" yaml:"venue"`
	EventName  string   `json:"eventName" yaml:"eventName"`
	Program    []string `json:"program" yaml:"program"`
	Artists    []string `json:"artists" yaml:"artists"`
	Tags       []string `json:"tags" yaml:"tags"`
	Capacity   *int     `json:"capacity" yaml:"capacity"`
	Attendance *int     `json:"attendance" yaml:"attendance"`
	Fee        *float64 `json:"fee" yaml:"fee"`
	Currency   string   `json:"currency" yaml:"currency"`
	Sources    []string `json:"sources" yaml:"sources"`
	Notes      string   `json:"notes" yaml:"notes"`
}

// Document is the top-level archive file shape.
type Document struct {
	Events []Record `json:"events" yaml:"events"`
}

// MapRecord converts one archive record into a canonical event. The record's
// id doubles as the slug and the sequence number is positional (index + 1).
// Awards are absent from the archive shape and default to empty.
func MapRecord(rec Record, index int, now time.Time) (catalog.Event, error) {
	date, err := catalog.ParseDate(rec.DateISO)
	if err != nil {
		return catalog.Event{}, &catalog.InvalidDateError{ID: rec.ID, Value: rec.DateISO, Err: err}
	}

	city := rec.City
	if city == "" {
		city = CityNotSpecified
	}
	venue := rec.Venue
	if venue == "" {
		venue = catalog.VenueNotSpecified
	}

	var ticket *catalog.TicketInfo
	if rec.Fee != nil {
		price := decimal.NewFromFloat(*rec.Fee)
		ticket = &catalog.TicketInfo{
			IsFree:   price.IsZero(),
			Price:    &price,
			Currency: rec.Currency,
		}
	}

	return catalog.Event{
		ID:             rec.ID,
		SequenceNumber: index + 1,
		Name:           rec.EventName,
		Slug:           rec.ID,
		Type:           catalog.TypeSolo,
		Status:         catalog.DeriveStatus(date, now),
		Description:    rec.Notes,
		Date:           date,
		Location: catalog.Location{
			Country: rec.Country,
			City:    city,
			Venue:   venue,
		},
		Collaborators: rec.Artists,
		Media:         catalog.Media{ImageURLs: []string{}},
		TicketInfo:    ticket,
		Program:       rec.Program,
		Awards:        []catalog.Award{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MapRecords converts a batch of archive records. Records with an
// unparseable dateISO are skipped and their errors joined, mirroring the
// partial-failure semantics of the legacy normalizer.
func MapRecords(recs []Record, now time.Time) ([]catalog.Event, error) {
	events := make([]catalog.Event, 0, len(recs))
	var errs []error
	for i, rec := range recs {
		evt, err := MapRecord(rec, i, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, evt)
	}
	return events, errors.Join(errs...)
}

// Load reads an archive document from disk and maps it into canonical
// events. The file extension selects the codec: .yaml/.yml parse as YAML,
// anything else as JSON. Records that fail normalization are logged and
// skipped; only a read or decode failure aborts the load.
func Load(path string, now time.Time) ([]catalog.Event, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse archive %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse archive %s: %w", path, err)
		}
	}

	events, mapErr := MapRecords(doc.Events, now)
	if mapErr != nil {
		slog.Warn("Skipped archive records with invalid dates",
			"path", path,
			"loaded", len(events),
			"total", len(doc.Events),
			"error", mapErr,
		)
	}
	return events, nil
}
