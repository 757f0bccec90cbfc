package catalog

import (
	"sort"
	"strings"
	"time"
)

// SortOrder controls the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortField selects the key for the paginated listing sort.
type SortField string

const (
	SortByDateField     SortField = "date"
	SortByNameField     SortField = "name"
	SortByLocationField SortField = "location"
)

// SortByDate returns a new slice ordered chronologically. Events sharing a
// date are ordered by ascending sequence number under both directions, which
// keeps the ordering stable across repeated loads.
func SortByDate(events []Event, order SortOrder) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Date.Equal(b.Date) {
			return a.SequenceNumber < b.SequenceNumber
		}
		if order == OrderDesc {
			return a.Date.After(b.Date)
		}
		return a.Date.Before(b.Date)
	})
	return sorted
}

// SortBy orders events by the given field. Date sorting keeps the sequence
// number tiebreak; name and location compare case-insensitively.
func SortBy(events []Event, field SortField, order SortOrder) []Event {
	if field == "" || field == SortByDateField {
		return SortByDate(events, order)
	}

	key := func(e Event) string {
		if field == SortByNameField {
			return strings.ToLower(e.Name)
		}
		return strings.ToLower(e.Location.City + ", " + e.Location.Country)
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == OrderDesc {
			return key(sorted[i]) > key(sorted[j])
		}
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}

// Upcoming returns events at or after now, soonest first.
func Upcoming(events []Event, now time.Time) []Event {
	var upcoming []Event
	for _, e := range events {
		if e.IsUpcoming(now) {
			upcoming = append(upcoming, e)
		}
	}
	return SortByDate(upcoming, OrderAsc)
}

// Past returns events strictly before now, most recent first.
func Past(events []Event, now time.Time) []Event {
	var past []Event
	for _, e := range events {
		if e.IsPast(now) {
			past = append(past, e)
		}
	}
	return SortByDate(past, OrderDesc)
}

// YearGroup is one year's worth of events, in input order.
type YearGroup struct {
	Year   int     `json:"year"`
	Events []Event `json:"events"`
}

// GroupByYear buckets events by calendar year, years descending. Events keep
// the order of the input sequence within each year; callers pre-sort when a
// specific intra-year order matters.
func GroupByYear(events []Event) []YearGroup {
	byYear := make(map[int][]Event)
	for _, e := range events {
		year := e.Year()
		byYear[year] = append(byYear[year], e)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]YearGroup, len(years))
	for i, year := range years {
		groups[i] = YearGroup{Year: year, Events: byYear[year]}
	}
	return groups
}

// Filters are independently combinable predicates; all supplied predicates
// are AND-ed. Country matching is case-insensitive. Search is a
// case-insensitive substring match over name, description, city, country,
// venue, and collaborators.
type Filters struct {
	Years        []int
	Countries    []string
	Search       string
	UpcomingOnly bool
	PastOnly     bool
}

// Filter applies the predicate set to events, preserving input order.
func Filter(events []Event, f Filters, now time.Time) []Event {
	var result []Event
	for _, e := range events {
		if matchesFilters(e, f, now) {
			result = append(result, e)
		}
	}
	return result
}

func matchesFilters(e Event, f Filters, now time.Time) bool {
	if len(f.Years) > 0 && !containsInt(f.Years, e.Year()) {
		return false
	}

	if len(f.Countries) > 0 {
		matched := false
		for _, c := range f.Countries {
			if strings.EqualFold(c, e.Location.Country) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.Search != "" {
		haystack := strings.ToLower(strings.Join([]string{
			e.Name,
			e.Description,
			e.Location.City,
			e.Location.Country,
			e.Location.Venue,
			strings.Join(e.Collaborators, " "),
		}, " "))
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}

	if f.UpcomingOnly && e.IsPast(now) {
		return false
	}
	if f.PastOnly && e.IsUpcoming(now) {
		return false
	}

	return true
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

const defaultPageSize = 10

// Page is one page of a paginated listing. Total and TotalPages always
// describe the full input, even when the requested page is out of range.
type Page struct {
	Data       []Event `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

// Paginate slices events into 1-indexed pages. A page beyond the range
// yields an empty data slice, never an error. Non-positive page numbers are
// clamped to 1 and a non-positive page size falls back to the default.
func Paginate(events []Event, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total := len(events)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]Event, end-start)
	copy(data, events[start:end])

	return Page{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Place is a distinct country/city pair.
type Place struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// UniqueLocations returns the distinct places among all events,
// de-duplicated by the lower-cased "country-city" key, first occurrence
// wins, insertion order preserved.
func UniqueLocations(events []Event) []Place {
	seen := make(map[string]bool)
	var places []Place
	for _, e := range events {
		key := strings.ToLower(e.Location.Country + "-" + e.Location.City)
		if seen[key] {
			continue
		}
		seen[key] = true
		places = append(places, Place{Country: e.Location.Country, City: e.Location.City})
	}
	return places
}

// EventYears returns the distinct calendar years present among all events,
// descending.
func EventYears(events []Event) []int {
	seen := make(map[int]bool)
	var years []int
	for _, e := range events {
		year := e.Year()
		if seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// EventsInRange returns events whose date falls within [start, end],
// inclusive on both ends, preserving input order.
func EventsInRange(events []Event, start, end time.Time) []Event {
	var result []Event
	for _, e := range events {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		result = append(result, e)
	}
	return result
}
