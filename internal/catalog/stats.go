package catalog

import (
	"strings"
	"time"
)

// Stats is the aggregate summary computed over past events only.
type Stats struct {
	TotalConcerts   int `json:"total_concerts"`
	TotalAwards     int `json:"total_awards"`
	CountriesToured int `json:"countries_toured"`
	CitiesVisited   int `json:"cities_visited"`
}

// TotalConcerts counts the events that have already occurred.
func TotalConcerts(events []Event, now time.Time) int {
	return len(Past(events, now))
}

// TotalAwards sums the award counts of past events. Awards sharing a name
// across different events are counted once per event here; see UniqueAwards
// for the de-duplicated view.
func TotalAwards(events []Event, now time.Time) int {
	total := 0
	for _, e := range Past(events, now) {
		total += len(e.Awards)
	}
	return total
}

// CountriesToured counts the distinct countries among past events.
func CountriesToured(events []Event, now time.Time) int {
	countries := make(map[string]bool)
	for _, e := range Past(events, now) {
		countries[e.Location.Country] = true
	}
	return len(countries)
}

// CitiesVisited counts the distinct city/country pairs among past events.
// The pair is the key, not the city alone, so same-named cities in different
// countries are counted separately.
func CitiesVisited(events []Event, now time.Time) int {
	cities := make(map[string]bool)
	for _, e := range Past(events, now) {
		cities[strings.ToLower(e.Location.City+", "+e.Location.Country)] = true
	}
	return len(cities)
}

// UniqueAwards returns the awards of past events de-duplicated by name.
// Past events are iterated most recent first, and the first occurrence of a
// name wins, so the retained entry comes from the latest event that earned it.
func UniqueAwards(events []Event, now time.Time) []Award {
	seen := make(map[string]bool)
	var awards []Award
	for _, e := range Past(events, now) {
		for _, a := range e.Awards {
			if seen[a.Name] {
				continue
			}
			seen[a.Name] = true
			awards = append(awards, a)
		}
	}
	return awards
}

// Summarize computes the full aggregate summary in one pass over the past
// partition.
func Summarize(events []Event, now time.Time) Stats {
	past := Past(events, now)

	totalAwards := 0
	countries := make(map[string]bool)
	cities := make(map[string]bool)
	for _, e := range past {
		totalAwards += len(e.Awards)
		countries[e.Location.Country] = true
		cities[strings.ToLower(e.Location.City+", "+e.Location.Country)] = true
	}

	return Stats{
		TotalConcerts:   len(past),
		TotalAwards:     totalAwards,
		CountriesToured: len(countries),
		CitiesVisited:   len(cities),
	}
}
