package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatistics_WorkedExample(t *testing.T) {
	events := fixtureEvents(t)

	require.Equal(t, 2, TotalConcerts(events, testNow))
	require.Equal(t, 1, TotalAwards(events, testNow))
	require.Equal(t, 2, CountriesToured(events, testNow))

	awards := UniqueAwards(events, testNow)
	require.Len(t, awards, 1)
	require.Equal(t, "Best Show", awards[0].Name)
	require.Equal(t, 2023, awards[0].Year)
}

func TestTotalAwards_CountsDuplicateNamesAcrossEvents(t *testing.T) {
	raws := []RawEvent{
		{
			SequenceNumber: 1,
			Name:           "First Night",
			Date:           "2023-05-01",
			Location:       RawLocation{Country: "USA", City: "NYC"},
			Awards:         []RawAward{{Name: "Critics Choice", Year: 2023}},
		},
		{
			SequenceNumber: 2,
			Name:           "Second Night",
			Date:           "2024-05-01",
			Location:       RawLocation{Country: "USA", City: "NYC"},
			Awards:         []RawAward{{Name: "Critics Choice", Year: 2024}},
		},
	}
	events, err := ConvertEvents(raws, testNow)
	require.NoError(t, err)

	// The flat total does not de-duplicate by name.
	require.Equal(t, 2, TotalAwards(events, testNow))
	require.Len(t, UniqueAwards(events, testNow), 1)
}

func TestUniqueAwards_FirstOccurrenceWins(t *testing.T) {
	raws := []RawEvent{
		{
			SequenceNumber: 1,
			Name:           "Older Show",
			Date:           "2022-03-01",
			Location:       RawLocation{Country: "USA", City: "NYC"},
			Awards:         []RawAward{{Name: "Golden Fret", Year: 2022}},
		},
		{
			SequenceNumber: 2,
			Name:           "Newer Show",
			Date:           "2024-03-01",
			Location:       RawLocation{Country: "UK", City: "London"},
			Awards:         []RawAward{{Name: "Golden Fret", Year: 2024}, {Name: "Silver String", Year: 2024}},
		},
	}
	events, err := ConvertEvents(raws, testNow)
	require.NoError(t, err)

	awards := UniqueAwards(events, testNow)
	require.Len(t, awards, 2)

	// Past events iterate most recent first, so the 2024 entry is retained.
	require.Equal(t, "Golden Fret", awards[0].Name)
	require.Equal(t, 2024, awards[0].Year)
	require.Equal(t, "Silver String", awards[1].Name)
}

func TestUniqueAwards_IgnoresUpcomingEvents(t *testing.T) {
	raws := []RawEvent{
		{
			SequenceNumber: 1,
			Name:           "Future Gala",
			Date:           "2026-03-01",
			Location:       RawLocation{Country: "USA", City: "NYC"},
			Awards:         []RawAward{{Name: "Anticipated Award", Year: 2026}},
		},
	}
	events, err := ConvertEvents(raws, testNow)
	require.NoError(t, err)

	require.Empty(t, UniqueAwards(events, testNow))
	require.Zero(t, TotalAwards(events, testNow))
}

func TestCitiesVisited_CityCountryPairIsTheKey(t *testing.T) {
	raws := []RawEvent{
		{SequenceNumber: 1, Name: "A", Date: "2023-01-01", Location: RawLocation{Country: "USA", City: "Springfield"}},
		{SequenceNumber: 2, Name: "B", Date: "2023-02-01", Location: RawLocation{Country: "Canada", City: "Springfield"}},
		{SequenceNumber: 3, Name: "C", Date: "2023-03-01", Location: RawLocation{Country: "USA", City: "springfield"}},
	}
	events, err := ConvertEvents(raws, testNow)
	require.NoError(t, err)

	// Same city name in two countries counts twice; casing does not.
	require.Equal(t, 2, CitiesVisited(events, testNow))
}

func TestSummarize_MatchesIndividualStatistics(t *testing.T) {
	events := fixtureEvents(t)
	stats := Summarize(events, testNow)

	require.Equal(t, TotalConcerts(events, testNow), stats.TotalConcerts)
	require.Equal(t, TotalAwards(events, testNow), stats.TotalAwards)
	require.Equal(t, CountriesToured(events, testNow), stats.CountriesToured)
	require.Equal(t, CitiesVisited(events, testNow), stats.CitiesVisited)
	require.Equal(t, 2, stats.CitiesVisited)
}
