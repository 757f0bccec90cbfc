package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aria-live/concert-catalog/internal/catalog"
	"github.com/aria-live/concert-catalog/internal/catalog/store"
)

var testNow = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raws := []catalog.RawEvent{
		{
			SequenceNumber: 1,
			Name:           "Past Event",
			Date:           "2023-06-01",
			Location:       catalog.RawLocation{Country: "USA", City: "New York"},
			Awards:         []catalog.RawAward{{Name: "Best Show", Year: 2023}},
		},
		{
			SequenceNumber: 2,
			Name:           "Upcoming Event 1",
			Date:           "2025-02-01",
			Location:       catalog.RawLocation{Country: "France", City: "Paris"},
		},
		{
			SequenceNumber: 3,
			Name:           "Upcoming Event 2",
			Date:           "2025-03-01",
			Location:       catalog.RawLocation{Country: "Japan", City: "Tokyo"},
		},
		{
			SequenceNumber: 4,
			Name:           "Another Past Event",
			Date:           "2023-11-01",
			Location:       catalog.RawLocation{Country: "UK", City: "London"},
		},
	}
	events, err := catalog.ConvertEvents(raws, testNow)
	require.NoError(t, err)

	st := store.New(events)
	svc := NewService(st)
	svc.nowFn = func() time.Time { return testNow }

	r := gin.New()
	svc.RegisterRoutes(r)
	return r, st
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodePage(t *testing.T, resp *httptest.ResponseRecorder) catalog.Page {
	t.Helper()
	var page catalog.Page
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	return page
}

func pageNames(page catalog.Page) []string {
	names := make([]string, len(page.Data))
	for i, e := range page.Data {
		names[i] = e.Name
	}
	return names
}

func TestHandleList_DefaultSortIsDateDescending(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/events", "")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	require.Equal(t, 4, page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, []string{"Upcoming Event 2", "Upcoming Event 1", "Another Past Event", "Past Event"}, pageNames(page))
}

func TestHandleList_FilterCombination(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/events?country=USA&past_only=true", "")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	require.Equal(t, []string{"Past Event"}, pageNames(page))
	require.Equal(t, 1, page.Total)
}

func TestHandleList_PaginationBeyondRange(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/events?page=7&page_size=2", "")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	require.Empty(t, page.Data)
	require.Equal(t, 4, page.Total)
	require.Equal(t, 2, page.TotalPages)
}

func TestHandleList_RejectsUnknownSortField(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/events?sort_by=venue", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, errInvalidQuery, body["error"])
}

func TestHandleGet(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/events/1", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var evt catalog.Event
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &evt))
	require.Equal(t, "Past Event", evt.Name)
	require.Equal(t, "past-event", evt.Slug)

	resp = doRequest(r, http.MethodGet, "/v1/events/99", "")
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(r, http.MethodGet, "/v1/events/abc", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleCreate(t *testing.T) {
	r, st := newTestRouter(t)

	body := `{
		"name": "Rome Recital",
		"date": "2025-06-01T20:00:00Z",
		"location": {"country": "Italy", "city": "Rome"},
		"awards": [{"name": "Citta Eterna Prize", "year": 2025}]
	}`
	resp := doRequest(r, http.MethodPost, "/v1/events", body)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created catalog.Event
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.Equal(t, 5, created.SequenceNumber)
	require.Equal(t, "event-5", created.ID)
	require.Equal(t, "rome-recital", created.Slug)
	require.Equal(t, catalog.TypeSolo, created.Type)
	require.Equal(t, catalog.StatusUpcoming, created.Status)
	require.Equal(t, catalog.VenueNotSpecified, created.Location.Venue)
	require.Len(t, created.Awards, 1)
	require.Equal(t, "award-5-0", created.Awards[0].ID)

	require.Equal(t, 5, st.Len())
}

func TestHandleCreate_InvalidDate(t *testing.T) {
	r, st := newTestRouter(t)

	body := `{"name": "Bad Date", "date": "soon", "location": {"country": "USA", "city": "NYC"}}`
	resp := doRequest(r, http.MethodPost, "/v1/events", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errBody map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	require.Equal(t, errInvalidDate, errBody["error"])
	require.Equal(t, 4, st.Len())
}

func TestHandleCreate_MissingRequiredFields(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodPost, "/v1/events", `{"date": "2025-06-01"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleUpdate(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodPatch, "/v1/events/1", `{"description": "A night to remember."}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated catalog.Event
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Equal(t, "A night to remember.", updated.Description)
	require.Equal(t, "Past Event", updated.Name)

	resp = doRequest(r, http.MethodPatch, "/v1/events/99", `{"description": "nope"}`)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleUpdate_RejectsUnknownStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodPatch, "/v1/events/1", `{"status": "postponed"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleDelete(t *testing.T) {
	r, st := newTestRouter(t)

	resp := doRequest(r, http.MethodDelete, "/v1/events/4", "")
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Equal(t, 3, st.Len())

	resp = doRequest(r, http.MethodDelete, "/v1/events/4", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleStats(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/stats", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	require.Equal(t, 2, stats.TotalConcerts)
	require.Equal(t, 1, stats.TotalAwards)
	require.Equal(t, 2, stats.CountriesToured)
	require.Equal(t, 2, stats.CitiesVisited)
}

func TestHandleAwards(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/awards", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var awards []catalog.Award
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &awards))
	require.Len(t, awards, 1)
	require.Equal(t, "Best Show", awards[0].Name)
}

func TestHandleScheduleEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/schedule/upcoming?limit=1", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var upcoming []catalog.Event
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)
	require.Equal(t, "Upcoming Event 1", upcoming[0].Name)

	resp = doRequest(r, http.MethodGet, "/v1/schedule/past", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var past []catalog.Event
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &past))
	require.Equal(t, "Another Past Event", past[0].Name)
	require.Equal(t, "Past Event", past[1].Name)

	resp = doRequest(r, http.MethodGet, "/v1/schedule", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var schedule struct {
		Years  []int               `json:"years"`
		Groups []catalog.YearGroup `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &schedule))
	require.Equal(t, []int{2025, 2023}, schedule.Years)
	require.Len(t, schedule.Groups, 2)
	require.Equal(t, 2025, schedule.Groups[0].Year)
}

func TestHandleYearsAndLocations(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doRequest(r, http.MethodGet, "/v1/years", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var years []int
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &years))
	require.Equal(t, []int{2025, 2023}, years)

	resp = doRequest(r, http.MethodGet, "/v1/locations", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var places []catalog.Place
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &places))
	require.Len(t, places, 4)
	require.Equal(t, catalog.Place{Country: "USA", City: "New York"}, places[0])
}
