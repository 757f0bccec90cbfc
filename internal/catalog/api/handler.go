package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aria-live/concert-catalog/internal/catalog"
	"github.com/aria-live/concert-catalog/internal/catalog/store"
)

// Error type identifiers carried in error response bodies.
const (
	errInternal       = "internal_error"
	errInvalidJSON    = "invalid_json"
	errInvalidQuery   = "invalid_query"
	errInvalidDate    = "invalid_date"
	errEventNotFound  = "event_not_found"
	errInvalidNumber  = "invalid_sequence_number"
	errInvalidPayload = "invalid_payload"
)

// ErrorResponse is the error response body.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type handler struct {
	store *store.Store
	nowFn func() time.Time
}

func newHandler(st *store.Store, nowFn func() time.Time) *handler {
	return &handler{store: st, nowFn: nowFn}
}

// listQuery binds GET /v1/events query parameters. Repeated year/country
// parameters combine into set predicates; all predicates are AND-ed.
type listQuery struct {
	Years        []int    `form:"year"`
	Countries    []string `form:"country"`
	Search       string   `form:"q"`
	UpcomingOnly bool     `form:"upcoming_only"`
	PastOnly     bool     `form:"past_only"`
	Page         int      `form:"page"`
	PageSize     int      `form:"page_size"`
	SortBy       string   `form:"sort_by"`
	SortOrder    string   `form:"sort_order"`
}

// HandleList handles GET /v1/events.
func (h *handler) HandleList(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidQuery, Message: "Invalid query parameters", Details: err.Error()})
		return
	}

	sortBy := catalog.SortField(q.SortBy)
	switch sortBy {
	case "", catalog.SortByDateField, catalog.SortByNameField, catalog.SortByLocationField:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidQuery, Message: "sort_by must be date, name, or location"})
		return
	}

	order := catalog.SortOrder(q.SortOrder)
	switch order {
	case "":
		order = catalog.OrderDesc
	case catalog.OrderAsc, catalog.OrderDesc:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidQuery, Message: "sort_order must be asc or desc"})
		return
	}

	now := h.nowFn()
	events := catalog.Filter(h.store.List(), catalog.Filters{
		Years:        q.Years,
		Countries:    q.Countries,
		Search:       q.Search,
		UpcomingOnly: q.UpcomingOnly,
		PastOnly:     q.PastOnly,
	}, now)
	events = catalog.SortBy(events, sortBy, order)

	c.JSON(http.StatusOK, catalog.Paginate(events, q.Page, q.PageSize))
}

// HandleGet handles GET /v1/events/{number}.
func (h *handler) HandleGet(c *gin.Context) {
	seq, ok := h.sequenceParam(c)
	if !ok {
		return
	}

	evt, err := h.store.GetBySequence(seq)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: errEventNotFound, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, evt)
}

// CreateEventRequest is the request body for POST /v1/events. It mirrors the
// legacy raw shape; the server assigns sequence number, id, and slug.
type CreateEventRequest struct {
	Name          string              `json:"name" binding:"required"`
	Date          string              `json:"date" binding:"required"`
	Type          string              `json:"type"`
	Location      catalog.RawLocation `json:"location"`
	Image         string              `json:"image"`
	Description   string              `json:"description"`
	Awards        []catalog.RawAward  `json:"awards"`
	Collaborators []string            `json:"collaborators"`
}

// HandleCreate handles POST /v1/events.
func (h *handler) HandleCreate(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidJSON, Message: "Invalid JSON body", Details: err.Error()})
		return
	}

	eventType, ok := parseEventType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidPayload, Message: "unknown event type: " + req.Type})
		return
	}

	now := h.nowFn()
	evt, err := catalog.ConvertEvent(catalog.RawEvent{
		Name:          req.Name,
		Date:          req.Date,
		Location:      req.Location,
		Image:         req.Image,
		Awards:        req.Awards,
		Description:   req.Description,
		Collaborators: req.Collaborators,
	}, now)
	if err != nil {
		var dateErr *catalog.InvalidDateError
		if errors.As(err, &dateErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidDate, Message: "date is not a recognized ISO-8601 value", Details: dateErr.Value})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errInternal, Message: "Failed to normalize event"})
		return
	}
	evt.Type = eventType

	if err := evt.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidPayload, Message: err.Error()})
		return
	}

	// The store owns identity: clear the placeholder id and award ids so
	// Add stamps them from the assigned sequence number.
	evt.ID = ""
	for i := range evt.Awards {
		evt.Awards[i].ID = ""
	}

	created := h.store.Add(evt)
	slog.Info("Event created", "sequence_number", created.SequenceNumber, "slug", created.Slug)
	c.JSON(http.StatusCreated, created)
}

// UpdateEventRequest is the request body for PATCH /v1/events/{number}.
// Absent fields leave the stored value untouched.
type UpdateEventRequest struct {
	Name          *string           `json:"name"`
	Date          *string           `json:"date"`
	Type          *string           `json:"type"`
	Status        *string           `json:"status"`
	Description   *string           `json:"description"`
	Location      *catalog.Location `json:"location"`
	Collaborators *[]string         `json:"collaborators"`
	Media         *catalog.Media    `json:"media"`
	Awards        *[]catalog.Award  `json:"awards"`
}

// HandleUpdate handles PATCH /v1/events/{number}.
func (h *handler) HandleUpdate(c *gin.Context) {
	seq, ok := h.sequenceParam(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidJSON, Message: "Invalid JSON body", Details: err.Error()})
		return
	}

	patch := catalog.EventPatch{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		Collaborators: req.Collaborators,
		Media:         req.Media,
		Awards:        req.Awards,
	}

	if req.Date != nil {
		date, err := catalog.ParseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidDate, Message: "date is not a recognized ISO-8601 value", Details: *req.Date})
			return
		}
		patch.Date = &date
	}
	if req.Type != nil {
		eventType, ok := parseEventType(*req.Type)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidPayload, Message: "unknown event type: " + *req.Type})
			return
		}
		patch.Type = &eventType
	}
	if req.Status != nil {
		status, ok := parseEventStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidPayload, Message: "unknown event status: " + *req.Status})
			return
		}
		patch.Status = &status
	}

	updated, err := h.store.Update(seq, patch, h.nowFn())
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: errEventNotFound, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// HandleDelete handles DELETE /v1/events/{number}.
func (h *handler) HandleDelete(c *gin.Context) {
	seq, ok := h.sequenceParam(c)
	if !ok {
		return
	}

	if !h.store.Remove(seq) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: errEventNotFound, Message: "event not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleSchedule handles GET /v1/schedule: the full timeline grouped by year
// descending, upcoming events first (soonest first) followed by past events
// (most recent first).
func (h *handler) HandleSchedule(c *gin.Context) {
	now := h.nowFn()
	events := h.store.List()

	timeline := append(catalog.Upcoming(events, now), catalog.Past(events, now)...)
	c.JSON(http.StatusOK, gin.H{
		"years":  catalog.EventYears(events),
		"groups": catalog.GroupByYear(timeline),
	})
}

// HandleUpcoming handles GET /v1/schedule/upcoming.
func (h *handler) HandleUpcoming(c *gin.Context) {
	events := catalog.Upcoming(h.store.List(), h.nowFn())
	c.JSON(http.StatusOK, limitEvents(c, events))
}

// HandlePast handles GET /v1/schedule/past.
func (h *handler) HandlePast(c *gin.Context) {
	events := catalog.Past(h.store.List(), h.nowFn())
	c.JSON(http.StatusOK, limitEvents(c, events))
}

// HandleStats handles GET /v1/stats.
func (h *handler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Summarize(h.store.List(), h.nowFn()))
}

// HandleAwards handles GET /v1/awards: awards of past events de-duplicated
// by name.
func (h *handler) HandleAwards(c *gin.Context) {
	awards := catalog.UniqueAwards(h.store.List(), h.nowFn())
	if awards == nil {
		awards = []catalog.Award{}
	}
	c.JSON(http.StatusOK, awards)
}

// HandleYears handles GET /v1/years.
func (h *handler) HandleYears(c *gin.Context) {
	years := catalog.EventYears(h.store.List())
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, years)
}

// HandleLocations handles GET /v1/locations.
func (h *handler) HandleLocations(c *gin.Context) {
	places := catalog.UniqueLocations(h.store.List())
	if places == nil {
		places = []catalog.Place{}
	}
	c.JSON(http.StatusOK, places)
}

func (h *handler) sequenceParam(c *gin.Context) (int, bool) {
	seq, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidNumber, Message: "sequence number must be an integer"})
		return 0, false
	}
	return seq, true
}

func limitEvents(c *gin.Context, events []catalog.Event) []catalog.Event {
	if events == nil {
		events = []catalog.Event{}
	}
	raw := c.Query("limit")
	if raw == "" {
		return events
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 || limit >= len(events) {
		return events
	}
	return events[:limit]
}

func parseEventType(value string) (catalog.EventType, bool) {
	switch catalog.EventType(value) {
	case "":
		return catalog.TypeSolo, true
	case catalog.TypeSolo, catalog.TypeOrchestra, catalog.TypeChamber,
		catalog.TypeCompetition, catalog.TypeMasterclass, catalog.TypeOther:
		return catalog.EventType(value), true
	}
	return "", false
}

func parseEventStatus(value string) (catalog.EventStatus, bool) {
	switch catalog.EventStatus(value) {
	case catalog.StatusUpcoming, catalog.StatusPast, catalog.StatusCancelled, catalog.StatusOngoing:
		return catalog.EventStatus(value), true
	}
	return "", false
}
