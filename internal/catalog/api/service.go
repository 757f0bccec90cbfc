// Package api exposes the concert catalog over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aria-live/concert-catalog/internal/catalog/store"
)

// Service provides the catalog HTTP API.
type Service struct {
	store *store.Store

	// nowFn is the reference clock for the upcoming/past partition.
	// Injectable so tests pin "now".
	nowFn func() time.Time
}

// NewService creates a new catalog API service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the catalog API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	handler := newHandler(s.store, func() time.Time { return s.nowFn() })

	events := r.Group("/v1/events")
	{
		events.GET("", handler.HandleList)
		events.POST("", handler.HandleCreate)
		events.GET("/:number", handler.HandleGet)
		events.PATCH("/:number", handler.HandleUpdate)
		events.DELETE("/:number", handler.HandleDelete)
	}

	schedule := r.Group("/v1/schedule")
	{
		schedule.GET("", handler.HandleSchedule)
		schedule.GET("/upcoming", handler.HandleUpcoming)
		schedule.GET("/past", handler.HandlePast)
	}

	r.GET("/v1/stats", handler.HandleStats)
	r.GET("/v1/awards", handler.HandleAwards)
	r.GET("/v1/years", handler.HandleYears)
	r.GET("/v1/locations", handler.HandleLocations)
}
