package handlers

import (
	"fmt"
	"net/http"

	"bizboost/internal/caching"

	"github.com/labstack/echo/v4"
)

// EventsHandlers streams the change feed to admin dashboards over
// server-sent events, backed by the KV store's pub/sub channels.
type EventsHandlers struct {
	cacheSvc caching.CacheService
}

// NewEventsHandlers creates a new events handlers instance
func NewEventsHandlers(cacheSvc caching.CacheService) *EventsHandlers {
	return &EventsHandlers{cacheSvc: cacheSvc}
}

var streamableChannels = map[string]bool{
	"registrations": true,
	"applications":  true,
}

// Stream subscribes the client to one change channel. Events are relayed
// as they arrive until the client disconnects.
func (h *EventsHandlers) Stream(c echo.Context) error {
	channel := c.Param("channel")
	if !streamableChannels[channel] {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown event channel")
	}

	ctx := c.Request().Context()
	events, cancel, err := h.cacheSvc.SubscribeEvents(ctx, channel)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to subscribe")
	}
	defer cancel()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
