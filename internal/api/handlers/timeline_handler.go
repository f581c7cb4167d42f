package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/TWRT/ops-dashboard/internal/service"
)

type TimelineHandler struct {
	timelineService *service.TimelineService
}

func NewTimelineHandler(timelineService *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
	}
}

func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.TimelineQuery{
		View:   q.Get("view"),
		Date:   q.Get("date"),
		Client: q.Get("client"),
		Status: q.Get("status"),
	}
	if z := q.Get("zoom"); z != "" {
		zoom, err := strconv.ParseFloat(z, 64)
		if err != nil {
			writeError(w, "get timeline", fmt.Errorf("%w: zoom %q", service.ErrInvalidInput, z))
			return
		}
		query.Zoom = zoom
	}

	timeline, err := h.timelineService.Timeline(service.SessionFromContext(r.Context()), query)
	if err != nil {
		writeError(w, "get timeline", err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}
