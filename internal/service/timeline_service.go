package service

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/rollup"
)

type TimelineQuery struct {
	View   string
	Date   string
	Zoom   float64
	Client string
	Status string
}

type Timeline struct {
	View      rollup.View          `json:"view"`
	Reference time.Time            `json:"reference"`
	Scale     rollup.Scale         `json:"scale"`
	TodayLeft float64              `json:"today_left"`
	Days      []string             `json:"days"`
	Prev      time.Time            `json:"prev"`
	Next      time.Time            `json:"next"`
	ZoomIn    float64              `json:"zoom_in"`
	ZoomOut   float64              `json:"zoom_out"`
	Groups    []rollup.PlacedGroup `json:"groups"`
	Clients   []models.Client      `json:"clients"`
}

type TimelineService struct {
	loader *Loader
	logger *log.Logger
	now    func() time.Time
}

func NewTimelineService(loader *Loader, logger *log.Logger, now func() time.Time) *TimelineService {
	if now == nil {
		now = time.Now
	}
	return &TimelineService{loader: loader, logger: logger, now: now}
}

func (s *TimelineService) Timeline(session *models.Session, q TimelineQuery) (Timeline, error) {
	view, err := rollup.ParseView(q.View)
	if err != nil {
		return Timeline{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Project dates are UTC midnights, so the scale is laid out in UTC too.
	now := s.now().UTC()
	ref := now
	if q.Date != "" {
		d, err := parseFormDate(q.Date)
		if err != nil {
			return Timeline{}, err
		}
		ref = *d
	}
	zoom := rollup.SnapZoom(q.Zoom)

	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("timeline rendered from stale data", "err", err)
	}

	scale := rollup.NewScale(ref, view, zoom)
	projects := rollup.FilterProjects(snap.Projects, rollup.ProjectFilter{Client: q.Client, Status: q.Status})
	groups := rollup.GroupByClient(snap.Clients, projects)

	clients := snap.Clients
	if clients == nil {
		clients = []models.Client{}
	}

	return Timeline{
		View:      view,
		Reference: ref,
		Scale:     scale,
		TodayLeft: scale.TodayOffset(now),
		Days:      scale.DayLabels(),
		Prev:      rollup.Navigate(ref, view, -1),
		Next:      rollup.Navigate(ref, view, 1),
		ZoomIn:    rollup.StepZoom(zoom, rollup.ZoomStep),
		ZoomOut:   rollup.StepZoom(zoom, -rollup.ZoomStep),
		Groups:    scale.Place(groups),
		Clients:   clients,
	}, nil
}
