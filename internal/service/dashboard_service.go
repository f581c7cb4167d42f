package service

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/rollup"
)

type OverdueTodo struct {
	models.Todo
	DueIn string `json:"due_in"`
}

type Dashboard struct {
	Projects     rollup.ProjectCounts `json:"projects"`
	Todos        rollup.TodoCounts    `json:"todos"`
	Users        int                  `json:"users"`
	Contributors []rollup.Contributor `json:"contributors"`
	Overdue      []OverdueTodo        `json:"overdue"`
	LoadedAt     time.Time            `json:"loaded_at"`
}

type DashboardService struct {
	loader *Loader
	logger *log.Logger
	now    func() time.Time
}

func NewDashboardService(loader *Loader, logger *log.Logger, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{loader: loader, logger: logger, now: now}
}

// Dashboard never fails: a load error is logged and the last snapshot is used.
func (s *DashboardService) Dashboard(session *models.Session) Dashboard {
	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("dashboard rendered from stale data", "err", err)
	}

	now := s.now()
	summary := rollup.Summarize(snap.Projects, snap.Todos, snap.Users, now)

	overdue := make([]OverdueTodo, len(summary.Overdue))
	for i, t := range summary.Overdue {
		overdue[i] = OverdueTodo{Todo: t, DueIn: humanize.RelTime(*t.DueDate, now, "ago", "from now")}
	}

	return Dashboard{
		Projects:     summary.Projects,
		Todos:        summary.Todos,
		Users:        summary.Users,
		Contributors: summary.Contributors,
		Overdue:      overdue,
		LoadedAt:     snap.LoadedAt,
	}
}
