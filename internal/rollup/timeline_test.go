package rollup

import (
	"math"
	"testing"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVisibleRange(t *testing.T) {
	ref := time.Date(2025, time.October, 15, 13, 30, 0, 0, time.UTC)

	month := VisibleRange(ref, ViewMonth)
	if !month.Start.Equal(date(2025, time.October, 1)) {
		t.Errorf("expected month start Oct 1, got %v", month.Start)
	}
	if month.End.Day() != 31 || month.End.Month() != time.October {
		t.Errorf("expected month end Oct 31, got %v", month.End)
	}

	week := VisibleRange(ref, ViewWeek)
	if DaysBetween(week.Start, week.End) != 14 {
		t.Errorf("expected a 14 day week range, got %d", DaysBetween(week.Start, week.End))
	}
}

func TestScaleFullMonthBar(t *testing.T) {
	s := NewScale(date(2025, time.October, 15), ViewMonth, 1)
	if s.TotalDays != 30 {
		t.Fatalf("expected 30 total days, got %d", s.TotalDays)
	}

	bar := s.Bar(date(2025, time.October, 1), date(2025, time.October, 31))
	if bar.Left != 0 {
		t.Errorf("expected offset 0, got %v", bar.Left)
	}
	if !approx(bar.Width, TimelineWidth) {
		t.Errorf("expected width %v, got %v", TimelineWidth, bar.Width)
	}
	if !approx(bar.Width, s.PixelsPerDay*float64(s.TotalDays)) {
		t.Errorf("expected width to equal pixelsPerDay*totalDays")
	}
}

func TestScaleBarClamps(t *testing.T) {
	s := NewScale(date(2025, time.October, 15), ViewMonth, 2)

	t.Run("start before range", func(t *testing.T) {
		bar := s.Bar(date(2025, time.September, 20), date(2025, time.October, 5))
		if bar.OffsetDays != 0 || bar.Left != 0 {
			t.Errorf("expected offset clamped to 0, got %+v", bar)
		}
		if bar.DurationDays != 15 {
			t.Errorf("expected duration 15, got %d", bar.DurationDays)
		}
	})

	t.Run("same day has minimum width", func(t *testing.T) {
		bar := s.Bar(date(2025, time.October, 10), date(2025, time.October, 10))
		if bar.DurationDays != 1 {
			t.Errorf("expected duration 1, got %d", bar.DurationDays)
		}
		if !approx(bar.Left, 9*s.PixelsPerDay) {
			t.Errorf("expected left %v, got %v", 9*s.PixelsPerDay, bar.Left)
		}
		if !approx(s.PixelsPerDay, 2*TimelineWidth/30) {
			t.Errorf("expected zoom to double pixels per day, got %v", s.PixelsPerDay)
		}
	})
}

func TestTodayOffset(t *testing.T) {
	s := NewScale(date(2025, time.October, 15), ViewMonth, 1)

	if got := s.TodayOffset(date(2025, time.August, 2)); got != 0 {
		t.Errorf("expected today before range to clamp to 0, got %v", got)
	}
	if got := s.TodayOffset(date(2025, time.October, 4)); !approx(got, 3*s.PixelsPerDay) {
		t.Errorf("expected 3 days in, got %v", got)
	}
}

func TestZoom(t *testing.T) {
	if got := StepZoom(3, ZoomStep); got != 3 {
		t.Errorf("expected zoom capped at 3, got %v", got)
	}
	if got := StepZoom(0.5, -ZoomStep); got != 0.5 {
		t.Errorf("expected zoom floored at 0.5, got %v", got)
	}
	if got := StepZoom(1, ZoomStep); got != 1.25 {
		t.Errorf("expected 1.25, got %v", got)
	}
	if got := SnapZoom(1.1); got != 1 {
		t.Errorf("expected 1.1 to snap to 1, got %v", got)
	}
	if got := SnapZoom(10); got != 3 {
		t.Errorf("expected 10 to snap to 3, got %v", got)
	}
	if got := SnapZoom(0); got != 1 {
		t.Errorf("expected unset zoom to default to 1, got %v", got)
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		view View
		dir  int
		want time.Time
	}{
		{"next month", date(2025, time.January, 15), ViewMonth, 1, date(2025, time.February, 15)},
		{"previous month", date(2025, time.January, 15), ViewMonth, -1, date(2024, time.December, 15)},
		{"month end clamps", date(2025, time.January, 31), ViewMonth, 1, date(2025, time.February, 28)},
		{"month end clamps backwards", date(2024, time.March, 31), ViewMonth, -1, date(2024, time.February, 29)},
		{"next week", date(2025, time.January, 15), ViewWeek, 1, date(2025, time.January, 22)},
		{"previous week", date(2025, time.January, 3), ViewWeek, -1, date(2024, time.December, 27)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Navigate(tt.ref, tt.view, tt.dir); !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewMonth {
		t.Errorf("expected default month view, got %q %v", v, err)
	}
	if _, err := ParseView("year"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestDayLabels(t *testing.T) {
	s := NewScale(date(2025, time.October, 15), ViewWeek, 1)
	labels := s.DayLabels()
	if len(labels) != 15 {
		t.Fatalf("expected 15 labels, got %d", len(labels))
	}
	if labels[0] != "Oct 8" || labels[14] != "Oct 22" {
		t.Errorf("unexpected labels %q ... %q", labels[0], labels[14])
	}
}

func TestGroupByClientAndPlace(t *testing.T) {
	acme := models.Client{DocumentID: "acme", Name: "Acme"}
	globex := models.Client{DocumentID: "globex", Name: "Globex"}
	idle := models.Client{DocumentID: "idle", Name: "Idle"}

	shared := models.ProjectView{Project: models.Project{ID: 1, Name: "shared", Clients: []models.Client{acme, globex},
		StartDate: datePtr(2025, time.October, 5), EndDate: datePtr(2025, time.October, 10)}}
	undated := models.ProjectView{Project: models.Project{ID: 2, Name: "undated", Clients: []models.Client{acme}}}

	groups := GroupByClient([]models.Client{acme, idle, globex}, []models.ProjectView{shared, undated})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Client.Name != "Acme" || len(groups[0].Projects) != 2 {
		t.Errorf("expected Acme with 2 projects, got %s with %d", groups[0].Client.Name, len(groups[0].Projects))
	}
	if groups[1].Client.Name != "Globex" || groups[1].Projects[0].Name != "shared" {
		t.Errorf("expected shared project duplicated under Globex")
	}

	placed := NewScale(date(2025, time.October, 15), ViewMonth, 1).Place(groups)
	if len(placed[0].Bars) != 1 {
		t.Fatalf("expected undated project to get no bar, got %d bars", len(placed[0].Bars))
	}
	if placed[0].Bars[0].Bar.OffsetDays != 4 || placed[0].Bars[0].Bar.DurationDays != 5 {
		t.Errorf("unexpected bar %+v", placed[0].Bars[0].Bar)
	}
}
