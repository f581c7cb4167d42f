package rollup

import (
	"fmt"
	"math"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
)

const (
	TimelineWidth = 1000.0
	MinZoom       = 0.5
	MaxZoom       = 3.0
	ZoomStep      = 0.25
)

const day = 24 * time.Hour

func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewMonth:
		return ViewMonth, nil
	case ViewWeek:
		return ViewWeek, nil
	}
	return "", fmt.Errorf("unknown timeline view %q", s)
}

type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// VisibleRange is the calendar month containing ref, or ref ± 7 days.
func VisibleRange(ref time.Time, view View) Range {
	if view == ViewWeek {
		return Range{Start: ref.AddDate(0, 0, -7), End: ref.AddDate(0, 0, 7)}
	}
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Range{Start: start, End: end}
}

// DaysBetween counts whole days from a to b, truncated toward zero.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / day)
}

func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}

func StepZoom(z, delta float64) float64 {
	return ClampZoom(z + delta)
}

// SnapZoom rounds z to the nearest zoom step inside the allowed range.
func SnapZoom(z float64) float64 {
	if z == 0 || math.IsNaN(z) {
		return 1
	}
	return ClampZoom(math.Round(z/ZoomStep) * ZoomStep)
}

type Scale struct {
	Range        Range   `json:"range"`
	TotalDays    int     `json:"total_days"`
	Zoom         float64 `json:"zoom"`
	PixelsPerDay float64 `json:"pixels_per_day"`
}

func NewScale(ref time.Time, view View, zoom float64) Scale {
	r := VisibleRange(ref, view)
	zoom = ClampZoom(zoom)
	total := max(1, DaysBetween(r.Start, r.End))
	return Scale{
		Range:        r,
		TotalDays:    total,
		Zoom:         zoom,
		PixelsPerDay: (TimelineWidth / float64(total)) * zoom,
	}
}

type Bar struct {
	OffsetDays   int     `json:"offset_days"`
	DurationDays int     `json:"duration_days"`
	Left         float64 `json:"left"`
	Width        float64 `json:"width"`
}

func (s Scale) Bar(start, end time.Time) Bar {
	offset := max(0, DaysBetween(s.Range.Start, start))
	duration := max(1, DaysBetween(start, end))
	return Bar{
		OffsetDays:   offset,
		DurationDays: duration,
		Left:         float64(offset) * s.PixelsPerDay,
		Width:        float64(duration) * s.PixelsPerDay,
	}
}

// TodayOffset never goes negative: a date before the range sits on the left edge.
func (s Scale) TodayOffset(now time.Time) float64 {
	return float64(max(0, DaysBetween(s.Range.Start, now))) * s.PixelsPerDay
}

func (s Scale) DayLabels() []string {
	labels := make([]string, 0, s.TotalDays+1)
	for i := 0; i <= s.TotalDays; i++ {
		labels = append(labels, s.Range.Start.AddDate(0, 0, i).Format("Jan 2"))
	}
	return labels
}

// Navigate moves ref one step back (dir < 0) or forward. Month steps clamp
// the day to the end of the target month, so Jan 31 + 1 month is Feb 28/29.
func Navigate(ref time.Time, view View, dir int) time.Time {
	step := 1
	if dir < 0 {
		step = -1
	}
	if view == ViewWeek {
		return ref.AddDate(0, 0, 7*step)
	}
	return addMonths(ref, step)
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

type ClientGroup struct {
	Client   models.Client        `json:"client"`
	Projects []models.ProjectView `json:"projects"`
}

// GroupByClient lists, per client in client order, the projects associated
// with it. A project with several clients appears in each group; clients
// without projects are dropped.
func GroupByClient(clients []models.Client, views []models.ProjectView) []ClientGroup {
	groups := make([]ClientGroup, 0)
	for _, c := range clients {
		var projects []models.ProjectView
		for _, v := range views {
			if v.HasClient(c.DocumentID) {
				projects = append(projects, v)
			}
		}
		if len(projects) > 0 {
			groups = append(groups, ClientGroup{Client: c, Projects: projects})
		}
	}
	return groups
}

type PlacedProject struct {
	Project models.ProjectView `json:"project"`
	Bar     Bar                `json:"bar"`
}

type PlacedGroup struct {
	Client models.Client   `json:"client"`
	Bars   []PlacedProject `json:"bars"`
}

// Place computes bar geometry for every project in groups. Projects missing
// a start or end date get no bar.
func (s Scale) Place(groups []ClientGroup) []PlacedGroup {
	placed := make([]PlacedGroup, 0, len(groups))
	for _, g := range groups {
		pg := PlacedGroup{Client: g.Client, Bars: make([]PlacedProject, 0, len(g.Projects))}
		for _, p := range g.Projects {
			if p.StartDate == nil || p.EndDate == nil {
				continue
			}
			pg.Bars = append(pg.Bars, PlacedProject{Project: p, Bar: s.Bar(*p.StartDate, *p.EndDate)})
		}
		placed = append(placed, pg)
	}
	return placed
}
