package rollup

import (
	"strconv"
	"strings"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

// All is the "no constraint" value of a select-style filter dimension.
const All = "All"

func active(v string) bool {
	return v != "" && v != All
}

type TodoFilter struct {
	Position string
	Project  string // document id or numeric id
	Assignee string // numeric user id
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f TodoFilter) Match(t models.Todo) bool {
	if active(f.Position) && string(t.Position) != f.Position {
		return false
	}
	if active(f.Project) {
		if t.Project == nil {
			return false
		}
		if t.Project.DocumentID != f.Project && strconv.FormatInt(t.Project.ID, 10) != f.Project {
			return false
		}
	}
	if active(f.Assignee) {
		if t.Assignee == nil || strconv.FormatInt(t.Assignee.ID, 10) != f.Assignee {
			return false
		}
	}
	if f.DateFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DateTo)) {
		return false
	}
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.DescriptionHistory), q) {
			return false
		}
	}
	return true
}

// Select keeps the todos matching f in their input order.
func Select(todos []models.Todo, f TodoFilter) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// PartitionDone moves done todos after all others. Order inside each group
// is preserved.
func PartitionDone(todos []models.Todo) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Position != models.PositionDone {
			out = append(out, t)
		}
	}
	for _, t := range todos {
		if t.Position == models.PositionDone {
			out = append(out, t)
		}
	}
	return out
}

func FilterTodos(todos []models.Todo, f TodoFilter) []models.Todo {
	return PartitionDone(Select(todos, f))
}

type ProjectFilter struct {
	Status string
	Client string // client document id
}

// Match compares status case-insensitively so "in-progress" and
// "In-Progress" select the same projects.
func (f ProjectFilter) Match(v models.ProjectView) bool {
	if active(f.Status) && !strings.EqualFold(string(v.Position), f.Status) {
		return false
	}
	if active(f.Client) && !v.HasClient(f.Client) {
		return false
	}
	return true
}

func FilterProjects(views []models.ProjectView, f ProjectFilter) []models.ProjectView {
	out := make([]models.ProjectView, 0, len(views))
	for _, v := range views {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}
