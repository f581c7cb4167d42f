package rollup

import (
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

// IsOverdue compares instants, not calendar days: a todo due today at
// midnight is already overdue for the rest of the day.
func IsOverdue(t models.Todo, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Position != models.PositionDone
}

func Overdue(todos []models.Todo, now time.Time) []models.Todo {
	overdue := make([]models.Todo, 0)
	for _, t := range todos {
		if IsOverdue(t, now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}
