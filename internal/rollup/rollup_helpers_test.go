package rollup

import (
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func todo(id int64, title string, pos models.Position) models.Todo {
	return models.Todo{ID: id, DocumentID: title + "-doc", Title: title, Position: pos}
}

func inProject(t models.Todo, projectID int64) models.Todo {
	t.Project = &models.ProjectRef{ID: projectID, DocumentID: "p" + string(rune('0'+projectID))}
	return t
}

func assignedTo(t models.Todo, userID int64) models.Todo {
	t.Assignee = &models.UserRef{ID: userID}
	return t
}

func titles(todos []models.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}
