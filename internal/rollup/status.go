package rollup

import (
	"math"

	"github.com/TWRT/ops-dashboard/internal/models"
)

// Classify derives a project status from its todos.
// Checked top-down: Done, In-Progress, Todo. A project without todos is No-Todos.
func Classify(todos []models.Todo) models.ProjectStatus {
	if len(todos) == 0 {
		return models.ProjectNoTodos
	}

	allDone := true
	anyInProgress := false
	anyTodo := false
	for _, t := range todos {
		switch t.Position {
		case models.PositionDone:
		case models.PositionInProgress:
			anyInProgress = true
			allDone = false
		case models.PositionTodo:
			anyTodo = true
			allDone = false
		default:
			allDone = false
		}
	}

	switch {
	case allDone:
		return models.ProjectDone
	case anyInProgress:
		return models.ProjectInProgress
	case anyTodo:
		return models.ProjectTodo
	}
	return models.ProjectTodo
}

// Progress is the rounded percentage of done todos, 0 when there are none.
func Progress(todos []models.Todo) int {
	if len(todos) == 0 {
		return 0
	}
	done := 0
	for _, t := range todos {
		if t.Position == models.PositionDone {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(todos))))
}

func TodosForProject(project models.Project, todos []models.Todo) []models.Todo {
	related := make([]models.Todo, 0)
	for _, t := range todos {
		if t.Project != nil && t.Project.ID == project.ID {
			related = append(related, t)
		}
	}
	return related
}

func PositionCounts(todos []models.Todo) map[models.Position]int {
	counts := make(map[models.Position]int)
	for _, t := range todos {
		counts[t.Position]++
	}
	return counts
}

// Derive attaches the derived status, progress and children to every project.
func Derive(projects []models.Project, todos []models.Todo) []models.ProjectView {
	views := make([]models.ProjectView, len(projects))
	for i, p := range projects {
		related := TodosForProject(p, todos)
		views[i] = models.ProjectView{
			Project:    p,
			Position:   Classify(related),
			Progress:   Progress(related),
			Todos:      related,
			TodoCounts: PositionCounts(related),
		}
	}
	return views
}
