package rollup

import (
	"sort"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

type ProjectCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	NoTodos    int `json:"no_todos"`
}

type TodoCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type Contributor struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Total  int    `json:"total"`
	Done   int    `json:"done"`
}

type Summary struct {
	Projects     ProjectCounts `json:"projects"`
	Todos        TodoCounts    `json:"todos"`
	Users        int           `json:"users"`
	Overdue      []models.Todo `json:"overdue"`
	Contributors []Contributor `json:"contributors"`
}

func CountProjects(views []models.ProjectView) ProjectCounts {
	var c ProjectCounts
	for _, v := range views {
		switch v.Position {
		case models.ProjectTodo:
			c.Todo++
		case models.ProjectInProgress:
			c.InProgress++
		case models.ProjectDone:
			c.Done++
		case models.ProjectNoTodos:
			c.NoTodos++
		}
	}
	return c
}

func CountTodos(todos []models.Todo) TodoCounts {
	var c TodoCounts
	for _, t := range todos {
		switch t.Position {
		case models.PositionTodo:
			c.Todo++
		case models.PositionInProgress:
			c.InProgress++
		case models.PositionDone:
			c.Done++
		}
	}
	return c
}

// Leaderboard orders users by done todos, descending. Users with equal
// done counts keep their input order.
func Leaderboard(users []models.User, todos []models.Todo) []Contributor {
	board := make([]Contributor, len(users))
	for i, u := range users {
		board[i] = Contributor{UserID: u.ID, Name: u.Username}
		for _, t := range todos {
			if t.Assignee == nil || t.Assignee.ID != u.ID {
				continue
			}
			board[i].Total++
			if t.Position == models.PositionDone {
				board[i].Done++
			}
		}
	}
	sort.SliceStable(board, func(a, b int) bool {
		return board[a].Done > board[b].Done
	})
	return board
}

func Summarize(views []models.ProjectView, todos []models.Todo, users []models.User, now time.Time) Summary {
	return Summary{
		Projects:     CountProjects(views),
		Todos:        CountTodos(todos),
		Users:        len(users),
		Overdue:      Overdue(todos, now),
		Contributors: Leaderboard(users, todos),
	}
}
