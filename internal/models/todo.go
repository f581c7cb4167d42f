package models

import "time"

type Position string

const (
	PositionTodo       Position = "todo"
	PositionInProgress Position = "in-progress"
	PositionDone       Position = "done"
)

// Positions lists the kanban columns in display order.
var Positions = []Position{PositionTodo, PositionInProgress, PositionDone}

func (p Position) Valid() bool {
	switch p {
	case PositionTodo, PositionInProgress, PositionDone:
		return true
	}
	return false
}

type ProjectRef struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
}

type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Todo struct {
	ID                 int64       `json:"id"`
	DocumentID         string      `json:"document_id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	DescriptionHistory string      `json:"description_history"`
	DueDate            *time.Time  `json:"due_date,omitempty"`
	Position           Position    `json:"position"`
	Project            *ProjectRef `json:"project,omitempty"`
	Assignee           *UserRef    `json:"assignee,omitempty"`
}

// TodoInput is the writable part of a todo as sent to the backend.
type TodoInput struct {
	Title              string
	Description        string
	DescriptionHistory string
	DueDate            *time.Time
	Position           Position
	ProjectID          *int64
	AssigneeID         *int64
}
