package models

import "time"

type ProjectStatus string

const (
	ProjectTodo       ProjectStatus = "Todo"
	ProjectInProgress ProjectStatus = "In-Progress"
	ProjectDone       ProjectStatus = "Done"
	ProjectNoTodos    ProjectStatus = "No-Todos"
)

type Client struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
}

type Project struct {
	ID          int64      `json:"id"`
	DocumentID  string     `json:"document_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Clients     []Client   `json:"clients"`
}

// HasClient reports whether the project is associated with the client document id.
func (p Project) HasClient(documentID string) bool {
	for _, c := range p.Clients {
		if c.DocumentID == documentID {
			return true
		}
	}
	return false
}

// ProjectView is a project together with the state derived from its todos.
// None of these fields are ever written back to the backend.
type ProjectView struct {
	Project
	Position   ProjectStatus    `json:"position"`
	Progress   int              `json:"progress"`
	Todos      []Todo           `json:"todos"`
	TodoCounts map[Position]int `json:"todo_counts"`
}

type ProjectInput struct {
	Name              string
	Description       string
	ClientDocumentIDs []string
	StartDate         *time.Time
	EndDate           *time.Time
}
