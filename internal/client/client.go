package client

import "github.com/TWRT/ops-dashboard/internal/models"

type ProjectSource interface {
	GetProjects() ([]models.Project, error)
}

type TodoSource interface {
	GetTodos() ([]models.Todo, error)
}

type ClientSource interface {
	GetClients() ([]models.Client, error)
}

// UserSource lists users. An empty token sends the request unauthenticated.
type UserSource interface {
	GetUsers(token string) ([]models.User, error)
}

type ProjectWriter interface {
	CreateProject(token string, input models.ProjectInput) error
	UpdateProject(token, documentID string, input models.ProjectInput) error
	DeleteProject(token, documentID string) error
}

type TodoWriter interface {
	CreateTodo(token string, input models.TodoInput) error
	UpdateTodo(token, documentID string, input models.TodoInput) error
	UpdateTodoPosition(token, documentID string, position models.Position) error
	DeleteTodo(token, documentID string) error
}

type Authenticator interface {
	Login(identifier, password string) (string, models.User, error)
	GetUserWithRole(token string, userID int64) (models.User, error)
}

type Backend interface {
	ProjectSource
	TodoSource
	ClientSource
	UserSource
	ProjectWriter
	TodoWriter
	Authenticator
}
