package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/rollup"
)

const (
	bannerLoadTodos = "Failed to load todos/projects"
	bannerLoadUsers = "Failed to load users"
)

// TodoForm mirrors the todo edit form. Project holds a document id or a
// numeric id; Assignee holds a numeric user id.
type TodoForm struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	DescriptionHistory string `json:"description_history"`
	HistoryNote        string `json:"history_note"`
	DueDate            string `json:"due_date"`
	Position           string `json:"position"`
	Project            string `json:"project"`
	Assignee           string `json:"assignee"`
}

type TodoList struct {
	Todos    []models.Todo        `json:"todos"`
	Projects []models.ProjectView `json:"projects"`
	Users    []models.User        `json:"users"`
	Error    string               `json:"error,omitempty"`
}

type TodoService struct {
	loader *Loader
	writer client.TodoWriter
	logger *log.Logger
	now    func() time.Time
}

func NewTodoService(loader *Loader, writer client.TodoWriter, logger *log.Logger, now func() time.Time) *TodoService {
	if now == nil {
		now = time.Now
	}
	return &TodoService{loader: loader, writer: writer, logger: logger, now: now}
}

// List reloads and filters. Load failures become a banner message instead
// of an error.
func (s *TodoService) List(session *models.Session, filter rollup.TodoFilter) TodoList {
	snap, err := s.loader.Reload(session)

	list := TodoList{
		Todos:    rollup.FilterTodos(snap.Todos, filter),
		Projects: snap.Projects,
		Users:    snap.Users,
	}
	switch {
	case errors.Is(err, ErrLoadCollections):
		list.Error = bannerLoadTodos
	case errors.Is(err, ErrLoadUsers):
		list.Error = bannerLoadUsers
	}
	if list.Users == nil {
		list.Users = []models.User{}
	}
	return list
}

func (s *TodoService) Create(session *models.Session, form TodoForm) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	input, err := s.input(session, form)
	if err != nil {
		return err
	}
	return s.loader.Run(session, "create todo", func(token string) error {
		return s.writer.CreateTodo(token, input)
	})
}

func (s *TodoService) Update(session *models.Session, documentID string, form TodoForm) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	input, err := s.input(session, form)
	if err != nil {
		return err
	}
	return s.loader.Run(session, "update todo", func(token string) error {
		return s.writer.UpdateTodo(token, documentID, input)
	})
}

func (s *TodoService) Delete(session *models.Session, documentID string, confirmed bool) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.loader.Run(session, "delete todo", func(token string) error {
		return s.writer.DeleteTodo(token, documentID)
	})
}

func (s *TodoService) input(session *models.Session, form TodoForm) (models.TodoInput, error) {
	if strings.TrimSpace(form.Title) == "" {
		return models.TodoInput{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	due, err := parseFormDate(form.DueDate)
	if err != nil {
		return models.TodoInput{}, err
	}
	if due == nil {
		return models.TodoInput{}, fmt.Errorf("%w: due date is required", ErrInvalidInput)
	}

	position := models.Position(form.Position)
	if position == "" {
		position = models.PositionTodo
	}
	if !position.Valid() {
		return models.TodoInput{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, form.Position)
	}

	input := models.TodoInput{
		Title:              form.Title,
		Description:        form.Description,
		DescriptionHistory: rollup.AppendHistory(form.DescriptionHistory, form.HistoryNote, s.now()),
		DueDate:            due,
		Position:           position,
	}

	if form.Project != "" {
		project, ok, err := s.resolveProject(session, form.Project)
		if err != nil {
			return models.TodoInput{}, err
		}
		if !ok {
			return models.TodoInput{}, fmt.Errorf("%w: unknown project %q", ErrInvalidInput, form.Project)
		}
		input.ProjectID = &project.ID
	}

	if form.Assignee != "" {
		id, err := strconv.ParseInt(form.Assignee, 10, 64)
		if err != nil {
			return models.TodoInput{}, fmt.Errorf("%w: assignee must be a user id", ErrInvalidInput)
		}
		input.AssigneeID = &id
	}

	return input, nil
}

// resolveProject looks ref up by document id or numeric id, reloading once
// when the current snapshot does not know it.
func (s *TodoService) resolveProject(session *models.Session, ref string) (models.ProjectView, bool, error) {
	if p, ok := findProjectRef(s.loader.Current(), ref); ok {
		return p, true, nil
	}
	snap, err := s.loader.ReloadCollections(session)
	if err != nil {
		return models.ProjectView{}, false, fmt.Errorf("resolve project %s: %w", ref, err)
	}
	p, ok := findProjectRef(snap, ref)
	return p, ok, nil
}

func findProjectRef(snap Snapshot, ref string) (models.ProjectView, bool) {
	for _, p := range snap.Projects {
		if p.DocumentID == ref || strconv.FormatInt(p.ID, 10) == ref {
			return p, true
		}
	}
	return models.ProjectView{}, false
}

func parseFormDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return &t, nil
}
