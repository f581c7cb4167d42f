package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TWRT/ops-dashboard/internal/rollup"
	"github.com/TWRT/ops-dashboard/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	filter, err := todoFilter(r)
	if err != nil {
		writeError(w, "get todos", err)
		return
	}

	list := h.todoService.List(service.SessionFromContext(r.Context()), filter)
	writeJSON(w, http.StatusOK, list)
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var form service.TodoForm
	if err := decodeBody(r, todoBody, &form); err != nil {
		writeError(w, "create todo", err)
		return
	}

	if err := h.todoService.Create(service.SessionFromContext(r.Context()), form); err != nil {
		writeError(w, "create todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Todo created",
	})
}

func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var form service.TodoForm
	if err := decodeBody(r, todoBody, &form); err != nil {
		writeError(w, "update todo", err)
		return
	}

	if err := h.todoService.Update(service.SessionFromContext(r.Context()), id, form); err != nil {
		writeError(w, "update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Todo updated",
	})
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.todoService.Delete(service.SessionFromContext(r.Context()), id, confirmed(r)); err != nil {
		writeError(w, "delete todo", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Todo deleted",
	})
}

func todoFilter(r *http.Request) (rollup.TodoFilter, error) {
	q := r.URL.Query()
	filter := rollup.TodoFilter{
		Position: q.Get("position"),
		Project:  q.Get("project"),
		Assignee: q.Get("assignee"),
		Search:   q.Get("search"),
	}

	var err error
	if filter.DateFrom, err = queryDate(q.Get("from")); err != nil {
		return filter, err
	}
	if filter.DateTo, err = queryDate(q.Get("to")); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", service.ErrInvalidInput, s)
	}
	return &t, nil
}
