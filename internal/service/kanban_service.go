package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
)

type Column struct {
	Key   models.Position `json:"key"`
	Label string          `json:"label"`
	Todos []models.Todo   `json:"todos"`
}

type Board struct {
	Columns []Column `json:"columns"`
}

var columnLabels = map[models.Position]string{
	models.PositionTodo:       "To Do",
	models.PositionInProgress: "In Progress",
	models.PositionDone:       "Done",
}

type KanbanService struct {
	loader *Loader
	writer client.TodoWriter
	policy models.RolePolicy
	logger *log.Logger
}

func NewKanbanService(loader *Loader, writer client.TodoWriter, policy models.RolePolicy, logger *log.Logger) *KanbanService {
	return &KanbanService{loader: loader, writer: writer, policy: policy, logger: logger}
}

func (s *KanbanService) Board(session *models.Session) Board {
	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("kanban rendered from stale data", "err", err)
	}
	return s.group(snap.Todos)
}

// group puts a todo without a position in the todo column and drops todos
// with a position no column knows about.
func (s *KanbanService) group(todos []models.Todo) Board {
	index := make(map[models.Position]int, len(models.Positions))
	board := Board{Columns: make([]Column, len(models.Positions))}
	for i, p := range models.Positions {
		index[p] = i
		board.Columns[i] = Column{Key: p, Label: columnLabels[p], Todos: []models.Todo{}}
	}

	for _, t := range todos {
		pos := t.Position
		if pos == "" {
			pos = models.PositionTodo
		}
		i, ok := index[pos]
		if !ok {
			s.logger.Warn("unknown position", "position", pos, "todo", t.DocumentID)
			continue
		}
		board.Columns[i].Todos = append(board.Columns[i].Todos, t)
	}
	return board
}

// Move changes a todo's column. Dropping a card on its own column is a no-op.
func (s *KanbanService) Move(session *models.Session, documentID string, to models.Position) error {
	if !s.policy.IsSuperUser(session.RoleName()) {
		return ErrForbidden
	}
	if !to.Valid() {
		return fmt.Errorf("%w: unknown column %q", ErrInvalidInput, to)
	}

	todo, ok := s.loader.Current().FindTodo(documentID)
	if !ok {
		snap, err := s.loader.ReloadCollections(session)
		if err != nil {
			return fmt.Errorf("find todo %s: %w", documentID, err)
		}
		if todo, ok = snap.FindTodo(documentID); !ok {
			s.logger.Error("could not find dragged todo", "todo", documentID)
			return fmt.Errorf("todo %s: %w", documentID, ErrNotFound)
		}
	}

	current := todo.Position
	if current == "" {
		current = models.PositionTodo
	}
	if current == to {
		return nil
	}

	return s.loader.Run(session, "move todo", func(token string) error {
		return s.writer.UpdateTodoPosition(token, documentID, to)
	})
}
