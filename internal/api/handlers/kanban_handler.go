package handlers

import (
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/service"
)

type MoveRequestBody struct {
	TodoID   string          `json:"todo_id"`
	Position models.Position `json:"position"`
}

type KanbanHandler struct {
	kanbanService *service.KanbanService
}

func NewKanbanHandler(kanbanService *service.KanbanService) *KanbanHandler {
	return &KanbanHandler{
		kanbanService: kanbanService,
	}
}

func (h *KanbanHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board := h.kanbanService.Board(service.SessionFromContext(r.Context()))
	writeJSON(w, http.StatusOK, board)
}

func (h *KanbanHandler) MoveTodo(w http.ResponseWriter, r *http.Request) {
	var reqBody MoveRequestBody
	if err := decodeBody(r, moveBody, &reqBody); err != nil {
		writeError(w, "move todo", err)
		return
	}

	session := service.SessionFromContext(r.Context())
	if err := h.kanbanService.Move(session, reqBody.TodoID, reqBody.Position); err != nil {
		writeError(w, "move todo", err)
		return
	}
	writeJSON(w, http.StatusOK, h.kanbanService.Board(session))
}
