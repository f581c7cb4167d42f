package handlers

import (
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

func (h *ExportHandler) TodosCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.TodosCSV(service.SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, "export todos", err)
		return
	}
	writeFile(w, "text/csv", "todos_export.csv", data)
}

func (h *ExportHandler) ProjectsXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.ProjectsXLSX(service.SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, "export projects", err)
		return
	}
	writeFile(w, xlsxContentType, "projects_and_todos.xlsx", data)
}
