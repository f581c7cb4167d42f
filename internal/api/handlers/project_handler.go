package handlers

import (
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/rollup"
	"github.com/TWRT/ops-dashboard/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := rollup.ProjectFilter{
		Status: r.URL.Query().Get("status"),
		Client: r.URL.Query().Get("client"),
	}
	list := h.projectService.List(service.SessionFromContext(r.Context()), filter)
	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var form service.ProjectForm
	if err := decodeBody(r, projectBody, &form); err != nil {
		writeError(w, "create project", err)
		return
	}

	if err := h.projectService.Create(service.SessionFromContext(r.Context()), form); err != nil {
		writeError(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project created",
	})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var form service.ProjectForm
	if err := decodeBody(r, projectBody, &form); err != nil {
		writeError(w, "update project", err)
		return
	}

	if err := h.projectService.Update(service.SessionFromContext(r.Context()), id, form); err != nil {
		writeError(w, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project updated",
	})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projectService.Delete(service.SessionFromContext(r.Context()), id, confirmed(r)); err != nil {
		writeError(w, "delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project deleted",
	})
}

func (h *ProjectHandler) CloneProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projectService.Clone(service.SessionFromContext(r.Context()), id); err != nil {
		writeError(w, "clone project", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project cloned",
	})
}
