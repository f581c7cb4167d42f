package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/api/handlers"
	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/repository"
	"github.com/TWRT/ops-dashboard/internal/service"
)

const SessionHeader = "X-Session-ID"

func SetupRouter(db *sql.DB, backend client.Backend, policy models.RolePolicy, logger *log.Logger) (http.Handler, error) {
	mux := http.NewServeMux()

	sessionRepo := repository.NewSessionRepository(db)

	loader := service.NewLoader(backend, service.NewSnapshotStore(), logger, time.Now)

	authService := service.NewAuthService(backend, sessionRepo, policy, logger, time.Now)
	if err := authService.LoadSessions(); err != nil {
		return nil, fmt.Errorf("restore sessions: %w", err)
	}
	dashboardService := service.NewDashboardService(loader, logger, time.Now)
	todoService := service.NewTodoService(loader, backend, logger, time.Now)
	kanbanService := service.NewKanbanService(loader, backend, policy, logger)
	projectService := service.NewProjectService(loader, backend, policy, logger)
	timelineService := service.NewTimelineService(loader, logger, time.Now)
	exportService := service.NewExportService(loader, policy, logger)

	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	todoHandler := handlers.NewTodoHandler(todoService)
	kanbanHandler := handlers.NewKanbanHandler(kanbanService)
	projectHandler := handlers.NewProjectHandler(projectService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)
	exportHandler := handlers.NewExportHandler(exportService)

	page := func(p models.Page, h http.HandlerFunc) http.Handler {
		return requirePage(policy, p, h)
	}

	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /session", authHandler.GetSession)

	mux.HandleFunc("GET /dashboard", dashboardHandler.GetDashboard)

	mux.HandleFunc("GET /todos", todoHandler.ListTodos)
	mux.HandleFunc("POST /todos", todoHandler.CreateTodo)
	mux.HandleFunc("PUT /todos/{id}", todoHandler.UpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", todoHandler.DeleteTodo)

	mux.Handle("GET /kanban", page(models.PageKanban, kanbanHandler.GetBoard))
	mux.Handle("POST /kanban/move", page(models.PageKanban, kanbanHandler.MoveTodo))

	mux.Handle("GET /projects", page(models.PageProjects, projectHandler.ListProjects))
	mux.Handle("POST /projects", page(models.PageProjects, projectHandler.CreateProject))
	mux.Handle("PUT /projects/{id}", page(models.PageProjects, projectHandler.UpdateProject))
	mux.Handle("DELETE /projects/{id}", page(models.PageProjects, projectHandler.DeleteProject))
	mux.Handle("POST /projects/{id}/clone", page(models.PageProjects, projectHandler.CloneProject))

	mux.Handle("GET /timeline", page(models.PageTimeline, timelineHandler.GetTimeline))

	mux.HandleFunc("GET /export/todos.csv", exportHandler.TodosCSV)
	mux.HandleFunc("GET /export/projects.xlsx", exportHandler.ProjectsXLSX)

	return logRequests(logger, withSession(authService, mux)), nil
}
