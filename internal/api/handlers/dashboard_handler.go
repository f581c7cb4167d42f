package handlers

import (
	"net/http"

	"github.com/TWRT/ops-dashboard/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard := h.dashboardService.Dashboard(service.SessionFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dashboard": dashboard,
	})
}
