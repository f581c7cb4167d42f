package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/TWRT/ops-dashboard/internal/models"
)

const projectsSheet = "Projects & Todos"

var (
	todoCSVHeader     = []string{"title", "position", "dueDate", "project", "assignee"}
	projectXLSXHeader = []string{
		"Project", "Description", "Clients", "StartDate", "EndDate", "Position",
		"TodoTitle", "TodoStatus", "TodoDueDate", "TodoAssignee",
	}
)

type ExportService struct {
	loader *Loader
	policy models.RolePolicy
	logger *log.Logger
}

func NewExportService(loader *Loader, policy models.RolePolicy, logger *log.Logger) *ExportService {
	return &ExportService{loader: loader, policy: policy, logger: logger}
}

// TodosCSV exports the todos currently loaded, in backend order.
func (s *ExportService) TodosCSV(session *models.Session) ([]byte, error) {
	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("exporting stale todos", "err", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(todoCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range snap.Todos {
		project := ""
		if t.Project != nil {
			project = t.Project.Name
		}
		assignee := ""
		if t.Assignee != nil {
			assignee = t.Assignee.Username
		}
		row := []string{t.Title, string(t.Position), formatExportDate(t.DueDate), project, assignee}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ProjectsXLSX writes one row per project todo, and a single row with empty
// todo columns for a project without todos.
func (s *ExportService) ProjectsXLSX(session *models.Session) ([]byte, error) {
	if !s.policy.IsSuperUser(session.RoleName()) {
		return nil, ErrForbidden
	}

	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("exporting stale projects", "err", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", projectsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	if err := writeXLSXRow(f, row, projectXLSXHeader); err != nil {
		return nil, err
	}
	for _, p := range snap.Projects {
		project := []string{
			p.Name,
			p.Description,
			clientNames(p.Clients),
			formatExportDate(p.StartDate),
			formatExportDate(p.EndDate),
			string(p.Position),
		}

		if len(p.Todos) == 0 {
			row++
			if err := writeXLSXRow(f, row, append(project, "", "", "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for _, t := range p.Todos {
			assignee := "Unassigned"
			if t.Assignee != nil {
				assignee = t.Assignee.Username
			}
			row++
			values := append(append([]string{}, project...), t.Title, string(t.Position), formatExportDate(t.DueDate), assignee)
			if err := writeXLSXRow(f, row, values); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(projectsSheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func clientNames(clients []models.Client) string {
	if len(clients) == 0 {
		return "N/A"
	}
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func formatExportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
