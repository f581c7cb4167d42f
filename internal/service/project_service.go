package service

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/rollup"
)

type ProjectForm struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Clients     []string `json:"clients"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

type ProjectList struct {
	Projects []models.ProjectView `json:"projects"`
	Clients  []models.Client      `json:"clients"`
	CanEdit  bool                 `json:"can_edit"`
}

type ProjectService struct {
	loader *Loader
	writer client.ProjectWriter
	policy models.RolePolicy
	logger *log.Logger
}

func NewProjectService(loader *Loader, writer client.ProjectWriter, policy models.RolePolicy, logger *log.Logger) *ProjectService {
	return &ProjectService{loader: loader, writer: writer, policy: policy, logger: logger}
}

func (s *ProjectService) List(session *models.Session, filter rollup.ProjectFilter) ProjectList {
	snap, err := s.loader.Reload(session)
	if err != nil {
		s.logger.Warn("projects rendered from stale data", "err", err)
	}
	clients := snap.Clients
	if clients == nil {
		clients = []models.Client{}
	}
	return ProjectList{
		Projects: rollup.FilterProjects(snap.Projects, filter),
		Clients:  clients,
		CanEdit:  s.policy.IsSuperUser(session.RoleName()),
	}
}

func (s *ProjectService) authorize(session *models.Session) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	if !s.policy.IsSuperUser(session.RoleName()) {
		return ErrForbidden
	}
	return nil
}

func (s *ProjectService) Create(session *models.Session, form ProjectForm) error {
	if err := s.authorize(session); err != nil {
		return err
	}
	input, err := projectInput(form)
	if err != nil {
		return err
	}
	return s.loader.Run(session, "create project", func(token string) error {
		return s.writer.CreateProject(token, input)
	})
}

func (s *ProjectService) Update(session *models.Session, documentID string, form ProjectForm) error {
	if err := s.authorize(session); err != nil {
		return err
	}
	input, err := projectInput(form)
	if err != nil {
		return err
	}
	return s.loader.Run(session, "update project", func(token string) error {
		return s.writer.UpdateProject(token, documentID, input)
	})
}

func (s *ProjectService) Delete(session *models.Session, documentID string, confirmed bool) error {
	if err := s.authorize(session); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.loader.Run(session, "delete project", func(token string) error {
		return s.writer.DeleteProject(token, documentID)
	})
}

// Clone creates "<name> (Copy)" with the same description, clients and dates.
func (s *ProjectService) Clone(session *models.Session, documentID string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	source, ok := s.loader.Current().FindProject(documentID)
	if !ok {
		snap, err := s.loader.ReloadCollections(session)
		if err != nil {
			return fmt.Errorf("find project %s: %w", documentID, err)
		}
		if source, ok = snap.FindProject(documentID); !ok {
			return fmt.Errorf("project %s: %w", documentID, ErrNotFound)
		}
	}

	clients := make([]string, 0, len(source.Clients))
	for _, c := range source.Clients {
		clients = append(clients, c.DocumentID)
	}
	input := models.ProjectInput{
		Name:              source.Name + " (Copy)",
		Description:       source.Description,
		ClientDocumentIDs: clients,
		StartDate:         source.StartDate,
		EndDate:           source.EndDate,
	}
	return s.loader.Run(session, "clone project", func(token string) error {
		return s.writer.CreateProject(token, input)
	})
}

func projectInput(form ProjectForm) (models.ProjectInput, error) {
	if strings.TrimSpace(form.Name) == "" {
		return models.ProjectInput{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	start, err := parseFormDate(form.StartDate)
	if err != nil {
		return models.ProjectInput{}, err
	}
	end, err := parseFormDate(form.EndDate)
	if err != nil {
		return models.ProjectInput{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return models.ProjectInput{}, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return models.ProjectInput{
		Name:              form.Name,
		Description:       form.Description,
		ClientDocumentIDs: form.Clients,
		StartDate:         start,
		EndDate:           end,
	}, nil
}
