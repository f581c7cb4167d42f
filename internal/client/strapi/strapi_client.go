package strapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Strapi error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error status: %d", e.StatusCode)
}

type Client struct {
	baseUrl    string
	pageSize   int
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

func NewClient(baseUrl string, pageSize int, timeout time.Duration, logger *log.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

func (c *Client) listQuery() string {
	return "?pagination[pageSize]=" + strconv.Itoa(c.pageSize) + "&populate=*"
}

// do sends one request and decodes a 2xx body into out when out is not nil.
func (c *Client) do(method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request (strapi): %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, c.baseUrl+path, body)
	if err != nil {
		return fmt.Errorf("build request (strapi): %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read error body (strapi): %w", err)
		}

		apiErr := &APIError{StatusCode: resp.StatusCode}
		var strapiErr StrapiErrors
		if err := json.Unmarshal(errorBody, &strapiErr); err == nil {
			apiErr.Name = strapiErr.Error.Name
			apiErr.Message = strapiErr.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (strapi): %w", err)
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("parse response (strapi): %w", err)
	}
	return nil
}

// parseDate reads either a calendar date, taken as UTC midnight, or a full timestamp.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q (strapi): %w", *s, err)
	}
	return &t, nil
}

// recordDate parses one date field of a listed record. A bad value is
// logged and dropped so the rest of the collection still loads.
func (c *Client) recordDate(collection, documentID, field string, s *string) *time.Time {
	t, err := parseDate(s)
	if err != nil {
		c.logger.Warn("ignoring unparseable date", "collection", collection, "record", documentID, "field", field, "err", err)
		return nil
	}
	return t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}

func toClient(c StrapiClient) models.Client {
	return models.Client{ID: c.Id, DocumentID: c.DocumentId, Name: c.Client}
}

func toUser(u StrapiUser) models.User {
	user := models.User{ID: u.Id, Username: u.Username, Email: u.Email}
	if u.Role != nil {
		user.Role = models.NormalizeRole(u.Role.Name)
	}
	return user
}

func (c *Client) GetProjects() ([]models.Project, error) {
	var resp ListResponse[StrapiProject]
	if err := c.do(http.MethodGet, "/projects"+c.listQuery(), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get projects (strapi): %w", err)
	}

	projects := make([]models.Project, len(resp.Data))
	for i, p := range resp.Data {
		start := c.recordDate("projects", p.DocumentId, "startDate", p.StartDate)
		end := c.recordDate("projects", p.DocumentId, "endDate", p.EndDate)

		clients := make([]models.Client, 0, len(p.Clients))
		for _, cl := range p.Clients {
			clients = append(clients, toClient(cl))
		}

		projects[i] = models.Project{
			ID:          p.Id,
			DocumentID:  p.DocumentId,
			Name:        p.Name,
			Description: p.Description,
			StartDate:   start,
			EndDate:     end,
			Clients:     clients,
		}
	}
	return projects, nil
}

func (c *Client) GetTodos() ([]models.Todo, error) {
	var resp ListResponse[StrapiTodo]
	if err := c.do(http.MethodGet, "/todos"+c.listQuery(), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get todos (strapi): %w", err)
	}

	todos := make([]models.Todo, len(resp.Data))
	for i, t := range resp.Data {
		due := c.recordDate("todos", t.DocumentId, "dueDate", t.DueDate)

		todo := models.Todo{
			ID:                 t.Id,
			DocumentID:         t.DocumentId,
			Title:              t.Title,
			Description:        t.Description,
			DescriptionHistory: t.DescriptionHistory,
			DueDate:            due,
			Position:           models.Position(t.Position),
		}
		if t.Project != nil {
			todo.Project = &models.ProjectRef{ID: t.Project.Id, DocumentID: t.Project.DocumentId, Name: t.Project.Name}
		}
		if t.Assignee != nil {
			todo.Assignee = &models.UserRef{ID: t.Assignee.Id, Username: t.Assignee.Username}
		}
		todos[i] = todo
	}
	return todos, nil
}

func (c *Client) GetClients() ([]models.Client, error) {
	var resp ListResponse[StrapiClient]
	if err := c.do(http.MethodGet, "/clients"+c.listQuery(), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get clients (strapi): %w", err)
	}

	clients := make([]models.Client, len(resp.Data))
	for i, cl := range resp.Data {
		clients[i] = toClient(cl)
	}
	return clients, nil
}

// GetUsers hits the users-permissions endpoint, which returns a bare array.
func (c *Client) GetUsers(token string) ([]models.User, error) {
	var resp []StrapiUser
	if err := c.do(http.MethodGet, "/users", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get users (strapi): %w", err)
	}

	users := make([]models.User, len(resp))
	for i, u := range resp {
		users[i] = toUser(u)
	}
	return users, nil
}

func (c *Client) todoPayload(input models.TodoInput) TodoPayload {
	return TodoPayload{
		Title:              input.Title,
		Description:        input.Description,
		DescriptionHistory: input.DescriptionHistory,
		DueDate:            formatDate(input.DueDate),
		Position:           string(input.Position),
		Project:            input.ProjectID,
		Assignee:           input.AssigneeID,
		PublishedAt:        c.now().UTC().Format(time.RFC3339),
	}
}

func (c *Client) CreateTodo(token string, input models.TodoInput) error {
	wrapper := DataEnvelope[TodoPayload]{Data: c.todoPayload(input)}
	if err := c.do(http.MethodPost, "/todos", token, wrapper, nil); err != nil {
		return fmt.Errorf("create todo (strapi): %w", err)
	}
	return nil
}

func (c *Client) UpdateTodo(token, documentID string, input models.TodoInput) error {
	wrapper := DataEnvelope[TodoPayload]{Data: c.todoPayload(input)}
	if err := c.do(http.MethodPut, "/todos/"+documentID, token, wrapper, nil); err != nil {
		return fmt.Errorf("update todo (strapi): %w", err)
	}
	return nil
}

func (c *Client) UpdateTodoPosition(token, documentID string, position models.Position) error {
	wrapper := DataEnvelope[PositionPayload]{Data: PositionPayload{Position: string(position)}}
	if err := c.do(http.MethodPut, "/todos/"+documentID, token, wrapper, nil); err != nil {
		return fmt.Errorf("update todo position (strapi): %w", err)
	}
	return nil
}

func (c *Client) DeleteTodo(token, documentID string) error {
	if err := c.do(http.MethodDelete, "/todos/"+documentID, token, nil, nil); err != nil {
		return fmt.Errorf("delete todo (strapi): %w", err)
	}
	return nil
}

func projectPayload(input models.ProjectInput) ProjectPayload {
	clients := input.ClientDocumentIDs
	if clients == nil {
		clients = []string{}
	}
	return ProjectPayload{
		Name:        input.Name,
		Description: input.Description,
		Clients:     clients,
		StartDate:   formatDate(input.StartDate),
		EndDate:     formatDate(input.EndDate),
	}
}

func (c *Client) CreateProject(token string, input models.ProjectInput) error {
	wrapper := DataEnvelope[ProjectPayload]{Data: projectPayload(input)}
	if err := c.do(http.MethodPost, "/projects", token, wrapper, nil); err != nil {
		return fmt.Errorf("create project (strapi): %w", err)
	}
	return nil
}

func (c *Client) UpdateProject(token, documentID string, input models.ProjectInput) error {
	wrapper := DataEnvelope[ProjectPayload]{Data: projectPayload(input)}
	if err := c.do(http.MethodPut, "/projects/"+documentID, token, wrapper, nil); err != nil {
		return fmt.Errorf("update project (strapi): %w", err)
	}
	return nil
}

func (c *Client) DeleteProject(token, documentID string) error {
	if err := c.do(http.MethodDelete, "/projects/"+documentID, token, nil, nil); err != nil {
		return fmt.Errorf("delete project (strapi): %w", err)
	}
	return nil
}

func (c *Client) Login(identifier, password string) (string, models.User, error) {
	var resp LoginResponse
	req := LoginRequest{Identifier: identifier, Password: password}
	if err := c.do(http.MethodPost, "/auth/local", "", req, &resp); err != nil {
		return "", models.User{}, fmt.Errorf("login (strapi): %w", err)
	}
	return resp.Jwt, toUser(resp.User), nil
}

// GetUserWithRole resolves the role name, which /auth/local does not populate.
func (c *Client) GetUserWithRole(token string, userID int64) (models.User, error) {
	var resp StrapiUser
	path := "/users/" + strconv.FormatInt(userID, 10) + "?populate=role"
	if err := c.do(http.MethodGet, path, token, nil, &resp); err != nil {
		return models.User{}, fmt.Errorf("get user role (strapi): %w", err)
	}
	user := toUser(resp)
	if user.Role == "" {
		user.Role = models.RoleAuthenticated
	}
	return user, nil
}
