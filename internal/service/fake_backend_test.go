package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/TWRT/ops-dashboard/internal/logging"
	"github.com/TWRT/ops-dashboard/internal/models"
)

var errBackendDown = errors.New("backend down")

// fakeBackend is an in-memory client.Backend. Writes mutate the collections
// so a reload after a command observes them.
type fakeBackend struct {
	mu       sync.Mutex
	projects []models.Project
	todos    []models.Todo
	clients  []models.Client
	users    []models.User
	roles    map[int64]models.Role

	failTodos  bool
	failUsers  bool
	failWrites bool

	usersToken string
	calls      []string
	nextID     int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{roles: map[int64]models.Role{}, nextID: 100}
}

func (b *fakeBackend) record(call string) {
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) GetProjects() ([]models.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Project(nil), b.projects...), nil
}

func (b *fakeBackend) GetTodos() ([]models.Todo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failTodos {
		return nil, errBackendDown
	}
	return append([]models.Todo(nil), b.todos...), nil
}

func (b *fakeBackend) GetClients() ([]models.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Client(nil), b.clients...), nil
}

func (b *fakeBackend) GetUsers(token string) ([]models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usersToken = token
	if b.failUsers {
		return nil, errBackendDown
	}
	return append([]models.User(nil), b.users...), nil
}

func (b *fakeBackend) writeErr(call string) error {
	b.record(call)
	if b.failWrites {
		return errBackendDown
	}
	return nil
}

func (b *fakeBackend) CreateProject(token string, input models.ProjectInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("create project " + input.Name); err != nil {
		return err
	}
	b.nextID++
	p := models.Project{
		ID:          b.nextID,
		DocumentID:  fmt.Sprintf("proj-%d", b.nextID),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	for _, id := range input.ClientDocumentIDs {
		for _, c := range b.clients {
			if c.DocumentID == id {
				p.Clients = append(p.Clients, c)
			}
		}
	}
	b.projects = append(b.projects, p)
	return nil
}

func (b *fakeBackend) UpdateProject(token, documentID string, input models.ProjectInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("update project " + documentID); err != nil {
		return err
	}
	for i := range b.projects {
		if b.projects[i].DocumentID == documentID {
			b.projects[i].Name = input.Name
			b.projects[i].Description = input.Description
			b.projects[i].StartDate = input.StartDate
			b.projects[i].EndDate = input.EndDate
		}
	}
	return nil
}

func (b *fakeBackend) DeleteProject(token, documentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("delete project " + documentID); err != nil {
		return err
	}
	kept := b.projects[:0]
	for _, p := range b.projects {
		if p.DocumentID != documentID {
			kept = append(kept, p)
		}
	}
	b.projects = kept
	return nil
}

func (b *fakeBackend) CreateTodo(token string, input models.TodoInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("create todo " + input.Title); err != nil {
		return err
	}
	b.nextID++
	t := models.Todo{
		ID:                 b.nextID,
		DocumentID:         fmt.Sprintf("todo-%d", b.nextID),
		Title:              input.Title,
		Description:        input.Description,
		DescriptionHistory: input.DescriptionHistory,
		DueDate:            input.DueDate,
		Position:           input.Position,
	}
	if input.ProjectID != nil {
		for _, p := range b.projects {
			if p.ID == *input.ProjectID {
				t.Project = &models.ProjectRef{ID: p.ID, DocumentID: p.DocumentID, Name: p.Name}
			}
		}
	}
	if input.AssigneeID != nil {
		t.Assignee = &models.UserRef{ID: *input.AssigneeID}
	}
	b.todos = append(b.todos, t)
	return nil
}

func (b *fakeBackend) UpdateTodo(token, documentID string, input models.TodoInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("update todo " + documentID); err != nil {
		return err
	}
	for i := range b.todos {
		if b.todos[i].DocumentID == documentID {
			b.todos[i].Title = input.Title
			b.todos[i].Description = input.Description
			b.todos[i].DescriptionHistory = input.DescriptionHistory
			b.todos[i].DueDate = input.DueDate
			b.todos[i].Position = input.Position
		}
	}
	return nil
}

func (b *fakeBackend) UpdateTodoPosition(token, documentID string, position models.Position) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("move todo " + documentID + " " + string(position)); err != nil {
		return err
	}
	for i := range b.todos {
		if b.todos[i].DocumentID == documentID {
			b.todos[i].Position = position
		}
	}
	return nil
}

func (b *fakeBackend) DeleteTodo(token, documentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErr("delete todo " + documentID); err != nil {
		return err
	}
	kept := b.todos[:0]
	for _, t := range b.todos {
		if t.DocumentID != documentID {
			kept = append(kept, t)
		}
	}
	b.todos = kept
	return nil
}

func (b *fakeBackend) Login(identifier, password string) (string, models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == identifier && password == "secret" {
			return "jwt-" + u.Username, u, nil
		}
	}
	return "", models.User{}, errors.New("Invalid identifier or password")
}

func (b *fakeBackend) GetUserWithRole(token string, userID int64) (models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.ID == userID {
			u.Role = b.roles[userID]
			if u.Role == "" {
				u.Role = models.RoleAuthenticated
			}
			return u, nil
		}
	}
	return models.User{}, errors.New("user not found")
}

type memorySessionStore struct {
	saved map[string]*models.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{saved: map[string]*models.Session{}}
}

func (m *memorySessionStore) Save(s *models.Session) error {
	m.saved[s.ID] = s
	return nil
}

func (m *memorySessionStore) Delete(id string) error {
	delete(m.saved, id)
	return nil
}

func (m *memorySessionStore) LoadAll() ([]*models.Session, error) {
	var out []*models.Session
	for _, s := range m.saved {
		out = append(out, s)
	}
	return out, nil
}

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var (
	manager    = &models.Session{ID: "s1", Token: "jwt-alice", Role: models.RoleManager}
	specialist = &models.Session{ID: "s2", Token: "jwt-bob", Role: models.RoleSpecialist}
	member     = &models.Session{ID: "s3", Token: "jwt-carol", Role: models.RoleAuthenticated}
)

// seededBackend has two clients, three projects and four todos:
// Website (acme) with a done and an in-progress todo, App (acme, globex)
// with one overdue todo, Archive with none, and one orphan done todo.
func seededBackend() *fakeBackend {
	b := newFakeBackend()
	acme := models.Client{ID: 1, DocumentID: "acme", Name: "Acme"}
	globex := models.Client{ID: 2, DocumentID: "globex", Name: "Globex"}
	b.clients = []models.Client{acme, globex}
	b.projects = []models.Project{
		{ID: 10, DocumentID: "web", Name: "Website", Clients: []models.Client{acme}, StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 20)},
		{ID: 11, DocumentID: "app", Name: "App", Clients: []models.Client{acme, globex}, StartDate: day(2024, 6, 10), EndDate: day(2024, 7, 10)},
		{ID: 12, DocumentID: "archive", Name: "Archive"},
	}
	web := &models.ProjectRef{ID: 10, DocumentID: "web", Name: "Website"}
	app := &models.ProjectRef{ID: 11, DocumentID: "app", Name: "App"}
	b.todos = []models.Todo{
		{ID: 1, DocumentID: "t1", Title: "Design", Position: models.PositionDone, Project: web, Assignee: &models.UserRef{ID: 1, Username: "alice"}, DueDate: day(2024, 6, 1)},
		{ID: 2, DocumentID: "t2", Title: "Build", Position: models.PositionInProgress, Project: web, Assignee: &models.UserRef{ID: 2, Username: "bob"}, DueDate: day(2024, 6, 30)},
		{ID: 3, DocumentID: "t3", Title: "Wireframes", Position: models.PositionTodo, Project: app, DueDate: day(2024, 6, 12)},
		{ID: 4, DocumentID: "t4", Title: "Cleanup", Position: models.PositionDone, Assignee: &models.UserRef{ID: 2, Username: "bob"}},
	}
	b.users = []models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}
	b.roles[1] = "Backoffice Manager"
	return b
}

func newTestLoader(b *fakeBackend) *Loader {
	return NewLoader(b, NewSnapshotStore(), logging.Discard(), clock)
}
