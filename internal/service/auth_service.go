package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
)

type SessionStore interface {
	Save(session *models.Session) error
	Delete(id string) error
	LoadAll() ([]*models.Session, error)
}

type SessionInfo struct {
	Session   *models.Session `json:"session,omitempty"`
	Role      models.Role     `json:"role"`
	SuperUser bool            `json:"super_user"`
	Pages     []models.Page   `json:"pages"`
}

// AuthService keeps sessions in memory and mirrors them to a SessionStore.
type AuthService struct {
	auth   client.Authenticator
	store  SessionStore
	policy models.RolePolicy
	logger *log.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewAuthService(auth client.Authenticator, store SessionStore, policy models.RolePolicy, logger *log.Logger, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		auth:     auth,
		store:    store,
		policy:   policy,
		logger:   logger,
		now:      now,
		sessions: make(map[string]*models.Session),
	}
}

func (s *AuthService) LoadSessions() error {
	sessions, err := s.store.LoadAll()
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range sessions {
		s.sessions[session.ID] = session
	}
	s.logger.Info("sessions restored", "count", len(sessions))
	return nil
}

// Login authenticates against the backend and resolves the user's role.
func (s *AuthService) Login(identifier, password string) (*models.Session, error) {
	token, user, err := s.auth.Login(identifier, password)
	if err != nil {
		s.logger.Warn("login rejected", "identifier", identifier, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	withRole, err := s.auth.GetUserWithRole(token, user.ID)
	if err != nil {
		s.logger.Error("fetching role failed", "user", user.ID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      withRole,
		Role:      models.NormalizeRole(string(withRole.Role)),
		CreatedAt: s.now(),
	}
	if err := s.store.Save(session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("logged in", "user", withRole.Username, "role", session.Role)
	return session, nil
}

func (s *AuthService) Logout(id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return s.store.Delete(id)
}

// Session returns nil for an unknown id, which callers treat as a guest.
func (s *AuthService) Session(id string) *models.Session {
	if id == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

func (s *AuthService) Info(session *models.Session) SessionInfo {
	role := session.RoleName()
	return SessionInfo{
		Session:   session,
		Role:      role,
		SuperUser: s.policy.IsSuperUser(role),
		Pages:     s.policy.Pages(role),
	}
}

func (s *AuthService) Policy() models.RolePolicy {
	return s.policy
}
