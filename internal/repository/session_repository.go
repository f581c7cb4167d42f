package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

// SessionRepository is the durable mirror of logged-in sessions, so a
// restart does not log everybody out.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(session *models.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	query := `
		INSERT INTO sessions (id, token, user_json, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			role = excluded.role
	`
	_, err = r.db.Exec(query,
		session.ID,
		session.Token,
		string(userJSON),
		string(session.Role),
		session.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) LoadAll() ([]*models.Session, error) {
	rows, err := r.db.Query(`SELECT id, token, user_json, role, created_at FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var (
			s         models.Session
			userJSON  string
			role      string
			createdAt time.Time
		)
		if err := rows.Scan(&s.ID, &s.Token, &userJSON, &role, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(userJSON), &s.User); err != nil {
			return nil, fmt.Errorf("unmarshal session user: %w", err)
		}
		s.Role = models.Role(role)
		s.CreatedAt = createdAt
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
