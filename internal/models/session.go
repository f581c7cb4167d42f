package models

import "time"

// Session is the authenticated state of one dashboard user. A nil *Session
// is a guest: no token and never a super user.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	User      User      `json:"user"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

func (s *Session) RoleName() Role {
	if s == nil {
		return ""
	}
	return s.Role
}
