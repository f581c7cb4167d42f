package models

import "strings"

type Role string

const (
	RoleAuthenticated Role = "authenticated"
	RoleManager       Role = "backoffice manager"
	RoleSpecialist    Role = "backoffice specialist"
)

// NormalizeRole lowercases a backend role name. An empty name maps to RoleAuthenticated.
func NormalizeRole(name string) Role {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RoleAuthenticated
	}
	return Role(name)
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role,omitempty"`
}

type Page string

const (
	PageDashboard Page = "dashboard"
	PageTodos     Page = "todos"
	PageProjects  Page = "projects"
	PageTimeline  Page = "timeline"
	PageKanban    Page = "kanban"
)

// RolePolicy decides which pages and commands a role may use.
type RolePolicy struct {
	SuperUser  Role
	Specialist Role
}

func DefaultRolePolicy() RolePolicy {
	return RolePolicy{SuperUser: RoleManager, Specialist: RoleSpecialist}
}

func (p RolePolicy) IsSuperUser(role Role) bool {
	return role != "" && NormalizeRole(string(role)) == p.SuperUser
}

func (p RolePolicy) CanView(role Role, page Page) bool {
	switch page {
	case PageDashboard, PageTodos:
		return true
	case PageProjects, PageTimeline:
		return p.IsSuperUser(role) || (role != "" && NormalizeRole(string(role)) == p.Specialist)
	case PageKanban:
		return p.IsSuperUser(role)
	}
	return false
}

// Pages returns the pages visible to role in navigation order.
func (p RolePolicy) Pages(role Role) []Page {
	var pages []Page
	for _, page := range []Page{PageDashboard, PageProjects, PageTodos, PageTimeline, PageKanban} {
		if p.CanView(role, page) {
			pages = append(pages, page)
		}
	}
	return pages
}
