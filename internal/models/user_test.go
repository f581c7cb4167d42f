package models

import (
	"reflect"
	"testing"
)

func TestRolePolicy(t *testing.T) {
	p := DefaultRolePolicy()

	tests := []struct {
		role  Role
		super bool
		pages []Page
	}{
		{"", false, []Page{PageDashboard, PageTodos}},
		{RoleAuthenticated, false, []Page{PageDashboard, PageTodos}},
		{"Backoffice Specialist", false, []Page{PageDashboard, PageProjects, PageTodos, PageTimeline}},
		{"Backoffice Manager", true, []Page{PageDashboard, PageProjects, PageTodos, PageTimeline, PageKanban}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := p.IsSuperUser(tt.role); got != tt.super {
				t.Errorf("expected super user %v, got %v", tt.super, got)
			}
			if got := p.Pages(tt.role); !reflect.DeepEqual(got, tt.pages) {
				t.Errorf("expected pages %v, got %v", tt.pages, got)
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	if got := NormalizeRole("  Backoffice Manager "); got != RoleManager {
		t.Errorf("expected %q, got %q", RoleManager, got)
	}
	if got := NormalizeRole(""); got != RoleAuthenticated {
		t.Errorf("expected %q, got %q", RoleAuthenticated, got)
	}
}

func TestGuestSession(t *testing.T) {
	var s *Session
	if s.Authenticated() || s.BearerToken() != "" || s.RoleName() != "" {
		t.Error("expected nil session to behave as a guest")
	}
}
