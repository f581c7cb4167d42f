package service

import (
	"sync"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

// Snapshot is one consistent copy of the backend collections plus the
// project state derived from them. Users is filled per caller by
// Loader.Reload and is never kept in a SnapshotStore, since the user list
// is only readable with the caller's own token.
type Snapshot struct {
	Projects []models.ProjectView
	Todos    []models.Todo
	Clients  []models.Client
	Users    []models.User
	LoadedAt time.Time
	Ticket   uint64
}

func (s Snapshot) FindTodo(documentID string) (models.Todo, bool) {
	for _, t := range s.Todos {
		if t.DocumentID == documentID {
			return t, true
		}
	}
	return models.Todo{}, false
}

func (s Snapshot) FindProject(documentID string) (models.ProjectView, bool) {
	for _, p := range s.Projects {
		if p.DocumentID == documentID {
			return p, true
		}
	}
	return models.ProjectView{}, false
}

// SnapshotStore keeps the latest committed snapshot. Every refresh takes a
// ticket from Begin; a commit carrying a ticket older than the last
// committed one is dropped, so a slow response never overwrites a newer one.
type SnapshotStore struct {
	mu        sync.Mutex
	issued    uint64
	committed uint64
	current   Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *SnapshotStore) Commit(ticket uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.committed {
		return false
	}
	snap.Ticket = ticket
	snap.Users = nil
	s.committed = ticket
	s.current = snap
	return true
}

func (s *SnapshotStore) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
