package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/TWRT/ops-dashboard/internal/client"
	"github.com/TWRT/ops-dashboard/internal/models"
	"github.com/TWRT/ops-dashboard/internal/rollup"
)

type Sources interface {
	client.ProjectSource
	client.TodoSource
	client.ClientSource
	client.UserSource
}

// Loader refetches every collection and recomputes derived state. Writes go
// through Run: the command first, then a full reload. Between the write
// succeeding and the reload committing, readers still see the old snapshot.
type Loader struct {
	src    Sources
	store  *SnapshotStore
	logger *log.Logger
	now    func() time.Time
}

func NewLoader(src Sources, store *SnapshotStore, logger *log.Logger, now func() time.Time) *Loader {
	if now == nil {
		now = time.Now
	}
	return &Loader{src: src, store: store, logger: logger, now: now}
}

func (l *Loader) Current() Snapshot {
	return l.store.Current()
}

// Reload fetches projects, todos, clients and users in parallel. Users are
// only requested with a session token and are attached to the returned copy
// only, so a guest never sees a list fetched with someone else's token. On a
// collection failure the last committed snapshot is returned along with an
// ErrLoadCollections error; a users failure still commits the rest and
// returns ErrLoadUsers.
func (l *Loader) Reload(session *models.Session) (Snapshot, error) {
	ticket := l.store.Begin()

	var (
		projects []models.Project
		todos    []models.Todo
		clients  []models.Client
		users    []models.User
		usersErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		projects, err = l.src.GetProjects()
		return err
	})
	g.Go(func() error {
		var err error
		todos, err = l.src.GetTodos()
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = l.src.GetClients()
		return err
	})
	g.Go(func() error {
		if !session.Authenticated() {
			return nil
		}
		users, usersErr = l.src.GetUsers(session.BearerToken())
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.Error("reload failed", "ticket", ticket, "err", err)
		current := l.store.Current()
		current.Users = users
		return current, fmt.Errorf("%w: %w", ErrLoadCollections, err)
	}

	snap := Snapshot{
		Projects: rollup.Derive(projects, todos),
		Todos:    todos,
		Clients:  clients,
		LoadedAt: l.now(),
	}
	if !l.store.Commit(ticket, snap) {
		l.logger.Debug("discarded stale snapshot", "ticket", ticket)
	}
	current := l.store.Current()

	if usersErr != nil {
		l.logger.Warn("users unavailable", "err", usersErr)
		return current, fmt.Errorf("%w: %w", ErrLoadUsers, usersErr)
	}
	current.Users = users
	return current, nil
}

// ReloadCollections is Reload for record lookups: a users failure is
// ignored, a collection failure is returned.
func (l *Loader) ReloadCollections(session *models.Session) (Snapshot, error) {
	snap, err := l.Reload(session)
	if errors.Is(err, ErrLoadUsers) {
		return snap, nil
	}
	return snap, err
}

// Run executes a backend command with the session token and reloads
// everything on success. A failed command leaves the snapshot untouched.
func (l *Loader) Run(session *models.Session, action string, command func(token string) error) error {
	if err := command(session.BearerToken()); err != nil {
		l.logger.Error("command failed", "action", action, "err", err)
		return fmt.Errorf("%s: %w", action, err)
	}
	if _, err := l.Reload(session); err != nil {
		l.logger.Warn("reload after command failed", "action", action, "err", err)
	}
	return nil
}
