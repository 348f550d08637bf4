// Package session holds the process-wide answer to "who is currently logged
// in", backed by a credential store that survives restarts.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/hostelhub/go-booking-client/credentials"
	apperrors "github.com/hostelhub/go-booking-client/internal/errors"
	"github.com/hostelhub/go-booking-client/users"
)

// State describes where the session is in its lifecycle.
type State int

const (
	// StateUninitialized means Restore has not run yet; consumers should
	// defer identity-dependent work until it has.
	StateUninitialized State = iota
	// StateAnonymous means no one is logged in.
	StateAnonymous
	// StateAuthenticated means a user record and access token are held.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Manager owns the in-memory session and keeps it in step with the credential
// store. Login and Logout are the only mutators; everything else is a read.
// The user record and access token are set and cleared together, never one
// without the other.
type Manager struct {
	store credentials.Store

	restoreOnce sync.Once

	lock         sync.RWMutex
	loading      bool
	user         *users.User
	accessToken  string
	refreshToken string
	resetSubs    []func()

	nowTime func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager creates a session manager over the given credential store.
func NewManager(store credentials.Store, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("[NewManager] credential store is required")
	}

	m := &Manager{
		store:   store,
		loading: true,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Restore moves the session out of StateUninitialized by reading the
// credential store. It runs the read exactly once; later calls only report
// the resulting state. Loading reports false forever after the first call,
// whatever the outcome.
func (m *Manager) Restore() State {
	m.restoreOnce.Do(func() {
		creds, err := m.store.Load()

		m.lock.Lock()
		defer m.lock.Unlock()
		m.loading = false
		if err != nil || creds == nil {
			// A store failure reads the same as absence: the session simply
			// starts anonymous.
			return
		}
		m.user = creds.User
		m.accessToken = creds.AccessToken
		m.refreshToken = creds.RefreshToken
	})
	return m.State()
}

// Loading reports whether the initial restore is still pending.
func (m *Manager) Loading() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.loading
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	switch {
	case m.loading:
		return StateUninitialized
	case m.user == nil:
		return StateAnonymous
	default:
		return StateAuthenticated
	}
}

// User returns a copy of the logged-in user, or nil when anonymous.
func (m *Manager) User() *users.User {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// AccessToken returns the current bearer token, empty when anonymous.
func (m *Manager) AccessToken() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.accessToken
}

// RefreshToken returns the persisted refresh token, empty when anonymous.
func (m *Manager) RefreshToken() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.refreshToken
}

// Login replaces the session wholesale with the given user and tokens and
// persists them. The session must have been restored first.
func (m *Manager) Login(user *users.User, accessToken, refreshToken string) error {
	if user == nil || accessToken == "" {
		return fmt.Errorf("[Login] user and access token are required together")
	}

	m.lock.Lock()
	if m.loading {
		m.lock.Unlock()
		return apperrors.Wrapf(apperrors.ErrNotRestored, "[Login]")
	}
	u := *user
	m.user = &u
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	m.lock.Unlock()

	if err := m.store.Save(credentials.Credentials{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}); err != nil {
		return fmt.Errorf("[Login] persist credentials: %w", err)
	}
	return nil
}

// Logout clears the session in memory and in the store, then notifies every
// reset subscriber so other stateful components can drop what they hold.
// Idempotent.
func (m *Manager) Logout() error {
	m.lock.Lock()
	m.user = nil
	m.accessToken = ""
	m.refreshToken = ""
	subs := make([]func(), len(m.resetSubs))
	copy(subs, m.resetSubs)
	m.lock.Unlock()

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("[Logout] clear credentials: %w", err)
	}

	for _, fn := range subs {
		fn()
	}
	return nil
}

// OnReset registers a function to run after every Logout. Subscribers are
// invoked on the caller's goroutine in registration order.
func (m *Manager) OnReset(fn func()) {
	if fn == nil {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.resetSubs = append(m.resetSubs, fn)
}
