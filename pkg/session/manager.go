package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when no session is open under an ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists is returned when opening an ID already in use.
	ErrSessionExists = errors.New("session already exists")
)

// Factory creates the navigator backing a new session.
type Factory func(ctx context.Context, id string) (ports.Navigator, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory Factory

	mu       sync.Mutex            // Global lock for the maps
	locks    map[string]*lockEntry // Map of active locks
	sessions map[string]ports.Navigator

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager creating navigators with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]ports.Navigator),
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Open creates a session. An empty ID gets a random UUID.
func (m *Manager) Open(ctx context.Context, sessionID string) (string, ports.Navigator, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var nav ports.Navigator
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		_, exists := m.sessions[sessionID]
		m.mu.Unlock()
		if exists {
			return fmt.Errorf("%w: %s", ErrSessionExists, sessionID)
		}

		var err error
		nav, err = m.factory(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to open session %s: %w", sessionID, err)
		}

		m.mu.Lock()
		m.sessions[sessionID] = nav
		m.mu.Unlock()
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	m.logger.Info("session opened", "session_id", sessionID)
	return sessionID, nav, nil
}

// Get returns an open session.
func (m *Manager) Get(sessionID string) (ports.Navigator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nav, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nav, nil
}

// Close forgets a session. It waits for operations holding its lock.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.sessions[sessionID]; !ok {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		delete(m.sessions, sessionID)
		m.logger.Info("session closed", "session_id", sessionID)
		return nil
	})
}

// List returns the open session IDs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	return fn(ctx)
}

// Do runs fn on an open session while holding its lock.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, ports.Navigator) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		nav, err := m.Get(sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, nav)
	})
}
