package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/riple-app/backend/pkg/xredis"
)

var ErrNoState = errors.New("appstate: no persisted state")

// Persister saves and loads the serialized state blob under a single key.
type Persister interface {
	Save(ctx context.Context, key string, state AppState) error
	Load(ctx context.Context, key string) (*AppState, error)
	Delete(ctx context.Context, key string) error
}

type redisPersister struct {
	redisClient xredis.Client
}

func NewRedisPersister(redisClient xredis.Client) Persister {
	return &redisPersister{redisClient: redisClient}
}

func (p *redisPersister) Save(ctx context.Context, key string, state AppState) error {
	return p.redisClient.SetObj(ctx, key, state, 0)
}

func (p *redisPersister) Load(ctx context.Context, key string) (*AppState, error) {
	var state AppState
	err := p.redisClient.GetObj(ctx, key, &state)
	if errors.Is(err, xredis.ErrNotFound) {
		return nil, ErrNoState
	}

	if err != nil {
		return nil, err
	}

	return &state, nil
}

func (p *redisPersister) Delete(ctx context.Context, key string) error {
	return p.redisClient.Del(ctx, key)
}

// Store owns one session's AppState. It is the single writer: every
// mutation goes through Apply, which swaps the whole state and persists
// the new blob. Persistence failures are logged, never propagated; the
// in-memory state is authoritative.
type Store struct {
	mu        sync.Mutex
	key       string
	state     AppState
	resetDay  string
	persister Persister
}

func NewStore(persister Persister, key string) *Store {
	return &Store{
		key:       key,
		state:     AppState{Posts: []Post{}, Groups: []Group{}, UserMemberships: []GroupMembership{}},
		persister: persister,
	}
}

// State returns the current state. Transforms never mutate shared slices,
// so the returned value is safe to read without further locking.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs a pure transform against the current state and installs the
// result.
func (s *Store) Apply(ctx context.Context, transform func(AppState) AppState) AppState {
	s.mu.Lock()
	s.state = transform(s.state)
	next := s.state
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.key, next); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot persist app state %s: %v", s.key, err)
	}

	return next
}

// Rehydrate loads the persisted blob, runs the daily reset if a user is
// present, and drops a cached daily task from an earlier day. Loading
// nothing is not an error: the store simply starts empty.
func (s *Store) Rehydrate(ctx context.Context, now time.Time) error {
	loaded, err := s.persister.Load(ctx, s.key)
	if errors.Is(err, ErrNoState) {
		s.mu.Lock()
		s.resetDay = now.Format("2006-01-02")
		s.mu.Unlock()
		return nil
	}

	if err != nil {
		return err
	}

	state := *loaded
	if state.User != nil {
		state = state.ResetDailyHabits(now)
	}
	if state.CurrentTaskFor(now) == nil {
		state = state.SetCurrentDailyTask(nil)
	}

	s.mu.Lock()
	s.state = state
	s.resetDay = now.Format("2006-01-02")
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.key, state); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot persist app state %s: %v", s.key, err)
	}

	return nil
}

// ResetForDay applies the midnight rollover to a store that stayed in
// memory across a day boundary. Rehydrate covers cold starts; this covers
// warm sessions. It runs at most once per calendar day.
func (s *Store) ResetForDay(ctx context.Context, now time.Time) {
	day := now.Format("2006-01-02")

	s.mu.Lock()
	if s.resetDay == day {
		s.mu.Unlock()
		return
	}

	s.resetDay = day
	if s.state.User != nil {
		s.state = s.state.ResetDailyHabits(now)
	}
	if s.state.CurrentTaskFor(now) == nil {
		s.state = s.state.SetCurrentDailyTask(nil)
	}
	next := s.state
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.key, next); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot persist app state %s: %v", s.key, err)
	}
}

// Manager hands out one rehydrated Store per user session.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
}

func NewManager(persister Persister) *Manager {
	return &Manager{
		stores:    map[string]*Store{},
		persister: persister,
	}
}

func storageKey(userID string) string {
	return fmt.Sprintf("appstate:%s", userID)
}

func (m *Manager) Get(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.persister, storageKey(userID))
		m.stores[userID] = store
	}
	m.mu.Unlock()

	if !ok {
		if err := store.Rehydrate(ctx, time.Now()); err != nil {
			return nil, err
		}
		return store, nil
	}

	store.ResetForDay(ctx, time.Now())
	return store, nil
}

// Drop forgets a session and removes its persisted blob, used on sign-out.
func (m *Manager) Drop(ctx context.Context, userID string) error {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()

	return m.persister.Delete(ctx, storageKey(userID))
}
