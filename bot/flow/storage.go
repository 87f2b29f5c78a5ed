package flow

import (
	"context"
	"sync"
)

// SessionRepository defines the database operations for sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, s *Session) error
	LoadSession(ctx context.Context, userID int64) (*Session, error)
	DeleteSession(ctx context.Context, userID int64) error
}

// MongoSessionStorage adapts the database repository to the SessionStorage
// interface.
type MongoSessionStorage struct {
	repo SessionRepository
}

// NewMongoSessionStorage creates a new MongoDB-backed session storage.
func NewMongoSessionStorage(repo SessionRepository) *MongoSessionStorage {
	return &MongoSessionStorage{repo: repo}
}

func (s *MongoSessionStorage) Get(ctx context.Context, userID int64) (*Session, error) {
	loaded, err := s.repo.LoadSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return NewSession(userID, 0), nil
	}
	return loaded, nil
}

func (s *MongoSessionStorage) Save(ctx context.Context, sess *Session) error {
	return s.repo.SaveSession(ctx, sess)
}

func (s *MongoSessionStorage) Clear(ctx context.Context, userID int64) error {
	return s.repo.DeleteSession(ctx, userID)
}

// MemorySessionStorage keeps sessions in process memory. Distinct users never
// contend beyond the map lock; a user has at most one outstanding interaction
// at a time, so per-session locking is not needed.
type MemorySessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemorySessionStorage creates an empty in-memory session storage.
func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{sessions: make(map[int64]*Session)}
}

func (s *MemorySessionStorage) Get(_ context.Context, userID int64) (*Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok {
		return NewSession(userID, 0), nil
	}
	return copySession(stored), nil
}

func (s *MemorySessionStorage) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	s.sessions[sess.UserID] = copySession(sess)
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStorage) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// copySession detaches the stored record so callers always read-modify-write
// a whole session.
func copySession(s *Session) *Session {
	out := *s
	out.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	return &out
}
