// Package session tracks authenticated sessions with an idle deadline.
// Every authenticated request Touches its session, pushing the deadline
// forward; a session nobody touches for the idle timeout simply ceases to
// exist, which is how the forced sign-out is observed.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session is absent or has idled out.
var ErrNotFound = errors.New("session not found or expired")

// Session is a live authenticated session handle.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions with idle expiry. Touch resets the idle deadline;
// each reset replaces the previous deadline, so at most one is live per
// session at any time.
type Store interface {
	Create(ctx context.Context, userID string) (*Session, error)
	Touch(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	session  Session
	deadline time.Time
}

// MemoryStore is an in-process Store used when no redis address is
// configured, and by tests that need a controllable clock.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]memoryEntry
	idleTimeout time.Duration
	now         func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given idle timeout.
func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]memoryEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Create registers a new session for the user with a fresh idle deadline.
func (s *MemoryStore) Create(_ context.Context, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := Session{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	s.entries[sess.ID] = memoryEntry{session: sess, deadline: now.Add(s.idleTimeout)}
	return &sess, nil
}

// Touch returns the session and resets its idle deadline. A session past
// its deadline is removed and reported as ErrNotFound.
func (s *MemoryStore) Touch(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if now.After(entry.deadline) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	entry.deadline = now.Add(s.idleTimeout)
	s.entries[id] = entry
	sess := entry.session
	return &sess, nil
}

// Delete removes the session. Deleting an absent session is a no-op.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
