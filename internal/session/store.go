package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

// Store is the in-process registry of live edit sessions. Each dashboard tab
// owns its own overlay; expired sessions are evicted lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*BulkEditSession
	ttl      time.Duration
	now      func() time.Time
}

// NewStore constructs a registry with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		sessions: make(map[string]*BulkEditSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a new session for a mark-entry surface, phase and week.
func (st *Store) Create(phase models.Phase, domain models.MarkDomain, weekID string) (*BulkEditSession, error) {
	if !phase.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "phase must be 1 or 2")
	}
	if !domain.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "domain must be weekly, assessment or exam")
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked()

	s := newSession(uuid.NewString(), phase, domain, weekID, st.now())
	st.sessions[s.ID] = s
	return s, nil
}

// Get returns a live session by id.
func (st *Store) Get(id string) (*BulkEditSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked()

	s, ok := st.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "edit session not found or expired")
	}
	return s, nil
}

// Delete removes a session, discarding any staged input.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		s.Cancel()
		delete(st.sessions, id)
	}
}

func (st *Store) sweepLocked() {
	cutoff := st.now().Add(-st.ttl)
	for id, s := range st.sessions {
		if s.lastTouched().Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
