package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

const (
	sessionCookie  = "fintrack_session"
	sessionIdleTTL = 24 * time.Hour
)

// Session is the per-browser UI state. It lives only in memory.
type Session struct {
	ID string

	mu       sync.Mutex
	selected core.Category
	lastSeen time.Time
}

// SelectedCategory is the highlighted quick-select category.
func (s *Session) SelectedCategory() core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectCategory highlights c; categories outside the fixed set are ignored.
func (s *Session) SelectCategory(c core.Category) bool {
	if !c.Valid() {
		return false
	}
	s.mu.Lock()
	s.selected = c
	s.mu.Unlock()
	return true
}

// SessionStore maps cookie values to sessions and drops sessions idle for
// longer than the TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      sessionIdleTTL,
		now:      time.Now,
	}
}

// Get returns the caller's session, creating one and setting the cookie when
// the request has none or refers to an unknown session.
func (st *SessionStore) Get(w http.ResponseWriter, r *http.Request) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.evictLocked(now)

	if c, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := st.sessions[c.Value]; ok {
			s.mu.Lock()
			s.lastSeen = now
			s.mu.Unlock()
			return s
		}
	}

	s := &Session{
		ID:       uuid.NewString(),
		selected: core.DefaultCategory(),
		lastSeen: now,
	}
	st.sessions[s.ID] = s
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) evictLocked(now time.Time) {
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}
