package admin

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travelagency/admin/internal/services/admin/routepath"
	"github.com/travelagency/admin/internal/services/admin/trip/form"
)

const (
	// formSessionCookieName carries the current create-trip session ID.
	formSessionCookieName = "ta_trip_form"
	// formSessionTTL controls how long an abandoned form stays in memory.
	formSessionTTL = 24 * time.Hour
	// formSessionCleanupInterval controls how often expired forms are purged.
	formSessionCleanupInterval = 30 * time.Minute
)

type formSession struct {
	controller *form.Controller
	expiresAt  time.Time
}

// formSessionStore keeps one form.Controller per page visit.
type formSessionStore struct {
	mu          sync.Mutex
	sessions    map[string]formSession
	lastCleanup time.Time
	now         func() time.Time
}

func newFormSessionStore(now func() time.Time) *formSessionStore {
	if now == nil {
		now = time.Now
	}
	return &formSessionStore{sessions: make(map[string]formSession), now: now}
}

func (s *formSessionStore) Get(sessionID string) (*form.Controller, bool) {
	if s == nil || sessionID == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if now.After(session.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, false
	}
	return session.controller, true
}

func (s *formSessionStore) Set(sessionID string, controller *form.Controller) {
	if s == nil || sessionID == "" || controller == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	s.sessions[sessionID] = formSession{controller: controller, expiresAt: now.Add(formSessionTTL)}
}

func (s *formSessionStore) Delete(sessionID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *formSessionStore) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *formSessionStore) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < formSessionCleanupInterval {
		return
	}
	for key, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, key)
		}
	}
	s.lastCleanup = now
}

// startFormSession replaces any previous form of this browser with controller.
func (h *Handler) startFormSession(w http.ResponseWriter, r *http.Request, controller *form.Controller) {
	if cookie, err := r.Cookie(formSessionCookieName); err == nil {
		h.forms.Delete(cookie.Value)
	}
	sessionID := uuid.NewString()
	h.forms.Set(sessionID, controller)
	http.SetCookie(w, &http.Cookie{
		Name:     formSessionCookieName,
		Value:    sessionID,
		Path:     routepath.TripsCreate,
		MaxAge:   int(formSessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// formController returns the controller bound to the request's form cookie.
func (h *Handler) formController(r *http.Request) (*form.Controller, bool) {
	cookie, err := r.Cookie(formSessionCookieName)
	if err != nil {
		return nil, false
	}
	return h.forms.Get(cookie.Value)
}
