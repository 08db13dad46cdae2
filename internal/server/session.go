package server

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookie = "contour_sketch_session"

// Session is one browser's working state: its last upload and its own SVG output.
type Session struct {
	ID          string
	CurrentFile string
	OutputPath  string
	LastSeen    time.Time
}

// SessionStore keeps sessions in memory. Handlers receive copies, never the
// stored values.
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	outputDir string
	now       func() time.Time
}

func NewSessionStore(outputDir string) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*Session),
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Acquire returns the session for id, or a fresh one when id is unknown.
func (s *SessionStore) Acquire(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		newID := uuid.NewString()
		sess = &Session{
			ID:         newID,
			OutputPath: filepath.Join(s.outputDir, newID+".svg"),
		}
		s.sessions[newID] = sess
	}
	sess.LastSeen = s.now()
	return *sess
}

func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// SetCurrentFile records the upload that later updates re-convert.
func (s *SessionStore) SetCurrentFile(id, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.CurrentFile = path
	sess.LastSeen = s.now()
	return true
}

// Expire forgets every session not seen since before and returns them.
func (s *SessionStore) Expire(before time.Time) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []Session
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(before) {
			expired = append(expired, *sess)
			delete(s.sessions, id)
		}
	}
	return expired
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type sessionKey struct{}

func withSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session attached by the session middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}

// sessionMiddleware resolves the caller's session from its cookie, creating one
// when needed, and attaches it to the request context.
func (s *SessionStore) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		sess := s.Acquire(id)
		if sess.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}
