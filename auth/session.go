package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"
)

const SessionCookieName = "session_token"

const sessionTTL = 24 * time.Hour

// SessionStore holds active sessions in memory, guarded by a RWMutex. The
// database remains the only durable shared state; sessions die with the
// process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]int64)}
}

// Create registers a new session for the user and returns the token.
func (s *SessionStore) Create(userID int64) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

// UserID returns the user bound to the token, or 0 when the token is unknown.
func (s *SessionStore) UserID(token string) int64 {
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return userID
}

// Delete removes a session.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Cookie builds the session cookie for a token. An empty token produces an
// expired cookie, used on logout.
func Cookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	} else {
		c.Expires = time.Now().Add(sessionTTL)
	}
	return c
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns "" when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
