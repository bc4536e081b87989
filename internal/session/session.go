// Package session keeps the backend bearer token in an HttpOnly cookie and
// exposes it per request. There is no server-side session state: the token
// is the session.
package session

import (
	"net/http"
	"time"
)

type Session struct {
	Token    string
	Username string
	NomAgent string
	Role     string
}

func (s Session) IsAdmin() bool {
	return s.Role == "ADMIN"
}

type Manager struct {
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewManager(cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{cookieName: cookieName, ttl: ttl, secure: secure, now: time.Now}
}

func (m *Manager) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the current session if the cookie is present and the token
// is not known to be expired. A token whose claims cannot be parsed is
// still accepted; the backend is the authority and will answer 401 if it
// is bad.
func (m *Manager) Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	sess := Session{Token: cookie.Value}
	claims, err := ParseClaims(cookie.Value)
	if err != nil {
		return sess, true
	}
	if !claims.ExpiresAt.IsZero() && m.now().After(claims.ExpiresAt) {
		return Session{}, false
	}
	sess.Username = claims.Username
	sess.NomAgent = claims.NomAgent
	sess.Role = claims.Role
	return sess, true
}
