// Package session identifies storefront clients by a long-lived random
// cookie. The cookie carries only the client id; everything the client
// owns is kept in the state backend under that id.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	// CookieName is the name of the client cookie sent to the browser.
	CookieName = "sf_client"

	// DefaultMaxAge is how long the browser keeps the client cookie.
	DefaultMaxAge = 365 * 24 * time.Hour

	// idLength is the byte length of the random client ID (16 bytes = 32 hex chars).
	idLength = 16
)

// Manager issues and reads client cookies.
type Manager struct {
	secure bool
	maxAge time.Duration
}

// NewManager creates a cookie manager. secure marks cookies
// HTTPS-only and should be set in production.
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure, maxAge: DefaultMaxAge}
}

// ClientID returns the client id from the request cookie. When the cookie
// is missing or malformed a new id is generated and set on the response.
// The boolean reports whether the id is new.
func (m *Manager) ClientID(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && Valid(cookie.Value) {
		return cookie.Value, false, nil
	}

	id, err := generateID()
	if err != nil {
		return "", false, fmt.Errorf("session: generate client id: %w", err)
	}
	m.set(w, id)
	return id, true, nil
}

// Clear expires the client cookie. The next request gets a fresh id.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (m *Manager) set(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.maxAge.Seconds()),
	})
}

// Valid reports whether id has the shape of an issued client id.
func Valid(id string) bool {
	if len(id) != idLength*2 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// generateID creates a cryptographically random client identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
