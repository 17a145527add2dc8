package domain

import (
	"sync"
	"time"
)

type contextKey string

// SessionContextKey is where the auth middleware stores the caller's session.
const SessionContextKey contextKey = "session"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is what the internal storefront API returns on login/register.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the server-side replacement for the old browser-local storage:
// it carries the upstream bearer token, the authenticated user and the cart.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	Cart      Cart      `json:"cart"`
	CreatedAt time.Time `json:"createdAt"`

	// mu guards Cart. The store hands every request in a session the same
	// pointer, so concurrent requests must serialize cart access through it.
	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// CartSnapshot returns a copy of the cart that is safe to read and encode
// while other requests mutate the session.
func (s *Session) CartSnapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Cart.Copy()
}

// SessionStore abstracts the key-value session cache so usecases stay
// deterministic under test.
type SessionStore interface {
	Get(id string) (*Session, bool)
	Set(session *Session)
	Delete(id string)
	Flush()
}
