package session

import (
	"time"

	"mitienda-backend/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

// Store keeps sessions in an expiring in-memory key-value cache. It is the
// server-side stand-in for the storefront's old browser-local storage.
type Store struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a session store.
// ttl: how long a session lives after its last write
// cleanupInterval: how often expired sessions are purged
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		store: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (s *Store) Get(id string) (*domain.Session, bool) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*domain.Session)
	return sess, ok
}

// Set stores the session and refreshes its TTL.
func (s *Store) Set(session *domain.Session) {
	s.store.Set(session.ID, session, s.ttl)
}

func (s *Store) Delete(id string) {
	s.store.Delete(id)
}

func (s *Store) Flush() {
	s.store.Flush()
}
