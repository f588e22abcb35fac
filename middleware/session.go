package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/MrEthical07/cookieless"
)

// Session is the per-request view of a stored session. The record is loaded
// from the store on first access; nothing touches the backend if the handler
// never uses the session. All methods are safe for concurrent use.
type Session struct {
	store *cookieless.Store
	req   *http.Request

	mu          sync.Mutex
	loaded      bool
	persisted   bool
	id          string
	values      cookieless.Record
	expireAfter time.Duration
	dropped     bool
}

func newSession(store *cookieless.Store, r *http.Request, expireAfter time.Duration) *Session {
	return &Session{
		store:       store,
		req:         r,
		expireAfter: expireAfter,
	}
}

// load must run with s.mu held.
func (s *Session) load() {
	if s.loaded {
		return
	}
	requested, ok := s.store.RequestSessionID(s.req)
	s.id, s.values = s.store.FindSession(s.req)
	s.persisted = ok && requested == s.id
	s.loaded = true
}

// ID returns the session identifier. After Destroy with drop it is empty.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.id
}

// IsNew reports whether the session was created for this request rather than
// loaded from the backend.
func (s *Session) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return !s.persisted
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	delete(s.values, key)
}

// Values returns a shallow copy of the record.
func (s *Session) Values() cookieless.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.values.Clone()
}

// Clear removes every key but keeps the identifier.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.values = cookieless.Record{}
}

// SetExpireAfter overrides the TTL used when the session is committed.
func (s *Session) SetExpireAfter(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireAfter = d
}

// Destroy deletes the stored session immediately and clears the values. With
// drop the request continues without a session; otherwise it continues under
// the replacement identifier returned by the store, and anything set afterwards
// is committed under that identifier.
func (s *Session) Destroy(drop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	next := s.store.DeleteSession(s.req, s.id, cookieless.DeleteOptions{Drop: drop})
	s.id = next
	s.values = cookieless.Record{}
	s.persisted = false
	s.dropped = next == ""
}

// discard forgets a loaded session so commit leaves the backend alone.
func (s *Session) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.id = ""
	s.values = nil
}

// commit writes the session back once the handler returned. An untouched
// session is not written. It reports the identifier the session ended under,
// whether persistence happened, and whether the handler used the session.
func (s *Session) commit() (id string, written, touched bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return "", false, false
	}
	if s.dropped {
		return "", false, true
	}
	id, ok := s.store.WriteSession(s.req, s.id, s.values, cookieless.WriteOptions{ExpireAfter: s.expireAfter})
	if !ok {
		return s.id, false, true
	}
	return id, true, true
}
