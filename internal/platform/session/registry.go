// Package session holds the in-memory registry mapping opaque bearer tokens
// to authenticated identities. Sessions live for the process lifetime: there
// is no expiry, and a restart invalidates every token.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// Session is the identity snapshot captured at login or registration time.
// It is never refreshed if the underlying user or tenant record changes.
type Session struct {
	UserID     int64
	UserName   string
	TenantID   int64
	TenantName string
}

// Registry stores live sessions keyed by token.
type Registry interface {
	// Create stores the snapshot and returns a new opaque token.
	Create(s Session) string
	// Lookup returns the stored snapshot, or false for unknown or malformed
	// tokens. It never errors.
	Lookup(token string) (Session, bool)
	// Destroy removes a single token.
	Destroy(token string)
	// DestroyByUser removes every token held by the given user.
	DestroyByUser(userID int64)
}

// MemoryRegistry is a synchronized in-memory Registry. It is safe for
// concurrent use by multiple request goroutines.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{sessions: make(map[string]Session)}
}

// newToken returns a 128-bit cryptographically random hex token.
func newToken() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; a failure here
		// means the process cannot mint credentials at all.
		panic("session: read random: " + err.Error())
	}
	return hex.EncodeToString(buf[:])
}

func (r *MemoryRegistry) Create(s Session) string {
	token := newToken()
	r.mu.Lock()
	r.sessions[token] = s
	r.mu.Unlock()
	return token
}

func (r *MemoryRegistry) Lookup(token string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	return s, ok
}

func (r *MemoryRegistry) Destroy(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

func (r *MemoryRegistry) DestroyByUser(userID int64) {
	r.mu.Lock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()
}
