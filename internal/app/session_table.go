package app

import (
	"sync"
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"

	"github.com/google/uuid"
)

// session binds a keyed cipher engine and/or a keyed hash engine under one
// identifier. At least one engine is always present. The mutex is the
// exclusive-use lock: at most one in-flight operation per session.
type session struct {
	id              string
	cipherAlgorithm string
	hashAlgorithm   string
	cipher          engines.CipherEngine
	hash            engines.HashEngine
	createdAt       time.Time

	mu     sync.Mutex
	closed bool
	stats  sessions.Stats
}

// sessionTable owns the mapping from identifier to live session. Its lock
// guards insert, remove and lookup only; no cryptographic work happens under
// it, and the per-session lock is always acquired after it is released.
type sessionTable struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionTable() *sessionTable {
	return &sessionTable{sessions: make(map[string]*session)}
}

// insert registers s under a fresh random identifier, redrawing until there is
// no collision against the live set, and returns the identifier.
func (t *sessionTable) insert(s *session) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := t.sessions[id]; !exists {
			break
		}
		id = uuid.NewString()
	}

	s.id = id
	t.sessions[id] = s
	return id
}

// remove unlinks the session with the given identifier from the live set.
// The caller still has to tear the session down.
func (t *sessionTable) remove(id string) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[id]
	if ok {
		delete(t.sessions, id)
	}
	return s, ok
}

// removeAll unlinks every live session and returns them for teardown.
func (t *sessionTable) removeAll() []*session {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := make([]*session, 0, len(t.sessions))
	for id, s := range t.sessions {
		removed = append(removed, s)
		delete(t.sessions, id)
	}
	return removed
}

// lockedSession is an exclusively-locked handle to a live session. release
// must be called on every exit path.
type lockedSession struct {
	s *session
}

func (h *lockedSession) release() {
	h.s.mu.Unlock()
}

// lockForUse finds the session under the table lock, then acquires its
// exclusive-use lock after the table lock is released so a blocked caller
// never serializes unrelated sessions. The handle is nil when the identifier
// is not live or the session was destroyed while waiting for its lock.
func (t *sessionTable) lockForUse(id string) *lockedSession {
	t.mu.Lock()
	s, ok := t.sessions[id]
	t.mu.Unlock()
	if !ok {
		return nil
	}

	if !s.mu.TryLock() {
		sessionLockWaitsTotal.Inc()
		s.mu.Lock()
	}

	// A concurrent destroy may have won the lock first and released the
	// engines; the closed flag makes that case a clean lookup failure.
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	return &lockedSession{s: s}
}
