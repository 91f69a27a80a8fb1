package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"
)

// sessionService implements the sessions.SessionService interface on top of a
// shared session table.
type sessionService struct {
	table       *sessionTable
	registry    engines.Registry
	recordRepo  sessions.SessionRecordRepository
	logger      logger.Logger
	enableStats bool
}

// NewSessionServices wires a shared session table into a lifecycle service and
// a pipeline service. recordRepo may be nil, which disables audit records;
// enableStats toggles the advisory per-session usage counters.
func NewSessionServices(
	registry engines.Registry,
	recordRepo sessions.SessionRecordRepository,
	log logger.Logger,
	enableStats bool,
) (sessions.SessionService, sessions.PipelineService, error) {
	table := newSessionTable()

	sessionSvc := &sessionService{
		table:       table,
		registry:    registry,
		recordRepo:  recordRepo,
		logger:      log,
		enableStats: enableStats,
	}
	pipelineSvc := &pipelineService{
		table:       table,
		logger:      log,
		enableStats: enableStats,
	}

	return sessionSvc, pipelineSvc, nil
}

// Create resolves the given specs, builds a session holding the keyed engines
// and registers it under a fresh identifier.
func (s *sessionService) Create(ctx context.Context, cipherSpec, hashSpec *engines.AlgorithmSpec) (string, error) {
	if cipherSpec == nil && hashSpec == nil {
		return "", fmt.Errorf("%w: neither cipher nor hash spec given", sessions.ErrInvalidRequest)
	}

	ses := &session{createdAt: time.Now().UTC()}

	if cipherSpec != nil {
		cipherEngine, err := s.registry.ResolveCipher(*cipherSpec)
		if err != nil {
			return "", err
		}
		ses.cipher = cipherEngine
		ses.cipherAlgorithm = cipherSpec.Algorithm
	}

	if hashSpec != nil {
		hashEngine, err := s.registry.ResolveHash(*hashSpec)
		if err != nil {
			// No resource leak on the error path.
			if ses.cipher != nil {
				ses.cipher.Close()
			}
			return "", err
		}
		ses.hash = hashEngine
		ses.hashAlgorithm = hashSpec.Algorithm
	}

	id := s.table.insert(ses)

	sessionsCreatedTotal.Inc()
	liveSessions.Inc()
	s.logger.Debug("Created session ", id)

	if s.recordRepo != nil {
		record := &sessions.SessionRecord{
			ID:              id,
			CipherAlgorithm: ses.cipherAlgorithm,
			HashAlgorithm:   ses.hashAlgorithm,
			CreatedAt:       ses.createdAt,
		}
		if err := s.recordRepo.Create(ctx, record); err != nil {
			// Auditing is advisory; the session stays live.
			s.logger.Warn("Failed to write audit record for session ", id, ": ", err)
		}
	}

	return id, nil
}

// Destroy removes the session from the table, waits for any in-flight
// operation to finish and releases its engines.
func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	ses, ok := s.table.remove(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", sessions.ErrNotFound, sessionID)
	}

	s.teardown(ctx, ses)
	return nil
}

// DestroyAll removes every live session; used when the owning caller context
// is torn down. Individual teardown cannot fail.
func (s *sessionService) DestroyAll(ctx context.Context) error {
	for _, ses := range s.table.removeAll() {
		s.teardown(ctx, ses)
	}
	return nil
}

// Info returns a snapshot of the session with the given identifier.
func (s *sessionService) Info(_ context.Context, sessionID string) (*sessions.SessionInfo, error) {
	handle := s.table.lockForUse(sessionID)
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", sessions.ErrNotFound, sessionID)
	}
	defer handle.release()

	ses := handle.s
	info := &sessions.SessionInfo{
		ID:              ses.id,
		CipherAlgorithm: ses.cipherAlgorithm,
		HashAlgorithm:   ses.hashAlgorithm,
		CreatedAt:       ses.createdAt,
		Stats:           ses.stats,
	}
	if ses.cipher != nil {
		info.BlockSize = ses.cipher.BlockSize()
		info.IVSize = ses.cipher.IVSize()
	}
	if ses.hash != nil {
		info.DigestSize = ses.hash.DigestSize()
	}

	return info, nil
}

// teardown acquires the session's exclusive-use lock, blocking until any
// in-flight operation completes, then releases both engines. The session is
// already unlinked from the table, so no new operation can find it.
func (s *sessionService) teardown(ctx context.Context, ses *session) {
	if !ses.mu.TryLock() {
		s.logger.Debug("Waiting for in-flight operation on session ", ses.id)
		sessionLockWaitsTotal.Inc()
		ses.mu.Lock()
	}

	if s.enableStats {
		s.logger.Debug("Session ", ses.id,
			" usage in bytes: enc=", ses.stats.BytesEncrypted,
			", dec=", ses.stats.BytesDecrypted,
			", max=", ses.stats.MaxSegmentSize,
			", cnt=", ses.stats.Operations)
	}

	stats := ses.stats
	if ses.cipher != nil {
		ses.cipher.Close()
		ses.cipher = nil
	}
	if ses.hash != nil {
		ses.hash.Close()
		ses.hash = nil
	}
	ses.closed = true
	ses.mu.Unlock()

	sessionsDestroyedTotal.Inc()
	liveSessions.Dec()
	s.logger.Debug("Removed session ", ses.id)

	if s.recordRepo != nil {
		closedAt := time.Now().UTC()
		record := &sessions.SessionRecord{
			ID:              ses.id,
			CipherAlgorithm: ses.cipherAlgorithm,
			HashAlgorithm:   ses.hashAlgorithm,
			CreatedAt:       ses.createdAt,
			ClosedAt:        &closedAt,
			BytesEncrypted:  stats.BytesEncrypted,
			BytesDecrypted:  stats.BytesDecrypted,
			MaxSegmentSize:  stats.MaxSegmentSize,
			Operations:      stats.Operations,
		}
		if err := s.recordRepo.UpdateByID(ctx, record); err != nil {
			s.logger.Warn("Failed to close audit record for session ", ses.id, ": ", err)
		}
	}
}
