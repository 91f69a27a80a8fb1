package sessions

import (
	"context"
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
)

// SessionService defines methods for managing the lifecycle of cryptographic sessions.
type SessionService interface {
	// Create resolves the given specs, builds a session holding the keyed
	// engines and registers it under a fresh identifier.
	// At least one of cipherSpec/hashSpec must be non-nil.
	// It returns the session identifier and any error encountered during creation.
	Create(ctx context.Context, cipherSpec, hashSpec *engines.AlgorithmSpec) (string, error)

	// Destroy removes the session with the given identifier and releases its
	// engines. It blocks until any in-flight operation on the session completes.
	Destroy(ctx context.Context, sessionID string) error

	// DestroyAll removes every live session; used when the owning caller
	// context is torn down. Individual teardown cannot fail.
	DestroyAll(ctx context.Context) error

	// Info returns a snapshot of the session with the given identifier.
	Info(ctx context.Context, sessionID string) (*SessionInfo, error)
}

// PipelineService runs streaming encrypt/decrypt operations, optionally
// combined with hash/MAC computation, against a live session.
type PipelineService interface {
	// Run executes the request against its target session. The session is
	// exclusively locked for the duration of the call. Transformed bytes are
	// written progressively to the request's destination buffer; on failure
	// the destination contents must be discarded by the caller.
	Run(ctx context.Context, request *OperationRequest) error
}

// SessionRecordRepository defines the interface for session audit records.
type SessionRecordRepository interface {
	Create(ctx context.Context, record *SessionRecord) error
	GetByID(ctx context.Context, sessionID string) (*SessionRecord, error)
	List(ctx context.Context, query *SessionRecordQuery) ([]*SessionRecord, error)
	UpdateByID(ctx context.Context, record *SessionRecord) error
	DeleteByID(ctx context.Context, sessionID string) error
}

// SessionRecordQuery carries filters for listing session audit records.
type SessionRecordQuery struct {
	CipherAlgorithm string
	HashAlgorithm   string
	CreatedAfter    time.Time
	Limit           int
	Offset          int
}
