package sessions

import (
	"fmt"
	"time"
)

// OperationKind selects the direction of a pipeline operation.
type OperationKind uint8

// Pipeline operation kinds. Any other value is rejected with ErrInvalidOperation.
const (
	OpEncrypt OperationKind = iota
	OpDecrypt
)

// String returns the lower-case name of the operation kind.
func (k OperationKind) String() string {
	switch k {
	case OpEncrypt:
		return "encrypt"
	case OpDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// SegmentFlags selects which transforms a segment participates in.
type SegmentFlags uint8

// Segment participation flags. A segment may select ciphering, hashing, both
// or neither.
const (
	SegmentCipher SegmentFlags = 1 << iota
	SegmentHash
)

// Segment is one contiguous unit of input data within a pipeline request.
type Segment struct {
	Src   []byte
	Flags SegmentFlags
}

// OperationRequest describes one pipeline invocation against a session.
//
// Dst is a single destination buffer shared across segments; the write cursor
// advances by each cipher-flagged chunk's length. MAC, when non-nil, receives
// the finalized digest and must hold at least the engine's digest size. IV,
// when non-nil, re-initializes the cipher before processing; when nil the
// cipher continues from whatever IV state it last held.
type OperationRequest struct {
	Kind      OperationKind
	SessionID string
	Segments  []Segment
	IV        []byte
	Dst       []byte
	MAC       []byte
}

// Stats holds advisory per-session usage counters. They never affect
// correctness and are only collected when enabled.
type Stats struct {
	BytesEncrypted uint64
	BytesDecrypted uint64
	MaxSegmentSize uint64
	Operations     uint64
}

// SessionInfo is a read-only snapshot of a live session.
type SessionInfo struct {
	ID              string
	CipherAlgorithm string
	HashAlgorithm   string
	BlockSize       int
	IVSize          int
	DigestSize      int
	CreatedAt       time.Time
	Stats           Stats
}

// SessionRecord is the audit trail entry for a session's lifetime. It carries
// no key material.
type SessionRecord struct {
	ID              string
	CipherAlgorithm string
	HashAlgorithm   string
	CreatedAt       time.Time
	ClosedAt        *time.Time
	BytesEncrypted  uint64
	BytesDecrypted  uint64
	MaxSegmentSize  uint64
	Operations      uint64
}
