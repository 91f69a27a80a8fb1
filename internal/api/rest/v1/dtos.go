package v1

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AlgorithmSpecRequest describes one transform of a new session. The key is
// base64 encoded.
type AlgorithmSpecRequest struct {
	Algorithm string `json:"algorithm" validate:"required"`
	Key       string `json:"key" validate:"required,base64"`
	HMAC      bool   `json:"hmac"`
}

// CreateSessionRequest represents the payload for creating a session with an
// optional cipher and an optional hash transform.
type CreateSessionRequest struct {
	Cipher *AlgorithmSpecRequest `json:"cipher,omitempty"`
	Hash   *AlgorithmSpecRequest `json:"hash,omitempty"`
}

// Validate validates the CreateSessionRequest struct
func (r *CreateSessionRequest) Validate() error {
	if r.Cipher == nil && r.Hash == nil {
		return fmt.Errorf("at least one of cipher or hash is required")
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// SegmentRequest is one input segment of an operation. Data is base64 encoded.
type SegmentRequest struct {
	Data   string `json:"data" validate:"required,base64"`
	Cipher bool   `json:"cipher"`
	Hash   bool   `json:"hash"`
}

// RunOperationRequest represents the payload for running an encrypt or decrypt
// operation against an existing session.
type RunOperationRequest struct {
	Operation string           `json:"operation" validate:"required,oneof=encrypt decrypt"`
	IV        string           `json:"iv,omitempty" validate:"omitempty,base64"`
	Segments  []SegmentRequest `json:"segments" validate:"required,min=1,dive"`
}

// Validate validates the RunOperationRequest struct
func (r *RunOperationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// SessionResponse is returned after a session has been created
type SessionResponse struct {
	ID string `json:"id"`
}

// SessionStatsResponse carries the usage counters of a session
type SessionStatsResponse struct {
	BytesEncrypted uint64 `json:"bytes_encrypted"`
	BytesDecrypted uint64 `json:"bytes_decrypted"`
	MaxSegmentSize uint64 `json:"max_segment_size"`
	Operations     uint64 `json:"operations"`
}

// SessionInfoResponse describes a live session
type SessionInfoResponse struct {
	ID              string               `json:"id"`
	CipherAlgorithm string               `json:"cipher_algorithm,omitempty"`
	HashAlgorithm   string               `json:"hash_algorithm,omitempty"`
	BlockSize       int                  `json:"block_size,omitempty"`
	IVSize          int                  `json:"iv_size,omitempty"`
	DigestSize      int                  `json:"digest_size,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	Stats           SessionStatsResponse `json:"stats"`
}

// OperationResponse carries the base64 encoded outputs of an operation
type OperationResponse struct {
	Output string `json:"output,omitempty"`
	MAC    string `json:"mac,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational response
type InfoResponse struct {
	Message string `json:"message"`
}
