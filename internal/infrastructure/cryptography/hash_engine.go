package cryptography

import (
	"crypto/hmac"
	"hash"

	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"
)

// hashEngine computes a running digest, either unkeyed or in keyed HMAC mode.
type hashEngine struct {
	algorithm string
	hmacMode  bool
	key       []byte
	h         hash.Hash
	logger    logger.Logger
}

func newHashEngine(algorithm string, newHash func() hash.Hash, key []byte, hmacMode bool, log logger.Logger) *hashEngine {
	e := &hashEngine{
		algorithm: algorithm,
		hmacMode:  hmacMode,
		logger:    log,
	}
	if hmacMode {
		e.key = make([]byte, len(key))
		copy(e.key, key)
		e.h = hmac.New(newHash, e.key)
	} else {
		e.h = newHash()
	}

	engineCount.Add(1)
	return e
}

// DigestSize returns the digest length in bytes.
func (e *hashEngine) DigestSize() int {
	return e.h.Size()
}

// Init resets the running digest state for a new computation.
func (e *hashEngine) Init() {
	e.h.Reset()
}

// Update folds p into the running digest.
func (e *hashEngine) Update(p []byte) error {
	// hash.Hash.Write never returns an error per its contract.
	_, err := e.h.Write(p)
	return err
}

// Final returns the digest over everything written since the last Init.
func (e *hashEngine) Final() ([]byte, error) {
	return e.h.Sum(nil), nil
}

// Close wipes the HMAC key material and releases the engine.
func (e *hashEngine) Close() {
	for i := range e.key {
		e.key[i] = 0
	}
	e.h = nil
	engineCount.Add(-1)
}
