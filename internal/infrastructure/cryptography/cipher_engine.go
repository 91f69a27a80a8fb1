package cryptography

import (
	"crypto/cipher"
	"fmt"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"
)

// cbcCipherEngine drives any block cipher in CBC mode. A single IV chain is
// shared between encryption and decryption, so the engine behaves like one
// transform handle whose state carries across calls until SetIV replaces it.
type cbcCipherEngine struct {
	algorithm string
	block     cipher.Block
	iv        []byte
	logger    logger.Logger
}

func newCBCCipherEngine(algorithm string, block cipher.Block, log logger.Logger) *cbcCipherEngine {
	engineCount.Add(1)
	return &cbcCipherEngine{
		algorithm: algorithm,
		block:     block,
		iv:        make([]byte, block.BlockSize()),
		logger:    log,
	}
}

// BlockSize returns the cipher block size in bytes.
func (e *cbcCipherEngine) BlockSize() int {
	return e.block.BlockSize()
}

// IVSize returns the initialization vector size in bytes. For CBC it equals
// the block size.
func (e *cbcCipherEngine) IVSize() int {
	return e.block.BlockSize()
}

// SetIV replaces the running IV state with a bounds-checked copy.
func (e *cbcCipherEngine) SetIV(iv []byte) error {
	if len(iv) != len(e.iv) {
		return fmt.Errorf("%w: iv length %d for %s, want %d",
			sessions.ErrInvalidRequest, len(iv), e.algorithm, len(e.iv))
	}
	copy(e.iv, iv)
	return nil
}

// Encrypt transforms buf in place and advances the IV chain to the last
// ciphertext block.
func (e *cbcCipherEngine) Encrypt(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if len(buf)%e.BlockSize() != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %s block size %d",
			sessions.ErrMisalignedInput, len(buf), e.algorithm, e.BlockSize())
	}

	mode := cipher.NewCBCEncrypter(e.block, e.iv)
	mode.CryptBlocks(buf, buf)
	copy(e.iv, buf[len(buf)-e.BlockSize():])

	return nil
}

// Decrypt transforms buf in place and advances the IV chain to the last
// ciphertext block consumed.
func (e *cbcCipherEngine) Decrypt(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if len(buf)%e.BlockSize() != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %s block size %d",
			sessions.ErrMisalignedInput, len(buf), e.algorithm, e.BlockSize())
	}

	// The last ciphertext block is the next IV; save it before the in-place
	// transform overwrites it.
	next := make([]byte, e.BlockSize())
	copy(next, buf[len(buf)-e.BlockSize():])

	mode := cipher.NewCBCDecrypter(e.block, e.iv)
	mode.CryptBlocks(buf, buf)
	copy(e.iv, next)

	return nil
}

// Close wipes the IV state and releases the engine.
func (e *cbcCipherEngine) Close() {
	for i := range e.iv {
		e.iv[i] = 0
	}
	e.block = nil
	engineCount.Add(-1)
}
