package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sync/atomic"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/ripemd160"
)

// engineCount tracks live engines so tests and metrics can assert that
// create/destroy cycles return to baseline.
var engineCount atomic.Int64

// ActiveEngines returns the number of currently allocated engines.
func ActiveEngines() int64 {
	return engineCount.Load()
}

type registry struct {
	logger logger.Logger
}

// NewRegistry creates a new engines.Registry backed by the Go crypto libraries.
func NewRegistry(log logger.Logger) (engines.Registry, error) {
	return &registry{logger: log}, nil
}

// ResolveCipher builds a keyed CBC cipher engine from spec. Key lengths are
// validated against the algorithm's accepted set before any engine is allocated.
func (r *registry) ResolveCipher(spec engines.AlgorithmSpec) (engines.CipherEngine, error) {
	if len(spec.Key) > engines.MaxCipherKeyLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds cipher key limit %d",
			sessions.ErrInvalidKeyLength, len(spec.Key), engines.MaxCipherKeyLength)
	}

	var (
		block cipher.Block
		err   error
	)

	switch spec.Algorithm {
	case engines.CipherAESCBC:
		if l := len(spec.Key); l != 16 && l != 24 && l != 32 {
			return nil, keyLengthError(spec.Algorithm, l, "16, 24 or 32")
		}
		block, err = aes.NewCipher(spec.Key)
	case engines.CipherDESCBC:
		if l := len(spec.Key); l != 8 {
			return nil, keyLengthError(spec.Algorithm, l, "8")
		}
		block, err = des.NewCipher(spec.Key)
	case engines.Cipher3DESCBC:
		if l := len(spec.Key); l != 24 {
			return nil, keyLengthError(spec.Algorithm, l, "24")
		}
		block, err = des.NewTripleDESCipher(spec.Key)
	case engines.CipherBlowfishCBC:
		if l := len(spec.Key); l < 1 || l > 56 {
			return nil, keyLengthError(spec.Algorithm, l, "1 to 56")
		}
		block, err = blowfish.NewCipher(spec.Key)
	default:
		return nil, fmt.Errorf("%w: cipher %q", sessions.ErrUnknownAlgorithm, spec.Algorithm)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sessions.ErrEngineFailure, spec.Algorithm, err)
	}

	return newCBCCipherEngine(spec.Algorithm, block, r.logger), nil
}

// ResolveHash builds a hash engine from spec, keyed when spec.HMAC is set.
// Any key supplied for an unkeyed digest is ignored.
func (r *registry) ResolveHash(spec engines.AlgorithmSpec) (engines.HashEngine, error) {
	var newHash func() hash.Hash

	switch spec.Algorithm {
	case engines.HashMD5:
		newHash = md5.New
	case engines.HashSHA1:
		newHash = sha1.New
	case engines.HashSHA256:
		newHash = sha256.New
	case engines.HashSHA384:
		newHash = sha512.New384
	case engines.HashSHA512:
		newHash = sha512.New
	case engines.HashRIPEMD160:
		newHash = ripemd160.New
	default:
		return nil, fmt.Errorf("%w: hash %q", sessions.ErrUnknownAlgorithm, spec.Algorithm)
	}

	if spec.HMAC {
		if len(spec.Key) == 0 {
			return nil, fmt.Errorf("%w: hmac %s requires a key", sessions.ErrInvalidKeyLength, spec.Algorithm)
		}
		if len(spec.Key) > engines.MaxHMACKeyLength {
			return nil, fmt.Errorf("%w: %d bytes exceeds hmac key limit %d",
				sessions.ErrInvalidKeyLength, len(spec.Key), engines.MaxHMACKeyLength)
		}
	}

	return newHashEngine(spec.Algorithm, newHash, spec.Key, spec.HMAC, r.logger), nil
}

func keyLengthError(algorithm string, got int, want string) error {
	return fmt.Errorf("%w: %d bytes for %s, want %s", sessions.ErrInvalidKeyLength, got, algorithm, want)
}
