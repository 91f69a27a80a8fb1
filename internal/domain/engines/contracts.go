package engines

// AlgorithmSpec identifies a cipher or hash/MAC transform together with its key
// material. HMAC selects keyed mode for hash algorithms and is ignored for
// ciphers. A spec is immutable once resolved.
type AlgorithmSpec struct {
	Algorithm string
	Key       []byte
	HMAC      bool
}

// CipherEngine is a keyed block cipher transform bound to a session.
// The IV state persists across Encrypt/Decrypt calls until SetIV replaces it,
// so consecutive calls continue the same CBC chain. Implementations are not
// safe for concurrent use; callers must serialize access.
type CipherEngine interface {
	// BlockSize returns the cipher block size in bytes.
	BlockSize() int

	// IVSize returns the initialization vector size in bytes.
	IVSize() int

	// SetIV replaces the running IV state. The slice length must equal IVSize.
	SetIV(iv []byte) error

	// Encrypt transforms buf in place. len(buf) must be a multiple of BlockSize.
	Encrypt(buf []byte) error

	// Decrypt transforms buf in place. len(buf) must be a multiple of BlockSize.
	Decrypt(buf []byte) error

	// Close wipes key material and releases the engine.
	Close()
}

// HashEngine is a hash or MAC transform bound to a session.
// Implementations are not safe for concurrent use; callers must serialize access.
type HashEngine interface {
	// DigestSize returns the digest length in bytes.
	DigestSize() int

	// Init resets the running digest state for a new computation.
	Init()

	// Update folds p into the running digest.
	Update(p []byte) error

	// Final returns the digest over everything since the last Init.
	Final() ([]byte, error)

	// Close wipes key material and releases the engine.
	Close()
}

// Registry resolves algorithm specs into keyed engines. Resolution validates
// key lengths against the algorithm's accepted range before allocating any
// engine and has no side effects beyond engine construction.
type Registry interface {
	// ResolveCipher builds a keyed cipher engine from spec.
	ResolveCipher(spec AlgorithmSpec) (CipherEngine, error)

	// ResolveHash builds a keyed or unkeyed hash engine from spec.
	ResolveHash(spec AlgorithmSpec) (HashEngine, error)
}
