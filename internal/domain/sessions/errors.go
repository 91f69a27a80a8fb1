package sessions

import "errors"

// Typed errors returned by session and pipeline operations. Callers match
// these with errors.Is; wrapping adds context without hiding the kind.
var (
	// ErrInvalidRequest indicates a malformed request, such as a session
	// creation with neither cipher nor hash spec, a bad IV length or an
	// undersized destination or MAC buffer.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownAlgorithm indicates an algorithm tag the registry cannot resolve.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidKeyLength indicates a key outside the algorithm's accepted range.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrNotFound indicates a session identifier that is not live.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidOperation indicates an operation kind other than encrypt or decrypt.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrMisalignedInput indicates a cipher-flagged segment whose length is not
	// a multiple of the cipher block size.
	ErrMisalignedInput = errors.New("misaligned input")

	// ErrEngineFailure indicates the underlying cipher or hash engine rejected
	// input or failed internally. The session remains usable.
	ErrEngineFailure = errors.New("engine failure")

	// ErrResourceExhausted indicates a staging buffer or engine allocation failure.
	ErrResourceExhausted = errors.New("resource exhausted")
)
