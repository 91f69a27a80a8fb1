// Package engines defines the core interfaces and structures for keyed cryptographic
// transforms, such as block ciphers and hash/MAC engines, including algorithm
// identification, key validation and engine resolution.
package engines
