// Package sessions defines the core contracts and structures for reusable
// cryptographic sessions and the streaming pipeline operations executed
// against them, including operation requests, per-session statistics and the
// typed errors shared across the service.
package sessions
