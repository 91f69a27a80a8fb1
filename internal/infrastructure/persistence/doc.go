// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with databases, managing
// session audit records. The package includes logging for
// traceability and error handling.
package persistence
