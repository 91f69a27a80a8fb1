//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/config"
	pkgTesting "github.com/MGTheTrain/crypto-session-service/internal/pkg/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB         *gorm.DB
	RecordRepo sessions.SessionRecordRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type:   config.SqliteDbType,
			DSN:    ":memory:",
			DBName: "sessions",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, db.AutoMigrate(&models.SessionRecordModel{}))

	log := pkgTesting.SetupTestLogger(t)
	recordRepo, err := NewGormSessionRecordRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:         db,
		RecordRepo: recordRepo,
	}
}

// CreateTestSessionRecord builds an audit record for tests
func CreateTestSessionRecord(t *testing.T, cipherAlgorithm, hashAlgorithm string) *sessions.SessionRecord {
	t.Helper()

	return &sessions.SessionRecord{
		ID:              uuid.NewString(),
		CipherAlgorithm: cipherAlgorithm,
		HashAlgorithm:   hashAlgorithm,
		CreatedAt:       time.Now().UTC(),
	}
}

// Test constants
const (
	TestCipherAlgorithm = engines.CipherAESCBC
	TestHashAlgorithm   = engines.HashSHA256
)
