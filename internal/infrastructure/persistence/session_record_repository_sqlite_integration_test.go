//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecordSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestSessionRecord(t, TestCipherAlgorithm, TestHashAlgorithm)
	err := ctx.RecordRepo.Create(context.Background(), record)
	require.NoError(t, err)

	var created models.SessionRecordModel
	err = ctx.DB.First(&created, "id = ?", record.ID).Error
	require.NoError(t, err)
	assert.Equal(t, record.ID, created.ID)
	assert.Equal(t, record.CipherAlgorithm, created.CipherAlgorithm)
	assert.Nil(t, created.ClosedAt)
}

func TestSessionRecordSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestSessionRecord(t, TestCipherAlgorithm, "")
	require.NoError(t, ctx.RecordRepo.Create(context.Background(), record))

	fetched, err := ctx.RecordRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, record.CipherAlgorithm, fetched.CipherAlgorithm)

	_, err = ctx.RecordRepo.GetByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sessions.ErrNotFound))
}

func TestSessionRecordSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record1 := CreateTestSessionRecord(t, TestCipherAlgorithm, TestHashAlgorithm)
	record2 := CreateTestSessionRecord(t, "", TestHashAlgorithm)
	require.NoError(t, ctx.RecordRepo.Create(context.Background(), record1))
	require.NoError(t, ctx.RecordRepo.Create(context.Background(), record2))

	all, err := ctx.RecordRepo.List(context.Background(), &sessions.SessionRecordQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := ctx.RecordRepo.List(context.Background(), &sessions.SessionRecordQuery{
		CipherAlgorithm: TestCipherAlgorithm,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, record1.ID, filtered[0].ID)
}

func TestSessionRecordSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestSessionRecord(t, TestCipherAlgorithm, TestHashAlgorithm)
	require.NoError(t, ctx.RecordRepo.Create(context.Background(), record))

	closedAt := time.Now().UTC()
	record.ClosedAt = &closedAt
	record.BytesEncrypted = 4096
	record.Operations = 3
	require.NoError(t, ctx.RecordRepo.UpdateByID(context.Background(), record))

	fetched, err := ctx.RecordRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ClosedAt)
	assert.Equal(t, uint64(4096), fetched.BytesEncrypted)
	assert.Equal(t, uint64(3), fetched.Operations)

	missing := CreateTestSessionRecord(t, TestCipherAlgorithm, "")
	err = ctx.RecordRepo.UpdateByID(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sessions.ErrNotFound))
}

func TestSessionRecordSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestSessionRecord(t, "", TestHashAlgorithm)
	require.NoError(t, ctx.RecordRepo.Create(context.Background(), record))

	require.NoError(t, ctx.RecordRepo.DeleteByID(context.Background(), record.ID))

	_, err := ctx.RecordRepo.GetByID(context.Background(), record.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sessions.ErrNotFound))

	err = ctx.RecordRepo.DeleteByID(context.Background(), record.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sessions.ErrNotFound))
}
