package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSessionRecordRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSessionRecordRepository creates a new GORM-based SessionRecordRepository implementation
func NewGormSessionRecordRepository(db *gorm.DB, logger logger.Logger) (sessions.SessionRecordRepository, error) {
	return &gormSessionRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSessionRecordRepository) Create(ctx context.Context, record *sessions.SessionRecord) error {
	model := &models.SessionRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session record: %w", err)
	}

	r.logger.Info("Created session record with id ", record.ID)
	return nil
}

func (r *gormSessionRecordRepository) GetByID(ctx context.Context, sessionID string) (*sessions.SessionRecord, error) {
	var model models.SessionRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session record %s", sessions.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to fetch session record: %w", err)
	}

	return model.ToDomain(), nil
}

func (r *gormSessionRecordRepository) List(ctx context.Context, query *sessions.SessionRecordQuery) ([]*sessions.SessionRecord, error) {
	var modelList []*models.SessionRecordModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SessionRecordModel{})

	if query != nil {
		if query.CipherAlgorithm != "" {
			dbQuery = dbQuery.Where("cipher_algorithm = ?", query.CipherAlgorithm)
		}
		if query.HashAlgorithm != "" {
			dbQuery = dbQuery.Where("hash_algorithm = ?", query.HashAlgorithm)
		}
		if !query.CreatedAfter.IsZero() {
			dbQuery = dbQuery.Where("created_at >= ?", query.CreatedAfter)
		}
		if query.Limit > 0 {
			dbQuery = dbQuery.Limit(query.Limit)
		}
		if query.Offset > 0 {
			dbQuery = dbQuery.Offset(query.Offset)
		}
	}

	if err := dbQuery.Order("created_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch session records: %w", err)
	}

	domainList := make([]*sessions.SessionRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSessionRecordRepository) UpdateByID(ctx context.Context, record *sessions.SessionRecord) error {
	model := &models.SessionRecordModel{}
	model.FromDomain(record)

	result := r.db.WithContext(ctx).Model(&models.SessionRecordModel{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"closed_at":        model.ClosedAt,
			"bytes_encrypted":  model.BytesEncrypted,
			"bytes_decrypted":  model.BytesDecrypted,
			"max_segment_size": model.MaxSegmentSize,
			"operations":       model.Operations,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update session record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: session record %s", sessions.ErrNotFound, record.ID)
	}

	r.logger.Info("Updated session record with id ", record.ID)
	return nil
}

func (r *gormSessionRecordRepository) DeleteByID(ctx context.Context, sessionID string) error {
	result := r.db.WithContext(ctx).Delete(&models.SessionRecordModel{}, "id = ?", sessionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: session record %s", sessions.ErrNotFound, sessionID)
	}

	r.logger.Info("Deleted session record with id ", sessionID)
	return nil
}
