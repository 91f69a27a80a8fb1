package models

import (
	"time"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
)

// SessionRecordModel is the GORM database model for session audit records
// (infrastructure concern). It never holds key material.
type SessionRecordModel struct {
	ID              string     `gorm:"primaryKey;type:uuid"`
	CipherAlgorithm string     `gorm:"type:varchar(30);index"`
	HashAlgorithm   string     `gorm:"type:varchar(30);index"`
	CreatedAt       time.Time  `gorm:"not null"`
	ClosedAt        *time.Time `gorm:""`
	BytesEncrypted  uint64     `gorm:"not null;default:0"`
	BytesDecrypted  uint64     `gorm:"not null;default:0"`
	MaxSegmentSize  uint64     `gorm:"not null;default:0"`
	Operations      uint64     `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (SessionRecordModel) TableName() string {
	return "session_records"
}

// ToDomain converts GORM model to domain entity
func (m *SessionRecordModel) ToDomain() *sessions.SessionRecord {
	return &sessions.SessionRecord{
		ID:              m.ID,
		CipherAlgorithm: m.CipherAlgorithm,
		HashAlgorithm:   m.HashAlgorithm,
		CreatedAt:       m.CreatedAt,
		ClosedAt:        m.ClosedAt,
		BytesEncrypted:  m.BytesEncrypted,
		BytesDecrypted:  m.BytesDecrypted,
		MaxSegmentSize:  m.MaxSegmentSize,
		Operations:      m.Operations,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SessionRecordModel) FromDomain(r *sessions.SessionRecord) {
	m.ID = r.ID
	m.CipherAlgorithm = r.CipherAlgorithm
	m.HashAlgorithm = r.HashAlgorithm
	m.CreatedAt = r.CreatedAt
	m.ClosedAt = r.ClosedAt
	m.BytesEncrypted = r.BytesEncrypted
	m.BytesDecrypted = r.BytesDecrypted
	m.MaxSegmentSize = r.MaxSegmentSize
	m.Operations = r.Operations
}
