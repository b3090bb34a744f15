package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

type ApiKeyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, key *types.ApiKey) error
	GetByHash(ctx context.Context, tx *gorm.DB, keyHash string) (*types.ApiKey, error)
	Revoke(ctx context.Context, tx *gorm.DB, keyID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	TouchLastUsed(ctx context.Context, tx *gorm.DB, keyID uuid.UUID, at time.Time) error
}

type apiKeyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApiKeyRepo(db *gorm.DB, baseLog *logger.Logger) ApiKeyRepo {
	return &apiKeyRepo{db: db, log: baseLog.With("repo", "ApiKeyRepo")}
}

func (kr *apiKeyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return kr.db
}

func (kr *apiKeyRepo) Create(ctx context.Context, tx *gorm.DB, key *types.ApiKey) error {
	return kr.conn(tx).WithContext(ctx).Create(key).Error
}

func (kr *apiKeyRepo) GetByHash(ctx context.Context, tx *gorm.DB, keyHash string) (*types.ApiKey, error) {
	var key types.ApiKey
	if err := kr.conn(tx).WithContext(ctx).
		Where("key_hash = ?", keyHash).
		First(&key).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

// Revoke is a tombstone, never a row delete.
func (kr *apiKeyRepo) Revoke(ctx context.Context, tx *gorm.DB, keyID uuid.UUID) error {
	return kr.conn(tx).WithContext(ctx).
		Model(&types.ApiKey{}).
		Where("id = ?", keyID).
		Update("revoked", true).Error
}

func (kr *apiKeyRepo) RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return kr.conn(tx).WithContext(ctx).
		Model(&types.ApiKey{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

func (kr *apiKeyRepo) TouchLastUsed(ctx context.Context, tx *gorm.DB, keyID uuid.UUID, at time.Time) error {
	return kr.conn(tx).WithContext(ctx).
		Model(&types.ApiKey{}).
		Where("id = ?", keyID).
		Update("last_used_at", at).Error
}
