package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

type MintRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mint *types.SkillMint) error
	GetByPackageOwner(ctx context.Context, tx *gorm.DB, packageID, ownerID uuid.UUID) (*types.SkillMint, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.SkillMint, int64, error)
}

type mintRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMintRepo(db *gorm.DB, baseLog *logger.Logger) MintRepo {
	return &mintRepo{db: db, log: baseLog.With("repo", "MintRepo")}
}

func (mr *mintRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return mr.db
}

func (mr *mintRepo) Create(ctx context.Context, tx *gorm.DB, mint *types.SkillMint) error {
	return mr.conn(tx).WithContext(ctx).Create(mint).Error
}

func (mr *mintRepo) GetByPackageOwner(ctx context.Context, tx *gorm.DB, packageID, ownerID uuid.UUID) (*types.SkillMint, error) {
	var mint types.SkillMint
	if err := mr.conn(tx).WithContext(ctx).
		Where("package_id = ? AND owner_id = ?", packageID, ownerID).
		First(&mint).Error; err != nil {
		return nil, err
	}
	return &mint, nil
}

func (mr *mintRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, limit, offset int) ([]*types.SkillMint, int64, error) {
	limit, offset = ClampPage(limit, offset)

	base := mr.conn(tx).WithContext(ctx).
		Model(&types.SkillMint{}).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.SkillMint
	if err := base.Session(&gorm.Session{}).
		Order("minted_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
