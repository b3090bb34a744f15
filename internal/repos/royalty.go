package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

// RoyaltyRepo is append-only by construction: there is no update or delete
// method, and none may ever be added.
type RoyaltyRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entry *types.RoyaltyLedgerEntry) error
	SumByBeneficiary(ctx context.Context, tx *gorm.DB, beneficiaryID uuid.UUID, from, to *time.Time) (types.USD, int64, error)
	ListByBeneficiary(ctx context.Context, tx *gorm.DB, beneficiaryID uuid.UUID, limit, offset int) ([]*types.RoyaltyLedgerEntry, int64, error)
}

type royaltyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoyaltyRepo(db *gorm.DB, baseLog *logger.Logger) RoyaltyRepo {
	return &royaltyRepo{db: db, log: baseLog.With("repo", "RoyaltyRepo")}
}

func (ro *royaltyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ro.db
}

func (ro *royaltyRepo) Append(ctx context.Context, tx *gorm.DB, entry *types.RoyaltyLedgerEntry) error {
	return ro.conn(tx).WithContext(ctx).Create(entry).Error
}

func (ro *royaltyRepo) SumByBeneficiary(ctx context.Context, tx *gorm.DB, beneficiaryID uuid.UUID, from, to *time.Time) (types.USD, int64, error) {
	q := ro.conn(tx).WithContext(ctx).
		Model(&types.RoyaltyLedgerEntry{}).
		Where("beneficiary_id = ?", beneficiaryID)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var row struct {
		Total int64
		Count int64
	}
	if err := q.Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return types.USD(row.Total), row.Count, nil
}

func (ro *royaltyRepo) ListByBeneficiary(ctx context.Context, tx *gorm.DB, beneficiaryID uuid.UUID, limit, offset int) ([]*types.RoyaltyLedgerEntry, int64, error) {
	limit, offset = ClampPage(limit, offset)

	base := ro.conn(tx).WithContext(ctx).
		Model(&types.RoyaltyLedgerEntry{}).
		Where("beneficiary_id = ?", beneficiaryID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.RoyaltyLedgerEntry
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
