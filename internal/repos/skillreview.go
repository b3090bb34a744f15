package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

// ReviewSort selects listing order for a package's reviews.
type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.SkillReview) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillReview, error)
	GetByPackageAuthor(ctx context.Context, tx *gorm.DB, packageID, authorID uuid.UUID) (*types.SkillReview, error)
	Update(ctx context.Context, tx *gorm.DB, review *types.SkillReview) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByPackage(ctx context.Context, tx *gorm.DB, packageID uuid.UUID, sort ReviewSort, limit, offset int) ([]*types.SkillReview, int64, error)
	Aggregate(ctx context.Context, tx *gorm.DB, packageID uuid.UUID) (mean float64, count int64, err error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (rr *reviewRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.SkillReview) error {
	return rr.conn(tx).WithContext(ctx).Create(review).Error
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillReview, error) {
	var review types.SkillReview
	if err := rr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (rr *reviewRepo) GetByPackageAuthor(ctx context.Context, tx *gorm.DB, packageID, authorID uuid.UUID) (*types.SkillReview, error) {
	var review types.SkillReview
	if err := rr.conn(tx).WithContext(ctx).
		Where("package_id = ? AND author_id = ?", packageID, authorID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (rr *reviewRepo) Update(ctx context.Context, tx *gorm.DB, review *types.SkillReview) error {
	return rr.conn(tx).WithContext(ctx).Save(review).Error
}

func (rr *reviewRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return rr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.SkillReview{}).Error
}

func (rr *reviewRepo) ListByPackage(ctx context.Context, tx *gorm.DB, packageID uuid.UUID, sort ReviewSort, limit, offset int) ([]*types.SkillReview, int64, error) {
	limit, offset = ClampPage(limit, offset)

	base := rr.conn(tx).WithContext(ctx).
		Model(&types.SkillReview{}).
		Where("package_id = ?", packageID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch sort {
	case ReviewSortHighest:
		order = "rating DESC, created_at DESC"
	case ReviewSortLowest:
		order = "rating ASC, created_at DESC"
	}

	var results []*types.SkillReview
	if err := base.Session(&gorm.Session{}).
		Order(order).
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Aggregate computes mean and count over non-deleted reviews. The soft-delete
// scope is applied by gorm automatically.
func (rr *reviewRepo) Aggregate(ctx context.Context, tx *gorm.DB, packageID uuid.UUID) (float64, int64, error) {
	var row struct {
		Mean  float64
		Count int64
	}
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.SkillReview{}).
		Select("COALESCE(AVG(CAST(rating AS REAL)), 0) AS mean, COUNT(*) AS count").
		Where("package_id = ?", packageID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Mean, row.Count, nil
}
