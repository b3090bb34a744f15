package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

const (
	MaxPageLimit     = 100
	DefaultPageLimit = 20
)

// PackageOrder selects the result ordering of a catalog search.
type PackageOrder string

const (
	OrderRelevance PackageOrder = "relevance"
	OrderInstalls  PackageOrder = "installs"
	OrderRating    PackageOrder = "rating"
	OrderRecency   PackageOrder = "recency"
)

type PackageSearchParams struct {
	Query      string
	Category   string
	Maturity   types.Maturity
	AuthorName string
	Order      PackageOrder
	Limit      int
	Offset     int
}

// ClampPage normalizes limit/offset: limit defaults to 20 and is capped at
// 100, offset floors at 0.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type PackageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pkg *types.SkillPackage) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillPackage, error)
	GetByPackageID(ctx context.Context, tx *gorm.DB, packageID string) (*types.SkillPackage, error)
	ExistsVersion(ctx context.Context, tx *gorm.DB, packageID, version string) (bool, error)
	Search(ctx context.Context, tx *gorm.DB, params PackageSearchParams) ([]*types.SkillPackage, int64, error)
	SyncInstallCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SetRatingAggregate(ctx context.Context, tx *gorm.DB, id uuid.UUID, mean *float64, count int64) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type packageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPackageRepo(db *gorm.DB, baseLog *logger.Logger) PackageRepo {
	return &packageRepo{db: db, log: baseLog.With("repo", "PackageRepo")}
}

func (pr *packageRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *packageRepo) Create(ctx context.Context, tx *gorm.DB, pkg *types.SkillPackage) error {
	return pr.conn(tx).WithContext(ctx).Create(pkg).Error
}

func (pr *packageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillPackage, error) {
	var pkg types.SkillPackage
	if err := pr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetByPackageID returns the newest version row for a human package id.
func (pr *packageRepo) GetByPackageID(ctx context.Context, tx *gorm.DB, packageID string) (*types.SkillPackage, error) {
	var pkg types.SkillPackage
	if err := pr.conn(tx).WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("created_at DESC").
		First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (pr *packageRepo) ExistsVersion(ctx context.Context, tx *gorm.DB, packageID, version string) (bool, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).
		Model(&types.SkillPackage{}).
		Unscoped().
		Where("package_id = ? AND version = ?", packageID, version).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search filters case-insensitively over packageId, displayName, description
// and the tag set. Relevance is an additive score: exact packageId match 3,
// displayName prefix 2, packageId substring 2, tag match 1; ties break by
// installs then recency.
func (pr *packageRepo) Search(ctx context.Context, tx *gorm.DB, params PackageSearchParams) ([]*types.SkillPackage, int64, error) {
	limit, offset := ClampPage(params.Limit, params.Offset)

	base := pr.conn(tx).WithContext(ctx).Model(&types.SkillPackage{})

	q := strings.ToLower(strings.TrimSpace(params.Query))
	sub := "%" + q + "%"
	prefix := q + "%"
	tagMatch := `%"` + q + `"%`
	if q != "" {
		base = base.Where(
			"lower(package_id) LIKE ? OR lower(display_name) LIKE ? OR lower(description) LIKE ? OR lower(CAST(tags AS TEXT)) LIKE ?",
			sub, sub, sub, tagMatch,
		)
	}
	if params.Category != "" {
		base = base.Where("category = ?", params.Category)
	}
	if params.Maturity != "" {
		base = base.Where("maturity = ?", params.Maturity)
	}
	if params.AuthorName != "" {
		base = base.Where("author_name = ?", params.AuthorName)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{})
	switch params.Order {
	case OrderInstalls:
		query = query.Order("install_count DESC, created_at DESC")
	case OrderRating:
		query = query.Order("rating_mean DESC NULLS LAST, rating_count DESC, created_at DESC")
	case OrderRecency:
		query = query.Order("created_at DESC")
	default: // relevance
		if q != "" {
			query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
				SQL: `(CASE WHEN lower(package_id) = ? THEN 3 ELSE 0 END)
					+ (CASE WHEN lower(display_name) LIKE ? THEN 2 ELSE 0 END)
					+ (CASE WHEN lower(package_id) LIKE ? THEN 2 ELSE 0 END)
					+ (CASE WHEN lower(CAST(tags AS TEXT)) LIKE ? THEN 1 ELSE 0 END) DESC,
					install_count DESC, created_at DESC`,
				Vars:               []any{q, prefix, sub, tagMatch},
				WithoutParentheses: true,
			}})
		} else {
			query = query.Order("install_count DESC, created_at DESC")
		}
	}

	var results []*types.SkillPackage
	if err := query.Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// SyncInstallCount recomputes the denormalized counter from the installation
// ledger. Recomputing instead of incrementing keeps the operation idempotent.
func (pr *packageRepo) SyncInstallCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&types.SkillPackage{}).
		Where("id = ?", id).
		Update("install_count", gorm.Expr(
			"(SELECT COUNT(*) FROM skill_installation WHERE skill_installation.package_id = ? AND skill_installation.status = ?)",
			id, types.InstallActive,
		)).Error
}

func (pr *packageRepo) SetRatingAggregate(ctx context.Context, tx *gorm.DB, id uuid.UUID, mean *float64, count int64) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&types.SkillPackage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating_mean":  mean,
			"rating_count": count,
		}).Error
}

func (pr *packageRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return pr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.SkillPackage{}).Error
}
