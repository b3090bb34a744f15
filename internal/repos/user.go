package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error)
	TouchLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error
	AddTotals(ctx context.Context, tx *gorm.DB, userID uuid.UUID, packagesDelta int64, earningsDelta types.USD) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return ur.conn(tx).WithContext(ctx).Create(user).Error
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	var user types.User
	if err := ur.conn(tx).WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error) {
	var user types.User
	if err := ur.conn(tx).WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) TouchLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

// AddTotals bumps the denormalized per-principal counters. Runs inside the
// same transaction as the row that justifies the bump.
func (ur *userRepo) AddTotals(ctx context.Context, tx *gorm.DB, userID uuid.UUID, packagesDelta int64, earningsDelta types.USD) error {
	updates := map[string]any{}
	if packagesDelta != 0 {
		updates["total_packages"] = gorm.Expr("total_packages + ?", packagesDelta)
	}
	if earningsDelta != 0 {
		updates["total_earnings"] = gorm.Expr("total_earnings + ?", int64(earningsDelta))
	}
	if len(updates) == 0 {
		return nil
	}
	return ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}
