package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
)

type InstallationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, inst *types.SkillInstallation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillInstallation, error)
	GetActive(ctx context.Context, tx *gorm.DB, packageID uuid.UUID, agentID string) (*types.SkillInstallation, error)
	ListByInstaller(ctx context.Context, tx *gorm.DB, installerID uuid.UUID, limit, offset int) ([]*types.SkillInstallation, int64, error)
	SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.InstallStatus) error
}

type installationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstallationRepo(db *gorm.DB, baseLog *logger.Logger) InstallationRepo {
	return &installationRepo{db: db, log: baseLog.With("repo", "InstallationRepo")}
}

func (ir *installationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *installationRepo) Create(ctx context.Context, tx *gorm.DB, inst *types.SkillInstallation) error {
	return ir.conn(tx).WithContext(ctx).Create(inst).Error
}

func (ir *installationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SkillInstallation, error) {
	var inst types.SkillInstallation
	if err := ir.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (ir *installationRepo) GetActive(ctx context.Context, tx *gorm.DB, packageID uuid.UUID, agentID string) (*types.SkillInstallation, error) {
	var inst types.SkillInstallation
	if err := ir.conn(tx).WithContext(ctx).
		Where("package_id = ? AND agent_id = ? AND status = ?", packageID, agentID, types.InstallActive).
		First(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (ir *installationRepo) ListByInstaller(ctx context.Context, tx *gorm.DB, installerID uuid.UUID, limit, offset int) ([]*types.SkillInstallation, int64, error) {
	limit, offset = ClampPage(limit, offset)

	base := ir.conn(tx).WithContext(ctx).
		Model(&types.SkillInstallation{}).
		Where("installer_id = ?", installerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.SkillInstallation
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (ir *installationRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.InstallStatus) error {
	return ir.conn(tx).WithContext(ctx).
		Model(&types.SkillInstallation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
