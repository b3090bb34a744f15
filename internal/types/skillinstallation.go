package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillInstallation binds a package to an external agent. At most one row per
// (package, agent) may be active; the partial unique index enforcing that is
// created in internal/db. Status only ever moves forward; re-activation is a
// new row.
type SkillInstallation struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID     uuid.UUID     `gorm:"type:uuid;not null;index;column:package_id" json:"packageId"`
	Package       *SkillPackage `gorm:"foreignKey:PackageID;references:ID" json:"-"`
	AgentID       string        `gorm:"not null;column:agent_id" json:"agentId"`
	InstallerID   uuid.UUID     `gorm:"type:uuid;not null;index;column:installer_id" json:"installerId"`
	InstallerTier Tier          `gorm:"not null;column:installer_tier" json:"installerTier"`
	Status        InstallStatus `gorm:"not null;default:'active';column:status" json:"status"`
	CreatedAt     time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updatedAt"`
}

func (SkillInstallation) TableName() string {
	return "skill_installation"
}
