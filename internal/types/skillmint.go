package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillMint is a creator's non-fungible claim record on a package, unique per
// (package, owner).
type SkillMint struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null;index;column:package_id" json:"packageId"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerId"`
	TokenID   string    `gorm:"uniqueIndex;not null;column:token_id" json:"tokenId"`
	MintedAt  time.Time `gorm:"not null;column:minted_at" json:"mintedAt"`
}

func (SkillMint) TableName() string {
	return "skill_mint"
}
