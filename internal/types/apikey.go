package types

import (
	"time"

	"github.com/google/uuid"
)

// ApiKey is an opaque credential bound to a principal. Only the sha256 of the
// key material is stored; revocation is a tombstone flag, never a row delete.
type ApiKey struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"index;not null;column:user_id" json:"userId"`
	User       *User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	KeyHash    string     `gorm:"uniqueIndex;not null;column:key_hash" json:"-"`
	Prefix     string     `gorm:"column:prefix" json:"prefix"`
	Scope      string     `gorm:"column:scope" json:"scope,omitempty"`
	Revoked    bool       `gorm:"not null;default:false;column:revoked" json:"revoked"`
	CreatedAt  time.Time  `gorm:"not null" json:"createdAt"`
	LastUsedAt *time.Time `gorm:"column:last_used_at" json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expiresAt,omitempty"`
}

func (ApiKey) TableName() string {
	return "api_key"
}
