package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the single Principal type: every authenticated caller, whether it
// arrived with a session token or an API key, resolves to one of these.
type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string     `gorm:"uniqueIndex;not null;column:username" json:"username"`
	DisplayName     string     `gorm:"column:display_name" json:"displayName"`
	PasswordHash    string     `gorm:"not null;column:password_hash" json:"-"`
	Tier            Tier       `gorm:"not null;default:'free';column:tier" json:"tier"`
	Role            Role       `gorm:"not null;default:'user';column:role" json:"role"`
	VerifiedCreator bool       `gorm:"not null;default:false;column:verified_creator" json:"verifiedCreator"`
	TotalPackages   int64      `gorm:"not null;default:0;column:total_packages" json:"totalPackages"`
	TotalEarnings   USD        `gorm:"not null;default:0;column:total_earnings" json:"totalEarnings"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
}

func (User) TableName() string {
	return "user"
}
