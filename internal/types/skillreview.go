package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewTitleMaxLen   = 200
	ReviewCommentMaxLen = 1000
)

// SkillReview is one rating entry, at most one per (package, author).
type SkillReview struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID uuid.UUID      `gorm:"type:uuid;not null;index;column:package_id" json:"packageId"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index;column:author_id" json:"authorId"`
	Rating    int            `gorm:"not null;column:rating" json:"rating"`
	Title     string         `gorm:"column:title" json:"title,omitempty"`
	Comment   string         `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SkillReview) TableName() string {
	return "skill_review"
}
