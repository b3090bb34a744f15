package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillPackage is a versioned record describing an MCP skill. (PackageID,
// Version) is unique; the aggregate counters are denormalizations maintained
// in the same transaction as their source rows.
type SkillPackage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID      string    `gorm:"not null;index;column:package_id" json:"packageId"`
	Version        string    `gorm:"not null;column:version" json:"version"`
	DisplayName    string    `gorm:"not null;column:display_name" json:"displayName"`
	Description    string    `gorm:"not null;column:description" json:"description"`
	Readme         string    `gorm:"column:readme" json:"readme,omitempty"`
	AuthorName     string    `gorm:"not null;column:author_name" json:"authorName"`
	AuthorURL      string    `gorm:"column:author_url" json:"authorUrl,omitempty"`
	License        License   `gorm:"not null;column:license" json:"license"`
	PriceUSD       *USD      `gorm:"column:price_usd" json:"priceUsd,omitempty"`
	RequiredTier   int       `gorm:"not null;default:0;column:required_tier" json:"requiredTier"`
	RequiresAPIKey bool      `gorm:"not null;default:false;column:requires_api_key" json:"requiresApiKey"`
	Category       string    `gorm:"not null;index;column:category" json:"category"`
	Maturity       Maturity  `gorm:"not null;default:'experimental';column:maturity" json:"maturity"`
	Tags           []string  `gorm:"serializer:json;column:tags" json:"tags,omitempty"`

	MCPTransport Transport `gorm:"not null;column:mcp_transport" json:"mcpTransport"`
	MCPCommand   string    `gorm:"column:mcp_command" json:"mcpCommand,omitempty"`
	MCPArgs      []string  `gorm:"serializer:json;column:mcp_args" json:"mcpArgs,omitempty"`
	MCPUrl       string    `gorm:"column:mcp_url" json:"mcpUrl,omitempty"`

	MediaURL string `gorm:"column:media_url" json:"mediaUrl,omitempty"`
	RepoURL  string `gorm:"column:repo_url" json:"repoUrl,omitempty"`
	HomeURL  string `gorm:"column:home_url" json:"homeUrl,omitempty"`

	InstallCount int64    `gorm:"not null;default:0;column:install_count" json:"installCount"`
	RatingMean   *float64 `gorm:"column:rating_mean" json:"ratingMean"`
	RatingCount  int64    `gorm:"not null;default:0;column:rating_count" json:"ratingCount"`

	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index;column:author_id" json:"authorId"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SkillPackage) TableName() string {
	return "skill_package"
}
