package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

var packageIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// PublishSkillInput is the publish request body. Invariants enforced here:
// (packageId, version) unique, priceUsd required iff license is paid,
// mcpCommand required iff transport is stdio, mcpUrl required iff transport
// is http/sse.
type PublishSkillInput struct {
	PackageID      string          `json:"packageId"`
	Version        string          `json:"version"`
	DisplayName    string          `json:"displayName"`
	Description    string          `json:"description"`
	Readme         string          `json:"readme,omitempty"`
	AuthorName     string          `json:"authorName"`
	AuthorURL      string          `json:"authorUrl,omitempty"`
	License        types.License   `json:"license"`
	PriceUSD       *types.USD      `json:"priceUsd,omitempty"`
	RequiredTier   int             `json:"requiredTier,omitempty"`
	RequiresAPIKey bool            `json:"requiresApiKey,omitempty"`
	Category       string          `json:"category"`
	Maturity       types.Maturity  `json:"maturity,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	MCPTransport   types.Transport `json:"mcpTransport"`
	MCPCommand     string          `json:"mcpCommand,omitempty"`
	MCPArgs        []string        `json:"mcpArgs,omitempty"`
	MCPUrl         string          `json:"mcpUrl,omitempty"`
	MediaURL       string          `json:"mediaUrl,omitempty"`
	RepoURL        string          `json:"repoUrl,omitempty"`
	HomeURL        string          `json:"homeUrl,omitempty"`
}

type CatalogService interface {
	Publish(ctx context.Context, input PublishSkillInput) (*types.SkillPackage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.SkillPackage, error)
	GetByPackageID(ctx context.Context, packageID string) (*types.SkillPackage, error)
	Search(ctx context.Context, params repos.PackageSearchParams) ([]*types.SkillPackage, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// RecomputeRating refreshes the denormalized aggregate from non-deleted
	// reviews. Call inside the transaction that changed the reviews.
	RecomputeRating(ctx context.Context, tx *gorm.DB, packageID uuid.UUID) error
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	packageRepo repos.PackageRepo
	reviewRepo  repos.ReviewRepo
	userRepo    repos.UserRepo
}

func NewCatalogService(
	gdb *gorm.DB,
	log *logger.Logger,
	packageRepo repos.PackageRepo,
	reviewRepo repos.ReviewRepo,
	userRepo repos.UserRepo,
) CatalogService {
	return &catalogService{
		db:          gdb,
		log:         log.With("service", "CatalogService"),
		packageRepo: packageRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
	}
}

func (cs *catalogService) Publish(ctx context.Context, input PublishSkillInput) (*types.SkillPackage, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if err := validatePublishInput(&input); err != nil {
		return nil, err
	}

	exists, err := cs.packageRepo.ExistsVersion(ctx, nil, input.PackageID, input.Version)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("check version: %w", err))
	}
	if exists {
		return nil, apierr.New(apierr.KindConflict, "%s@%s is already published", input.PackageID, input.Version)
	}

	now := time.Now().UTC()
	pkg := &types.SkillPackage{
		ID:             uuid.New(),
		PackageID:      input.PackageID,
		Version:        input.Version,
		DisplayName:    input.DisplayName,
		Description:    input.Description,
		Readme:         input.Readme,
		AuthorName:     input.AuthorName,
		AuthorURL:      input.AuthorURL,
		License:        input.License,
		PriceUSD:       input.PriceUSD,
		RequiredTier:   input.RequiredTier,
		RequiresAPIKey: input.RequiresAPIKey,
		Category:       input.Category,
		Maturity:       input.Maturity,
		Tags:           normalizeTags(input.Tags),
		MCPTransport:   input.MCPTransport,
		MCPCommand:     input.MCPCommand,
		MCPArgs:        input.MCPArgs,
		MCPUrl:         input.MCPUrl,
		MediaURL:       input.MediaURL,
		RepoURL:        input.RepoURL,
		HomeURL:        input.HomeURL,
		AuthorID:       rd.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cerr := cs.packageRepo.Create(ctx, tx, pkg); cerr != nil {
			return cerr
		}
		return cs.userRepo.AddTotals(ctx, tx, rd.UserID, 1, 0)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.New(apierr.KindConflict, "%s@%s is already published", input.PackageID, input.Version)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("publish package: %w", err))
	}

	cs.log.Info("Published package", "packageId", pkg.PackageID, "version", pkg.Version, "author_id", pkg.AuthorID)
	return pkg, nil
}

func validatePublishInput(input *PublishSkillInput) error {
	input.PackageID = strings.ToLower(strings.TrimSpace(input.PackageID))
	input.Version = strings.TrimSpace(input.Version)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Description = strings.TrimSpace(input.Description)
	input.AuthorName = strings.TrimSpace(input.AuthorName)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))

	if !packageIDPattern.MatchString(input.PackageID) {
		return apierr.New(apierr.KindValidation, "packageId must be 1-64 chars of [a-z0-9-], starting alphanumeric")
	}
	if _, err := semver.StrictNewVersion(input.Version); err != nil {
		return apierr.New(apierr.KindValidation, "version %q is not valid semver", input.Version)
	}
	if input.DisplayName == "" {
		return apierr.New(apierr.KindValidation, "displayName is required")
	}
	if input.Description == "" {
		return apierr.New(apierr.KindValidation, "description is required")
	}
	if input.AuthorName == "" {
		return apierr.New(apierr.KindValidation, "authorName is required")
	}
	if input.Category == "" {
		return apierr.New(apierr.KindValidation, "category is required")
	}
	if !input.License.Valid() {
		return apierr.New(apierr.KindValidation, "license %q is not one of open-source, free, premium, enterprise", input.License)
	}
	if input.License.Paid() {
		if input.PriceUSD == nil || *input.PriceUSD <= 0 {
			return apierr.New(apierr.KindValidation, "priceUsd is required for %s packages", input.License)
		}
	} else if input.PriceUSD != nil {
		return apierr.New(apierr.KindValidation, "priceUsd is only allowed for premium and enterprise packages")
	}
	if input.RequiredTier < types.TierFree.Rank() || input.RequiredTier > types.TierLegendary.Rank() {
		return apierr.New(apierr.KindValidation, "requiredTier must be between 0 and 2")
	}
	if input.Maturity == "" {
		input.Maturity = types.MaturityExperimental
	}
	if !input.Maturity.Valid() {
		return apierr.New(apierr.KindValidation, "maturity %q is not one of experimental, beta, stable, deprecated", input.Maturity)
	}
	if !input.MCPTransport.Valid() {
		return apierr.New(apierr.KindValidation, "mcpTransport %q is not one of stdio, http, sse", input.MCPTransport)
	}
	switch input.MCPTransport {
	case types.TransportStdio:
		if strings.TrimSpace(input.MCPCommand) == "" {
			return apierr.New(apierr.KindValidation, "mcpCommand is required for stdio transport")
		}
		if input.MCPUrl != "" {
			return apierr.New(apierr.KindValidation, "mcpUrl is not allowed for stdio transport")
		}
	default:
		if strings.TrimSpace(input.MCPUrl) == "" {
			return apierr.New(apierr.KindValidation, "mcpUrl is required for %s transport", input.MCPTransport)
		}
		if input.MCPCommand != "" {
			return apierr.New(apierr.KindValidation, "mcpCommand is not allowed for %s transport", input.MCPTransport)
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (cs *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*types.SkillPackage, error) {
	pkg, err := cs.packageRepo.GetByID(ctx, nil, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "package %s not found", id)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load package: %w", err))
	}
	return pkg, nil
}

func (cs *catalogService) GetByPackageID(ctx context.Context, packageID string) (*types.SkillPackage, error) {
	pkg, err := cs.packageRepo.GetByPackageID(ctx, nil, strings.ToLower(strings.TrimSpace(packageID)))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "package %q not found", packageID)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load package: %w", err))
	}
	return pkg, nil
}

func (cs *catalogService) Search(ctx context.Context, params repos.PackageSearchParams) ([]*types.SkillPackage, int64, error) {
	results, total, err := cs.packageRepo.Search(ctx, nil, params)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("search packages: %w", err))
	}
	return results, total, nil
}

// SoftDelete hides the package from the catalog; installations and royalty
// entries keep referencing the tombstoned row.
func (cs *catalogService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	pkg, err := cs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pkg.AuthorID != rd.UserID && rd.Role != types.RoleAdmin {
		return apierr.New(apierr.KindForbidden, "only the author or an admin may delete a package")
	}
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if derr := cs.packageRepo.SoftDelete(ctx, tx, id); derr != nil {
			return derr
		}
		return cs.userRepo.AddTotals(ctx, tx, pkg.AuthorID, -1, 0)
	})
	if err != nil {
		return apierr.Wrap(apierr.KindSystem, fmt.Errorf("delete package: %w", err))
	}
	cs.log.Info("Soft-deleted package", "packageId", pkg.PackageID, "id", id)
	return nil
}

func (cs *catalogService) RecomputeRating(ctx context.Context, tx *gorm.DB, packageID uuid.UUID) error {
	mean, count, err := cs.reviewRepo.Aggregate(ctx, tx, packageID)
	if err != nil {
		return fmt.Errorf("aggregate reviews: %w", err)
	}
	var meanPtr *float64
	if count > 0 {
		rounded := math.Round(mean*10000) / 10000
		meanPtr = &rounded
	}
	return cs.packageRepo.SetRatingAggregate(ctx, tx, packageID, meanPtr, count)
}
