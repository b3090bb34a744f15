package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

type MintService interface {
	// Mint records the caller's claim on a package they authored. One mint
	// per (package, owner); a second attempt is a conflict.
	Mint(ctx context.Context, packageID uuid.UUID) (*types.SkillMint, error)
	ListMine(ctx context.Context, limit, offset int) ([]*types.SkillMint, int64, error)
}

type mintService struct {
	db          *gorm.DB
	log         *logger.Logger
	mintRepo    repos.MintRepo
	packageRepo repos.PackageRepo
	royaltyRepo repos.RoyaltyRepo
	userRepo    repos.UserRepo
}

func NewMintService(
	gdb *gorm.DB,
	log *logger.Logger,
	mintRepo repos.MintRepo,
	packageRepo repos.PackageRepo,
	royaltyRepo repos.RoyaltyRepo,
	userRepo repos.UserRepo,
) MintService {
	return &mintService{
		db:          gdb,
		log:         log.With("service", "MintService"),
		mintRepo:    mintRepo,
		packageRepo: packageRepo,
		royaltyRepo: royaltyRepo,
		userRepo:    userRepo,
	}
}

func (ms *mintService) Mint(ctx context.Context, packageID uuid.UUID) (*types.SkillMint, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}

	pkg, err := ms.packageRepo.GetByID(ctx, nil, packageID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "package %s not found", packageID)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load package: %w", err))
	}
	if pkg.AuthorID != rd.UserID && rd.Role != types.RoleAdmin {
		return nil, apierr.New(apierr.KindForbidden, "only the package author may mint it")
	}

	now := time.Now().UTC()
	mint := &types.SkillMint{
		ID:        uuid.New(),
		PackageID: packageID,
		OwnerID:   rd.UserID,
		TokenID:   "yytok_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		MintedAt:  now,
	}

	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cerr := ms.mintRepo.Create(ctx, tx, mint); cerr != nil {
			return cerr
		}
		var amount types.USD
		if pkg.License.Paid() && pkg.PriceUSD != nil {
			amount = *pkg.PriceUSD
		}
		entry := &types.RoyaltyLedgerEntry{
			ID:            uuid.New(),
			PackageID:     pkg.ID,
			BeneficiaryID: pkg.AuthorID,
			Source:        types.RoyaltySourceMint,
			Amount:        amount,
			Currency:      "USD",
			CreatedAt:     now,
		}
		if aerr := ms.royaltyRepo.Append(ctx, tx, entry); aerr != nil {
			return aerr
		}
		if amount != 0 {
			return ms.userRepo.AddTotals(ctx, tx, pkg.AuthorID, 0, amount)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.New(apierr.KindConflict, "package already minted by this owner")
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("mint package: %w", err))
	}

	ms.log.Info("Minted package", "packageId", pkg.PackageID, "owner_id", rd.UserID)
	return mint, nil
}

func (ms *mintService) ListMine(ctx context.Context, limit, offset int) ([]*types.SkillMint, int64, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, 0, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	results, total, err := ms.mintRepo.ListByOwner(ctx, nil, rd.UserID, limit, offset)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("list mints: %w", err))
	}
	return results, total, nil
}
