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

type InstallService interface {
	// Install records a (package, agent) binding for the caller. Repeated
	// calls with the same arguments return the existing active row; the
	// second return reports whether a new row was created.
	Install(ctx context.Context, packageID uuid.UUID, agentID string) (*types.SkillInstallation, bool, error)
	List(ctx context.Context, limit, offset int) ([]*types.SkillInstallation, int64, error)
	UpdateStatus(ctx context.Context, installationID uuid.UUID, newStatus types.InstallStatus) (*types.SkillInstallation, error)
}

type installService struct {
	db          *gorm.DB
	log         *logger.Logger
	packageRepo repos.PackageRepo
	installRepo repos.InstallationRepo
	royaltyRepo repos.RoyaltyRepo
	userRepo    repos.UserRepo
}

func NewInstallService(
	gdb *gorm.DB,
	log *logger.Logger,
	packageRepo repos.PackageRepo,
	installRepo repos.InstallationRepo,
	royaltyRepo repos.RoyaltyRepo,
	userRepo repos.UserRepo,
) InstallService {
	return &installService{
		db:          gdb,
		log:         log.With("service", "InstallService"),
		packageRepo: packageRepo,
		installRepo: installRepo,
		royaltyRepo: royaltyRepo,
		userRepo:    userRepo,
	}
}

func (is *installService) Install(ctx context.Context, packageID uuid.UUID, agentID string) (*types.SkillInstallation, bool, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, false, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, false, apierr.New(apierr.KindValidation, "agentId is required")
	}

	pkg, err := is.packageRepo.GetByID(ctx, nil, packageID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, false, apierr.New(apierr.KindNotFound, "package %s not found", packageID)
		}
		return nil, false, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load package: %w", err))
	}

	if rd.Tier.Rank() < pkg.RequiredTier {
		return nil, false, apierr.New(apierr.KindForbidden,
			"package %q requires tier %d, caller has tier %q", pkg.PackageID, pkg.RequiredTier, rd.Tier)
	}

	// Idempotence fast path.
	if existing, gerr := is.installRepo.GetActive(ctx, nil, packageID, agentID); gerr == nil {
		return existing, false, nil
	} else if !db.IsNotFound(gerr) {
		return nil, false, apierr.Wrap(apierr.KindSystem, fmt.Errorf("check existing installation: %w", gerr))
	}

	now := time.Now().UTC()
	inst := &types.SkillInstallation{
		ID:            uuid.New(),
		PackageID:     packageID,
		AgentID:       agentID,
		InstallerID:   rd.UserID,
		InstallerTier: rd.Tier,
		Status:        types.InstallActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Install, counter update and royalty append are one transaction: a
	// client dropping mid-request either leaves all three or none.
	txErr := db.WithRetry(ctx, is.log, func() error {
		return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if cerr := is.installRepo.Create(ctx, tx, inst); cerr != nil {
				return cerr
			}
			if serr := is.packageRepo.SyncInstallCount(ctx, tx, packageID); serr != nil {
				return serr
			}
			return is.appendRoyalty(ctx, tx, pkg, types.RoyaltySourceInstall, now)
		})
	})
	if txErr != nil {
		if db.IsUniqueViolation(txErr) {
			// Concurrent installer won the partial-index race; their row is
			// our answer.
			existing, gerr := is.installRepo.GetActive(ctx, nil, packageID, agentID)
			if gerr != nil {
				return nil, false, apierr.Wrap(apierr.KindSystem, fmt.Errorf("resolve concurrent installation: %w", gerr))
			}
			return existing, false, nil
		}
		return nil, false, apierr.Wrap(apierr.KindSystem, fmt.Errorf("install package: %w", txErr))
	}

	is.log.Info("Installed package", "packageId", pkg.PackageID, "agentId", agentID, "installer_id", rd.UserID)
	return inst, true, nil
}

// appendRoyalty writes one ledger entry crediting the package author. Amount
// is zero for unpaid licenses so the ledger still records the event.
func (is *installService) appendRoyalty(ctx context.Context, tx *gorm.DB, pkg *types.SkillPackage, source types.RoyaltySource, now time.Time) error {
	var amount types.USD
	if pkg.License.Paid() && pkg.PriceUSD != nil {
		amount = *pkg.PriceUSD
	}
	entry := &types.RoyaltyLedgerEntry{
		ID:            uuid.New(),
		PackageID:     pkg.ID,
		BeneficiaryID: pkg.AuthorID,
		Source:        source,
		Amount:        amount,
		Currency:      "USD",
		CreatedAt:     now,
	}
	if err := is.royaltyRepo.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("append royalty entry: %w", err)
	}
	if amount != 0 {
		if err := is.userRepo.AddTotals(ctx, tx, pkg.AuthorID, 0, amount); err != nil {
			return fmt.Errorf("credit author totals: %w", err)
		}
	}
	return nil
}

func (is *installService) List(ctx context.Context, limit, offset int) ([]*types.SkillInstallation, int64, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, 0, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	results, total, err := is.installRepo.ListByInstaller(ctx, nil, rd.UserID, limit, offset)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("list installations: %w", err))
	}
	return results, total, nil
}

func (is *installService) UpdateStatus(ctx context.Context, installationID uuid.UUID, newStatus types.InstallStatus) (*types.SkillInstallation, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if !newStatus.Valid() {
		return nil, apierr.New(apierr.KindValidation, "status %q is not one of active, disabled, revoked", newStatus)
	}

	inst, err := is.installRepo.GetByID(ctx, nil, installationID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "installation %s not found", installationID)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load installation: %w", err))
	}
	if inst.InstallerID != rd.UserID && rd.Role != types.RoleAdmin {
		return nil, apierr.New(apierr.KindForbidden, "only the installer or an admin may change an installation")
	}
	if !inst.Status.CanTransitionTo(newStatus) {
		return nil, apierr.New(apierr.KindConflict,
			"illegal transition %s -> %s; status only moves forward", inst.Status, newStatus)
	}

	err = is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if serr := is.installRepo.SetStatus(ctx, tx, installationID, newStatus); serr != nil {
			return serr
		}
		// Leaving active changes the package's active-install count.
		return is.packageRepo.SyncInstallCount(ctx, tx, inst.PackageID)
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("update installation: %w", err))
	}

	inst.Status = newStatus
	return inst, nil
}
