package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

type testEnv struct {
	db *gorm.DB

	userRepo    repos.UserRepo
	apiKeyRepo  repos.ApiKeyRepo
	packageRepo repos.PackageRepo
	installRepo repos.InstallationRepo
	reviewRepo  repos.ReviewRepo
	mintRepo    repos.MintRepo
	royaltyRepo repos.RoyaltyRepo

	auth    AuthService
	user    UserService
	catalog CatalogService
	install InstallService
	review  ReviewService
	mint    MintService
	royalty RoyaltyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.NewSQLite("file::memory:")
	require.NoError(t, err)

	log := logger.NewNop()
	env := &testEnv{
		db:          gdb,
		userRepo:    repos.NewUserRepo(gdb, log),
		apiKeyRepo:  repos.NewApiKeyRepo(gdb, log),
		packageRepo: repos.NewPackageRepo(gdb, log),
		installRepo: repos.NewInstallationRepo(gdb, log),
		reviewRepo:  repos.NewReviewRepo(gdb, log),
		mintRepo:    repos.NewMintRepo(gdb, log),
		royaltyRepo: repos.NewRoyaltyRepo(gdb, log),
	}
	env.auth = NewAuthService(gdb, log, env.userRepo, env.apiKeyRepo, "test-secret", time.Hour, 24*time.Hour)
	env.user = NewUserService(gdb, log, env.userRepo, nil)
	env.catalog = NewCatalogService(gdb, log, env.packageRepo, env.reviewRepo, env.userRepo)
	env.install = NewInstallService(gdb, log, env.packageRepo, env.installRepo, env.royaltyRepo, env.userRepo)
	env.review = NewReviewService(gdb, log, env.reviewRepo, env.packageRepo, env.catalog)
	env.mint = NewMintService(gdb, log, env.mintRepo, env.packageRepo, env.royaltyRepo, env.userRepo)
	env.royalty = NewRoyaltyService(gdb, log, env.royaltyRepo)
	return env
}

func (env *testEnv) createUser(t *testing.T, username string, tier types.Tier, role types.Role) *types.User {
	t.Helper()
	user := &types.User{
		ID:           uuid.New(),
		Username:     username,
		DisplayName:  username,
		PasswordHash: "x",
		Tier:         tier,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, env.userRepo.Create(context.Background(), nil, user))
	return user
}

func ctxFor(user *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString: "test-credential-" + user.Username,
		UserID:      user.ID,
		Tier:        user.Tier,
		Role:        user.Role,
	})
}

func validPublishInput(packageID string) PublishSkillInput {
	return PublishSkillInput{
		PackageID:    packageID,
		Version:      "1.0.0",
		DisplayName:  "Echo Tool",
		Description:  "Echoes its input back.",
		AuthorName:   "tester",
		License:      types.LicenseOpenSource,
		Category:     "utilities",
		MCPTransport: types.TransportStdio,
		MCPCommand:   "npx",
		MCPArgs:      []string{"-y", "echo-server"},
	}
}

func (env *testEnv) publish(t *testing.T, ctx context.Context, input PublishSkillInput) *types.SkillPackage {
	t.Helper()
	pkg, err := env.catalog.Publish(ctx, input)
	require.NoError(t, err)
	return pkg
}
