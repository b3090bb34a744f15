package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/types"
)

func TestInstallIsIdempotentPerPackageAgent(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	installer := env.createUser(t, "installer", types.TierFree, types.RoleUser)
	pkg := env.publish(t, ctxFor(author), validPublishInput("echo"))

	first, created, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)

	// A different agent gets its own installation.
	_, created, err = env.install.Install(ctxFor(installer), pkg.ID, "agent-2")
	require.NoError(t, err)
	require.True(t, created)

	loaded, err := env.packageRepo.GetByID(ctxFor(installer), nil, pkg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, loaded.InstallCount)
}

func TestInstallWritesExactlyOneRoyaltyEntry(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	installer := env.createUser(t, "installer", types.TierPro, types.RoleUser)

	price := types.USD(50000) // $5.0000
	input := validPublishInput("premium-echo")
	input.License = types.LicensePremium
	input.PriceUSD = &price
	pkg := env.publish(t, ctxFor(author), input)

	_, _, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)
	// Repeat must not append a second entry.
	_, _, err = env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)

	summary, err := env.royalty.SummaryForCaller(ctxFor(author), nil, nil, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, summary.Count)
	require.Equal(t, price, summary.Total)

	authorRow, err := env.userRepo.GetByID(ctxFor(author), nil, author.ID)
	require.NoError(t, err)
	require.Equal(t, price, authorRow.TotalEarnings)
}

func TestInstallTierGate(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	freeUser := env.createUser(t, "freeloader", types.TierFree, types.RoleUser)

	input := validPublishInput("pro-only")
	input.RequiredTier = types.TierPro.Rank()
	pkg := env.publish(t, ctxFor(author), input)

	_, _, err := env.install.Install(ctxFor(freeUser), pkg.ID, "agent-1")
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.KindForbidden))

	proUser := env.createUser(t, "pro", types.TierPro, types.RoleUser)
	_, created, err := env.install.Install(ctxFor(proUser), pkg.ID, "agent-1")
	require.NoError(t, err)
	require.True(t, created)
}

func TestInstallStatusMovesForwardOnly(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	installer := env.createUser(t, "installer", types.TierFree, types.RoleUser)
	pkg := env.publish(t, ctxFor(author), validPublishInput("echo"))

	inst, _, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)

	updated, err := env.install.UpdateStatus(ctxFor(installer), inst.ID, types.InstallDisabled)
	require.NoError(t, err)
	require.Equal(t, types.InstallDisabled, updated.Status)

	// Reversing is a conflict.
	_, err = env.install.UpdateStatus(ctxFor(installer), inst.ID, types.InstallActive)
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.KindConflict))

	// Leaving active drops the counter.
	loaded, err := env.packageRepo.GetByID(ctxFor(installer), nil, pkg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, loaded.InstallCount)

	// A fresh install after disabling creates a new row.
	again, created, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)
	require.True(t, created)
	require.NotEqual(t, inst.ID, again.ID)
}

func TestInstallOnlyInstallerMayUpdate(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	installer := env.createUser(t, "installer", types.TierFree, types.RoleUser)
	stranger := env.createUser(t, "stranger", types.TierFree, types.RoleUser)
	pkg := env.publish(t, ctxFor(author), validPublishInput("echo"))

	inst, _, err := env.install.Install(ctxFor(installer), pkg.ID, "agent-1")
	require.NoError(t, err)

	_, err = env.install.UpdateStatus(ctxFor(stranger), inst.ID, types.InstallRevoked)
	require.True(t, apierr.IsKind(err, apierr.KindForbidden))

	admin := env.createUser(t, "admin", types.TierFree, types.RoleAdmin)
	_, err = env.install.UpdateStatus(ctxFor(admin), inst.ID, types.InstallRevoked)
	require.NoError(t, err)
}
