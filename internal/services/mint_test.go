package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/types"
)

func TestMintAuthorOnlyAndOncePerOwner(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	stranger := env.createUser(t, "stranger", types.TierFree, types.RoleUser)
	pkg := env.publish(t, ctxFor(author), validPublishInput("echo"))

	_, err := env.mint.Mint(ctxFor(stranger), pkg.ID)
	require.True(t, apierr.IsKind(err, apierr.KindForbidden))

	mint, err := env.mint.Mint(ctxFor(author), pkg.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(mint.TokenID, "yytok_"))

	_, err = env.mint.Mint(ctxFor(author), pkg.ID)
	require.True(t, apierr.IsKind(err, apierr.KindConflict))

	mints, total, err := env.mint.ListMine(ctxFor(author), 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, mints, 1)
}

func TestMintAppendsRoyaltyEntry(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)

	price := types.USD(120000) // $12.0000
	input := validPublishInput("premium-echo")
	input.License = types.LicenseEnterprise
	input.PriceUSD = &price
	pkg := env.publish(t, ctxFor(author), input)

	_, err := env.mint.Mint(ctxFor(author), pkg.ID)
	require.NoError(t, err)

	summary, err := env.royalty.SummaryForCaller(ctxFor(author), nil, nil, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, summary.Count)
	require.Equal(t, price, summary.Total)
	require.Equal(t, types.RoyaltySourceMint, summary.Entries[0].Source)
}
