package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/types"
)

func TestPublishValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	ctx := ctxFor(author)

	cases := []struct {
		name   string
		mutate func(*PublishSkillInput)
	}{
		{"bad package id", func(in *PublishSkillInput) { in.PackageID = "Echo Tool!" }},
		{"bad semver", func(in *PublishSkillInput) { in.Version = "v1" }},
		{"missing display name", func(in *PublishSkillInput) { in.DisplayName = "" }},
		{"bad license", func(in *PublishSkillInput) { in.License = "proprietary" }},
		{"paid without price", func(in *PublishSkillInput) { in.License = types.LicensePremium }},
		{"price on free license", func(in *PublishSkillInput) {
			price := types.USD(10000)
			in.PriceUSD = &price
		}},
		{"stdio without command", func(in *PublishSkillInput) { in.MCPCommand = "" }},
		{"stdio with url", func(in *PublishSkillInput) { in.MCPUrl = "https://example.com/mcp" }},
		{"http without url", func(in *PublishSkillInput) {
			in.MCPTransport = types.TransportHTTP
			in.MCPCommand = ""
		}},
		{"tier out of range", func(in *PublishSkillInput) { in.RequiredTier = 3 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validPublishInput("echo")
			tc.mutate(&input)
			_, err := env.catalog.Publish(ctx, input)
			require.True(t, apierr.IsKind(err, apierr.KindValidation), "got %v", err)
		})
	}
}

func TestPublishVersionIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	ctx := ctxFor(author)

	env.publish(t, ctx, validPublishInput("echo"))

	_, err := env.catalog.Publish(ctx, validPublishInput("echo"))
	require.True(t, apierr.IsKind(err, apierr.KindConflict))

	// A bumped version goes through.
	input := validPublishInput("echo")
	input.Version = "1.0.1"
	env.publish(t, ctx, input)

	authorRow, err := env.userRepo.GetByID(ctx, nil, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, authorRow.TotalPackages)
}

func TestPublishNormalizesTags(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)

	input := validPublishInput("echo")
	input.Tags = []string{"Audio", "audio", "  Voice ", ""}
	pkg := env.publish(t, ctxFor(author), input)
	require.Equal(t, []string{"audio", "voice"}, pkg.Tags)
}

func TestSearchRelevanceOrdering(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	ctx := ctxFor(author)

	seed := func(packageID, displayName string, tags []string) {
		input := validPublishInput(packageID)
		input.DisplayName = displayName
		input.Description = displayName + " package."
		input.Tags = tags
		env.publish(t, ctx, input)
	}
	seed("echo", "Echo", nil)
	seed("mega-echo", "Mega Echo", nil)
	seed("karaoke-night", "Karaoke Night", []string{"echo", "music"})
	seed("unrelated", "Unrelated", nil)

	results, total, err := env.catalog.Search(ctx, repos.PackageSearchParams{Query: "echo"})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, results, 3)
	require.Equal(t, "echo", results[0].PackageID)
	require.Equal(t, "mega-echo", results[1].PackageID)
	require.Equal(t, "karaoke-night", results[2].PackageID)
}

func TestSearchFiltersAndPagination(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	ctx := ctxFor(author)

	for _, id := range []string{"alpha", "beta", "gamma"} {
		input := validPublishInput(id)
		if id == "gamma" {
			input.Category = "music"
		}
		env.publish(t, ctx, input)
	}

	results, total, err := env.catalog.Search(ctx, repos.PackageSearchParams{Category: "music"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	require.Equal(t, "gamma", results[0].PackageID)

	// Oversized limits clamp instead of failing.
	results, total, err = env.catalog.Search(ctx, repos.PackageSearchParams{Limit: 100000})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, results, 3)

	results, _, err = env.catalog.Search(ctx, repos.PackageSearchParams{Limit: 2, Offset: 2, Order: repos.OrderRecency})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSoftDeleteHidesFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author", types.TierFree, types.RoleUser)
	stranger := env.createUser(t, "stranger", types.TierFree, types.RoleUser)
	ctx := ctxFor(author)

	pkg := env.publish(t, ctx, validPublishInput("echo"))

	require.True(t, apierr.IsKind(env.catalog.SoftDelete(ctxFor(stranger), pkg.ID), apierr.KindForbidden))
	require.NoError(t, env.catalog.SoftDelete(ctx, pkg.ID))

	_, err := env.catalog.GetByID(ctx, pkg.ID)
	require.True(t, apierr.IsKind(err, apierr.KindNotFound))

	_, total, err := env.catalog.Search(ctx, repos.PackageSearchParams{Query: "echo"})
	require.NoError(t, err)
	require.EqualValues(t, 0, total)

	// The version slot stays burned: republishing 1.0.0 is still a conflict.
	_, err = env.catalog.Publish(ctx, validPublishInput("echo"))
	require.True(t, apierr.IsKind(err, apierr.KindConflict))
}
