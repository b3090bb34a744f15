package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierRank(t *testing.T) {
	require.Equal(t, 0, TierFree.Rank())
	require.Equal(t, 1, TierPro.Rank())
	require.Equal(t, 2, TierLegendary.Rank())
	require.Equal(t, -1, Tier("platinum").Rank())
	require.False(t, Tier("platinum").Valid())
}

func TestInstallStatusTransitions(t *testing.T) {
	require.True(t, InstallActive.CanTransitionTo(InstallDisabled))
	require.True(t, InstallActive.CanTransitionTo(InstallRevoked))
	require.True(t, InstallDisabled.CanTransitionTo(InstallRevoked))

	require.False(t, InstallDisabled.CanTransitionTo(InstallActive))
	require.False(t, InstallRevoked.CanTransitionTo(InstallDisabled))
	require.False(t, InstallActive.CanTransitionTo(InstallActive))
	require.False(t, InstallStatus("bogus").CanTransitionTo(InstallRevoked))
}

func TestLicensePaid(t *testing.T) {
	require.False(t, LicenseOpenSource.Paid())
	require.False(t, LicenseFree.Paid())
	require.True(t, LicensePremium.Paid())
	require.True(t, LicenseEnterprise.Paid())
}
