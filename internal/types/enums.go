package types

// Tier is the monotonic access level gating paid packages.
type Tier string

const (
	TierFree      Tier = "free"
	TierPro       Tier = "pro"
	TierLegendary Tier = "legendary"
)

// Rank orders tiers free < pro < legendary. Unknown tiers rank below free so
// a corrupted value can never pass a gate.
func (t Tier) Rank() int {
	switch t {
	case TierFree:
		return 0
	case TierPro:
		return 1
	case TierLegendary:
		return 2
	default:
		return -1
	}
}

func (t Tier) Valid() bool { return t.Rank() >= 0 }

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type License string

const (
	LicenseOpenSource License = "open-source"
	LicenseFree       License = "free"
	LicensePremium    License = "premium"
	LicenseEnterprise License = "enterprise"
)

func (l License) Valid() bool {
	switch l {
	case LicenseOpenSource, LicenseFree, LicensePremium, LicenseEnterprise:
		return true
	default:
		return false
	}
}

// Paid reports whether packages under this license require a price and
// produce non-zero royalty entries.
func (l License) Paid() bool { return l == LicensePremium || l == LicenseEnterprise }

type Maturity string

const (
	MaturityExperimental Maturity = "experimental"
	MaturityBeta         Maturity = "beta"
	MaturityStable       Maturity = "stable"
	MaturityDeprecated   Maturity = "deprecated"
)

func (m Maturity) Valid() bool {
	switch m {
	case MaturityExperimental, MaturityBeta, MaturityStable, MaturityDeprecated:
		return true
	default:
		return false
	}
}

// Transport is how an agent reaches the skill's MCP server.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
	TransportSSE   Transport = "sse"
)

func (t Transport) Valid() bool {
	switch t {
	case TransportStdio, TransportHTTP, TransportSSE:
		return true
	default:
		return false
	}
}

type InstallStatus string

const (
	InstallActive   InstallStatus = "active"
	InstallDisabled InstallStatus = "disabled"
	InstallRevoked  InstallStatus = "revoked"
)

func (s InstallStatus) Valid() bool {
	switch s {
	case InstallActive, InstallDisabled, InstallRevoked:
		return true
	default:
		return false
	}
}

// rank orders the monotonic lifecycle active -> disabled -> revoked.
func (s InstallStatus) rank() int {
	switch s {
	case InstallActive:
		return 0
	case InstallDisabled:
		return 1
	case InstallRevoked:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// step. Transitions are never reversed within one row; a new row re-activates.
func (s InstallStatus) CanTransitionTo(next InstallStatus) bool {
	return s.rank() >= 0 && next.rank() > s.rank()
}

type RoyaltySource string

const (
	RoyaltySourceInstall    RoyaltySource = "install"
	RoyaltySourceMint       RoyaltySource = "mint"
	RoyaltySourceAdjustment RoyaltySource = "adjustment"
)

func (s RoyaltySource) Valid() bool {
	switch s {
	case RoyaltySourceInstall, RoyaltySourceMint, RoyaltySourceAdjustment:
		return true
	default:
		return false
	}
}
