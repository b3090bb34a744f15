package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/yigyaps/yigyaps/internal/types"
)

type LoginInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ApiKey    string      `json:"apiKey"`
	ExpiresIn int         `json:"expiresIn"`
	User      *types.User `json:"user"`
}

// Login authenticates and adopts the returned session token for subsequent
// calls on this client.
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var result LoginResult
	if _, err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, input, &result); err != nil {
		return nil, err
	}
	c.credential = result.Token
	return &result, nil
}

func (c *Client) GetMe(ctx context.Context) (*types.User, error) {
	var me types.User
	if _, err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// PublishInput mirrors the publish request body.
type PublishInput struct {
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

func (c *Client) Publish(ctx context.Context, input PublishInput) (*types.SkillPackage, error) {
	var pkg types.SkillPackage
	if _, err := c.do(ctx, http.MethodPost, "/v1/packages", nil, input, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

type SearchParams struct {
	Query    string
	Category string
	Maturity string
	Author   string
	Order    string
	Limit    int
	Offset   int
}

func (c *Client) Search(ctx context.Context, params SearchParams) ([]*types.SkillPackage, int64, error) {
	q := pageQuery(params.Limit, params.Offset)
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Maturity != "" {
		q.Set("maturity", params.Maturity)
	}
	if params.Author != "" {
		q.Set("author", params.Author)
	}
	if params.Order != "" {
		q.Set("order", params.Order)
	}
	var results []*types.SkillPackage
	total, err := c.doPage(ctx, "/v1/packages", q, &results)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (c *Client) GetPackage(ctx context.Context, id uuid.UUID) (*types.SkillPackage, error) {
	var pkg types.SkillPackage
	if _, err := c.do(ctx, http.MethodGet, "/v1/packages/"+id.String(), nil, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetPackageByName resolves the human-readable package id to its newest
// catalog row.
func (c *Client) GetPackageByName(ctx context.Context, packageID string) (*types.SkillPackage, error) {
	var pkg types.SkillPackage
	if _, err := c.do(ctx, http.MethodGet, "/v1/packages/by-name/"+url.PathEscape(packageID), nil, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *Client) DeletePackage(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/v1/packages/"+id.String(), nil, nil, nil)
	return err
}

type installInput struct {
	PackageID uuid.UUID `json:"packageId"`
	AgentID   string    `json:"agentId"`
}

// Install binds a package to an agent. The bool reports whether a new
// installation was created; false means the pair was already active.
func (c *Client) Install(ctx context.Context, packageID uuid.UUID, agentID string) (*types.SkillInstallation, bool, error) {
	var inst types.SkillInstallation
	status, err := c.do(ctx, http.MethodPost, "/v1/installations", nil, installInput{PackageID: packageID, AgentID: agentID}, &inst)
	if err != nil {
		return nil, false, err
	}
	return &inst, status == http.StatusCreated, nil
}

func (c *Client) ListInstallations(ctx context.Context, limit, offset int) ([]*types.SkillInstallation, int64, error) {
	var results []*types.SkillInstallation
	total, err := c.doPage(ctx, "/v1/installations", pageQuery(limit, offset), &results)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

type installationPatch struct {
	Status types.InstallStatus `json:"status"`
}

func (c *Client) UpdateInstallation(ctx context.Context, id uuid.UUID, status types.InstallStatus) (*types.SkillInstallation, error) {
	var inst types.SkillInstallation
	if _, err := c.do(ctx, http.MethodPatch, "/v1/installations/"+id.String(), nil, installationPatch{Status: status}, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func (c *Client) CreateReview(ctx context.Context, packageID uuid.UUID, input ReviewInput) (*types.SkillReview, error) {
	var review types.SkillReview
	if _, err := c.do(ctx, http.MethodPost, "/v1/packages/"+packageID.String()+"/reviews", nil, input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) ListReviews(ctx context.Context, packageID uuid.UUID, sort string, limit, offset int) ([]*types.SkillReview, int64, error) {
	q := pageQuery(limit, offset)
	if sort != "" {
		q.Set("sort", sort)
	}
	var results []*types.SkillReview
	total, err := c.doPage(ctx, "/v1/packages/"+packageID.String()+"/reviews", q, &results)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

type mintInput struct {
	PackageID uuid.UUID `json:"packageId"`
}

func (c *Client) Mint(ctx context.Context, packageID uuid.UUID) (*types.SkillMint, error) {
	var mint types.SkillMint
	if _, err := c.do(ctx, http.MethodPost, "/v1/mints", nil, mintInput{PackageID: packageID}, &mint); err != nil {
		return nil, err
	}
	return &mint, nil
}

type RoyaltySummary struct {
	Total   types.USD                   `json:"total"`
	Count   int64                       `json:"count"`
	Entries []*types.RoyaltyLedgerEntry `json:"entries"`
}

func (c *Client) MyRoyalties(ctx context.Context, from, to *time.Time, limit, offset int) (*RoyaltySummary, error) {
	q := pageQuery(limit, offset)
	if from != nil {
		q.Set("from", from.Format(time.RFC3339))
	}
	if to != nil {
		q.Set("to", to.Format(time.RFC3339))
	}
	var summary RoyaltySummary
	if _, err := c.do(ctx, http.MethodGet, "/v1/royalties/me", q, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

type RegistryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Version     string `json:"version"`
}

type DiscoveryDocument struct {
	Registries []RegistryInfo `json:"registries"`
}

func (c *Client) Discovery(ctx context.Context) (*DiscoveryDocument, error) {
	var doc DiscoveryDocument
	if _, err := c.do(ctx, http.MethodGet, "/.well-known/mcp.json", nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
