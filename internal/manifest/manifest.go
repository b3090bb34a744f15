// Package manifest reads skill.yaml, the package descriptor a publisher
// keeps next to their skill source.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/yigyaps/yigyaps/internal/types"
	"github.com/yigyaps/yigyaps/pkg/client"
)

// FileName is the manifest file name inside a skill directory.
const FileName = "skill.yaml"

// Manifest is the YAML structure of skill.yaml.
type Manifest struct {
	PackageID      string   `yaml:"packageId"`
	Version        string   `yaml:"version"`
	DisplayName    string   `yaml:"displayName"`
	Description    string   `yaml:"description"`
	Readme         string   `yaml:"readme"`
	AuthorName     string   `yaml:"authorName"`
	AuthorURL      string   `yaml:"authorUrl"`
	License        string   `yaml:"license"`
	PriceUSD       string   `yaml:"priceUsd"`
	RequiredTier   int      `yaml:"requiredTier"`
	RequiresAPIKey bool     `yaml:"requiresApiKey"`
	Category       string   `yaml:"category"`
	Maturity       string   `yaml:"maturity"`
	Tags           []string `yaml:"tags"`
	MCP            MCP      `yaml:"mcp"`
	MediaURL       string   `yaml:"mediaUrl"`
	RepoURL        string   `yaml:"repoUrl"`
	HomeURL        string   `yaml:"homeUrl"`
}

type MCP struct {
	Transport string   `yaml:"transport"`
	Command   string   `yaml:"command"`
	Args      []string `yaml:"args"`
	URL       string   `yaml:"url"`
}

// Read loads and validates the manifest from a skill directory. When the
// manifest names a readme file instead of inline text, the file's contents
// are substituted.
func Read(dir string) (*Manifest, error) {
	p := filepath.Join(dir, FileName)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no %s in %s", FileName, dir)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	if m.Readme != "" {
		readmePath := filepath.Join(dir, m.Readme)
		if content, rerr := os.ReadFile(readmePath); rerr == nil {
			m.Readme = string(content)
		}
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.PackageID == "" {
		return fmt.Errorf("manifest: packageId is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest: version is required")
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return fmt.Errorf("manifest: version %q is not valid semver", m.Version)
	}
	if m.DisplayName == "" {
		return fmt.Errorf("manifest: displayName is required")
	}
	if m.License == "" {
		return fmt.Errorf("manifest: license is required")
	}
	if m.MCP.Transport == "" {
		return fmt.Errorf("manifest: mcp.transport is required")
	}
	return nil
}

// PublishInput converts the manifest into the publish request body. Server
// side validation remains authoritative.
func (m *Manifest) PublishInput() (client.PublishInput, error) {
	input := client.PublishInput{
		PackageID:      m.PackageID,
		Version:        m.Version,
		DisplayName:    m.DisplayName,
		Description:    m.Description,
		Readme:         m.Readme,
		AuthorName:     m.AuthorName,
		AuthorURL:      m.AuthorURL,
		License:        types.License(m.License),
		RequiredTier:   m.RequiredTier,
		RequiresAPIKey: m.RequiresAPIKey,
		Category:       m.Category,
		Maturity:       types.Maturity(m.Maturity),
		Tags:           m.Tags,
		MCPTransport:   types.Transport(m.MCP.Transport),
		MCPCommand:     m.MCP.Command,
		MCPArgs:        m.MCP.Args,
		MCPUrl:         m.MCP.URL,
		MediaURL:       m.MediaURL,
		RepoURL:        m.RepoURL,
		HomeURL:        m.HomeURL,
	}
	if m.PriceUSD != "" {
		price, err := types.ParseUSD(m.PriceUSD)
		if err != nil {
			return input, fmt.Errorf("manifest: priceUsd: %w", err)
		}
		input.PriceUSD = &price
	}
	return input, nil
}
