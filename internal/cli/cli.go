// Package cli implements the yigyaps command-line client.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yigyaps/yigyaps/internal/cliconfig"
	"github.com/yigyaps/yigyaps/pkg/client"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const cliVersion = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "yigyaps",
	Short: "MCP skill marketplace client",
	Long: `yigyaps talks to a YigYaps skill registry: search the catalog,
install skills onto your agents, publish your own, and track royalties.

The registry URL and your API key live in ~/.yigyaps/config.json.
Set YIGYAPS_REGISTRY_URL to point at a different registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(royaltiesCmd)
	rootCmd.AddCommand(onboardingCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd, fang.WithVersion(cliVersion))
}

// newClient builds an SDK client from the saved config. Commands that need
// authentication rely on the stored API key being present; the server answers
// 401 when it is missing or stale.
func newClient() (*client.Client, *cliconfig.Config, error) {
	cfg, err := cliconfig.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.FirstRun {
		fmt.Println(dimStyle.Render("First run. 'yigyaps onboarding' walks through setup."))
	}
	opts := []client.Option{}
	if cfg.ApiKey != "" {
		opts = append(opts, client.WithCredential(cfg.ApiKey))
	}
	return client.New(cfg.RegistryURL, opts...), cfg, nil
}
