package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigyaps/yigyaps/internal/cliconfig"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API key",
	RunE:  runLogout,
}

// cliconfigSave is a seam for tests.
var cliconfigSave = cliconfig.Save

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := cliconfig.Load()
	if err != nil {
		return err
	}
	if cfg.ApiKey == "" {
		fmt.Println(dimStyle.Render("Not logged in."))
		return nil
	}
	cfg.ApiKey = ""
	if err := cliconfigSave(cfg); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Logged out."))
	return nil
}
