package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "First-run walkthrough",
	Long:  `Check registry connectivity, show your login state, and list the commands to try next.`,
	RunE:  runOnboarding,
}

func runOnboarding(cmd *cobra.Command, args []string) error {
	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Welcome to YigYaps"))
	fmt.Printf("Registry: %s\n", cfg.RegistryURL)

	doc, err := c.Discovery(cmd.Context())
	if err != nil {
		fmt.Println(warnStyle.Render("Could not reach the registry."))
		fmt.Println(dimStyle.Render("Check the URL above, or set YIGYAPS_REGISTRY_URL."))
		return err
	}
	for _, reg := range doc.Registries {
		fmt.Println(successStyle.Render(fmt.Sprintf("Connected to %s (v%s)", reg.Name, reg.Version)))
	}

	if cfg.ApiKey == "" {
		fmt.Println()
		fmt.Println("You are not logged in. Run " + titleStyle.Render("yigyaps login") + " to create an account.")
	} else if me, merr := c.GetMe(cmd.Context()); merr == nil {
		fmt.Printf("Logged in as %s (tier: %s)\n", me.Username, me.Tier)
	} else {
		fmt.Println(warnStyle.Render("Your saved API key no longer works. Run 'yigyaps login' again."))
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("Next steps:"))
	fmt.Println("  yigyaps search <query>        find skills in the catalog")
	fmt.Println("  yigyaps info <packageId>      inspect a skill")
	fmt.Println("  yigyaps install <packageId> --agent-id <agent>")
	fmt.Println("  yigyaps publish <dir>         publish a skill.yaml manifest")

	if cfg.FirstRun {
		cfg.FirstRun = false
		if err := cliconfigSave(cfg); err != nil {
			return err
		}
	}
	return nil
}
