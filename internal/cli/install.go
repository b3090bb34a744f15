package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	installAgentID string
	installYes     bool
)

var installCmd = &cobra.Command{
	Use:   "install <package-id>",
	Short: "Install a package onto an agent",
	Long: `Install a package onto one of your agents. Installing an already
installed package is a no-op and reports the existing installation.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installAgentID, "agent-id", "", "agent to install onto (prompted when omitted)")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "skip the confirmation prompt")
}

func runInstall(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	pkg, err := c.GetPackageByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if installAgentID == "" {
		fmt.Print("Agent id: ")
		reader := bufio.NewReader(os.Stdin)
		line, rerr := reader.ReadString('\n')
		if rerr != nil {
			return fmt.Errorf("read agent id: %w", rerr)
		}
		installAgentID = strings.TrimSpace(line)
		if installAgentID == "" {
			fmt.Println(dimStyle.Render("Aborted."))
			return nil
		}
	}

	if !installYes {
		price := "free"
		if pkg.PriceUSD != nil {
			price = "$" + pkg.PriceUSD.String()
		}
		fmt.Printf("Install %s v%s (%s) onto agent %q? [y/N] ",
			titleStyle.Render(pkg.PackageID), pkg.Version, price, installAgentID)
		reader := bufio.NewReader(os.Stdin)
		line, rerr := reader.ReadString('\n')
		if rerr != nil {
			return fmt.Errorf("read confirmation: %w", rerr)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Println(dimStyle.Render("Aborted."))
			return nil
		}
	}

	inst, created, err := c.Install(cmd.Context(), pkg.ID, installAgentID)
	if err != nil {
		return err
	}
	if created {
		fmt.Println(successStyle.Render(fmt.Sprintf("Installed %s onto %s (installation %s)", pkg.PackageID, inst.AgentID, inst.ID)))
	} else {
		fmt.Println(dimStyle.Render(fmt.Sprintf("%s is already installed on %s (installation %s)", pkg.PackageID, inst.AgentID, inst.ID)))
	}
	return nil
}
