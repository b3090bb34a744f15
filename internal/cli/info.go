package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <package-id>",
	Short: "Show detailed information about a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	pkg, err := c.GetPackageByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s v%s", pkg.PackageID, pkg.Version)))
	fmt.Printf("%s\n\n", pkg.DisplayName)
	fmt.Printf("%s\n\n", pkg.Description)
	fmt.Printf("Author:    %s\n", pkg.AuthorName)
	fmt.Printf("Category:  %s\n", pkg.Category)
	fmt.Printf("Maturity:  %s\n", pkg.Maturity)
	fmt.Printf("License:   %s\n", pkg.License)
	if pkg.PriceUSD != nil {
		fmt.Printf("Price:     $%s\n", pkg.PriceUSD)
	}
	fmt.Printf("Tier:      %d\n", pkg.RequiredTier)
	fmt.Printf("Installs:  %d\n", pkg.InstallCount)
	if pkg.RatingMean != nil {
		fmt.Printf("Rating:    %.2f (%d reviews)\n", *pkg.RatingMean, pkg.RatingCount)
	}
	if len(pkg.Tags) > 0 {
		fmt.Printf("Tags:      %s\n", strings.Join(pkg.Tags, ", "))
	}
	fmt.Printf("Transport: %s\n", pkg.MCPTransport)
	if pkg.MCPCommand != "" {
		fmt.Printf("Command:   %s %s\n", pkg.MCPCommand, strings.Join(pkg.MCPArgs, " "))
	}
	if pkg.MCPUrl != "" {
		fmt.Printf("URL:       %s\n", pkg.MCPUrl)
	}
	if pkg.RequiresAPIKey {
		fmt.Println(warnStyle.Render("Requires an API key to run."))
	}
	return nil
}
