package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated principal",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	me, err := c.GetMe(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(me.Username))
	fmt.Printf("Display name: %s\n", me.DisplayName)
	fmt.Printf("Tier:         %s\n", me.Tier)
	fmt.Printf("Role:         %s\n", me.Role)
	fmt.Printf("Packages:     %d\n", me.TotalPackages)
	fmt.Printf("Earnings:     $%s\n", me.TotalEarnings)
	if me.VerifiedCreator {
		fmt.Println(successStyle.Render("Verified creator"))
	}
	return nil
}
