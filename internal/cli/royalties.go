package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var royaltiesCmd = &cobra.Command{
	Use:   "royalties",
	Short: "Show your royalty ledger summary",
	RunE:  runRoyalties,
}

func runRoyalties(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	summary, err := c.MyRoyalties(cmd.Context(), nil, nil, 20, 0)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Total earned: $%s across %d entries", summary.Total, summary.Count)))
	for _, entry := range summary.Entries {
		fmt.Printf("%s  $%s  %s  %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04"), entry.Amount, entry.Source, dimStyle.Render(entry.PackageID.String()))
	}
	return nil
}
