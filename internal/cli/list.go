package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your installations",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print raw JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	installs, total, err := c.ListInstallations(cmd.Context(), 100, 0)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(installs)
	}

	if len(installs) == 0 {
		fmt.Println(dimStyle.Render("No installations. Use 'yigyaps install <package-id> --agent-id <agent>'."))
		return nil
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("INSTALLATIONS (%d total)", total)))
	for _, inst := range installs {
		fmt.Printf("%s  agent=%s  status=%s  %s\n",
			inst.PackageID, inst.AgentID, inst.Status, dimStyle.Render(inst.CreatedAt.Format("2006-01-02")))
	}
	return nil
}
