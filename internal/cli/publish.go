package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigyaps/yigyaps/internal/manifest"
)

var publishCmd = &cobra.Command{
	Use:   "publish <dir>",
	Short: "Publish a skill package from a directory",
	Long: `Publish the skill described by <dir>/skill.yaml to the registry.
Each (packageId, version) pair can be published exactly once; bump the
version in the manifest to release an update.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	m, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	input, err := m.PublishInput()
	if err != nil {
		return err
	}

	pkg, err := c.Publish(cmd.Context(), input)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Published %s v%s (id %s)", pkg.PackageID, pkg.Version, pkg.ID)))
	return nil
}
