package commands

import (
	"github.com/rockdove/forge/internal/engine/pipeline"
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var (
		noCache bool
		tag     string
	)

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build an image from the recipe in the given directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			img, err := c.app.Build(cmd.Context(), root, pipeline.Options{
				NoCache: noCache,
				Tag:     tag,
			})
			if err != nil {
				return err
			}

			cmd.Println(img.ID.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Rebuild every layer, ignoring cached ones")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Name to record for the built image")

	return cmd
}
