package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

// ExitCodeError carries the exit code of a launched image so main can
// propagate it.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return "image exited with code " + strconv.Itoa(e.Code)
}

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <image> [-- command...]",
		Short: "Launch a built image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.app.Run(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitCodeError{Code: code}
			}
			return nil
		},
	}
}
