package cli

import (
	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/tui"
)

// NewUICommand creates the ui command.
func NewUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive form",
		Long: `Open the interactive form: compose drafts, submit them, search the
stored entries, and edit or delete them in place.

Key bindings are listed at the bottom of the screen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			ctx := cmd.Context()

			eng, closer, err := rootOpts.openEngine(ctx, formatter)
			if err != nil {
				return err
			}
			defer closer()

			if err := tui.Run(ctx, eng); err != nil {
				return WrapExitError(ExitFailure, "interactive form failed", err)
			}
			return nil
		},
	}
}
