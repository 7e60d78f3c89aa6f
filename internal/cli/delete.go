package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/engine"
	"github.com/farisp123/form-app/internal/session"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored entry",
		Long: `Delete a stored entry after confirmation.

Examples:
  contacts delete 0192f3c4-...
  contacts delete 0192f3c4-... --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runDelete(opts *DeleteOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	eng, closer, err := opts.openEngine(ctx, formatter)
	if err != nil {
		return err
	}
	defer closer()

	var confirm session.Confirmer = autoConfirm
	if !opts.Yes {
		confirm = newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	deleted, err := eng.DeleteStoredRecord(ctx, id, confirm)
	if err != nil {
		if errors.Is(err, engine.ErrRecordNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "no entry with id "+id, nil)
		}
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "deleting entry", err)
	}

	text := "Deleted " + id
	if !deleted {
		text = "Cancelled"
	}
	return formatter.Result(text, DeleteResult{ID: id, Deleted: deleted})
}
