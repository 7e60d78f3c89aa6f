package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/engine"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Fields fieldFlags
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts, Fields: fieldFlags{}}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a stored entry",
		Long: `Change fields of a stored entry in place. Only the given fields change;
clearing a field makes the entry incomplete and is refused.

Example:
  contacts edit 0192f3c4-... --name Annie`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	opts.Fields.register(cmd)

	return cmd
}

func runEdit(opts *EditOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	if len(opts.Fields.changed(cmd)) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
			"nothing to change: pass at least one of --name, --phone, --city, --email", nil)
	}

	eng, closer, err := opts.openEngine(ctx, formatter)
	if err != nil {
		return err
	}
	defer closer()

	if err := eng.BeginEdit(ctx, id); err != nil {
		if errors.Is(err, engine.ErrRecordNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "no entry with id "+id, nil)
		}
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "editing entry", err)
	}

	if err := opts.Fields.apply(cmd, eng, formatter); err != nil {
		return err
	}
	draft, _ := eng.Session().Draft(0)

	res, err := eng.SubmitAll(ctx)
	if err != nil {
		if ve, ok := engine.AsValidationError(err); ok {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
				"entry is incomplete: missing "+joinFields(ve.Missing), nil)
		}
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "saving entry", err)
	}
	if len(res.Saved) == 0 {
		// discard_invalid_edit dropped the change
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
			"entry is incomplete: missing "+joinFields(draft.Missing())+" (edit discarded)", nil)
	}

	return formatter.Result("Updated "+id, RecordResult{Record: draft})
}
