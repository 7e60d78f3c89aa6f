package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Fields fieldFlags
}

// RecordResult is the JSON payload of commands that write one record.
type RecordResult struct {
	Record contact.Record `json:"record"`
}

// fieldFlags binds one string flag per contact field.
type fieldFlags map[contact.Field]*string

func (ff fieldFlags) register(cmd *cobra.Command) {
	for _, f := range contact.Fields() {
		ff[f] = cmd.Flags().String(string(f), "", strings.ToLower(f.Label()))
	}
}

// changed returns the fields whose flags were set, in form order.
func (ff fieldFlags) changed(cmd *cobra.Command) []contact.Field {
	var fields []contact.Field
	for _, f := range contact.Fields() {
		if cmd.Flags().Changed(string(f)) {
			fields = append(fields, f)
		}
	}
	return fields
}

// apply writes the changed flags into the draft at index 0.
func (ff fieldFlags) apply(cmd *cobra.Command, eng *engine.Engine, formatter *OutputFormatter) error {
	for _, f := range ff.changed(cmd) {
		accepted, err := eng.UpdateField(0, f, *ff[f])
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeGeneric, "updating draft", err)
		}
		if !accepted {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, eng.Session().Limits().Reason(f), nil)
		}
	}
	return nil
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts, Fields: fieldFlags{}}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one entry",
		Long: `Add one entry. All four fields are required.

Example:
  contacts add --name Ann --phone 1234567890 --city NYC --email a@x.com`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	opts.Fields.register(cmd)

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	eng, closer, err := opts.openEngine(ctx, formatter)
	if err != nil {
		return err
	}
	defer closer()

	if err := opts.Fields.apply(cmd, eng, formatter); err != nil {
		return err
	}

	draft, err := eng.Session().Draft(0)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "reading draft", err)
	}
	if !draft.Valid() {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
			"entry is incomplete: missing "+joinFields(draft.Missing()), nil)
	}

	if _, err := eng.SubmitAll(ctx); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "saving entry", err)
	}

	return formatter.Result("Saved "+draft.ID, RecordResult{Record: draft})
}

func joinFields(fields []contact.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
