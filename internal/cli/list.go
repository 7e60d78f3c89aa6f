package cli

import (
	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/render"
	"github.com/farisp123/form-app/internal/view"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Query string
	Where string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Records []contact.Record `json:"records"`
	Total   int              `json:"total"`
	Query   string           `json:"query,omitempty"`
	Where   string           `json:"where,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored entries",
		Long: `List stored entries in store order.

--query keeps entries whose name or city contains the text (ignoring
case) or whose phone contains it. --where takes an expression over
id, name, phone, city and email that must evaluate to a boolean.

Examples:
  contacts list
  contacts list --query nyc
  contacts list --where 'city == "Boston" && email endsWith "@x.com"'
  contacts list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "filter by name, city or phone")
	cmd.Flags().StringVar(&opts.Where, "where", "", "filter by expression")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var pred *view.Predicate
	if opts.Where != "" {
		p, err := view.Compile(opts.Where)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid --where expression", err)
		}
		pred = p
	}

	eng, closer, err := opts.openEngine(cmd.Context(), formatter)
	if err != nil {
		return err
	}
	defer closer()

	eng.SetQuery(opts.Query)
	state := eng.Snapshot()

	records, err := view.Where(state.View, pred)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "evaluating --where expression", err)
	}
	state.View = records

	formatter.VerboseLog("%d of %d entries shown", len(records), state.Total)
	return formatter.Result(render.Table(state), ListResult{
		Records: records,
		Total:   state.Total,
		Query:   opts.Query,
		Where:   opts.Where,
	})
}
