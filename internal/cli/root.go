package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/farisp123/form-app/internal/config"
	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
	"github.com/farisp123/form-app/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Store      string // overrides store.backend
	Database   string // overrides store.path

	// Config is loaded in PersistentPreRunE.
	Config *config.Config

	// IDs allows overriding the draft id generator (for testing).
	// If nil, defaults to contact.UUIDGenerator.
	IDs contact.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the contacts CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Contacts - a small contact form manager",
		Long: `Manage contact entries (name, phone, city, email) kept in a local
record store. Entries are composed as drafts and written on submit;
incomplete drafts are never saved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/contacts/config.yaml)")
	flags.StringVar(&opts.Store, "store", "", "record store backend (sqlite|memory|redis)")
	flags.StringVar(&opts.Database, "db", "", "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewUICommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup validates global flags, loads the configuration and installs the
// default logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	formatter := o.formatter(cmd)

	if !isValidFormat(o.Format) {
		o.Format = "text"
		formatter.Format = "text"
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
			fmt.Sprintf("invalid format: must be one of %v", ValidFormats), nil)
	}

	v := config.New()
	root := cmd.Root().PersistentFlags()
	if err := v.BindPFlag("store.backend", root.Lookup("store")); err != nil {
		return err
	}
	if err := v.BindPFlag("store.path", root.Lookup("db")); err != nil {
		return err
	}

	cfg, err := config.Load(v, o.ConfigFile)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}
	o.Config = cfg

	setupLogging(cfg.Logging, o.Verbose, cmd.ErrOrStderr())
	return nil
}

// formatter returns an OutputFormatter for cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// openEngine opens the configured store and starts an engine over it.
// The returned closer releases the store.
func (o *RootOptions) openEngine(ctx context.Context, formatter *OutputFormatter) (*engine.Engine, func(), error) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.Default()
	}

	slog.Debug("opening record store", "backend", cfg.Store.Backend, "path", cfg.Store.Path)
	kv, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeStoreOpen, "failed to open record store", err)
	}
	records := store.NewRecords(kv)
	closer := func() {
		if err := records.Close(); err != nil {
			slog.Error("error closing record store", "error", err)
		}
	}

	ids := o.IDs
	if ids == nil {
		ids = contact.UUIDGenerator{}
	}

	eng, err := engine.New(ctx, records, ids,
		engine.WithLimits(cfg.Limits()),
		engine.WithDiscardInvalidEdit(cfg.Sync.DiscardInvalidEdit),
	)
	if err != nil {
		closer()
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeStoreOpen, "failed to load records", err)
	}
	return eng, closer, nil
}

// setupLogging installs the default slog handler on w.
func setupLogging(cfg config.LoggingConfig, verbose bool, w io.Writer) {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
