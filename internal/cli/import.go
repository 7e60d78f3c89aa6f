package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/farisp123/form-app/internal/contact"
)

// ImportEntry is one entry of an import file.
type ImportEntry struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	City  string `yaml:"city"`
	Email string `yaml:"email"`
}

// Rejection describes a field value refused at input time.
type Rejection struct {
	Entry int    `json:"entry"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Saved    []string    `json:"saved"`
	Dropped  []string    `json:"dropped"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Submit a batch of entries from a YAML file",
		Long: `Submit a batch of entries in one go. The file holds a list of entries:

  - name: Ann
    phone: "1234567890"
    city: NYC
    email: a@x.com

Each entry becomes a draft; all drafts are submitted together. Values
that break an input limit are left empty, and incomplete entries are
dropped. Use "-" to read from standard input.

Exit codes:
  0 - Every entry was saved
  1 - One or more entries were dropped
  2 - Command error (unreadable file, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	entries, err := readImportFile(path, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "cannot read import file", err)
	}
	if len(entries) == 0 {
		return formatter.Result("Nothing to import.", ImportResult{Saved: []string{}, Dropped: []string{}})
	}

	eng, closer, err := opts.openEngine(ctx, formatter)
	if err != nil {
		return err
	}
	defer closer()

	var rejected []Rejection
	for i, entry := range entries {
		if i > 0 {
			eng.AddDraft()
		}
		values := map[contact.Field]string{
			contact.FieldName:  entry.Name,
			contact.FieldPhone: entry.Phone,
			contact.FieldCity:  entry.City,
			contact.FieldEmail: entry.Email,
		}
		for _, f := range contact.Fields() {
			accepted, err := eng.UpdateField(i, f, values[f])
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeGeneric, "filling draft", err)
			}
			if !accepted {
				rejected = append(rejected, Rejection{Entry: i + 1, Field: string(f), Value: values[f]})
			}
		}
	}

	res, err := eng.SubmitAll(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "saving entries", err)
	}

	out := ImportResult{Saved: res.Saved, Dropped: res.Dropped, Rejected: rejected}
	if err := formatter.Result(importSummary(out), out); err != nil {
		return err
	}
	if len(res.Dropped) > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d entries dropped", len(res.Dropped)),
			Reported: true,
		}
	}
	return nil
}

// readImportFile decodes a YAML list of entries, rejecting unknown keys.
func readImportFile(path string, stdin io.Reader) ([]ImportEntry, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var entries []ImportEntry
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

func importSummary(r ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saved %d, dropped %d", len(r.Saved), len(r.Dropped))
	for _, rej := range r.Rejected {
		fmt.Fprintf(&b, "\n  entry %d: %s %q rejected", rej.Entry, rej.Field, rej.Value)
	}
	for _, id := range r.Dropped {
		fmt.Fprintf(&b, "\n  dropped incomplete draft %s", id)
	}
	return b.String()
}
