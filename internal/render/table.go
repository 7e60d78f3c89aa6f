package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
)

// EmptyView is shown instead of a table when no record matches.
const EmptyView = "No entries."

// Columns returns the table headers in display order.
func Columns() []string {
	cols := []string{"ID"}
	for _, f := range contact.Fields() {
		cols = append(cols, f.Label())
	}
	return cols
}

// Row returns the cells of r in Columns order.
func Row(r contact.Record) []string {
	row := []string{r.ID}
	for _, f := range contact.Fields() {
		row = append(row, r.Get(f))
	}
	return row
}

// Records renders records as a bordered table.
func Records(records []contact.Record) string {
	return RecordsWithCursor(records, -1)
}

// RecordsWithCursor renders records with the row at cursor highlighted.
// A negative cursor highlights nothing.
func RecordsWithCursor(records []contact.Record, cursor int) string {
	if len(records) == 0 {
		return Muted.Render(EmptyView)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = Row(r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return Header
			case row == cursor:
				return Selected
			default:
				return Cell
			}
		}).
		Headers(Columns()...).
		Rows(rows...)

	return t.String()
}

// Table renders the filtered view of s followed by a count line.
func Table(s engine.State) string {
	var b strings.Builder
	b.WriteString(Records(s.View))
	b.WriteString("\n")
	b.WriteString(Muted.Render(Summary(s)))
	return b.String()
}

// Summary describes how many records the view shows.
func Summary(s engine.State) string {
	if s.Query == "" {
		return fmt.Sprintf("%d of %d entries", len(s.View), s.Total)
	}
	return fmt.Sprintf("%d of %d entries matching %q", len(s.View), s.Total, s.Query)
}
