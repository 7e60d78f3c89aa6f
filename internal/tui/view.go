package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
	"github.com/farisp123/form-app/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.PrimaryColor).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.BorderColor).
			Padding(0, 1)

	activePanelStyle = panelStyle.
				BorderForeground(render.PrimaryColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(render.InvalidColor).
			Padding(1, 2)

	cursorStyle = lipgloss.NewStyle().Foreground(render.PrimaryColor).Bold(true)
)

// Help lines per panel.
const (
	recordsHelp = "j/k move  / search  e edit  d delete  f form  q quit"
	formHelp    = "j/k move  enter edit field  a add  x remove  s submit  esc hide  tab records"
	editHelp    = "type to edit  enter/esc done"
	confirmHelp = "y confirm  n cancel"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.eng.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Contacts (%s)", s.Mode)))
	b.WriteString("\n")

	if s.Visible {
		b.WriteString(m.panel(focusForm, m.formView(s)))
		b.WriteString("\n")
	}

	if m.searching || s.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	cursor := -1
	if m.focus == focusRecords || !s.Visible {
		cursor = m.row
	}
	records := render.RecordsWithCursor(s.View, cursor) + "\n" + render.Muted.Render(render.Summary(s))
	b.WriteString(m.panel(focusRecords, records))
	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(modalStyle.Render(m.confirm.prompt + "\n\n" + confirmHelp))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString(render.Invalid.Render(m.errorMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(render.Valid.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(render.Muted.Render(m.help(s)))
	return b.String()
}

func (m Model) panel(which focus, content string) string {
	if m.focus == which {
		return activePanelStyle.Render(content)
	}
	return panelStyle.Render(content)
}

func (m Model) formView(s engine.State) string {
	var b strings.Builder
	fields := contact.Fields()

	for i, d := range s.Drafts {
		status := render.Valid.Render(render.Status(d))
		if !d.Valid() {
			status = render.Invalid.Render(render.Status(d))
		}
		fmt.Fprintf(&b, "Draft %d  %s\n", i+1, status)

		for j, f := range fields {
			marker := "  "
			if i == m.draft && j == m.field && m.focus == focusForm {
				marker = cursorStyle.Render("> ")
			}

			value := d.Get(f)
			if m.editing && i == m.draft && j == m.field {
				value = m.input.View()
			}
			fmt.Fprintf(&b, "%s%-6s %s\n", marker, f.Label()+":", value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) help(s engine.State) string {
	switch {
	case m.confirm != nil:
		return confirmHelp
	case m.editing:
		return editHelp
	case m.focus == focusForm && s.Visible:
		return formHelp
	default:
		return recordsHelp
	}
}
