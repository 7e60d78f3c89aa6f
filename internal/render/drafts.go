package render

import (
	"fmt"
	"strings"

	"github.com/farisp123/form-app/internal/contact"
	"github.com/farisp123/form-app/internal/engine"
)

// Drafts renders the session of s as plain text:
//
//	editing: 1 draft
//	[1] rec-1 ok
//	    Name:  Ann
//	    ...
//
// Invalid drafts list their missing fields instead of "ok".
func Drafts(s engine.State) string {
	var b strings.Builder

	noun := "drafts"
	if len(s.Drafts) == 1 {
		noun = "draft"
	}
	fmt.Fprintf(&b, "%s: %d %s\n", s.Mode, len(s.Drafts), noun)

	for i, d := range s.Drafts {
		fmt.Fprintf(&b, "[%d] %s %s\n", i+1, d.ID, Status(d))
		for _, f := range contact.Fields() {
			line := fmt.Sprintf("    %-6s %s", f.Label()+":", d.Get(f))
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Status returns "ok" for a submittable draft, otherwise the missing fields.
func Status(d contact.Record) string {
	missing := d.Missing()
	if len(missing) == 0 {
		return "ok"
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return "missing " + strings.Join(names, ", ")
}
