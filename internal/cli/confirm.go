package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/farisp123/form-app/internal/session"
)

// promptConfirmer asks yes/no questions on a terminal. Anything but "y"
// or "yes" declines, including end of input.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements session.Confirmer.
func (p *promptConfirmer) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// autoConfirm answers yes without asking.
var autoConfirm = session.ConfirmFunc(func(string) bool { return true })
