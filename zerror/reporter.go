package zerror

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StackFrame is the minimal description of an activation record the
// reporter needs - just enough to print "at function NAME" (§4.7). Kept
// independent of zframe.Frame so this package stays free of any
// dependency on the interpreter (see the package doc comment).
type StackFrame struct {
	Name string
	Line int
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Report prints a traceback for err walking frames top (innermost) to
// bottom (§4.7): a header, one "at function NAME" line per frame, an
// info section with kind/message/code, and a terminator. Frame names and
// the error message are embedder-supplied diagnostic content - a
// module's own source text ends up here - so both are stripped of ANSI
// escape sequences before interpolation to keep a malicious module from
// injecting terminal control codes into the traceback.
func Report(w io.Writer, err *Error, frames []StackFrame) {
	fmt.Fprintln(w, headerStyle.Render("traceback (most recent call first):"))
	for _, f := range frames {
		name := ansi.Strip(f.Name)
		if f.Line > 0 {
			fmt.Fprintln(w, bodyStyle.Render(fmt.Sprintf("  at function %s (line %d)", name, f.Line)))
		} else {
			fmt.Fprintln(w, bodyStyle.Render(fmt.Sprintf("  at function %s", name)))
		}
	}
	fmt.Fprintln(w, bodyStyle.Render(fmt.Sprintf("%s error: %s (code %d)", err.Kind, ansi.Strip(err.Message), err.Code)))
	fmt.Fprintln(w, headerStyle.Render("--- end traceback ---"))
}
