package ui

import (
	"io"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext holds display parameters, auto-detecting terminal width.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the output is a terminal
}

type fdWriter interface {
	Fd() uintptr
}

// NewDisplayContext detects whether w is a terminal and, if so, its width.
// Writers that are not files (buffers in tests, pipes wrapped by callers)
// are treated as non-terminals.
func NewDisplayContext(w io.Writer) *DisplayContext {
	ctx := &DisplayContext{TermWidth: DefaultTermWidth}
	f, ok := w.(fdWriter)
	if !ok {
		return ctx
	}

	fd := f.Fd()
	ctx.IsTTY = term.IsTerminal(fd)
	if ctx.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			ctx.TermWidth = w
		}
	}
	return ctx
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}
