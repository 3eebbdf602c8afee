package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/project-cli/internal/ui"
)

// promptWriter returns where prompts go: stdout when it is a terminal,
// stderr otherwise, so captured stdout stays clean.
func (a *app) promptWriter() io.Writer {
	if f, ok := a.out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		return a.errOut
	}
	return a.out
}

// confirm asks message and reads one line from stdin. Only "y" or "yes"
// (any case) confirms; anything else, including end of input, declines.
func (a *app) confirm(message string) (bool, error) {
	if message == "" {
		message = "Apply changes?"
	}
	fmt.Fprintf(a.promptWriter(), "%s %s ", message, ui.Hint("[y/N]"))

	reader := bufio.NewReader(a.in)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
