package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
	"github.com/aidanlsb/project-cli/internal/ui"
)

// shouldEmitHyperlinks returns true if we should emit OSC 8 hyperlinks.
// Hyperlinks are only emitted to TTY terminals, not JSON output or pipes.
func (a *app) shouldEmitHyperlinks() bool {
	if a.jsonOutput {
		return false
	}
	f, ok := a.out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// linkTarget returns the URL a terminal should open for a shortcut value.
func linkTarget(e store.Entry) string {
	if e.Kind == shortcut.KindURL {
		return e.Value
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(e.Value)}
	return u.String()
}

// hyperlink wraps text in an OSC 8 escape sequence pointing at target.
func hyperlink(target, text string) string {
	return fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", target, text)
}

// formatShortcutValue renders a listed value, as a clickable link when links is set.
func formatShortcutValue(e store.Entry, links bool) string {
	if !links {
		return e.Value
	}
	return ui.FilePath(hyperlink(linkTarget(e), e.Value))
}
