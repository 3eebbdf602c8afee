package shortcut

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aidanlsb/project-cli/internal/shellquote"
)

// Opener hands a target (usually a URL) to the OS default handler.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, target string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, target string) error {
	return f(ctx, target)
}

// DefaultOpenerCommand returns the platform's "open with default handler" command.
func DefaultOpenerCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}

// CommandOpener runs an external command with the target as its single
// argument and waits for it to exit.
type CommandOpener struct {
	// Command is the program to run. When it contains spaces (e.g.
	// "open -a Firefox") it is run through sh -c with the target quoted.
	Command string
}

// Open runs the configured command. A missing binary or a non-zero exit
// status is returned as an error.
func (o CommandOpener) Open(ctx context.Context, target string) error {
	command := strings.TrimSpace(o.Command)
	if command == "" {
		command = DefaultOpenerCommand()
	}

	var cmd *exec.Cmd
	if strings.Contains(command, " ") {
		if runtime.GOOS == "windows" {
			fields := strings.Fields(command)
			cmd = exec.CommandContext(ctx, fields[0], append(fields[1:], target)...)
		} else {
			cmd = exec.CommandContext(ctx, "sh", "-c", command+" "+shellquote.Quote(target))
		}
	} else {
		cmd = exec.CommandContext(ctx, command, target)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", command, err, msg)
		}
		return fmt.Errorf("%s: %w", command, err)
	}
	return nil
}
