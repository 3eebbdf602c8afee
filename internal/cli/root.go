// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/docs"
	"github.com/aidanlsb/project-cli/internal/commands"
	"github.com/aidanlsb/project-cli/internal/config"
	"github.com/aidanlsb/project-cli/internal/logging"
	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/ui"
)

// Options carries the process collaborators. Zero fields fall back to the
// real process: os.Stdin/Stdout/Stderr, the configured opener, os.Getwd and
// a go-git cloner.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Opener overrides the opener built from the config.
	Opener shortcut.Opener
	// Expander overrides home and environment lookups.
	Expander shortcut.Expander
	Getwd    func() (string, error)
	Cloner   Cloner
}

// app is the state of one CLI invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	opener   shortcut.Opener
	expander shortcut.Expander
	getwd    func() (string, error)
	cloner   Cloner

	// Global flags
	configPathFlag string
	dataPathFlag   string
	jsonOutput     bool
	debug          bool

	// Resolved values
	cfg                *config.Config
	resolvedConfigPath string
	resolvedDataPath   string
	configLoaded       bool
	log                *zap.Logger

	// commandID and mutates come from the registry entry of the running
	// command. Only mutating commands may enter updateStore.
	commandID string
	mutates   bool
}

func newApp(opts Options) *app {
	a := &app{
		in:       opts.In,
		out:      opts.Out,
		errOut:   opts.Err,
		opener:   opts.Opener,
		expander: opts.Expander,
		getwd:    opts.Getwd,
		cloner:   opts.Cloner,
		cfg:      &config.Config{},
		log:      logging.Nop(),
	}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.errOut == nil {
		a.errOut = os.Stderr
	}
	if a.getwd == nil {
		a.getwd = os.Getwd
	}
	if a.cloner == nil {
		a.cloner = gitCloner{}
	}
	return a
}

// NewRootCommand builds the full command tree around opts.
func NewRootCommand(opts Options) *cobra.Command {
	return newApp(opts).rootCommand()
}

// Execute runs the CLI against the real process and returns the exit code.
func Execute() int {
	return Run(context.Background(), os.Args[1:], Options{})
}

// Run executes one invocation with args and returns its exit code. Errors
// are reported on the error writer (or as a JSON envelope with --json).
func Run(ctx context.Context, args []string, opts Options) int {
	a := newApp(opts)
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.reportError(err)
	}
	_ = a.log.Sync()
	return ExitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "project [name]",
		Short: "Bookmark URLs and directories per project",
		Long: `project keeps named shortcuts (URLs and directories) grouped by project.

'project <name>' selects the active project; 'project goto <key>' opens a URL
or prints a directory of the active project.`,
		Args:              a.wrapArgs(cobra.MaximumNArgs(1)),
		ValidArgsFunction: a.completeFirstArg(commands.CompProjects),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.persistentPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.printUsage()
			}
			return a.runSelect(cmd.Context(), args[0])
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&a.configPathFlag, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&a.dataPathFlag, "data", "", "Path to the store file (overrides data_file in config)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format (for scripts)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log debug information to stderr")

	root.AddCommand(
		a.addCmd(),
		a.selectCmd(),
		a.activeCmd(),
		a.listCmd(),
		a.renameCmd(),
		a.removeCmd(),
		a.gotoCmd(),
		a.alfredCmd(),
		a.importCmd(),
		a.cloneCmd(),
		a.jenkinsURLCmd(),
		a.exportCmd(),
		a.configCmd(),
		a.usageCmd(),
		a.versionCmd(),
		a.namesCmd(),
		a.keysCmd(),
	)

	return root
}

// persistentPreRun loads the config, resolves the store path and sets up
// logging and theming for every command that needs them.
func (a *app) persistentPreRun(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "completion", "help", "version", "usage", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}
	if cmd.Name() == "config" {
		return nil
	}
	if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "config") {
		return nil
	}

	a.resolveCommand(cmd, args)
	if err := a.loadConfig(); err != nil {
		return err
	}
	a.log.Debug("config loaded",
		zap.String("command", a.commandID),
		zap.Bool("mutates", a.mutates),
		zap.String("config", a.resolvedConfigPath),
		zap.String("data", a.resolvedDataPath),
	)
	return nil
}

// resolveCommand looks up the registry entry of cmd. The root command with
// a name argument is the select shorthand.
func (a *app) resolveCommand(cmd *cobra.Command, args []string) {
	path := commandPath(cmd)
	if path == "" && len(args) > 0 {
		path = "select"
	}
	id, _, ok := commands.LookupMetaByPath(path)
	if !ok {
		return
	}
	a.commandID = id
	a.mutates = commands.Mutates(path)
}

// commandPath returns the path of cmd below the root, e.g. "goto add".
func commandPath(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if root := cmd.Root(); root != nil {
		path = strings.TrimPrefix(path, root.Name())
	}
	return strings.TrimSpace(path)
}

// loadConfig resolves the config and store paths once per invocation.
// Shell completion calls it directly because cobra does not run pre-run
// hooks for completion requests.
func (a *app) loadConfig() error {
	if a.configLoaded {
		return nil
	}

	a.resolvedConfigPath = config.ResolveConfigPath(a.configPathFlag)
	cfg, err := config.LoadFrom(a.resolvedConfigPath)
	if err != nil {
		return configError{err}
	}
	a.cfg = cfg
	a.resolvedDataPath = config.ResolveDataPath(a.dataPathFlag, a.configPathFlag, cfg)
	ui.ConfigureTheme(cfg.UI.Accent)

	level := cfg.LogLevel
	if a.debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Output: a.errOut})
	if err != nil {
		return configError{err}
	}
	a.log = logger
	a.configLoaded = true
	return nil
}

// command builds a registry-backed command and wraps its argument
// validation so arity errors are reported as invalid input.
func (a *app) command(id string) *cobra.Command {
	cmd := commands.NewCommand(id, a.complete)
	if cmd == nil {
		panic(fmt.Sprintf("command %q missing from registry", id))
	}
	cmd.Args = a.wrapArgs(cmd.Args)
	return cmd
}

func (a *app) wrapArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if fn == nil {
			return nil
		}
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (a *app) printUsage() error {
	if a.jsonOutput {
		a.outputSuccess(map[string]interface{}{"usage": docs.Usage}, nil)
		return nil
	}

	display := ui.NewDisplayContext(a.out)
	if !display.IsTTY {
		_, err := io.WriteString(a.out, docs.Usage)
		return err
	}
	rendered, err := ui.RenderMarkdown(docs.Usage, display.AvailableWidth(ui.MarkdownRenderMargin))
	if err != nil {
		a.log.Debug("markdown render failed", zap.Error(err))
		rendered = docs.Usage
	}
	_, err = io.WriteString(a.out, rendered)
	return err
}

func (a *app) usageCmd() *cobra.Command {
	cmd := a.command("usage")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.printUsage()
	}
	return cmd
}

// println writes one line to stdout.
func (a *app) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// printf writes to stdout.
func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// errorf writes a non-fatal failure line to stderr.
func (a *app) errorf(format string, args ...interface{}) {
	fmt.Fprintln(a.errOut, ui.Error(fmt.Sprintf(format, args...)))
}

// warnf writes a warning line to stderr.
func (a *app) warnf(format string, args ...interface{}) {
	fmt.Fprintln(a.errOut, ui.Warningf(format, args...))
}

func (a *app) cwd() string {
	wd, err := a.getwd()
	if err != nil {
		a.log.Warn("cannot determine working directory", zap.Error(err))
		return "."
	}
	return wd
}

func trimmedArg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.TrimSpace(args[i])
}
