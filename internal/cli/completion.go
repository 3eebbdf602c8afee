package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/project-cli/internal/commands"
	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/store"
)

// complete returns completion candidates of kind. Failures yield no
// candidates: completion must never print errors into the shell.
func (a *app) complete(kind string) []string {
	if err := a.loadConfig(); err != nil {
		return nil
	}
	s, err := store.Load(a.resolvedDataPath)
	if err != nil {
		return nil
	}

	switch kind {
	case commands.CompProjects:
		return s.ProjectNames()
	case commands.CompKeys:
		keys, err := engine.ShortcutKeys(s)
		if err != nil {
			return nil
		}
		return keys
	default:
		return nil
	}
}

// completeFirstArg completes only the first positional argument, for the
// root command's select shorthand.
func (a *app) completeFirstArg(kind string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var matches []string
		for _, c := range a.complete(kind) {
			if strings.HasPrefix(c, toComplete) {
				matches = append(matches, c)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

// namesCmd prints bare project names for shell completion scripts.
func (a *app) namesCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "__names",
		Short:  "Print project names, one per line",
		Args:   a.wrapArgs(cobra.NoArgs),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			for _, name := range s.ProjectNames() {
				a.println(name)
			}
			return nil
		},
	}
}

// keysCmd prints the active project's shortcut keys for shell completion
// scripts. Without a valid active project it prints nothing.
func (a *app) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "__keys",
		Short:  "Print shortcut keys of the active project, one per line",
		Args:   a.wrapArgs(cobra.NoArgs),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			keys, err := engine.ShortcutKeys(s)
			if err != nil {
				return nil
			}
			for _, key := range keys {
				a.println(key)
			}
			return nil
		},
	}
}
