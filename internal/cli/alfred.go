package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/project-cli/internal/alfred"
)

func (a *app) alfredCmd() *cobra.Command {
	cmd := a.command("alfred")
	cmd.AddCommand(
		a.alfredProjectsCmd(),
		a.alfredGotoCmd(),
		a.alfredNotClonedCmd(),
	)
	return cmd
}

func (a *app) alfredProjectsCmd() *cobra.Command {
	cmd := a.command("alfred_projects")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}
		return alfred.Write(a.out, alfred.Projects(s, trimmedArg(args, 0)))
	}
	return cmd
}

func (a *app) alfredGotoCmd() *cobra.Command {
	cmd := a.command("alfred_goto")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}
		fb, err := alfred.Shortcuts(s, trimmedArg(args, 0))
		if err != nil {
			return err
		}
		return alfred.Write(a.out, fb)
	}
	return cmd
}

func (a *app) alfredNotClonedCmd() *cobra.Command {
	cmd := a.command("alfred_not-cloned")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}
		return alfred.Write(a.out, alfred.NotCloned(s))
	}
	return cmd
}
