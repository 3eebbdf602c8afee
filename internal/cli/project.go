package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/store"
	"github.com/aidanlsb/project-cli/internal/ui"
)

func (a *app) addCmd() *cobra.Command {
	cmd := a.command("add")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.AddProject(s, args[0], force)
		})
	}
	return cmd
}

func (a *app) selectCmd() *cobra.Command {
	cmd := a.command("select")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runSelect(cmd.Context(), args[0])
	}
	return cmd
}

// runSelect backs both 'project select <name>' and the 'project <name>'
// shorthand on the root command.
func (a *app) runSelect(ctx context.Context, name string) error {
	a.log.Debug("select project", zap.String("project", name))
	return a.runMutation(ctx, func(s *store.Store) (engine.Result, error) {
		return engine.SelectProject(s, name)
	})
}

func (a *app) activeCmd() *cobra.Command {
	cmd := a.command("active")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}

		active := s.Active
		if active != "" && !s.HasProject(active) {
			a.log.Warn("active project is missing from the store", zap.String("project", active))
			active = ""
		}

		if a.jsonOutput {
			var data struct {
				Active *string `json:"active"`
			}
			if active != "" {
				data.Active = &active
			}
			a.outputSuccess(data, nil)
			return nil
		}
		if active == "" {
			a.println("<none>")
			return nil
		}
		a.println(active)
		return nil
	}
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	cmd := a.command("list")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}

		listing := engine.ListProjects(s, trimmedArg(args, 0))
		if a.jsonOutput {
			a.outputSuccess(listing, &Meta{Count: listing.Count})
			return nil
		}

		if listing.Filter != "" {
			if listing.Count == 0 {
				a.printf("No projects found with key '%s'.\n", listing.Filter)
			}
			for _, name := range listing.Names {
				a.println(name)
			}
			a.println(listing.Count)
			return nil
		}

		if listing.Count == 0 {
			a.println(ui.Hint("No projects yet. Create one with 'project add <name>'."))
			a.println(0)
			return nil
		}
		for _, p := range listing.Projects {
			a.printf("%s %s (%s)\n", ui.ActiveMarker(p.Active), p.Name, pluralShortcuts(p.Shortcuts))
		}
		a.println(listing.Count)
		return nil
	}
	return cmd
}

func (a *app) renameCmd() *cobra.Command {
	cmd := a.command("rename")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.RenameProject(s, args[0], args[1], force)
		})
	}
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	cmd := a.command("remove")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := args[0]
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			// Validate and ask before taking the lock; the prompt may
			// block for as long as the user likes.
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			if err := engine.CheckRemovable(s, name); err != nil {
				return err
			}
			if a.jsonOutput {
				return newCodedError(ErrConfirmationRequired, "Pass --yes to remove without a prompt",
					"refusing to remove '%s' without confirmation", name)
			}
			set, _ := s.Project(name)
			ok, err := a.confirm(fmt.Sprintf("Remove project '%s' and its %s?", name, pluralShortcuts(set.Len())))
			if err != nil {
				return err
			}
			if !ok {
				a.println("Aborted.")
				return nil
			}
		}

		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.RemoveProject(s, name)
		})
	}
	return cmd
}
