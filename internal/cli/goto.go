package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
	"github.com/aidanlsb/project-cli/internal/ui"
)

type gotoData struct {
	Project   string `json:"project"`
	Key       string `json:"key"`
	Kind      string `json:"kind"`
	Target    string `json:"target"`
	Opened    bool   `json:"opened,omitempty"`
	OpenError string `json:"open_error,omitempty"`
}

func (a *app) gotoCmd() *cobra.Command {
	cmd := a.command("goto")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return a.runGotoList("")
		}
		return a.runGoto(cmd, args[0])
	}

	cmd.AddCommand(
		a.gotoAddCmd(),
		a.gotoUpdateCmd(),
		a.gotoListCmd(),
		a.gotoRenameCmd(),
		a.gotoRemoveCmd(),
		a.gotoHasKeyCmd(),
	)
	return cmd
}

func (a *app) runGoto(cmd *cobra.Command, key string) error {
	s, err := a.loadStore()
	if err != nil {
		return err
	}

	res, err := engine.Goto(cmd.Context(), s, a.resolver(), key)
	if err != nil {
		return err
	}
	target := res.Resolution.Target
	a.log.Debug("shortcut resolved",
		zap.String("project", res.Project),
		zap.String("key", key),
		zap.Stringer("kind", res.Resolution.Kind),
		zap.String("target", target),
	)

	if res.Resolution.Kind == shortcut.KindDirectory {
		if a.jsonOutput {
			a.outputSuccess(gotoData{Project: res.Project, Key: key, Kind: res.Resolution.Kind.String(), Target: target}, nil)
			return nil
		}
		a.println(target)
		return nil
	}

	data := gotoData{Project: res.Project, Key: key, Kind: res.Resolution.Kind.String(), Target: target, Opened: true}
	if openErr := res.Resolution.OpenErr; openErr != nil {
		// Opener failures are reported but never change the exit status.
		a.log.Info("opener failed", zap.String("url", target), zap.Error(openErr))
		data.Opened = false
		data.OpenError = openErr.Error()
		if a.jsonOutput {
			a.outputSuccessWithWarnings(data, []Warning{{
				Code:    WarnOpenFailed,
				Message: openErr.Error(),
				Ref:     target,
			}}, nil)
			return nil
		}
		a.errorf("failed to open %s: %v", target, openErr)
		return nil
	}

	if a.jsonOutput {
		a.outputSuccess(data, nil)
		return nil
	}
	a.printf("Opened %s\n", target)
	return nil
}

func (a *app) gotoAddCmd() *cobra.Command {
	cmd := a.command("goto_add")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env := a.engineEnv()
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.AddShortcut(s, env, args[0], args[1])
		})
	}
	return cmd
}

func (a *app) gotoUpdateCmd() *cobra.Command {
	cmd := a.command("goto_update")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env := a.engineEnv()
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.UpdateShortcut(s, env, args[0], args[1])
		})
	}
	return cmd
}

func (a *app) gotoRenameCmd() *cobra.Command {
	cmd := a.command("goto_rename")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.RenameShortcut(s, args[0], args[1])
		})
	}
	return cmd
}

func (a *app) gotoRemoveCmd() *cobra.Command {
	cmd := a.command("goto_remove")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runMutation(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.RemoveShortcut(s, args[0])
		})
	}
	return cmd
}

func (a *app) gotoListCmd() *cobra.Command {
	cmd := a.command("goto_list")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runGotoList(trimmedArg(args, 0))
	}
	return cmd
}

func (a *app) runGotoList(filter string) error {
	s, err := a.loadStore()
	if err != nil {
		return err
	}
	listing, err := engine.ListShortcuts(s, filter)
	if err != nil {
		return err
	}

	if a.jsonOutput {
		a.outputSuccess(listing, &Meta{Count: len(listing.Entries)})
		return nil
	}

	if listing.Total == 0 {
		a.printf("[%s] No shortcuts yet. %s\n", listing.Project, ui.Hint("Add one with 'project goto add <key> <value>'."))
		return nil
	}

	links := a.shouldEmitHyperlinks()
	line := func(e store.Entry) {
		a.printf("- %s: %s\n", e.Key, formatShortcutValue(e, links))
	}

	if filter != "" {
		for _, e := range listing.Entries {
			line(e)
		}
		return nil
	}

	var urls, dirs []store.Entry
	for _, e := range listing.Entries {
		if e.Kind == shortcut.KindURL {
			urls = append(urls, e)
		} else {
			dirs = append(dirs, e)
		}
	}
	if len(urls) > 0 {
		a.println(ui.Header("URLs:"))
		for _, e := range urls {
			line(e)
		}
	}
	if len(urls) > 0 && len(dirs) > 0 {
		a.println()
	}
	if len(dirs) > 0 {
		a.println(ui.Header("Directories:"))
		for _, e := range dirs {
			line(e)
		}
	}
	return nil
}

func (a *app) gotoHasKeyCmd() *cobra.Command {
	cmd := a.command("goto_haskey")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := a.loadStore()
		if err != nil {
			return err
		}
		value, found, err := engine.HasKey(s, args[0])
		if err != nil {
			return err
		}

		if a.jsonOutput {
			a.outputSuccess(map[string]interface{}{
				"key":   args[0],
				"found": found,
				"value": value,
			}, nil)
			return nil
		}
		if found {
			a.println(value)
		}
		return nil
	}
	return cmd
}
