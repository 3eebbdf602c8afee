package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/project-cli/internal/config"
	"github.com/aidanlsb/project-cli/internal/logging"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	dataPath     string
	configExists bool
}

// configField maps a set/unset flag to its config.toml key.
type configField struct {
	flag     string
	key      string
	field    func(*config.Config) *string
	validate func(string) error
}

var configFields = []configField{
	{flag: "data-file", key: "data_file", field: func(c *config.Config) *string { return &c.DataFile }},
	{flag: "opener", key: "opener", field: func(c *config.Config) *string { return &c.Opener }},
	{flag: "clone-root", key: "clone_root", field: func(c *config.Config) *string { return &c.CloneRoot }},
	{flag: "jenkins-url", key: "jenkins_url", field: func(c *config.Config) *string { return &c.JenkinsURL }},
	{
		flag:  "lock-timeout",
		key:   "lock_timeout",
		field: func(c *config.Config) *string { return &c.LockTimeout },
		validate: func(v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			if d <= 0 {
				return fmt.Errorf("must be positive")
			}
			return nil
		},
	},
	{
		flag:  "log-level",
		key:   "log_level",
		field: func(c *config.Config) *string { return &c.LogLevel },
		validate: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
	{flag: "ui-accent", key: "ui.accent", field: func(c *config.Config) *string { return &c.UI.Accent }},
}

// loadGlobalConfigContext loads the config for the config subcommands. It
// does not go through the root pre-run so that an invalid file can still be
// located and, unless validate is set, repaired with set or unset.
func (a *app) loadGlobalConfigContext(validate bool) (*globalConfigContext, error) {
	configPath := config.ResolveConfigPath(a.configPathFlag)
	_, statErr := os.Stat(configPath)

	load := config.LoadUnvalidated
	if validate {
		load = config.LoadFrom
	}
	cfg, err := load(configPath)
	if err != nil {
		return nil, configError{err}
	}

	return &globalConfigContext{
		cfg:          cfg,
		configPath:   configPath,
		dataPath:     config.ResolveDataPath(a.dataPathFlag, a.configPathFlag, cfg),
		configExists: statErr == nil,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	timeout, _ := ctx.cfg.GetLockTimeout()
	return map[string]interface{}{
		"config_path":  ctx.configPath,
		"data_path":    ctx.dataPath,
		"exists":       ctx.configExists,
		"data_file":    strings.TrimSpace(ctx.cfg.DataFile),
		"opener":       ctx.cfg.GetOpener(),
		"clone_root":   ctx.cfg.GetCloneRoot(),
		"jenkins_url":  strings.TrimSpace(ctx.cfg.JenkinsURL),
		"lock_timeout": timeout.String(),
		"log_level":    strings.TrimSpace(ctx.cfg.LogLevel),
		"ui": map[string]interface{}{
			"accent": strings.TrimSpace(ctx.cfg.UI.Accent),
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := a.command("config")
	cmd.RunE = a.runConfigShow
	cmd.AddCommand(
		a.configPathCmd(),
		a.configShowCmd(),
		a.configInitCmd(),
		a.configSetCmd(),
		a.configUnsetCmd(),
	)
	return cmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := a.loadGlobalConfigContext(true)
	if err != nil {
		return err
	}

	if a.jsonOutput {
		a.outputSuccess(configData(ctx), nil)
		return nil
	}

	a.printf("config: %s\n", ctx.configPath)
	a.printf("data:   %s\n", ctx.dataPath)
	if !ctx.configExists {
		a.println("Config file does not exist; defaults are in effect.")
		a.println("Run 'project config init' to create it.")
	}

	data := configData(ctx)
	for _, key := range []string{"opener", "clone_root", "jenkins_url", "lock_timeout", "log_level"} {
		if v, _ := data[key].(string); v != "" {
			a.printf("%s: %s\n", key, v)
		}
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		a.printf("ui.accent: %s\n", v)
	}
	return nil
}

func (a *app) configShowCmd() *cobra.Command {
	cmd := a.command("config_show")
	cmd.RunE = a.runConfigShow
	return cmd
}

func (a *app) configPathCmd() *cobra.Command {
	cmd := a.command("config_path")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := a.loadGlobalConfigContext(false)
		if err != nil {
			return err
		}
		if a.jsonOutput {
			a.outputSuccess(map[string]interface{}{
				"config_path": ctx.configPath,
				"data_path":   ctx.dataPath,
				"lock_path":   config.LockPath(ctx.dataPath),
			}, nil)
			return nil
		}
		a.printf("config: %s\n", ctx.configPath)
		a.printf("data:   %s\n", ctx.dataPath)
		return nil
	}
	return cmd
}

func (a *app) configInitCmd() *cobra.Command {
	cmd := a.command("config_init")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolveConfigPath(a.configPathFlag)
		created, err := config.CreateDefault(targetPath)
		if err != nil {
			return writeError{err}
		}

		if a.jsonOutput {
			a.outputSuccess(map[string]interface{}{
				"config_path": targetPath,
				"created":     created,
			}, nil)
			return nil
		}
		if created {
			a.printf("Created config: %s\n", targetPath)
		} else {
			a.printf("Config already exists: %s\n", targetPath)
		}
		return nil
	}
	return cmd
}

func (a *app) configSetCmd() *cobra.Command {
	cmd := a.command("config_set")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := a.loadGlobalConfigContext(false)
		if err != nil {
			return err
		}

		var changed []string
		for _, f := range configFields {
			if !cmd.Flags().Changed(f.flag) {
				continue
			}
			raw, _ := cmd.Flags().GetString(f.flag)
			value := strings.TrimSpace(raw)
			if value == "" {
				return newCodedError(ErrInvalidInput, fmt.Sprintf("Use 'project config unset --%s' to clear it", f.flag),
					"%s cannot be empty", f.flag)
			}
			if f.validate != nil {
				if err := f.validate(value); err != nil {
					return newCodedError(ErrInvalidInput, "", "invalid %s %q: %v", f.flag, value, err)
				}
			}
			*f.field(ctx.cfg) = value
			changed = append(changed, f.key)
		}
		if len(changed) == 0 {
			return newCodedError(ErrInvalidInput, "Run 'project config set --help' for the available flags",
				"no fields to set")
		}

		return a.saveConfig(ctx, changed)
	}
	return cmd
}

func (a *app) configUnsetCmd() *cobra.Command {
	cmd := a.command("config_unset")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := a.loadGlobalConfigContext(false)
		if err != nil {
			return err
		}

		var changed []string
		for _, f := range configFields {
			if unset, _ := cmd.Flags().GetBool(f.flag); !unset {
				continue
			}
			*f.field(ctx.cfg) = ""
			changed = append(changed, f.key)
		}
		if len(changed) == 0 {
			return newCodedError(ErrInvalidInput, "Run 'project config unset --help' for the available flags",
				"no fields to unset")
		}

		return a.saveConfig(ctx, changed)
	}
	return cmd
}

func (a *app) saveConfig(ctx *globalConfigContext, changed []string) error {
	if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
		return writeError{err}
	}

	if a.jsonOutput {
		a.outputSuccess(map[string]interface{}{
			"config_path": ctx.configPath,
			"changed":     changed,
		}, nil)
		return nil
	}
	a.printf("Updated %s in %s\n", strings.Join(changed, ", "), ctx.configPath)
	return nil
}
