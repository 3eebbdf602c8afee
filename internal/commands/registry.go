// Package commands provides a central registry of project CLI commands.
// This registry is the single source of truth for command metadata:
// help text, positional arguments, flags, and whether a command writes the store.
package commands

// Meta defines metadata for a CLI command, used to generate its Cobra command.
type Meta struct {
	Name        string     // Command name (e.g., "add", "rename")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples
	Hidden      bool       // Hidden from help output
	// MutatesStore is true for commands that write the store file. Those run
	// under the store lock.
	MutatesStore bool
}

// ArgMeta defines a positional argument.
type ArgMeta struct {
	Name        string   // Argument name
	Description string   // Description
	Required    bool     // Is this argument required?
	Completions []string // Static completions (if any)
	DynamicComp string   // Dynamic completion type: "projects", "keys", "files"
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "force")
	Short       string   // Short flag (e.g., "y" for -y)
	Description string   // Description
	Type        FlagType // Type of flag
	Default     string   // Default value
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
)

// Dynamic completion kinds.
const (
	CompProjects = "projects"
	CompKeys     = "keys"
	CompFiles    = "files"
)

// Registry holds all registered commands, keyed by command ID. IDs of
// subcommands join the path with underscores ("goto add" -> "goto_add").
var Registry = map[string]Meta{
	"add": {
		Name:        "add",
		Description: "Create a project and make it active",
		LongDesc: `Creates a project with no shortcuts and selects it.

Adding a project that already exists fails unless --force is given. With
--force the existing shortcuts are kept and the project is only selected.`,
		Args: []ArgMeta{
			{Name: "name", Description: "Project name", Required: true},
		},
		Flags: []FlagMeta{
			{Name: "force", Short: "f", Description: "Select an existing project instead of failing", Type: FlagTypeBool},
		},
		Examples: []string{
			"project add website",
			"project add website --force",
		},
	},
	"select": {
		Name:        "select",
		Description: "Make a project active",
		LongDesc: `Makes a project the active one. 'project <name>' is shorthand for this
command; use 'project select <name>' for projects named like a subcommand.`,
		Args: []ArgMeta{
			{Name: "name", Description: "Project name", Required: true, DynamicComp: CompProjects},
		},
		Examples: []string{
			"project website",
			"project select list",
		},
	},
	"active": {
		Name:        "active",
		Description: "Print the active project",
		LongDesc:    "Prints the name of the active project, or <none> when no project is selected.",
		Examples:    []string{"project active"},
	},
	"list": {
		Name:        "list",
		Description: "List projects",
		LongDesc: `Lists every project with its shortcut count. The active project is
marked with '*'.

With a key, lists only the projects that have a shortcut with that key.
Prefix the key with '!' to list the projects that do not have it.`,
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key filter, '!' inverts", Required: false},
		},
		Examples: []string{
			"project list",
			"project list repo",
			"project list '!dir'",
		},
	},
	"rename": {
		Name:        "rename",
		Description: "Rename a project",
		LongDesc: `Moves a project's shortcuts to a new name. The active selection follows
the rename. Renaming onto an existing project fails unless --force is given.`,
		Args: []ArgMeta{
			{Name: "old", Description: "Current project name", Required: true, DynamicComp: CompProjects},
			{Name: "new", Description: "New project name", Required: true},
		},
		Flags: []FlagMeta{
			{Name: "force", Short: "f", Description: "Overwrite an existing project", Type: FlagTypeBool},
		},
		Examples: []string{"project rename website site"},
	},
	"remove": {
		Name:        "remove",
		Description: "Remove a project and its shortcuts",
		LongDesc: `Deletes a project and all of its shortcuts after confirmation. Answering
anything but 'y' aborts without changes. If the removed project was active,
the first remaining project (by name) becomes active.`,
		Args: []ArgMeta{
			{Name: "name", Description: "Project name", Required: true, DynamicComp: CompProjects},
		},
		Flags: []FlagMeta{
			{Name: "yes", Short: "y", Description: "Skip the confirmation prompt", Type: FlagTypeBool},
		},
		Examples: []string{
			"project remove website",
			"project remove website -y",
		},
	},
	"goto": {
		Name:        "goto",
		Description: "Open a shortcut of the active project",
		LongDesc: `Resolves a shortcut of the active project. URLs are opened with the
configured opener. Directories are printed, so the shell can change into them.

Without a key, lists the shortcuts like 'project goto list'.`,
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key", Required: false, DynamicComp: CompKeys},
		},
		Examples: []string{
			"project goto docs",
			`cd "$(project goto src)"`,
		},
	},
	"goto_add": {
		Name:        "add",
		Description: "Add or overwrite a shortcut",
		LongDesc: `Stores a shortcut in the active project, replacing any value under the
same key. URLs are stored as given. Anything else is a directory and is stored
as an absolute path, resolved against the current directory.`,
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key", Required: true},
			{Name: "value", Description: "URL or directory", Required: true, DynamicComp: CompFiles},
		},
		Examples: []string{
			"project goto add docs https://example.com/docs",
			"project goto add src .",
		},
	},
	"goto_update": {
		Name:        "update",
		Description: "Change an existing shortcut",
		LongDesc:    "Like 'goto add', but fails when the key does not exist.",
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key", Required: true, DynamicComp: CompKeys},
			{Name: "value", Description: "URL or directory", Required: true, DynamicComp: CompFiles},
		},
		Examples: []string{"project goto update docs https://example.com/v2/docs"},
	},
	"goto_list": {
		Name:        "list",
		Description: "List the active project's shortcuts",
		LongDesc: `Lists URLs first and directories second, each in the order they were
added. With 'url' or 'dir' only that kind is listed.`,
		Args: []ArgMeta{
			{Name: "kind", Description: "url or dir", Required: false, Completions: []string{"url", "dir"}},
		},
		Examples: []string{
			"project goto list",
			"project goto list url",
		},
	},
	"goto_rename": {
		Name:        "rename",
		Description: "Rename a shortcut",
		LongDesc:    "Moves a shortcut to a new key. An existing shortcut under the new key is overwritten.",
		Args: []ArgMeta{
			{Name: "old", Description: "Current key", Required: true, DynamicComp: CompKeys},
			{Name: "new", Description: "New key", Required: true},
		},
		Examples: []string{"project goto rename docs wiki"},
	},
	"goto_remove": {
		Name:        "remove",
		Description: "Remove a shortcut",
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key", Required: true, DynamicComp: CompKeys},
		},
		Examples: []string{"project goto remove docs"},
	},
	"goto_haskey": {
		Name:        "haskey",
		Description: "Print a shortcut's value if it exists",
		LongDesc: `Prints the stored value of a key in the active project, or nothing when
the key is absent. Exits 0 either way.`,
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key", Required: true, DynamicComp: CompKeys},
		},
		Examples: []string{`[ -n "$(project goto haskey repo)" ] && echo has repo`},
	},
	"alfred": {
		Name:        "alfred",
		Description: "JSON listings for the Alfred launcher",
	},
	"alfred_projects": {
		Name:        "projects",
		Description: "List projects as Alfred items",
		Args: []ArgMeta{
			{Name: "key", Description: "Shortcut key filter, '!' inverts", Required: false},
		},
		Examples: []string{"project alfred projects", "project alfred projects repo"},
	},
	"alfred_goto": {
		Name:        "goto",
		Description: "List the active project's shortcuts as Alfred items",
		Args: []ArgMeta{
			{Name: "kind", Description: "url or dir", Required: false, Completions: []string{"url", "dir"}},
		},
		Examples: []string{"project alfred goto", "project alfred goto url"},
	},
	"alfred_not-cloned": {
		Name:        "not-cloned",
		Description: "List projects with a repo shortcut but no dir shortcut",
		Examples:    []string{"project alfred not-cloned"},
	},
	"import": {
		Name:        "import",
		Description: "Set repo shortcuts from a file of Bitbucket URLs",
		LongDesc: `Reads one Bitbucket repository URL per line (blank lines and lines starting
with '#' are skipped) and sets the 'repo' shortcut of the project named after
each repository. Unknown projects are skipped unless --create is given.`,
		Args: []ArgMeta{
			{Name: "file", Description: "File with one URL per line ('-' for stdin)", Required: true, DynamicComp: CompFiles},
		},
		Flags: []FlagMeta{
			{Name: "create", Description: "Create missing projects", Type: FlagTypeBool},
		},
		Examples: []string{"project import repos.txt --create"},
	},
	"clone": {
		Name:        "clone",
		Description: "Clone a project's repo and record it as its dir shortcut",
		LongDesc: `Clones the project's 'repo' shortcut into <root>/<name>, stores the
checkout as the 'dir' shortcut and selects the project. Fails when the project
already has a 'dir' shortcut.`,
		Args: []ArgMeta{
			{Name: "name", Description: "Project name", Required: true, DynamicComp: CompProjects},
		},
		Flags: []FlagMeta{
			{Name: "root", Description: "Directory to clone into (default: clone_root from config)", Type: FlagTypeString},
		},
		Examples: []string{"project clone website", "project clone website --root ~/src"},
	},
	"jenkins-url": {
		Name:        "jenkins-url",
		Description: "Print the Jenkins builds page for a Bitbucket repo",
		Args: []ArgMeta{
			{Name: "url", Description: "Bitbucket repository URL", Required: true},
			{Name: "domain", Description: "Jenkins base URL (default: jenkins_url from config)", Required: false},
		},
		Examples: []string{"project jenkins-url https://git.example.com/projects/WEB/repos/site/browse https://ci.example.com"},
	},
	"export": {
		Name:        "export",
		Description: "Print the whole store",
		LongDesc:    "Prints every project and shortcut, in the on-disk JSON shape or as YAML.",
		Flags: []FlagMeta{
			{Name: "format", Description: "json or yaml", Type: FlagTypeString, Default: "json"},
		},
		Examples: []string{"project export", "project export --format yaml"},
	},
	"config": {
		Name:        "config",
		Description: "Inspect the configuration",
	},
	"config_path": {
		Name:        "path",
		Description: "Print the config and store paths",
	},
	"config_show": {
		Name:        "show",
		Description: "Print the effective configuration",
	},
	"config_init": {
		Name:        "init",
		Description: "Write a commented default config file",
	},
	"config_set": {
		Name:        "set",
		Description: "Set one or more config.toml fields",
		Flags: []FlagMeta{
			{Name: "data-file", Description: "Store file path", Type: FlagTypeString},
			{Name: "opener", Description: "Command URLs are opened with", Type: FlagTypeString},
			{Name: "clone-root", Description: "Directory 'project clone' clones into", Type: FlagTypeString},
			{Name: "jenkins-url", Description: "Default Jenkins domain", Type: FlagTypeString},
			{Name: "lock-timeout", Description: "How long to wait for the store lock (e.g. 2s)", Type: FlagTypeString},
			{Name: "log-level", Description: "debug, info, warn or error", Type: FlagTypeString},
			{Name: "ui-accent", Description: "Accent color (ANSI 0-255 or #RRGGBB)", Type: FlagTypeString},
		},
		Examples: []string{
			"project config set --opener 'open -a Firefox'",
			"project config set --clone-root ~/src --ui-accent 39",
		},
	},
	"config_unset": {
		Name:        "unset",
		Description: "Clear one or more config.toml fields",
		Flags: []FlagMeta{
			{Name: "data-file", Description: "Clear data_file", Type: FlagTypeBool},
			{Name: "opener", Description: "Clear opener", Type: FlagTypeBool},
			{Name: "clone-root", Description: "Clear clone_root", Type: FlagTypeBool},
			{Name: "jenkins-url", Description: "Clear jenkins_url", Type: FlagTypeBool},
			{Name: "lock-timeout", Description: "Clear lock_timeout", Type: FlagTypeBool},
			{Name: "log-level", Description: "Clear log_level", Type: FlagTypeBool},
			{Name: "ui-accent", Description: "Clear ui.accent", Type: FlagTypeBool},
		},
		Examples: []string{"project config unset --opener"},
	},
	"usage": {
		Name:        "usage",
		Description: "Show the usage guide",
	},
	"version": {
		Name:        "version",
		Description: "Show version and build information",
	},
}
