package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// Completer returns dynamic completions of kind (CompProjects, CompKeys).
type Completer func(kind string) []string

// NewCommand creates a Cobra command from registry metadata: Use, Short,
// Long, Args validation, flags and shell completion. The caller sets RunE.
// It returns nil for an unknown id.
func NewCommand(id string, complete Completer) *cobra.Command {
	meta, ok := Registry[id]
	if !ok {
		return nil
	}

	// Build Use string
	use := meta.Name
	for _, arg := range meta.Args {
		if arg.Required {
			use += " <" + arg.Name + ">"
		} else {
			use += " [" + arg.Name + "]"
		}
	}

	cmd := &cobra.Command{
		Use:    use,
		Short:  meta.Description,
		Long:   LongDesc(meta),
		Hidden: meta.Hidden,
	}

	// Calculate min/max args
	minArgs := 0
	maxArgs := len(meta.Args)
	for _, arg := range meta.Args {
		if arg.Required {
			minArgs++
		}
	}
	if minArgs == maxArgs {
		if minArgs == 0 {
			cmd.Args = cobra.NoArgs
		} else {
			cmd.Args = cobra.ExactArgs(minArgs)
		}
	} else {
		cmd.Args = cobra.RangeArgs(minArgs, maxArgs)
	}

	for _, flag := range meta.Flags {
		switch flag.Type {
		case FlagTypeBool:
			cmd.Flags().BoolP(flag.Name, flag.Short, flag.Default == "true", flag.Description)
		default:
			cmd.Flags().StringP(flag.Name, flag.Short, flag.Default, flag.Description)
		}
	}

	if len(meta.Args) > 0 {
		cmd.ValidArgsFunction = generateCompletionFunc(meta.Args, complete)
	}

	return cmd
}

// LongDesc joins the long description and the examples for --help.
func LongDesc(meta Meta) string {
	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) == 0 {
		return longDesc
	}

	var b strings.Builder
	b.WriteString(longDesc)
	b.WriteString("\n\nExamples:\n")
	for _, ex := range meta.Examples {
		b.WriteString("  ")
		b.WriteString(ex)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// generateCompletionFunc creates a shell completion function based on arg metadata.
func generateCompletionFunc(args []ArgMeta, complete Completer) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, completedArgs []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		argIndex := len(completedArgs)
		if argIndex >= len(args) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		arg := args[argIndex]

		candidates := arg.Completions
		switch arg.DynamicComp {
		case CompFiles:
			return nil, cobra.ShellCompDirectiveDefault
		case CompProjects, CompKeys:
			if complete != nil {
				candidates = complete(arg.DynamicComp)
			}
		}

		var matches []string
		for _, c := range candidates {
			if strings.HasPrefix(c, toComplete) {
				matches = append(matches, c)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

// AllCommandIDs returns all registered command IDs.
func AllCommandIDs() []string {
	var ids []string
	for id := range Registry {
		ids = append(ids, id)
	}
	return ids
}
