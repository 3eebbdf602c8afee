package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/project-cli/internal/store"
)

func (a *app) exportCmd() *cobra.Command {
	cmd := a.command("export")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		s, err := a.loadStore()
		if err != nil {
			return err
		}

		if a.jsonOutput {
			a.outputSuccess(s, &Meta{Count: len(s.Projects)})
			return nil
		}

		var data []byte
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "", "json":
			data, err = store.Encode(s)
		case "yaml", "yml":
			data, err = store.EncodeYAML(s)
		default:
			return usageError{fmt.Errorf("unknown format %q (expected json or yaml)", format)}
		}
		if err != nil {
			return fmt.Errorf("failed to encode store: %w", err)
		}

		_, err = a.out.Write(data)
		return err
	}
	return cmd
}
