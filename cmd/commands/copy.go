package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "copy <query-name>",
		Aliases: []string{"clip", "clipboard"},
		Short:   "Copy a saved query to the clipboard",
		Example: `  catalog copy daily`,
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(query.Content) == "" {
				return fmt.Errorf("query %s is empty", query.Name)
			}

			if err := clipboardWrite(query.Content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			lines := strings.Count(query.Content, "\n") + 1
			cli.PrintSuccess(cmd.OutOrStdout(), "Copied %s to clipboard (%d lines)", query.Name, lines)
			return nil
		},
	}
}
