package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/search"
)

// NewReplaceCommand creates the replace command
func NewReplaceCommand() *cobra.Command {
	var (
		flags  searchFlags
		all    bool
		index  int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "replace <query-name> <pattern> <replacement>",
		Short: "Replace a pattern in a saved query",
		Long: `Replace occurrences of a pattern in a saved query.

By default only the first match is replaced. Use --index to pick the
Nth match (as numbered by 'catalog find') or --all for every match.
The replacement is inserted literally.

Examples:
  # Rename a table reference everywhere
  catalog replace daily sales.orders sales.orders_v2 --all

  # Replace only the second match
  catalog replace daily orders o --index 2`,
		Args:    cobra.ExactArgs(3),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			pattern, replacement := args[1], args[2]

			settings := cli.NewCommandContext().LoadSettingsWithDefault()
			matches, err := search.Find(query.Content, pattern, flags.options(cmd, settings))
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				cli.PrintInfo(out, "No results")
				return nil
			}

			targets := matches
			if !all {
				if index < 1 || index > len(matches) {
					return fmt.Errorf("match index %d out of range (1-%d)", index, len(matches))
				}
				targets = matches[index-1 : index]
			}

			updated, n := search.Replace(query.Content, targets, replacement)
			if dryRun {
				fmt.Fprint(out, updated)
				return nil
			}
			if err := files.WriteQuery(query.Name, updated); err != nil {
				return err
			}

			cli.PrintSuccess(out, "Replaced %d occurrence(s) in %s", n, query.Name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Replace every match")
	cmd.Flags().IntVarP(&index, "index", "n", 1, "Replace only the Nth match")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result instead of saving it")
	cmd.MarkFlagsMutuallyExclusive("all", "index")

	return cmd
}
