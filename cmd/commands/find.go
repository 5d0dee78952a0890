package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
	"github.com/pluqqy/pluqqy-catalog/pkg/search"
)

// FindResult represents the matches of a pattern in a saved query
type FindResult struct {
	Query   string         `json:"query" yaml:"query"`
	Pattern string         `json:"pattern" yaml:"pattern"`
	Options search.Options `json:"options" yaml:"options"`
	Count   int            `json:"count" yaml:"count"`
	Matches []search.Match `json:"matches" yaml:"matches"`
}

// searchFlags are shared by find and replace. Unset flags fall back to
// the search defaults in settings.
type searchFlags struct {
	matchCase bool
	regex     bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.matchCase, "match-case", "c", false, "Match case exactly")
	cmd.Flags().BoolVarP(&f.regex, "regex", "r", false, "Treat the pattern as a regular expression")
}

func (f *searchFlags) options(cmd *cobra.Command, settings *models.Settings) search.Options {
	opts := search.Options{
		MatchCase: settings.Search.MatchCase,
		UseRegex:  settings.Search.UseRegex,
	}
	if cmd.Flags().Changed("match-case") {
		opts.MatchCase = f.matchCase
	}
	if cmd.Flags().Changed("regex") {
		opts.UseRegex = f.regex
	}
	return opts
}

// loadQuery validates name and reads the saved query
func loadQuery(name string) (*models.Query, error) {
	if err := cli.ValidateQueryName(name); err != nil {
		return nil, err
	}
	query, err := files.ReadQuery(name)
	if err != nil {
		return nil, fmt.Errorf("query not found: %s", name)
	}
	return query, nil
}

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	var (
		flags  searchFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "find <query-name> <pattern>",
		Short: "Find a pattern in a saved query",
		Long: `Find every occurrence of a pattern in a saved query.

Matching is case insensitive unless --match-case is given. With --regex
the pattern uses ECMAScript regular expression syntax.

Examples:
  # Plain text search
  catalog find daily orders

  # Case sensitive regular expression
  catalog find daily 'FROM \w+' --regex --match-case`,
		Args:    cobra.ExactArgs(2),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			query, err := loadQuery(args[0])
			if err != nil {
				return err
			}
			settings := cli.NewCommandContext().LoadSettingsWithDefault()
			opts := flags.options(cmd, settings)

			matches, err := search.Find(query.Content, args[1], opts)
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}

			result := FindResult{
				Query:   query.Name,
				Pattern: args[1],
				Options: opts,
				Count:   len(matches),
				Matches: matches,
			}
			return printFindResult(cmd, query, result, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func printFindResult(cmd *cobra.Command, query *models.Query, result FindResult, output string) error {
	out := cmd.OutOrStdout()
	if output != string(cli.FormatText) {
		return cli.OutputResults(out, output, result)
	}

	if result.Count == 0 {
		cli.PrintInfo(out, "No results")
		return nil
	}

	lines := strings.Split(query.Content, "\n")
	for _, m := range result.Matches {
		line := ""
		if m.Line < len(lines) {
			line = strings.TrimSpace(lines[m.Line])
		}
		fmt.Fprintf(out, "%d:%d\t%s\n", m.Line+1, m.Column+1, cli.TruncateString(line, 80))
	}
	fmt.Fprintf(out, "\n%d match(es) in %s\n", result.Count, result.Query)
	return nil
}
