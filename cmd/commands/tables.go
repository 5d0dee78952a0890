package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/tags"
)

// TablesResult represents the output structure for the tables command
type TablesResult struct {
	Tables []TableItem `json:"tables" yaml:"tables"`
	Count  int         `json:"count" yaml:"count"`
}

// TableItem represents a single cataloged table
type TableItem struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     int      `json:"columns" yaml:"columns"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// NewTablesCommand creates the tables command
func NewTablesCommand() *cobra.Command {
	var (
		output string
		tag    string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List cataloged tables",
		Long: `List every table in the catalog with its tags.

Examples:
  # List all tables
  catalog tables

  # Only tables carrying a tag
  catalog tables --tag pii

  # Machine readable output
  catalog tables -o json`,
		Args:    cobra.NoArgs,
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}
			return runTables(cmd, output, tag)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only list tables carrying this tag")

	return cmd
}

func runTables(cmd *cobra.Command, output, tag string) error {
	tables, err := files.LoadTables()
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	result := TablesResult{Tables: []TableItem{}}
	for _, table := range tables {
		if tag != "" && !containsTag(table.Tags, tag) {
			continue
		}
		tableTags := table.Tags
		if tableTags == nil {
			tableTags = []string{}
		}
		result.Tables = append(result.Tables, TableItem{
			ID:          table.ID,
			Name:        table.FullName(),
			Description: table.Description,
			Columns:     len(table.Columns),
			Tags:        tableTags,
		})
	}
	result.Count = len(result.Tables)

	out := cmd.OutOrStdout()
	if output != string(cli.FormatText) {
		return cli.OutputResults(out, output, result)
	}

	if result.Count == 0 {
		cli.PrintInfo(out, "No tables found")
		return nil
	}

	color := func(string) string { return "" }
	if registry, err := tags.NewRegistry(); err == nil {
		color = registry.Color
	}

	tf := cli.NewTableFormatter(out)
	tf.Header("ID", "TABLE", "COLUMNS", "TAGS")
	for _, item := range result.Tables {
		tf.Row(
			strconv.FormatInt(item.ID, 10),
			cli.TruncateString(item.Name, 40),
			strconv.Itoa(item.Columns),
			cli.JoinTags(item.Tags, color),
		)
	}
	return tf.Flush()
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
