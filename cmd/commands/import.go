package commands

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
	"github.com/pluqqy/pluqqy-catalog/pkg/tags"
	"github.com/pluqqy/pluqqy-catalog/pkg/upload"
)

// ImportResult describes an imported (or previewed) data file
type ImportResult struct {
	File     string          `json:"file" yaml:"file"`
	TableID  int64           `json:"table_id,omitempty" yaml:"table_id,omitempty"`
	Table    string          `json:"table" yaml:"table"`
	Columns  []models.Column `json:"columns" yaml:"columns"`
	RowCount int             `json:"row_count" yaml:"row_count"`
	Sample   [][]string      `json:"sample,omitempty" yaml:"sample,omitempty"`
}

type importFlags struct {
	output      string
	schema      string
	name        string
	description string
	id          int64
	delimiter   string
	noHeader    bool
	preview     bool
	tags        []string
}

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Catalog a table from a delimited data file",
		Long: `Read a CSV (or other delimited) file, infer the type of every column
and add it to the catalog as a new table.

Column types are inferred from the first rows of the file as one of
string, integer, float, boolean or datetime. Use --preview to see the
inferred columns without writing anything.`,
		Example: `  # Preview the inferred columns
  catalog import orders.csv --preview

  # Catalog the file as raw.orders with a tag
  catalog import orders.csv --schema raw --tag finance

  # Tab separated without a header row
  catalog import events.tsv --delimiter '\t' --no-header`,
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(flags.output); err != nil {
				return err
			}
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "Schema of the new table")
	cmd.Flags().StringVar(&flags.name, "name", "", "Table name (default: derived from the file name)")
	cmd.Flags().StringVar(&flags.description, "description", "", "Table description")
	cmd.Flags().Int64Var(&flags.id, "id", 0, "Table id (default: next free id)")
	cmd.Flags().StringVarP(&flags.delimiter, "delimiter", "d", ",", `Field delimiter, a single character or '\t'`)
	cmd.Flags().BoolVar(&flags.noHeader, "no-header", false, "The first row holds data, not column names")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "Show the inferred columns without importing")
	cmd.Flags().StringSliceVar(&flags.tags, "tag", nil, "Tag the new table (repeatable)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, flags importFlags) error {
	delimiter, err := parseDelimiter(flags.delimiter)
	if err != nil {
		return err
	}
	for _, tag := range flags.tags {
		if err := cli.ValidateTagArg(tag); err != nil {
			return err
		}
	}

	name := flags.name
	if name == "" {
		name = upload.TableName(path)
	}
	if name == "" {
		return fmt.Errorf("cannot derive a table name from %s, use --name", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	opts := upload.DefaultOptions()
	opts.Delimiter = delimiter
	opts.NoHeader = flags.noHeader
	preview, err := upload.ReadPreview(file, opts)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	table := preview.Table(flags.id, flags.schema, name)
	table.Description = flags.description
	result := ImportResult{
		File:     path,
		Table:    table.FullName(),
		Columns:  preview.Columns,
		RowCount: preview.RowCount,
	}

	if flags.preview {
		result.Sample = preview.Rows
		return printImport(cmd, flags.output, result, true)
	}

	if table.ID == 0 {
		if table.ID, err = files.NextTableID(); err != nil {
			return err
		}
	} else if table.ID < 0 {
		return fmt.Errorf("invalid table id: %d", table.ID)
	} else if files.TableExists(table.ID) {
		return fmt.Errorf("table %d already exists", table.ID)
	}
	if err := files.WriteTable(table); err != nil {
		return err
	}
	result.TableID = table.ID

	cc := cli.NewCommandContext()
	logger, closeLog := cc.Logger()
	defer closeLog()
	logger.Info("imported table", "table", table.ID, "file", path, "columns", len(table.Columns), "rows", preview.RowCount)

	if len(flags.tags) > 0 {
		store, err := tags.NewStore(logger)
		if err != nil {
			return fmt.Errorf("failed to open tag registry: %w", err)
		}
		for _, tag := range flags.tags {
			if err := store.CreateTableTag(cmd.Context(), table.ID, tag); err != nil {
				return fmt.Errorf("failed to tag table %d: %w", table.ID, err)
			}
		}
	}

	return printImport(cmd, flags.output, result, false)
}

func printImport(cmd *cobra.Command, output string, result ImportResult, preview bool) error {
	w := cmd.OutOrStdout()
	if cli.OutputFormat(output) != cli.FormatText {
		return cli.OutputResults(w, output, result)
	}

	formatter := cli.NewTableFormatter(w)
	formatter.Header("COLUMN", "TYPE")
	for _, column := range result.Columns {
		formatter.Row(column.Name, column.Type)
	}
	if err := formatter.Flush(); err != nil {
		return err
	}

	if preview {
		fmt.Fprintf(w, "\n%s: %d columns, %d rows\n", result.Table, len(result.Columns), result.RowCount)
		return nil
	}
	fmt.Fprintln(w)
	cli.PrintSuccess(w, "Imported %s as table %d (%d columns, %d rows)", result.Table, result.TableID, len(result.Columns), result.RowCount)
	return nil
}

// parseDelimiter accepts a single character or the escape \t
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	return r, nil
}
