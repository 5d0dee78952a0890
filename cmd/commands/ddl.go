package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/ddl"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
)

// NewDDLCommand creates the ddl command
func NewDDLCommand() *cobra.Command {
	var (
		language string
		format   string
		location string
		toClip   bool
	)

	cmd := &cobra.Command{
		Use:   "ddl <table-id>",
		Short: "Print the CREATE TABLE statement for a table",
		Long: `Generate an external CREATE TABLE statement from a table's columns.

Imported column types (string, integer, float, boolean, datetime) are
mapped to the dialect's types; any other type is used as written.
Unset flags fall back to the ddl section of settings.yaml.`,
		Example: `  # Hive DDL over CSV files
  catalog ddl 12 --location s3://warehouse/orders

  # SparkSQL over parquet, copied to the clipboard
  catalog ddl 12 --language sparksql --format parquet --location /data/orders --copy`,
		Args:    cobra.ExactArgs(1),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseTableID(args[0])
			if err != nil {
				return err
			}

			settings := cli.NewCommandContext().LoadSettingsWithDefault().DDL
			if !cmd.Flags().Changed("language") {
				language = settings.Language
			}
			if !cmd.Flags().Changed("format") {
				format = settings.Format
			}
			if !cmd.Flags().Changed("location") {
				location = settings.Location
			}

			lang, err := ddl.ParseLanguage(language)
			if err != nil {
				return err
			}
			fileFormat, err := ddl.ParseFormat(format)
			if err != nil {
				return err
			}

			table, err := files.ReadTable(id)
			if err != nil {
				return err
			}
			statement, err := ddl.CreateTable(table, ddl.Options{
				Language: lang,
				Format:   fileFormat,
				Location: location,
			})
			if err != nil {
				return err
			}

			if toClip {
				if err := clipboardWrite(statement); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				cli.PrintSuccess(cmd.OutOrStdout(), "Copied %s DDL for %s to clipboard", lang, table.FullName())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), statement)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "SQL dialect (hive, sparksql)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Storage format of the data files (csv, parquet)")
	cmd.Flags().StringVar(&location, "location", "", "Location of the data files")
	cmd.Flags().BoolVar(&toClip, "copy", false, "Copy the statement to the clipboard instead of printing it")

	return cmd
}
