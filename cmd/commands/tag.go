package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
	"github.com/pluqqy/pluqqy-catalog/pkg/tags"
)

// TagListResult is the output of tag list
type TagListResult struct {
	TableID int64     `json:"table_id,omitempty" yaml:"table_id,omitempty"`
	Tags    []TagItem `json:"tags" yaml:"tags"`
	Count   int       `json:"count" yaml:"count"`
}

// TagItem describes one tag
type TagItem struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
	Tables int    `json:"tables" yaml:"tables"`
}

// NewTagCommand creates the tag command and its subcommands
func NewTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage table tags",
		Long: `Add, remove and list the tags attached to cataloged tables.

Tag names may only contain letters and digits. Names are case
sensitive, so "PII" and "pii" are different tags.`,
	}

	cmd.AddCommand(newTagAddCommand())
	cmd.AddCommand(newTagRemoveCommand())
	cmd.AddCommand(newTagListCommand())
	cmd.AddCommand(newTagPruneCommand())

	return cmd
}

func newTagAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <table-id> <tag>",
		Short: "Attach a new tag to a table",
		Example: `  # Tag table 12 as containing personal data
  catalog tag add 12 pii`,
		Args:    cobra.ExactArgs(2),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseTableID(args[0])
			if err != nil {
				return err
			}
			name := args[1]
			if err := cli.ValidateTagArg(name); err != nil {
				return err
			}

			cc := cli.NewCommandContext()
			logger, closeLog := cc.Logger()
			defer closeLog()

			store, err := tags.NewStore(logger)
			if err != nil {
				return fmt.Errorf("failed to open tag registry: %w", err)
			}
			if err := store.CreateTableTag(cmd.Context(), id, name); err != nil {
				if errors.Is(err, models.ErrDuplicateTag) {
					return fmt.Errorf("table %d already has tag %q", id, name)
				}
				return fmt.Errorf("failed to tag table %d: %w", id, err)
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Tagged table %d with %s", id, name)
			return nil
		},
	}
}

func newTagRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <table-id> <tag>",
		Aliases: []string{"rm"},
		Short:   "Detach a tag from a table",
		Args:    cobra.ExactArgs(2),
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseTableID(args[0])
			if err != nil {
				return err
			}
			name := args[1]

			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Remove tag %s from table %d?", name, id), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo(cmd.OutOrStdout(), "Cancelled")
				return nil
			}

			cc := cli.NewCommandContext()
			logger, closeLog := cc.Logger()
			defer closeLog()

			store, err := tags.NewStore(logger)
			if err != nil {
				return fmt.Errorf("failed to open tag registry: %w", err)
			}
			if err := store.RemoveTableTag(id, name); err != nil {
				return err
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Removed %s from table %d", name, id)
			return nil
		},
	}
}

func newTagListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list [table-id]",
		Short: "List tags, for one table or the whole catalog",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Every known tag with its usage
  catalog tag list

  # Tags on table 12
  catalog tag list 12 -o yaml`,
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			var tableID int64
			if len(args) == 1 {
				id, err := cli.ParseTableID(args[0])
				if err != nil {
					return err
				}
				tableID = id
			}
			return runTagList(cmd, tableID, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runTagList(cmd *cobra.Command, tableID int64, output string) error {
	registry, err := tags.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to open tag registry: %w", err)
	}
	usage, err := tags.CountTagUsage()
	if err != nil {
		return fmt.Errorf("failed to count tag usage: %w", err)
	}

	var names []string
	if tableID != 0 {
		table, err := files.ReadTable(tableID)
		if err != nil {
			return err
		}
		names = table.Tags
	} else {
		seen := make(map[string]bool)
		for _, tag := range registry.Tags() {
			seen[tag.Name] = true
			names = append(names, tag.Name)
		}
		for name := range usage {
			if !seen[name] {
				names = append(names, name)
			}
		}
		sort.Strings(names)
	}

	result := TagListResult{TableID: tableID, Tags: []TagItem{}}
	for _, name := range names {
		result.Tags = append(result.Tags, TagItem{
			Name:   name,
			Color:  registry.Color(name),
			Tables: usage[name],
		})
	}
	result.Count = len(result.Tags)

	out := cmd.OutOrStdout()
	if output != string(cli.FormatText) {
		return cli.OutputResults(out, output, result)
	}

	if result.Count == 0 {
		cli.PrintInfo(out, "No tags found")
		return nil
	}

	tf := cli.NewTableFormatter(out)
	tf.Header("TAG", "TABLES", "COLOR")
	for _, item := range result.Tags {
		tf.Row(cli.ColorizeTag(item.Name, item.Color), strconv.Itoa(item.Tables), item.Color)
	}
	return tf.Flush()
}

func newTagPruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "prune",
		Short:   "Drop registry entries for tags no table carries",
		Args:    cobra.NoArgs,
		PreRunE: cli.RequireProject,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tags.NewRegistry()
			if err != nil {
				return fmt.Errorf("failed to open tag registry: %w", err)
			}
			usage, err := tags.CountTagUsage()
			if err != nil {
				return fmt.Errorf("failed to count tag usage: %w", err)
			}

			removed, err := registry.Prune(usage)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				cli.PrintInfo(out, "No unused tags")
				return nil
			}
			for _, name := range removed {
				cli.PrintSuccess(out, "Removed unused tag %s", name)
			}
			return nil
		},
	}
}
