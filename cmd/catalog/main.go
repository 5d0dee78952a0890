package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/cmd/commands"
	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/tags"
	"github.com/pluqqy/pluqqy-catalog/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Terminal data catalog for tables, tags and saved queries",
	Long: `Catalog keeps table metadata, tags and saved SQL queries as plain
files under .catalog and provides a TUI to browse tables, tag them and
edit queries with search and replace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !files.ProjectExists() {
			return fmt.Errorf("no %s directory found in the current directory. Run 'catalog init' first", files.CatalogDir)
		}
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of catalog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "catalog version %s\n", version)
	},
}

func runTUI() error {
	cc := cli.NewCommandContext()
	settings := cc.LoadSettingsWithDefault()

	// Warnings and errors also show up in the status bar
	status := tui.NewStatusLogHandler(slog.LevelWarn)
	logger, closeLog, err := cc.OpenLogger(status)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := tags.NewStore(logger)
	if err != nil {
		return fmt.Errorf("failed to open tag registry: %w", err)
	}

	p := tea.NewProgram(tui.NewApp(store, settings, logger), tea.WithAltScreen())
	status.SetProgram(p)
	if err := cc.SettingsError(); err != nil {
		// Send blocks until the program starts reading
		go p.Send(tui.StatusMsg(fmt.Sprintf("× Using default settings: %v", err)))
	}

	logger.Info("starting catalog", "version", version)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewTagCommand())
	rootCmd.AddCommand(commands.NewFindCommand())
	rootCmd.AddCommand(commands.NewReplaceCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
	rootCmd.AddCommand(commands.NewDDLCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
