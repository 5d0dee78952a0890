package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/cli"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new catalog project",
		Long:  `Creates the .catalog folder structure and a default settings file in the current directory`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine current directory: %w", err)
			}
			out := cmd.OutOrStdout()
			cli.PrintInfo(out, "Initializing catalog in %s", cwd)

			if err := files.InitProjectStructure(); err != nil {
				return fmt.Errorf("failed to initialize project structure: %w", err)
			}
			cli.PrintSuccess(out, "Created %s folder structure", files.CatalogDir)

			settingsPath := filepath.Join(files.CatalogDir, files.SettingsFile)
			if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
				if err := files.WriteSettings(models.DefaultSettings()); err != nil {
					return err
				}
				cli.PrintSuccess(out, "Wrote default %s", files.SettingsFile)
			}

			cli.PrintInfo(out, "Run 'catalog' to start the interactive TUI")
			return nil
		},
	}
}
