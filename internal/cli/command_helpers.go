package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-catalog/internal/logging"
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
	settingsErr error
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{ProjectPath: files.CatalogDir}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'catalog init' first", files.CatalogDir)
	}
	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns defaults on error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}
	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}
	c.Settings = settings
	c.settingsErr = err
	return settings
}

// SettingsError is the error that made LoadSettingsWithDefault fall
// back to defaults, if any
func (c *CommandContext) SettingsError() error {
	return c.settingsErr
}

// OpenLogger opens the project log plus any extra handlers. A settings
// file that could not be loaded is reported on the new logger.
func (c *CommandContext) OpenLogger(extra ...slog.Handler) (*slog.Logger, func() error, error) {
	settings := c.LoadSettingsWithDefault()
	logger, closeLog, err := logging.Setup(settings.Log, extra...)
	if err != nil {
		return nil, nil, err
	}
	if c.settingsErr != nil {
		logger.Warn("using default settings", "error", c.settingsErr)
	}
	return logger, closeLog, nil
}

// Logger is OpenLogger for commands that run without a log file when it
// cannot be opened. The returned close func is never nil.
func (c *CommandContext) Logger() (*slog.Logger, func() error) {
	logger, closeLog, err := c.OpenLogger()
	if err != nil {
		return slog.New(slog.DiscardHandler), func() error { return nil }
	}
	return logger, closeLog
}

// RequireProject is a PreRunE that fails outside a catalog project
func RequireProject(cmd *cobra.Command, args []string) error {
	return NewCommandContext().ValidateProject()
}
