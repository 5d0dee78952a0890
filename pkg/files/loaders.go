package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// ReadSettings loads settings.yaml, falling back to defaults when the
// file does not exist
func ReadSettings() (*models.Settings, error) {
	path := filepath.Join(CatalogDir, SettingsFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings models.Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	settings.ApplyDefaults()

	return &settings, nil
}

func WriteSettings(settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := WriteFileAtomic(filepath.Join(CatalogDir, SettingsFile), content); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// LoadQueryOrEmpty reads a query, returning an empty document when it
// has not been saved yet
func LoadQueryOrEmpty(name string) (*models.Query, error) {
	query, err := ReadQuery(name)
	if err == nil {
		return query, nil
	}
	if _, statErr := os.Stat(queryPath(name)); os.IsNotExist(statErr) {
		return &models.Query{Name: name, Path: queryPath(name)}, nil
	}
	return nil, err
}
