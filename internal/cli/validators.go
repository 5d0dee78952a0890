package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ParseTableID parses a positive numeric table id
func ParseTableID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid table id: %s (must be a positive number)", arg)
	}
	return id, nil
}

// ValidateQueryName validates a saved query name
func ValidateQueryName(name string) error {
	if name == "" {
		return fmt.Errorf("query name cannot be empty")
	}

	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("query name contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateTagArg checks a tag given on the command line
func ValidateTagArg(name string) error {
	if err := models.ValidateTagName(name); err != nil {
		return fmt.Errorf("invalid tag %q: %w", name, err)
	}
	return nil
}
