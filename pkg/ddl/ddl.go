// Package ddl renders CREATE TABLE statements for cataloged tables so
// their data files can be mounted as external tables.
package ddl

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// Language is a SQL dialect DDL can be generated for
type Language string

const (
	Hive     Language = "hive"
	SparkSQL Language = "sparksql"
)

// Format is the storage format of the files behind the table
type Format string

const (
	FormatCSV     Format = "CSV"
	FormatParquet Format = "PARQUET"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrNoColumns           = errors.New("table has no columns")
	ErrNoLocation          = errors.New("location is required")
)

// Options selects the dialect and storage of a generated statement
type Options struct {
	Language Language
	Format   Format
	Location string
}

// dialect renders the parts of a CREATE TABLE statement that differ
// between languages
type dialect interface {
	createPrefix(table string) string
	columnDef(column models.Column) string
	storage(format Format, location string) ([]string, error)
}

// SparkSQL accepts Hive DDL unchanged
var dialects = map[Language]dialect{
	Hive:     hiveDialect{},
	SparkSQL: hiveDialect{},
}

// Languages lists the supported languages in name order
func Languages() []string {
	names := make([]string, 0, len(dialects))
	for lang := range dialects {
		names = append(names, string(lang))
	}
	slices.Sort(names)
	return names
}

// ParseLanguage resolves a language name, ignoring case
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dialects[lang]; !ok {
		return "", fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedLanguage, s, strings.Join(Languages(), ", "))
	}
	return lang, nil
}

// ParseFormat resolves a file format name, ignoring case
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToUpper(strings.TrimSpace(s)))
	switch format {
	case FormatCSV, FormatParquet:
		return format, nil
	}
	return "", fmt.Errorf("%w %q (supported: csv, parquet)", ErrUnsupportedFormat, s)
}

// CreateTable renders the CREATE TABLE statement for table
func CreateTable(table *models.Table, opts Options) (string, error) {
	d, ok := dialects[opts.Language]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedLanguage, opts.Language)
	}
	if len(table.Columns) == 0 {
		return "", fmt.Errorf("table %s: %w", table.FullName(), ErrNoColumns)
	}
	if strings.TrimSpace(opts.Location) == "" {
		return "", ErrNoLocation
	}

	storage, err := d.storage(opts.Format, opts.Location)
	if err != nil {
		return "", err
	}

	defs := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		defs[i] = "  " + d.columnDef(column)
	}

	var b strings.Builder
	b.WriteString(d.createPrefix(table.FullName()))
	b.WriteString(" (\n")
	b.WriteString(strings.Join(defs, ",\n"))
	b.WriteString("\n)\n")
	b.WriteString(strings.Join(storage, "\n"))
	return b.String(), nil
}
