// Package upload reads delimited data files, infers their column types
// and turns them into catalog tables.
package upload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

const (
	// DefaultSampleRows is how many data rows feed type inference
	DefaultSampleRows = 1000
	// PreviewRows is how many data rows a preview keeps for display
	PreviewRows = 5
)

var ErrEmptyFile = errors.New("file has no rows")

// datetimeLayouts are the value formats recognized as datetime columns
var datetimeLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Options controls how a file is parsed
type Options struct {
	Delimiter  rune
	NoHeader   bool
	SampleRows int
}

// DefaultOptions reads comma separated files with a header row
func DefaultOptions() Options {
	return Options{Delimiter: ',', SampleRows: DefaultSampleRows}
}

// Preview is the inferred shape of a data file
type Preview struct {
	Columns  []models.Column `json:"columns" yaml:"columns"`
	Rows     [][]string      `json:"rows" yaml:"rows"`
	RowCount int             `json:"row_count" yaml:"row_count"`
}

// ReadPreview parses r and infers a type for every column from the
// first SampleRows data rows. Every row must have the same number of
// fields.
func ReadPreview(r io.Reader, opts Options) (*Preview, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.SampleRows <= 0 {
		opts.SampleRows = DefaultSampleRows
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	var (
		header  []string
		samples [][]string
		preview = &Preview{Rows: [][]string{}}
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse file: %w", err)
		}

		if header == nil {
			if opts.NoHeader {
				header = make([]string, len(record))
			} else {
				header = record
				continue
			}
		}

		preview.RowCount++
		if len(preview.Rows) < PreviewRows {
			preview.Rows = append(preview.Rows, record)
		}
		if len(samples) < opts.SampleRows {
			samples = append(samples, record)
		}
	}
	if header == nil {
		return nil, ErrEmptyFile
	}

	names := columnNames(header)
	preview.Columns = make([]models.Column, len(names))
	values := make([]string, len(samples))
	for i, name := range names {
		for j, row := range samples {
			values[j] = row[i]
		}
		preview.Columns[i] = models.Column{Name: name, Type: InferType(values)}
	}
	return preview, nil
}

// InferType picks the narrowest column type every non-empty value fits.
// A column with no values is a string column.
func InferType(values []string) string {
	candidates := []struct {
		typ  string
		fits func(string) bool
	}{
		{models.ColumnInteger, isInteger},
		{models.ColumnFloat, isFloat},
		{models.ColumnBoolean, isBoolean},
		{models.ColumnDatetime, isDatetime},
	}

	seen := false
	for _, candidate := range candidates {
		fits := true
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			seen = true
			if !candidate.fits(v) {
				fits = false
				break
			}
		}
		if !seen {
			return models.ColumnString
		}
		if fits {
			return candidate.typ
		}
	}
	return models.ColumnString
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloat(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func isBoolean(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

func isDatetime(v string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// columnNames normalizes header cells into unique column names. Blank
// cells become col_<position>.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]int, len(header))
	for i, cell := range header {
		name := Identifier(cell)
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		used[name]++
		names[i] = name
	}
	return names
}

// Identifier lowercases s and replaces every run of characters other
// than letters and digits with a single underscore
func Identifier(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// TableName derives a table name from a file path
func TableName(path string) string {
	base := filepath.Base(path)
	return Identifier(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Table builds the catalog entry for an imported file
func (p *Preview) Table(id int64, schema, name string) *models.Table {
	columns := make([]models.Column, len(p.Columns))
	copy(columns, p.Columns)
	return &models.Table{
		ID:      id,
		Schema:  schema,
		Name:    name,
		Columns: columns,
	}
}
