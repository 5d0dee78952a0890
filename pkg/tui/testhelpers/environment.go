package testhelpers

import (
	"testing"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// TestEnvironment is a catalog project in a temporary working directory
type TestEnvironment struct {
	t       *testing.T
	TempDir string
}

// NewTestEnvironment changes into a fresh temporary directory and
// initializes the project structure there. The previous working
// directory is restored when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("Failed to init project structure: %v", err)
	}

	return &TestEnvironment{t: t, TempDir: dir}
}

// CreateTable writes a table file and returns it
func (e *TestEnvironment) CreateTable(id int64, schema, name string, tags ...string) *models.Table {
	e.t.Helper()

	table := &models.Table{
		ID:          id,
		Schema:      schema,
		Name:        name,
		Description: "Table " + name,
		Columns: []models.Column{
			{Name: "id", Type: models.ColumnInteger},
		},
		Tags: tags,
	}
	if err := files.WriteTable(table); err != nil {
		e.t.Fatalf("Failed to write table: %v", err)
	}
	return table
}

// CreateQuery writes a saved query
func (e *TestEnvironment) CreateQuery(name, content string) {
	e.t.Helper()

	if err := files.WriteQuery(name, content); err != nil {
		e.t.Fatalf("Failed to write query: %v", err)
	}
}
