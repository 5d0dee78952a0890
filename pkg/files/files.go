package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

const (
	CatalogDir       = ".catalog"
	TablesDir        = "tables"
	QueriesDir       = "queries"
	SettingsFile     = "settings.yaml"
	QueryExtension   = ".sql"
	TableExtension   = ".yaml"
	DefaultQueryFile = "scratch.sql"
)

func InitProjectStructure() error {
	dirs := []string{
		CatalogDir,
		filepath.Join(CatalogDir, TablesDir),
		filepath.Join(CatalogDir, QueriesDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the current directory holds a catalog
func ProjectExists() bool {
	info, err := os.Stat(CatalogDir)
	return err == nil && info.IsDir()
}

func tablePath(id int64) string {
	return filepath.Join(CatalogDir, TablesDir, strconv.FormatInt(id, 10)+TableExtension)
}

func ReadTable(id int64) (*models.Table, error) {
	content, err := os.ReadFile(tablePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("table %d: %w", id, models.ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to read table %d: %w", id, err)
	}

	var table models.Table
	if err := yaml.Unmarshal(content, &table); err != nil {
		return nil, fmt.Errorf("failed to parse table YAML %d: %w", id, err)
	}
	table.ID = id

	return &table, nil
}

func WriteTable(table *models.Table) error {
	content, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table to YAML: %w", err)
	}

	if err := WriteFileAtomic(tablePath(table.ID), content); err != nil {
		return fmt.Errorf("failed to write table %d: %w", table.ID, err)
	}

	return nil
}

// ListTables returns the ids of all cataloged tables in ascending order
func ListTables() ([]int64, error) {
	entries, err := os.ReadDir(filepath.Join(CatalogDir, TablesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	ids := []int64{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), TableExtension) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(entry.Name(), TableExtension), 10, 64)
		if err != nil {
			continue // Not a table file
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// NextTableID returns one more than the highest table id in use
func NextTableID() (int64, error) {
	ids, err := ListTables()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 1, nil
	}
	return ids[len(ids)-1] + 1, nil
}

// TableExists reports whether a table file with id is present
func TableExists(id int64) bool {
	_, err := os.Stat(tablePath(id))
	return err == nil
}

// LoadTables reads every table, skipping files that fail to parse
func LoadTables() ([]*models.Table, error) {
	ids, err := ListTables()
	if err != nil {
		return nil, err
	}

	tables := make([]*models.Table, 0, len(ids))
	for _, id := range ids {
		table, err := ReadTable(id)
		if err != nil {
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func queryPath(name string) string {
	if !strings.HasSuffix(name, QueryExtension) {
		name += QueryExtension
	}
	return filepath.Join(CatalogDir, QueriesDir, name)
}

func ReadQuery(name string) (*models.Query, error) {
	path := queryPath(name)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query %s: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat query %s: %w", name, err)
	}

	return &models.Query{
		Name:     strings.TrimSuffix(filepath.Base(path), QueryExtension),
		Path:     path,
		Content:  string(content),
		Modified: info.ModTime(),
	}, nil
}

func WriteQuery(name string, content string) error {
	if err := WriteFileAtomic(queryPath(name), []byte(content)); err != nil {
		return fmt.Errorf("failed to write query %s: %w", name, err)
	}
	return nil
}

// ListQueries returns query names without extension, sorted
func ListQueries() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(CatalogDir, QueriesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}

	var queries []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), QueryExtension) {
			queries = append(queries, strings.TrimSuffix(entry.Name(), QueryExtension))
		}
	}

	sort.Strings(queries)
	return queries, nil
}

// WriteFileAtomic writes through a temp file and a rename so readers
// never observe a partially written file
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile) // Clean up temp file
		return err
	}

	return nil
}
