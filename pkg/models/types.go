package models

import (
	"errors"
	"time"
)

var ErrTableNotFound = errors.New("table not found")

// Column types inferred by table import. Any other type string is a
// custom type and is used verbatim in generated DDL.
const (
	ColumnString   = "string"
	ColumnInteger  = "integer"
	ColumnFloat    = "float"
	ColumnBoolean  = "boolean"
	ColumnDatetime = "datetime"
)

// IsImportColumnType reports whether t is one of the inferred types
func IsImportColumnType(t string) bool {
	switch t {
	case ColumnString, ColumnInteger, ColumnFloat, ColumnBoolean, ColumnDatetime:
		return true
	}
	return false
}

// Column describes one column of a cataloged table
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Table is the catalog entry for a single table. Tables are identified
// by a numeric id; the file on disk is named after it.
type Table struct {
	ID          int64    `yaml:"id"`
	Schema      string   `yaml:"schema"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Columns     []Column `yaml:"columns,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// FullName returns schema.name, or just the name when no schema is set
func (t *Table) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Query is a saved SQL document
type Query struct {
	Name     string
	Path     string
	Content  string
	Modified time.Time
}
