package tags

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// Store is the shared owner of table tags. Widgets hand it creation
// requests and never see the outcome; failures are logged here.
type Store struct {
	mu       sync.Mutex
	registry *Registry
	logger   *slog.Logger
}

// NewStore opens the project tag registry. A nil logger discards logs.
func NewStore(logger *slog.Logger) (*Store, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		registry: registry,
		logger:   logger.With("component", "tags"),
	}, nil
}

// Registry exposes the tag metadata registry
func (s *Store) Registry() *Registry {
	return s.registry
}

// TableTags returns the tags currently attached to a table
func (s *Store) TableTags(tableID int64) ([]string, error) {
	table, err := files.ReadTable(tableID)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(table.Tags))
	copy(tags, table.Tags)
	return tags, nil
}

// CreateTableTag attaches a new tag to a table and registers it. Table
// file writes are serialized so concurrent requests cannot drop tags.
func (s *Store) CreateTableTag(ctx context.Context, tableID int64, name string) error {
	err := s.createTableTag(ctx, tableID, name)
	if err != nil {
		s.logger.Warn("failed to create table tag", "table_id", tableID, "tag", name, "error", err)
		return err
	}
	s.logger.Info("created table tag", "table_id", tableID, "tag", name)
	return nil
}

func (s *Store) createTableTag(ctx context.Context, tableID int64, name string) error {
	if err := models.ValidateTagName(name); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	table, err := files.ReadTable(tableID)
	if err != nil {
		return err
	}

	if models.HasExactTag(table.Tags, name) {
		return fmt.Errorf("tag %q on table %d: %w", name, tableID, models.ErrDuplicateTag)
	}

	table.Tags = append(table.Tags, name)
	if err := files.WriteTable(table); err != nil {
		return err
	}

	if _, err := s.registry.Register(name); err != nil {
		// The table already carries the tag; a missing registry entry only
		// costs the custom color.
		s.logger.Warn("failed to register tag", "tag", name, "error", err)
	}

	return nil
}

// RemoveTableTag detaches a tag from a table. The registry entry stays
// so other tables keep their color.
func (s *Store) RemoveTableTag(tableID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := files.ReadTable(tableID)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(table.Tags))
	for _, tag := range table.Tags {
		if tag != name {
			kept = append(kept, tag)
		}
	}
	if len(kept) == len(table.Tags) {
		return fmt.Errorf("tag '%s' not found on table %d", name, tableID)
	}

	table.Tags = kept
	return files.WriteTable(table)
}

// KnownTags returns every tag name in the registry or on any table
func (s *Store) KnownTags() []string {
	seen := make(map[string]bool)
	var names []string

	for _, tag := range s.registry.Tags() {
		if !seen[tag.Name] {
			seen[tag.Name] = true
			names = append(names, tag.Name)
		}
	}

	stats, err := CountTagUsage()
	if err != nil {
		s.logger.Debug("failed to count tag usage", "error", err)
	}
	for name := range stats {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

// Color returns the display color of a tag
func (s *Store) Color(name string) string {
	return s.registry.Color(name)
}
