package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

const TagsRegistryFile = "tags.yaml"

// Registry holds per-tag metadata (color, description) shared by every
// table in the project. Table files carry only tag names.
type Registry struct {
	mu   sync.RWMutex
	path string
	tags map[string]models.Tag
}

// NewRegistry opens the project registry. A missing file is an empty
// registry.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		path: filepath.Join(files.CatalogDir, TagsRegistryFile),
		tags: make(map[string]models.Tag),
	}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Load replaces the in-memory entries with the file contents
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read tag registry: %w", err)
	}

	var doc models.TagRegistry
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse tag registry: %w", err)
	}

	loaded := make(map[string]models.Tag, len(doc.Tags))
	for _, tag := range doc.Tags {
		loaded[tag.Name] = tag
	}

	r.mu.Lock()
	r.tags = loaded
	r.mu.Unlock()
	return nil
}

// Save writes the registry sorted by name
func (r *Registry) Save() error {
	data, err := yaml.Marshal(models.TagRegistry{Tags: r.Tags()})
	if err != nil {
		return fmt.Errorf("failed to marshal tag registry: %w", err)
	}
	if err := files.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to save tag registry: %w", err)
	}
	return nil
}

// Lookup returns the entry for an exact tag name
func (r *Registry) Lookup(name string) (models.Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[name]
	return tag, ok
}

// Put adds or replaces an entry in memory
func (r *Registry) Put(tag models.Tag) error {
	if err := models.ValidateTagName(tag.Name); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}
	r.mu.Lock()
	r.tags[tag.Name] = tag
	r.mu.Unlock()
	return nil
}

// Delete drops an entry in memory
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[name]; !ok {
		return fmt.Errorf("tag '%s' not found in registry", name)
	}
	delete(r.tags, name)
	return nil
}

// Tags returns a sorted copy of every entry
func (r *Registry) Tags() []models.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

// Register makes sure name has an entry, giving new tags their palette
// color, and persists the registry when it changed
func (r *Registry) Register(name string) (models.Tag, error) {
	if tag, ok := r.Lookup(name); ok {
		return tag, nil
	}

	tag := models.Tag{Name: name, Color: models.TagColor(name, "")}
	if err := r.Put(tag); err != nil {
		return models.Tag{}, err
	}
	if err := r.Save(); err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

// Prune removes entries for tags no table carries and saves the
// registry. It returns the removed names.
func (r *Registry) Prune(usage map[string]int) ([]string, error) {
	r.mu.Lock()
	var removed []string
	for name := range r.tags {
		if usage[name] == 0 {
			delete(r.tags, name)
			removed = append(removed, name)
		}
	}
	r.mu.Unlock()

	sort.Strings(removed)
	if len(removed) == 0 {
		return removed, nil
	}
	return removed, r.Save()
}

// Color returns the display color for a tag
func (r *Registry) Color(name string) string {
	tag, _ := r.Lookup(name)
	return models.TagColor(name, tag.Color)
}
