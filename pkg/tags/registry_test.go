package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, files.InitProjectStructure())

	registry, err := NewRegistry()
	require.NoError(t, err)
	return registry
}

func TestRegistry_Empty(t *testing.T) {
	registry := newTestRegistry(t)
	assert.Empty(t, registry.Tags())

	_, ok := registry.Lookup("pii")
	assert.False(t, ok)
	assert.Equal(t, models.TagColor("pii", ""), registry.Color("pii"))
}

func TestRegistry_PutAndLookup(t *testing.T) {
	registry := newTestRegistry(t)

	require.NoError(t, registry.Put(models.Tag{Name: "Finance", Color: "#3498db"}))
	tag, ok := registry.Lookup("Finance")
	require.True(t, ok)
	assert.Equal(t, "#3498db", tag.Color)
	assert.Equal(t, "#3498db", registry.Color("Finance"))

	// Lookups are exact
	_, ok = registry.Lookup("finance")
	assert.False(t, ok)

	assert.Error(t, registry.Put(models.Tag{Name: "not valid"}))
}

func TestRegistry_Delete(t *testing.T) {
	registry := newTestRegistry(t)
	require.NoError(t, registry.Put(models.Tag{Name: "pii"}))

	assert.NoError(t, registry.Delete("pii"))
	assert.Error(t, registry.Delete("pii"))
}

func TestRegistry_RegisterPersists(t *testing.T) {
	registry := newTestRegistry(t)

	tag, err := registry.Register("gold")
	require.NoError(t, err)
	assert.Equal(t, models.TagColor("gold", ""), tag.Color)

	_, err = os.Stat(filepath.Join(files.CatalogDir, TagsRegistryFile))
	require.NoError(t, err)

	reloaded, err := NewRegistry()
	require.NoError(t, err)
	got, ok := reloaded.Lookup("gold")
	require.True(t, ok)
	assert.Equal(t, tag, got)

	// Existing entries keep their color
	require.NoError(t, reloaded.Put(models.Tag{Name: "gold", Color: "#ffd700"}))
	again, err := reloaded.Register("gold")
	require.NoError(t, err)
	assert.Equal(t, "#ffd700", again.Color)
}

func TestRegistry_TagsSorted(t *testing.T) {
	registry := newTestRegistry(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, registry.Put(models.Tag{Name: name}))
	}

	var names []string
	for _, tag := range registry.Tags() {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestRegistry_Prune(t *testing.T) {
	registry := newTestRegistry(t)
	for _, name := range []string{"pii", "stale", "old"} {
		_, err := registry.Register(name)
		require.NoError(t, err)
	}

	removed, err := registry.Prune(map[string]int{"pii": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "stale"}, removed)

	reloaded, err := NewRegistry()
	require.NoError(t, err)
	require.Len(t, reloaded.Tags(), 1)
	assert.Equal(t, "pii", reloaded.Tags()[0].Name)

	removed, err = registry.Prune(map[string]int{"pii": 1})
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRegistry_CorruptFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, files.InitProjectStructure())

	path := filepath.Join(files.CatalogDir, TagsRegistryFile)
	require.NoError(t, os.WriteFile(path, []byte("tags: [unclosed"), 0644))

	_, err := NewRegistry()
	assert.Error(t, err)
}
