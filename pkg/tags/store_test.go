package tags

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

func newTestStore(t *testing.T, tables ...*models.Table) *Store {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, files.InitProjectStructure())
	for _, table := range tables {
		require.NoError(t, files.WriteTable(table))
	}

	store, err := NewStore(nil)
	require.NoError(t, err)
	return store
}

func TestStore_CreateTableTag(t *testing.T) {
	store := newTestStore(t, &models.Table{ID: 1, Name: "orders", Tags: []string{"gold"}})

	require.NoError(t, store.CreateTableTag(context.Background(), 1, "pii"))

	tags, err := store.TableTags(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"gold", "pii"}, tags)

	_, registered := store.Registry().Lookup("pii")
	assert.True(t, registered)
}

func TestStore_CreateTableTag_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tableID int64
		tag     string
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "duplicate",
			tableID: 1,
			tag:     "gold",
			ctx:     context.Background,
			wantErr: models.ErrDuplicateTag,
		},
		{
			name:    "invalid name",
			tableID: 1,
			tag:     "no spaces",
			ctx:     context.Background,
			wantErr: models.ErrInvalidTagCharacter,
		},
		{
			name:    "missing table",
			tableID: 99,
			tag:     "pii",
			ctx:     context.Background,
			wantErr: models.ErrTableNotFound,
		},
		{
			name:    "cancelled",
			tableID: 1,
			tag:     "pii",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, &models.Table{ID: 1, Name: "orders", Tags: []string{"gold"}})

			err := store.CreateTableTag(tt.ctx(), tt.tableID, tt.tag)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestStore_CreateTableTag_CaseSensitiveDuplicate(t *testing.T) {
	store := newTestStore(t, &models.Table{ID: 1, Name: "orders", Tags: []string{"gold"}})

	require.NoError(t, store.CreateTableTag(context.Background(), 1, "Gold"))

	tags, _ := store.TableTags(1)
	assert.Equal(t, []string{"gold", "Gold"}, tags)
}

func TestStore_CreateTableTag_Concurrent(t *testing.T) {
	store := newTestStore(t, &models.Table{ID: 1, Name: "orders"})

	names := []string{"a1", "b2", "c3", "d4", "e5", "f6"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			store.CreateTableTag(context.Background(), 1, name)
		}(name)
	}
	wg.Wait()

	tags, err := store.TableTags(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, names, tags)
}

func TestStore_RemoveTableTag(t *testing.T) {
	store := newTestStore(t, &models.Table{ID: 1, Name: "orders", Tags: []string{"gold", "pii"}})

	require.NoError(t, store.RemoveTableTag(1, "gold"))
	tags, _ := store.TableTags(1)
	assert.Equal(t, []string{"pii"}, tags)

	assert.Error(t, store.RemoveTableTag(1, "gold"))
}

func TestStore_KnownTags(t *testing.T) {
	store := newTestStore(t,
		&models.Table{ID: 1, Name: "orders", Tags: []string{"gold", "pii"}},
		&models.Table{ID: 2, Name: "users", Tags: []string{"pii", "core"}},
	)
	require.NoError(t, store.Registry().Put(models.Tag{Name: "archived"}))

	assert.Equal(t, []string{"archived", "core", "gold", "pii"}, store.KnownTags())
}

func TestCountTagUsage(t *testing.T) {
	newTestStore(t,
		&models.Table{ID: 1, Name: "orders", Tags: []string{"gold", "pii"}},
		&models.Table{ID: 2, Name: "users", Tags: []string{"pii"}},
	)

	stats, err := CountTagUsage()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"gold": 1, "pii": 2}, stats)

	ids, err := TablesWithTag("pii")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}
