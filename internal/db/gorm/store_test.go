package gorm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/catalog/catalogtest"
	"github.com/thebtf/herbmind/pkg/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(Config{
		DSN:      "sqlite://" + filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	store := testStore(t)

	if err := store.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	assert.Equal(t, "sqlite", store.Dialect())

	var journalMode string
	if err := store.DB.Raw("PRAGMA journal_mode").Scan(&journalMode).Error; err != nil {
		t.Fatalf("query journal_mode failed: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected WAL mode, got %q", journalMode)
	}

	for _, table := range []string{"symptoms", "remedies", "symptom_relationships", "catalog_imports"} {
		if !store.DB.Migrator().HasTable(table) {
			t.Errorf("table %q does not exist", table)
		}
	}
}

func TestMigrationIdempotency(t *testing.T) {
	cfg := Config{
		DSN:      filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: logger.Silent,
	}

	store1, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore (first) failed: %v", err)
	}
	store1.Close()

	store2, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore (second) failed: %v", err)
	}
	defer store2.Close()
}

func TestNewStore_EmptyDSN(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)
}

func TestCatalogStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := NewCatalogStore(testStore(t))

	original, err := catalog.New(catalogtest.Symptoms(), catalogtest.Remedies(), []models.Relationship{
		{SymptomID: "S003", Related: []string{"S004"}},
	})
	require.NoError(t, err)

	rec, err := cs.Import(ctx, original, "fixture")
	require.NoError(t, err)
	assert.Equal(t, 9, rec.Symptoms)
	assert.Equal(t, 8, rec.Remedies)
	assert.Equal(t, 1, rec.Relationships)
	assert.NotZero(t, rec.ImportedAtEpoch)

	loaded, err := cs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.Symptoms, loaded.Symptoms)
	assert.Equal(t, original.Remedies, loaded.Remedies)
	assert.Equal(t, original.Relationships, loaded.Relationships)

	entry, ok := loaded.LookupTerm("tummy ache")
	require.True(t, ok)
	assert.Equal(t, "S004", entry.ID)

	last, err := cs.LastImport(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "fixture", last.Source)
}

func TestCatalogStore_ImportReplaces(t *testing.T) {
	ctx := context.Background()
	cs := NewCatalogStore(testStore(t))

	_, err := cs.Import(ctx, catalogtest.New(t), "first")
	require.NoError(t, err)

	smaller, err := catalog.New(
		[]models.SymptomEntry{{ID: "S1", Name: "hiccups", SuitableRemedies: []string{"R1"}}},
		[]models.RemedyEntry{{ID: "R1", Name: "Water", SafetyLevel: models.SafetyHigh}},
		nil,
	)
	require.NoError(t, err)
	_, err = cs.Import(ctx, smaller, "second")
	require.NoError(t, err)

	loaded, err := cs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Symptoms, 1)
	require.Len(t, loaded.Remedies, 1)
	assert.Equal(t, "hiccups", loaded.Symptoms[0].Name)
	assert.Empty(t, loaded.Relationships)

	last, err := cs.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", last.Source)
}

func TestCatalogStore_EmptyLoad(t *testing.T) {
	cs := NewCatalogStore(testStore(t))

	_, err := cs.Load(context.Background())
	var dsErr *catalog.DatasetError
	require.True(t, errors.As(err, &dsErr))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	last, err := cs.LastImport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestCatalogStore_AsCacheSource(t *testing.T) {
	ctx := context.Background()
	cs := NewCatalogStore(testStore(t))
	_, err := cs.Import(ctx, catalogtest.New(t), "fixture")
	require.NoError(t, err)

	cache := catalog.NewCache(cs)
	first, err := cache.Get(ctx)
	require.NoError(t, err)
	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
