package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/catalog/catalogtest"
	"github.com/thebtf/herbmind/pkg/models"
)

func TestNew_Indexes(t *testing.T) {
	cat := catalogtest.New(t)

	s, ok := cat.LookupTerm("  Head   Ache ")
	require.True(t, ok)
	assert.Equal(t, "S001", s.ID)

	_, ok = cat.LookupTerm("toothache")
	assert.False(t, ok)

	r, ok := cat.Remedy("R003")
	require.True(t, ok)
	assert.Equal(t, "Ginger", r.Name)

	_, ok = cat.Symptom("S999")
	assert.False(t, ok)

	terms := cat.Terms()
	assert.Equal(t, "headache", terms[0])
	assert.Contains(t, terms, "dry cough")
	assert.Contains(t, terms, "backache")
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []models.SymptomEntry
		remedies []models.RemedyEntry
		rels     []models.Relationship
	}{
		{
			name:     "duplicate symptom id",
			symptoms: []models.SymptomEntry{{ID: "S1", Name: "a"}, {ID: "S1", Name: "b"}},
		},
		{
			name:     "alias shared by two symptoms",
			symptoms: []models.SymptomEntry{{ID: "S1", Name: "a", Aliases: []string{"x"}}, {ID: "S2", Name: "X"}},
		},
		{
			name:     "duplicate remedy id",
			remedies: []models.RemedyEntry{{ID: "R1", Name: "a"}, {ID: "R1", Name: "b"}},
		},
		{
			name:     "remedy with bad safety level",
			remedies: []models.RemedyEntry{{ID: "R1", Name: "a", SafetyLevel: "risky"}},
		},
		{
			name: "relationship without primary",
			rels: []models.Relationship{{Related: []string{"S1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.symptoms, tt.remedies, tt.rels)
			assert.Error(t, err)
		})
	}
}

func TestNew_AliasEqualToOwnName(t *testing.T) {
	_, err := catalog.New([]models.SymptomEntry{{ID: "S1", Name: "Cough", Aliases: []string{"cough"}}}, nil, nil)
	assert.NoError(t, err)
}

func TestSearchRemediesByIndication(t *testing.T) {
	cat := catalogtest.New(t)

	found := cat.SearchRemediesByIndication("Headache")
	require.Len(t, found, 2)
	assert.Equal(t, "R001", found[0].ID)
	assert.Equal(t, "R003", found[1].ID)

	assert.Empty(t, cat.SearchRemediesByIndication("   "))
	assert.Empty(t, cat.SearchRemediesByIndication("hiccups"))
}

func TestKeywordAggregation(t *testing.T) {
	cat := catalogtest.New(t)

	kw := cat.SeverityKeywords()
	assert.Equal(t, []string{"mild", "slight", "dull"}, kw[models.SeverityMild])
	assert.Empty(t, kw[models.SeverityModerate])
	assert.Empty(t, cat.EmergencyKeywords())

	cat2, err := catalog.New([]models.SymptomEntry{
		{ID: "S1", Name: "a", EmergencyFlags: []string{"Chest Pain", "fainting"}},
		{ID: "S2", Name: "b", EmergencyFlags: []string{"chest pain"}},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"chest pain", "fainting"}, cat2.EmergencyKeywords())
}

func TestAllRelationships(t *testing.T) {
	cat, err := catalog.New(catalogtest.Symptoms(), nil, []models.Relationship{
		{SymptomID: "S003", Related: []string{"S004"}},
	})
	require.NoError(t, err)

	rels := cat.AllRelationships()
	require.Len(t, rels, 2)
	assert.Equal(t, "S005", rels[0].SymptomID)
	assert.Equal(t, "S003", rels[1].SymptomID)
}

func TestFileSource_Load(t *testing.T) {
	symptomsPath, remediesPath := catalogtest.WriteFiles(t, t.TempDir())

	cat, err := catalog.FileSource{SymptomsPath: symptomsPath, RemediesPath: remediesPath}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Symptoms, len(catalogtest.Symptoms()))
	assert.Len(t, cat.Remedies, len(catalogtest.Remedies()))
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	symptomsPath, remediesPath := catalogtest.WriteFiles(t, dir)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[{"id": "S1", "name": `), 0o600))

	wrongShape := filepath.Join(dir, "shape.json")
	require.NoError(t, os.WriteFile(wrongShape, []byte(`[{"id": "S1", "name": "a", "aliases": "not-a-list"}]`), 0o600))

	tests := []struct {
		name     string
		symptoms string
		remedies string
		wantPath string
	}{
		{name: "missing symptoms", symptoms: filepath.Join(dir, "nope.json"), remedies: remediesPath, wantPath: filepath.Join(dir, "nope.json")},
		{name: "malformed symptoms", symptoms: broken, remedies: remediesPath, wantPath: broken},
		{name: "wrong field type", symptoms: wrongShape, remedies: remediesPath, wantPath: wrongShape},
		{name: "malformed remedies", symptoms: symptomsPath, remedies: broken, wantPath: broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := catalog.FileSource{SymptomsPath: tt.symptoms, RemediesPath: tt.remedies}.Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, cat)

			var dsErr *catalog.DatasetError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.wantPath, dsErr.Path)
		})
	}
}

type countingSource struct {
	cat   *catalog.Catalog
	err   error
	loads atomic.Int32
}

func (s *countingSource) Load(context.Context) (*catalog.Catalog, error) {
	s.loads.Add(1)
	return s.cat, s.err
}

func TestCache_LoadsOnce(t *testing.T) {
	src := &countingSource{cat: catalogtest.New(t)}
	cache := catalog.NewCache(src)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestCache_CachesFailure(t *testing.T) {
	src := &countingSource{err: &catalog.DatasetError{Path: "x", Err: os.ErrNotExist}}
	cache := catalog.NewCache(src)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	_, err = cache.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, int32(1), src.loads.Load())
}
