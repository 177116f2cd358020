package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
)

// ErrEmptyCatalog is returned by Load when nothing has been imported yet.
var ErrEmptyCatalog = errors.New("catalog store is empty, run an import first")

const batchSize = 100

// CatalogStore persists a catalog and serves it back as a catalog.Source.
type CatalogStore struct {
	store *Store
}

var _ catalog.Source = (*CatalogStore)(nil)

// NewCatalogStore creates a catalog store over store.
func NewCatalogStore(store *Store) *CatalogStore {
	return &CatalogStore{store: store}
}

// Import replaces the stored catalog with cat in one transaction.
func (s *CatalogStore) Import(ctx context.Context, cat *catalog.Catalog, source string) (*CatalogImport, error) {
	symptoms := make([]SymptomRecord, len(cat.Symptoms))
	for i := range cat.Symptoms {
		symptoms[i] = symptomRecord(&cat.Symptoms[i], i)
	}
	remedies := make([]RemedyRecord, len(cat.Remedies))
	for i := range cat.Remedies {
		remedies[i] = remedyRecord(&cat.Remedies[i], i)
	}
	rels := make([]RelationshipRecord, len(cat.Relationships))
	for i, rel := range cat.Relationships {
		rels[i] = RelationshipRecord{SymptomID: rel.SymptomID, Related: rel.Related, Position: i}
	}

	record := &CatalogImport{
		Source:        source,
		Symptoms:      len(symptoms),
		Remedies:      len(remedies),
		Relationships: len(rels),
	}

	err := s.store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&RelationshipRecord{}, &SymptomRecord{}, &RemedyRecord{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		if len(symptoms) > 0 {
			if err := tx.CreateInBatches(&symptoms, batchSize).Error; err != nil {
				return fmt.Errorf("insert symptoms: %w", err)
			}
		}
		if len(remedies) > 0 {
			if err := tx.CreateInBatches(&remedies, batchSize).Error; err != nil {
				return fmt.Errorf("insert remedies: %w", err)
			}
		}
		if len(rels) > 0 {
			if err := tx.CreateInBatches(&rels, batchSize).Error; err != nil {
				return fmt.Errorf("insert relationships: %w", err)
			}
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("symptoms", record.Symptoms).
		Int("remedies", record.Remedies).
		Msg("Catalog imported")
	return record, nil
}

// Load reads the stored catalog. Failures are reported as *catalog.DatasetError.
func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	db := s.store.DB.WithContext(ctx)
	fail := func(err error) (*catalog.Catalog, error) {
		return nil, &catalog.DatasetError{Path: s.store.Dialect() + " catalog store", Err: err}
	}

	var symptomRows []SymptomRecord
	if err := db.Order("position").Find(&symptomRows).Error; err != nil {
		return fail(fmt.Errorf("query symptoms: %w", err))
	}
	var remedyRows []RemedyRecord
	if err := db.Order("position").Find(&remedyRows).Error; err != nil {
		return fail(fmt.Errorf("query remedies: %w", err))
	}
	var relRows []RelationshipRecord
	if err := db.Order("position").Find(&relRows).Error; err != nil {
		return fail(fmt.Errorf("query relationships: %w", err))
	}
	if len(symptomRows) == 0 && len(remedyRows) == 0 {
		return fail(ErrEmptyCatalog)
	}

	symptoms := make([]models.SymptomEntry, len(symptomRows))
	for i := range symptomRows {
		symptoms[i] = symptomRows[i].entry()
	}
	remedies := make([]models.RemedyEntry, len(remedyRows))
	for i := range remedyRows {
		remedies[i] = remedyRows[i].entry()
	}
	var rels []models.Relationship
	for _, r := range relRows {
		rels = append(rels, models.Relationship{SymptomID: r.SymptomID, Related: nilIfEmpty(r.Related)})
	}

	cat, err := catalog.New(symptoms, remedies, rels)
	if err != nil {
		return fail(err)
	}
	return cat, nil
}

// LastImport returns the most recent import record, or nil if none exists.
func (s *CatalogStore) LastImport(ctx context.Context) (*CatalogImport, error) {
	var rec CatalogImport
	err := s.store.DB.WithContext(ctx).Order("imported_at_epoch DESC, id DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
