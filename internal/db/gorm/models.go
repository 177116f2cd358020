package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/thebtf/herbmind/pkg/models"
)

// JSON columns use models.JSONStringArray and models.JSONStringListMap, which
// implement sql.Scanner and driver.Valuer.

// SymptomRecord is one row of the symptom catalog.
type SymptomRecord struct {
	ID                 string                   `gorm:"primaryKey;type:varchar(64)"`
	Name               string                   `gorm:"type:text;not null"`
	Category           string                   `gorm:"type:text;index"`
	Description        string                   `gorm:"type:text"`
	Aliases            models.JSONStringArray   `gorm:"type:text"` // JSON array
	SeverityIndicators models.JSONStringListMap `gorm:"type:text"` // JSON object
	EmergencyFlags     models.JSONStringArray   `gorm:"type:text"` // JSON array
	RelatedSymptoms    models.JSONStringArray   `gorm:"type:text"` // JSON array
	SuitableRemedies   models.JSONStringArray   `gorm:"type:text"` // JSON array
	Position           int                      `gorm:"index;not null"`
}

func (SymptomRecord) TableName() string { return "symptoms" }

// RemedyRecord is one row of the remedy catalog.
type RemedyRecord struct {
	ID                string                 `gorm:"primaryKey;type:varchar(64)"`
	Name              string                 `gorm:"type:text;not null"`
	ScientificName    string                 `gorm:"type:text"`
	TraditionalSystem string                 `gorm:"type:text"`
	Dosage            string                 `gorm:"type:text"`
	SafetyLevel       string                 `gorm:"type:varchar(16);check:safety_level IN ('', 'high', 'medium', 'low')"`
	EvidenceLevel     string                 `gorm:"type:varchar(16);check:evidence_level IN ('', 'strong', 'moderate', 'weak', 'anecdotal')"`
	Properties        models.JSONStringArray `gorm:"type:text"` // JSON array
	Indications       models.JSONStringArray `gorm:"type:text"` // JSON array
	Preparation       models.JSONStringArray `gorm:"type:text"` // JSON array
	Contraindications models.JSONStringArray `gorm:"type:text"` // JSON array
	Position          int                    `gorm:"index;not null"`
}

func (RemedyRecord) TableName() string { return "remedies" }

// RelationshipRecord is a document-level symptom relationship.
type RelationshipRecord struct {
	ID        int64                  `gorm:"primaryKey;autoIncrement"`
	SymptomID string                 `gorm:"type:varchar(64);index;not null"`
	Related   models.JSONStringArray `gorm:"type:text"` // JSON array
	Position  int                    `gorm:"index;not null"`
}

func (RelationshipRecord) TableName() string { return "symptom_relationships" }

// CatalogImport records one catalog import.
type CatalogImport struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Source          string `gorm:"type:text;not null"`
	Symptoms        int    `gorm:"not null"`
	Remedies        int    `gorm:"not null"`
	Relationships   int    `gorm:"not null"`
	ImportedAt      string `gorm:"not null"`
	ImportedAtEpoch int64  `gorm:"index:idx_catalog_imports_epoch,sort:desc;not null"`
}

func (CatalogImport) TableName() string { return "catalog_imports" }

// BeforeCreate hook to ensure timestamps are set.
func (c *CatalogImport) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.ImportedAtEpoch == 0 {
		c.ImportedAtEpoch = now.UnixMilli()
	}
	if c.ImportedAt == "" {
		c.ImportedAt = now.Format(time.RFC3339)
	}
	return nil
}

func symptomRecord(s *models.SymptomEntry, pos int) SymptomRecord {
	return SymptomRecord{
		ID:                 s.ID,
		Name:               s.Name,
		Category:           s.Category,
		Description:        s.Description,
		Aliases:            s.Aliases,
		SeverityIndicators: s.SeverityIndicators,
		EmergencyFlags:     s.EmergencyFlags,
		RelatedSymptoms:    s.RelatedSymptoms,
		SuitableRemedies:   s.SuitableRemedies,
		Position:           pos,
	}
}

func (r *SymptomRecord) entry() models.SymptomEntry {
	return models.SymptomEntry{
		ID:                 r.ID,
		Name:               r.Name,
		Category:           r.Category,
		Description:        r.Description,
		Aliases:            nilIfEmpty(r.Aliases),
		SeverityIndicators: nilIfEmptyMap(r.SeverityIndicators),
		EmergencyFlags:     nilIfEmpty(r.EmergencyFlags),
		RelatedSymptoms:    nilIfEmpty(r.RelatedSymptoms),
		SuitableRemedies:   nilIfEmpty(r.SuitableRemedies),
	}
}

func remedyRecord(r *models.RemedyEntry, pos int) RemedyRecord {
	return RemedyRecord{
		ID:                r.ID,
		Name:              r.Name,
		ScientificName:    r.ScientificName,
		TraditionalSystem: r.TraditionalSystem,
		Dosage:            r.Dosage,
		SafetyLevel:       string(r.SafetyLevel),
		EvidenceLevel:     string(r.EvidenceLevel),
		Properties:        r.Properties,
		Indications:       r.Indications,
		Preparation:       r.Preparation,
		Contraindications: r.Contraindications,
		Position:          pos,
	}
}

func (r *RemedyRecord) entry() models.RemedyEntry {
	return models.RemedyEntry{
		ID:                r.ID,
		Name:              r.Name,
		ScientificName:    r.ScientificName,
		TraditionalSystem: r.TraditionalSystem,
		Dosage:            r.Dosage,
		SafetyLevel:       models.SafetyLevel(r.SafetyLevel),
		EvidenceLevel:     models.EvidenceLevel(r.EvidenceLevel),
		Properties:        nilIfEmpty(r.Properties),
		Indications:       nilIfEmpty(r.Indications),
		Preparation:       nilIfEmpty(r.Preparation),
		Contraindications: nilIfEmpty(r.Contraindications),
	}
}

func nilIfEmpty(a models.JSONStringArray) []string {
	if len(a) == 0 {
		return nil
	}
	return []string(a)
}

func nilIfEmptyMap(m models.JSONStringListMap) map[string][]string {
	if len(m) == 0 {
		return nil
	}
	return map[string][]string(m)
}
