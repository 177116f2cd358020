package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: catalog tables
		{
			ID: "001_catalog_tables",
			Migrate: func(tx *gorm.DB) error {
				// AutoMigrate creates tables with all indexes from struct tags
				if err := tx.AutoMigrate(&SymptomRecord{}); err != nil {
					return err
				}
				if err := tx.AutoMigrate(&RemedyRecord{}); err != nil {
					return err
				}
				return tx.AutoMigrate(&RelationshipRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("symptoms", "remedies", "symptom_relationships")
			},
		},

		// Migration 002: import history
		{
			ID: "002_catalog_imports",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&CatalogImport{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("catalog_imports")
			},
		},

		// Migration 003: case-insensitive name lookups
		{
			ID: "003_symptom_name_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_symptoms_lower_name ON symptoms (lower(name))").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_symptoms_lower_name").Error
			},
		},
	})

	return m.Migrate()
}
