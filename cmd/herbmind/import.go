package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/db/gorm"
)

func newImportCmd(a *app) *cobra.Command {
	var symptomsPath, remediesPath, dsn string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog documents into the catalog database",
		Long: `Validate the symptom and remedy documents and replace the catalog stored
in the database named by HERBMIND_CATALOG_DSN (or --dsn).

Examples:
  herbmind import --dsn sqlite://catalog.db
  herbmind import --symptoms data/symptoms.yaml --dsn postgres://localhost/herbmind`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if symptomsPath != "" {
				a.cfg.SymptomsPath = symptomsPath
			}
			if remediesPath != "" {
				a.cfg.RemediesPath = remediesPath
			}
			if dsn != "" {
				a.cfg.CatalogDSN = dsn
			}

			src := catalog.FileSource{SymptomsPath: a.cfg.SymptomsPath, RemediesPath: a.cfg.RemediesPath}
			cat, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			if res := catalog.BuildMappings(cat); res.Err != nil {
				return fmt.Errorf("refusing to import: %w", res.Err)
			}

			store, err := openStore(a.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := gorm.NewCatalogStore(store).Import(cmd.Context(), cat, a.cfg.SymptomsPath+", "+a.cfg.RemediesPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d symptoms, %d remedies, %d relationships\n",
				rec.Symptoms, rec.Remedies, rec.Relationships)
			return nil
		},
	}
	cmd.Flags().StringVar(&symptomsPath, "symptoms", "", "Symptoms document (JSON or YAML)")
	cmd.Flags().StringVar(&remediesPath, "remedies", "", "Remedies document (JSON or YAML)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Catalog database DSN (sqlite://path or postgres://...)")
	return cmd
}
