package catalog

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"
)

// Source produces a validated catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// FileSource reads the symptoms and remedies documents from disk.
type FileSource struct {
	SymptomsPath string
	RemediesPath string
}

// Load reads and decodes both documents. Any failure is returned as a
// *DatasetError and no partial catalog is produced.
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	var (
		symptoms *SymptomsDocument
		remedies *RemediesDocument
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readDocument(ctx, s.SymptomsPath)
		if err != nil {
			return err
		}
		doc, err := DecodeSymptoms(data, FormatForPath(s.SymptomsPath))
		if err != nil {
			return &DatasetError{Path: s.SymptomsPath, Err: err}
		}
		symptoms = doc
		return nil
	})
	g.Go(func() error {
		data, err := readDocument(ctx, s.RemediesPath)
		if err != nil {
			return err
		}
		doc, err := DecodeRemedies(data, FormatForPath(s.RemediesPath))
		if err != nil {
			return &DatasetError{Path: s.RemediesPath, Err: err}
		}
		remedies = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat, err := New(symptoms.Symptoms, remedies.Remedies, symptoms.Relationships)
	if err != nil {
		return nil, &DatasetError{Path: s.SymptomsPath + ", " + s.RemediesPath, Err: err}
	}
	return cat, nil
}

func readDocument(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	return data, nil
}
