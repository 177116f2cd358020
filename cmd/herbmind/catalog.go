package main

import (
	"context"
	"fmt"

	"gorm.io/gorm/logger"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/config"
	"github.com/thebtf/herbmind/internal/db/gorm"
)

// openSource returns the catalog source selected by the config and a close
// function for any database it opened.
func openSource(cfg *config.Config) (catalog.Source, func(), error) {
	if cfg.DSNSource() == "" {
		return catalog.FileSource{SymptomsPath: cfg.SymptomsPath, RemediesPath: cfg.RemediesPath}, func() {}, nil
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return gorm.NewCatalogStore(store), func() { _ = store.Close() }, nil
}

func openStore(cfg *config.Config) (*gorm.Store, error) {
	if cfg.CatalogDSN == "" {
		return nil, fmt.Errorf("%s is not set", config.KeyCatalogDSN)
	}
	level := logger.Silent
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	return gorm.NewStore(gorm.Config{DSN: cfg.CatalogDSN, LogLevel: level})
}

// loadCatalog returns the process catalog. The source is opened and read on
// the first call; later calls return the cached catalog or load error.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.catalog == nil {
		source, closeFn, err := openSource(a.cfg)
		if err != nil {
			return nil, err
		}
		a.catalog = catalog.NewCache(source)
		a.closeSource = closeFn
	}
	return a.catalog.Get(ctx)
}

// closeCatalog releases the catalog source, if one was opened.
func (a *app) closeCatalog() {
	if a.closeSource != nil {
		a.closeSource()
		a.closeSource = nil
	}
}
