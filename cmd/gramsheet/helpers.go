package main

import (
	"os"

	"github.com/glottolab/gramsheet/internal/bib"
	"github.com/glottolab/gramsheet/internal/catalog"
	"github.com/glottolab/gramsheet/internal/config"
	"github.com/glottolab/gramsheet/internal/store"
)

// mustFindRepository locates the repository root from the working
// directory (or GRAMSHEET_ROOT) and exits on failure.
func mustFindRepository() string {
	start := os.Getenv("GRAMSHEET_ROOT")
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		start = cwd
	}
	root, err := config.FindRepository(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the repository configuration and exits on failure.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// mustLoadCatalog loads the feature catalog and exits on failure.
func mustLoadCatalog(cfg *config.Config) *catalog.Catalog {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cat
}

// loadBibliography returns the parsed bibliography entries and language
// index, using the SQLite cache when it is current and rebuilding it
// otherwise. force skips the staleness check and always rescans.
func loadBibliography(root string, cfg *config.Config, force bool) (map[string]*bib.Entry, map[string][]string, error) {
	hash, err := store.FileHash(cfg.BibPath)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		return nil, nil, err
	}
	cache, err := store.Open(config.DBPath(root))
	if err != nil {
		return nil, nil, err
	}
	defer cache.Close()

	if !force {
		stored, err := cache.StoredHash()
		if err == nil && stored == hash {
			return cache.Load()
		}
	}

	entries, err := bib.ScanFile(cfg.BibPath)
	if err != nil {
		return nil, nil, err
	}
	index := bib.BuildIndex(entries)
	if err := cache.Rebuild(entries, index, hash); err != nil {
		return nil, nil, err
	}
	return entries, index, nil
}
