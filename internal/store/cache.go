// Package store caches the parsed bibliography and its language index in
// SQLite, so repeated CLI runs skip rescanning the .bib file.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/glottolab/gramsheet/internal/bib"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
  key    TEXT PRIMARY KEY,
  author TEXT,
  year   TEXT,
  title  TEXT,
  hhtype TEXT,
  inlg   TEXT,
  lgcode TEXT
);
CREATE TABLE IF NOT EXISTS langindex (
  lang TEXT,
  key  TEXT,
  PRIMARY KEY (lang, key)
);
CREATE TABLE IF NOT EXISTS _meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);
`

// Cache is a SQLite-backed bibliography cache.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// StoredHash returns the content hash of the .bib file the cache was
// built from, or "" for a fresh cache.
func (c *Cache) StoredHash() (string, error) {
	var hash sql.NullString
	err := c.db.QueryRow(`SELECT value FROM _meta WHERE key = 'bib_hash'`).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// Rebuild replaces the cached entries and index inside one transaction
// and records the source hash.
func (c *Cache) Rebuild(entries map[string]*bib.Entry, index map[string][]string, hash string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM entries`, `DELETE FROM langindex`} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	insEntry, err := tx.Prepare(
		`INSERT INTO entries (key, author, year, title, hhtype, inlg, lgcode) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insEntry.Close()
	for key, e := range entries {
		if _, err := insEntry.Exec(key, e.Author, e.Year, e.Title, e.HHType, e.InLg, e.Lgcode); err != nil {
			return fmt.Errorf("caching entry %s: %w", key, err)
		}
	}

	insIndex, err := tx.Prepare(`INSERT INTO langindex (lang, key) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insIndex.Close()
	for lang, keys := range index {
		for _, key := range keys {
			if _, err := insIndex.Exec(lang, key); err != nil {
				return fmt.Errorf("caching index for %s: %w", lang, err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO _meta (key, value) VALUES ('bib_hash', ?)`, hash); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the cached entries and language index.
func (c *Cache) Load() (map[string]*bib.Entry, map[string][]string, error) {
	rows, err := c.db.Query(`SELECT key, author, year, title, hhtype, inlg, lgcode FROM entries`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	entries := make(map[string]*bib.Entry)
	for rows.Next() {
		e := &bib.Entry{}
		if err := rows.Scan(&e.Key, &e.Author, &e.Year, &e.Title, &e.HHType, &e.InLg, &e.Lgcode); err != nil {
			return nil, nil, err
		}
		entries[e.Key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	idxRows, err := c.db.Query(`SELECT lang, key FROM langindex ORDER BY lang, key`)
	if err != nil {
		return nil, nil, err
	}
	defer idxRows.Close()

	index := make(map[string][]string)
	for idxRows.Next() {
		var lang, key string
		if err := idxRows.Scan(&lang, &key); err != nil {
			return nil, nil, err
		}
		index[lang] = append(index[lang], key)
	}
	return entries, index, idxRows.Err()
}

// FileHash returns the hex SHA-256 of the file at path, used for cache
// staleness detection.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
