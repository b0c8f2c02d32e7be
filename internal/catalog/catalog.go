// Package catalog maintains a small SQLite index over the templates and
// saved states on disk, recording each one's leaf count and modification
// time for `pudding template list`, which reindexes before listing.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/pudding/internal/layout"
)

// Entry is one indexed template or state.
type Entry struct {
	Name       string
	Kind       string // "template" or "state"
	LeafCount  int
	ModifiedAt time.Time
}

// Catalog is a SQLite-backed index over template/state metadata.
type Catalog struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	leaf_count INTEGER NOT NULL,
	modified_at INTEGER NOT NULL,
	PRIMARY KEY (name, kind)
);
`

// Open opens (creating if needed) the catalog database at dbPath.
func Open(dbPath string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("catalog: create directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert records or updates the metadata for one template/state.
func (c *Catalog) Upsert(e Entry) error {
	_, err := c.db.Exec(
		`INSERT INTO entries (name, kind, leaf_count, modified_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name, kind) DO UPDATE SET leaf_count = excluded.leaf_count, modified_at = excluded.modified_at`,
		e.Name, e.Kind, e.LeafCount, e.ModifiedAt.UnixNano(),
	)
	return err
}

// Remove deletes an entry, e.g. after its backing file is gone.
func (c *Catalog) Remove(name, kind string) error {
	_, err := c.db.Exec(`DELETE FROM entries WHERE name = ? AND kind = ?`, name, kind)
	return err
}

// Reindex drops every entry of kind, then scans dir for "<name>.json"
// template/state files and upserts one entry per file whose tree still
// parses. Files that fail to parse are skipped rather than failing the
// whole scan, since a stale catalog is worse than an incomplete one. A
// missing dir leaves no entries of kind.
func (c *Catalog) Reindex(dir, kind string) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if _, err := c.db.Exec(`DELETE FROM entries WHERE kind = ?`, kind); err != nil {
		return err
	}

	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(de.Name(), ".json")
		info, err := de.Info()
		if err != nil {
			continue
		}

		root, err := readRootForCount(filepath.Join(dir, de.Name()))
		if err != nil {
			continue
		}
		if err := c.Upsert(Entry{
			Name:       name,
			Kind:       kind,
			LeafCount:  len(layout.CollectLeaves(root)),
			ModifiedAt: info.ModTime(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// List returns every indexed entry of the given kind, ordered by name.
func (c *Catalog) List(kind string) ([]Entry, error) {
	rows, err := c.db.Query(
		`SELECT name, kind, leaf_count, modified_at FROM entries WHERE kind = ? ORDER BY name`,
		kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var modified int64
		if err := rows.Scan(&e.Name, &e.Kind, &e.LeafCount, &modified); err != nil {
			return nil, err
		}
		e.ModifiedAt = time.Unix(0, modified)
		out = append(out, e)
	}
	return out, rows.Err()
}

// envelope mirrors internal/template's on-disk shape closely enough to
// pull the root tree back out for a leaf count, without importing that
// package (which would make a reindex depend on name/ratio validation
// this package doesn't need to enforce).
type envelope struct {
	Template struct {
		Root *layout.Node `json:"root"`
	} `json:"template"`
}

func readRootForCount(path string) (*layout.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Template.Root == nil {
		return nil, fmt.Errorf("catalog: %s has no root", path)
	}
	return env.Template.Root, nil
}
