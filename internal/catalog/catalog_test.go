package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/template"
)

func TestUpsertAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	if err := c.Upsert(Entry{Name: "work", Kind: "template", LeafCount: 3, ModifiedAt: time.Now()}); err != nil {
		t.Fatalf("Upsert error = %v", err)
	}
	if err := c.Upsert(Entry{Name: "scratch", Kind: "template", LeafCount: 1, ModifiedAt: time.Now()}); err != nil {
		t.Fatalf("Upsert error = %v", err)
	}

	entries, err := c.List("template")
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "scratch" || entries[1].Name != "work" {
		t.Fatalf("expected alphabetical order, got %+v", entries)
	}
}

func TestUpsertIsIdempotentOnConflict(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	now := time.Now()
	c.Upsert(Entry{Name: "work", Kind: "template", LeafCount: 1, ModifiedAt: now})
	c.Upsert(Entry{Name: "work", Kind: "template", LeafCount: 5, ModifiedAt: now})

	entries, err := c.List("template")
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(entries) != 1 || entries[0].LeafCount != 5 {
		t.Fatalf("expected one updated entry, got %+v", entries)
	}
}

func TestRemove(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	c.Upsert(Entry{Name: "work", Kind: "state", LeafCount: 1, ModifiedAt: time.Now()})
	if err := c.Remove("work", "state"); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	entries, err := c.List("state")
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after remove, got %+v", entries)
	}
}

func TestReindexCountsLeavesFromDisk(t *testing.T) {
	configRoot := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configRoot)

	root := &layout.Node{
		ID:          10,
		Orientation: layout.Vertical,
		Ratio:       0.5,
		First:       layout.NewLeaf(1, "a", "bash"),
		Second:      layout.NewLeaf(2, "b", "bash"),
	}
	if err := template.SaveTemplate(&layout.Template{Name: "pair", Root: root}); err != nil {
		t.Fatalf("SaveTemplate error = %v", err)
	}

	templatesDir := filepath.Join(configRoot, "pudding", "templates")
	dbPath := filepath.Join(configRoot, "pudding", "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	if err := c.Reindex(templatesDir, "template"); err != nil {
		t.Fatalf("Reindex error = %v", err)
	}

	entries, err := c.List("template")
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "pair" || entries[0].LeafCount != 2 {
		t.Fatalf("expected one entry with 2 leaves, got %+v", entries)
	}
}

func TestReindexMissingDirIsNotError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	if err := c.Reindex(filepath.Join(t.TempDir(), "does-not-exist"), "template"); err != nil {
		t.Fatalf("Reindex on missing dir should be a no-op, got %v", err)
	}
}

func TestReindexSkipsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0o600); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer c.Close()

	if err := c.Reindex(dir, "template"); err != nil {
		t.Fatalf("Reindex should skip unparsable files, got error %v", err)
	}
	entries, err := c.List("template")
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries indexed from unparsable file, got %+v", entries)
	}
}
