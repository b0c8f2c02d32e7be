package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/pudding/internal/layout"
)

func TestValidateNameRejectsBadInput(t *testing.T) {
	cases := []string{"", "has space", "dots.bad", "a/b", string(make([]byte, 65))}
	for _, c := range cases {
		if err := ValidateName(c); err == nil {
			t.Errorf("ValidateName(%q) should have failed", c)
		}
	}
}

func TestValidateNameAcceptsCharset(t *testing.T) {
	if err := ValidateName("My_Session-1"); err != nil {
		t.Fatalf("ValidateName should accept charset: %v", err)
	}
}

func TestValidateTreeRejectsDuplicateIDs(t *testing.T) {
	root := &layout.Node{
		ID:          1,
		Orientation: layout.Vertical,
		Ratio:       0.5,
		First:       layout.NewLeaf(1, "a", "bash"),
		Second:      layout.NewLeaf(1, "b", "bash"),
	}
	if err := ValidateTree(root); err == nil {
		t.Fatalf("duplicate ids should fail validation")
	}
}

func TestValidateTreeRejectsEmptyLeafName(t *testing.T) {
	root := layout.NewLeaf(1, "  ", "bash")
	if err := ValidateTree(root); err == nil {
		t.Fatalf("blank leaf name should fail validation")
	}
}

func TestValidateTreeRejectsOutOfRangeRatio(t *testing.T) {
	root := &layout.Node{
		ID:          1,
		Orientation: layout.Vertical,
		Ratio:       0.95,
		First:       layout.NewLeaf(2, "a", "bash"),
		Second:      layout.NewLeaf(3, "b", "bash"),
	}
	if err := ValidateTree(root); err == nil {
		t.Fatalf("out-of-range ratio should fail validation")
	}
}

func TestLoadTemplateMissingReturnsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tpl, err := LoadTemplate("nosuch", "zsh")
	if err != nil {
		t.Fatalf("LoadTemplate error = %v", err)
	}
	if !tpl.Root.IsLeaf() || tpl.Root.Command != "zsh" {
		t.Fatalf("expected default single-leaf template, got %+v", tpl.Root)
	}
}

func TestSaveThenLoadTemplateRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := &layout.Node{
		ID:          3,
		Orientation: layout.Vertical,
		Ratio:       0.5,
		First:       layout.NewLeaf(1, "left", "bash"),
		Second:      layout.NewLeaf(2, "right", "zsh"),
	}
	tpl := &layout.Template{Name: "work", Root: root}
	if err := SaveTemplate(tpl); err != nil {
		t.Fatalf("SaveTemplate error = %v", err)
	}

	loaded, err := LoadTemplate("work", "bash")
	if err != nil {
		t.Fatalf("LoadTemplate error = %v", err)
	}
	if loaded.Name != "work" || loaded.Root.ID != 3 || loaded.Root.First.Name != "left" {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveTemplateRejectsInvalidTree(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tpl := &layout.Template{Name: "bad", Root: layout.NewLeaf(1, "", "bash")}
	if err := SaveTemplate(tpl); err == nil {
		t.Fatalf("SaveTemplate should reject an invalid tree")
	}
}

func TestLoadTemplateDetectsTampering(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	tpl := &layout.Template{Name: "work", Root: layout.NewLeaf(1, "main", "bash")}
	if err := SaveTemplate(tpl); err != nil {
		t.Fatalf("SaveTemplate error = %v", err)
	}

	path := filepath.Join(root, "pudding", "templates", "work.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	tampered := append(data, []byte(" ")...)
	tampered[20] ^= 0xFF
	if err := os.WriteFile(path, tampered, 0o600); err != nil {
		t.Fatalf("write tampered file: %v", err)
	}

	if _, err := LoadTemplate("work", "bash"); err == nil {
		t.Fatalf("LoadTemplate should reject a tampered file")
	}
}

func TestSaveStateUsesStatesDirectory(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	if err := SaveState("snap1", layout.NewLeaf(1, "main", "bash")); err != nil {
		t.Fatalf("SaveState error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "pudding", "states", "snap1.json")); err != nil {
		t.Fatalf("expected state file: %v", err)
	}
}
