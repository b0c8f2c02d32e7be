// Package template validates, loads, and atomically persists layout
// templates and saved states.
package template

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framegrace/pudding/internal/config"
	"github.com/framegrace/pudding/internal/layout"
)

// document is the on-disk envelope: the template plus a content hash and
// timestamp, so a reader can detect truncated or hand-edited files without
// needing a database.
type document struct {
	Template layout.Template `json:"template"`
	SavedAt  string          `json:"savedAt"`
	Checksum string          `json:"checksum"`
}

func validNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// ValidateName enforces the name charset: length 1..=64, [A-Za-z0-9_-].
func ValidateName(s string) error {
	if len(s) < 1 || len(s) > 64 {
		return fmt.Errorf("template: name length must be 1..64, got %d", len(s))
	}
	for _, r := range s {
		if !validNameChar(r) {
			return fmt.Errorf("template: name %q contains invalid character %q", s, r)
		}
	}
	return nil
}

// ValidateTree enforces unique ids, non-empty trimmed leaf name/command,
// and split ratios within [layout.MinRatio, layout.MaxRatio].
func ValidateTree(root *layout.Node) error {
	seen := make(map[uint64]bool)
	var walk func(n *layout.Node) error
	walk = func(n *layout.Node) error {
		if n == nil {
			return fmt.Errorf("template: nil node in tree")
		}
		if seen[n.ID] {
			return fmt.Errorf("template: duplicate id %d", n.ID)
		}
		seen[n.ID] = true

		if n.IsLeaf() {
			if strings.TrimSpace(n.Name) == "" {
				return fmt.Errorf("template: leaf %d has empty name", n.ID)
			}
			if strings.TrimSpace(n.Command) == "" {
				return fmt.Errorf("template: leaf %d has empty command", n.ID)
			}
			return nil
		}
		if n.Ratio < layout.MinRatio || n.Ratio > layout.MaxRatio {
			return fmt.Errorf("template: split %d has ratio %v out of [%v, %v]", n.ID, n.Ratio, layout.MinRatio, layout.MaxRatio)
		}
		if err := walk(n.First); err != nil {
			return err
		}
		return walk(n.Second)
	}
	return walk(root)
}

func pathFor(dir, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// LoadTemplate validates name; if the file does not exist, returns a
// default template (a single leaf running defaultCommand).
func LoadTemplate(name, defaultCommand string) (*layout.Template, error) {
	dir, err := config.TemplatesDir()
	if err != nil {
		return nil, err
	}
	return load(dir, name, defaultCommand)
}

// SaveTemplate validates name and tree, then writes atomically under an
// owner-only directory and file.
func SaveTemplate(t *layout.Template) error {
	dir, err := config.TemplatesDir()
	if err != nil {
		return err
	}
	return save(dir, t)
}

// LoadState mirrors LoadTemplate against the saved-states directory.
func LoadState(name, defaultCommand string) (*layout.Template, error) {
	dir, err := config.StatesDir()
	if err != nil {
		return nil, err
	}
	return load(dir, name, defaultCommand)
}

// SaveState mirrors SaveTemplate against the saved-states directory.
func SaveState(name string, root *layout.Node) error {
	dir, err := config.StatesDir()
	if err != nil {
		return err
	}
	return save(dir, &layout.Template{Name: name, Root: root})
}

func load(dir, name, defaultCommand string) (*layout.Template, error) {
	path, err := pathFor(dir, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.DefaultTemplate(name, defaultCommand), nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("template: parse %s: %w", path, err)
	}
	if doc.Checksum != "" {
		body, err := json.Marshal(doc.Template)
		if err != nil {
			return nil, err
		}
		sum := sha1.Sum(body)
		if hex.EncodeToString(sum[:]) != doc.Checksum {
			return nil, fmt.Errorf("template: %s failed checksum verification", path)
		}
	}
	if err := ValidateName(doc.Template.Name); err != nil {
		return nil, err
	}
	if err := ValidateTree(doc.Template.Root); err != nil {
		return nil, err
	}
	return &doc.Template, nil
}

func save(dir string, t *layout.Template) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	if err := ValidateTree(t.Root); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	path, err := pathFor(dir, t.Name)
	if err != nil {
		return err
	}

	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	sum := sha1.Sum(body)
	doc := document{
		Template: *t,
		SavedAt:  time.Now().UTC().Format(time.RFC3339),
		Checksum: hex.EncodeToString(sum[:]),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
