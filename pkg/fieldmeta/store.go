// Package fieldmeta loads the per-field metadata documents (tooltips and
// input suggestions) consumed by presentation layers.
package fieldmeta

import (
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

// Document is the on-disk shape of one field's metadata.
type Document struct {
	Name       string `json:"name" yaml:"name"`
	Tooltip    string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Store maps field names to metadata. A nil or empty store answers every
// lookup with zero metadata.
type Store struct {
	fields map[string]schema.Metadata
	policy *bluemonday.Policy
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		fields: make(map[string]schema.Metadata),
		policy: bluemonday.StrictPolicy(),
	}
}

// LoadFS reads every JSON/YAML document in fsys into a new store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if err := store.AddFS(fsys); err != nil {
		return nil, err
	}
	return store, nil
}

// AddFS merges the documents of fsys into the store. Later sources override
// earlier ones per field, but a single source may not define a field twice.
func (s *Store) AddFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	seen := make(map[string]string)
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldmeta: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(doc.Name)
		if name == "" {
			return fmt.Errorf("fieldmeta: file %s has no field name", path)
		}
		if prev, exists := seen[name]; exists {
			return fmt.Errorf("fieldmeta: field %q defined in %s and %s", name, prev, path)
		}
		seen[name] = path
		s.fields[name] = schema.Metadata{
			Tooltip:    s.clean(doc.Tooltip),
			Suggestion: s.clean(doc.Suggestion),
		}
		return nil
	})
}

// MetadataFor implements schema.MetadataSource. Unknown fields yield zero
// metadata.
func (s *Store) MetadataFor(name string) schema.Metadata {
	if s == nil {
		return schema.Metadata{}
	}
	return s.fields[name]
}

// Len reports how many fields carry metadata.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// clean strips markup from externally supplied text.
func (s *Store) clean(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return html.UnescapeString(s.policy.Sanitize(text))
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("fieldmeta: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return Document{}, fmt.Errorf("fieldmeta: parse %s: invalid JSON or YAML", source)
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
