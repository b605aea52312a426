// Package profile persists the edited fields of a configuration as raw text
// keyed by dotted field path, so a saved form can be reopened later.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

// Profile is the TOML document shape:
//
//	name = "nightly"
//	[values]
//	subreddit = "pics\nEarthPorn"
//	"download_config.max_wait_time" = "60"
type Profile struct {
	Name   string            `toml:"name,omitempty"`
	Values map[string]string `toml:"values"`
}

// Paths returns the profile's field paths in lexical order.
func (p Profile) Paths() []string {
	paths := make([]string, 0, len(p.Values))
	for path := range p.Values {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Decode reads a profile from TOML.
func Decode(r io.Reader) (Profile, error) {
	var p Profile
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("profile: parse: %w", err)
	}
	if p.Values == nil {
		p.Values = make(map[string]string)
	}
	return p, nil
}

// Encode writes a profile as TOML.
func Encode(w io.Writer, p Profile) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	return nil
}

// Load reads a profile file. A missing file yields an empty profile.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Profile{Values: make(map[string]string)}, nil
		}
		return Profile{}, fmt.Errorf("profile: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes a profile file, replacing any existing one.
func Save(path string, p Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("profile: create %s: %w", path, err)
	}
	if err := Encode(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FromTree captures every leaf field whose value differs from its default,
// formatted the way a slot would display it.
func FromTree(name string, t *tree.Tree) (Profile, error) {
	p := Profile{Name: name, Values: make(map[string]string)}
	err := t.Schema().Walk(func(path string, field schema.Field) error {
		if field.Kind == schema.KindNested {
			return nil
		}
		isDefault, err := t.IsDefault(path)
		if err != nil || isDefault {
			return err
		}
		value, err := t.Get(path)
		if err != nil {
			return err
		}
		text, err := coerce.Format(field, value)
		if err != nil {
			return err
		}
		p.Values[path] = text
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}
