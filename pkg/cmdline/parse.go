package cmdline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

var (
	// ErrUnknownFlag is returned for tokens naming no schema flag.
	ErrUnknownFlag = errors.New("cmdline: unknown flag")
	// ErrMissingValue is returned when a value flag ends the argument list.
	ErrMissingValue = errors.New("cmdline: flag requires a value")
	// ErrDuplicateFlag is returned when two fields of a schema share a flag.
	ErrDuplicateFlag = errors.New("cmdline: duplicate flag in schema")
)

type flagEntry struct {
	path  string
	field schema.Field
}

// ParseString splits a command line with shell quoting rules and parses the
// resulting tokens. Leading tokens before the first known flag (the
// downloader invocation, e.g. "python3 -m bdfr download") are skipped.
func ParseString(s *schema.Schema, line string) (*tree.Tree, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cmdline: split: %w", err)
	}
	flags, err := flagIndex(s)
	if err != nil {
		return nil, err
	}
	first := len(tokens)
	for idx, token := range tokens {
		_, known := flags[token]
		_, repeat := repeatFlag(flags, token)
		if known || repeat {
			first = idx
			break
		}
	}
	return Parse(s, tokens[first:])
}

// Parse rebuilds a tree from argv-style tokens produced by Tokens. Fields not
// mentioned keep their defaults; list flags accumulate in order.
func Parse(s *schema.Schema, args []string) (*tree.Tree, error) {
	flags, err := flagIndex(s)
	if err != nil {
		return nil, err
	}
	out := tree.Defaults(s)
	lists := make(map[string][]string)
	var listOrder []string

	for i := 0; i < len(args); i++ {
		token := args[i]

		if entry, ok := repeatFlag(flags, token); ok {
			level, err := coerce.Parse(entry.field, strconv.Itoa(len(token)-1))
			if err != nil {
				return nil, fmt.Errorf("cmdline: %s: %w", token, err)
			}
			if err := out.Set(entry.path, level); err != nil {
				return nil, err
			}
			continue
		}

		entry, ok := flags[token]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFlag, token)
		}
		if entry.field.Kind == schema.KindBool {
			if err := out.Set(entry.path, true); err != nil {
				return nil, err
			}
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("%w: %s", ErrMissingValue, token)
		}
		i++
		raw := args[i]

		if entry.field.Kind == schema.KindStringList {
			if _, seen := lists[entry.path]; !seen {
				listOrder = append(listOrder, entry.path)
			}
			lists[entry.path] = append(lists[entry.path], raw)
			continue
		}
		value, err := coerce.Parse(entry.field, raw)
		if err != nil {
			return nil, fmt.Errorf("cmdline: %s: %w", token, err)
		}
		if err := out.Set(entry.path, value); err != nil {
			return nil, err
		}
	}

	for _, path := range listOrder {
		if err := out.Set(path, lists[path]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// repeatFlag matches tokens such as "-vvv" against repeat flags.
func repeatFlag(flags map[string]flagEntry, token string) (flagEntry, bool) {
	if len(token) < 2 || token[0] != '-' || token[1] == '-' {
		return flagEntry{}, false
	}
	entry, ok := flags["-"+token[1:2]]
	if !ok || !entry.field.Flag.Repeat {
		return flagEntry{}, false
	}
	if strings.Trim(token[1:], token[1:2]) != "" {
		return flagEntry{}, false
	}
	return entry, true
}

func flagIndex(s *schema.Schema) (map[string]flagEntry, error) {
	flags := make(map[string]flagEntry)
	err := s.Walk(func(path string, field schema.Field) error {
		if field.Kind == schema.KindNested {
			return nil
		}
		if prev, exists := flags[field.Flag.Name]; exists {
			return fmt.Errorf("%w: %s used by %s and %s", ErrDuplicateFlag, field.Flag.Name, prev.path, path)
		}
		flags[field.Flag.Name] = flagEntry{path: path, field: field}
		return nil
	})
	return flags, err
}
