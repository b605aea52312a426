// Package cmdline maps a configuration tree to the downloader's command-line
// tokens and back.
package cmdline

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

// Tokens returns argv-style tokens for the tree: flags and their values are
// separate elements. The tree's own fields come first in declaration order,
// followed by each nested section. Values equal to the field default and
// null values produce nothing.
func Tokens(t *tree.Tree) []string {
	var out []string
	var nested []*tree.Tree
	for _, field := range t.Schema().Fields {
		if field.Kind == schema.KindNested {
			if child, ok := t.Sub(field.Name); ok {
				nested = append(nested, child)
			}
			continue
		}
		value, err := t.Get(field.Name)
		if err != nil {
			continue
		}
		out = append(out, fieldTokens(field, value)...)
	}
	for _, child := range nested {
		out = append(out, Tokens(child)...)
	}
	return out
}

func fieldTokens(field schema.Field, value any) []string {
	if value == nil {
		return nil
	}
	switch field.Kind {
	case schema.KindBool:
		if on, _ := value.(bool); on {
			return []string{field.Flag.Name}
		}
	case schema.KindInt:
		n, _ := value.(int64)
		if def, ok := field.Default.(int64); ok && def == n {
			return nil
		}
		if field.Flag.Repeat {
			if n <= 0 {
				return nil
			}
			name := strings.TrimLeft(field.Flag.Name, "-")
			return []string{"-" + strings.Repeat(name, int(n))}
		}
		return []string{field.Flag.Name, strconv.FormatInt(n, 10)}
	case schema.KindFloat:
		f, _ := value.(float64)
		if def, ok := field.Default.(float64); ok && def == f {
			return nil
		}
		return []string{field.Flag.Name, strconv.FormatFloat(f, 'f', -1, 64)}
	case schema.KindString:
		s, _ := value.(string)
		if s == "" || s == field.Default {
			return nil
		}
		return []string{field.Flag.Name, s}
	case schema.KindStringList:
		items, _ := value.([]string)
		if def, ok := field.Default.([]string); ok && slices.Equal(def, items) {
			return nil
		}
		out := make([]string, 0, 2*len(items))
		for _, item := range items {
			out = append(out, field.Flag.Name, item)
		}
		return out
	case schema.KindEnum:
		member, _ := value.(schema.Member)
		if member == field.Default {
			return nil
		}
		return []string{field.Flag.Name, member.Value}
	}
	return nil
}

// Serialize joins the tree's tokens with single spaces. It is pure and cheap
// enough to run after every edit.
func Serialize(t *tree.Tree) string {
	return strings.Join(Tokens(t), " ")
}

// Quote joins tokens into a single shell-safe line, quoting any token that
// contains whitespace or shell metacharacters.
func Quote(tokens []string) string {
	return shellquote.Join(tokens...)
}

// Preview renders the tree as a copy-pasteable command, prefixed with the
// downloader invocation (for example "python3 -m bdfr download").
func Preview(prefix string, t *tree.Tree) string {
	args := Quote(Tokens(t))
	prefix = strings.TrimSpace(prefix)
	switch {
	case prefix == "":
		return args
	case args == "":
		return prefix
	default:
		return prefix + " " + args
	}
}
