// Package testsupport holds fixtures shared by package tests: the bundled
// catalog, trees with values applied, and bound sessions.
package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-bdfrgen/pkg/bdfr"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/session"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

// CommandPrefix is the invocation fixtures use for previews.
const CommandPrefix = "python3 -m bdfr download"

// Catalog returns the bundled bdfr catalog.
func Catalog(t *testing.T) *bdfr.Catalog {
	t.Helper()
	catalog, err := bdfr.DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// Schema returns the bundled bdfr schema.
func Schema(t *testing.T) *schema.Schema {
	t.Helper()
	return Catalog(t).Schema
}

// Tree returns a default tree of the bundled schema with values set.
func Tree(t *testing.T, values map[string]any) *tree.Tree {
	t.Helper()
	tr := tree.Defaults(Schema(t))
	for path, value := range values {
		if err := tr.Set(path, value); err != nil {
			t.Fatalf("set %s: %v", path, err)
		}
	}
	return tr
}

// Session opens a session over the bundled schema with every leaf bound to
// an in-memory slot. The session is closed when the test ends.
func Session(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	opts = append([]session.Option{session.WithCommandPrefix(CommandPrefix)}, opts...)
	sess, err := session.New(Schema(t), opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.BindAll(nil); err != nil {
		t.Fatalf("bind all: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
