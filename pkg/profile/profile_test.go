package profile_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/profile"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/testsupport"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

func TestEncodeDecode(t *testing.T) {
	in := profile.Profile{
		Name: "nightly",
		Values: map[string]string{
			"subreddit":                     "pics\nEarthPorn",
			"download_config.max_wait_time": "60",
			"search":                        `say "hi"`,
		},
	}
	var buf bytes.Buffer
	if err := profile.Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := profile.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"download_config.max_wait_time", "search", "subreddit"}, out.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := profile.Decode(bytes.NewBufferString("values = [")); err == nil {
		t.Fatalf("expected parse error")
	}
	p, err := profile.Decode(bytes.NewBufferString(`name = "empty"`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Values == nil || len(p.Values) != 0 {
		t.Fatalf("missing values table must decode to an empty map")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightly.toml")

	missing, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(missing.Values) != 0 {
		t.Fatalf("missing file must load as an empty profile")
	}

	in := profile.Profile{Name: "nightly", Values: map[string]string{"limit": "10"}}
	if err := profile.Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTree_RoundTrip(t *testing.T) {
	tr := testsupport.Tree(t, map[string]any{
		"subreddit":                       []string{"pics", "EarthPorn"},
		"limit":                           int64(10),
		"sort":                            schema.Member{Name: "TOP", Value: "top"},
		"verbose":                         int64(1),
		"download_config.min_score_ratio": 0.75,
		"download_config.max_wait_time":   nil,
		"archiver_config.comment_context": true,
	})

	p, err := profile.FromTree("mine", tr)
	if err != nil {
		t.Fatalf("from tree: %v", err)
	}
	want := map[string]string{
		"subreddit":                       "pics\nEarthPorn",
		"limit":                           "10",
		"sort":                            "top",
		"verbose":                         "1",
		"download_config.min_score_ratio": "0.75",
		"download_config.max_wait_time":   "",
		"archiver_config.comment_context": "true",
	}
	if diff := cmp.Diff(want, p.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// replaying the profile over defaults reproduces the tree
	replay := testsupport.Tree(t, nil)
	for path, text := range p.Values {
		field, _ := replay.Field(path)
		value, err := coerce.Parse(field, text)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		if err := replay.Set(path, value); err != nil {
			t.Fatalf("set %s: %v", path, err)
		}
	}
	if !tree.Equal(tr, replay) {
		t.Fatalf("replayed profile does not reproduce the tree")
	}
}
