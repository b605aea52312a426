package redditurl

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		category Category
		id       string
		field    string
	}{
		{name: "subreddit", raw: "https://www.reddit.com/r/AskReddit/", category: Subreddit, id: "AskReddit", field: "subreddit"},
		{name: "subreddit no slash", raw: "https://www.reddit.com/r/golang", category: Subreddit, id: "golang", field: "subreddit"},
		{name: "post", raw: "https://www.reddit.com/r/AskReddit/comments/9x9q0p/title/", category: Post, id: "9x9q0p", field: "link"},
		{name: "comment", raw: "https://www.reddit.com/r/pics/comments/abc/title/comment/xyz9/", category: Comment, id: "xyz9", field: "link"},
		{name: "user bare domain", raw: "https://reddit.com/user/foo", category: User, id: "foo", field: "user"},
		{name: "user http", raw: "http://www.reddit.com/user/Foo/submitted/", category: User, id: "Foo", field: "user"},
		{name: "multireddit", raw: "https://www.reddit.com/user/foo/m/Favs/", category: Multireddit, id: "Favs", field: "multireddit"},
		{name: "whitespace and query", raw: "  https://www.reddit.com/r/pics/?sort=top#top \n", category: Subreddit, id: "pics", field: "subreddit"},
		{name: "mixed case host and path", raw: "HTTPS://WWW.Reddit.com/R/EarthPorn/", category: Subreddit, id: "EarthPorn", field: "subreddit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if ref.Category != tc.category {
				t.Errorf("category = %s, want %s", ref.Category, tc.category)
			}
			if ref.Identifier != tc.id {
				t.Errorf("identifier = %q, want %q", ref.Identifier, tc.id)
			}
			if got := ref.Category.Field(); got != tc.field {
				t.Errorf("field = %q, want %q", got, tc.field)
			}
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{raw: "https://www.reddit.com/x/y", want: ErrUnsupportedURLType},
		{raw: "https://www.reddit.com/", want: ErrUnsupportedURLType},
		{raw: "https://old.reddit.com/r/pics", want: ErrNotRedditURL},
		{raw: "https://www.reddit.community/r/pics", want: ErrNotRedditURL},
		{raw: "https://example.com/r/pics", want: ErrNotRedditURL},
		{raw: "reddit.com/r/pics", want: ErrNotRedditURL},
		{raw: "", want: ErrNotRedditURL},
	}
	for _, tc := range tests {
		if _, err := Classify(tc.raw); !errors.Is(err, tc.want) {
			t.Errorf("Classify(%q) = %v, want %v", tc.raw, err, tc.want)
		}
	}
}

func TestParse_EmptyIdentifier(t *testing.T) {
	if _, err := Parse("https://www.reddit.com/r/"); !errors.Is(err, ErrUnsupportedURLType) {
		t.Fatalf("expected ErrUnsupportedURLType for empty identifier, got %v", err)
	}
}

func TestExtractIdentifier_RestOfString(t *testing.T) {
	if got := ExtractIdentifier("https://www.reddit.com/r/AskReddit", Subreddit); got != "AskReddit" {
		t.Fatalf("identifier = %q, want AskReddit", got)
	}
	if got := ExtractIdentifier("https://www.reddit.com/r/AskReddit", Post); got != "" {
		t.Fatalf("missing marker must yield empty identifier, got %q", got)
	}
}

func TestAppendText(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{current: "", want: "B"},
		{current: "A", want: "A\nB"},
		{current: "A\n", want: "A\nB"},
		{current: "A\nC", want: "A\nC\nB"},
	}
	for _, tc := range tests {
		if got := AppendText(tc.current, "B"); got != tc.want {
			t.Errorf("AppendText(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}
