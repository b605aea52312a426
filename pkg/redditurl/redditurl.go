// Package redditurl classifies Reddit URLs and extracts the fragment that
// identifies the subreddit, user, multireddit, post or comment they point at.
package redditurl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRedditURL is returned when the input does not start with a
	// Reddit host.
	ErrNotRedditURL = errors.New("redditurl: not a reddit url")
	// ErrUnsupportedURLType is returned for Reddit URLs of no known category.
	ErrUnsupportedURLType = errors.New("redditurl: unsupported url type")
)

// Category is the kind of resource a URL points at.
type Category string

const (
	Subreddit   Category = "subreddit"
	Multireddit Category = "multireddit"
	User        Category = "user"
	Post        Category = "post"
	Comment     Category = "comment"
)

// Field returns the multi-valued configuration field receiving identifiers
// of this category.
func (c Category) Field() string {
	switch c {
	case Subreddit:
		return "subreddit"
	case Multireddit:
		return "multireddit"
	case User:
		return "user"
	case Post, Comment:
		return "link"
	default:
		return ""
	}
}

const (
	canonicalPrefix = "https://www.reddit.com"
	subredditPrefix = canonicalPrefix + "/r/"
	userPrefix      = canonicalPrefix + "/user/"

	multiMarker    = "/m/"
	commentsMarker = "/comments/"
	commentMarker  = "/comment/"
)

var hostVariants = []string{
	"https://www.reddit.com",
	"http://www.reddit.com",
	"https://reddit.com",
	"http://reddit.com",
}

// Ref is a classified URL together with its identifier.
type Ref struct {
	URL        string
	Category   Category
	Identifier string
}

// Parse classifies raw and extracts its identifier in one step.
func Parse(raw string) (Ref, error) {
	category, err := Classify(raw)
	if err != nil {
		return Ref{}, err
	}
	id := ExtractIdentifier(raw, category)
	if id == "" {
		return Ref{}, fmt.Errorf("%w: %s has no %s identifier", ErrUnsupportedURLType, raw, category)
	}
	return Ref{URL: raw, Category: category, Identifier: id}, nil
}

// Classify determines the category of a Reddit URL. Checks run in order and
// the first match wins:
//
//	/user/<name>/m/<multi>          multireddit
//	/user/<name>                    user
//	/r/<sub>/comments/<id>/.../comment/<id>   comment
//	/r/<sub>/comments/<id>          post
//	/r/<sub>                        subreddit
func Classify(raw string) (Category, error) {
	normalized, ok := normalize(raw)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRedditURL, strings.TrimSpace(raw))
	}
	lower := asciiLower(normalized)

	switch {
	case strings.HasPrefix(lower, userPrefix) && strings.Contains(lower, multiMarker):
		return Multireddit, nil
	case strings.HasPrefix(lower, userPrefix):
		return User, nil
	case strings.HasPrefix(lower, subredditPrefix):
		if strings.Contains(lower, commentsMarker) {
			if strings.Contains(lower, commentMarker) {
				return Comment, nil
			}
			return Post, nil
		}
		return Subreddit, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedURLType, normalized)
}

// ExtractIdentifier returns the text following the category's marker up to
// the next '/' or the end of the URL. Case is preserved.
func ExtractIdentifier(raw string, category Category) string {
	normalized, ok := normalize(raw)
	if !ok {
		return ""
	}
	var marker string
	switch category {
	case Subreddit:
		marker = subredditPrefix
	case User:
		marker = userPrefix
	case Multireddit:
		marker = multiMarker
	case Post:
		marker = commentsMarker
	case Comment:
		marker = commentMarker
	default:
		return ""
	}
	return substringAfter(normalized, marker, "/")
}

// AppendText appends identifier to current, the text of a multi-line field,
// inserting a line break first when current holds text that does not already
// end in one.
func AppendText(current, identifier string) string {
	if current != "" && !strings.HasSuffix(current, "\n") {
		return current + "\n" + identifier
	}
	return current + identifier
}

// normalize trims the input, rewrites any accepted host variant to the
// canonical https://www.reddit.com form and drops query string and fragment.
func normalize(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		url = url[:idx]
	}
	lower := asciiLower(url)
	for _, variant := range hostVariants {
		if !strings.HasPrefix(lower, variant) {
			continue
		}
		rest := url[len(variant):]
		if rest != "" && rest[0] != '/' {
			return "", false
		}
		return canonicalPrefix + rest, true
	}
	return "", false
}

// substringAfter finds start case-insensitively and returns what follows it
// up to the next end marker, or the rest of the string when end never
// appears after start.
func substringAfter(s, start, end string) string {
	lower := asciiLower(s)
	idx := strings.Index(lower, asciiLower(start))
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(start):]
	if stop := strings.Index(rest, end); stop >= 0 {
		return rest[:stop]
	}
	return rest
}

// asciiLower lower-cases ASCII letters only so byte offsets stay valid for
// the original string.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
