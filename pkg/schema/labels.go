package schema

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler turns a field name into a sentence-case label:
// "max_wait_time" becomes "Max wait time".
func DefaultLabeler(name string) string {
	words := splitWordsPattern.Split(strings.TrimSpace(name), -1)
	segments := make([]string, 0, len(words))
	for _, word := range words {
		if word != "" {
			segments = append(segments, strings.ToLower(word))
		}
	}
	label := strings.Join(segments, " ")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
