package fieldmeta

import "strings"

// Wrap splits every line of text that is longer than width characters,
// breaking at the last space within the limit or hard at the limit when the
// line has no space there.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapLine(line, width)...)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) []string {
	var out []string
	runes := []rune(line)
	for len(runes) > width {
		split := lastSpace(runes[:width+1])
		if split <= 0 {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
			continue
		}
		out = append(out, string(runes[:split]))
		runes = runes[split+1:]
	}
	return append(out, string(runes))
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
