package layout

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily word-wraps s at the given character-column width and
// joins the lines with '\n'. Words longer than cols are broken at the
// column boundary so every line satisfies the limit. Whitespace runs
// collapse to single spaces.
func Wrap(s string, cols int) string {
	if cols < 1 {
		return s
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := ""
	for _, word := range words {
		for utf8.RuneCountInString(word) > cols {
			// Flush the current line, then hard-break the long word.
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:cols]))
			word = string(runes[cols:])
		}
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= cols:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
