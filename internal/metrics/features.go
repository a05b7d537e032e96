// Package metrics computes local, content-free statistics over text.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds size counts for a piece of text.
type Features struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// CountFeatures returns byte, rune, word and line counts for s.
func CountFeatures(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
		Lines: countLines(s),
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

// Tasks counts markdown checkbox items.
type Tasks struct {
	Open int `json:"open"`
	Done int `json:"done"`
}

// Total returns the number of checkbox items.
func (t Tasks) Total() int { return t.Open + t.Done }

// CountTasks counts "- [ ]" and "- [x]" lines in markdown content.
// Leading indentation and "*" or "+" bullets are accepted.
func CountTasks(content string) Tasks {
	var t Tasks
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 5 || !strings.ContainsRune("-*+", rune(line[0])) || line[1] != ' ' {
			continue
		}
		switch line[2:5] {
		case "[ ]":
			t.Open++
		case "[x]", "[X]":
			t.Done++
		}
	}
	return t
}
