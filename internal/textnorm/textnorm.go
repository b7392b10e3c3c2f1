// Package textnorm cleans up captured text and tag input.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/TK2F/promptvault/internal/models"
)

// MaxLength is the longest content, in characters, that Normalize keeps.
const MaxLength = 10240

var (
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	multiBlank  = regexp.MustCompile(`\n{3,}`)
	anyBlank    = regexp.MustCompile(`\n{2,}`)
)

// Normalize converts line endings to \n, strips trailing whitespace from each
// line, trims the text and collapses blank-line runs according to mode:
// keep-one leaves at most one blank line between paragraphs, remove-all
// leaves none. The result is cut to MaxLength characters.
func Normalize(text string, mode models.BlankLineMode) string {
	text = lineEndings.Replace(text)

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	switch mode {
	case models.BlankRemoveAll:
		text = anyBlank.ReplaceAllString(text, "\n")
	default:
		text = multiBlank.ReplaceAllString(text, "\n\n")
	}

	return cut(text, MaxLength)
}

// ParseTags splits on commas, tabs and any Unicode space (ideographic space
// included) and drops empty and repeated tags, keeping first occurrences.
func ParseTags(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return DedupeTags(fields)
}

// DedupeTags trims tags and removes empty and repeated ones.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// FormatTags joins tags for display and CSV export.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Truncate shortens text to n characters, marking the cut with "...".
func Truncate(text string, n int) string {
	if c := cut(text, n); c != text {
		return c + "..."
	}
	return text
}

func cut(s string, n int) string {
	if n < 0 {
		n = 0
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
