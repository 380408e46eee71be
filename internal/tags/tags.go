// Package tags turns the free-form tags input of an entry into ordered tags.
package tags

import (
	"strings"

	"github.com/atinyakov/AuthKeeper/internal/models"
)

// Delimiter separates tags in the raw input.
const Delimiter = ";"

// Split splits s on Delimiter, trims every piece and drops empty ones.
// Order is preserved and duplicates are kept. The result is never nil.
func Split(s string) []models.Tag {
	out := []models.Tag{}
	for _, part := range strings.Split(s, Delimiter) {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		out = append(out, models.Tag{Text: text})
	}
	return out
}

// Join renders tags back as a delimited string for display.
func Join(ts []models.Tag) string {
	texts := make([]string, len(ts))
	for i, t := range ts {
		texts[i] = t.Text
	}
	return strings.Join(texts, Delimiter+" ")
}
