// Package sanitize strips markup from free-text user input before it is persisted.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses bounds the strip/unescape loop for input that hides markup behind entities.
const maxPasses = 3

// Sanitizer is the XSS-filtering collaborator used by the services.
type Sanitizer interface {
	Sanitize(s string) string
}

type strictSanitizer struct {
	policy *bluemonday.Policy
}

// NewStrict returns a sanitizer that removes all HTML elements and trims surrounding whitespace.
// The result is plain text: punctuation such as ' and & is kept as typed, not entity-encoded.
func NewStrict() Sanitizer {
	return &strictSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *strictSanitizer) Sanitize(in string) string {
	out := in
	for i := 0; i < maxPasses; i++ {
		// StrictPolicy escapes the text it keeps; decode it back so stored values match what the user typed.
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// still changing: keep the escaped form rather than risk decoding into markup
	return strings.TrimSpace(s.policy.Sanitize(out))
}
