package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrict_Sanitize(t *testing.T) {
	s := NewStrict()

	assert.Equal(t, "Bob", s.Sanitize("<b>Bob</b>"))
	assert.Equal(t, "Leg Day", s.Sanitize("  Leg Day  "))
	assert.Equal(t, "Push", s.Sanitize(`<a href="javascript:alert(1)">Push</a>`))
	assert.NotContains(t, s.Sanitize(`<img src=x onerror=alert(1)>Row`), "onerror")
}

func TestStrict_KeepsPunctuation(t *testing.T) {
	s := NewStrict()

	for _, in := range []string{
		"O'Brien",
		"D'Arcy-O'Neill-Smith'x",
		"Push & Pull",
		`Say "hi"`,
		"5 < 6",
	} {
		assert.Equal(t, in, s.Sanitize(in), in)
	}
}

func TestStrict_EncodedMarkupIsStripped(t *testing.T) {
	s := NewStrict()

	got := s.Sanitize("&lt;script&gt;alert(1)&lt;/script&gt;Row")
	assert.NotContains(t, got, "<script")
	assert.Contains(t, got, "Row")

	got = s.Sanitize("&lt;img src=x onerror=alert(1)&gt;Row")
	assert.NotContains(t, got, "onerror")
	assert.Equal(t, "Row", got)
}
