package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Tuna Feast":              "tuna-feast",
		"  Salmon & Rice Bites  ": "salmon-rice-bites",
		"Chicken---Gravy":         "chicken-gravy",
		"Kitten (2-6 months)":     "kitten-2-6-months",
		"":                        "",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestPtrHelpers(t *testing.T) {
	p := StrPtr("hello")
	assert.Equal(t, "hello", *p)
	assert.Equal(t, "hello", PtrString(p))
	assert.Equal(t, "", PtrString(nil))
}
