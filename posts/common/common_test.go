package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Go 1.24: What's New?  ", "go-1-24-what-s-new"},
		{"Héllo, Wörld!", "hello-world"},
		{"---", ""},
		{"Already-a-slug", "already-a-slug"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"日本語 title", "title"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestSlugify_Truncates(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 40))
	assert.LessOrEqual(t, len(slug), slugMaxLength+1)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitAndTrim(" a, ,b ,", ","))
}

func TestNormalizeNames(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust"}, NormalizeNames([]string{" Rust", "Go", "", "Go "}))
	assert.Equal(t, []string{}, NormalizeNames(nil))
}
