package sanitize

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labelRe = regexp.MustCompile(`^[a-z0-9_-]*$`)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"example":         "example",
		"EXAMPLE.COM":     "example_com",
		"héllo-wörld":     "hello-world",
		"straße":          "strasse",
		"ærø":             "aero",
		"a b   c":         "a_b_c",
		"日本語サイト":           "_",
		"shop_2024-fall":  "shop_2024-fall",
		"www.example.com": "www_example_com",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestSanitizeAlphabetAndLength(t *testing.T) {
	inputs := []string{
		"",
		"Über-Straße/und/so?weiter=1",
		strings.Repeat("x", 200),
		strings.Repeat("é", 200),
		"名前 with mixed ASCII and 漢字 1234",
		"!@#$%^&*()",
	}
	for _, in := range inputs {
		out := Sanitize(in)
		assert.True(t, labelRe.MatchString(out), "output %q for %q", out, in)
		assert.LessOrEqual(t, len(out), 64)
	}
}

func TestSanitizeTruncates(t *testing.T) {
	out := Sanitize(strings.Repeat("ab", 100))
	assert.Len(t, out, 64)
}

func TestSanitizeSuppressesTrailingFiller(t *testing.T) {
	// After 16 real characters no more placeholders are emitted.
	in := strings.Repeat("a", 16) + "!!!x!!!"
	assert.Equal(t, strings.Repeat("a", 16)+"x", Sanitize(in))
	// Before the cutoff a run still yields a single placeholder.
	assert.Equal(t, "a_b", Sanitize("a!!!b"))
}

func TestSiteName(t *testing.T) {
	got, err := SiteName("https://www.example.com/some/page")
	require.NoError(t, err)
	assert.Equal(t, "www_example_com", got)

	got, err = SiteName("My Shop")
	require.NoError(t, err)
	assert.Equal(t, "my_shop", got)

	_, err = SiteName("")
	assert.Error(t, err)

	_, err = SiteName("https://")
	assert.Error(t, err)
}
