// Package sanitize turns arbitrary site identifiers into repository
// node-name labels.
package sanitize

import (
	"errors"
	"net/url"
	"strings"
)

const (
	// maxLen is the hard cap on sanitized output length.
	maxLen = 64
	// fillerCutoff stops placeholder emission once this many real
	// characters exist, so truncated names don't trail filler.
	fillerCutoff = 16
	placeholder  = "_"
)

// charMap maps Latin-1 code points to their output replacement. Anything
// not set here, and every code point >= 256, maps to the placeholder.
var charMap [256]string

func init() {
	for c := 'a'; c <= 'z'; c++ {
		charMap[c] = string(c)
		charMap[c-'a'+'A'] = string(c)
	}
	for c := '0'; c <= '9'; c++ {
		charMap[c] = string(c)
	}
	charMap['-'] = "-"
	charMap['_'] = "_"

	folds := map[string]string{
		"àáâãäå": "a", "ÀÁÂÃÄÅ": "a",
		"ç": "c", "Ç": "c",
		"èéêë": "e", "ÈÉÊË": "e",
		"ìíîï": "i", "ÌÍÎÏ": "i",
		"ñ": "n", "Ñ": "n",
		"òóôõöø": "o", "ÒÓÔÕÖØ": "o",
		"ùúûü": "u", "ÙÚÛÜ": "u",
		"ýÿ": "y", "Ý": "y",
		"æ": "ae", "Æ": "ae",
		"ß": "ss",
		"ð": "d", "Ð": "d",
		"þ": "th", "Þ": "th",
	}
	for from, to := range folds {
		for _, r := range from {
			charMap[r] = to
		}
	}
}

// Sanitize remaps raw into the repository label alphabet [a-z0-9_-].
// Runs of unmappable characters compress to a single placeholder, and
// once fillerCutoff real characters exist no further placeholders are
// emitted at all; suppressed placeholders still count against the
// 64-character cap.
func Sanitize(raw string) string {
	var b strings.Builder
	total := 0
	real := 0
	inRun := false

	for _, r := range raw {
		if total >= maxLen {
			break
		}
		rep := placeholder
		if r < 256 && charMap[r] != "" {
			rep = charMap[r]
		}
		if rep == placeholder {
			if !inRun && real < fillerCutoff {
				b.WriteString(placeholder)
			}
			inRun = true
			total++
			continue
		}
		inRun = false
		for _, c := range rep {
			if total >= maxLen {
				break
			}
			b.WriteRune(c)
			total++
			real++
		}
	}
	return b.String()
}

// SiteName derives the sanitized site label from a configuration value,
// which may be a full URL (host wins) or a bare identifier.
func SiteName(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("site name is empty")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", errors.New("site name looks like a URL but has no host: " + raw)
		}
		raw = u.Host
	}
	return Sanitize(raw), nil
}
