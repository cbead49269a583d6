package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make converts a title into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed into single hyphens.
func Make(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// Unique returns the first of base, base-1, base-2, ... for which exists
// reports false. The suffix counter starts at 1 so two articles titled the
// same end up as "title" and "title-1".
func Unique(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
