package langtag

import "strings"

// IsValid reports whether tag is a structurally valid BCP 47 language tag.
// The whole string must be consumed by the grammar; partial matches fail.
// It never panics and is case-insensitive.
func IsValid(tag string) bool {
	if tag == "" {
		return false
	}
	subtags := strings.Split(strings.ToLower(tag), "-")

	// Private-use-only tag: x followed by one or more 1-8 alphanumerics.
	if subtags[0] == "x" {
		if len(subtags) < 2 {
			return false
		}
		for _, st := range subtags[1:] {
			if !isAlnum(st, 1, 8) {
				return false
			}
		}
		return true
	}

	pos := 0
	switch {
	case isAlpha(subtags[0], 2, 3):
		pos++
		// Up to 3 extlang subtags of exactly 3 letters each.
		for n := 0; n < 3 && pos < len(subtags) && isAlpha(subtags[pos], 3, 3); n++ {
			pos++
		}
	case isAlpha(subtags[0], 4, 4):
		pos++
	case isAlpha(subtags[0], 5, 8):
		pos++
	default:
		return false
	}

	// Optional script: exactly 4 letters.
	if pos < len(subtags) && isAlpha(subtags[pos], 4, 4) {
		pos++
	}

	// Optional region: exactly 2 letters or exactly 3 digits.
	if pos < len(subtags) && (isAlpha(subtags[pos], 2, 2) || isDigits(subtags[pos], 3)) {
		pos++
	}

	// Variants, consumed greedily.
	for pos < len(subtags) && isVariant(subtags[pos]) {
		pos++
	}

	// Extension groups: singleton (not x) followed by one or more 2-8 alphanumerics.
	for pos < len(subtags) && isSingleton(subtags[pos]) {
		pos++
		n := 0
		for pos < len(subtags) && isAlnum(subtags[pos], 2, 8) {
			pos++
			n++
		}
		if n == 0 {
			return false
		}
	}

	// Trailing private use: x followed by one or more 1-8 alphanumerics.
	if pos < len(subtags) && subtags[pos] == "x" {
		pos++
		n := 0
		for pos < len(subtags) && isAlnum(subtags[pos], 1, 8) {
			pos++
			n++
		}
		if n == 0 {
			return false
		}
	}

	return pos == len(subtags)
}

func isVariant(s string) bool {
	if len(s) == 4 && s[0] >= '0' && s[0] <= '9' && isAlnum(s[1:], 3, 3) {
		return true
	}
	return isAlnum(s, 5, 8)
}

func isSingleton(s string) bool {
	return len(s) == 1 && s != "x" && isAlnum(s, 1, 1)
}

func isAlpha(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlnum(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
