package literal

import (
	"fmt"
	"regexp"
	"strings"
)

// XQuery-style \uXXXX escapes, rewritten to the \x{XXXX} syntax the regexp
// package understands.
var unicodeEscapePattern = regexp.MustCompile(`\\u([0-9A-Fa-f]{4})`)

// Matches reports whether value matches pattern under the given XQuery
// flags. The q flag (optionally combined with i) selects literal substring
// containment; any other combination of the i, s, m and x flags selects
// full regular-expression matching. Unknown flags or a q combined with
// anything but i are an error, never a silent fallback.
func Matches(value, pattern, flags string) (bool, error) {
	if strings.ContainsRune(flags, 'q') {
		switch strings.ReplaceAll(flags, "q", "") {
		case "":
			return strings.Contains(value, pattern), nil
		case "i":
			return strings.Contains(strings.ToLower(value), strings.ToLower(pattern)), nil
		}
		return false, fmt.Errorf("invalid flag combination %q", flags)
	}

	var opts string
	for _, flag := range flags {
		switch flag {
		case 'i', 's', 'm':
			if !strings.ContainsRune(opts, flag) {
				opts += string(flag)
			}
		case 'x':
			pattern = stripPatternWhitespace(pattern)
		default:
			return false, fmt.Errorf("unsupported regular expression flag: %c", flag)
		}
	}

	pattern = unicodeEscapePattern.ReplaceAllString(pattern, `\x{$1}`)
	if opts != "" {
		pattern = "(?" + opts + ")" + pattern
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid regular expression: %w", err)
	}
	return regex.MatchString(value), nil
}

// stripPatternWhitespace implements the x flag: whitespace in the pattern
// is ignored unless escaped or inside a character class.
func stripPatternWhitespace(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == ']':
			inClass = false
			b.WriteByte(c)
		case !inClass && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			// dropped
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
