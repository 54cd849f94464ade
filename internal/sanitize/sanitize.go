package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength is used when a caller passes a non-positive max length
const DefaultMaxLength = 20

// Ellipsis joins the head and tail of an overlong stem in Alternative mode
const Ellipsis = "…"

// tailWindow is how many trailing runes Standard mode scrubs of spaces and periods
const tailWindow = 5

// Mode selects a naming policy. It is chosen once per run.
type Mode int

const (
	// Standard keeps a left-anchored prefix of the text
	Standard Mode = iota
	// Alternative drops leading digits and all periods, and elides the middle of long names
	Alternative
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Alternative:
		return "alternative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config or flag value into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "std":
		return Standard, nil
	case "alternative", "alt":
		return Alternative, nil
	default:
		return Standard, fmt.Errorf("unknown sanitization mode %q (expected standard or alternative)", s)
	}
}

var (
	// Leading whitespace, bullets, dots, dashes and numbering tokens such as "1.", "2)" or "1.2.3"
	listMarkerRe = regexp.MustCompile(`^(?:\s|[-*+•.]|\d+(?:\.\d+)*[.)](?:\s|$)|\d+(?:\.\d+)+(?:\s|$))+`)
	extensionRe  = regexp.MustCompile(`^(.+)(\.[A-Za-z0-9]{1,5})$`)
)

func isIllegal(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return unicode.IsControl(r)
}

// RemoveIllegal drops characters that are not allowed in names on common filesystems
func RemoveIllegal(s string) string {
	return strings.Map(func(r rune) rune {
		if isIllegal(r) {
			return -1
		}
		return r
	}, s)
}

// StripListMarkers removes leading whitespace, bullets and numbering
func StripListMarkers(s string) string {
	return listMarkerRe.ReplaceAllString(s, "")
}

// Sanitize maps free text to a short filesystem-safe base name. The result
// never contains a path separator and may be empty when nothing usable is
// left of the input.
func Sanitize(text string, maxLength int, mode Mode) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	s := norm.NFC.String(text)
	s = RemoveIllegal(s)
	s = strings.TrimSpace(StripListMarkers(s))

	if mode == Alternative {
		// "1.5x" needs two rounds: digits, then the exposed period
		for {
			t := strings.TrimLeftFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
			t = strings.TrimSpace(StripListMarkers(t))
			if t == s {
				break
			}
			s = t
		}
	}

	s = strings.Join(strings.Fields(s), "_")
	if s == "" {
		return ""
	}

	stem, ext := splitExtension(s)

	switch mode {
	case Alternative:
		stem = strings.ReplaceAll(stem, ".", "")
		stem = elide(stem, maxLength)
	default:
		stem = truncate(stem, maxLength)
		stem = scrubTail(stem)
	}

	if stem == "" {
		return ""
	}
	return stem + ext
}

func splitExtension(s string) (string, string) {
	m := extensionRe.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	return m[1], m[2]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// scrubTail removes spaces and periods from the last few runes until none are
// left there, and drops a dangling underscore left behind by truncation.
func scrubTail(s string) string {
	r := []rune(s)
	for {
		for len(r) > 0 && r[len(r)-1] == '_' {
			r = r[:len(r)-1]
		}
		start := max(len(r)-tailWindow, 0)
		kept := r[:start:start]
		removed := false
		for _, c := range r[start:] {
			if c == ' ' || c == '.' {
				removed = true
				continue
			}
			kept = append(kept, c)
		}
		r = kept
		if !removed {
			return string(r)
		}
	}
}

// elide keeps the head and tail of an overlong stem joined by Ellipsis so the
// result is exactly n runes long.
func elide(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	head := (n - 1) / 2
	tail := n - 1 - head
	return string(r[:head]) + Ellipsis + string(r[len(r)-tail:])
}
