package convert

import (
	"strconv"
	"strings"
)

// Replacer maps a literal non-numeric status value (e.g. "ok", "yes") to a
// numeric substitute. Lookups are exact and case-sensitive.
type Replacer interface {
	Replace(text string) (string, bool)
}

// coerce decides whether raw becomes a metric value. Numbers are accepted
// as-is and always win over the replacement table; other text is accepted
// only when rep has an entry for it.
func coerce(raw string, rep Replacer) (string, bool) {
	text := strings.TrimSpace(raw)
	if isDecimal(text) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return formatValue(v), true
		}
	}
	if rep == nil {
		return "", false
	}
	return rep.Replace(text)
}

// isDecimal rejects hexadecimal float literals ("0x1p4"), which ParseFloat
// accepts but status pages only ever contain as opaque strings.
func isDecimal(text string) bool {
	digits := strings.TrimLeft(text, "+-")
	return !strings.HasPrefix(digits, "0x") && !strings.HasPrefix(digits, "0X")
}

// formatValue renders v in its shortest decimal form without an exponent:
// 42, 1.5, 0.001.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
