package format

import "strings"

// ProgressBar renders progress in [0, 1] as a bar of the given length.
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(n + n/3 + len(sign))
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
