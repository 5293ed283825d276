package report

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column arithmetic counts runes, not bytes, so emoji and box-drawing glyphs
// line up with ASCII text.

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func padRight(s string, width int) string {
	if gap := width - runeLen(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// pad truncates then pads so the result is exactly width runes.
func pad(s string, width int) string {
	return padRight(truncateRunes(s, width), width)
}

func center(s string, width int) string {
	gap := width - runeLen(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// wrapAction breaks action text into arrow-prefixed lines of at most 54
// columns. Continuation lines are indented under the arrow.
func wrapAction(action string) []string {
	var lines []string
	current := "       → "
	for _, word := range strings.Fields(action) {
		if runeLen(current)+runeLen(word) <= 54 {
			current += word + " "
		} else {
			lines = append(lines, current)
			current = strings.Repeat(" ", 9) + word + " "
		}
	}
	if strings.TrimSpace(current) != "" {
		lines = append(lines, current)
	}
	return lines
}

// formatDecimal prints a float with minimal digits but always at least one
// decimal place, so whole numbers render as "4.0" rather than "4".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
