package layout

import "strings"

// Normalize 把所有空白（含换行）折叠为单个空格并去掉首尾空白。
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeLegacy keeps the historical rule: newlines become spaces, each
// "two spaces" pair becomes one, then both ends are trimmed. Longer runs of
// whitespace survive partially.
func NormalizeLegacy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "  ", " ")
	return strings.TrimSpace(text)
}
