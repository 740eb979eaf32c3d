// Package format renders values for Telegram messages: MarkdownV2
// escaping, Persian digit output, and Jalali dates.
package format

import "strings"

const mdV2Specials = `\_*[]()~` + "`" + `>#+-=|{}.!`

// EscapeMarkdown escapes MarkdownV2 special characters so arbitrary user
// text renders literally.
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		if strings.ContainsRune(mdV2Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
