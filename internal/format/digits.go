package format

import "strings"

var asciiToPersian = map[rune]rune{
	'0': '۰', '1': '۱', '2': '۲', '3': '۳', '4': '۴',
	'5': '۵', '6': '۶', '7': '۷', '8': '۸', '9': '۹',
}

// PersianDigits renders ASCII digits with their Persian counterparts for
// display. Conversion the other way happens during validation.
func PersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := asciiToPersian[r]; ok {
			b.WriteRune(d)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
