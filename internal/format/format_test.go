package format

import (
	"testing"
	"time"
)

func TestEscapeMarkdown(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"a_b*c", `a\_b\*c`},
		{"10.5 (approx)", `10\.5 \(approx\)`},
		{"قیمت: 100!", `قیمت: 100\!`},
	}
	for _, c := range cases {
		if got := EscapeMarkdown(c.in); got != c.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPersianDigits(t *testing.T) {
	if got := PersianDigits("0912/34"); got != "۰۹۱۲/۳۴" {
		t.Errorf("PersianDigits = %q", got)
	}
	if got := PersianDigits("سالن ۲"); got != "سالن ۲" {
		t.Errorf("PersianDigits should leave Persian digits alone, got %q", got)
	}
}

func TestJalaliDate(t *testing.T) {
	cases := []struct {
		gy, gm, gd int
		want       string
	}{
		{2024, 3, 20, "1403/01/01"},
		{2025, 3, 21, "1404/01/01"},
		{2026, 1, 5, "1404/10/15"},
		{2021, 3, 20, "1399/12/30"}, // leap year end
	}
	for _, c := range cases {
		got := JalaliDate(time.Date(c.gy, time.Month(c.gm), c.gd, 12, 0, 0, 0, time.UTC))
		if got != c.want {
			t.Errorf("JalaliDate(%d-%02d-%02d) = %s, want %s", c.gy, c.gm, c.gd, got, c.want)
		}
	}
}

func TestJalaliFromString(t *testing.T) {
	if got := JalaliFromString("۱۴۰۴/۱۰/۱۵"); got != "۱۴۰۴/۱۰/۱۵" {
		t.Errorf("already-Jalali string should pass through, got %q", got)
	}
	if got := JalaliFromString("2025-03-21"); got != "1404/01/01" {
		t.Errorf("JalaliFromString(2025-03-21) = %q", got)
	}
	if got := JalaliFromString("not a date"); got != Unknown {
		t.Errorf("expected %q, got %q", Unknown, got)
	}
	if got := JalaliFromString(""); got != Unknown {
		t.Errorf("expected %q for empty input, got %q", Unknown, got)
	}
}
