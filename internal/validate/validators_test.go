package validate

import "testing"

func TestNormalizeDigits(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"۰۹۱۲۳۴۵۶۷۸۹", "09123456789"},
		{"٠٩١٢٣٤٥٦٧٨٩", "09123456789"},
		{"۴۰۲۱۲۳۴۵", "40212345"},
		{"12345", "12345"},
		{"کد ۱۲۳", "کد 123"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeDigits(c.in); got != c.want {
			t.Errorf("NormalizeDigits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFullName(t *testing.T) {
	valid := []string{
		"علی احمدی",
		"محمد رضا کریمی",
		"زهرا محمدی",
	}
	for _, name := range valid {
		if !FullName(name) {
			t.Errorf("FullName(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		"علی",           // one part
		"علی اح",        // short part
		"Ali Ahmadi",    // latin letters
		"علی احمدی 123", // digits
		"علی‌احمدی",     // joined with ZWNJ, no space
	}
	for _, name := range invalid {
		if FullName(name) {
			t.Errorf("FullName(%q) = true, want false", name)
		}
	}
}

func TestStudentID(t *testing.T) {
	valid := []string{"40212345", "402123456789", "۴۰۲۱۲۳۴۵"}
	for _, id := range valid {
		if !StudentID(id) {
			t.Errorf("StudentID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "1234567", "4021234a", "چهل و دو"}
	for _, id := range invalid {
		if StudentID(id) {
			t.Errorf("StudentID(%q) = true, want false", id)
		}
	}
}

func TestNationalID(t *testing.T) {
	valid := []string{"1111111111", "0012345678", "۱۱۱۱۱۱۱۱۱۱"}
	for _, id := range valid {
		if !NationalID(id) {
			t.Errorf("NationalID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "123456789", "12345678901", "12345678ab"}
	for _, id := range invalid {
		if NationalID(id) {
			t.Errorf("NationalID(%q) = true, want false", id)
		}
	}
}

func TestNationalIDChecksum(t *testing.T) {
	// 1111111111: sum = 1*(10+9+...+2) = 54, 54 % 11 = 10, 10 + 1 = 11
	if !NationalIDChecksum("1111111111") {
		t.Error("NationalIDChecksum(1111111111) = false, want true")
	}
	if !NationalIDChecksum("۱۱۱۱۱۱۱۱۱۱") {
		t.Error("NationalIDChecksum with Persian digits = false, want true")
	}
	if NationalIDChecksum("1111111112") {
		t.Error("NationalIDChecksum(1111111112) = true, want false")
	}
	if NationalIDChecksum("123456789") {
		t.Error("NationalIDChecksum with 9 digits = true, want false")
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"09123456789", "۰۹۱۲۳۴۵۶۷۸۹", "09981234567"}
	for _, p := range valid {
		if !Phone(p) {
			t.Errorf("Phone(%q) = false, want true", p)
		}
	}
	invalid := []string{"", "9123456789", "0912345678", "091234567890", "0912345678a", "+989123456789"}
	for _, p := range invalid {
		if Phone(p) {
			t.Errorf("Phone(%q) = true, want false", p)
		}
	}
}

func TestMessageText(t *testing.T) {
	if !MessageText("سلام، سوال دارم") {
		t.Error("expected valid message")
	}
	if MessageText("  سلام  ") {
		t.Error("trimmed 4-rune message should fail")
	}
	if MessageText("    ") {
		t.Error("whitespace-only message should fail")
	}
}
