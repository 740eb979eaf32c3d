package handlers

import "testing"

func TestParseEventInput(t *testing.T) {
	in, err := parseEventInput("کارگاه CNC | آشنایی با ماشینکاری | ۱۴۰۴/۱۰/۱۵ | 10:00 | سالن ۲ | 25 | workshop", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Name != "کارگاه CNC" || in.Capacity != 25 || in.Category != "workshop" {
		t.Fatalf("unexpected result: %+v", in)
	}
}

func TestParseEventInputDefaultsCategory(t *testing.T) {
	in, err := parseEventInput("رویداد | توضیح | ۱۴۰۴/۱۱/۰۱ | 14:00 | آمفی‌تئاتر | 100", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Category != "event" {
		t.Fatalf("expected default category event, got %q", in.Category)
	}
}

func TestParseEventInputRejectsBadCapacity(t *testing.T) {
	if _, err := parseEventInput("الف | ب | ج | د | ه | صفر", false); err == nil {
		t.Fatalf("non-numeric capacity must fail")
	}
	if _, err := parseEventInput("الف | ب | ج | د | ه | 0", false); err == nil {
		t.Fatalf("zero capacity must fail")
	}
	if _, err := parseEventInput("الف | ب", false); err == nil {
		t.Fatalf("too few fields must fail")
	}
}
