package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	cases := []struct {
		data        string
		unique      string
		wantKey     string
		wantPayload string
	}{
		{data: "\\freg_event|کارگاه تست ۱", wantKey: "reg_event", wantPayload: "کارگاه تست ۱"},
		{data: "\\fcancel_reg|42", wantKey: "cancel_reg", wantPayload: "42"},
		{data: "payload", unique: "reg_confirm", wantKey: "reg_confirm", wantPayload: "payload"},
		{data: "\\fback_profile", wantKey: "back_profile", wantPayload: ""},
	}
	for _, tc := range cases {
		key, payload := Parse(&tele.Callback{Unique: tc.unique, Data: tc.data})
		if key != tc.wantKey || payload != tc.wantPayload {
			t.Fatalf("Parse(%q,%q) = %q,%q want %q,%q",
				tc.unique, tc.data, key, payload, tc.wantKey, tc.wantPayload)
		}
	}
}

func TestParseNil(t *testing.T) {
	if k, p := Parse(nil); k != "" || p != "" {
		t.Fatalf("nil callback should parse to empty, got %q,%q", k, p)
	}
}
