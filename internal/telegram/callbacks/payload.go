// Package callbacks decodes Telebot callback data.
package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Callback keys used across the bot. Inline buttons are built with
// these uniques so the router can dispatch without positional parsing.
const (
	KeySelectEvent   = "reg_event"
	KeyConfirmReg    = "reg_confirm"
	KeyEditReg       = "reg_edit"
	KeyCancelReg     = "reg_cancel"
	KeyCancelTarget  = "cancel_reg"
	KeyCancelConfirm = "cancel_confirm"
	KeyBackToProfile = "back_profile"
	KeyCheckMember   = "check_membership"
	KeyMsgPrev       = "msg_prev"
	KeyMsgNext       = "msg_next"
	KeyMsgRead       = "msg_read"
	KeyMsgDelete     = "msg_del"
	KeyMsgReply      = "msg_reply"
)

// Parse splits Telebot's \f<unique>|<payload> encoding into its parts.
func Parse(cb *tele.Callback) (key, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	key = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

// Key returns the callback unique for the current update.
func Key(c tele.Context) string {
	k, _ := Parse(c.Callback())
	return k
}

// Payload returns the data after the unique, if any.
func Payload(c tele.Context) string {
	_, p := Parse(c.Callback())
	return p
}

// PayloadInt64 parses the payload as a numeric id.
func PayloadInt64(c tele.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(Payload(c)), 10, 64)
}
