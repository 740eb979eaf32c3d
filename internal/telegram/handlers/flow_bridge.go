package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/flow"
	"github.com/uma-mfg/societybot/internal/telegram/callbacks"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
)

// StartRegistration opens the registration dialog behind the membership gate.
func (h *Handlers) StartRegistration(c tele.Context) error {
	return h.requireMembership(c, "سیستم ثبت‌نام", func() error {
		return h.render(c, h.engine.StartRegistration(h.ctx(c), userInfo(c)))
	})
}

// Profile shows the user's registrations and the cancellation sub-flow.
func (h *Handlers) Profile(c tele.Context) error {
	return h.render(c, h.engine.StartProfile(h.ctx(c), userInfo(c)))
}

// StartContactAdmin opens the contact dialog behind the membership gate.
func (h *Handlers) StartContactAdmin(c tele.Context) error {
	return h.requireMembership(c, "سیستم تماس با مدیر", func() error {
		return h.render(c, h.engine.StartContact(h.ctx(c), userInfo(c)))
	})
}

// CancelFlow aborts whatever dialog the user is in.
func (h *Handlers) CancelFlow(c tele.Context) error {
	replies := h.engine.Handle(h.ctx(c), c.Sender().ID, flow.Input{Kind: flow.KindCancel})
	if replies == nil {
		return helpers.SendText(c, "عملیاتی در جریان نیست.", mainMenuMarkup())
	}
	return h.render(c, replies)
}

// InProgress satisfies the router's FSM interface.
func (h *Handlers) InProgress(userID int64) bool {
	return h.engine.InProgress(userID)
}

// HandleUpdate feeds free text into the active dialog. Keyboard labels
// that signal cancellation are classified before dispatch.
func (h *Handlers) HandleUpdate(c tele.Context) error {
	text := c.Text()
	in := flow.Input{Kind: flow.KindText, Text: text}
	switch text {
	case LabelCancelEntry, LabelCancelFlow, LabelBackToMenu, "/cancel":
		in = flow.Input{Kind: flow.KindCancel}
	case LabelCancelMyReg:
		in = flow.Input{Kind: flow.KindSelect}
	}
	replies := h.engine.Handle(h.ctx(c), c.Sender().ID, in)
	return h.render(c, replies)
}

// UnknownText nudges users without an active dialog back to the menu.
func (h *Handlers) UnknownText(c tele.Context) error {
	return helpers.SendText(c, textUnknownInput, mainMenuMarkup())
}

func (h *Handlers) flowCallback(kind flow.InputKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		in := flow.Input{Kind: kind, Payload: callbacks.Payload(c)}
		return h.render(c, h.engine.Handle(h.ctx(c), c.Sender().ID, in))
	}
}

func (h *Handlers) flowIDCallback(kind flow.InputKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		id, err := callbacks.PayloadInt64(c)
		if err != nil {
			return nil
		}
		in := flow.Input{Kind: kind, ID: id}
		return h.render(c, h.engine.Handle(h.ctx(c), c.Sender().ID, in))
	}
}
