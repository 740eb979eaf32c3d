package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/flow"
	"github.com/uma-mfg/societybot/internal/format"
	"github.com/uma-mfg/societybot/internal/telegram/callbacks"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
	"github.com/uma-mfg/societybot/internal/telegram/keyboard"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.Reply(
		[]string{LabelAbout, LabelEvents},
		[]string{LabelWorkshop, LabelContact},
		[]string{LabelProfile, LabelMessage},
		[]string{LabelRegister},
	)
}

func membershipMarkup(channelURL string) *tele.ReplyMarkup {
	return keyboard.InlineURL(LabelJoinChannel, channelURL,
		keyboard.InlineBtn{Text: LabelVerifyMember, Unique: callbacks.KeyCheckMember},
	)
}

func eventsMarkup(events []flowEvent) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(events)+1)
	for _, ev := range events {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   ev.Name,
			Unique: callbacks.KeySelectEvent,
			Data:   ev.Name,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{
		Text:   LabelCancelEntry,
		Unique: callbacks.KeyCancelReg,
	}})
	return keyboard.InlineRows(rows...)
}

type flowEvent struct{ Name string }

func confirmationMarkup() *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.InlineBtn{Text: LabelConfirmFinal, Unique: callbacks.KeyConfirmReg},
		keyboard.InlineBtn{Text: LabelEditInfo, Unique: callbacks.KeyEditReg},
		keyboard.InlineBtn{Text: LabelCancelBtn, Unique: callbacks.KeyCancelReg},
	)
}

func profileMarkup(hasRegs bool) *tele.ReplyMarkup {
	if hasRegs {
		return keyboard.Reply([]string{LabelCancelMyReg}, []string{LabelBackToMenu})
	}
	return keyboard.Reply([]string{LabelBackToMenu})
}

func cancelListMarkup(r flow.Reply) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(r.Regs)+1)
	for _, reg := range r.Regs {
		label := fmt.Sprintf("❌ انصراف از %s (%s)", reg.EventName, format.JalaliFromString(reg.EventDate))
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   label,
			Unique: callbacks.KeyCancelTarget,
			Data:   fmt.Sprintf("%d", reg.ID),
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{
		Text:   LabelBackToProfile,
		Unique: callbacks.KeyBackToProfile,
	}})
	return keyboard.InlineRows(rows...)
}

func cancelConfirmMarkup(targetID int64) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.InlineBtn{Text: LabelConfirmCancel, Unique: callbacks.KeyCancelConfirm, Data: fmt.Sprintf("%d", targetID)},
		keyboard.InlineBtn{Text: LabelAbortCancel, Unique: callbacks.KeyBackToProfile},
	)
}

func (h *Handlers) markupFor(r flow.Reply) *tele.ReplyMarkup {
	switch r.Keyboard {
	case flow.KbMain:
		return mainMenuMarkup()
	case flow.KbRemove:
		return keyboard.Remove()
	case flow.KbCancelEntry:
		return keyboard.Reply([]string{LabelCancelEntry})
	case flow.KbEvents:
		evs := make([]flowEvent, 0, len(r.Events))
		for _, ev := range r.Events {
			evs = append(evs, flowEvent{Name: ev.Name})
		}
		return eventsMarkup(evs)
	case flow.KbConfirmRegistration:
		return confirmationMarkup()
	case flow.KbProfile:
		return profileMarkup(r.HasRegs)
	case flow.KbCancelList:
		return cancelListMarkup(r)
	case flow.KbCancelConfirm:
		return cancelConfirmMarkup(r.TargetID)
	case flow.KbBackToMenu:
		return keyboard.Reply([]string{LabelBackToMenu})
	default:
		return nil
	}
}

// render delivers the engine's replies: edits and sends go back to the
// current chat, admin and direct messages go through the notifier.
func (h *Handlers) render(c tele.Context, replies []flow.Reply) error {
	ctx := h.ctx(c)
	mdv2 := &tele.SendOptions{ParseMode: tele.ModeMarkdownV2}

	for _, r := range replies {
		switch {
		case r.ToAdmins:
			if h.notifier != nil {
				h.notifier.Admins(ctx, r.Text, mdv2)
			}
			continue
		case r.DirectTo != 0:
			if h.notifier != nil {
				if r.Markdown {
					h.notifier.Direct(ctx, r.DirectTo, r.Text, mdv2)
				} else {
					h.notifier.Direct(ctx, r.DirectTo, r.Text)
				}
			}
			continue
		}

		markup := h.markupFor(r)
		switch {
		case r.Edit && r.Markdown:
			if err := helpers.EditOrSendMDV2(c, r.Text, markup); err != nil {
				return err
			}
		case r.Edit:
			if err := c.EditOrSend(r.Text, markup); err != nil {
				return err
			}
		case r.Markdown:
			if err := helpers.SendMDV2(c, r.Text, markup); err != nil {
				return err
			}
		default:
			var err error
			if markup != nil {
				err = helpers.SendText(c, r.Text, markup)
			} else {
				err = helpers.SendText(c, r.Text)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
