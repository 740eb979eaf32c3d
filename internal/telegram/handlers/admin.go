package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/format"
	"github.com/uma-mfg/societybot/internal/store"
	"github.com/uma-mfg/societybot/internal/telegram/callbacks"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
	"github.com/uma-mfg/societybot/internal/telegram/keyboard"
)

const addEventUsage = "قالب: /addevent نام | توضیحات | تاریخ | ساعت | محل | ظرفیت | دسته (workshop یا event)"

func parseEventInput(payload string, wantCategory bool) (store.EventInput, error) {
	parts := strings.Split(payload, "|")
	if len(parts) < 6 {
		return store.EventInput{}, errors.New("bad field count")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	capacity, err := strconv.Atoi(parts[5])
	if err != nil || capacity <= 0 {
		return store.EventInput{}, errors.New("bad capacity")
	}
	in := store.EventInput{
		Name:        parts[0],
		Description: parts[1],
		Date:        parts[2],
		Time:        parts[3],
		Location:    parts[4],
		Capacity:    capacity,
		Category:    store.CategoryEvent,
	}
	if len(parts) >= 7 && parts[6] != "" {
		in.Category = parts[6]
	} else if wantCategory {
		return store.EventInput{}, errors.New("missing category")
	}
	if in.Name == "" || in.Date == "" {
		return store.EventInput{}, errors.New("missing required field")
	}
	return in, nil
}

// AddEvent creates an event from a pipe-separated payload.
func (h *Handlers) AddEvent(c tele.Context) error {
	in, err := parseEventInput(c.Message().Payload, false)
	if err != nil {
		return helpers.SendText(c, addEventUsage)
	}
	id, err := h.st.CreateEvent(h.ctx(c), in)
	if err != nil {
		if errors.Is(err, store.ErrEventExists) {
			return helpers.SendText(c, "رویدادی با این نام از قبل وجود دارد.")
		}
		return helpers.SendText(c, "ثبت رویداد ناموفق بود.")
	}
	return helpers.SendText(c, fmt.Sprintf("✅ رویداد با شناسه %d ثبت شد.", id))
}

// EditEvent updates an event: /editevent id | name | description | date | time | location | capacity | category
func (h *Handlers) EditEvent(c tele.Context) error {
	payload := c.Message().Payload
	idPart, rest, found := strings.Cut(payload, "|")
	if !found {
		return helpers.SendText(c, "قالب: /editevent شناسه | نام | توضیحات | تاریخ | ساعت | محل | ظرفیت | دسته")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return helpers.SendText(c, "شناسه نامعتبر است.")
	}
	in, err := parseEventInput(rest, false)
	if err != nil {
		return helpers.SendText(c, "قالب: /editevent شناسه | نام | توضیحات | تاریخ | ساعت | محل | ظرفیت | دسته")
	}
	switch err := h.st.UpdateEvent(h.ctx(c), id, in); {
	case err == nil:
		return helpers.SendText(c, "✅ رویداد به‌روزرسانی شد.")
	case errors.Is(err, store.ErrEventNotFound):
		return helpers.SendText(c, "رویداد یافت نشد.")
	case errors.Is(err, store.ErrCapacityBelowRegistered):
		return helpers.SendText(c, "ظرفیت جدید از تعداد ثبت‌نام‌شده‌ها کمتر است.")
	case errors.Is(err, store.ErrEventExists):
		return helpers.SendText(c, "رویدادی با این نام از قبل وجود دارد.")
	default:
		return helpers.SendText(c, "به‌روزرسانی ناموفق بود.")
	}
}

// ToggleEvent flips an event's active flag.
func (h *Handlers) ToggleEvent(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
	if err != nil {
		return helpers.SendText(c, "قالب: /toggleevent شناسه")
	}
	active, err := h.st.ToggleEvent(h.ctx(c), id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			return helpers.SendText(c, "رویداد یافت نشد.")
		}
		return helpers.SendText(c, "تغییر وضعیت ناموفق بود.")
	}
	if active {
		return helpers.SendText(c, "✅ رویداد فعال شد.")
	}
	return helpers.SendText(c, "⏸ رویداد غیرفعال شد.")
}

// DeleteEvent removes an event without registrations.
func (h *Handlers) DeleteEvent(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
	if err != nil {
		return helpers.SendText(c, "قالب: /delevent شناسه")
	}
	switch err := h.st.DeleteEvent(h.ctx(c), id); {
	case err == nil:
		return helpers.SendText(c, "🗑 رویداد حذف شد.")
	case errors.Is(err, store.ErrEventNotFound):
		return helpers.SendText(c, "رویداد یافت نشد.")
	case errors.Is(err, store.ErrHasRegistrations):
		return helpers.SendText(c, "این رویداد ثبت‌نام فعال دارد و حذف نمی‌شود. ابتدا آن را غیرفعال کنید.")
	default:
		return helpers.SendText(c, "حذف ناموفق بود.")
	}
}

// ListEvents shows every event with its id and state.
func (h *Handlers) ListEvents(c tele.Context) error {
	events, err := h.st.AllEvents(h.ctx(c))
	if err != nil || len(events) == 0 {
		return helpers.SendText(c, "هیچ رویدادی ثبت نشده است.")
	}
	var b strings.Builder
	b.WriteString("📋 فهرست رویدادها:\n\n")
	for _, ev := range events {
		state := "فعال"
		if !ev.Active {
			state = "غیرفعال"
		}
		fmt.Fprintf(&b, "#%d %s [%s] (%d/%d) %s\n",
			ev.ID, ev.Name, ev.Category, ev.RegisteredCount, ev.Capacity, state)
	}
	return helpers.SendText(c, b.String())
}

// RecentRegistrations lists the latest sign-ups: /regs [limit]
func (h *Handlers) RecentRegistrations(c tele.Context) error {
	limit := 10
	if p := strings.TrimSpace(c.Message().Payload); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			limit = n
		}
	}
	regs, err := h.st.RecentRegistrations(h.ctx(c), limit)
	if err != nil || len(regs) == 0 {
		return helpers.SendText(c, "ثبت‌نامی یافت نشد.")
	}
	var b strings.Builder
	b.WriteString("📝 آخرین ثبت‌نام‌ها:\n\n")
	for _, reg := range regs {
		fmt.Fprintf(&b, "#%d %s | %s | %s\n",
			reg.ID, reg.FullName, reg.EventName, format.JalaliDate(reg.RegisteredAt))
	}
	return helpers.SendText(c, b.String())
}

// inbox

func inboxMarkup(id int64) *tele.ReplyMarkup {
	data := fmt.Sprintf("%d", id)
	return keyboard.InlineRows(
		[]keyboard.InlineBtn{
			{Text: "⬅️ قبلی", Unique: callbacks.KeyMsgPrev, Data: data},
			{Text: "بعدی ➡️", Unique: callbacks.KeyMsgNext, Data: data},
		},
		[]keyboard.InlineBtn{
			{Text: "✉️ خوانده شد", Unique: callbacks.KeyMsgRead, Data: data},
			{Text: "💬 پاسخ", Unique: callbacks.KeyMsgReply, Data: data},
		},
		[]keyboard.InlineBtn{
			{Text: "🗑 حذف", Unique: callbacks.KeyMsgDelete, Data: data},
		},
	)
}

func inboxText(msg *store.UserMessage, unread int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📬 پیام #%d (%s)\n", msg.ID, msg.Status)
	fmt.Fprintf(&b, "👤 %s (%d)\n", msg.UserName, msg.UserID)
	fmt.Fprintf(&b, "🗓 %s\n\n", format.JalaliDate(msg.SentAt))
	b.WriteString(msg.MessageText)
	if msg.AdminReply != nil {
		fmt.Fprintf(&b, "\n\n↩️ پاسخ: %s", *msg.AdminReply)
	}
	fmt.Fprintf(&b, "\n\nخوانده‌نشده: %d", unread)
	return b.String()
}

func (h *Handlers) showMessage(c tele.Context, id int64, edit bool) error {
	ctx := h.ctx(c)
	msg, err := h.st.Message(ctx, id)
	if err != nil {
		if edit {
			return c.EditOrSend("پیام یافت نشد.")
		}
		return helpers.SendText(c, "پیام یافت نشد.")
	}
	unread, _ := h.st.UnreadCount(ctx)
	text := inboxText(msg, unread)
	if edit {
		return c.EditOrSend(text, inboxMarkup(msg.ID))
	}
	return helpers.SendText(c, text, inboxMarkup(msg.ID))
}

// Inbox opens the newest stored message with navigation buttons.
func (h *Handlers) Inbox(c tele.Context) error {
	ctx := h.ctx(c)
	msgs, err := h.st.ListMessages(ctx, "", 1)
	if err != nil || len(msgs) == 0 {
		return helpers.SendText(c, "صندوق پیام خالی است.")
	}
	return h.showMessage(c, msgs[0].ID, false)
}

func (h *Handlers) inboxNav(forward bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		current, err := callbacks.PayloadInt64(c)
		if err != nil {
			return nil
		}
		var next int64
		if forward {
			next, err = h.st.NextMessageID(h.ctx(c), current, "")
		} else {
			next, err = h.st.PrevMessageID(h.ctx(c), current, "")
		}
		if err != nil || next == 0 {
			_ = c.Respond(&tele.CallbackResponse{Text: "پیام دیگری نیست"})
			return nil
		}
		return h.showMessage(c, next, true)
	}
}

func (h *Handlers) inboxMarkRead(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	if err := h.st.MarkRead(h.ctx(c), id); err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: "پیام یافت نشد"})
		return nil
	}
	return h.showMessage(c, id, true)
}

func (h *Handlers) inboxDelete(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	if err := h.st.DeleteMessage(h.ctx(c), id); err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: "پیام یافت نشد"})
		return nil
	}
	return c.EditOrSend("🗑 پیام حذف شد.")
}

func (h *Handlers) inboxReply(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	admin := userInfo(c)
	return h.render(c, h.engine.StartReply(h.ctx(c), admin, id))
}
