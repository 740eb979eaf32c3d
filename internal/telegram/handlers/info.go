package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/store"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
)

// About shows the society description.
func (h *Handlers) About(c tele.Context) error {
	return helpers.SendMDV2(c, aboutText(h.cfg))
}

// ContactInfo shows the society's contact details.
func (h *Handlers) ContactInfo(c tele.Context) error {
	return helpers.SendMDV2(c, contactInfoText(h.cfg))
}

// Events lists active events.
func (h *Handlers) Events(c tele.Context) error {
	events, err := h.st.ActiveEvents(h.ctx(c), store.CategoryEvent)
	if err != nil || len(events) == 0 {
		return helpers.SendMDV2(c, textNoEvents)
	}
	return helpers.SendMDV2(c, eventListText("📅 *رویدادهای پیش رو:*", events))
}

// Workshops lists active workshops.
func (h *Handlers) Workshops(c tele.Context) error {
	events, err := h.st.ActiveEvents(h.ctx(c), store.CategoryWorkshop)
	if err != nil || len(events) == 0 {
		return helpers.SendMDV2(c, textNoWorkshops)
	}
	return helpers.SendMDV2(c, eventListText("🎓 *کارگاه‌های آموزشی:*", events))
}
