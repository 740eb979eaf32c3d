// Package handlers wires the conversation engine, membership gate, and
// store to Telegram commands, keyboard labels, and callbacks.
package handlers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/config"
	"github.com/uma-mfg/societybot/internal/flow"
	"github.com/uma-mfg/societybot/internal/membership"
	"github.com/uma-mfg/societybot/internal/store"
	tg "github.com/uma-mfg/societybot/internal/telegram"
	"github.com/uma-mfg/societybot/internal/telegram/callbacks"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
	"github.com/uma-mfg/societybot/internal/telegram/notify"
)

// Main menu labels. These double as routing keys for the reply keyboard.
const (
	LabelAbout    = "📖 درباره انجمن"
	LabelEvents   = "📅 رویدادها"
	LabelWorkshop = "🎓 کارگاه‌ها"
	LabelContact  = "📞 تماس با ما"
	LabelProfile  = "👤 مشاهده پروفایل"
	LabelMessage  = "💬 تماس با مدیر"
	LabelRegister = "📝 ثبت‌نام در کارگاه‌ها و رویدادها"

	LabelCancelEntry   = "❌ لغو ثبت‌نام"
	LabelCancelFlow    = "❌ لغو عملیات جاری"
	LabelBackToMenu    = "🔙 بازگشت به منو"
	LabelCancelMyReg   = "❌ انصراف از ثبت‌نام"
	LabelJoinChannel   = "✨ عضویت در کانال"
	LabelVerifyMember  = "✅ تایید عضویت"
	LabelConfirmFinal  = "✅ تأیید نهایی"
	LabelEditInfo      = "✏️ ویرایش اطلاعات"
	LabelCancelBtn     = "❌ لغو"
	LabelConfirmCancel = "✅ تایید انصراف"
	LabelAbortCancel   = "❌ انصراف از انصراف"
	LabelBackToProfile = "🔙 بازگشت به پروفایل"
)

// Handlers groups the bot's update handlers and their dependencies.
type Handlers struct {
	cfg      *config.Config
	st       *store.Store
	engine   *flow.Engine
	gate     *membership.Gate
	notifier *notify.Notifier
}

// New builds the handler set.
func New(cfg *config.Config, st *store.Store, engine *flow.Engine, gate *membership.Gate, notifier *notify.Notifier) *Handlers {
	return &Handlers{cfg: cfg, st: st, engine: engine, gate: gate, notifier: notifier}
}

// SetNotifier installs the notifier once the bot instance exists.
func (h *Handlers) SetNotifier(n *notify.Notifier) {
	h.notifier = n
}

// Register wires all commands and callbacks into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", tg.Command{
		Handler:     h.Start,
		Description: "شروع کار با ربات",
	})
	reg.RegisterCommand("/about", tg.Command{
		Handler:     h.About,
		Description: "درباره انجمن",
		Label:       LabelAbout,
	})
	reg.RegisterCommand("/events", tg.Command{
		Handler:     h.Events,
		Description: "رویدادهای فعال",
		Label:       LabelEvents,
	})
	reg.RegisterCommand("/workshops", tg.Command{
		Handler:     h.Workshops,
		Description: "کارگاه‌های آموزشی",
		Label:       LabelWorkshop,
	})
	reg.RegisterCommand("/contact", tg.Command{
		Handler:     h.ContactInfo,
		Description: "اطلاعات تماس انجمن",
		Label:       LabelContact,
	})
	reg.RegisterCommand("/register", tg.Command{
		Handler:     h.StartRegistration,
		Description: "ثبت‌نام در رویدادها",
		Label:       LabelRegister,
	})
	reg.RegisterCommand("/profile", tg.Command{
		Handler:     h.Profile,
		Description: "مشاهده پروفایل و ثبت‌نام‌ها",
		Label:       LabelProfile,
	})
	reg.RegisterCommand("/message", tg.Command{
		Handler:     h.StartContactAdmin,
		Description: "ارسال پیام به مدیران",
		Label:       LabelMessage,
	})
	reg.RegisterCommand("/cancel", tg.Command{
		Handler:     h.CancelFlow,
		Description: "لغو عملیات جاری",
		Hidden:      true,
	})

	reg.RegisterCommand("/addevent", tg.Command{
		Handler:     h.AddEvent,
		Description: "افزودن رویداد",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/editevent", tg.Command{
		Handler:     h.EditEvent,
		Description: "ویرایش رویداد",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/toggleevent", tg.Command{
		Handler:     h.ToggleEvent,
		Description: "فعال یا غیرفعال کردن رویداد",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/delevent", tg.Command{
		Handler:     h.DeleteEvent,
		Description: "حذف رویداد",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/listevents", tg.Command{
		Handler:     h.ListEvents,
		Description: "فهرست همه رویدادها",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/regs", tg.Command{
		Handler:     h.RecentRegistrations,
		Description: "آخرین ثبت‌نام‌ها",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/inbox", tg.Command{
		Handler:     h.Inbox,
		Description: "پیام‌های کاربران",
		AdminOnly:   true,
	})

	_ = reg.RegisterCallback(callbacks.KeySelectEvent, h.flowCallback(flow.KindSelect))
	_ = reg.RegisterCallback(callbacks.KeyConfirmReg, h.flowCallback(flow.KindConfirm))
	_ = reg.RegisterCallback(callbacks.KeyEditReg, h.flowCallback(flow.KindEdit))
	_ = reg.RegisterCallback(callbacks.KeyCancelReg, h.flowCallback(flow.KindCancel))
	_ = reg.RegisterCallback(callbacks.KeyCancelTarget, h.flowIDCallback(flow.KindSelect))
	_ = reg.RegisterCallback(callbacks.KeyCancelConfirm, h.flowIDCallback(flow.KindConfirm))
	_ = reg.RegisterCallback(callbacks.KeyBackToProfile, h.flowCallback(flow.KindReject))
	_ = reg.RegisterCallback(callbacks.KeyCheckMember, h.CheckMembership)

	_ = reg.RegisterCallback(callbacks.KeyMsgPrev, h.inboxNav(false))
	_ = reg.RegisterCallback(callbacks.KeyMsgNext, h.inboxNav(true))
	_ = reg.RegisterCallback(callbacks.KeyMsgRead, h.inboxMarkRead)
	_ = reg.RegisterCallback(callbacks.KeyMsgDelete, h.inboxDelete)
	_ = reg.RegisterCallback(callbacks.KeyMsgReply, h.inboxReply)

	reg.SetTextFallback(h.UnknownText)
}

func userInfo(c tele.Context) flow.UserInfo {
	id, first, last, username := helpers.UserInfoOf(c)
	return flow.UserInfo{ID: id, FirstName: first, LastName: last, Username: username}
}

func (h *Handlers) ctx(c tele.Context) context.Context {
	return helpers.BuildContext(c)
}
