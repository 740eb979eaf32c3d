package handlers

import (
	"fmt"
	"strings"

	"github.com/uma-mfg/societybot/internal/config"
	"github.com/uma-mfg/societybot/internal/format"
	"github.com/uma-mfg/societybot/internal/store"
)

func welcomeText(cfg *config.Config, isMember bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 *به ربات %s خوش آمدید\\!*\n\n", format.EscapeMarkdown(cfg.Society.Name))
	fmt.Fprintf(&b, "🏛 %s\n\n", format.EscapeMarkdown(cfg.Society.University))
	b.WriteString("💫 *امکانات ربات:*\n")
	b.WriteString("• 📅 مشاهده رویدادها و کارگاه‌ها\n")
	b.WriteString("• 📝 ثبت‌نام در رویدادها\n")
	b.WriteString("• 💬 ارتباط با مدیران\n")
	b.WriteString("• 📞 اطلاعات تماس انجمن\n\n")
	if !isMember {
		b.WriteString("🌟 *برای دسترسی به تمام امکانات، در کانال ما عضو شوید:*\n")
		b.WriteString(format.EscapeMarkdown(cfg.Channel.URL))
	}
	return b.String()
}

func aboutText(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 *درباره %s*\n\n", format.EscapeMarkdown(cfg.Society.Name))
	b.WriteString("انجمن علمی مهندسی ساخت و تولید با هدف ارتقای سطح علمی و مهارتی دانشجویان فعالیت می‌کند\\.\n\n")
	b.WriteString("🎯 *اهداف:*\n")
	b.WriteString("• برگزاری کارگاه‌های آموزشی\n")
	b.WriteString("• سازماندهی سمینارها و همایش‌ها\n")
	b.WriteString("• ارتباط با صنعت\n")
	b.WriteString("• پشتیبانی از پروژه‌های دانشجویی\n\n")
	fmt.Fprintf(&b, "🏛 %s\n\n", format.EscapeMarkdown(cfg.Society.University))
	fmt.Fprintf(&b, "📢 *کانال ما:* %s", format.EscapeMarkdown(cfg.Channel.Username))
	return b.String()
}

func contactInfoText(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📞 *راه‌های ارتباطی با %s:*\n\n", format.EscapeMarkdown(cfg.Society.Name))
	fmt.Fprintf(&b, "📍 آدرس: دانشکده مهندسی مکانیک، %s\n", format.EscapeMarkdown(cfg.Society.University))
	fmt.Fprintf(&b, "📞 تلفن: %s\n", format.EscapeMarkdown(cfg.Society.ContactPhone))
	fmt.Fprintf(&b, "📧 ایمیل: %s\n", format.EscapeMarkdown(cfg.Society.ContactEmail))
	fmt.Fprintf(&b, "📢 کانال: %s\n", format.EscapeMarkdown(cfg.Channel.Username))
	b.WriteString("🕘 ساعات کاری: ۸\\-۱۶ به جز پنجشنبه‌ها")
	return b.String()
}

func eventListText(title string, events []store.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	for _, ev := range events {
		fmt.Fprintf(&b, "✨ *%s*\n", format.EscapeMarkdown(ev.Name))
		fmt.Fprintf(&b, "📅 *تاریخ برگزاری:* %s\n", format.EscapeMarkdown(format.JalaliFromString(ev.Date)))
		fmt.Fprintf(&b, "⏰ *زمان:* %s\n", format.EscapeMarkdown(ev.Time))
		fmt.Fprintf(&b, "📍 *محل:* %s\n", format.EscapeMarkdown(ev.Location))
		fmt.Fprintf(&b, "👥 *ظرفیت:* %s\n", format.EscapeMarkdown(format.PersianDigits(fmt.Sprintf("%d", ev.Capacity))))
		fmt.Fprintf(&b, "✅ *ثبت‌نام‌شده:* %s\n", format.EscapeMarkdown(format.PersianDigits(fmt.Sprintf("%d", ev.RegisteredCount))))
		fmt.Fprintf(&b, "📝 *توضیحات:* %s\n\n", format.EscapeMarkdown(ev.Description))
	}
	return b.String()
}

const (
	textNoWorkshops = "📭 *در حال حاضر هیچ کارگاهی برنامه‌ریزی نشده است\\.*"
	textNoEvents    = "📭 *در حال حاضر هیچ رویدادی برنامه‌ریزی نشده است\\.*"

	textMembershipVerified = "🎉 *تبریک\\! عضویت شما تایید شد\\!*\n\n" +
		"اکنون می‌توانید از تمام امکانات ربات استفاده کنید\\.\n\n" +
		"لطفاً از منوی زیر انتخاب کنید:"

	textStillNotMember = "❌ *متأسفانه هنوز در کانال عضو نیستید\\.*\n\n" +
		"لطفاً مراحل زیر را انجام دهید:\n" +
		"1\\. روی دکمه '✨ عضویت در کانال' کلیک کنید\n" +
		"2\\. در کانال عضو شوید\n" +
		"3\\. سپس روی '✅ تایید عضویت' کلیک کنید\n\n" +
		"پس از عضویت، امکانات ویژه ربات برای شما فعال خواهد شد\\."

	textCheckRateLimited = "⏳ لطفاً بعداً تلاش کنید\\. محدودیت بررسی عضویت فعال شده است\\."

	textUnknownInput = "لطفاً از دکمه‌های منو استفاده کنید."
)

func membershipRequiredText(featureName string) string {
	var b strings.Builder
	b.WriteString("🌟 *دسترسی ویژه* 🌟\n\n")
	fmt.Fprintf(&b, "برای استفاده از %s، لطفاً در کانال انجمن عضو شوید\\.\n\n", format.EscapeMarkdown(featureName))
	b.WriteString("📢 *مزایای عضویت:*\n")
	b.WriteString("• 🔥 دسترسی به آخرین رویدادها\n")
	b.WriteString("• 💫 امکان ثبت‌نام در کارگاه‌ها\n")
	b.WriteString("• ✨ ارتباط مستقیم با مدیران\n")
	b.WriteString("• 🎯 اطلاع‌رسانی فوری\n\n")
	b.WriteString("پس از عضویت، روی *✅ تایید عضویت* کلیک کنید\\.")
	return b.String()
}
