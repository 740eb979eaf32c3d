package flow

import (
	"fmt"
	"strings"

	"github.com/uma-mfg/societybot/internal/format"
	"github.com/uma-mfg/societybot/internal/store"
)

const (
	textMainMenu = "🏠 به منوی اصلی بازگشتید:"

	textNoEvents = "⚠️ در حال حاضر هیچ رویداد یا کارگاهی برای ثبت‌نام موجود نیست."

	textSelectEvent = "📝 *ثبت‌نام در رویداد*\n\n" +
		"⚠️ توجه: هر کاربر تنها یک بار می‌تواند در هر رویداد ثبت‌نام کند\\.\n\n" +
		"لطفاً یکی از رویدادهای زیر را انتخاب کنید:"

	textPromptName      = "لطفاً نام و نام خانوادگی خود را وارد کنید:"
	textPromptStudentID = "لطفاً شماره دانشجویی خود را وارد کنید:"
	textPromptNational  = "لطفاً شماره ملی خود را وارد کنید:"
	textPromptPhone     = "لطفاً شماره تماس خود را وارد کنید :"

	textBadName      = "⚠️ نام و نام خانوادگی باید فقط شامل حروف فارسی باشد.\nمثال: علی احمدی"
	textBadStudentID = "⚠️ شماره دانشجویی باید حداقل 8 رقم باشد. لطفاً دوباره وارد کنید:"
	textBadNational  = "⚠️ شماره ملی باید 10 رقم باشد. لطفاً دوباره وارد کنید:"
	textBadPhone     = "⚠️ شماره تماس معتبر نیست. لطفاً شماره را به فرمت 09123456789 وارد کنید:"
	textBadMessage   = "⚠️ پیام باید حداقل 5 حرف باشد. لطفاً پیام معتبرتری ارسال کنید:"

	textEditPrompt = "✏️ لطفاً اطلاعات مورد نظر را ویرایش کنید و مجدداً ثبت نمایید."

	textRegistrationCancelled = "❌ ثبت‌نام لغو شد."
	textContactCancelled      = "❌ ارسال پیام لغو شد."
	textGenericFailure        = "❌ خطا در سیستم. لطفاً بعداً تلاش کنید."
	textRegisterFailure       = "❌ خطا در ثبت‌نام. لطفاً بعداً تلاش کنید."

	textNoActiveRegistrations = "❌ شما هیچ ثبت‌نام فعالی ندارید\\."
	textRegistrationMissing   = "❌ ثبت‌نام مورد نظر یافت نشد\\."
	textBackToProfile         = "به پروفایل بازگشتید:"

	textQuotaExceeded = "⚠️ *شما امروز پیام خود را ارسال کرده‌اید\\.*\n" +
		"لطفاً فردا مجدداً تلاش کنید\\.\n\n" +
		"با تشکر از صبر و شکیبایی شما 🙏"

	textContactIntro = "💬 *تماس با مدیر*\n\n" +
		"لطفاً پیام خود را برای مدیران انجمن ارسال کنید\\.\n" +
		"⚠️ توجه: هر کاربر تنها می‌تواند ۱ پیام در روز ارسال کند\\.\n\n" +
		"پیام شما در اسرع وقت بررسی و پاسخ داده خواهد شد\\.\n\n" +
		"برای لغو دستور /cancel را وارد کنید\\."

	textReplyPrompt = "✍️ متن پاسخ را وارد کنید:"
	textMessageGone = "❌ پیام مورد نظر یافت نشد."
	textReplySaved  = "✅ پاسخ شما ثبت و برای کاربر ارسال شد."
)

func eventSelectedText(eventName string) string {
	return fmt.Sprintf("✅ *رویداد انتخاب شده: %s*", format.EscapeMarkdown(eventName))
}

func alreadyRegisteredText(eventName string) string {
	return fmt.Sprintf(
		"⚠️ شما قبلاً در رویداد '%s' ثبت‌نام کرده‌اید\\.\n\n"+
			"هر کاربر می‌تواند تنها یک بار در هر رویداد ثبت‌نام کند\\.",
		format.EscapeMarkdown(eventName),
	)
}

func summaryText(d Draft) string {
	return fmt.Sprintf(
		"📋 *خلاصه اطلاعات ثبت‌نام*\n\n"+
			"👤 *نام:* %s\n"+
			"🎫 *شماره دانشجویی:* %s\n"+
			"🆔 *شماره ملی:* %s\n"+
			"📞 *شماره تماس:* %s\n"+
			"🎯 *رویداد:* %s\n\n"+
			"⚠️ *آیا اطلاعات فوق صحیح است؟*",
		format.EscapeMarkdown(d.FullName),
		format.EscapeMarkdown(d.StudentID),
		format.EscapeMarkdown(d.NationalID),
		format.EscapeMarkdown(d.PhoneNumber),
		format.EscapeMarkdown(d.EventName),
	)
}

func registeredText(d Draft, id int64) string {
	return fmt.Sprintf(
		"🎉 *ثبت‌نام با موفقیت انجام شد\\!*\n\n"+
			"📋 *جزئیات ثبت‌نام:*\n"+
			"• 👤 نام: %s\n"+
			"• 🎫 شماره دانشجویی: %s\n"+
			"• 🆔 شماره ملی: %s\n"+
			"• 📞 شماره تماس: %s\n"+
			"• 🎯 رویداد: %s\n\n"+
			"🔢 کد پیگیری: \\#%d\n\n"+
			"با تشکر از ثبت‌نام شما 💫",
		format.EscapeMarkdown(d.FullName),
		format.EscapeMarkdown(d.StudentID),
		format.EscapeMarkdown(d.NationalID),
		format.EscapeMarkdown(d.PhoneNumber),
		format.EscapeMarkdown(d.EventName),
		id,
	)
}

func businessErrorText(msg string) string {
	return fmt.Sprintf("❌ خطا: %s", format.EscapeMarkdown(msg))
}

func profileText(user UserInfo, regs []store.RegistrationDetail) string {
	username := "❌ تنظیم نشده"
	if user.Username != "" {
		username = "@" + format.EscapeMarkdown(user.Username)
	}
	var b strings.Builder
	fmt.Fprintf(&b,
		"👤 *پروفایل کاربر*\n\n"+
			"🆔 *شناسه یکتا:* `%d`\n"+
			"📛 *نام:* %s %s\n"+
			"🔖 *نام کاربری:* %s\n"+
			"📅 *تعداد رویدادهای ثبت‌نام شده:* %d\n\n",
		user.ID,
		format.EscapeMarkdown(user.FirstName),
		format.EscapeMarkdown(user.LastName),
		username,
		len(regs),
	)
	if len(regs) == 0 {
		b.WriteString("📝 *شما هنوز در هیچ رویدادی ثبت‌نام نکرده‌اید*\n\n")
		return b.String()
	}
	b.WriteString("🎯 *رویدادهای ثبت‌نام شده:*\n")
	for i, reg := range regs {
		date := reg.EventDate
		if date == "" {
			date = format.Unknown
		}
		fmt.Fprintf(&b, "%d\\. %s \\(📅 %s\\)\n",
			i+1,
			format.EscapeMarkdown(reg.EventName),
			format.EscapeMarkdown(date),
		)
	}
	b.WriteString("\n⚠️ *توجه:* برای انصراف از ثبت‌نام، از دکمه زیر استفاده کنید\\.\n")
	return b.String()
}

func cancellationListText(regs []store.RegistrationDetail) string {
	var b strings.Builder
	b.WriteString("📋 *لیست ثبت‌نام‌های فعال:*\n\n")
	for i, reg := range regs {
		date := reg.EventDate
		if date == "" {
			date = format.Unknown
		}
		fmt.Fprintf(&b,
			"%d\\. *%s*\n"+
				"   📅 *تاریخ برگزاری:* %s\n"+
				"   📝 *توضیحات:* %s\n"+
				"   🗓️ *تاریخ ثبت‌نام:* %s\n"+
				"   👤 *نام:* %s\n"+
				"   🎫 *شماره دانشجویی:* %s\n"+
				"   📞 *شماره تماس ثبت‌شده:* %s\n\n",
			i+1,
			format.EscapeMarkdown(reg.EventName),
			format.EscapeMarkdown(date),
			format.EscapeMarkdown(reg.EventDescription),
			format.EscapeMarkdown(format.JalaliDate(reg.RegisteredAt)),
			format.EscapeMarkdown(reg.FullName),
			format.EscapeMarkdown(reg.StudentID),
			format.EscapeMarkdown(reg.PhoneNumber),
		)
	}
	b.WriteString("❌ برای انصراف از هر رویداد، روی دکمه مربوطه کلیک کنید\\.")
	return b.String()
}

func cancelConfirmText(reg *store.RegistrationDetail) string {
	desc := reg.EventDescription
	if desc == "" {
		desc = "توضیحات موجود نیست"
	}
	evTime := reg.EventTime
	if evTime == "" {
		evTime = "زمان نامشخص"
	}
	loc := reg.EventLocation
	if loc == "" {
		loc = "مکان نامشخص"
	}
	return fmt.Sprintf(
		"⚠️ *آیا از انصراف از ثبت‌نام زیر مطمئن هستید؟*\n\n"+
			"🎯 *رویداد:* %s\n"+
			"📝 *توضیحات:* %s\n"+
			"⏰ *زمان برگزاری:* %s\n"+
			"📍 *محل برگزاری:* %s\n"+
			"📅 *تاریخ ثبت‌نام:* %s\n"+
			"👤 *نام:* %s\n"+
			"🎫 *شماره دانشجویی:* %s\n\n"+
			"❌ *این عمل قابل بازگشت نیست\\!*",
		format.EscapeMarkdown(reg.EventName),
		format.EscapeMarkdown(desc),
		format.EscapeMarkdown(evTime),
		format.EscapeMarkdown(loc),
		format.EscapeMarkdown(format.JalaliDate(reg.RegisteredAt)),
		format.EscapeMarkdown(reg.FullName),
		format.EscapeMarkdown(reg.StudentID),
	)
}

func cancelDoneText() string {
	return "✅ *انصراف از ثبت‌نام با موفقیت انجام شد\\!*\n\n🏠 به منوی اصلی بازگشتید:"
}

func cancelFailedText(msg string) string {
	return fmt.Sprintf("❌ خطا در انصراف از ثبت‌نام: %s", format.EscapeMarkdown(msg))
}

func messageStoredText(id int64, text string) string {
	return fmt.Sprintf(
		"✅ *پیام شما با موفقیت ارسال شد\\!*\n\n"+
			"📋 کد پیگیری: \\#%d\n"+
			"📝 پیام شما: %s\n\n"+
			"با تشکر از ارتباط شما 🙏",
		id, format.EscapeMarkdown(text),
	)
}

func adminNewMessageText(user UserInfo, id int64, text string) string {
	return fmt.Sprintf(
		"📬 *پیام جدید از کاربر*\n\n"+
			"👤 %s\n"+
			"🆔 `%d`\n"+
			"📋 کد پیگیری: \\#%d\n\n"+
			"📝 %s",
		format.EscapeMarkdown(user.DisplayName()),
		user.ID, id,
		format.EscapeMarkdown(text),
	)
}

func adminReplyText(reply string) string {
	return fmt.Sprintf(
		"📬 *پاسخ مدیران به پیام شما:*\n\n%s",
		format.EscapeMarkdown(reply),
	)
}
