// Package flow implements the conversation engine: an explicit
// finite-state machine over per-user sessions, independent of the
// Telegram transport. Handlers feed it classified inputs and render the
// replies it returns.
package flow

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
	"github.com/uma-mfg/societybot/internal/store"
	"github.com/uma-mfg/societybot/internal/validate"
)

// Options tune engine behavior from configuration.
type Options struct {
	// MessagesPerDay mirrors the store quota for the eager contact check.
	MessagesPerDay int
	// StrictNationalID switches the national id validator to the
	// checksum variant.
	StrictNationalID bool
}

type transition func(ctx context.Context, sess *Session, in Input) []Reply

// Engine sequences multi-step conversations. One instance serves all
// users; per-user state lives in the injected session store.
type Engine struct {
	gw       Gateway
	sessions *Sessions
	opts     Options

	transitions map[Step]map[InputKind]transition
}

// NewEngine wires the conversation engine to its gateway and session store.
func NewEngine(gw Gateway, sessions *Sessions, opts Options) *Engine {
	if opts.MessagesPerDay <= 0 {
		opts.MessagesPerDay = 1
	}
	e := &Engine{gw: gw, sessions: sessions, opts: opts}
	e.transitions = map[Step]map[InputKind]transition{
		StepSelectingEvent: {
			KindSelect: e.onEventSelected,
		},
		StepEnteringName: {
			KindText: e.onFieldInput,
		},
		StepEnteringStudentID: {
			KindText: e.onFieldInput,
		},
		StepEnteringNationalID: {
			KindText: e.onFieldInput,
		},
		StepEnteringPhone: {
			KindText: e.onFieldInput,
		},
		StepConfirming: {
			KindConfirm: e.onRegistrationConfirm,
			KindEdit:    e.onRegistrationEdit,
		},
		StepViewingProfile: {
			KindSelect: e.onCancellationStart,
			KindReject: e.onProfileExit,
		},
		StepSelectingCancellation: {
			KindSelect: e.onCancellationTarget,
			KindReject: e.onBackToProfile,
		},
		StepConfirmingCancellation: {
			KindConfirm: e.onCancellationConfirm,
			KindReject:  e.onBackToProfile,
		},
		StepEnteringMessage: {
			KindText: e.onContactMessage,
		},
		StepEnteringReply: {
			KindText: e.onAdminReply,
		},
	}
	return e
}

// InProgress reports whether a conversation is active for the user.
func (e *Engine) InProgress(userID int64) bool {
	return e.sessions.InProgress(userID)
}

// Handle routes one classified input through the transition table.
// Inputs with no transition for the current step are dropped silently;
// the user stays on the same step. A cancel signal is honored at every
// step.
func (e *Engine) Handle(ctx context.Context, userID int64, in Input) []Reply {
	sess := e.sessions.Get(userID)
	if sess == nil {
		return nil
	}
	if in.Kind == KindCancel {
		return e.cancelConversation(sess)
	}
	t := e.transitions[sess.Step][in.Kind]
	if t == nil {
		logger.FLOW.Debug("input ignored",
			slog.String("event", "flow.ignored"),
			slog.Int64("user_id", userID),
			slog.String("state", string(sess.Step)),
			slog.Int("kind", int(in.Kind)),
		)
		return nil
	}
	from := sess.Step
	replies := t(ctx, sess, in)
	e.sessions.Touch(userID)
	if cur := e.sessions.Get(userID); cur != nil && cur.Step != from {
		logger.FLOW.Debug("transition",
			slog.String("event", "flow.transition"),
			slog.Int64("user_id", userID),
			slog.String("state", string(cur.Step)),
			slog.String("from", string(from)),
		)
	}
	return replies
}

// StartRegistration opens the event selection step, replacing any
// leftover session state.
func (e *Engine) StartRegistration(ctx context.Context, user UserInfo) []Reply {
	events, _ := e.gw.ActiveEvents(ctx, "")
	if len(events) == 0 {
		e.sessions.Clear(user.ID)
		return []Reply{{Text: textNoEvents, Keyboard: KbMain}}
	}
	e.sessions.Begin(user, StepSelectingEvent)
	logger.FLOW.Info("registration started",
		slog.String("event", "flow.register_start"),
		slog.Int64("user_id", user.ID),
		slog.Int("count", len(events)),
	)
	return []Reply{{
		Text:     textSelectEvent,
		Markdown: true,
		Keyboard: KbEvents,
		Events:   events,
	}}
}

// StartProfile renders the profile and opens the cancellation sub-flow.
func (e *Engine) StartProfile(ctx context.Context, user UserInfo) []Reply {
	regs, _ := e.gw.UserRegistrations(ctx, user.ID)
	e.sessions.Begin(user, StepViewingProfile)
	return []Reply{{
		Text:     profileText(user, regs),
		Markdown: true,
		Keyboard: KbProfile,
		HasRegs:  len(regs) > 0,
	}}
}

// StartContact opens the contact-admin dialog unless today's quota is
// already spent.
func (e *Engine) StartContact(ctx context.Context, user UserInfo) []Reply {
	count, _ := e.gw.MessagesToday(ctx, user.ID)
	if count >= e.opts.MessagesPerDay {
		e.sessions.Clear(user.ID)
		return []Reply{{Text: textQuotaExceeded, Markdown: true, Keyboard: KbMain}}
	}
	e.sessions.Begin(user, StepEnteringMessage)
	return []Reply{{Text: textContactIntro, Markdown: true, Keyboard: KbRemove}}
}

// StartReply opens the admin reply dialog for a stored message.
func (e *Engine) StartReply(ctx context.Context, admin UserInfo, messageID int64) []Reply {
	if _, err := e.gw.Message(ctx, messageID); err != nil {
		return []Reply{{Text: textMessageGone}}
	}
	sess := e.sessions.Begin(admin, StepEnteringReply)
	sess.TargetMsg = messageID
	return []Reply{{Text: textReplyPrompt, Keyboard: KbRemove}}
}

func (e *Engine) cancelConversation(sess *Session) []Reply {
	userID := sess.User.ID
	step := sess.Step
	e.sessions.Clear(userID)
	logger.FLOW.Info("conversation cancelled",
		slog.String("event", "flow.cancel"),
		slog.Int64("user_id", userID),
		slog.String("state", string(step)),
	)
	switch step {
	case StepEnteringMessage, StepEnteringReply:
		return []Reply{{Text: textContactCancelled, Keyboard: KbMain}}
	case StepViewingProfile, StepSelectingCancellation, StepConfirmingCancellation:
		return []Reply{{Text: textMainMenu, Keyboard: KbMain}}
	default:
		return []Reply{{Text: textRegistrationCancelled, Keyboard: KbMain}}
	}
}

// registration flow

func (e *Engine) onEventSelected(ctx context.Context, sess *Session, in Input) []Reply {
	eventName := in.Payload
	registered, _ := e.gw.IsRegistered(ctx, sess.User.ID, eventName)
	if registered {
		// terminal: no point collecting fields for a doomed commit
		e.sessions.Clear(sess.User.ID)
		return []Reply{{Text: alreadyRegisteredText(eventName), Markdown: true, Edit: true}}
	}
	sess.Draft.EventName = eventName
	sess.Step = StepEnteringName
	return []Reply{
		{Text: eventSelectedText(eventName), Markdown: true, Edit: true},
		{Text: textPromptName, Keyboard: KbCancelEntry},
	}
}

type fieldSpec struct {
	check   func(*Engine, string) bool
	assign  func(*Draft, string)
	errText string
	next    Step
	prompt  string
}

// fieldSteps drives the text-entry portion of the registration flow.
// An empty prompt means the next step renders the confirmation summary.
var fieldSteps = map[Step]fieldSpec{
	StepEnteringName: {
		check:   func(_ *Engine, s string) bool { return validate.FullName(s) },
		assign:  func(d *Draft, s string) { d.FullName = s },
		errText: textBadName,
		next:    StepEnteringStudentID,
		prompt:  textPromptStudentID,
	},
	StepEnteringStudentID: {
		check:   func(_ *Engine, s string) bool { return validate.StudentID(s) },
		assign:  func(d *Draft, s string) { d.StudentID = s },
		errText: textBadStudentID,
		next:    StepEnteringNationalID,
		prompt:  textPromptNational,
	},
	StepEnteringNationalID: {
		check: func(e *Engine, s string) bool {
			if e.opts.StrictNationalID {
				return validate.NationalIDChecksum(s)
			}
			return validate.NationalID(s)
		},
		assign:  func(d *Draft, s string) { d.NationalID = s },
		errText: textBadNational,
		next:    StepEnteringPhone,
		prompt:  textPromptPhone,
	},
	StepEnteringPhone: {
		check:   func(_ *Engine, s string) bool { return validate.Phone(s) },
		assign:  func(d *Draft, s string) { d.PhoneNumber = s },
		errText: textBadPhone,
		next:    StepConfirming,
	},
}

func (e *Engine) onFieldInput(_ context.Context, sess *Session, in Input) []Reply {
	spec := fieldSteps[sess.Step]
	raw := strings.TrimSpace(in.Text)
	if !spec.check(e, raw) {
		// re-prompt, no state change
		return []Reply{{Text: spec.errText, Keyboard: KbCancelEntry}}
	}
	spec.assign(&sess.Draft, validate.NormalizeDigits(raw))
	sess.Step = spec.next
	if spec.next == StepConfirming {
		return []Reply{{
			Text:     summaryText(sess.Draft),
			Markdown: true,
			Keyboard: KbConfirmRegistration,
		}}
	}
	return []Reply{{Text: spec.prompt, Keyboard: KbCancelEntry}}
}

func (e *Engine) onRegistrationEdit(_ context.Context, sess *Session, _ Input) []Reply {
	// back to data entry; the current draft stays as overwritable defaults
	sess.Step = StepEnteringName
	return []Reply{
		{Text: textEditPrompt, Edit: true},
		{Text: textPromptName, Keyboard: KbCancelEntry},
	}
}

func (e *Engine) onRegistrationConfirm(ctx context.Context, sess *Session, _ Input) []Reply {
	d := sess.Draft
	userID := sess.User.ID
	e.sessions.Clear(userID)

	id, err := e.gw.Register(ctx, store.RegistrationInput{
		UserID:      userID,
		FullName:    d.FullName,
		StudentID:   d.StudentID,
		NationalID:  d.NationalID,
		PhoneNumber: d.PhoneNumber,
		EventName:   d.EventName,
	})
	if err != nil {
		text := textRegisterFailure
		switch {
		case errors.Is(err, store.ErrEventNotFound):
			text = businessErrorText("رویداد یافت نشد")
		case errors.Is(err, store.ErrCapacityExceeded):
			text = businessErrorText("ظرفیت رویداد تکمیل است")
		case errors.Is(err, store.ErrDuplicateRegistration):
			text = businessErrorText("کاربر قبلاً در این رویداد ثبت‌نام کرده است")
		default:
			logger.FLOW.Error("registration failed",
				slog.String("event", "flow.register"),
				slog.Int64("user_id", userID),
				slog.String("event_name", d.EventName),
				slog.String("err", err.Error()),
			)
		}
		return []Reply{
			{Text: text, Markdown: true, Edit: true},
			{Text: textMainMenu, Keyboard: KbMain},
		}
	}
	return []Reply{
		{Text: registeredText(d, id), Markdown: true, Edit: true},
		{Text: textMainMenu, Keyboard: KbMain},
	}
}

// cancellation sub-flow

func (e *Engine) onCancellationStart(ctx context.Context, sess *Session, _ Input) []Reply {
	regs, _ := e.gw.UserRegistrations(ctx, sess.User.ID)
	if len(regs) == 0 {
		return []Reply{{Text: textNoActiveRegistrations, Markdown: true, Keyboard: KbBackToMenu}}
	}
	sess.Step = StepSelectingCancellation
	return []Reply{{
		Text:     cancellationListText(regs),
		Markdown: true,
		Keyboard: KbCancelList,
		Regs:     regs,
	}}
}

func (e *Engine) onCancellationTarget(ctx context.Context, sess *Session, in Input) []Reply {
	reg, err := e.gw.Registration(ctx, in.ID, sess.User.ID)
	if err != nil {
		sess.Step = StepViewingProfile
		return []Reply{{Text: textRegistrationMissing, Markdown: true, Edit: true}}
	}
	sess.TargetReg = in.ID
	sess.Step = StepConfirmingCancellation
	return []Reply{{
		Text:     cancelConfirmText(reg),
		Markdown: true,
		Edit:     true,
		Keyboard: KbCancelConfirm,
		TargetID: in.ID,
	}}
}

func (e *Engine) onCancellationConfirm(ctx context.Context, sess *Session, in Input) []Reply {
	id := in.ID
	if id == 0 {
		id = sess.TargetReg
	}
	userID := sess.User.ID
	if err := e.gw.Cancel(ctx, id, userID); err != nil {
		msg := "لطفاً بعداً تلاش کنید"
		if errors.Is(err, store.ErrRegistrationNotFound) {
			msg = "ثبت‌نام یافت نشد یا شما مجوز حذف آن را ندارید."
		} else {
			logger.FLOW.Error("cancellation failed",
				slog.String("event", "flow.cancel_registration"),
				slog.Int64("user_id", userID),
				slog.Int64("registration_id", id),
				slog.String("err", err.Error()),
			)
		}
		sess.Step = StepViewingProfile
		return []Reply{{Text: cancelFailedText(msg), Markdown: true, Edit: true}}
	}
	e.sessions.Clear(userID)
	return []Reply{
		{Text: cancelDoneText(), Markdown: true, Edit: true},
		{Text: textMainMenu, Keyboard: KbMain},
	}
}

func (e *Engine) onBackToProfile(ctx context.Context, sess *Session, _ Input) []Reply {
	regs, _ := e.gw.UserRegistrations(ctx, sess.User.ID)
	sess.Step = StepViewingProfile
	sess.TargetReg = 0
	return []Reply{
		{Text: profileText(sess.User, regs), Markdown: true, Edit: true},
		{Text: textBackToProfile, Keyboard: KbProfile, HasRegs: len(regs) > 0},
	}
}

func (e *Engine) onProfileExit(_ context.Context, sess *Session, _ Input) []Reply {
	e.sessions.Clear(sess.User.ID)
	return []Reply{{Text: textMainMenu, Keyboard: KbMain}}
}

// contact flow

func (e *Engine) onContactMessage(ctx context.Context, sess *Session, in Input) []Reply {
	text := strings.TrimSpace(in.Text)
	if !validate.MessageText(text) {
		return []Reply{{Text: textBadMessage, Keyboard: KbRemove}}
	}
	user := sess.User
	e.sessions.Clear(user.ID)

	id, err := e.gw.AddMessage(ctx, user.ID, user.DisplayName(), text, "contact")
	if err != nil {
		if errors.Is(err, store.ErrDailyQuotaExceeded) {
			return []Reply{{Text: textQuotaExceeded, Markdown: true, Keyboard: KbMain}}
		}
		logger.FLOW.Error("contact message failed",
			slog.String("event", "flow.contact"),
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: textGenericFailure, Keyboard: KbMain}}
	}
	return []Reply{
		{Text: messageStoredText(id, text), Markdown: true, Keyboard: KbMain},
		{Text: adminNewMessageText(user, id, text), Markdown: true, ToAdmins: true},
	}
}

// admin reply flow

func (e *Engine) onAdminReply(ctx context.Context, sess *Session, in Input) []Reply {
	text := strings.TrimSpace(in.Text)
	if !validate.MessageText(text) {
		return []Reply{{Text: textBadMessage, Keyboard: KbRemove}}
	}
	adminID := sess.User.ID
	msgID := sess.TargetMsg
	e.sessions.Clear(adminID)

	msg, err := e.gw.Message(ctx, msgID)
	if err != nil {
		return []Reply{{Text: textMessageGone, Keyboard: KbMain}}
	}
	if err := e.gw.Reply(ctx, msgID, adminID, text); err != nil {
		logger.FLOW.Error("admin reply failed",
			slog.String("event", "flow.reply"),
			slog.Int64("user_id", adminID),
			slog.Int64("message_id", msgID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: textGenericFailure, Keyboard: KbMain}}
	}
	return []Reply{
		{Text: textReplySaved, Keyboard: KbMain},
		{Text: adminReplyText(text), Markdown: true, DirectTo: msg.UserID},
	}
}
