package flow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/uma-mfg/societybot/internal/store"
)

type fakeGateway struct {
	events     []store.Event
	registered map[string]bool
	regs       []store.RegistrationDetail
	messages   map[int64]*store.UserMessage
	today      int

	registerErr error
	addErr      error
	cancelErr   error

	lastRegister store.RegistrationInput
	lastReply    string
	nextID       int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		registered: map[string]bool{},
		messages:   map[int64]*store.UserMessage{},
		nextID:     1,
	}
}

func (f *fakeGateway) ActiveEvents(context.Context, string) ([]store.Event, error) {
	return f.events, nil
}

func (f *fakeGateway) IsRegistered(_ context.Context, _ int64, name string) (bool, error) {
	return f.registered[name], nil
}

func (f *fakeGateway) Register(_ context.Context, in store.RegistrationInput) (int64, error) {
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	f.lastRegister = in
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeGateway) UserRegistrations(context.Context, int64) ([]store.RegistrationDetail, error) {
	return f.regs, nil
}

func (f *fakeGateway) Registration(_ context.Context, id, userID int64) (*store.RegistrationDetail, error) {
	for i := range f.regs {
		if f.regs[i].ID == id && f.regs[i].UserID == userID {
			return &f.regs[i], nil
		}
	}
	return nil, store.ErrRegistrationNotFound
}

func (f *fakeGateway) Cancel(_ context.Context, id, userID int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	for i := range f.regs {
		if f.regs[i].ID == id && f.regs[i].UserID == userID {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return store.ErrRegistrationNotFound
}

func (f *fakeGateway) AddMessage(_ context.Context, userID int64, userName, text, category string) (int64, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	id := f.nextID
	f.nextID++
	f.messages[id] = &store.UserMessage{
		ID: id, UserID: userID, UserName: userName,
		MessageText: text, Category: category, Status: store.MessageUnread,
	}
	return id, nil
}

func (f *fakeGateway) MessagesToday(context.Context, int64) (int, error) {
	return f.today, nil
}

func (f *fakeGateway) Message(_ context.Context, id int64) (*store.UserMessage, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, store.ErrMessageNotFound
	}
	return m, nil
}

func (f *fakeGateway) Reply(_ context.Context, id, adminID int64, text string) error {
	m, ok := f.messages[id]
	if !ok {
		return store.ErrMessageNotFound
	}
	m.AdminReply = &text
	m.RepliedBy = &adminID
	m.Status = store.MessageReplied
	f.lastReply = text
	return nil
}

var testUser = UserInfo{ID: 42, FirstName: "علی", Username: "ali"}

func newTestEngine(gw Gateway) (*Engine, *Sessions) {
	sessions := NewSessions(0)
	return NewEngine(gw, sessions, Options{MessagesPerDay: 1}), sessions
}

func workshopEvent() store.Event {
	return store.Event{
		ID: 1, Name: "کارگاه تست ۱", Description: "CNC",
		Date: "۱۴۰۴/۱۰/۱۵", Time: "10:00", Location: "سالن شماره ۲",
		Capacity: 10, Category: store.CategoryWorkshop, Active: true,
	}
}

func TestRegistrationHappyPath(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	replies := e.StartRegistration(ctx, testUser)
	if len(replies) != 1 || replies[0].Keyboard != KbEvents {
		t.Fatalf("expected event keyboard, got %+v", replies)
	}
	if sessions.Get(testUser.ID).Step != StepSelectingEvent {
		t.Fatalf("expected selecting_event step")
	}

	replies = e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})
	if len(replies) != 2 || !replies[0].Edit {
		t.Fatalf("expected edit + prompt, got %+v", replies)
	}

	steps := []struct {
		text string
		next Step
	}{
		{"علی رضایی", StepEnteringStudentID},
		{"۴۰۱۲۳۴۵۶", StepEnteringNationalID},
		{"1111111111", StepEnteringPhone},
		{"09123456789", StepConfirming},
	}
	for _, s := range steps {
		e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: s.text})
		if got := sessions.Get(testUser.ID).Step; got != s.next {
			t.Fatalf("after %q expected step %s, got %s", s.text, s.next, got)
		}
	}

	replies = e.Handle(ctx, testUser.ID, Input{Kind: KindConfirm})
	if len(replies) != 2 {
		t.Fatalf("expected success edit plus menu, got %d replies", len(replies))
	}
	if !replies[0].Edit || replies[1].Keyboard != KbMain {
		t.Fatalf("unexpected replies %+v", replies)
	}
	if gw.lastRegister.EventName != "کارگاه تست ۱" {
		t.Fatalf("registration not committed: %+v", gw.lastRegister)
	}
	if gw.lastRegister.StudentID != "40123456" {
		t.Fatalf("expected normalized student id, got %q", gw.lastRegister.StudentID)
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("session should be cleared after confirmation")
	}
}

func TestRegistrationInvalidFieldReprompts(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})

	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "Ali"})
	if len(replies) != 1 || replies[0].Text != textBadName {
		t.Fatalf("expected name re-prompt, got %+v", replies)
	}
	if sessions.Get(testUser.ID).Step != StepEnteringName {
		t.Fatalf("step must not advance on invalid input")
	}
}

func TestRegistrationDuplicateAbortsEarly(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	gw.registered["کارگاه تست ۱"] = true
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})
	if len(replies) != 1 || !replies[0].Edit {
		t.Fatalf("expected single terminal edit, got %+v", replies)
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("session should end on duplicate selection")
	}
}

func TestRegistrationCapacityErrorMapped(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	gw.registerErr = store.ErrCapacityExceeded
	e, _ := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})
	for _, text := range []string{"علی رضایی", "40123456", "1111111111", "09123456789"} {
		e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: text})
	}
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindConfirm})
	if len(replies) != 2 {
		t.Fatalf("expected error edit plus menu, got %d replies", len(replies))
	}
	if !strings.Contains(replies[0].Text, "ظرفیت رویداد تکمیل است") {
		t.Fatalf("capacity error not surfaced: %q", replies[0].Text)
	}
}

func TestRegistrationEditKeepsDraftEvent(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})
	for _, text := range []string{"علی رضایی", "40123456", "1111111111", "09123456789"} {
		e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: text})
	}

	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindEdit})
	if len(replies) != 2 {
		t.Fatalf("expected edit notice plus name prompt, got %+v", replies)
	}
	sess := sessions.Get(testUser.ID)
	if sess.Step != StepEnteringName {
		t.Fatalf("edit must restart data entry, got %s", sess.Step)
	}
	if sess.Draft.EventName != "کارگاه تست ۱" {
		t.Fatalf("event selection lost on edit")
	}
	if sess.Draft.PhoneNumber == "" {
		t.Fatalf("previous answers should remain as defaults")
	}
}

func TestCancelSignalEndsAnyStep(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"})
	e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "علی رضایی"})

	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindCancel})
	if len(replies) != 1 || replies[0].Text != textRegistrationCancelled {
		t.Fatalf("expected cancellation notice, got %+v", replies)
	}
	if replies[0].Keyboard != KbMain {
		t.Fatalf("cancel must restore the main keyboard")
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("session must be cleared on cancel")
	}
	if e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "40123456"}) != nil {
		t.Fatalf("input after cancel must be ignored")
	}
}

func TestUnexpectedInputIgnored(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	if replies := e.Handle(ctx, testUser.ID, Input{Kind: KindConfirm}); replies != nil {
		t.Fatalf("confirm during event selection must be dropped, got %+v", replies)
	}
	if sessions.Get(testUser.ID).Step != StepSelectingEvent {
		t.Fatalf("step changed on dropped input")
	}
}

func profileReg(id int64) store.RegistrationDetail {
	return store.RegistrationDetail{
		Registration: store.Registration{
			ID: id, UserID: testUser.ID, FullName: "علی رضایی",
			EventName: "کارگاه تست ۱", RegisteredAt: time.Now(),
		},
		EventDate: "۱۴۰۴/۱۰/۱۵", EventTime: "10:00", EventLocation: "سالن شماره ۲",
	}
}

func TestCancellationRejectReturnsToProfile(t *testing.T) {
	gw := newFakeGateway()
	gw.regs = []store.RegistrationDetail{profileReg(7)}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartProfile(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect})
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, ID: 7})
	if sessions.Get(testUser.ID).Step != StepConfirmingCancellation {
		t.Fatalf("expected confirmation step")
	}

	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindReject})
	if sessions.Get(testUser.ID).Step != StepViewingProfile {
		t.Fatalf("reject must return to the profile view")
	}
	if len(gw.regs) != 1 {
		t.Fatalf("registration must survive a rejected cancellation")
	}
	if len(replies) == 0 || !replies[0].Markdown {
		t.Fatalf("expected re-rendered profile, got %+v", replies)
	}
}

func TestCancellationConfirmFreesRegistration(t *testing.T) {
	gw := newFakeGateway()
	gw.regs = []store.RegistrationDetail{profileReg(7)}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartProfile(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect})
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, ID: 7})
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindConfirm, ID: 7})
	if len(replies) != 2 || replies[1].Keyboard != KbMain {
		t.Fatalf("expected confirmation edit plus menu, got %+v", replies)
	}
	if len(gw.regs) != 0 {
		t.Fatalf("registration not removed")
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("session should be cleared after cancellation")
	}
}

func TestCancellationMissingRegistration(t *testing.T) {
	gw := newFakeGateway()
	gw.regs = []store.RegistrationDetail{profileReg(7)}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartProfile(ctx, testUser)
	e.Handle(ctx, testUser.ID, Input{Kind: KindSelect})
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, ID: 99})
	if len(replies) != 1 || replies[0].Text != textRegistrationMissing {
		t.Fatalf("expected missing-registration notice, got %+v", replies)
	}
	if sessions.Get(testUser.ID).Step != StepViewingProfile {
		t.Fatalf("missing target must fall back to the profile view")
	}
}

func TestContactFlowStoresAndNotifies(t *testing.T) {
	gw := newFakeGateway()
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartContact(ctx, testUser)
	if sessions.Get(testUser.ID).Step != StepEnteringMessage {
		t.Fatalf("expected entering_message step")
	}

	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "کوتاه"})
	if len(replies) != 2 {
		t.Fatalf("expected ack plus admin notice, got %d replies", len(replies))
	}
	if !replies[1].ToAdmins {
		t.Fatalf("second reply must target admins")
	}
	if len(gw.messages) != 1 {
		t.Fatalf("message not stored")
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("session should end after sending")
	}
}

func TestContactQuotaBlocksEntry(t *testing.T) {
	gw := newFakeGateway()
	gw.today = 1
	e, sessions := newTestEngine(gw)

	replies := e.StartContact(context.Background(), testUser)
	if len(replies) != 1 || replies[0].Text != textQuotaExceeded {
		t.Fatalf("expected quota notice, got %+v", replies)
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("no session should open past quota")
	}
}

func TestContactQuotaOnCommit(t *testing.T) {
	gw := newFakeGateway()
	gw.addErr = store.ErrDailyQuotaExceeded
	e, _ := newTestEngine(gw)
	ctx := context.Background()

	e.StartContact(ctx, testUser)
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "پیام تستی"})
	if len(replies) != 1 || replies[0].Text != textQuotaExceeded {
		t.Fatalf("commit-time quota breach must surface the quota notice, got %+v", replies)
	}
}

func TestContactTooShortReprompts(t *testing.T) {
	gw := newFakeGateway()
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartContact(ctx, testUser)
	replies := e.Handle(ctx, testUser.ID, Input{Kind: KindText, Text: "سلام"})
	if len(replies) != 1 || replies[0].Text != textBadMessage {
		t.Fatalf("expected short-message re-prompt, got %+v", replies)
	}
	if sessions.Get(testUser.ID).Step != StepEnteringMessage {
		t.Fatalf("step must not advance on invalid message")
	}
}

func TestAdminReplyFlow(t *testing.T) {
	gw := newFakeGateway()
	gw.messages[3] = &store.UserMessage{ID: 3, UserID: 99, UserName: "کاربر", MessageText: "سوال دارم", Status: store.MessageUnread}
	admin := UserInfo{ID: 1, FirstName: "مدیر"}
	e, sessions := newTestEngine(gw)
	ctx := context.Background()

	e.StartReply(ctx, admin, 3)
	if sessions.Get(admin.ID).Step != StepEnteringReply {
		t.Fatalf("expected entering_reply step")
	}

	replies := e.Handle(ctx, admin.ID, Input{Kind: KindText, Text: "پاسخ شما آماده است"})
	if len(replies) != 2 {
		t.Fatalf("expected ack plus direct message, got %d replies", len(replies))
	}
	if replies[1].DirectTo != 99 {
		t.Fatalf("reply must address the original sender, got %d", replies[1].DirectTo)
	}
	if gw.messages[3].Status != store.MessageReplied {
		t.Fatalf("message status not updated")
	}
}

func TestAdminReplyGoneMessage(t *testing.T) {
	gw := newFakeGateway()
	admin := UserInfo{ID: 1}
	e, _ := newTestEngine(gw)

	replies := e.StartReply(context.Background(), admin, 404)
	if len(replies) != 1 || replies[0].Text != textMessageGone {
		t.Fatalf("expected gone notice, got %+v", replies)
	}
}

func TestSessionTTLExpiry(t *testing.T) {
	gw := newFakeGateway()
	gw.events = []store.Event{workshopEvent()}
	sessions := NewSessions(10 * time.Millisecond)
	e := NewEngine(gw, sessions, Options{MessagesPerDay: 1})
	ctx := context.Background()

	e.StartRegistration(ctx, testUser)
	time.Sleep(25 * time.Millisecond)
	if replies := e.Handle(ctx, testUser.ID, Input{Kind: KindSelect, Payload: "کارگاه تست ۱"}); replies != nil {
		t.Fatalf("expired session must drop input, got %+v", replies)
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("expired session should be gone")
	}
}

func TestNoEventsShortCircuits(t *testing.T) {
	gw := newFakeGateway()
	e, sessions := newTestEngine(gw)

	replies := e.StartRegistration(context.Background(), testUser)
	if len(replies) != 1 || replies[0].Text != textNoEvents {
		t.Fatalf("expected empty-list notice, got %+v", replies)
	}
	if sessions.Get(testUser.ID) != nil {
		t.Fatalf("no session should open without events")
	}
}
