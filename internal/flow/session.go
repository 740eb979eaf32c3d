package flow

import (
	"sync"
	"time"
)

// Step identifies a conversation state.
type Step string

const (
	// StepIdle indicates there is no active conversation with the user.
	StepIdle Step = "idle"

	StepSelectingEvent     Step = "selecting_event"
	StepEnteringName       Step = "entering_name"
	StepEnteringStudentID  Step = "entering_student_id"
	StepEnteringNationalID Step = "entering_national_id"
	StepEnteringPhone      Step = "entering_phone"
	StepConfirming         Step = "confirming_registration"

	StepViewingProfile         Step = "viewing_profile"
	StepSelectingCancellation  Step = "selecting_cancellation"
	StepConfirmingCancellation Step = "confirming_cancellation"

	StepEnteringMessage Step = "entering_message"
	StepEnteringReply   Step = "entering_reply"
)

// UserInfo carries the Telegram identity fields rendered in profiles.
type UserInfo struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName joins first and last name for storage and admin views.
func (u UserInfo) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Draft accumulates validated registration fields before commit.
type Draft struct {
	EventName   string
	FullName    string
	StudentID   string
	NationalID  string
	PhoneNumber string
}

// Session is the per-user conversation state. It holds only uncommitted
// input; nothing here survives a terminal transition.
type Session struct {
	Step      Step
	Draft     Draft
	User      UserInfo
	TargetReg int64
	TargetMsg int64
	UpdatedAt time.Time
}

// Sessions stores per-user conversation state. Lifecycle rules live here:
// Begin replaces any leftover state wholesale, Clear runs on every
// terminal transition, and an optional TTL expires abandoned dialogs.
type Sessions struct {
	mu  sync.Mutex
	m   map[int64]*Session
	ttl time.Duration
}

// NewSessions builds a session store. ttl of zero disables idle expiry.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		m:   make(map[int64]*Session),
		ttl: ttl,
	}
}

// Begin starts a fresh session at the given step, discarding any
// previous state for the user.
func (s *Sessions) Begin(user UserInfo, step Step) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Step: step, User: user, UpdatedAt: time.Now()}
	s.m[user.ID] = sess
	return sess
}

// Get returns the live session for a user, or nil when the user is idle
// or the session expired.
func (s *Sessions) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[userID]
	if !ok {
		return nil
	}
	if s.expired(sess) {
		delete(s.m, userID)
		return nil
	}
	return sess
}

// Touch refreshes the idle timer after a handled input.
func (s *Sessions) Touch(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[userID]; ok {
		sess.UpdatedAt = time.Now()
	}
}

// Clear removes the session for a user.
func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}

// InProgress reports whether the user has an active conversation.
func (s *Sessions) InProgress(userID int64) bool {
	return s.Get(userID) != nil
}

func (s *Sessions) expired(sess *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return time.Since(sess.UpdatedAt) > s.ttl
}
