package flow

import "github.com/uma-mfg/societybot/internal/store"

// InputKind classifies an inbound update for the transition table.
type InputKind int

const (
	// KindText is a free-text message while a field step is active.
	KindText InputKind = iota
	// KindSelect is a selection callback or menu action carrying a payload.
	KindSelect
	// KindConfirm accepts the pending operation.
	KindConfirm
	// KindEdit re-opens data entry from the confirmation step.
	KindEdit
	// KindReject declines the pending operation and steps back.
	KindReject
	// KindCancel aborts the whole conversation from any step.
	KindCancel
)

// Input is a transport-neutral inbound action.
type Input struct {
	Kind    InputKind
	Text    string
	Payload string
	ID      int64
}

// Keyboard selects which keyboard the transport attaches to a reply.
type Keyboard int

const (
	// KbNone leaves the current keyboard untouched.
	KbNone Keyboard = iota
	// KbRemove removes the reply keyboard.
	KbRemove
	// KbMain shows the main menu reply keyboard.
	KbMain
	// KbCancelEntry shows the single cancel button used during field entry.
	KbCancelEntry
	// KbEvents shows the inline event selection keyboard built from Events.
	KbEvents
	// KbConfirmRegistration shows confirm/edit/cancel inline buttons.
	KbConfirmRegistration
	// KbProfile shows the profile management reply keyboard.
	KbProfile
	// KbCancelList shows one inline cancel button per registration in Regs.
	KbCancelList
	// KbCancelConfirm shows yes/no inline buttons bound to TargetID.
	KbCancelConfirm
	// KbBackToMenu shows the single back-to-menu reply button.
	KbBackToMenu
)

// Reply is a transport-neutral render instruction. The engine emits an
// ordered list of these per handled input; the adapter turns each into a
// send or an in-place edit.
type Reply struct {
	Text     string
	Markdown bool
	Keyboard Keyboard

	// Edit rewrites the triggering inline message instead of sending.
	Edit bool

	Events   []store.Event
	Regs     []store.RegistrationDetail
	TargetID int64

	// HasRegs drives the profile keyboard variant.
	HasRegs bool

	// ToAdmins delivers the reply to the configured admin chats.
	ToAdmins bool
	// DirectTo delivers the reply to a specific chat instead of the sender.
	DirectTo int64
}
