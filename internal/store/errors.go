package store

import "errors"

// Sentinel errors returned by the store. Callers match them with errors.Is
// and translate them into user-facing text.
var (
	// ErrEventNotFound means the event does not exist or is inactive.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventExists means an event with the same name already exists.
	ErrEventExists = errors.New("event already exists")
	// ErrCapacityExceeded means the event has no free seats left.
	ErrCapacityExceeded = errors.New("event capacity exceeded")
	// ErrCapacityBelowRegistered rejects shrinking capacity under the current registration count.
	ErrCapacityBelowRegistered = errors.New("capacity below registered count")
	// ErrDuplicateRegistration means the user is already registered for the event.
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrRegistrationNotFound means no registration matches the id and owner.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrHasRegistrations blocks deleting an event that still has registrations.
	ErrHasRegistrations = errors.New("event has registrations")
	// ErrDailyQuotaExceeded means the user already sent the allowed messages today.
	ErrDailyQuotaExceeded = errors.New("daily message quota exceeded")
	// ErrMessageNotFound means no stored message matches the id.
	ErrMessageNotFound = errors.New("message not found")
)
