package flow

import (
	"context"

	"github.com/uma-mfg/societybot/internal/store"
)

// Gateway is the persistence surface the conversation engine drives.
// *store.Store satisfies it; tests substitute an in-memory fake.
type Gateway interface {
	ActiveEvents(ctx context.Context, category string) ([]store.Event, error)
	IsRegistered(ctx context.Context, userID int64, eventName string) (bool, error)
	Register(ctx context.Context, in store.RegistrationInput) (int64, error)

	UserRegistrations(ctx context.Context, userID int64) ([]store.RegistrationDetail, error)
	Registration(ctx context.Context, id, userID int64) (*store.RegistrationDetail, error)
	Cancel(ctx context.Context, id, userID int64) error

	AddMessage(ctx context.Context, userID int64, userName, text, category string) (int64, error)
	MessagesToday(ctx context.Context, userID int64) (int, error)
	Message(ctx context.Context, id int64) (*store.UserMessage, error)
	Reply(ctx context.Context, id, adminID int64, text string) error
}
