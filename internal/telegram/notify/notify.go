// Package notify fans out messages that are not replies to the current
// update: admin alerts and direct messages to stored user ids.
package notify

import (
	"context"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/logger"
	"github.com/uma-mfg/societybot/internal/telegram/sender"
)

// Courier is the subset of tele.Bot the notifier needs.
type Courier interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier delivers out-of-band messages through the async dispatcher.
type Notifier struct {
	courier  Courier
	disp     *sender.Dispatcher
	adminIDs []int64
}

// New builds a notifier. A nil dispatcher makes sends synchronous.
func New(courier Courier, disp *sender.Dispatcher, adminIDs []int64) *Notifier {
	return &Notifier{courier: courier, disp: disp, adminIDs: adminIDs}
}

// Admins sends the text to every configured admin.
func (n *Notifier) Admins(ctx context.Context, text string, opts ...interface{}) {
	for _, id := range n.adminIDs {
		n.Direct(ctx, id, text, opts...)
	}
}

// Direct sends the text to a single user id.
func (n *Notifier) Direct(ctx context.Context, userID int64, text string, opts ...interface{}) {
	run := func() error {
		_, err := n.courier.Send(&tele.User{ID: userID}, text, opts...)
		return err
	}
	if n.disp == nil {
		if err := run(); err != nil {
			logger.TG.Error("direct send failed",
				slog.String("event", "notify.send"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return
	}
	if err := n.disp.Enqueue(ctx, "notify.direct", run); err != nil {
		logger.TG.Warn("notify enqueue failed, sending inline",
			slog.String("event", "notify.enqueue"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		if err := run(); err != nil {
			logger.TG.Error("direct send failed",
				slog.String("event", "notify.send"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
	}
}
