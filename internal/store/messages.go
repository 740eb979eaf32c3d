package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
)

// AddMessage stores a contact message after checking the daily quota.
// Count and insert share a transaction so the quota holds under races.
func (s *Store) AddMessage(ctx context.Context, userID int64, userName, text, category string) (int64, error) {
	if category == "" {
		category = "contact"
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("add message begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var today int
	if err := tx.GetContext(ctx, &today, `
		SELECT COUNT(*) FROM user_messages
		WHERE user_id = $1 AND sent_at::date = CURRENT_DATE`, userID); err != nil {
		return 0, fmt.Errorf("add message count: %w", err)
	}
	if today >= s.messagesPerDay {
		return 0, ErrDailyQuotaExceeded
	}

	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO user_messages (user_id, user_name, message_text, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, userID, userName, text, category)
	if err != nil {
		return 0, fmt.Errorf("add message insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add message commit: %w", err)
	}

	logger.STORE.Info("user message stored",
		slog.String("event", "store.message_add"),
		slog.Int64("message_id", id),
		slog.Int64("user_id", userID),
		slog.String("category", category),
	)
	return id, nil
}

// MessagesToday counts the user's messages sent today. Failures read as
// zero so the quota check falls through to the write path.
func (s *Store) MessagesToday(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM user_messages
		WHERE user_id = $1 AND sent_at::date = CURRENT_DATE`, userID)
	if err != nil {
		logger.STORE.Error("message count failed",
			slog.String("event", "store.messages_today"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return 0, nil
	}
	return count, nil
}

// Message loads a single stored message by id.
func (s *Store) Message(ctx context.Context, id int64) (*UserMessage, error) {
	var msg UserMessage
	err := s.db.GetContext(ctx, &msg, `SELECT * FROM user_messages WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return &msg, nil
}

// ListMessages returns messages newest first, optionally filtered by status.
func (s *Store) ListMessages(ctx context.Context, status string, limit int) ([]UserMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var (
		msgs []UserMessage
		err  error
	)
	if status == "" {
		err = s.db.SelectContext(ctx, &msgs, `
			SELECT * FROM user_messages ORDER BY sent_at DESC LIMIT $1`, limit)
	} else {
		err = s.db.SelectContext(ctx, &msgs, `
			SELECT * FROM user_messages WHERE status = $1 ORDER BY sent_at DESC LIMIT $2`, status, limit)
	}
	if err != nil {
		logger.STORE.Error("messages query failed",
			slog.String("event", "store.messages_list"),
			slog.String("status", status),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return msgs, nil
}

// MarkRead flips an unread message to read.
func (s *Store) MarkRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_messages SET status = $2 WHERE id = $1`, id, MessageRead)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Reply stores the admin reply text and stamps the replier.
func (s *Store) Reply(ctx context.Context, id, adminID int64, text string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE user_messages
		SET admin_reply = $2, replied_by = $3, replied_at = now(), status = $4
		WHERE id = $1`, id, text, adminID, MessageReplied)
	if err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	logger.STORE.Info("admin reply stored",
		slog.String("event", "store.message_reply"),
		slog.Int64("message_id", id),
		slog.Int64("user_id", adminID),
	)
	return nil
}

// DeleteMessage removes a stored message.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// NextMessageID returns the smallest id greater than current, optionally
// restricted to a status. Zero means no further message.
func (s *Store) NextMessageID(ctx context.Context, current int64, status string) (int64, error) {
	return s.adjacentMessageID(ctx, current, status, true)
}

// PrevMessageID returns the largest id smaller than current.
func (s *Store) PrevMessageID(ctx context.Context, current int64, status string) (int64, error) {
	return s.adjacentMessageID(ctx, current, status, false)
}

func (s *Store) adjacentMessageID(ctx context.Context, current int64, status string, forward bool) (int64, error) {
	q := `SELECT id FROM user_messages WHERE id > $1 ORDER BY id ASC LIMIT 1`
	if !forward {
		q = `SELECT id FROM user_messages WHERE id < $1 ORDER BY id DESC LIMIT 1`
	}
	args := []any{current}
	if status != "" {
		if forward {
			q = `SELECT id FROM user_messages WHERE id > $1 AND status = $2 ORDER BY id ASC LIMIT 1`
		} else {
			q = `SELECT id FROM user_messages WHERE id < $1 AND status = $2 ORDER BY id DESC LIMIT 1`
		}
		args = append(args, status)
	}
	var id int64
	err := s.db.GetContext(ctx, &id, q, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("adjacent message: %w", err)
	}
	return id, nil
}

// UnreadCount counts messages still waiting for an admin.
func (s *Store) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_messages WHERE status = $1`, MessageUnread)
	if err != nil {
		logger.STORE.Error("unread count failed",
			slog.String("event", "store.unread_count"),
			slog.String("err", err.Error()),
		)
		return 0, nil
	}
	return count, nil
}
