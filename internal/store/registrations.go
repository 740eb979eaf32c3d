package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
)

// Register persists a registration, incrementing the event counter in the
// same transaction. The event row is locked first so two concurrent
// sign-ups for the last seat cannot both succeed.
func (s *Store) Register(ctx context.Context, in RegistrationInput) (int64, error) {
	start := time.Now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("register begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var ev Event
	err = tx.GetContext(ctx, &ev,
		`SELECT * FROM events WHERE name = $1 AND active FOR UPDATE`, in.EventName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrEventNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("register lock event: %w", err)
	}
	if ev.RegisteredCount >= ev.Capacity {
		return 0, ErrCapacityExceeded
	}

	var exists bool
	if err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM registrations WHERE user_id = $1 AND event_name = $2
		)`, in.UserID, in.EventName); err != nil {
		return 0, fmt.Errorf("register duplicate check: %w", err)
	}
	if exists {
		return 0, ErrDuplicateRegistration
	}

	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO registrations (user_id, full_name, student_id, national_id, phone_number, event_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		in.UserID, in.FullName, in.StudentID, in.NationalID, in.PhoneNumber, in.EventName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateRegistration
		}
		return 0, fmt.Errorf("register insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`, ev.ID); err != nil {
		return 0, fmt.Errorf("register increment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("register commit: %w", err)
	}

	logger.STORE.Info("registration added",
		slog.String("event", "store.register"),
		slog.Int64("registration_id", id),
		slog.Int64("user_id", in.UserID),
		slog.String("event_name", in.EventName),
		slog.Int("registered", ev.RegisteredCount+1),
		slog.Int("capacity", ev.Capacity),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// IsRegistered reports whether the user already has a registration for the event.
// Lookup failures read as false so they surface later, at write time.
func (s *Store) IsRegistered(ctx context.Context, userID int64, eventName string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM registrations WHERE user_id = $1 AND event_name = $2
		)`, userID, eventName)
	if err != nil {
		logger.STORE.Error("registration lookup failed",
			slog.String("event", "store.is_registered"),
			slog.Int64("user_id", userID),
			slog.String("event_name", eventName),
			slog.String("err", err.Error()),
		)
		return false, nil
	}
	return exists, nil
}

// UserRegistrations lists the user's registrations newest first, joined with
// the event fields shown in the profile.
func (s *Store) UserRegistrations(ctx context.Context, userID int64) ([]RegistrationDetail, error) {
	var regs []RegistrationDetail
	err := s.db.SelectContext(ctx, &regs, `
		SELECT r.*,
		       COALESCE(e.date, '')        AS event_date,
		       COALESCE(e.description, '') AS event_description,
		       COALESCE(e.time, '')        AS event_time,
		       COALESCE(e.location, '')    AS event_location
		FROM registrations r
		LEFT JOIN events e ON e.name = r.event_name
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC`, userID)
	if err != nil {
		logger.STORE.Error("registrations query failed",
			slog.String("event", "store.user_registrations"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return regs, nil
}

// Registration loads a single registration owned by the user.
func (s *Store) Registration(ctx context.Context, id, userID int64) (*RegistrationDetail, error) {
	var reg RegistrationDetail
	err := s.db.GetContext(ctx, &reg, `
		SELECT r.*,
		       COALESCE(e.date, '')        AS event_date,
		       COALESCE(e.description, '') AS event_description,
		       COALESCE(e.time, '')        AS event_time,
		       COALESCE(e.location, '')    AS event_location
		FROM registrations r
		LEFT JOIN events e ON e.name = r.event_name
		WHERE r.id = $1 AND r.user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("registration: %w", err)
	}
	return &reg, nil
}

// Cancel deletes the user's registration and frees the seat. Ownership is
// part of the predicate so users can only cancel their own registrations.
func (s *Store) Cancel(ctx context.Context, id, userID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cancel begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var eventName string
	err = tx.GetContext(ctx, &eventName, `
		DELETE FROM registrations
		WHERE id = $1 AND user_id = $2
		RETURNING event_name`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return fmt.Errorf("cancel delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE events
		SET registered_count = GREATEST(registered_count - 1, 0)
		WHERE name = $1`, eventName); err != nil {
		return fmt.Errorf("cancel decrement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cancel commit: %w", err)
	}

	logger.STORE.Info("registration cancelled",
		slog.String("event", "store.cancel"),
		slog.Int64("registration_id", id),
		slog.Int64("user_id", userID),
		slog.String("event_name", eventName),
	)
	return nil
}

// RecentRegistrations lists the latest registrations across all users.
func (s *Store) RecentRegistrations(ctx context.Context, limit int) ([]Registration, error) {
	if limit <= 0 {
		limit = 10
	}
	var regs []Registration
	err := s.db.SelectContext(ctx, &regs, `
		SELECT * FROM registrations
		ORDER BY registered_at DESC
		LIMIT $1`, limit)
	if err != nil {
		logger.STORE.Error("registrations query failed",
			slog.String("event", "store.recent_registrations"),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return regs, nil
}
