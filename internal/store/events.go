package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
)

// ActiveEvents lists active events ordered by date. An empty category
// returns every active event. Read failures degrade to an empty list so
// menus stay usable when the database hiccups.
func (s *Store) ActiveEvents(ctx context.Context, category string) ([]Event, error) {
	var (
		events []Event
		err    error
	)
	if category == "" {
		err = s.db.SelectContext(ctx, &events,
			`SELECT * FROM events WHERE active ORDER BY date ASC, id ASC`)
	} else {
		err = s.db.SelectContext(ctx, &events,
			`SELECT * FROM events WHERE active AND category = $1 ORDER BY date ASC, id ASC`, category)
	}
	if err != nil {
		logger.STORE.Error("events query failed",
			slog.String("event", "store.events"),
			slog.String("category", category),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return events, nil
}

// AllEvents lists every event regardless of active flag, for admin views.
func (s *Store) AllEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := s.db.SelectContext(ctx, &events,
		`SELECT * FROM events ORDER BY date ASC, id ASC`); err != nil {
		logger.STORE.Error("events query failed",
			slog.String("event", "store.events_admin"),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return events, nil
}

// EventByName returns the active event with the given name.
func (s *Store) EventByName(ctx context.Context, name string) (*Event, error) {
	var ev Event
	err := s.db.GetContext(ctx, &ev,
		`SELECT * FROM events WHERE name = $1 AND active`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("event by name: %w", err)
	}
	return &ev, nil
}

// CreateEvent inserts a new event and returns its id.
func (s *Store) CreateEvent(ctx context.Context, in EventInput) (int64, error) {
	if in.Category == "" {
		in.Category = CategoryEvent
	}
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO events (name, description, date, time, location, capacity, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.Name, in.Description, in.Date, in.Time, in.Location, in.Capacity, in.Category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEventExists
		}
		return 0, fmt.Errorf("create event: %w", err)
	}
	logger.STORE.Info("event created",
		slog.String("event", "store.event_create"),
		slog.String("event_name", in.Name),
		slog.Int("capacity", in.Capacity),
	)
	return id, nil
}

// UpdateEvent rewrites the mutable fields of an event. Renames cascade to
// registrations through the schema. Capacity may not drop below the number
// of existing registrations.
func (s *Store) UpdateEvent(ctx context.Context, id int64, in EventInput) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update event begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var cur Event
	err = tx.GetContext(ctx, &cur, `SELECT * FROM events WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("update event load: %w", err)
	}
	if in.Capacity < cur.RegisteredCount {
		return ErrCapacityBelowRegistered
	}
	if in.Category == "" {
		in.Category = cur.Category
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE events
		SET name = $2, description = $3, date = $4, time = $5,
		    location = $6, capacity = $7, category = $8
		WHERE id = $1`,
		id, in.Name, in.Description, in.Date, in.Time, in.Location, in.Capacity, in.Category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEventExists
		}
		return fmt.Errorf("update event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update event commit: %w", err)
	}
	logger.STORE.Info("event updated",
		slog.String("event", "store.event_update"),
		slog.String("event_name", in.Name),
		slog.Int("capacity", in.Capacity),
	)
	return nil
}

// ToggleEvent flips the active flag and returns the new value.
func (s *Store) ToggleEvent(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := s.db.GetContext(ctx, &active,
		`UPDATE events SET active = NOT active WHERE id = $1 RETURNING active`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrEventNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle event: %w", err)
	}
	logger.STORE.Info("event toggled",
		slog.String("event", "store.event_toggle"),
		slog.Int64("event_id", id),
		slog.Bool("active", active),
	)
	return active, nil
}

// DeleteEvent removes an event that has no registrations.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete event begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var name string
	err = tx.GetContext(ctx, &name, `SELECT name FROM events WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("delete event load: %w", err)
	}

	var regs int
	if err := tx.GetContext(ctx, &regs,
		`SELECT COUNT(*) FROM registrations WHERE event_name = $1`, name); err != nil {
		return fmt.Errorf("delete event count: %w", err)
	}
	if regs > 0 {
		return ErrHasRegistrations
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete event commit: %w", err)
	}
	logger.STORE.Info("event deleted",
		slog.String("event", "store.event_delete"),
		slog.String("event_name", name),
	)
	return nil
}
