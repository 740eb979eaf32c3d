package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"log/slog"

	"github.com/uma-mfg/societybot/internal/logger"
)

type seedEvent struct {
	Name        string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    int
	Category    string
}

// Dates are Jalali formatted with Persian digits, matching what users see.
var seedEvents = []seedEvent{
	{
		Name:        "کارگاه تست ۱",
		Description: "آموزش عملی دستگاه CNC",
		Date:        "۱۴۰۴/۱۰/۱۵",
		Time:        "10:00",
		Location:    "سالن شماره ۲",
		Capacity:    10,
		Category:    "workshop",
	},
	{
		Name:        "رویداد تست ۱",
		Description: "بررسی آخرین تکنولوژی‌های صنعتی",
		Date:        "۱۴۰۴/۱۰/۲۰",
		Time:        "09:30",
		Location:    "سالن اجتماعات",
		Capacity:    12,
		Category:    "event",
	},
	{
		Name:        "رویداد تست ۲",
		Description: "بازدید از خط تولید یک کارخانه",
		Date:        "۱۴۰۴/۱۰/۲۵",
		Time:        "08:00",
		Location:    "کارخانه صنعتی البرز",
		Capacity:    10,
		Category:    "event",
	},
}

// Seed inserts the sample events when the events table is empty.
// Reruns are no-ops so restarts never duplicate rows.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`); err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if count > 0 {
		logger.SEED.Debug("seed skipped",
			slog.String("event", "db.seed"),
			slog.Int("count", count),
		)
		return nil
	}

	start := time.Now()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO events (name, description, date, time, location, capacity, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, ev := range seedEvents {
		if _, err := tx.ExecContext(ctx, q,
			ev.Name, ev.Description, ev.Date, ev.Time, ev.Location, ev.Capacity, ev.Category,
		); err != nil {
			return fmt.Errorf("seed insert %q: %w", ev.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	logger.SEED.Info("seed applied",
		slog.String("event", "db.seed"),
		slog.Int("count", len(seedEvents)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}
