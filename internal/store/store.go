// Package store implements the persistence gateway on PostgreSQL.
// Registration writes take a row lock on the event so capacity can never
// be oversubscribed by concurrent sign-ups.
package store

import (
	"github.com/jmoiron/sqlx"
)

// Store provides typed access to events, registrations, and user messages.
type Store struct {
	db *sqlx.DB

	// messagesPerDay caps contact messages per user per calendar day.
	messagesPerDay int
}

// New builds a Store on top of an open database handle.
func New(db *sqlx.DB, messagesPerDay int) *Store {
	if messagesPerDay <= 0 {
		messagesPerDay = 1
	}
	return &Store{db: db, messagesPerDay: messagesPerDay}
}
