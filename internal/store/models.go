package store

import "time"

// Event is a workshop or event users can register for.
type Event struct {
	ID              int64  `db:"id"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	Date            string `db:"date"`
	Time            string `db:"time"`
	Location        string `db:"location"`
	Capacity        int    `db:"capacity"`
	RegisteredCount int    `db:"registered_count"`
	Category        string `db:"category"`
	Active          bool   `db:"active"`
}

// Remaining returns the number of free seats.
func (e Event) Remaining() int {
	r := e.Capacity - e.RegisteredCount
	if r < 0 {
		return 0
	}
	return r
}

// Registration is a confirmed sign-up of a user for an event.
type Registration struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	FullName     string    `db:"full_name"`
	StudentID    string    `db:"student_id"`
	NationalID   string    `db:"national_id"`
	PhoneNumber  string    `db:"phone_number"`
	EventName    string    `db:"event_name"`
	RegisteredAt time.Time `db:"registered_at"`
	Status       string    `db:"status"`
	Notified     bool      `db:"notified"`
}

// RegistrationDetail joins a registration with the event fields shown in profiles.
type RegistrationDetail struct {
	Registration
	EventDate        string `db:"event_date"`
	EventDescription string `db:"event_description"`
	EventTime        string `db:"event_time"`
	EventLocation    string `db:"event_location"`
}

// RegistrationInput carries the validated fields collected during the dialog.
type RegistrationInput struct {
	UserID      int64
	FullName    string
	StudentID   string
	NationalID  string
	PhoneNumber string
	EventName   string
}

// EventInput carries the fields admins supply when creating or updating an event.
type EventInput struct {
	Name        string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    int
	Category    string
}

// UserMessage is a contact-admin message with its moderation state.
type UserMessage struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	UserName    string     `db:"user_name"`
	MessageText string     `db:"message_text"`
	SentAt      time.Time  `db:"sent_at"`
	Status      string     `db:"status"`
	AdminReply  *string    `db:"admin_reply"`
	RepliedAt   *time.Time `db:"replied_at"`
	RepliedBy   *int64     `db:"replied_by"`
	Category    string     `db:"category"`
}

// Message status values.
const (
	MessageUnread  = "unread"
	MessageRead    = "read"
	MessageReplied = "replied"
)

// Event categories.
const (
	CategoryWorkshop = "workshop"
	CategoryEvent    = "event"
)
