package models

import "time"

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a transient user-facing message. Notifications live in
// an in-process queue only: they expire after a fixed display duration or
// when explicitly dismissed, and are never persisted.
type Notification struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"-"`
}
