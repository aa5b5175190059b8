// Package notify builds notification records for the workflow services.
// Records are created here and persisted by the store; delivery is handled
// by the external notification service.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/frsm-ph/shiftops/pkg/db"
)

// New builds a notification record addressed to one user
func New(userID int64, notifType, title, message string) *db.Notification {
	return &db.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
}

// Clock renders a stored "15:04" shift time as "3:04 PM" for messages.
// Unparseable values are passed through untouched.
func Clock(t string) string {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Format("3:04 PM")
		}
	}
	return t
}

// Date renders a shift date as "January 2, 2006" for messages
func Date(d time.Time) string {
	return d.Format("January 2, 2006")
}
