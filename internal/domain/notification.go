package domain

import (
	"fmt"
	"time"
)

// NotificationKind classifies a notification for the caller.
type NotificationKind string

// Possible notification kinds
const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Valid reports whether k is one of the known kinds.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationInfo, NotificationSuccess, NotificationError:
		return true
	default:
		return false
	}
}

// ParseNotificationKind converts a string into a NotificationKind.
// An empty string maps to NotificationInfo.
func ParseNotificationKind(s string) (NotificationKind, error) {
	if s == "" {
		return NotificationInfo, nil
	}
	k := NotificationKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown notification kind %q", ErrValidation, s)
	}
	return k, nil
}

// Notification is an ephemeral user-facing message. It is removed either
// explicitly by id or automatically once its lifetime elapses.
type Notification struct {
	ID        int64            `json:"id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"type"`
	CreatedAt time.Time        `json:"timestamp"`
}
