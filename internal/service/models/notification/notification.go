package notification

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownKind          = errors.New("unknown notification kind")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Kind selects the message template for a restaurant-side status update.
type Kind string

const (
	KindCancel   Kind = "cancel"
	KindReady    Kind = "ready"
	KindComplete Kind = "complete"
	KindEdit     Kind = "edit"
)

func (k Kind) String() string {
	return string(k)
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCancel, KindReady, KindComplete, KindEdit:
		return Kind(s), nil
	default:
		return "", ErrUnknownKind
	}
}

// Message returns the fixed SMS body for a status-update kind. The preptime
// argument is only interpolated for KindEdit.
func Message(kind Kind, preptimeMinutes int) (string, error) {
	switch kind {
	case KindCancel:
		return "Sadly we need to cancel your order. Please try again, or call us with your Order ID for further details.", nil
	case KindReady:
		return "Your order is ready for pick up! See you soon :)", nil
	case KindComplete:
		return "Thank you for choosing Aloette! We hope to serve you again soon.", nil
	case KindEdit:
		return fmt.Sprintf("Your order needs an extra %d minutes to prepare. Our apologies for the delay, thank you for your patience.", preptimeMinutes), nil
	default:
		return "", ErrUnknownKind
	}
}

// ConfirmMessage returns the SMS body sent when a restaurant confirms an
// order with a preparation-time estimate.
func ConfirmMessage(preptimeMinutes int) string {
	return fmt.Sprintf("We are preparing your order! Please plan to pickup in %d minutes.", preptimeMinutes)
}

// Status is the delivery state of a queued notification.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Notification is a queued SMS delivery task. Lifecycle handlers enqueue it
// in the same transaction as the order mutation; the notifier worker owns
// delivery, retries and the terminal state.
type Notification struct {
	ID            int64     `json:"id"`
	OrderID       int64     `json:"orderId"`
	RecipientName string    `json:"recipientName"`
	PhoneNumber   string    `json:"phoneNumber"`
	Body          string    `json:"body"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	Status        Status    `json:"status"`
	RetryCount    int       `json:"retryCount"`
	MaxRetries    int       `json:"maxRetries"`
	LastError     string    `json:"lastError,omitempty"`
	NextRetryAt   time.Time `json:"nextRetryAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
