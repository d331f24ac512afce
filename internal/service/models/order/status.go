package order

import (
	"database/sql/driver"
	"errors"
)

// Status is the single lifecycle state of an order. It replaces the
// isComplete/isCancelled flag pair so invalid combinations cannot exist.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusReady     Status = "ready"
	StatusCancelled Status = "cancelled"
	StatusComplete  Status = "complete"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusReady, StatusCancelled, StatusComplete:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
