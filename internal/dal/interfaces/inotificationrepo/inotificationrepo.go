package inotificationrepo

import (
	"context"
	"time"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
)

// INotificationRepository defines the interface for the queued-notification
// table.
type INotificationRepository interface {
	// Insert enqueues a new notification for delivery.
	Insert(ctx context.Context, n notification.Notification) (*notification.Notification, error)

	// GetPending retrieves notifications that are due for delivery.
	GetPending(ctx context.Context, limit int) ([]notification.Notification, error)

	// MarkSent records a successful delivery.
	MarkSent(ctx context.Context, id int64) error

	// UpdateRetry updates retry count and error information.
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error

	// MarkFailed records a permanently failed delivery.
	MarkFailed(ctx context.Context, id int64, lastError string) error
}
