package notifier

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/inotificationrepo"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
)

// sender delivers a single SMS. Delivery failure is retried by the worker,
// never surfaced to HTTP callers.
type sender interface {
	SendSMS(ctx context.Context, recipientName, body, phoneNumber, photoURL string) error
}

type auditPublisher interface {
	Publish(ctx context.Context, events ...auditevent.Event) error
}

// Worker delivers queued notifications in the background. Lifecycle handlers
// only enqueue; the worker owns retries, backoff and terminal states.
type Worker struct {
	notificationRepo inotificationrepo.INotificationRepository
	sender           sender
	audit            auditPublisher
	pollInterval     time.Duration
	batchSize        int
	stopCh           chan struct{}
}

// NewWorker creates a new notifier worker.
func NewWorker(
	notificationRepo inotificationrepo.INotificationRepository,
	sender sender,
	audit auditPublisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("notifications.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 5
	}

	batchSize := viper.GetInt("notifications.batch_size")
	if batchSize == 0 {
		batchSize = 50
	}

	return &Worker{
		notificationRepo: notificationRepo,
		sender:           sender,
		audit:            audit,
		pollInterval:     time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:        batchSize,
		stopCh:           make(chan struct{}),
	}
}

// Start begins delivering queued notifications.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Notifier worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notifier worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Notifier worker stopped")

			return
		case <-ticker.C:
			w.processPending(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processPending retrieves due notifications and attempts delivery.
func (w *Worker) processPending(ctx context.Context) {
	pending, err := w.notificationRepo.GetPending(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending notifications", "error", err)

		return
	}

	if len(pending) == 0 {
		return
	}

	slog.Info("Delivering notifications", "count", len(pending))

	for _, n := range pending {
		err := w.sender.SendSMS(ctx, n.RecipientName, n.Body, n.PhoneNumber, n.PhotoURL)
		if err != nil {
			w.scheduleRetry(ctx, n.ID, n.RetryCount, n.MaxRetries, err)

			continue
		}

		if err := w.notificationRepo.MarkSent(ctx, n.ID); err != nil {
			slog.Error("Failed to mark notification sent", "notification_id", n.ID, "error", err)

			continue
		}

		slog.Info("Customer notified", "notification_id", n.ID, "order_id", n.OrderID)

		if w.audit != nil {
			if err := w.audit.Publish(ctx, auditevent.Event{
				Type:           auditevent.TypeCustomerNotified,
				OrderID:        n.OrderID,
				NotificationID: n.ID,
				OccurredAt:     time.Now(),
			}); err != nil {
				slog.Error("Failed to publish audit event", "notification_id", n.ID, "error", err)
			}
		}
	}
}

// scheduleRetry records a failed attempt with exponential backoff, or marks
// the notification failed once retries are exhausted.
func (w *Worker) scheduleRetry(ctx context.Context, id int64, retryCount, maxRetries int, sendErr error) {
	newRetryCount := retryCount + 1

	if newRetryCount >= maxRetries {
		slog.Warn("Max retries reached for notification, marking failed",
			"notification_id", id,
			"retry_count", newRetryCount,
			"error", sendErr,
		)
		if err := w.notificationRepo.MarkFailed(ctx, id, sendErr.Error()); err != nil {
			slog.Error("Failed to mark notification failed", "notification_id", id, "error", err)
		}

		return
	}

	backoffSeconds := math.Pow(2, float64(newRetryCount)) * 30 // 60s, 120s, 240s, etc.
	nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

	slog.Warn("Failed to deliver notification, will retry",
		"notification_id", id,
		"retry_count", newRetryCount,
		"next_retry", nextRetryAt,
		"error", sendErr,
	)

	if err := w.notificationRepo.UpdateRetry(ctx, id, newRetryCount, sendErr.Error(), nextRetryAt); err != nil {
		slog.Error("Failed to update retry information", "notification_id", id, "error", err)
	}
}
