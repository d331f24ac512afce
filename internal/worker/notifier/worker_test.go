package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
)

type fakeNotificationRepo struct {
	pending []notification.Notification

	sentIds   []int64
	failedIds []int64
	retries   []retryCall
}

type retryCall struct {
	id          int64
	retryCount  int
	lastError   string
	nextRetryAt time.Time
}

func (r *fakeNotificationRepo) Insert(_ context.Context, n notification.Notification) (*notification.Notification, error) {
	return &n, nil
}

func (r *fakeNotificationRepo) GetPending(_ context.Context, _ int) ([]notification.Notification, error) {
	return r.pending, nil
}

func (r *fakeNotificationRepo) MarkSent(_ context.Context, id int64) error {
	r.sentIds = append(r.sentIds, id)

	return nil
}

func (r *fakeNotificationRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	r.retries = append(r.retries, retryCall{id, retryCount, lastError, nextRetryAt})

	return nil
}

func (r *fakeNotificationRepo) MarkFailed(_ context.Context, id int64, _ string) error {
	r.failedIds = append(r.failedIds, id)

	return nil
}

type fakeSender struct {
	err  error
	sent []sentSMS
}

type sentSMS struct {
	recipientName string
	body          string
	phoneNumber   string
	photoURL      string
}

func (s *fakeSender) SendSMS(_ context.Context, recipientName, body, phoneNumber, photoURL string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentSMS{recipientName, body, phoneNumber, photoURL})

	return nil
}

type fakeAudit struct {
	events []auditevent.Event
}

func (a *fakeAudit) Publish(_ context.Context, events ...auditevent.Event) error {
	a.events = append(a.events, events...)

	return nil
}

func newTestWorker(repo *fakeNotificationRepo, s *fakeSender, a *fakeAudit) *Worker {
	return &Worker{
		notificationRepo: repo,
		sender:           s,
		audit:            a,
		pollInterval:     time.Second,
		batchSize:        10,
		stopCh:           make(chan struct{}),
	}
}

func TestProcessPendingDeliversAndAudits(t *testing.T) {
	repo := &fakeNotificationRepo{pending: []notification.Notification{{
		ID:            1,
		OrderID:       42,
		RecipientName: "A",
		PhoneNumber:   "+15550000",
		Body:          "Your order is ready for pick up! See you soon :)",
		MaxRetries:    5,
	}}}
	s := &fakeSender{}
	a := &fakeAudit{}
	w := newTestWorker(repo, s, a)

	w.processPending(context.Background())

	require.Len(t, s.sent, 1)
	assert.Equal(t, "+15550000", s.sent[0].phoneNumber)
	assert.Equal(t, []int64{1}, repo.sentIds)
	assert.Empty(t, repo.retries)
	assert.Empty(t, repo.failedIds)

	require.Len(t, a.events, 1)
	assert.Equal(t, auditevent.TypeCustomerNotified, a.events[0].Type)
	assert.Equal(t, int64(42), a.events[0].OrderID)
	assert.Equal(t, int64(1), a.events[0].NotificationID)
}

func TestProcessPendingSchedulesRetryWithBackoff(t *testing.T) {
	repo := &fakeNotificationRepo{pending: []notification.Notification{{
		ID:         1,
		OrderID:    42,
		RetryCount: 0,
		MaxRetries: 5,
	}}}
	s := &fakeSender{err: errors.New("twilio unreachable")}
	a := &fakeAudit{}
	w := newTestWorker(repo, s, a)

	before := time.Now()
	w.processPending(context.Background())

	assert.Empty(t, repo.sentIds)
	assert.Empty(t, repo.failedIds)
	require.Len(t, repo.retries, 1)
	assert.Equal(t, 1, repo.retries[0].retryCount)
	assert.Equal(t, "twilio unreachable", repo.retries[0].lastError)
	assert.True(t, repo.retries[0].nextRetryAt.After(before.Add(59*time.Second)))
	assert.Empty(t, a.events)
}

func TestProcessPendingMarksFailedAtMaxRetries(t *testing.T) {
	repo := &fakeNotificationRepo{pending: []notification.Notification{{
		ID:         1,
		OrderID:    42,
		RetryCount: 4,
		MaxRetries: 5,
	}}}
	s := &fakeSender{err: errors.New("twilio unreachable")}
	w := newTestWorker(repo, s, &fakeAudit{})

	w.processPending(context.Background())

	assert.Empty(t, repo.retries)
	assert.Equal(t, []int64{1}, repo.failedIds)
}
