package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
)

// NotificationDal represents the queued-notification data access layer model.
type NotificationDal struct {
	Id            int64     `db:"id"`
	OrderId       int64     `db:"order_id"`
	RecipientName string    `db:"recipient_name"`
	PhoneNumber   string    `db:"phone_number"`
	Body          string    `db:"body"`
	PhotoUrl      string    `db:"photo_url"`
	Status        string    `db:"status"`
	RetryCount    int       `db:"retry_count"`
	MaxRetries    int       `db:"max_retries"`
	LastError     string    `db:"last_error"`
	NextRetryAt   time.Time `db:"next_retry_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts NotificationDal to the service layer Notification model.
func (n *NotificationDal) ToModel() *notification.Notification {
	return &notification.Notification{
		ID:            n.Id,
		OrderID:       n.OrderId,
		RecipientName: n.RecipientName,
		PhoneNumber:   n.PhoneNumber,
		Body:          n.Body,
		PhotoURL:      n.PhotoUrl,
		Status:        notification.Status(n.Status),
		RetryCount:    n.RetryCount,
		MaxRetries:    n.MaxRetries,
		LastError:     n.LastError,
		NextRetryAt:   n.NextRetryAt,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

const notificationColumns = "id, order_id, recipient_name, phone_number, body, photo_url, status, retry_count, max_retries, last_error, next_retry_at, created_at, updated_at"

// PostgresNotificationRepository implements the queued-notification
// repository for PostgreSQL.
type PostgresNotificationRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresNotificationRepository creates a new Postgres notification
// repository.
func NewPostgresNotificationRepository(conn postgres.GenericConn) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var dal NotificationDal
	var nextRetryAt, createdAt, updatedAt pgtype.Timestamptz

	if err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.RecipientName,
		&dal.PhoneNumber,
		&dal.Body,
		&dal.PhotoUrl,
		&dal.Status,
		&dal.RetryCount,
		&dal.MaxRetries,
		&dal.LastError,
		&nextRetryAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	dal.NextRetryAt = nextRetryAt.Time
	dal.CreatedAt = createdAt.Time
	dal.UpdatedAt = updatedAt.Time

	return dal.ToModel(), nil
}

// Insert enqueues a new notification for delivery.
func (r *PostgresNotificationRepository) Insert(
	ctx context.Context,
	n notification.Notification,
) (*notification.Notification, error) {
	now := time.Now()
	sql, args, err := r.sb.
		Insert("notifications").
		Columns(
			"order_id",
			"recipient_name",
			"phone_number",
			"body",
			"photo_url",
			"status",
			"retry_count",
			"max_retries",
			"last_error",
			"next_retry_at",
			"created_at",
			"updated_at",
		).
		Values(
			n.OrderID,
			n.RecipientName,
			n.PhoneNumber,
			n.Body,
			n.PhotoURL,
			notification.StatusPending.String(),
			0,
			n.MaxRetries,
			"",
			now,
			now,
			now,
		).
		Suffix("RETURNING " + notificationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert notification query: %w", err)
	}

	model, err := scanNotification(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	return model, nil
}

// GetPending retrieves notifications that are due for delivery.
func (r *PostgresNotificationRepository) GetPending(
	ctx context.Context,
	limit int,
) ([]notification.Notification, error) {
	sql, args, err := r.sb.
		Select(notificationColumns).
		From("notifications").
		Where(sq.Eq{"status": notification.StatusPending.String()}).
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pending query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending notifications: %w", err)
	}
	defer rows.Close()

	result := []notification.Notification{}
	for rows.Next() {
		model, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// MarkSent records a successful delivery.
func (r *PostgresNotificationRepository) MarkSent(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, notification.StatusSent, "")
}

// MarkFailed records a permanently failed delivery.
func (r *PostgresNotificationRepository) MarkFailed(
	ctx context.Context,
	id int64,
	lastError string,
) error {
	return r.setStatus(ctx, id, notification.StatusFailed, lastError)
}

func (r *PostgresNotificationRepository) setStatus(
	ctx context.Context,
	id int64,
	status notification.Status,
	lastError string,
) error {
	query := r.sb.
		Update("notifications").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	if lastError != "" {
		query = query.Set("last_error", lastError)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set status query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to set notification status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// UpdateRetry updates retry count and error information.
func (r *PostgresNotificationRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	sql, args, err := r.sb.
		Update("notifications").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update retry query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update retry information: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
