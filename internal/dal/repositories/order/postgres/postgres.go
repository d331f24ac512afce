package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id              int64     `db:"id"`
	CustomerId      int64     `db:"customer_id"`
	Status          string    `db:"status"`
	PrepTimeMinutes int       `db:"preptime_minutes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:              o.Id,
		CustomerID:      o.CustomerId,
		Status:          status,
		PrepTimeMinutes: o.PrepTimeMinutes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		FoodOrders:      []foodorder.FoodOrder{},
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const orderColumns = "id, customer_id, status, preptime_minutes, created_at, updated_at"

func (r *PostgresOrderRepository) scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	var createdAt, updatedAt pgtype.Timestamptz

	if err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.Status,
		&dal.PrepTimeMinutes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	dal.CreatedAt = createdAt.Time
	dal.UpdatedAt = updatedAt.Time

	return dal.ToModel()
}

// Insert creates an order and returns it with its generated id.
func (r *PostgresOrderRepository) Insert(
	ctx context.Context,
	o order.Order,
) (*order.Order, error) {
	now := time.Now()
	sql, args, err := r.sb.
		Insert("orders").
		Columns("customer_id", "status", "preptime_minutes", "created_at", "updated_at").
		Values(o.CustomerID, o.Status.String(), o.PrepTimeMinutes, now, now).
		Suffix("RETURNING " + orderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert order query: %w", err)
	}

	model, err := r.scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return model, nil
}

// GetByID retrieves an order by id.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get order query: %w", err)
	}

	model, err := r.scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return model, nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns).
		From("orders").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.CustomerIds) > 0 {
		query = query.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		model, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateEstimatedTime sets the preparation-time estimate and moves the order
// to the confirmed state.
func (r *PostgresOrderRepository) UpdateEstimatedTime(
	ctx context.Context,
	orderID int64,
	minutes int,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("preptime_minutes", minutes).
		Set("status", order.StatusConfirmed.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + orderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update estimated time query: %w", err)
	}

	model, err := r.scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to update estimated time: %w", err)
	}

	return model, nil
}

// UpdateOrder applies the non-nil fields of the update model.
func (r *PostgresOrderRepository) UpdateOrder(
	ctx context.Context,
	orderID int64,
	fields order.UpdateOrderModel,
) (*order.Order, error) {
	query := r.sb.
		Update("orders").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + orderColumns)

	if fields.Status != nil {
		query = query.Set("status", fields.Status.String())
	}

	if fields.PrepTimeMinutes != nil {
		query = query.Set("preptime_minutes", *fields.PrepTimeMinutes)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update order query: %w", err)
	}

	model, err := r.scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return model, nil
}
