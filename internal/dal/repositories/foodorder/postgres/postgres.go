package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
)

// FoodOrderDal represents the food-order-line data access layer model.
type FoodOrderDal struct {
	Id        int64     `db:"id"`
	OrderId   int64     `db:"order_id"`
	FoodId    int64     `db:"food_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts FoodOrderDal to the service layer FoodOrder model.
func (f *FoodOrderDal) ToModel() *foodorder.FoodOrder {
	return &foodorder.FoodOrder{
		ID:        f.Id,
		OrderID:   f.OrderId,
		FoodID:    f.FoodId,
		Quantity:  f.Quantity,
		CreatedAt: f.CreatedAt,
	}
}

// PostgresFoodOrderRepository represents a Postgres food-order-line
// repository.
type PostgresFoodOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresFoodOrderRepository creates a new Postgres food-order-line
// repository.
func NewPostgresFoodOrderRepository(conn postgres.GenericConn) *PostgresFoodOrderRepository {
	return &PostgresFoodOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple lines and returns them with generated ids.
func (r *PostgresFoodOrderRepository) BulkInsert(
	ctx context.Context,
	lines []foodorder.FoodOrder,
) ([]foodorder.FoodOrder, error) {
	if len(lines) == 0 {
		return []foodorder.FoodOrder{}, nil
	}

	now := time.Now()
	query := r.sb.
		Insert("food_orders").
		Columns("order_id", "food_id", "quantity", "created_at")
	for _, line := range lines {
		query = query.Values(line.OrderID, line.FoodID, line.Quantity, now)
	}

	sql, args, err := query.
		Suffix("RETURNING id, order_id, food_id, quantity, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert food orders: %w", err)
	}
	defer rows.Close()

	var result []foodorder.FoodOrder
	for rows.Next() {
		var dal FoodOrderDal
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.FoodId,
			&dal.Quantity,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan food order: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves lines based on filter criteria.
func (r *PostgresFoodOrderRepository) Query(
	ctx context.Context,
	filter *foodorder.QueryFoodOrdersModel,
) ([]foodorder.FoodOrder, error) {
	query := r.sb.
		Select("id", "order_id", "food_id", "quantity", "created_at").
		From("food_orders").
		OrderBy("id")

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food orders: %w", err)
	}
	defer rows.Close()

	result := []foodorder.FoodOrder{}
	for rows.Next() {
		var dal FoodOrderDal
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.FoodId,
			&dal.Quantity,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan food order: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
