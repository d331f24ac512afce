package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
)

// FoodDal represents the menu item data access layer model.
type FoodDal struct {
	Id          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	PhotoUrl    string    `db:"photo_url"`
	PriceCents  int64     `db:"price_cents"`
	CreatedAt   time.Time `db:"created_at"`
}

// ToModel converts FoodDal to the service layer Food model.
func (f *FoodDal) ToModel() *food.Food {
	return &food.Food{
		ID:          f.Id,
		Name:        f.Name,
		Description: f.Description,
		PhotoUrl:    f.PhotoUrl,
		PriceCents:  f.PriceCents,
		CreatedAt:   f.CreatedAt,
	}
}

// PostgresFoodRepository represents a Postgres menu catalog repository.
type PostgresFoodRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresFoodRepository creates a new Postgres menu catalog repository.
func NewPostgresFoodRepository(conn postgres.GenericConn) *PostgresFoodRepository {
	return &PostgresFoodRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves menu items based on filter criteria. An empty filter
// returns the full catalog.
func (r *PostgresFoodRepository) Query(
	ctx context.Context,
	filter *food.QueryFoodsModel,
) ([]food.Food, error) {
	query := r.sb.
		Select("id", "name", "description", "photo_url", "price_cents", "created_at").
		From("foods").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	result := []food.Food{}
	for rows.Next() {
		var dal FoodDal
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.PhotoUrl,
			&dal.PriceCents,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
