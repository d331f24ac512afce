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
	"github.com/jmphair/order-up-midterm-project/internal/service/models/customer"
)

// CustomerDal represents the customer data access layer model.
type CustomerDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts CustomerDal to the service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.GenericConn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a customer and returns it with its generated id.
func (r *PostgresCustomerRepository) Insert(
	ctx context.Context,
	c customer.Customer,
) (*customer.Customer, error) {
	sql, args, err := r.sb.
		Insert("customers").
		Columns("name", "phone", "created_at").
		Values(c.Name, c.Phone, time.Now()).
		Suffix("RETURNING id, name, phone, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert customer query: %w", err)
	}

	var dal CustomerDal
	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Phone,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}
	dal.CreatedAt = createdAt.Time

	return dal.ToModel(), nil
}

// GetByID retrieves a customer by id.
func (r *PostgresCustomerRepository) GetByID(
	ctx context.Context,
	id int64,
) (*customer.Customer, error) {
	sql, args, err := r.sb.
		Select("id", "name", "phone", "created_at").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get customer query: %w", err)
	}

	var dal CustomerDal
	var createdAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Phone,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	dal.CreatedAt = createdAt.Time

	return dal.ToModel(), nil
}
