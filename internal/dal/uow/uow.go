package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/icustomerrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/inotificationrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/iorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	customerrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/customer/postgres"
	foodrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/food/postgres"
	foodorderrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/foodorder/postgres"
	notificationrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/notification/postgres"
	orderrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/order/postgres"
)

// UnitOfWork binds the repositories to a single connection source. Before
// Begin they run against the pool; after Begin they share one transaction
// until Commit or Rollback.
type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	customerRepo     icustomerrepo.ICustomerRepository
	foodRepo         ifoodrepo.IFoodRepository
	orderRepo        iorderrepo.IOrderRepository
	foodOrderRepo    ifoodorderrepo.IFoodOrderRepository
	notificationRepo inotificationrepo.INotificationRepository
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.GenericConn) {
	u.customerRepo = customerrepo.NewPostgresCustomerRepository(conn)
	u.foodRepo = foodrepo.NewPostgresFoodRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.foodOrderRepo = foodorderrepo.NewPostgresFoodOrderRepository(conn)
	u.notificationRepo = notificationrepo.NewPostgresNotificationRepository(conn)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *UnitOfWork) FoodRepository() ifoodrepo.IFoodRepository {
	return u.foodRepo
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) FoodOrderRepository() ifoodorderrepo.IFoodOrderRepository {
	return u.foodOrderRepo
}

func (u *UnitOfWork) NotificationRepository() inotificationrepo.INotificationRepository {
	return u.notificationRepo
}
