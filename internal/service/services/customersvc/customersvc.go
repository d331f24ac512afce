package customersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/icustomerrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/iorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/dal/uow"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/customer"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
)

// CustomerService serves the customer-facing surface: menu browsing,
// checkout and order status.
type CustomerService struct {
	pgClient *postgres.Client
	audit    auditPublisher
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	CustomerRepository() icustomerrepo.ICustomerRepository
	FoodRepository() ifoodrepo.IFoodRepository
	OrderRepository() iorderrepo.IOrderRepository
	FoodOrderRepository() ifoodorderrepo.IFoodOrderRepository
}

type auditPublisher interface {
	Publish(ctx context.Context, events ...auditevent.Event) error
}

// option is a function that configures the CustomerService.
type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CustomerService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithAuditPublisher sets the audit event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditPublisher(audit auditPublisher) option {
	return func(s *CustomerService) {
		s.audit = audit
	}
}

// ListMenu retrieves the full menu catalog.
func (s *CustomerService) ListMenu(ctx context.Context) ([]food.Food, error) {
	work := s.newUOW()

	return work.FoodRepository().Query(ctx, &food.QueryFoodsModel{})
}

// CheckoutItem is one requested menu item quantity.
type CheckoutItem struct {
	FoodID   int64
	Quantity int
}

// CheckoutModel carries the checkout inputs.
type CheckoutModel struct {
	Name  string
	Phone string
	Items []CheckoutItem
}

// Checkout creates the customer, their order and its food-order lines in a
// single transaction. A failure in any step rolls everything back.
func (s *CustomerService) Checkout(ctx context.Context, m CheckoutModel) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	foodIds := make([]int64, 0, len(m.Items))
	seen := map[int64]struct{}{}
	for _, item := range m.Items {
		if _, ok := seen[item.FoodID]; ok {
			continue
		}
		seen[item.FoodID] = struct{}{}
		foodIds = append(foodIds, item.FoodID)
	}

	foods, err := work.FoodRepository().Query(ctx, &food.QueryFoodsModel{Ids: foodIds})
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}
	if len(foods) != len(foodIds) {
		_ = work.Rollback(ctx)

		return nil, food.ErrFoodNotFound
	}

	cust, err := work.CustomerRepository().Insert(ctx, customer.Customer{
		Name:  m.Name,
		Phone: m.Phone,
	})
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	ord, err := work.OrderRepository().Insert(ctx, order.Order{
		CustomerID: cust.ID,
		Status:     order.StatusPending,
	})
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	lines := make([]foodorder.FoodOrder, len(m.Items))
	for i, item := range m.Items {
		lines[i] = foodorder.FoodOrder{
			OrderID:  ord.ID,
			FoodID:   item.FoodID,
			Quantity: item.Quantity,
		}
	}
	inserted, err := work.FoodOrderRepository().BulkInsert(ctx, lines)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	ord.FoodOrders = inserted
	ord.Customer = cust

	s.publishAudit(ctx, auditevent.Event{
		Type:        auditevent.TypeOrderCreated,
		OrderID:     ord.ID,
		CustomerID:  cust.ID,
		OrderStatus: ord.Status.String(),
		OccurredAt:  time.Now(),
	})

	return ord, nil
}

// OrderStatus retrieves an order with its lines and owning customer.
func (s *CustomerService) OrderStatus(ctx context.Context, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := work.FoodOrderRepository().Query(ctx, &foodorder.QueryFoodOrdersModel{
		OrderIds: []int64{ord.ID},
	})
	if err != nil {
		return nil, err
	}
	ord.FoodOrders = lines

	cust, err := work.CustomerRepository().GetByID(ctx, ord.CustomerID)
	if err != nil {
		return nil, err
	}
	ord.Customer = cust

	return ord, nil
}

func (s *CustomerService) publishAudit(ctx context.Context, event auditevent.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish audit event", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
