package restaurantsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/inotificationrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/iorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/dal/uow"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
)

// RestaurantService applies order lifecycle transitions and enqueues the
// customer notifications they trigger.
type RestaurantService struct {
	pgClient *postgres.Client
	audit    auditPublisher
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	FoodOrderRepository() ifoodorderrepo.IFoodOrderRepository
	NotificationRepository() inotificationrepo.INotificationRepository
}

type auditPublisher interface {
	Publish(ctx context.Context, events ...auditevent.Event) error
}

// option is a function that configures the RestaurantService.
type option func(*RestaurantService)

// MustNewRestaurantService creates a new RestaurantService.
func MustNewRestaurantService(opts ...option) *RestaurantService {
	s := &RestaurantService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the RestaurantService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *RestaurantService) {
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
	return func(s *RestaurantService) {
		s.audit = audit
	}
}

// ConfirmModel carries the inputs of an order confirmation.
type ConfirmModel struct {
	OrderID         int64
	PrepTimeMinutes int
	CustomerName    string
	PhoneNumber     string
}

// Confirm sets the preparation-time estimate, moves the order to confirmed,
// and enqueues the confirmation SMS in the same transaction.
func (s *RestaurantService) Confirm(ctx context.Context, m ConfirmModel) (*order.Order, error) {
	body := notification.ConfirmMessage(m.PrepTimeMinutes)

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	ord, err := work.OrderRepository().UpdateEstimatedTime(ctx, m.OrderID, m.PrepTimeMinutes)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if _, err := work.NotificationRepository().Insert(ctx, notification.Notification{
		OrderID:       ord.ID,
		RecipientName: m.CustomerName,
		PhoneNumber:   m.PhoneNumber,
		Body:          body,
		PhotoURL:      viper.GetString("notifications.confirm_photo_url"),
		MaxRetries:    maxRetries(),
	}); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishAudit(ctx, auditevent.Event{
		Type:        auditevent.TypeOrderConfirmed,
		OrderID:     ord.ID,
		CustomerID:  ord.CustomerID,
		OrderStatus: ord.Status.String(),
		OccurredAt:  time.Now(),
	})

	if err := s.attachFoodOrders(ctx, ord); err != nil {
		return nil, err
	}

	return ord, nil
}

// UpdateStatusModel carries the restaurant-side update payload. The flags
// mirror the legacy request shape; Type wins when present, otherwise the
// flags select the transition.
type UpdateStatusModel struct {
	OrderID         int64
	Type            string
	IsComplete      bool
	IsCancelled     bool
	PrepTimeMinutes int
	CustomerName    string
	PhoneNumber     string
}

func (m UpdateStatusModel) kind() (notification.Kind, error) {
	if m.Type != "" {
		return notification.ParseKind(m.Type)
	}
	if m.IsCancelled {
		return notification.KindCancel, nil
	}
	if m.IsComplete {
		return notification.KindComplete, nil
	}

	return "", notification.ErrUnknownKind
}

// UpdateStatus applies a status transition and enqueues the matching
// templated SMS in the same transaction. An unknown kind is rejected before
// anything is written.
func (s *RestaurantService) UpdateStatus(
	ctx context.Context,
	m UpdateStatusModel,
) (*order.Order, error) {
	kind, err := m.kind()
	if err != nil {
		return nil, err
	}

	body, err := notification.Message(kind, m.PrepTimeMinutes)
	if err != nil {
		return nil, err
	}

	fields := order.UpdateOrderModel{}
	switch kind {
	case notification.KindCancel:
		status := order.StatusCancelled
		fields.Status = &status
	case notification.KindReady:
		status := order.StatusReady
		fields.Status = &status
	case notification.KindComplete:
		status := order.StatusComplete
		fields.Status = &status
	case notification.KindEdit:
		// status unchanged, only the estimate moves
	}
	if m.PrepTimeMinutes > 0 {
		minutes := m.PrepTimeMinutes
		fields.PrepTimeMinutes = &minutes
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	ord, err := work.OrderRepository().UpdateOrder(ctx, m.OrderID, fields)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if _, err := work.NotificationRepository().Insert(ctx, notification.Notification{
		OrderID:       ord.ID,
		RecipientName: m.CustomerName,
		PhoneNumber:   m.PhoneNumber,
		Body:          body,
		MaxRetries:    maxRetries(),
	}); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishAudit(ctx, auditevent.Event{
		Type:        auditevent.TypeOrderUpdated,
		OrderID:     ord.ID,
		CustomerID:  ord.CustomerID,
		OrderStatus: ord.Status.String(),
		OccurredAt:  time.Now(),
	})

	if err := s.attachFoodOrders(ctx, ord); err != nil {
		return nil, err
	}

	return ord, nil
}

// GetOrders retrieves orders with their food-order lines based on filter.
func (s *RestaurantService) GetOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	lineQuery := &foodorder.QueryFoodOrdersModel{}
	for _, o := range orders {
		lineQuery.OrderIds = append(lineQuery.OrderIds, o.ID)
	}
	lines, err := work.FoodOrderRepository().Query(ctx, lineQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, line := range lines {
			if line.OrderID == orders[i].ID {
				orders[i].FoodOrders = append(orders[i].FoodOrders, line)
			}
		}
	}

	return orders, nil
}

func (s *RestaurantService) attachFoodOrders(ctx context.Context, ord *order.Order) error {
	work := s.newUOW()
	lines, err := work.FoodOrderRepository().Query(ctx, &foodorder.QueryFoodOrdersModel{
		OrderIds: []int64{ord.ID},
	})
	if err != nil {
		return err
	}
	ord.FoodOrders = lines

	return nil
}

func (s *RestaurantService) publishAudit(ctx context.Context, event auditevent.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish audit event", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}

func maxRetries() int {
	retries := viper.GetInt("notifications.max_retries")
	if retries == 0 {
		retries = 5
	}

	return retries
}
