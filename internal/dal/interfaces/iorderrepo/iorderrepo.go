package iorderrepo

import (
	"context"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// UpdateEstimatedTime sets the preparation-time estimate and moves the
	// order to the confirmed state.
	UpdateEstimatedTime(ctx context.Context, orderID int64, minutes int) (*order.Order, error)

	// UpdateOrder applies the non-nil fields of the update model.
	UpdateOrder(ctx context.Context, orderID int64, fields order.UpdateOrderModel) (*order.Order, error)
}
