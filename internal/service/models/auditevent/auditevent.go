package auditevent

import "time"

const (
	TypeOrderCreated     = "order.created"
	TypeOrderConfirmed   = "order.confirmed"
	TypeOrderUpdated     = "order.updated"
	TypeCustomerNotified = "customer.notified"
)

// Event is an audit trail entry published to RabbitMQ. Order mutations and
// customer notifications are logged as distinct event types.
type Event struct {
	Type           string    `json:"type"`
	OrderID        int64     `json:"orderId"`
	CustomerID     int64     `json:"customerId,omitempty"`
	OrderStatus    string    `json:"orderStatus,omitempty"`
	NotificationID int64     `json:"notificationId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}
