package customer

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer represents a customer created at checkout. The name and phone are
// read back when addressing notifications.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
