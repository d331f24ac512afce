package icustomerrepo

import (
	"context"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer postgres repository.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)
}
