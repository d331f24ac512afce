package order

import (
	"errors"
	"time"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/customer"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
)

var ErrOrderNotFound = errors.New("order not found")

// Order represents a customer's placed request for food items, tracked
// through preparation states.
type Order struct {
	ID              int64                 `json:"id"`
	CustomerID      int64                 `json:"customerId"`
	Status          Status                `json:"status"`
	PrepTimeMinutes int                   `json:"preptime"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	FoodOrders      []foodorder.FoodOrder `json:"foodOrders"`
	Customer        *customer.Customer    `json:"customer,omitempty"`
}
