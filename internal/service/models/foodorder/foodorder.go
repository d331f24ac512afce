package foodorder

import "time"

// FoodOrder represents one menu item quantity in an order. Created at
// checkout, immutable afterwards.
type FoodOrder struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	FoodID    int64     `json:"foodId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// QueryFoodOrdersModel represents filter parameters for querying lines.
type QueryFoodOrdersModel struct {
	OrderIds []int64 `json:"orderIds,omitempty"`
}
