package ifoodorderrepo

import (
	"context"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
)

// IFoodOrderRepository is an interface for the food-order-line postgres
// repository.
type IFoodOrderRepository interface {
	BulkInsert(ctx context.Context, lines []foodorder.FoodOrder) ([]foodorder.FoodOrder, error)
	Query(ctx context.Context, filter *foodorder.QueryFoodOrdersModel) ([]foodorder.FoodOrder, error)
}
