package ifoodrepo

import (
	"context"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
)

// IFoodRepository is an interface for the menu catalog postgres repository.
type IFoodRepository interface {
	Query(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, error)
}
