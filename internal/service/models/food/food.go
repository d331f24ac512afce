package food

import (
	"errors"
	"time"
)

var ErrFoodNotFound = errors.New("food not found")

// Food is a read-only menu catalog entity.
type Food struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoUrl    string    `json:"photoUrl"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QueryFoodsModel represents filter parameters for querying the catalog.
type QueryFoodsModel struct {
	Ids []int64 `json:"ids,omitempty"`
}
