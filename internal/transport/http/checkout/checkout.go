package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/customersvc"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	Checkout(ctx context.Context, m customersvc.CheckoutModel) (*order.Order, error)
}

// itemInCheckoutRequest represents one requested menu item quantity.
type itemInCheckoutRequest struct {
	FoodID   int64 `json:"foodId"   validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0"`
}

// checkoutRequest represents a checkout request.
type checkoutRequest struct {
	Name  string                  `json:"name"  validate:"required"`
	Phone string                  `json:"phone" validate:"required"`
	Items []itemInCheckoutRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the checkout request.
func (r *checkoutRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *checkoutRequest) toModel() customersvc.CheckoutModel {
	items := make([]customersvc.CheckoutItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = customersvc.CheckoutItem{
			FoodID:   item.FoodID,
			Quantity: item.Quantity,
		}
	}

	return customersvc.CheckoutModel{
		Name:  r.Name,
		Phone: r.Phone,
		Items: items,
	}
}

// Checkout handles the checkout request.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	req := checkoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error validating request body for checkout", "error", err)

		return
	}

	ord, err := service.Checkout(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, food.ErrFoodNotFound) {
			httperr.BadRequest(w, "unknown menu item")

			return
		}
		httperr.Internal(w, "failed to create order")
		slog.Error("Error performing checkout", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response for checkout", "error", err)
	}
}
