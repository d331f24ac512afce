package confirmorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	Confirm(ctx context.Context, m restaurantsvc.ConfirmModel) (*order.Order, error)
}

// confirmOrderRequest represents an order confirmation request.
type confirmOrderRequest struct {
	PrepTime     int    `json:"preptime"     validate:"gt=0"`
	CustomerName string `json:"customerName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber"  validate:"required"`
}

// Validate validates the confirm order request.
func (r *confirmOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// Confirm handles the order confirmation request.
func Confirm(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		httperr.BadRequest(w, "invalid order id")

		return
	}

	req := confirmOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error decoding request body for order confirmation", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error validating request body for order confirmation", "error", err)

		return
	}

	ord, err := service.Confirm(r.Context(), restaurantsvc.ConfirmModel{
		OrderID:         orderID,
		PrepTimeMinutes: req.PrepTime,
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			httperr.NotFound(w, "order not found")

			return
		}
		httperr.Internal(w, "failed to confirm order")
		slog.Error("Error confirming order", "order_id", orderID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response for order confirmation", "error", err)
	}
}
