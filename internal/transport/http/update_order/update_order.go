package updateorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	UpdateStatus(ctx context.Context, m restaurantsvc.UpdateStatusModel) (*order.Order, error)
}

// updateOrderRequest mirrors the legacy restaurant-side update payload.
// Absent flags default to false and preptime to zero.
type updateOrderRequest struct {
	IsComplete   bool   `json:"isComplete"`
	IsCancelled  bool   `json:"isCancelled"`
	PrepTime     int    `json:"preptime"`
	Type         string `json:"type"`
	CustomerName string `json:"customerName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber"  validate:"required"`
}

// Validate validates the update order request.
func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// Update handles the order status update request.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		httperr.BadRequest(w, "invalid order id")

		return
	}

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error decoding request body for order update", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error validating request body for order update", "error", err)

		return
	}

	ord, err := service.UpdateStatus(r.Context(), restaurantsvc.UpdateStatusModel{
		OrderID:         orderID,
		Type:            req.Type,
		IsComplete:      req.IsComplete,
		IsCancelled:     req.IsCancelled,
		PrepTimeMinutes: req.PrepTime,
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrUnknownKind):
			httperr.BadRequest(w, "unknown update type")
		case errors.Is(err, order.ErrOrderNotFound):
			httperr.NotFound(w, "order not found")
		default:
			httperr.Internal(w, "failed to update order")
			slog.Error("Error updating order", "order_id", orderID, "error", err)
		}

		return
	}

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response for order update", "error", err)
	}
}
