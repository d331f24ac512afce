package orderstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	OrderStatus(ctx context.Context, orderID int64) (*order.Order, error)
}

type orderStatusRequest struct {
	OrderID int64 `schema:"order_id"`
}

// OrderStatus handles the customer-facing order status request.
func OrderStatus(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &orderStatusRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error decoding request", "error", err)

		return
	}

	if query.OrderID <= 0 {
		httperr.BadRequest(w, "order_id is required")

		return
	}

	ord, err := service.OrderStatus(r.Context(), query.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			httperr.NotFound(w, "order not found")

			return
		}
		httperr.Internal(w, "failed to load order status")
		slog.Error("Error getting order status", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response for order status", "error", err)
	}
}
