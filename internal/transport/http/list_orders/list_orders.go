package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids         []int64 `schema:"ids,omitempty"`
	CustomerIds []int64 `schema:"customerIds,omitempty"`
	Limit       int     `schema:"limit,omitempty"`
	Offset      int     `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) ToModel() *order.QueryOrdersModel {
	return &order.QueryOrdersModel{
		Ids:         q.Ids,
		CustomerIds: q.CustomerIds,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// ListOrders handles the restaurant-side order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		httperr.BadRequest(w, err.Error())
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, err := service.GetOrders(r.Context(), query.ToModel())
	if err != nil {
		httperr.Internal(w, "failed to load orders")
		slog.Error("Error getting orders", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response", "error", err)
	}
}
