package listmenu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type service interface {
	ListMenu(ctx context.Context) ([]food.Food, error)
}

// ListMenu handles the menu catalog request.
func ListMenu(w http.ResponseWriter, r *http.Request, service service) {
	foods, err := service.ListMenu(r.Context())
	if err != nil {
		httperr.Internal(w, "failed to load menu")
		slog.Error("Error listing menu", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(foods); err != nil {
		httperr.Internal(w, "failed to encode response")
		slog.Error("Error sending response for menu listing", "error", err)
	}
}
