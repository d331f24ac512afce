package confirmorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type fakeService struct {
	lastModel restaurantsvc.ConfirmModel
	err       error
}

func (s *fakeService) Confirm(_ context.Context, m restaurantsvc.ConfirmModel) (*order.Order, error) {
	s.lastModel = m
	if s.err != nil {
		return nil, s.err
	}

	return &order.Order{
		ID:              m.OrderID,
		Status:          order.StatusConfirmed,
		PrepTimeMinutes: m.PrepTimeMinutes,
	}, nil
}

func newTestRouter(svc service) http.Handler {
	router := chi.NewRouter()
	router.Post("/api/orders/{order_id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		Confirm(w, r, svc)
	})

	return router
}

func TestConfirmReturnsConfirmedOrder(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"preptime":15,"customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/42/confirm", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastModel.OrderID)
	assert.Equal(t, 15, svc.lastModel.PrepTimeMinutes)
	assert.Equal(t, "Ada", svc.lastModel.CustomerName)

	var got order.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, order.StatusConfirmed, got.Status)
	assert.Equal(t, 15, got.PrepTimeMinutes)
}

func TestConfirmUnknownOrderReturnsNotFound(t *testing.T) {
	svc := &fakeService{err: order.ErrOrderNotFound}
	router := newTestRouter(svc)

	body := `{"preptime":15,"customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/999/confirm", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp httperr.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httperr.KindNotFound, resp.Error.Kind)
}

func TestConfirmRejectsNonPositivePreptime(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"preptime":0,"customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/42/confirm", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.lastModel.OrderID)
}

func TestConfirmRejectsMalformedOrderID(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"preptime":15,"customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/abc/confirm", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
