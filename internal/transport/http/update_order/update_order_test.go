package updateorder

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

	"github.com/jmphair/order-up-midterm-project/internal/service/models/notification"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type fakeService struct {
	lastModel restaurantsvc.UpdateStatusModel
	called    bool
	err       error
}

func (s *fakeService) UpdateStatus(_ context.Context, m restaurantsvc.UpdateStatusModel) (*order.Order, error) {
	s.called = true
	s.lastModel = m
	if s.err != nil {
		return nil, s.err
	}

	return &order.Order{ID: m.OrderID, Status: order.StatusCancelled}, nil
}

func newTestRouter(svc service) http.Handler {
	router := chi.NewRouter()
	router.Post("/api/orders/{order_id}/update", func(w http.ResponseWriter, r *http.Request) {
		Update(w, r, svc)
	})

	return router
}

func TestUpdatePassesLegacyFlagsThrough(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"isCancelled":true,"customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/42/update", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastModel.OrderID)
	assert.True(t, svc.lastModel.IsCancelled)
	assert.False(t, svc.lastModel.IsComplete)
	assert.Empty(t, svc.lastModel.Type)
}

func TestUpdateUnknownTypeReturnsBadRequest(t *testing.T) {
	svc := &fakeService{err: notification.ErrUnknownKind}
	router := newTestRouter(svc)

	body := `{"type":"exploded","customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/42/update", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httperr.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httperr.KindBadRequest, resp.Error.Kind)
}

func TestUpdateUnknownOrderReturnsNotFound(t *testing.T) {
	svc := &fakeService{err: order.ErrOrderNotFound}
	router := newTestRouter(svc)

	body := `{"type":"ready","customerName":"Ada","phoneNumber":"+15550001"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/999/update", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRejectsMissingCustomerFields(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"type":"ready"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders/42/update", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called)
}
