package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/customersvc"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	checkouthandler "github.com/jmphair/order-up-midterm-project/internal/transport/http/checkout"
	confirmorder "github.com/jmphair/order-up-midterm-project/internal/transport/http/confirm_order"
	listmenu "github.com/jmphair/order-up-midterm-project/internal/transport/http/list_menu"
	listorders "github.com/jmphair/order-up-midterm-project/internal/transport/http/list_orders"
	orderstatus "github.com/jmphair/order-up-midterm-project/internal/transport/http/order_status"
	updateorder "github.com/jmphair/order-up-midterm-project/internal/transport/http/update_order"
	"github.com/jmphair/order-up-midterm-project/pkg/http/middleware/auth"
	"github.com/jmphair/order-up-midterm-project/pkg/http/middleware/trace"
	"github.com/jmphair/order-up-midterm-project/pkg/logger"
)

type customerService interface {
	ListMenu(ctx context.Context) ([]food.Food, error)
	Checkout(ctx context.Context, m customersvc.CheckoutModel) (*order.Order, error)
	OrderStatus(ctx context.Context, orderID int64) (*order.Order, error)
}

type restaurantService interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Confirm(ctx context.Context, m restaurantsvc.ConfirmModel) (*order.Order, error)
	UpdateStatus(ctx context.Context, m restaurantsvc.UpdateStatusModel) (*order.Order, error)
}

type HTTPTransport struct {
	server        *http.Server
	router        *chi.Mux
	customerSvc   customerService
	restaurantSvc restaurantService
}

func NewHTTPTransport(customerSvc customerService, restaurantSvc restaurantService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:        server,
		router:        router,
		customerSvc:   customerSvc,
		restaurantSvc: restaurantSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the customer and restaurant route groups.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.listMenu)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(viper.GetStringSlice("auth.customer_tokens")))
			r.Post("/checkout", h.checkout)
			r.Get("/status", h.orderStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(viper.GetStringSlice("auth.restaurant_tokens")))
			r.Get("/orders", h.listOrders)
			r.Post("/orders/{order_id}/confirm", h.confirmOrder)
			r.Post("/orders/{order_id}/update", h.updateOrder)
		})
	})
}

func (h *HTTPTransport) listMenu(w http.ResponseWriter, r *http.Request) {
	listmenu.ListMenu(w, r, h.customerSvc)
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	checkouthandler.Checkout(w, r, h.customerSvc)
}

func (h *HTTPTransport) orderStatus(w http.ResponseWriter, r *http.Request) {
	orderstatus.OrderStatus(w, r, h.customerSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.restaurantSvc)
}

func (h *HTTPTransport) confirmOrder(w http.ResponseWriter, r *http.Request) {
	confirmorder.Confirm(w, r, h.restaurantSvc)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.Update(w, r, h.restaurantSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
