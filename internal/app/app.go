package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmphair/order-up-midterm-project/internal/dal/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/dal/rabbitmq"
	auditrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/audit"
	notificationrepo "github.com/jmphair/order-up-midterm-project/internal/dal/repositories/notification/postgres"
	"github.com/jmphair/order-up-midterm-project/internal/dal/twilio"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/customersvc"
	"github.com/jmphair/order-up-midterm-project/internal/service/services/restaurantsvc"
	"github.com/jmphair/order-up-midterm-project/internal/tracing"
	httptransport "github.com/jmphair/order-up-midterm-project/internal/transport/http"
	"github.com/jmphair/order-up-midterm-project/internal/worker/notifier"
)

// App represents the application.
type App struct {
	customerSvc    *customersvc.CustomerService
	restaurantSvc  *restaurantsvc.RestaurantService
	transport      *httptransport.HTTPTransport
	notifierWorker *notifier.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	tracing        *tracing.Controller
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracingController := tracing.MustInit()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()
	twilioClient := twilio.MustNewClient()

	auditRepository := auditrepo.NewRabbitMQRepository(rabbitMqClient)

	customerSvc := customersvc.MustNewCustomerService(
		customersvc.WithPostgresClient(postgresClient),
		customersvc.WithAuditPublisher(auditRepository),
	)
	restaurantSvc := restaurantsvc.MustNewRestaurantService(
		restaurantsvc.WithPostgresClient(postgresClient),
		restaurantsvc.WithAuditPublisher(auditRepository),
	)

	notificationRepository := notificationrepo.NewPostgresNotificationRepository(postgresClient.Pool())
	notifierWorker := notifier.NewWorker(notificationRepository, twilioClient, auditRepository)

	transport := httptransport.NewHTTPTransport(customerSvc, restaurantSvc)
	transport.RegisterRoutes()

	return &App{
		customerSvc:    customerSvc,
		restaurantSvc:  restaurantSvc,
		transport:      transport,
		notifierWorker: notifierWorker,
		postgresClient: postgresClient,
		rabbitMqClient: rabbitMqClient,
		tracing:        tracingController,
	}
}

// Run starts the application.
// Tracks interrupt signals to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.notifierWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.tracing.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
