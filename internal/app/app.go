package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/himalayan-flavors/rms-svc/internal/dal/postgres"
	"github.com/himalayan-flavors/rms-svc/internal/dal/rabbitmq"
	homepagerepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/homepage/postgres"
	menurepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/menu/postgres"
	outboxrepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/outbox/postgres"
	"github.com/himalayan-flavors/rms-svc/internal/otel"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/homepagesvc"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/menusvc"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/ordersvc"
	httptransport "github.com/himalayan-flavors/rms-svc/internal/transport/http"
	outboxworker "github.com/himalayan-flavors/rms-svc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	menuSvc        *menusvc.MenuService
	homepageSvc    *homepagesvc.HomepageService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	if _, err := rabbitMqClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    viper.GetString("rabbitmq.orders.queue"),
		Durable: true,
	}); err != nil {
		panic("Failed to declare orders queue: " + err.Error())
	}

	menuRepository := menurepo.NewPostgresMenuRepository(postgresClient.Pool())
	homepageRepository := homepagerepo.NewPostgresHomepageRepository(postgresClient.Pool())
	outboxRepository := outboxrepo.NewOutboxRepository(postgresClient.Pool())

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	menuSvc := menusvc.MustNewMenuService(
		menusvc.WithMenuRepository(menuRepository),
	)

	homepageSvc := homepagesvc.MustNewHomepageService(
		homepagesvc.WithHomepageRepository(homepageRepository),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, menuSvc, homepageSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(outboxRepository, rabbitMqClient)

	return &App{
		orderSvc:       orderSvc,
		menuSvc:        menuSvc,
		homepageSvc:    homepageSvc,
		transport:      transport,
		outboxWorker:   outboxWorker,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down components sequentially: outbox worker, HTTP
// server, RabbitMQ, PostgreSQL and the trace provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

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

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
