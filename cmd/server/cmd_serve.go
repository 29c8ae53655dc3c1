package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"mesaYaAdmin/internal/config"
	adminuc "mesaYaAdmin/internal/modules/admin/application/usecase"
	admininfra "mesaYaAdmin/internal/modules/admin/infrastructure"
	admin "mesaYaAdmin/internal/modules/admin/interface"
	"mesaYaAdmin/internal/modules/realtime/application/handler"
	"mesaYaAdmin/internal/modules/realtime/application/usecase"
	"mesaYaAdmin/internal/modules/realtime/infrastructure"
	realtime "mesaYaAdmin/internal/modules/realtime/interface"
	"mesaYaAdmin/internal/platform/broker"
	"mesaYaAdmin/internal/shared/auth"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, registry, err := newServer(cfg)
	if err != nil {
		return err
	}

	consumersCtx, cancelConsumers := context.WithCancel(ctx)
	defer cancelConsumers()
	waitConsumers := broker.StartKafkaConsumers(consumersCtx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
			cancelConsumers()
			_ = waitConsumers()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", slog.Any("error", err))
	}
	cancelConsumers()
	if err := waitConsumers(); err != nil {
		slog.Warn("kafka consumers stopped", slog.Any("error", err))
	}
	return nil
}

// newServer wires the gateways, use cases and handlers onto a fresh echo
// instance and returns the Kafka handler registry.
func newServer(cfg *config.Config) (*echo.Echo, *infrastructure.HandlerRegistry, error) {
	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		return nil, nil, err
	}

	api := admininfra.NewAPIClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	customersUC := adminuc.NewCustomersUseCase(api)
	tablesUC := adminuc.NewTablesUseCase(api)
	reservationsUC := adminuc.NewReservationsUseCase(api, api, api)
	reportsUC := adminuc.NewReportsUseCase(api, admininfra.NewOccupancyPDFExporter())

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	availabilityUC := usecase.NewAvailabilityUseCase(reservationsUC, cfg.REST.Timeout)

	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(handler.NewEntityStreamHandler(entity, topic, cfg.Websocket.AllowedActions, broadcastUC, availabilityUC))
		}
	}
	httpEvents := handler.NewEntityStreamHandler("", "http", cfg.Websocket.AllowedActions, broadcastUC, availabilityUC)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(admin.RequestLogger())

	err = admin.Mount(e, validator,
		admin.NewReservationsHandler(reservationsUC),
		admin.NewTablesHandler(tablesUC),
		admin.NewCustomersHandler(customersUC),
		admin.NewReportsHandler(reportsUC),
		realtime.NewAvailabilityHandler(hub, availabilityUC),
		realtime.NewNotificationsHandler(hub),
		realtime.NewEventsHandler(httpEvents),
	)
	if err != nil {
		return nil, nil, err
	}
	return e, registry, nil
}
