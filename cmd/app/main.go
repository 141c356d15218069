package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelhub/cmd"
	api "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/stripegateway"
	"parcelhub/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	metrics.Register()

	uowFactory, err := cmd.NewUnitOfWorkFactory(configs)
	if err != nil {
		log.Fatalf("Error opening %s store: %v", configs.Store, err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		uowFactory,
		stripegateway.NewGateway(configs.StripeSecret, configs.GatewayTimeout),
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := api.NewEcho(ctx, api.NewServer(app.CreateOrchestrator(), configs.PaymentCurrency))
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
