package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/consul"
	"github.com/shikhasoumya1612/ecommerce/internal/products"
	"github.com/shikhasoumya1612/ecommerce/internal/products/handlers"
	"github.com/shikhasoumya1612/ecommerce/internal/stores/postgres"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

const serviceName = "product-service"

func main() {
	setupSlog()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment")
	}

	if err := startApp(); err != nil {
		slog.Error("service stopped", slog.String(logkey.ERROR, err.Error()),
			slog.String(logkey.Service, serviceName))
		os.Exit(1)
	}
}

func setupSlog() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	slog.SetDefault(slog.New(handler))
}

func startApp() error {
	ctx := context.Background()

	db, err := postgres.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, products.Migrations()); err != nil {
		return err
	}

	p, err := products.NewConf(db)
	if err != nil {
		return err
	}

	keys, err := auth.NewKeys(os.Getenv("JWT_SECRET"))
	if err != nil {
		return err
	}

	host := envOr("APP_HOST", "localhost")
	port, err := strconv.Atoi(envOr("APP_PORT", "8082"))
	if err != nil {
		return err
	}

	if err := registerWithConsul(host, port); err != nil {
		return err
	}

	prefix := envOr("SERVICE_ENDPOINT_PREFIX", "/products")
	api := handlers.API(prefix, p, keys)

	server := &http.Server{
		Addr:         host + ":" + strconv.Itoa(port),
		Handler:      api,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String(logkey.Service, serviceName),
			slog.String(logkey.URL, server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		slog.Info("shutdown started", slog.String(logkey.Service, serviceName),
			slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return err
		}
	}
	return nil
}

func registerWithConsul(host string, port int) error {
	client, err := consul.NewClient()
	if err != nil {
		return err
	}
	serviceID := envOr("SERVICE_ID", serviceName+"-"+strconv.Itoa(port))
	return consul.RegisterService(client, serviceName, serviceID, host, port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
