package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-beans/app"
	kernel "github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := kernel.New(cfg)
	if err != nil {
		slog.Error("build application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := application.Logger()

	if err := application.Register(&app.ServiceProvider{}); err != nil {
		logger.Error("register services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := application.Boot(); err != nil {
		logger.Error("boot", slog.String("error", err.Error()))
		os.Exit(1)
	}

	orders, err := container.Get[*app.OrderService](application.Container)
	if err != nil {
		logger.Error("resolve order service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orders.CreateOrder(1, "Laptop")

	// Second lookup is served from the singleton cache.
	again := container.MustGet[*app.OrderService](application.Container)
	again.CreateOrder(2, "Phone")
	logger.Info("order service reused", slog.Bool("same_instance", orders == again))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := application.Serve(ctx); err != nil {
		logger.Error("serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads CONFIG_FILE when set, otherwise .env and the environment.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}
