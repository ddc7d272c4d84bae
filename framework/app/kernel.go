// Package app wires configuration, logging, telemetry and the framework
// providers around a bean container.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/observability"
	"github.com/km-arc/go-beans/framework/providers"
	"github.com/km-arc/go-beans/framework/routing"
)

const shutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the bean Container and ProviderRegistry so user code can
// call container.Get[T](app.Container) and app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	config *config.Config
	logger *logging.Logger
}

// Option configures New.
type Option func(*settings)

type settings struct {
	logWriter      io.Writer
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithLogWriter sends log output to w instead of stdout.
func WithLogWriter(w io.Writer) Option {
	return func(s *settings) { s.logWriter = w }
}

// WithTracerProvider sets the provider used when Telemetry.Tracing is on.
// The global OTel provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) { s.tracerProvider = tp }
}

// WithMeterProvider sets the provider used when Telemetry.Metrics is on.
// The global OTel provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *settings) { s.meterProvider = mp }
}

// New builds the application from cfg and registers the framework
// providers. A nil cfg means config.Load().
//
//	application, err := app.New(config.Load())
//	application.Register(&AppServiceProvider{})
//	application.Boot()
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := settings{logWriter: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	logCfg := cfg.Log
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	logger, err := logging.NewWithWriter(s.logWriter, logCfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	copts := []container.Option{container.WithLogger(logger.Logger)}
	if cfg.Telemetry.Tracing {
		if s.tracerProvider != nil {
			copts = append(copts, container.WithSpanManager(observability.NewSpanManagerWithProvider(s.tracerProvider)))
		} else {
			copts = append(copts, container.WithSpanManager(observability.NewSpanManager()))
		}
	}
	if cfg.Telemetry.Metrics {
		if s.meterProvider != nil {
			m, err := observability.NewMetricsRecorderWithProvider(s.meterProvider)
			if err != nil {
				return nil, fmt.Errorf("build metrics: %w", err)
			}
			copts = append(copts, container.WithMetrics(m))
		} else {
			copts = append(copts, container.WithMetrics(observability.NewMetricsRecorder()))
		}
	}

	c := container.New(copts...)
	a := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		config:    cfg,
		logger:    logger,
	}

	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.InspectServiceProvider{},
	}
	for _, p := range core {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	a.logger.Info("application booted",
		slog.String("app", a.config.App.Name),
		slog.String("env", a.config.App.Env),
		slog.Int("beans", a.Len()),
	)
	return nil
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger.Logger }

// Inspector resolves the diagnostics router.
func (a *Application) Inspector() (http.Handler, error) {
	r, err := container.GetNamed[*routing.Router](a.Container, providers.InspectBean)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Serve boots the application if needed and serves the diagnostics
// endpoint on Inspect.Addr until ctx is done. It returns immediately
// when the endpoint is disabled.
func (a *Application) Serve(ctx context.Context) error {
	if !a.config.Inspect.Enabled {
		a.logger.Debug("inspect endpoint disabled")
		return nil
	}
	ln, err := net.Listen("tcp", a.config.Inspect.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.config.Inspect.Addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. It closes ln.
func (a *Application) ServeListener(ctx context.Context, ln net.Listener) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			_ = ln.Close()
			return err
		}
	}
	handler, err := a.Inspector()
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	a.logger.Info("inspect endpoint listening",
		slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Environment returns App.Env.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.config.IsProduction() }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
