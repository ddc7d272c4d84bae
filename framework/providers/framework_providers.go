package providers

import (
	"log/slog"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/inspect"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/routing"
)

// Names under which the framework providers register their beans.
const (
	ConfigBean  = "config"
	LoggerBean  = "logger"
	InspectBean = "inspect.router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound beans:
//   - "config"        → *config.Config
//   - *config.Config  (unnamed, via the fallback)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	return container.RegisterNamedInstance(app, ConfigBean, p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound beans:
//   - "logger"           → *slog.Logger
//   - *logging.Logger    (type default, for runtime level changes)
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *logging.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	if err := container.RegisterInstance(app, p.Logger); err != nil {
		return err
	}
	return container.RegisterNamedInstance(app, LoggerBean, p.Logger.Logger)
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider registers the diagnostics router. The router is
// built lazily on first resolution and reads the container it was
// registered in.
//
// Bound beans:
//   - "inspect.router"  → *routing.Router
type InspectServiceProvider struct {
	container.BaseProvider
}

func (p *InspectServiceProvider) Register(app *container.Container) error {
	return container.RegisterNamed(app, InspectBean, container.Singleton,
		func(deps *container.Dependencies) (*routing.Router, error) {
			logger, err := container.GetNamed[*slog.Logger](deps, LoggerBean)
			if err != nil {
				return nil, err
			}
			r := routing.New(logger)
			inspect.Routes(r, app)
			return r, nil
		})
}
