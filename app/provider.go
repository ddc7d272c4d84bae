package app

import (
	"log/slog"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/providers"
)

// DefaultDSN is used when DB_DSN is unset.
const DefaultDSN = "postgresql://localhost:5432/mydb"

// ServiceProvider registers the example services as singletons.
type ServiceProvider struct {
	container.BaseProvider
}

func (p *ServiceProvider) Register(c *container.Container) error {
	if err := container.Register(c, container.Singleton, func(deps *container.Dependencies) (*Database, error) {
		logger, err := container.GetNamed[*slog.Logger](deps, providers.LoggerBean)
		if err != nil {
			return nil, err
		}
		return NewDatabase(config.Get("DB_DSN", DefaultDSN), logger), nil
	}); err != nil {
		return err
	}

	if err := container.Register(c, container.Singleton, func(deps *container.Dependencies) (*UserService, error) {
		db, err := container.Get[*Database](deps)
		if err != nil {
			return nil, err
		}
		return &UserService{DB: db}, nil
	}); err != nil {
		return err
	}

	return container.Register(c, container.Singleton, func(deps *container.Dependencies) (*OrderService, error) {
		db, err := container.Get[*Database](deps)
		if err != nil {
			return nil, err
		}
		users, err := container.Get[*UserService](deps)
		if err != nil {
			return nil, err
		}
		return &OrderService{DB: db, Users: users}, nil
	})
}
