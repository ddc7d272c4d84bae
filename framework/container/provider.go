package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bean registrations.
//
// Register is called as soon as the provider is added. Boot is called
// after ALL providers have been registered, making it safe to resolve
// beans that other providers contribute.
//
//	type StorageProvider struct{ container.BaseProvider }
//
//	func (p *StorageProvider) Register(app *container.Container) error {
//	    return container.Register(app, container.Singleton, func(deps *container.Dependencies) (*Database, error) {
//	        return NewDatabase(dsn), nil
//	    })
//	}
//
//	func (p *StorageProvider) Boot(app *container.Container) error {
//	    _, err := container.Get[*Database](app) // warm the singleton
//	    return err
//	}
type ServiceProvider interface {
	// Register adds beans to the container.
	// Do NOT resolve beans here — use Boot() for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
// It is meant to be driven from a single goroutine during start-up.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	failed     map[ServiceProvider]error
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
		failed:     make(map[ServiceProvider]error),
	}
}

// Register adds a provider and calls its Register() method. Adding the
// same provider twice is a no-op. If the registry has already booted,
// the provider is booted immediately.
//
// Beans are not removed when a provider's Register fails part way, so
// the provider is never run again: adding it once more returns the
// original error.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	if err, ok := r.failed[provider]; ok {
		return err
	}

	if err := provider.Register(r.app); err != nil {
		err = fmt.Errorf("register provider %T: %w", provider, err)
		r.failed[provider] = err
		return err
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("boot provider %T: %w", provider, err)
		}
	}
	return nil
}

// Boot calls Boot() on all providers in registration order, stopping at
// the first error. Calling Boot again after success is a no-op.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	for _, provider := range r.providers {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("boot provider %T: %w", provider, err)
		}
	}
	r.booted = true
	return nil
}

// Booted returns true once Boot() has succeeded.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
