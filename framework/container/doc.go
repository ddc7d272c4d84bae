// Package container provides a runtime bean registry for Go.
//
// # Overview
//
// Beans are registered as factories keyed by type, by name, or both, and
// are built on demand the first time they are requested. Factories pull
// their own dependencies through the *Dependencies they receive, so a
// whole object graph is assembled from a single Get call. Circular
// chains and chains deeper than MaxDepth are rejected with errors rather
// than overflowing the stack.
//
// Because Go has no runtime constructor reflection, wiring is done with
// explicit factory functions.
//
// # Registering
//
//	c := container.New()
//
//	// Type default, built once.
//	container.Register(c, container.Singleton, func(deps *container.Dependencies) (*Database, error) {
//	    return NewDatabase("postgresql://localhost:5432/app"), nil
//	})
//
//	// Named, rebuilt on every request.
//	container.RegisterNamed(c, "audit", container.Prototype, func(deps *container.Dependencies) (*Logger, error) {
//	    return NewLogger("audit"), nil
//	})
//
//	// Pre-built value
//	container.RegisterInstance(c, cfg)
//
//	// Fluent form
//	container.Define[*Cache](c).Named("sessions").Prototype().Factory(newCache)
//
// # Resolving
//
//	orders, err := container.Get[*OrderService](c)
//	audit, err := container.GetNamed[*Logger](c, "audit")
//
// Inside a factory, resolve through deps so the nested lookup joins the
// chain in progress:
//
//	container.Register(c, container.Singleton, func(deps *container.Dependencies) (*UserService, error) {
//	    db, err := container.Get[*Database](deps)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewUserService(db), nil
//	})
//
// # Named beans and the unnamed fallback
//
// An unnamed lookup prefers the type default. A named registration for a
// type that has no type default yet also installs an unnamed fallback so
// Get[T] works without a name. The fallback is dropped as soon as
// Register[T] adds a real type default. The fallback is a separate
// definition with its own singleton instance, and it counts towards Len.
//
// # Singletons under contention
//
// The read lock is released while a factory runs. Two goroutines asking
// for the same uncached singleton may therefore both run its factory;
// the first to publish wins and every caller, the loser included, gets
// the published instance. Factories must tolerate being called more
// than once. Register pointer types when identity matters.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return container.Register(app, container.Singleton, newMailer)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	if err := registry.Register(&AppServiceProvider{}); err != nil { ... }
//	if err := registry.Boot(); err != nil { ... }
package container
