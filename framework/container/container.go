package container

import (
	"context"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/km-arc/go-beans/framework/observability"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the bean registry.
//
// It maps Identifiers to definitions under a single reader/writer lock.
// Registrations take the write lock for their whole critical section;
// lookups take the read lock, and the write lock is taken again only to
// publish a freshly built singleton. Factories always run with no lock
// held, so unrelated beans (and even the same bean) can be built in
// parallel.
type Container struct {
	mu    sync.RWMutex
	beans map[Identifier]*definition

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates an empty container.
func New(opts ...Option) *Container {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Container{
		beans:   make(map[Identifier]*definition),
		logger:  cfg.logger,
		metrics: cfg.metrics,
		spans:   cfg.spans,
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds the canonical unnamed bean for T.
//
//	err := container.Register(c, container.Singleton, func(deps *container.Dependencies) (*Database, error) {
//	    return NewDatabase("postgresql://localhost:5432/app"), nil
//	})
//
// It fails with ErrAlreadyRegistered if T already has a type default. An
// unnamed fallback left by an earlier RegisterNamed is replaced.
func Register[T any](c *Container, scope Scope, factory Factory[T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	return c.registerType(reflect.TypeFor[T](), scope, erase(factory))
}

// RegisterNamed adds a bean of type T under name.
//
//	err := container.RegisterNamed(c, "replica", container.Singleton, newReplica)
//
// If T has neither a type default nor a fallback yet, an unnamed fallback
// sharing the same factory and scope is added too, so Get[T] works
// without a name until Register[T] is called.
func RegisterNamed[T any](c *Container, name string, scope Scope, factory Factory[T]) error {
	if factory == nil {
		return ErrNilFactory
	}
	return c.registerNamed(reflect.TypeFor[T](), name, scope, erase(factory))
}

// RegisterInstance adds an already built value as the singleton type
// default for T.
func RegisterInstance[T any](c *Container, value T) error {
	return c.registerType(reflect.TypeFor[T](), Singleton, instanceFactory(value))
}

// RegisterNamedInstance adds an already built value as a named singleton.
func RegisterNamedInstance[T any](c *Container, name string, value T) error {
	return c.registerNamed(reflect.TypeFor[T](), name, Singleton, instanceFactory(value))
}

func instanceFactory[T any](value T) factoryFunc {
	return func(*Dependencies) (any, error) { return value, nil }
}

func (c *Container) registerType(typ reflect.Type, scope Scope, factory factoryFunc) error {
	if !scope.valid() {
		return ErrInvalidScope
	}
	id := typeDefault(typ)
	fallback := typeFallback(typ)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.beans[id]; exists {
		return &AlreadyRegisteredError{ID: id}
	}
	if _, exists := c.beans[fallback]; exists {
		delete(c.beans, fallback)
		observability.LogFallbackSuperseded(c.logger, fallback.String())
	}
	c.beans[id] = newDefinition(typ, scope, factory)

	observability.LogRegister(c.logger, id.String(), scope.String())
	return nil
}

func (c *Container) registerNamed(typ reflect.Type, name string, scope Scope, factory factoryFunc) error {
	if !scope.valid() {
		return ErrInvalidScope
	}
	id := Named(name)
	canonical := typeDefault(typ)
	fallback := typeFallback(typ)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.beans[id]; exists {
		return &AlreadyRegisteredError{ID: id}
	}
	c.beans[id] = newDefinition(typ, scope, factory)
	observability.LogRegister(c.logger, id.String(), scope.String())

	_, hasCanonical := c.beans[canonical]
	_, hasFallback := c.beans[fallback]
	if !hasCanonical && !hasFallback {
		// Separate definition: the fallback caches its own instance.
		c.beans[fallback] = newDefinition(typ, scope, factory)
		observability.LogRegister(c.logger, fallback.String(), scope.String())
	}
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolver is anything beans can be requested from: a *Container for
// top-level lookups, or the *Dependencies handed to a factory for nested
// ones.
type Resolver interface {
	resolve(ctx context.Context, typ reflect.Type, name string, named bool) (Identifier, any, error)
}

var _ Resolver = (*Container)(nil)

// Get returns the unnamed bean of type T: the type default if one is
// registered, otherwise the fallback left by a named registration.
// Shared singleton identity requires T to be a pointer or reference
// type; for a struct T each caller receives a copy of the cached value.
//
//	orders, err := container.Get[*OrderService](c)
func Get[T any](r Resolver) (T, error) {
	return get[T](context.Background(), r, "", false)
}

// GetNamed returns the bean registered under name.
func GetNamed[T any](r Resolver, name string) (T, error) {
	return get[T](context.Background(), r, name, true)
}

// GetContext is Get with a context used as the parent of the resolution
// spans. The context is not checked for cancellation. Inside a factory
// the frame's own context (Dependencies.Context) is used instead.
func GetContext[T any](ctx context.Context, r Resolver) (T, error) {
	return get[T](ctx, r, "", false)
}

// GetNamedContext is GetNamed with a parent context for tracing.
func GetNamedContext[T any](ctx context.Context, r Resolver, name string) (T, error) {
	return get[T](ctx, r, name, true)
}

// MustGet is like Get but panics on error.
func MustGet[T any](r Resolver) T {
	v, err := Get[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetNamed is like GetNamed but panics on error.
func MustGetNamed[T any](r Resolver, name string) T {
	v, err := GetNamed[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}

func get[T any](ctx context.Context, r Resolver, name string, named bool) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()

	id, instance, err := r.resolve(ctx, want, name, named)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{ID: id, Want: want, Got: reflect.TypeOf(instance)}
	}
	return typed, nil
}

// resolve starts a top-level resolution with a fresh CreationContext.
func (c *Container) resolve(ctx context.Context, typ reflect.Type, name string, named bool) (Identifier, any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.resolveWith(ctx, newCreationContext(), typ, name, named)
}

// lookup picks the identifier a request maps to. Caller must not hold mu.
func (c *Container) lookup(typ reflect.Type, name string, named bool) (Identifier, error) {
	if named {
		id := Named(name)
		c.mu.RLock()
		_, ok := c.beans[id]
		c.mu.RUnlock()
		if !ok {
			return id, &NotFoundError{ID: id}
		}
		return id, nil
	}

	canonical := typeDefault(typ)
	fallback := typeFallback(typ)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.beans[canonical]; ok {
		return canonical, nil
	}
	if _, ok := c.beans[fallback]; ok {
		return fallback, nil
	}
	return canonical, &NotFoundError{ID: canonical}
}

func (c *Container) resolveWith(ctx context.Context, cc *CreationContext, typ reflect.Type, name string, named bool) (Identifier, any, error) {
	id, err := c.lookup(typ, name, named)
	if err != nil {
		return id, nil, err
	}
	bean := id.String()
	log := observability.EnrichLogger(c.logger, cc.ID(), bean)

	if err := cc.enter(id); err != nil {
		observability.LogResolveError(log, err)
		return id, nil, err
	}
	defer cc.exit()

	observability.LogResolveStart(log, cc.Depth())
	ctx, span := c.spans.StartResolveSpan(ctx, cc.ID(), bean, cc.Depth())
	start := time.Now()

	instance, cached, err := c.instantiate(ctx, cc, id, log)

	elapsed := time.Since(start)
	c.metrics.RecordResolution(ctx, bean, elapsed, err)
	c.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogResolveError(log, err)
		return id, nil, err
	}
	observability.LogResolveComplete(log, float64(elapsed.Microseconds())/1000, cached)
	return id, instance, nil
}

// instantiate returns the cached singleton for id or builds a new
// instance. id must already be on cc's stack; log is the frame's logger.
func (c *Container) instantiate(ctx context.Context, cc *CreationContext, id Identifier, log *slog.Logger) (any, bool, error) {
	bean := id.String()

	// Fast path.
	c.mu.RLock()
	if def, ok := c.beans[id]; ok && def.scope == Singleton && def.cached {
		instance := def.instance
		c.mu.RUnlock()
		c.metrics.RecordCacheHit(ctx, bean)
		c.spans.AddSpanEvent(ctx, "cache_hit")
		return instance, true, nil
	}
	c.mu.RUnlock()

	// Re-check and take what the factory call needs; another goroutine
	// may have published in between.
	c.mu.RLock()
	def, ok := c.beans[id]
	if !ok {
		c.mu.RUnlock()
		return nil, false, &NotFoundError{ID: id}
	}
	if def.scope == Singleton && def.cached {
		instance := def.instance
		c.mu.RUnlock()
		c.metrics.RecordCacheHit(ctx, bean)
		c.spans.AddSpanEvent(ctx, "cache_hit")
		return instance, true, nil
	}
	factory, scope := def.factory, def.scope
	c.mu.RUnlock()

	deps := &Dependencies{container: c, creation: cc, ctx: ctx}
	c.metrics.RecordFactoryCall(ctx, bean)
	instance, err := factory(deps)
	if err != nil {
		return nil, false, err
	}

	if scope != Singleton {
		return instance, false, nil
	}

	c.mu.Lock()
	published, won := def.store(instance)
	c.mu.Unlock()

	if !won {
		observability.LogInstanceDiscarded(log)
		c.metrics.RecordDiscarded(ctx, bean)
		c.spans.AddSpanEvent(ctx, "instance_discarded",
			attribute.String("bean", bean))
	}
	return published, false, nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Contains reports whether a bean can be resolved, without building it.
// With a name it checks the named bean; without one, the type default
// or fallback of T.
func Contains[T any](c *Container, name ...string) bool {
	if len(name) > 0 {
		return c.ContainsNamed(name[0])
	}
	typ := reflect.TypeFor[T]()

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, hasCanonical := c.beans[typeDefault(typ)]
	_, hasFallback := c.beans[typeFallback(typ)]
	return hasCanonical || hasFallback
}

// ContainsNamed reports whether a bean is registered under name.
func (c *Container) ContainsNamed(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.beans[Named(name)]
	return ok
}

// Len returns the number of stored definitions. A bean registered only
// by name counts twice: once for the name and once for its fallback.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.beans)
}

// IsEmpty reports whether nothing has been registered.
func (c *Container) IsEmpty() bool {
	return c.Len() == 0
}

// BeanInfo describes one stored definition.
type BeanInfo struct {
	ID           Identifier
	Scope        Scope
	Type         reflect.Type
	Instantiated bool
}

// Beans returns a snapshot of every definition, sorted by identifier.
func (c *Container) Beans() []BeanInfo {
	c.mu.RLock()
	out := make([]BeanInfo, 0, len(c.beans))
	for id, def := range c.beans {
		out = append(out, BeanInfo{
			ID:           id,
			Scope:        def.scope,
			Type:         def.typ,
			Instantiated: def.cached,
		})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
