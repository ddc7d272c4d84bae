package container

// BeanBuilder implements the fluent registration API.
//
//	err := container.Define[*Cache](c).
//	    Named("sessions").
//	    Prototype().
//	    Factory(func(deps *container.Dependencies) (*Cache, error) {
//	        return NewCache(), nil
//	    })
//
// Without Named the bean is registered as the type default; without a
// scope call it is a Singleton.
type BeanBuilder[T any] struct {
	container *Container
	name      string
	named     bool
	scope     Scope
}

// Define starts a registration for T.
func Define[T any](c *Container) *BeanBuilder[T] {
	return &BeanBuilder[T]{container: c, scope: Singleton}
}

// Named registers the bean under name instead of as the type default.
func (b *BeanBuilder[T]) Named(name string) *BeanBuilder[T] {
	b.name = name
	b.named = true
	return b
}

// Singleton selects the Singleton scope (the default).
func (b *BeanBuilder[T]) Singleton() *BeanBuilder[T] {
	b.scope = Singleton
	return b
}

// Prototype selects the Prototype scope.
func (b *BeanBuilder[T]) Prototype() *BeanBuilder[T] {
	b.scope = Prototype
	return b
}

// Factory completes the registration.
func (b *BeanBuilder[T]) Factory(factory Factory[T]) error {
	if b.named {
		return RegisterNamed(b.container, b.name, b.scope, factory)
	}
	return Register(b.container, b.scope, factory)
}

// Value completes the registration with a pre-built instance. The scope
// is ignored: a fixed value is always a singleton.
func (b *BeanBuilder[T]) Value(value T) error {
	if b.named {
		return RegisterNamedInstance(b.container, b.name, value)
	}
	return RegisterInstance(b.container, value)
}
