package container

import (
	"reflect"
	"strconv"
)

// Scope decides whether a bean is shared or rebuilt on every request.
type Scope int

const (
	// Singleton beans are built once; the first published instance is
	// returned to every caller afterwards.
	Singleton Scope = iota
	// Prototype beans are built on every request and never cached.
	Prototype
)

func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Prototype:
		return "prototype"
	default:
		return "Scope(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s Scope) valid() bool { return s == Singleton || s == Prototype }

// Factory builds a bean of type T. It may request other beans through
// deps, e.g. container.Get[*Database](deps).
//
// Singleton factories may run more than once when several goroutines
// resolve the same bean for the first time; only one result is kept.
//
// Singleton beans should be pointer (or other reference) types. A value
// type is cached once, but every Get returns its own copy of it.
type Factory[T any] func(deps *Dependencies) (T, error)

// factoryFunc is a Factory with its result type erased.
type factoryFunc func(deps *Dependencies) (any, error)

func erase[T any](f Factory[T]) factoryFunc {
	return func(deps *Dependencies) (any, error) {
		v, err := f(deps)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// definition is one stored registration. instance and cached are guarded
// by the owning Container's mutex.
type definition struct {
	factory factoryFunc
	scope   Scope
	typ     reflect.Type

	instance any
	cached   bool
}

func newDefinition(typ reflect.Type, scope Scope, factory factoryFunc) *definition {
	return &definition{factory: factory, scope: scope, typ: typ}
}

// store publishes v unless an instance is already cached. It returns the
// instance that ended up published. Caller must hold the write lock.
func (d *definition) store(v any) (published any, won bool) {
	if d.cached {
		return d.instance, false
	}
	d.instance = v
	d.cached = true
	return v, true
}
