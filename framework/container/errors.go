package container

import (
	"errors"
	"reflect"
	"strconv"
)

// Sentinel errors. The typed errors below unwrap to one of these, so
// callers can match with errors.Is and still get details via errors.As.
var (
	// ErrAlreadyRegistered is returned when a type default or a name is
	// registered a second time.
	ErrAlreadyRegistered = errors.New("container: bean already registered")

	// ErrNotFound is returned when no definition matches the request.
	ErrNotFound = errors.New("container: bean not found")

	// ErrCircularDependency is returned when a bean is requested while it
	// is already being constructed in the same resolution.
	ErrCircularDependency = errors.New("container: circular dependency detected")

	// ErrDependencyTooDeep is returned when a resolution exceeds MaxDepth.
	ErrDependencyTooDeep = errors.New("container: dependency chain too deep")

	// ErrTypeMismatch is returned when a stored instance cannot be
	// converted to the requested type.
	ErrTypeMismatch = errors.New("container: type mismatch")

	// ErrNilFactory is returned when a registration carries no factory.
	ErrNilFactory = errors.New("container: nil factory")

	// ErrInvalidScope is returned for a Scope outside Singleton/Prototype.
	ErrInvalidScope = errors.New("container: invalid scope")
)

// AlreadyRegisteredError names the identifier that is already taken.
type AlreadyRegisteredError struct{ ID Identifier }

func (e *AlreadyRegisteredError) Error() string {
	return ErrAlreadyRegistered.Error() + ": " + e.ID.String()
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }

// NotFoundError names the identifier that was looked up. For unnamed
// lookups it is the type default identifier.
type NotFoundError struct{ ID Identifier }

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error() + ": " + e.ID.String()
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CircularDependencyError carries the chain that closed the cycle. The
// last element repeats an earlier one.
type CircularDependencyError struct{ Chain []Identifier }

func (e *CircularDependencyError) Error() string {
	// container: circular dependency detected: Bean(a) -> Bean(b) -> Bean(a)
	return ErrCircularDependency.Error() + ": " + joinChain(e.Chain)
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// DependencyTooDeepError reports the depth that was refused and the
// chain in progress when it happened.
type DependencyTooDeepError struct {
	Depth int
	Path  string
}

func (e *DependencyTooDeepError) Error() string {
	return ErrDependencyTooDeep.Error() + " (>" + strconv.Itoa(MaxDepth) + "): " + e.Path
}

func (e *DependencyTooDeepError) Unwrap() error { return ErrDependencyTooDeep }

// TypeMismatchError is returned when the instance stored under ID is not
// assignable to the requested type.
type TypeMismatchError struct {
	ID   Identifier
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return ErrTypeMismatch.Error() + ": " + e.ID.String() +
		" holds " + typeName(e.Got) + ", requested " + typeName(e.Want)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
