package container

import (
	"context"
	"reflect"
)

// Dependencies is handed to every Factory. Beans requested through it
// join the resolution already in progress, so cycles and runaway depth
// are detected across the whole chain:
//
//	func(deps *container.Dependencies) (*UserService, error) {
//	    db, err := container.Get[*Database](deps)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewUserService(db), nil
//	}
//
// A Dependencies value is only valid for the duration of the factory
// call it was passed to.
type Dependencies struct {
	container *Container
	creation  *CreationContext
	ctx       context.Context
}

var _ Resolver = (*Dependencies)(nil)

func (d *Dependencies) resolve(_ context.Context, typ reflect.Type, name string, named bool) (Identifier, any, error) {
	return d.container.resolveWith(d.ctx, d.creation, typ, name, named)
}

// CurrentPath returns the chain of beans being built, outermost first.
// Handy in factory error messages.
func (d *Dependencies) CurrentPath() string { return d.creation.Path() }

// ResolutionID returns the ID shared by every frame of this resolution.
func (d *Dependencies) ResolutionID() string { return d.creation.ID() }

// Context returns the context of the current frame. It carries the
// resolution span when tracing is enabled.
func (d *Dependencies) Context() context.Context { return d.ctx }
