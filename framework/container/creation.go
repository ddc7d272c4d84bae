package container

import (
	"strings"

	"github.com/google/uuid"
)

// MaxDepth bounds how many beans may be under construction at once within
// a single top-level Get.
const MaxDepth = 100

// CreationContext tracks the beans currently being built for one
// top-level Get call. Every nested lookup made through Dependencies
// shares the same context, so cycles are caught where they would recurse.
//
// A CreationContext is not safe for concurrent use; it belongs to the
// goroutine that started the resolution.
type CreationContext struct {
	id       string
	creating []Identifier
}

func newCreationContext() *CreationContext {
	return &CreationContext{
		id:       uuid.NewString(),
		creating: make([]Identifier, 0, 8),
	}
}

// ID returns the resolution ID shared by every frame of this call.
func (cc *CreationContext) ID() string { return cc.id }

// Depth returns the number of beans currently under construction.
func (cc *CreationContext) Depth() int { return len(cc.creating) }

// Path returns the in-progress chain, outermost bean first.
//
//	Bean(*main.OrderService) -> Bean(*main.UserService)
func (cc *CreationContext) Path() string {
	return joinChain(cc.creating)
}

// enter pushes id onto the stack.
func (cc *CreationContext) enter(id Identifier) error {
	for _, current := range cc.creating {
		if current == id {
			chain := make([]Identifier, 0, len(cc.creating)+1)
			chain = append(chain, cc.creating...)
			chain = append(chain, id)
			return &CircularDependencyError{Chain: chain}
		}
	}

	if len(cc.creating) >= MaxDepth {
		return &DependencyTooDeepError{Depth: len(cc.creating) + 1, Path: cc.Path()}
	}

	cc.creating = append(cc.creating, id)
	return nil
}

func (cc *CreationContext) exit() {
	if n := len(cc.creating); n > 0 {
		cc.creating = cc.creating[:n-1]
	}
}

func joinChain(ids []Identifier) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}
