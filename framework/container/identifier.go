package container

import "reflect"

// Kind tells the three flavours of Identifier apart.
type Kind uint8

const (
	// KindNamed is a bean registered under an explicit name.
	KindNamed Kind = iota
	// KindType is the canonical unnamed bean of a type.
	KindType
	// KindFallback is the unnamed placeholder derived from a named
	// registration. It only lives until a KindType bean arrives.
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindType:
		return "type"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Identifier is the key a bean definition is stored under.
//
// It is comparable: named identifiers are equal when their names are,
// type identifiers when their kind and reflect.Type are.
type Identifier struct {
	kind Kind
	name string
	typ  reflect.Type
}

// Named returns the identifier of a bean registered by name.
func Named(name string) Identifier {
	return Identifier{kind: KindNamed, name: name}
}

func typeDefault(t reflect.Type) Identifier {
	return Identifier{kind: KindType, typ: t}
}

func typeFallback(t reflect.Type) Identifier {
	return Identifier{kind: KindFallback, typ: t}
}

// Kind reports which flavour of identifier this is.
func (id Identifier) Kind() Kind { return id.kind }

// Name returns the bean name for named identifiers, "" otherwise.
func (id Identifier) Name() string { return id.name }

// Type returns the bean type for unnamed identifiers, nil for named ones.
func (id Identifier) Type() reflect.Type { return id.typ }

// String renders the identifier the way it shows up in dependency chains:
//
//	Bean(db)                     named
//	Bean(*main.Database)         type default
//	Bean(*main.Database)[unnamed] fallback
func (id Identifier) String() string {
	switch id.kind {
	case KindNamed:
		return "Bean(" + id.name + ")"
	case KindFallback:
		return "Bean(" + typeName(id.typ) + ")[unnamed]"
	default:
		return "Bean(" + typeName(id.typ) + ")"
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
