// Package typing implements the type system: built-in and user-defined
// types, their canonicalization, and the coercion/width rules two-pass
// expression binding needs. Types are interned through a single Interner
// owned by a Compilation (see the compilation package) -- there is no
// process-wide type table.
package typing

// Kind tags every Type variant. Matching on Kind with a safe downcast to
// the concrete struct is the dispatch shape used throughout this package
// and by its callers, instead of an open type-switch over an unbounded
// interface hierarchy.
type Kind uint8

const (
	KindError Kind = iota
	KindVoid
	KindNull
	KindUnbound // the "unbounded" $ marker
	KindEvent
	KindString
	KindCHandle
	KindIntegral // scalar bit/logic/reg and packed integer arrays are both IntegralType
	KindReal
	KindShortReal
	KindEnum
	KindPackedStruct
	KindPackedUnion
	KindUnpackedStruct
	KindUnpackedUnion
	KindUnpackedArray
	KindClassHandle
	KindAlias
)

// Type is the common interface every type variant implements. Two Types
// with an equal canonical form must be the same pointer -- Equal is simply
// pointer identity after unwrapping aliases, never a structural walk.
type Type interface {
	Kind() Kind
	Repr() string
}

// Unwrap follows alias chains down to the first non-alias type. Every
// comparison, coercion, and propagation rule in this package operates on
// unwrapped types; only diagnostics and pretty-printing ever see the alias
// wrapper, so a typedef's name survives into error messages.
func Unwrap(t Type) Type {
	for {
		a, ok := t.(*AliasType)
		if !ok {
			return t
		}
		t = a.Target
	}
}

// Equal reports whether a and b have the identical canonical form. Since
// canonical types are interned, this is pointer equality once alias
// wrappers are stripped.
func Equal(a, b Type) bool {
	return Unwrap(a) == Unwrap(b)
}

// IsError reports whether t is (or aliases) the error type -- the poisoned
// value idiom: once true, callers should suppress further diagnostics
// about t but keep traversing so unrelated errors still surface.
func IsError(t Type) bool {
	return Unwrap(t).Kind() == KindError
}

// singleton describes the handful of types with exactly one inhabitant per
// compilation: error, void, null, unbound, event, string, chandle.
type singleton struct {
	kind Kind
	name string
}

func (s *singleton) Kind() Kind   { return s.kind }
func (s *singleton) Repr() string { return s.name }

// AliasType is a named reference to another type, produced by a typedef.
// It canonicalizes transparently (Unwrap skips it) but keeps the
// declared name for display.
type AliasType struct {
	Name   string
	Target Type
}

func (a *AliasType) Kind() Kind   { return KindAlias }
func (a *AliasType) Repr() string { return a.Name }

// ClassHandleType is a minimal stand-in for a handle to a class instance;
// classes are not otherwise elaborated by this core (spec.md scopes
// elaboration to modules/interfaces/programs), but the type variant itself
// is needed so member-access and null-literal binding against a class
// handle type-check.
type ClassHandleType struct {
	ClassName string
}

func (c *ClassHandleType) Kind() Kind   { return KindClassHandle }
func (c *ClassHandleType) Repr() string { return c.ClassName }
