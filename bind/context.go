// Package bind converts expression syntax into a typed, operator-resolved
// expression tree: the creation-pass/propagation-pass two-pass binder that
// implements SystemVerilog's context-determined/self-determined width and
// sign rules.
package bind

import (
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/typing"
)

// Flag is a bitmask of bind-context flags threaded through every recursive
// call of the binder.
type Flag uint8

const (
	FlagNone Flag = 0

	// FlagConstantRequired marks a context where every bound expression must
	// eventually fold to a constant (parameter defaults, array bounds,
	// generate conditions); verifyConstant consults this.
	FlagConstantRequired Flag = 1 << 0

	// FlagNonProcedural marks contexts outside always/initial blocks
	// (continuous assignments, port connections), where certain constructs
	// (blocking assignment inside an expression, delay controls) are
	// disallowed.
	FlagNonProcedural Flag = 1 << 1

	// FlagSelfDetermined marks a context where the expression's type is not
	// propagated from above -- the creation pass's own default, made
	// explicit so callers can force it even mid-propagation (inside a
	// shift's rhs, for example).
	FlagSelfDetermined Flag = 1 << 2
)

func (f Flag) Has(o Flag) bool { return f&o != 0 }

// TypeResolver is the subset of Compilation the binder needs: resolving a
// syntax type reference and reaching the shared type interner. Defined here
// rather than in compilation so the dependency points one way --
// compilation imports bind, never the reverse.
type TypeResolver interface {
	Interner() *typing.Interner
	ResolveType(node interface{}, ctx *Context) typing.Type
}

// DiagSink is the subset of Compilation the binder needs for reporting
// diagnostics and consulting bounded budgets.
type DiagSink interface {
	Diagnostics() *diag.Bag
	TypoCorrectionLimit() int
}

// Context carries everything a single bind call needs: where it is in the
// symbol graph (for name lookup), what is being built (the instance path,
// for hierarchical references), and how it should behave (the flag
// bitmask). It is passed by value copy at every recursive descent so a
// callee can freely adjust flags (e.g. force self-determined for a shift's
// rhs) without affecting the caller's context.
type Context struct {
	Scope          *symbols.Scope
	Location       symbols.LookupLocation
	InstancePath   []*symbols.InstanceSymbol
	Flags          Flag
	Compilation    TypeResolver
	Diag           DiagSink
}

// WithFlags returns a copy of ctx with flags added (not replaced).
func (ctx Context) WithFlags(f Flag) Context {
	ctx.Flags |= f
	return ctx
}

// WithoutFlags returns a copy of ctx with flags cleared.
func (ctx Context) WithoutFlags(f Flag) Context {
	ctx.Flags &^= f
	return ctx
}
