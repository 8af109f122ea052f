package symbols

import (
	"slangcore/diag"
	"slangcore/syntax"
	"slangcore/typing"
)

// Symbol is the common interface every symbol variant implements. Every
// symbol carries {kind, name, parent scope, declaration order index, source
// location}, per the data model -- those five fields live in Base and are
// embedded by every concrete variant.
type Symbol interface {
	SymbolKind() Kind
	SymbolName() string
	ParentScope() *Scope
	Index() int
	Location() diag.SourceLocation
	setParentScope(*Scope)
	setIndex(int)
}

// Base is embedded in every concrete symbol struct and supplies the five
// fields the data model requires of every symbol, plus their accessors. A
// symbol's parent scope is nil until AddMember places it, satisfying the
// invariant that a symbol's parent scope is set before it becomes visible.
type Base struct {
	Kind   Kind
	Name   string
	Loc    diag.SourceLocation
	parent *Scope
	index  int
}

func (b *Base) SymbolKind() Kind              { return b.Kind }
func (b *Base) SymbolName() string            { return b.Name }
func (b *Base) ParentScope() *Scope           { return b.parent }
func (b *Base) Index() int                    { return b.index }
func (b *Base) Location() diag.SourceLocation { return b.Loc }
func (b *Base) setParentScope(s *Scope)       { b.parent = s }
func (b *Base) setIndex(i int)                { b.index = i }

// Typed is implemented by every symbol variant that carries a resolved
// Type: parameters, variables, ports, nets, fields, type aliases, enum
// members. Genvars, subroutines, and scopes without an inherent data type do
// not implement it.
type Typed interface {
	Symbol
	SymbolType() typing.Type
}

// ParameterSymbol is a `parameter` or `localparam` declaration. Value is
// populated once the parameter's default (or override) expression has been
// evaluated; it is nil until then.
type ParameterSymbol struct {
	Base
	Type       typing.Type
	Value      interface{} // constant.Value, boxed to avoid an import cycle with constant
	IsLocal    bool
	IsOverride bool
}

func (p *ParameterSymbol) SymbolType() typing.Type { return p.Type }

// VariableSymbol is a `variable_decl`/automatic or static variable.
type VariableSymbol struct {
	Base
	Type      typing.Type
	Automatic bool
}

func (v *VariableSymbol) SymbolType() typing.Type { return v.Type }

// PortSymbol is a module/interface port.
type PortSymbol struct {
	Base
	Type      typing.Type
	Direction PortDirection
}

type PortDirection uint8

const (
	DirUnknown PortDirection = iota
	DirInput
	DirOutput
	DirInout
	DirRef
)

func (p *PortSymbol) SymbolType() typing.Type { return p.Type }

// NetSymbol is a `wire`/`tri`/... net declaration.
type NetSymbol struct {
	Base
	Type    typing.Type
	NetKind string
}

func (n *NetSymbol) SymbolType() typing.Type { return n.Type }

// FieldSymbol is a member of an unpacked struct/union, as a symbol rather
// than the plain typing.Field value -- it is placed in the aggregate's own
// Scope so member-access can resolve it through ordinary lookup.
type FieldSymbol struct {
	Base
	Type   typing.Type
	Offset int
}

func (f *FieldSymbol) SymbolType() typing.Type { return f.Type }

// SubroutineSymbol is a function or task. Body is the local scope holding
// its parameters/variables; BodySyntax is the still-unwalked statement list,
// interpreted lazily by the eval package's call-frame stepper on first
// invocation from a constant context.
type SubroutineSymbol struct {
	Base
	ReturnType typing.Type
	IsFunction bool
	Body       *Scope
	BodySyntax *syntax.Node
	Params     []*VariableSymbol // ordered formal arguments, in call order
}

// GenerateBlockSymbol is one elaborated iteration/branch of a generate
// construct (if/for/case generate). Active reports whether this branch's
// condition was satisfied; inactive branches still exist as symbols (so
// their names are not silently available) but contribute no members to
// lookup beyond themselves.
type GenerateBlockSymbol struct {
	Base
	Body   *Scope
	Active bool
}

// StatementBlockSymbol is a `begin ... end` named block, a scope-introducing
// construct with no type of its own.
type StatementBlockSymbol struct {
	Base
	Body *Scope
}

// TypeAliasSymbol is a `typedef` declaration; Target is resolved lazily the
// first time the alias is dereferenced so typedefs may appear before their
// target type is itself fully elaborated.
type TypeAliasSymbol struct {
	Base
	Target typing.Type
}

func (t *TypeAliasSymbol) SymbolType() typing.Type { return t.Target }

// GenvarSymbol is a `genvar` declaration, usable only inside generate-for
// loop headers and bodies.
type GenvarSymbol struct {
	Base
}

// EnumMemberSymbol wraps a typing.EnumMember with the scope placement and
// declaration order every symbol needs; the typing package keeps a bare
// EnumMember to avoid importing symbols.
type EnumMemberSymbol struct {
	Base
	Member *typing.EnumMember
	Type   typing.Type
}

func (e *EnumMemberSymbol) SymbolType() typing.Type { return e.Type }
