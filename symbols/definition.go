package symbols

import (
	"slangcore/arena"
	"slangcore/diag"
	"slangcore/syntax"
)

// DefinitionKind distinguishes the three template kinds a Definition may be.
type DefinitionKind uint8

const (
	DefModule DefinitionKind = iota
	DefInterface
	DefProgram
)

// Definition is a module/interface/program template extracted from syntax
// but not yet instantiated: its port list and body are still syntax,
// elaborated lazily the first time an instance requests them. Definitions
// are not placed in a Scope's member list the way other symbols are --
// they are held directly by the Compilation's definition table, keyed by
// name, since they are looked up by instantiation rather than by ordinary
// scoped name resolution.
type Definition struct {
	Base
	DefinitionKind DefinitionKind

	PortListSyntax *syntax.Node
	ParamsSyntax   *syntax.Node
	BodySyntax     *syntax.Node

	DefaultNetType string
	TimeUnit       string
	TimePrecision  string

	DeclaringScope *Scope
}

func (d *Definition) SymbolKind() Kind { return KindDefinition }

// InstanceBody is the shared elaborated body of one or more instances with
// identical parameter bindings: a fully-materialized Scope holding the
// resolved ports, parameters, nets, variables, and generate blocks. Per the
// instance-body-cache invariant, two instances of the same Definition with
// canonically-equal parameter bindings reference the same *InstanceBody.
type InstanceBody struct {
	Base
	Definition *Definition
	Body       *Scope

	// Params is the canonical, ordered parameter-value tuple this body was
	// elaborated with -- the cache key alongside Definition.
	Params []ParamBinding

	Instances []*InstanceSymbol
}

func (ib *InstanceBody) SymbolKind() Kind { return KindInstanceBody }

// ParamBinding is one resolved (name, value) pair contributing to an
// instance body's canonical parameter tuple. Value is boxed as interface{}
// (a constant.Value) to keep this package independent of constant.
type ParamBinding struct {
	Name  string
	Value interface{}
}

// InstanceSymbol is a single placement of a Definition at a hierarchical
// position, e.g. `adder u_adder(...)`. Multiple InstanceSymbols may share
// one Body when their parameter bindings are canonically equal.
type InstanceSymbol struct {
	Base
	Body *InstanceBody
	// HierarchicalPath is the dot-separated instance path from the design
	// root, used by upward hierarchical lookup (E) and diagnostic messages.
	HierarchicalPath string
}

func (is *InstanceSymbol) SymbolKind() Kind { return KindInstance }

// PackageSymbol represents a SystemVerilog `package`. Its Body scope holds
// every package-level declaration, and the "public" visibility of spec E's
// wildcard-import algorithm consults this scope through WildcardImports.
type PackageSymbol struct {
	Base
	Body *Scope
}

func (p *PackageSymbol) SymbolKind() Kind { return KindPackage }

// CompilationUnitSymbol is the scope-bearing root of one source file (or of
// all files with no explicit compilation-unit scoping): the outermost
// lookup point before climbing to RootSymbol, where $unit-scoped items
// (those declared outside any module/package) live.
type CompilationUnitSymbol struct {
	Base
	Body *Scope
}

func (c *CompilationUnitSymbol) SymbolKind() Kind { return KindCompilationUnit }

// NewCompilationUnit creates an empty compilation-unit symbol with its body
// scope allocated from a.
func NewCompilationUnit(a *arena.Arena, name string, loc diag.SourceLocation) *CompilationUnitSymbol {
	cu := &CompilationUnitSymbol{Base: Base{Kind: KindCompilationUnit, Name: name, Loc: loc}}
	cu.Body = NewScope(a, cu)
	return cu
}
