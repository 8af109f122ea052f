// Package compilation ties the other packages together into the single
// long-lived object a caller constructs: it owns the arena, the type
// interner, the diagnostic bag, and the registered syntax trees, and drives
// lazy elaboration from those trees to a finished RootSymbol. Grounded on
// the teacher's build.Compiler (build/compiler.go) for its shape -- one
// struct, a constructor, and operations that run a multi-stage pipeline --
// though none of Compiler's module/package-graph content survives: this
// core ingests already-parsed syntax trees directly, with no import
// statements, module search paths, or concurrent file scanning to resolve
// (see DESIGN.md for the disposition of build/import.go, build/initpkg.go,
// build/metadata.go, and build/prelude.go, all Chai-specific and dropped).
package compilation

import (
	"slangcore/arena"
	"slangcore/bind"
	"slangcore/config"
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/eval"
	"slangcore/generate"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// instanceCacheKey is the instance-body cache key: a definition pointer
// plus a canonical string rendering of the resolved parameter tuple
// (constant.Value isn't itself comparable, so its GoString rendering serves
// as the comparable projection spec.md §4.8 calls "canonical tuple").
type instanceCacheKey struct {
	def    *symbols.Definition
	params string
}

// Compilation is the single mutable owner of one compilation's semantic
// state: no field here is ever a package-level global, per the "Global
// compilation state... Do not use process singletons" design note.
type Compilation struct {
	arena   *arena.Arena
	interner *typing.Interner
	bag     *diag.Bag
	opts    config.CompilationOptions

	trees []*syntax.Node

	unit *symbols.CompilationUnitSymbol
	root *symbols.RootSymbol

	// definitions indexes every module/interface/program template found
	// across all registered trees, by name -- spec.md's Definition is
	// looked up by instantiation, never placed in an ordinary Scope.
	definitions map[string]*symbols.Definition

	instanceBodies *arena.PointerMap[instanceCacheKey, *symbols.InstanceBody]

	// frames records the hierarchical-path prefix and instantiation depth
	// each InstanceBody was first elaborated with -- materializeItem
	// consults this (via the owning InstanceBody reached by climbing a
	// scope's parent chain) to name and depth-check nested instances.
	frames map[*symbols.InstanceBody]instFrame

	// defparams accumulates every KindDefParam item encountered while
	// materializing module bodies, resolved in one fix-point pass by
	// getRoot per spec.md §4.8 step (d).
	defparams []pendingDefParam

	gen *generate.Generator

	instanceDepth int
	finalized     bool
}

type pendingDefParam struct {
	path  string
	value *syntax.Node
	scope *symbols.Scope
	loc   diag.SourceLocation
}

// NewCompilation creates an empty Compilation with its own arena, type
// interner, and diagnostic bag -- opts governs every bounded budget and
// behavioral flag for its lifetime.
func NewCompilation(opts config.CompilationOptions) *Compilation {
	a := arena.New()
	c := &Compilation{
		arena:          a,
		interner:       typing.NewInterner(a),
		bag:            diag.NewBag(opts.ErrorLimit),
		opts:           opts,
		definitions:    make(map[string]*symbols.Definition),
		instanceBodies: arena.NewPointerMap[instanceCacheKey, *symbols.InstanceBody](a),
		frames:         make(map[*symbols.InstanceBody]instFrame),
	}
	c.unit = symbols.NewCompilationUnit(a, "$unit", diag.SourceLocation{})
	return c
}

// Interner implements bind.TypeResolver.
func (c *Compilation) Interner() *typing.Interner { return c.interner }

// Diagnostics implements bind.DiagSink.
func (c *Compilation) Diagnostics() *diag.Bag { return c.bag }

// TypoCorrectionLimit implements bind.DiagSink.
func (c *Compilation) TypoCorrectionLimit() int { return c.opts.TypoCorrectionLimit }

// Arena exposes the compilation's shared arena to callers that need to
// place additional long-lived objects (tests, the cmd demo driver).
func (c *Compilation) Arena() *arena.Arena { return c.arena }

// AddSyntaxTree registers tree for inclusion in the next getRoot call. It
// fails (returning false) once the compilation has been finalized, per
// spec.md §4.8's "addSyntaxTree... fails if finalized."
func (c *Compilation) AddSyntaxTree(tree *syntax.Node) bool {
	if c.finalized {
		c.bag.Add(diag.Errorf(diag.CodeDuplicateDefinition, diag.CategoryElaboration, diag.SourceLocation{},
			"cannot add a syntax tree after the compilation has been finalized"))
		return false
	}
	c.trees = append(c.trees, tree)
	return true
}

// bindCtx builds a bind.Context for a non-constant-required binding at the
// given scope, visible to everything declared so far in it.
func (c *Compilation) bindCtx(scope *symbols.Scope) bind.Context {
	return bind.Context{Scope: scope, Location: symbols.MaxLocation(scope), Compilation: c, Diag: c}
}

// constCtx is bindCtx with FlagConstantRequired set, for parameter
// defaults, array bounds, and generate conditions.
func (c *Compilation) constCtx(scope *symbols.Scope) bind.Context {
	return c.bindCtx(scope).WithFlags(bind.FlagConstantRequired)
}

// constEvalCtx builds a fresh eval.Context sharing this compilation's
// bounded budgets. Per spec.md §5's single-threaded cooperative model one
// Compilation is never used concurrently, so a fresh Context per call
// (rather than one long-lived shared stepper) is safe and keeps each
// evaluation's frame stack independent.
func (c *Compilation) constEvalCtx(scope *symbols.Scope) *eval.Context {
	return eval.NewContext(c.bag, c.opts.MaxConstexprSteps, c.opts.MaxConstexprDepth, symbols.MaxLocation(scope).Scope.Owner().Location(), c, c)
}

// evalConst binds and evaluates node as a required constant within scope,
// returning constant.Error() (with a diagnostic already recorded by either
// bind or eval) on failure.
func (c *Compilation) evalConst(scope *symbols.Scope, node *syntax.Node) constant.Value {
	if node == nil {
		return constant.Error()
	}
	expr := bind.BindExpression(c.constCtx(scope), node)
	return eval.Eval(c.constEvalCtx(scope), expr)
}

// generator returns the single generate.Generator shared across this
// compilation's whole elaboration pass, creating it on first use, so
// maxGenerateSteps is one budget spent across every construct encountered
// rather than reset per construct.
func (c *Compilation) generator() *generate.Generator {
	if c.gen == nil {
		c.gen = generate.NewGenerator(c.arena, c, c, c.materializeItem, c.constEvalCtx(c.unit.Body), c.opts.MaxGenerateSteps)
	}
	return c.gen
}

func (c *Compilation) paramTupleKey(params []symbols.ParamBinding) string {
	s := ""
	for _, p := range params {
		v, _ := p.Value.(constant.Value)
		s += p.Name + "=" + v.GoString() + ";"
	}
	return s
}

func (c *Compilation) diagInstanceDepthExceeded(loc diag.SourceLocation) {
	c.bag.Add(diag.Errorf(diag.CodeInstanceDepthExceeded, diag.CategoryElaboration, loc,
		"instantiation depth exceeded %d", c.opts.MaxInstanceDepth))
}
