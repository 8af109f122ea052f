// Package generate elaborates SystemVerilog generate constructs --
// compile-time if/for blocks that produce instance and variable copies --
// into symbols.GenerateBlockSymbol trees. It shares the teacher generate
// package's shape (a Generator with a constructor and one driving method)
// but none of its content: that package emitted LLVM IR, an explicit
// Non-goal here.
package generate

import (
	"fmt"

	"slangcore/arena"
	"slangcore/bind"
	"slangcore/diag"
	"slangcore/eval"
	"slangcore/symbols"
	"slangcore/syntax"
)

// ItemMaterializer turns one module-item syntax node (a variable, net, or
// instance declaration, or a nested generate construct) into symbols placed
// in scope. The compilation driver supplies this; generate itself only
// decides which branches/iterations exist and defers each surviving item to
// it, through scope.Defer, so items are walked lazily the first time the
// block's scope is traversed -- the same lazy-materialization discipline
// every other scope in this core uses.
type ItemMaterializer func(scope *symbols.Scope, item *syntax.Node)

// Generator elaborates generate-if and generate-for constructs rooted at a
// given scope. One Generator is shared across a whole compilation's
// elaboration pass so maxGenerateSteps is a single budget spent across
// every construct encountered, not reset per construct.
type Generator struct {
	Arena       *arena.Arena
	Resolver    bind.TypeResolver
	Sink        bind.DiagSink
	Materialize ItemMaterializer

	// EvalCtx backs every condition/bound/genvar-value fold this Generator
	// performs, so its maxConstexprSteps budget is shared by every construct
	// the Generator elaborates, not a per-construct allowance. Other
	// constant evaluations in the compilation use their own contexts.
	EvalCtx *eval.Context

	stepBudget int
	anonCount  int
}

// NewGenerator creates a Generator bounded by maxGenerateSteps.
func NewGenerator(a *arena.Arena, resolver bind.TypeResolver, sink bind.DiagSink, materializer ItemMaterializer, evalCtx *eval.Context, maxGenerateSteps int) *Generator {
	return &Generator{
		Arena:       a,
		Resolver:    resolver,
		Sink:        sink,
		Materialize: materializer,
		EvalCtx:     evalCtx,
		stepBudget:  maxGenerateSteps,
	}
}

func (g *Generator) step(loc diag.SourceLocation) bool {
	if g.stepBudget <= 0 {
		g.Sink.Diagnostics().Add(diag.Errorf(diag.CodeGenerateStepLimit, diag.CategoryElaboration, loc,
			"generate elaboration exceeded the step limit"))
		return false
	}
	g.stepBudget--
	return true
}

func (g *Generator) bindCtx(scope *symbols.Scope) bind.Context {
	return bind.Context{
		Scope:       scope,
		Location:    symbols.MaxLocation(scope),
		Compilation: g.Resolver,
		Diag:        g.Sink,
		Flags:       bind.FlagConstantRequired,
	}
}

// Elaborate dispatches on node.Kind to the matching construct and returns
// every GenerateBlockSymbol it produced (including inactive placeholders
// for a generate-if's untaken branch, kept visible as names per the data
// model but carrying no materialized members).
func (g *Generator) Elaborate(parent *symbols.Scope, node *syntax.Node) []*symbols.GenerateBlockSymbol {
	if node == nil || !g.step(node.Range.Start) {
		return nil
	}
	switch node.Kind {
	case syntax.KindGenerateIf:
		return g.elaborateIf(parent, node)
	case syntax.KindGenerateFor:
		return g.elaborateFor(parent, node)
	case syntax.KindGenerateRegion:
		return g.elaborateRegion(parent, node)
	default:
		return nil
	}
}

// elaborateRegion recurses into every child of a bare `generate ... endgenerate`
// region, which contributes no block symbol of its own.
func (g *Generator) elaborateRegion(parent *symbols.Scope, node *syntax.Node) []*symbols.GenerateBlockSymbol {
	var out []*symbols.GenerateBlockSymbol
	for i := 0; i < node.Len(); i++ {
		out = append(out, g.Elaborate(parent, node.At(i))...)
	}
	return out
}

// elaborateIf expects children [cond, thenBlock] or [cond, thenBlock,
// elseBlock], where elseBlock may itself be a nested KindGenerateIf (an
// `else if` chain) or a KindGenerateBlock.
func (g *Generator) elaborateIf(parent *symbols.Scope, node *syntax.Node) []*symbols.GenerateBlockSymbol {
	condNode := node.At(0)
	condExpr := bind.BindExpression(g.bindCtx(parent), condNode)
	cond := eval.Eval(g.EvalCtx, condExpr)
	civ, ok := cond.Integer()
	taken := ok && civ.AsInt64() != 0 && !civ.HasUnknown()

	thenSym := g.makeBlockSymbol(parent, node.At(1), node.Range.Start, taken)
	out := []*symbols.GenerateBlockSymbol{thenSym}

	if node.Len() > 2 {
		elseNode := node.At(2)
		if elseNode.Kind == syntax.KindGenerateIf {
			// else-if: the nested construct supplies its own symbol(s),
			// only materialized when this branch itself is not taken.
			if !taken {
				out = append(out, g.elaborateIf(parent, elseNode)...)
			} else {
				out = append(out, g.makeBlockSymbol(parent, elseNode, elseNode.Range.Start, false))
			}
		} else {
			elseSym := g.makeBlockSymbol(parent, elseNode, elseNode.Range.Start, !taken)
			out = append(out, elseSym)
		}
	}
	return out
}

// elaborateFor expects children [genvarName, init, cond, step, body]: a
// leaf naming the genvar, the self-determined initial-value expression, the
// loop test, the per-iteration update expression (evaluated against the
// current iteration's value, not wrapped in an assignment), and the
// per-iteration KindGenerateBlock body. Each surviving iteration gets its
// own GenerateBlockSymbol named `label[index]`, holding a localparam-like
// copy of the genvar so nested expressions bind to that iteration's value
// through ordinary lookup.
func (g *Generator) elaborateFor(parent *symbols.Scope, node *syntax.Node) []*symbols.GenerateBlockSymbol {
	if node.Len() < 5 {
		return nil
	}
	genvarName, initNode, condNode, stepNode, bodyNode := node.At(0), node.At(1), node.At(2), node.At(3), node.At(4)
	label := node.Text

	loopScope := symbols.NewNestedScope(g.Arena, nil, parent)
	genvarSym := &symbols.GenvarSymbol{Base: symbols.Base{Kind: symbols.KindGenvar, Name: genvarName.Text, Loc: node.Range.Start}}
	loopScope.AddMember(genvarSym, g.Sink.Diagnostics())

	initExpr := bind.BindExpression(g.bindCtx(loopScope), initNode)
	current := eval.Eval(g.EvalCtx, initExpr)

	var out []*symbols.GenerateBlockSymbol
	for i := 0; ; i++ {
		if !g.step(node.Range.Start) {
			break
		}

		iterScope := symbols.NewNestedScope(g.Arena, nil, loopScope)
		param := &symbols.ParameterSymbol{
			Base:    symbols.Base{Kind: symbols.KindParameter, Name: genvarSym.SymbolName(), Loc: node.Range.Start},
			Type:    g.Resolver.Interner().Int(),
			Value:   current,
			IsLocal: true,
		}
		iterScope.AddMember(param, g.Sink.Diagnostics())

		condExpr := bind.BindExpression(g.bindCtx(iterScope), condNode)
		condVal := eval.Eval(g.EvalCtx, condExpr)
		civ, ok := condVal.Integer()
		if !ok || civ.HasUnknown() || civ.AsInt64() == 0 {
			break
		}

		name := fmt.Sprintf("%s[%d]", label, i)
		sym := g.blockSymbolNamed(parent, name, bodyNode, node.Range.Start, true)
		sym.Body.AddMember(&symbols.ParameterSymbol{
			Base:    symbols.Base{Kind: symbols.KindParameter, Name: genvarSym.SymbolName(), Loc: node.Range.Start},
			Type:    param.Type,
			Value:   current,
			IsLocal: true,
		}, g.Sink.Diagnostics())
		out = append(out, sym)

		stepExpr := bind.BindExpression(g.bindCtx(iterScope), stepNode)
		current = eval.Eval(g.EvalCtx, stepExpr)
	}
	return out
}

// makeBlockSymbol names an if/else branch either from the block's own label
// (if the syntax supplied one) or an anonymous `genblk<N>` name, per the
// convention for unlabeled generate blocks.
func (g *Generator) makeBlockSymbol(parent *symbols.Scope, body *syntax.Node, loc diag.SourceLocation, active bool) *symbols.GenerateBlockSymbol {
	name := body.Text
	if name == "" {
		g.anonCount++
		name = fmt.Sprintf("genblk%d", g.anonCount)
	}
	return g.blockSymbolNamed(parent, name, body, loc, active)
}

func (g *Generator) blockSymbolNamed(parent *symbols.Scope, name string, body *syntax.Node, loc diag.SourceLocation, active bool) *symbols.GenerateBlockSymbol {
	sym := &symbols.GenerateBlockSymbol{
		Base:   symbols.Base{Kind: symbols.KindGenerateBlock, Name: name, Loc: loc},
		Active: active,
	}
	bodyScope := symbols.NewNestedScope(g.Arena, sym, parent)
	sym.Body = bodyScope
	parent.AddMember(sym, g.Sink.Diagnostics())

	if active && body != nil {
		for i := 0; i < body.Len(); i++ {
			item := body.At(i)
			bodyScope.Defer(func(s *symbols.Scope) {
				if item.Kind == syntax.KindGenerateIf || item.Kind == syntax.KindGenerateFor || item.Kind == syntax.KindGenerateRegion {
					g.Elaborate(s, item)
					return
				}
				if g.Materialize != nil {
					g.Materialize(s, item)
				}
			})
		}
	}
	return sym
}
