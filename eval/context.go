// Package eval implements constant evaluation: interpreting a bound
// expression tree (see the bind package) down to a constant.Value, subject
// to the same bounded-budget discipline the rest of the core uses for
// forward-progress guarantees.
package eval

import (
	"slangcore/bind"
	"slangcore/diag"
	"slangcore/symbols"
)

// Frame is one call-frame of function interpretation: the local bindings
// visible while stepping through a subroutine's body, plus the subroutine
// itself (for recursion-depth bookkeeping and diagnostics).
type Frame struct {
	Subroutine *symbols.SubroutineSymbol
	Locals     map[symbols.Symbol]Local
	Returned   bool
	ReturnVal  interface{} // constant.Value, boxed to avoid an import cycle at this layer's call boundary
}

// Local is a mutable binding slot inside a Frame -- separate from
// symbols.ParameterSymbol.Value (which is immutable once elaborated) since
// ordinary variables may be reassigned during statement interpretation.
type Local struct {
	Value interface{} // constant.Value
}

// Context carries everything one constant-evaluation call needs: the
// diagnostic sink, the bounded step/depth budgets (maxConstexprSteps,
// maxConstexprDepth from spec.md §6), and the active call-frame stack.
type Context struct {
	Bag *diag.Bag

	StepBudget int // remaining elementary steps; 0 means exhausted
	MaxDepth   int

	Frames []*Frame

	// Resolver and Sink let the statement interpreter (statement.go) bind
	// fresh expression syntax encountered inside a function body -- the
	// binder itself doesn't walk statements, only expressions, so each
	// statement's expression children are bound lazily the first time a
	// call steps over them.
	Resolver bind.TypeResolver
	Sink     bind.DiagSink

	loc diag.SourceLocation
}

// NewContext creates a fresh evaluation context with the given step and
// recursion budgets (pass config.CompilationOptions.MaxConstexprSteps /
// MaxConstexprDepth).
func NewContext(bag *diag.Bag, maxSteps, maxDepth int, loc diag.SourceLocation, resolver bind.TypeResolver, sink bind.DiagSink) *Context {
	return &Context{Bag: bag, StepBudget: maxSteps, MaxDepth: maxDepth, loc: loc, Resolver: resolver, Sink: sink}
}

// step consumes one elementary evaluation step, reporting and returning
// false once the budget is exhausted so every caller can unwind cleanly.
func (c *Context) step() bool {
	if c.StepBudget <= 0 {
		c.Bag.Add(diag.Errorf(diag.CodeConstexprStepLimit, diag.CategoryConstEval, c.loc,
			"constant evaluation exceeded the step limit"))
		return false
	}
	c.StepBudget--
	return true
}

// CurrentFrame returns the innermost active call frame, or nil at the top
// level (evaluating outside any function call).
func (c *Context) CurrentFrame() *Frame {
	if len(c.Frames) == 0 {
		return nil
	}
	return c.Frames[len(c.Frames)-1]
}

// pushFrame enters a new call frame, failing with a "constexpr recursion"
// diagnostic once MaxDepth would be exceeded.
func (c *Context) pushFrame(f *Frame) bool {
	if len(c.Frames) >= c.MaxDepth {
		c.Bag.Add(diag.Errorf(diag.CodeConstexprRecursion, diag.CategoryConstEval, c.loc,
			"constant-function call depth exceeded %d frames", c.MaxDepth))
		return false
	}
	c.Frames = append(c.Frames, f)
	return true
}

func (c *Context) popFrame() {
	c.Frames = c.Frames[:len(c.Frames)-1]
}
