package eval

import (
	"slangcore/bind"
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
)

// evalCall interprets a user-subroutine call: binds the argument values
// positionally into a new frame, steps through the body's statement list,
// and returns the frame's captured return value (or the error value if the
// function never hit a return statement or the call failed outright).
// System calls ($bits, $clog2, ...) are evaluated directly, without a
// frame, by their own narrow per-name table.
func evalCall(ctx *Context, expr *bind.Expression) constant.Value {
	data := expr.Payload.(bind.CallData)
	if data.SystemName != "" {
		return evalSystemCall(ctx, data)
	}
	sub := data.Subroutine
	if sub == nil {
		ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc, "call to unresolved subroutine"))
		return constant.Error()
	}

	frame := &Frame{Subroutine: sub, Locals: map[symbols.Symbol]Local{}}
	for i, arg := range data.Args {
		v := Eval(ctx, arg)
		if i < len(sub.Params) {
			frame.Locals[sub.Params[i]] = Local{Value: v}
		}
	}

	if !ctx.pushFrame(frame) {
		return constant.Error()
	}
	defer ctx.popFrame()

	if sub.BodySyntax != nil {
		runStatementList(ctx, frame, sub.BodySyntax)
	}

	if frame.Returned {
		if v, ok := frame.ReturnVal.(constant.Value); ok {
			return v
		}
	}
	return constant.Error()
}

// evalSystemCall implements the handful of system functions that are
// themselves constant-foldable; anything else is simply not constant in
// this core's scope.
func evalSystemCall(ctx *Context, data bind.CallData) constant.Value {
	switch data.SystemName {
	case "$bits":
		if len(data.Args) != 1 {
			return constant.Error()
		}
		v := Eval(ctx, data.Args[0])
		iv, ok := v.Integer()
		if !ok {
			return constant.Error()
		}
		return constant.Integer(constant.NewInt(32, true, int64(iv.Width())))
	case "$clog2":
		if len(data.Args) != 1 {
			return constant.Error()
		}
		v := Eval(ctx, data.Args[0])
		iv, ok := v.Integer()
		if !ok {
			return constant.Error()
		}
		n := iv.AsInt64()
		bits := int64(0)
		x := int64(1)
		for x < n {
			x <<= 1
			bits++
		}
		return constant.Integer(constant.NewInt(32, true, bits))
	default:
		ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc,
			"%s is not constant-evaluable", data.SystemName))
		return constant.Error()
	}
}

// runStatementList walks a statement (or a block of statements) in
// execution order, consuming one budget step per statement and stopping
// early once the frame captures a return value or the budget runs out.
func runStatementList(ctx *Context, frame *Frame, node *syntax.Node) {
	if node == nil || frame.Returned || !ctx.step() {
		return
	}

	switch node.Kind {
	case syntax.KindBlockStatement:
		for i := 0; i < node.Len() && !frame.Returned; i++ {
			runStatementList(ctx, frame, node.At(i))
		}

	case syntax.KindExpressionStatement:
		bindAndEval(ctx, frame, node.At(0))

	case syntax.KindConditionalStatement:
		cond := bindAndEval(ctx, frame, node.At(0))
		civ, ok := cond.Integer()
		if !ok {
			return
		}
		if civ.AsInt64() != 0 {
			runStatementList(ctx, frame, node.At(1))
		} else if node.Len() > 2 {
			runStatementList(ctx, frame, node.At(2))
		}

	case syntax.KindForLoopStatement:
		runForLoop(ctx, frame, node)

	case syntax.KindCaseStatement:
		runCaseStatement(ctx, frame, node)

	case syntax.KindReturnStatement:
		if node.Len() > 0 {
			frame.ReturnVal = bindAndEval(ctx, frame, node.At(0))
		}
		frame.Returned = true

	default:
		// statement kinds with no constant-evaluable effect are silently
		// skipped (declarations without initializers, timing controls).
	}
}

// runForLoop expects children laid out as [init, cond, step, body], the
// statement-for shape. A generate-for node adds a leading genvar leaf and is
// elaborated by the generate package, not here.
func runForLoop(ctx *Context, frame *Frame, node *syntax.Node) {
	if node.Len() < 4 {
		return
	}
	bindAndEval(ctx, frame, node.At(0))
	for {
		if frame.Returned || !ctx.step() {
			return
		}
		cond := bindAndEval(ctx, frame, node.At(1))
		civ, ok := cond.Integer()
		if !ok || civ.AsInt64() == 0 {
			return
		}
		runStatementList(ctx, frame, node.At(3))
		bindAndEval(ctx, frame, node.At(2))
	}
}

// runCaseStatement expects children [controlling, item, item, ...], each
// item a KindCaseItem whose last child is the body and whose preceding
// children are label expressions; an item with zero label children is the
// default.
func runCaseStatement(ctx *Context, frame *Frame, node *syntax.Node) {
	if node.Len() == 0 {
		return
	}
	controlling := bindAndEval(ctx, frame, node.At(0))
	civ, ok := controlling.Integer()
	if !ok {
		return
	}

	var defaultItem *syntax.Node
	for i := 1; i < node.Len(); i++ {
		item := node.At(i)
		if item.Kind != syntax.KindCaseItem || item.Len() == 0 {
			continue
		}
		labelCount := item.Len() - 1
		if labelCount == 0 {
			defaultItem = item
			continue
		}
		for l := 0; l < labelCount; l++ {
			label := bindAndEval(ctx, frame, item.At(l))
			liv, ok := label.Integer()
			if ok && liv.CaseEquals(civ) {
				runStatementList(ctx, frame, item.At(item.Len()-1))
				return
			}
		}
	}
	if defaultItem != nil {
		runStatementList(ctx, frame, defaultItem.At(defaultItem.Len()-1))
	}
}

// bindAndEval binds a raw expression syntax node against the subroutine's
// local scope (so names resolve to its parameters/locals) and evaluates it
// in the current frame.
func bindAndEval(ctx *Context, frame *Frame, node *syntax.Node) constant.Value {
	if node == nil || ctx.Resolver == nil || ctx.Sink == nil {
		return constant.Error()
	}
	bctx := bind.Context{
		Scope:       frame.Subroutine.Body,
		Location:    symbols.MaxLocation(frame.Subroutine.Body),
		Compilation: ctx.Resolver,
		Diag:        ctx.Sink,
		Flags:       bind.FlagConstantRequired,
	}
	expr := bind.BindExpression(bctx, node)
	return Eval(ctx, expr)
}
