package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/bind"
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/eval"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// fakeCompilation is the minimal bind.TypeResolver + bind.DiagSink double,
// mirroring the one in bind_test.go.
type fakeCompilation struct {
	in  *typing.Interner
	bag *diag.Bag
}

func newFake() *fakeCompilation {
	a := arena.New()
	return &fakeCompilation{in: typing.NewInterner(a), bag: diag.NewBag(0)}
}

func (f *fakeCompilation) Interner() *typing.Interner { return f.in }
func (f *fakeCompilation) ResolveType(node interface{}, ctx *bind.Context) typing.Type {
	return f.in.Error()
}
func (f *fakeCompilation) Diagnostics() *diag.Bag   { return f.bag }
func (f *fakeCompilation) TypoCorrectionLimit() int { return 3 }

func newBindCtx(f *fakeCompilation, scope *symbols.Scope) bind.Context {
	return bind.Context{Scope: scope, Location: symbols.MaxLocation(scope), Compilation: f, Diag: f}
}

func leaf(kind syntax.Kind, text string) *syntax.Node {
	return syntax.NewLeaf(kind, diag.SourceRange{}, text)
}

func newEvalCtx(f *fakeCompilation, maxSteps, maxDepth int) *eval.Context {
	return eval.NewContext(f.bag, maxSteps, maxDepth, diag.SourceLocation{}, f, f)
}

func TestEvalIntegerLiteral(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	expr := bind.BindExpression(newBindCtx(f, scope), leaf(syntax.KindIntegerLiteralExpression, "42"))

	v := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := v.Integer()
	require.True(t, ok)
	require.Equal(t, int64(42), iv.AsInt64())
}

func TestEvalBinaryAddMatchesBoundConstant(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newBindCtx(f, scope)

	node := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "10"),
		leaf(syntax.KindIntegerLiteralExpression, "32"),
	)
	node.Op = "+"
	expr := bind.BindExpression(ctx, node)

	v := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := v.Integer()
	require.True(t, ok)
	require.Equal(t, int64(42), iv.AsInt64())
}

func TestEvalNamedValueFrameLocalTakesPrecedence(t *testing.T) {
	f := newFake()
	a := arena.New()
	scope := symbols.NewScope(a, nil)
	v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: "x"}, Type: f.in.Int()}
	scope.AddMember(v, f.bag)

	expr := bind.BindExpression(newBindCtx(f, scope), leaf(syntax.KindIdentifierName, "x"))

	ectx := newEvalCtx(f, 100, 10)
	ectx.Frames = append(ectx.Frames, &eval.Frame{Locals: map[symbols.Symbol]eval.Local{
		v: {Value: constant.Integer(constant.NewInt(32, true, 99))},
	}})

	result := eval.Eval(ectx, expr)
	iv, ok := result.Integer()
	require.True(t, ok)
	require.Equal(t, int64(99), iv.AsInt64())
}

func TestEvalNamedValueUnresolvedIsNotConstant(t *testing.T) {
	f := newFake()
	a := arena.New()
	scope := symbols.NewScope(a, nil)
	v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: "x"}, Type: f.in.Int()}
	scope.AddMember(v, f.bag)

	expr := bind.BindExpression(newBindCtx(f, scope), leaf(syntax.KindIdentifierName, "x"))

	ectx := newEvalCtx(f, 100, 10)
	result := eval.Eval(ectx, expr)
	require.Equal(t, constant.ValueError, result.Kind())
	require.NotEmpty(t, f.bag.Diagnostics())
}

func TestEvalNamedValueReadsParameterValue(t *testing.T) {
	f := newFake()
	a := arena.New()
	scope := symbols.NewScope(a, nil)
	p := &symbols.ParameterSymbol{
		Base:  symbols.Base{Kind: symbols.KindParameter, Name: "WIDTH"},
		Type:  f.in.Int(),
		Value: constant.Integer(constant.NewInt(32, true, 8)),
	}
	scope.AddMember(p, f.bag)

	expr := bind.BindExpression(newBindCtx(f, scope), leaf(syntax.KindIdentifierName, "WIDTH"))
	result := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := result.Integer()
	require.True(t, ok)
	require.Equal(t, int64(8), iv.AsInt64())
}

func TestEvalAssignmentStoresThroughElementSelectLValue(t *testing.T) {
	f := newFake()
	a := arena.New()
	scope := symbols.NewScope(a, nil)
	v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: "r"}, Type: f.in.GetIntegral(8, false, false)}
	scope.AddMember(v, f.bag)
	ctx := newBindCtx(f, scope)

	target := bind.BindExpression(bind.Context{Scope: scope, Location: symbols.MaxLocation(scope), Compilation: f, Diag: f},
		syntax.New(syntax.KindElementSelectExpression, diag.SourceRange{},
			leaf(syntax.KindIdentifierName, "r"),
			leaf(syntax.KindIntegerLiteralExpression, "2"),
		))

	assignNode := syntax.New(syntax.KindAssignmentExpression, diag.SourceRange{})
	assignNode.Op = "="
	assignExpr := &bind.Expression{
		Kind: bind.ExprAssignment,
		Type: target.Type,
		Payload: bind.AssignmentData{
			Target: target,
			Value:  bind.BindExpression(ctx, leaf(syntax.KindIntegerLiteralExpression, "1")),
		},
	}

	ectx := newEvalCtx(f, 100, 10)
	ectx.Frames = append(ectx.Frames, &eval.Frame{Locals: map[symbols.Symbol]eval.Local{
		v: {Value: constant.Integer(constant.NewInt(8, false, 0))},
	}})

	eval.Eval(ectx, assignExpr)

	stored := ectx.CurrentFrame().Locals[v].Value.(constant.Value)
	iv, ok := stored.Integer()
	require.True(t, ok)
	require.Equal(t, byte('1'), iv.Bit(2))
	require.Equal(t, byte('0'), iv.Bit(0))
}

func TestEvalConditionalSelectsBranchOnKnownCondition(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newBindCtx(f, scope)

	node := syntax.New(syntax.KindConditionalExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "0"),
		leaf(syntax.KindIntegerLiteralExpression, "11"),
		leaf(syntax.KindIntegerLiteralExpression, "22"),
	)
	expr := bind.BindExpression(ctx, node)
	result := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := result.Integer()
	require.True(t, ok)
	require.Equal(t, int64(22), iv.AsInt64())
}

func TestEvalStepBudgetExhaustionReportsDiagnostic(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newBindCtx(f, scope)

	node := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "1"),
		leaf(syntax.KindIntegerLiteralExpression, "2"),
	)
	node.Op = "+"
	expr := bind.BindExpression(ctx, node)

	ectx := newEvalCtx(f, 1, 10) // one step: the binary node itself exhausts it before its operands
	result := eval.Eval(ectx, expr)
	require.Equal(t, constant.ValueError, result.Kind())
	found := false
	for _, d := range f.bag.Diagnostics() {
		if d.Code == diag.CodeConstexprStepLimit {
			found = true
		}
	}
	require.True(t, found)
}

func TestEvalCallRecursionHitsMaxDepth(t *testing.T) {
	f := newFake()
	a := arena.New()
	unitScope := symbols.NewScope(a, nil)

	sub := &symbols.SubroutineSymbol{
		Base:       symbols.Base{Kind: symbols.KindSubroutine, Name: "recur"},
		ReturnType: f.in.Int(),
		IsFunction: true,
	}
	unitScope.AddMember(sub, f.bag)
	body := symbols.NewNestedScope(a, sub, unitScope)
	sub.Body = body

	// recur's body is `return recur();` -- a self-call with no base case, so
	// interpretation only ever stops via the depth budget.
	callNode := syntax.New(syntax.KindInvocationExpression, diag.SourceRange{},
		leaf(syntax.KindIdentifierName, "recur"),
	)
	returnNode := syntax.New(syntax.KindReturnStatement, diag.SourceRange{}, callNode)
	sub.BodySyntax = returnNode

	callExpr := &bind.Expression{
		Kind:    bind.ExprCall,
		Type:    f.in.Int(),
		Payload: bind.CallData{Subroutine: sub},
	}

	ectx := newEvalCtx(f, 100000, 8)
	result := eval.Eval(ectx, callExpr)
	require.Equal(t, constant.ValueError, result.Kind())
	found := false
	for _, d := range f.bag.Diagnostics() {
		if d.Code == diag.CodeConstexprRecursion {
			found = true
		}
	}
	require.True(t, found)
}

func TestEvalSystemCallBits(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newBindCtx(f, scope)

	litNode := leaf(syntax.KindIntegerLiteralExpression, "7")
	callNode := syntax.New(syntax.KindInvocationExpression, diag.SourceRange{}, litNode)
	callNode.Op = "$bits"
	expr := bind.BindExpression(ctx, callNode)

	result := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := result.Integer()
	require.True(t, ok)
	require.Equal(t, int64(32), iv.AsInt64())
}

func TestEvalSystemCallClog2(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newBindCtx(f, scope)

	litNode := leaf(syntax.KindIntegerLiteralExpression, "9")
	callNode := syntax.New(syntax.KindInvocationExpression, diag.SourceRange{}, litNode)
	callNode.Op = "$clog2"
	expr := bind.BindExpression(ctx, callNode)

	result := eval.Eval(newEvalCtx(f, 100, 10), expr)
	iv, ok := result.Integer()
	require.True(t, ok)
	require.Equal(t, int64(4), iv.AsInt64())
}
