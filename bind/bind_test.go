package bind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/bind"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// fakeCompilation is the minimal bind.TypeResolver + bind.DiagSink double
// used by these tests, standing in for the real Compilation.
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

func newCtx(f *fakeCompilation, scope *symbols.Scope) bind.Context {
	return bind.Context{
		Scope:       scope,
		Location:    symbols.MaxLocation(scope),
		Compilation: f,
		Diag:        f,
	}
}

func leaf(kind syntax.Kind, text string) *syntax.Node {
	return syntax.NewLeaf(kind, diag.SourceRange{}, text)
}

func TestBindIntegerLiteralDefaultsTo32BitSigned(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	expr := bind.BindExpression(newCtx(f, scope), leaf(syntax.KindIntegerLiteralExpression, "42"))

	it, ok := typing.AsIntegral(expr.Type)
	require.True(t, ok)
	require.Equal(t, 32, it.Width)
	require.True(t, it.Signed)
	v, ok := expr.Constant.Integer()
	require.True(t, ok)
	require.Equal(t, int64(42), v.AsInt64())
}

func TestBindBinaryAddFoldsConstantOperands(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	node := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "1"),
		leaf(syntax.KindIntegerLiteralExpression, "2"),
	)
	node.Op = "+"

	expr := bind.BindExpression(ctx, node)
	require.Equal(t, bind.ExprBinaryOp, expr.Kind)
	v, ok := expr.Constant.Integer()
	require.True(t, ok)
	require.Equal(t, int64(3), v.AsInt64())
}

func TestBindComparisonAlwaysYieldsOneBitResult(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	node := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "5"),
		leaf(syntax.KindIntegerLiteralExpression, "5"),
	)
	node.Op = "=="

	expr := bind.BindExpression(ctx, node)
	it, ok := typing.AsIntegral(expr.Type)
	require.True(t, ok)
	require.Equal(t, 1, it.Width)
	v, ok := expr.Constant.Integer()
	require.True(t, ok)
	require.Equal(t, int64(1), v.AsInt64())
}

func TestBindNamedValueResolvesThroughScope(t *testing.T) {
	f := newFake()
	a := arena.New()
	scope := symbols.NewScope(a, nil)
	v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: "count"}, Type: f.in.Int()}
	scope.AddMember(v, f.bag)

	ctx := newCtx(f, scope)
	expr := bind.BindExpression(ctx, leaf(syntax.KindIdentifierName, "count"))

	require.Equal(t, bind.ExprNamedValue, expr.Kind)
	require.True(t, typing.Equal(expr.Type, f.in.Int()))
	data := expr.Payload.(bind.NamedValueData)
	require.Same(t, v, data.Symbol)
}

func TestBindNamedValueUnresolvedReportsDiagnostic(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	expr := bind.BindExpression(ctx, leaf(syntax.KindIdentifierName, "nope"))
	require.Equal(t, bind.ExprInvalid, expr.Kind)
	require.Len(t, f.bag.Diagnostics(), 1)
}

func TestConvertAssignmentInsertsImplicitConversionOnWidthMismatch(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	value := bind.BindExpression(ctx, leaf(syntax.KindIntegerLiteralExpression, "7"))
	wide := f.in.GetIntegral(64, true, false)
	converted := bind.ConvertAssignment(ctx, wide, value)

	require.Equal(t, bind.ExprConversion, converted.Kind)
	require.True(t, typing.Equal(converted.Type, wide))
	v, ok := converted.Constant.Integer()
	require.True(t, ok)
	require.Equal(t, int64(7), v.AsInt64())
}

func TestConvertAssignmentLeavesMatchingTypeUnchanged(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	value := bind.BindExpression(ctx, leaf(syntax.KindIntegerLiteralExpression, "7"))
	same := bind.ConvertAssignment(ctx, value.Type, value)
	require.Same(t, value, same)
}

func TestBindConditionalUnifiesBranchTypes(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	node := syntax.New(syntax.KindConditionalExpression, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "1"),
		leaf(syntax.KindIntegerLiteralExpression, "5"),
		leaf(syntax.KindIntegerLiteralExpression, "9"),
	)
	expr := bind.BindExpression(ctx, node)
	require.Equal(t, bind.ExprConditionalOp, expr.Kind)
	it, ok := typing.AsIntegral(expr.Type)
	require.True(t, ok)
	require.Equal(t, 32, it.Width)
}

func TestBindCaseItemsUnifiesControllingAndLabelWidths(t *testing.T) {
	f := newFake()
	scope := symbols.NewScope(arena.New(), nil)
	ctx := newCtx(f, scope)

	controlling := leaf(syntax.KindIntegerLiteralExpression, "3")
	wide := leaf(syntax.KindIntegerLiteralExpression, "300")

	boundControlling, labels := bind.BindCaseItems(ctx, controlling, []*syntax.Node{wide})
	require.True(t, typing.Equal(boundControlling.Type, labels[0].Type))
}
