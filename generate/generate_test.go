package generate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/bind"
	"slangcore/diag"
	"slangcore/eval"
	"slangcore/generate"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

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

func leaf(kind syntax.Kind, text string) *syntax.Node {
	return syntax.NewLeaf(kind, diag.SourceRange{}, text)
}

func newGenerator(f *fakeCompilation, record *[][2]string, maxSteps int) *generate.Generator {
	a := arena.New()
	evalCtx := eval.NewContext(f.bag, 10000, 64, diag.SourceLocation{}, f, f)
	materializer := func(scope *symbols.Scope, item *syntax.Node) {
		*record = append(*record, [2]string{scope.Owner().SymbolName(), item.Text})
	}
	return generate.NewGenerator(a, f, f, materializer, evalCtx, maxSteps)
}

func namedBlock(name string, items ...*syntax.Node) *syntax.Node {
	block := syntax.New(syntax.KindGenerateBlock, diag.SourceRange{}, items...)
	block.Text = name
	return block
}

func TestElaborateIfTakenBranchMaterializesItems(t *testing.T) {
	f := newFake()
	var record [][2]string
	g := newGenerator(f, &record, 1000)

	root := symbols.NewScope(arena.New(), nil)
	item := leaf(syntax.KindIdentifierName, "thing")
	node := syntax.New(syntax.KindGenerateIf, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "1"),
		namedBlock("blk", item),
	)

	syms := g.Elaborate(root, node)
	require.Len(t, syms, 1)
	require.True(t, syms[0].Active)
	require.Equal(t, "blk", syms[0].SymbolName())

	syms[0].Body.Materialize()
	require.Len(t, record, 1)
	require.Equal(t, "thing", record[0][1])
}

func TestElaborateIfElseBranchWhenConditionFalse(t *testing.T) {
	f := newFake()
	var record [][2]string
	g := newGenerator(f, &record, 1000)

	root := symbols.NewScope(arena.New(), nil)
	node := syntax.New(syntax.KindGenerateIf, diag.SourceRange{},
		leaf(syntax.KindIntegerLiteralExpression, "0"),
		namedBlock("then_blk", leaf(syntax.KindIdentifierName, "a")),
		namedBlock("else_blk", leaf(syntax.KindIdentifierName, "b")),
	)

	syms := g.Elaborate(root, node)
	require.Len(t, syms, 2)
	require.False(t, syms[0].Active)
	require.True(t, syms[1].Active)

	syms[0].Body.Materialize()
	syms[1].Body.Materialize()
	require.Len(t, record, 1)
	require.Equal(t, "b", record[0][1])
}

func TestElaborateForProducesOneSymbolPerIteration(t *testing.T) {
	f := newFake()
	var record [][2]string
	g := newGenerator(f, &record, 1000)

	root := symbols.NewScope(arena.New(), nil)

	condNode := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIdentifierName, "i"),
		leaf(syntax.KindIntegerLiteralExpression, "3"),
	)
	condNode.Op = "<"

	stepNode := syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
		leaf(syntax.KindIdentifierName, "i"),
		leaf(syntax.KindIntegerLiteralExpression, "1"),
	)
	stepNode.Op = "+"

	node := syntax.New(syntax.KindGenerateFor, diag.SourceRange{},
		leaf(syntax.KindIdentifierName, "i"),
		leaf(syntax.KindIntegerLiteralExpression, "0"),
		condNode,
		stepNode,
		namedBlock("g", leaf(syntax.KindIdentifierName, "u")),
	)
	node.Text = "g"

	syms := g.Elaborate(root, node)
	require.Len(t, syms, 3)
	require.Equal(t, "g[0]", syms[0].SymbolName())
	require.Equal(t, "g[1]", syms[1].SymbolName())
	require.Equal(t, "g[2]", syms[2].SymbolName())
	for _, s := range syms {
		require.True(t, s.Active)
	}
}

func TestElaborateForStepBudgetStopsEarlyWithDiagnostic(t *testing.T) {
	f := newFake()
	var record [][2]string
	g := newGenerator(f, &record, 2) // one step for the for-node itself, one for the first iteration check

	root := symbols.NewScope(arena.New(), nil)

	// An unconditionally-true loop test (`1`) with no dependency on i, so
	// only the step budget -- never the condition -- can end it.
	node := syntax.New(syntax.KindGenerateFor, diag.SourceRange{},
		leaf(syntax.KindIdentifierName, "i"),
		leaf(syntax.KindIntegerLiteralExpression, "0"),
		leaf(syntax.KindIntegerLiteralExpression, "1"),
		syntax.New(syntax.KindBinaryExpression, diag.SourceRange{},
			leaf(syntax.KindIdentifierName, "i"),
			leaf(syntax.KindIntegerLiteralExpression, "1"),
		),
		namedBlock("g"),
	)
	node.Children[3].Op = "+"
	node.Text = "g"

	syms := g.Elaborate(root, node)
	require.Less(t, len(syms), 1000)

	found := false
	for _, d := range f.bag.Diagnostics() {
		if d.Code == diag.CodeGenerateStepLimit {
			found = true
		}
	}
	require.True(t, found)
}
