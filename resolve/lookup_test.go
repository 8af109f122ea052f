package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/diag"
	"slangcore/resolve"
	"slangcore/symbols"
)

func newVar(name string) *symbols.VariableSymbol {
	return &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: name}}
}

func TestLookupFindsUnqualifiedNameInOwnScope(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)
	v := newVar("count")
	scope.AddMember(v, bag)

	sym, ok := resolve.Lookup(resolve.Request{
		Name:     "count",
		From:     scope,
		Location: symbols.MaxLocation(scope),
	}, resolve.Config{}, bag)

	require.True(t, ok)
	require.Same(t, v, sym)
}

func TestLookupClimbsToParentScope(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	parent := symbols.NewScope(a, nil)
	v := newVar("outer")
	parent.AddMember(v, bag)

	child := symbols.NewNestedScope(a, nil, parent)

	sym, ok := resolve.Lookup(resolve.Request{
		Name:     "outer",
		From:     child,
		Location: symbols.MaxLocation(child),
	}, resolve.Config{}, bag)

	require.True(t, ok)
	require.Same(t, v, sym)
}

func TestLookupSameScopeDeclarationBeatsWildcardImport(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)

	pkg := symbols.NewScope(a, nil)
	imported := newVar("x")
	pkg.AddMember(imported, bag)

	scope := symbols.NewScope(a, nil)
	local := newVar("x")
	scope.AddMember(local, bag)
	scope.AddWildcardImport(pkg, symbols.MinLocation(scope))

	sym, ok := resolve.Lookup(resolve.Request{
		Name:     "x",
		From:     scope,
		Location: symbols.MaxLocation(scope),
	}, resolve.Config{}, bag)

	require.True(t, ok)
	require.Same(t, local, sym)
}

func TestLookupFallsBackToWildcardImportOnMiss(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)

	pkg := symbols.NewScope(a, nil)
	imported := newVar("y")
	pkg.AddMember(imported, bag)

	scope := symbols.NewScope(a, nil)
	scope.AddWildcardImport(pkg, symbols.MinLocation(scope))

	sym, ok := resolve.Lookup(resolve.Request{
		Name:     "y",
		From:     scope,
		Location: symbols.MaxLocation(scope),
	}, resolve.Config{}, bag)

	require.True(t, ok)
	require.Same(t, imported, sym)
}

func TestLookupUnresolvedNameSuggestsTypoCorrection(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)
	scope.AddMember(newVar("counter"), bag)

	_, ok := resolve.Lookup(resolve.Request{
		Name:      "countr",
		From:      scope,
		Location:  symbols.MaxLocation(scope),
		Mode:      resolve.ModeConstant,
		SourceLoc: diag.NoLocation,
	}, resolve.Config{TypoCorrectionLimit: 3}, bag)

	require.False(t, ok)
	diags := bag.Diagnostics()
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "counter")
}

func TestLookupMemberAccessThroughPackageScope(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)

	pkg := &symbols.PackageSymbol{Base: symbols.Base{Kind: symbols.KindPackage, Name: "pkg"}}
	pkg.Body = symbols.NewScope(a, pkg)
	member := newVar("value")
	pkg.Body.AddMember(member, bag)

	root := symbols.NewScope(a, nil)
	root.AddMember(pkg, bag)

	sym, ok := resolve.Lookup(resolve.Request{
		Name:     "pkg.value",
		From:     root,
		Location: symbols.MaxLocation(root),
	}, resolve.Config{}, bag)

	require.True(t, ok)
	require.Same(t, member, sym)
}
