package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/diag"
	"slangcore/symbols"
)

func newVar(name string) *symbols.VariableSymbol {
	return &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: name}}
}

func TestAddMemberKeepsFirstOnDuplicateName(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)

	first := newVar("x")
	second := newVar("x")

	scope.AddMember(first, bag)
	scope.AddMember(second, bag)

	require.Equal(t, 1, bag.ErrorCount())

	got, ok := scope.Lookup("x", symbols.MaxLocation(scope), false)
	require.True(t, ok)
	require.Same(t, first, got)

	require.Len(t, scope.Members(), 2, "both members are kept in the member list even though only the first is name-indexed")
}

func TestLookupRespectsDeclarationOrderUnlessAllowDeclaredAfter(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)

	first := newVar("a")
	scope.AddMember(first, bag)
	locBeforeSecond := symbols.At(first)

	second := newVar("b")
	scope.AddMember(second, bag)

	_, ok := scope.Lookup("b", locBeforeSecond, false)
	require.False(t, ok, "b is declared after the lookup location")

	_, ok = scope.Lookup("b", locBeforeSecond, true)
	require.True(t, ok, "AllowDeclaredAfter ignores ordering")
}

func TestMaterializeRunsDeferredEntriesExactlyOnce(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)

	runs := 0
	scope.Defer(func(s *symbols.Scope) {
		runs++
		s.AddMember(newVar("lazy"), bag)
	})

	scope.Materialize()
	scope.Materialize()

	require.Equal(t, 1, runs)
	_, ok := scope.Lookup("lazy", symbols.MaxLocation(scope), false)
	require.True(t, ok)
}

func TestFinalizeRejectsFurtherInserts(t *testing.T) {
	a := arena.New()
	bag := diag.NewBag(0)
	scope := symbols.NewScope(a, nil)
	scope.Finalize()

	scope.AddMember(newVar("late"), bag)
	require.Equal(t, 1, bag.ErrorCount())
}
