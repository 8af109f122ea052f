package typing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/arena"
	"slangcore/typing"
)

func TestIntegralTypesCanonicalizeByTriple(t *testing.T) {
	in := typing.NewInterner(arena.New())

	a := in.GetIntegral(8, true, false)
	b := in.GetIntegral(8, true, false)
	c := in.GetIntegral(8, false, false)

	require.True(t, a == b, "equal (width, signed, fourState) triples must intern to the same pointer")
	require.False(t, a == c)
	require.True(t, typing.Equal(a, b))
}

func TestBuiltinAccessorsAgreeWithGetIntegral(t *testing.T) {
	in := typing.NewInterner(arena.New())

	require.True(t, in.Int() == in.GetIntegral(32, true, false))
	require.True(t, in.Byte() == in.GetIntegral(8, true, false))
	require.True(t, in.Logic() == in.Reg(), "logic and reg are the same underlying type")
}

func TestPackedStructCanonicalizesByFieldSequence(t *testing.T) {
	in := typing.NewInterner(arena.New())
	fields := []typing.Field{
		{Name: "a", Type: in.Bit(), Offset: 1},
		{Name: "b", Type: in.Bit(), Offset: 0},
	}

	s1 := in.GetPackedStruct("pkt_t", fields, 2, false)
	s2 := in.GetPackedStruct("anon", fields, 2, false)

	require.True(t, s1 == s2, "structurally identical packed structs intern to the same pointer regardless of name")
}

func TestUnpackedStructsAreNominalNotInterned(t *testing.T) {
	in := typing.NewInterner(arena.New())
	fields := []typing.Field{{Name: "x", Type: in.Int()}}

	s1 := in.NewUnpackedStruct("point_t", fields)
	s2 := in.NewUnpackedStruct("point_t", fields)

	require.False(t, s1 == s2, "every unpacked struct declaration is a distinct type")
}

func TestCommonIntegralTypeWidensAndPropagatesFourState(t *testing.T) {
	in := typing.NewInterner(arena.New())
	eight := in.GetIntegral(8, true, false)
	logic16 := in.GetIntegral(16, false, true)

	common := typing.CommonIntegralType(in, eight, logic16)

	require.Equal(t, 16, common.Width)
	require.False(t, common.Signed, "mixed signedness yields unsigned")
	require.True(t, common.FourState)
}

func TestCanAssignAllowsNumericFamilyAndPoisonedOperands(t *testing.T) {
	in := typing.NewInterner(arena.New())

	require.True(t, typing.CanAssign(in.Int(), in.Real()))
	require.True(t, typing.CanAssign(in.Int(), in.Error()))
	require.False(t, typing.CanAssign(in.StringType(), in.Int()))
}

func TestAliasUnwrapsForEquality(t *testing.T) {
	in := typing.NewInterner(arena.New())
	base := in.Int()
	alias := in.NewAlias("my_int_t", base)

	require.True(t, typing.Equal(alias, base))
	require.Equal(t, "my_int_t", alias.Repr())
}
