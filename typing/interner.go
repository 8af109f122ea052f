package typing

import (
	"strconv"
	"strings"

	"slangcore/arena"
)

// Interner owns every canonicalized Type produced during one compilation.
// A Compilation holds exactly one Interner; nothing in this package or its
// callers keeps a process-wide type table, per the no-singletons rule.
type Interner struct {
	arena *arena.Arena

	integrals *arena.PointerMap[integralKey, *IntegralType]
	packedS   *arena.PointerMap[string, *PackedStructType]
	packedU   *arena.PointerMap[string, *PackedUnionType]
	reals     *arena.PointerMap[bool, *RealType]

	errorType    *singleton
	voidType     *singleton
	nullType     *singleton
	unboundType  *singleton
	eventType    *singleton
	stringType   *singleton
	chandleType  *singleton
}

// NewInterner creates an Interner backed by the given Arena and pre-builds
// the handful of singleton types.
func NewInterner(a *arena.Arena) *Interner {
	return &Interner{
		arena:     a,
		integrals: arena.NewPointerMap[integralKey, *IntegralType](a),
		packedS:   arena.NewPointerMap[string, *PackedStructType](a),
		packedU:   arena.NewPointerMap[string, *PackedUnionType](a),
		reals:     arena.NewPointerMap[bool, *RealType](a),

		errorType:   &singleton{kind: KindError, name: "<error>"},
		voidType:    &singleton{kind: KindVoid, name: "void"},
		nullType:    &singleton{kind: KindNull, name: "null"},
		unboundType: &singleton{kind: KindUnbound, name: "$"},
		eventType:   &singleton{kind: KindEvent, name: "event"},
		stringType:  &singleton{kind: KindString, name: "string"},
		chandleType: &singleton{kind: KindCHandle, name: "chandle"},
	}
}

func (in *Interner) Error() Type   { return in.errorType }
func (in *Interner) Void() Type    { return in.voidType }
func (in *Interner) Null() Type    { return in.nullType }
func (in *Interner) Unbound() Type { return in.unboundType }
func (in *Interner) Event() Type   { return in.eventType }
func (in *Interner) StringType() Type { return in.stringType }
func (in *Interner) CHandle() Type { return in.chandleType }

// GetIntegral returns the canonical IntegralType for (width, signed,
// fourState), allocating it on first request and returning the identical
// pointer on every later request with the same triple. This is the
// canonicalization invariant the spec requires: two type-resolution calls
// producing equal (width, signed, four-state) must yield the same pointer.
func (in *Interner) GetIntegral(width int, signed, fourState bool) *IntegralType {
	key := integralKey{width: width, signed: signed, fourState: fourState}
	if t, ok := in.integrals.Get(key); ok {
		return t
	}
	t := &IntegralType{Width: width, Signed: signed, FourState: fourState}
	in.integrals.Set(key, t)
	return t
}

func (in *Interner) GetReal(short bool) *RealType {
	if t, ok := in.reals.Get(short); ok {
		return t
	}
	t := &RealType{Short: short}
	in.reals.Set(short, t)
	return t
}

// packedFieldKey renders a field sequence into a canonicalization key. Two
// packed structs/unions with the same ordered (name, type) sequence and the
// same overall width/signedness produce the same key and therefore the same
// pointer, matching that packed aggregates are structural, not nominal.
func packedFieldKey(width int, signed bool, fields []Field) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(width))
	b.WriteByte(':')
	if signed {
		b.WriteByte('s')
	}
	for _, f := range fields {
		b.WriteByte('|')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Type.Repr())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Offset))
	}
	return b.String()
}

// GetPackedStruct returns the canonical PackedStructType for this field
// sequence, interning it by structural content. The Name is carried along
// for display but is not part of the canonicalization key -- an anonymous
// packed struct literal and a typedef'd one with identical fields intern to
// the same type, matching that packed structs are structural.
func (in *Interner) GetPackedStruct(name string, fields []Field, width int, signed bool) *PackedStructType {
	key := packedFieldKey(width, signed, fields)
	if t, ok := in.packedS.Get(key); ok {
		return t
	}
	t := &PackedStructType{Name: name, Fields: fields, Width: width, Signed: signed}
	in.packedS.Set(key, t)
	return t
}

func (in *Interner) GetPackedUnion(name string, fields []Field, width int, signed bool) *PackedUnionType {
	key := packedFieldKey(width, signed, fields)
	if t, ok := in.packedU.Get(key); ok {
		return t
	}
	t := &PackedUnionType{Name: name, Fields: fields, Width: width, Signed: signed}
	in.packedU.Set(key, t)
	return t
}

// NewUnpackedStruct / NewUnpackedUnion / NewEnum / NewUnpackedArray /
// NewAlias / NewClassHandle are deliberately not canonicalized: each
// declaration site produces a fresh, distinct type, matching that these
// variants are nominal in the language (two structurally-identical struct
// declarations are still two different types).
func (in *Interner) NewUnpackedStruct(name string, fields []Field) *UnpackedStructType {
	return &UnpackedStructType{Name: name, Fields: fields}
}

func (in *Interner) NewUnpackedUnion(name string, fields []Field) *UnpackedUnionType {
	return &UnpackedUnionType{Name: name, Fields: fields}
}

func (in *Interner) NewEnum(name string, base *IntegralType, members []*EnumMember) *EnumType {
	return &EnumType{Name: name, Base: base, Members: members}
}

func (in *Interner) NewUnpackedArray(elem Type, kind ArrayKind, left, right int, indexType Type, bound int) *UnpackedArrayType {
	return &UnpackedArrayType{Elem: elem, ArrayKind: kind, Left: left, Right: right, IndexType: indexType, Bound: bound}
}

func (in *Interner) NewAlias(name string, target Type) *AliasType {
	return &AliasType{Name: name, Target: target}
}

func (in *Interner) NewClassHandle(className string) *ClassHandleType {
	return &ClassHandleType{ClassName: className}
}
