package typing

// Field is one named member of a struct or union type, packed or
// unpacked. Offset is only meaningful for packed members (bit offset from
// the LSB); unpacked members leave it zero.
type Field struct {
	Name   string
	Type   Type
	Offset int
}

// PackedStructType / PackedUnionType are canonical when their member
// sequence and member types are canonical -- i.e. two packed structs with
// the same ordered (name, type) sequence intern to the same pointer.
type PackedStructType struct {
	Name   string
	Fields []Field
	Width  int
	Signed bool
}

func (p *PackedStructType) Kind() Kind   { return KindPackedStruct }
func (p *PackedStructType) Repr() string { return p.Name }

type PackedUnionType struct {
	Name   string
	Fields []Field
	Width  int
	Signed bool
}

func (u *PackedUnionType) Kind() Kind   { return KindPackedUnion }
func (u *PackedUnionType) Repr() string { return u.Name }

// UnpackedStructType / UnpackedUnionType are not interned by content --
// every declaration produces a distinct named type, matching that unpacked
// aggregates are nominal rather than structural in practice.
type UnpackedStructType struct {
	Name   string
	Fields []Field
}

func (s *UnpackedStructType) Kind() Kind   { return KindUnpackedStruct }
func (s *UnpackedStructType) Repr() string { return s.Name }

type UnpackedUnionType struct {
	Name   string
	Fields []Field
}

func (u *UnpackedUnionType) Kind() Kind   { return KindUnpackedUnion }
func (u *UnpackedUnionType) Repr() string { return u.Name }

// FieldOffset returns the bit offset of a named field in a packed
// aggregate, used when binding a member-access expression into a part
// select.
func (p *PackedStructType) FieldOffset(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
