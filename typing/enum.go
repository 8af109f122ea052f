package typing

import "slangcore/constant"

// EnumMember is one `name = value` entry of an enum type. It is a plain
// struct here, not a full Symbol, so the typing package never needs to
// import symbols (which imports typing for Symbol.Type); the symbols
// package wraps each EnumMember in an EnumMemberSymbol that also carries
// declaration order and a parent scope.
type EnumMember struct {
	Name  string
	Value constant.Value
}

// EnumType is a user-declared enum; its Base is always an IntegralType
// (the enum's underlying representation, defaulting to `int` when the
// declaration omits one).
type EnumType struct {
	Name    string
	Base    *IntegralType
	Members []*EnumMember
}

func (e *EnumType) Kind() Kind   { return KindEnum }
func (e *EnumType) Repr() string { return e.Name }

// Lookup finds a member by name, used by name lookup when resolving an
// enum-qualified value (Color::RED) or an unqualified member visible via
// the enum's containing scope.
func (e *EnumType) Lookup(name string) (*EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
