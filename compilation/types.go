package compilation

import (
	"slangcore/bind"
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/eval"
	"slangcore/resolve"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// ResolveType turns a type-syntax node into an interned typing.Type,
// implementing bind.TypeResolver's ResolveType method. node is typed as
// interface{} in the TypeResolver contract (bind stays independent of the
// syntax package's node shape for type references specifically, since a few
// call sites resolve a type from something other than raw syntax); this
// core always passes a *syntax.Node.
//
// Node-shape convention for the type-syntax subset this core consumes:
//   - KindIntegerType: Text names a built-in keyword (bit, logic, reg, byte,
//     shortint, int, longint, integer, time, real, shortreal, string, void,
//     chandle, event); Op, if "signed" or "unsigned", overrides the
//     keyword's default signedness.
//   - KindNamedType: Text is the (possibly scoped) type name, resolved via
//     ordinary name lookup in ModeType.
//   - KindPackedArrayType: At(0) the element type, At(1)/At(2) the packed
//     dimension's left/right bound expressions (self-determined constants).
//   - KindUnpackedArrayType: At(0) the element type; Op selects "queue",
//     "dynamic", or "fixed" (the default); a fixed array additionally
//     carries At(1)/At(2) bound expressions.
//   - KindEnumType / KindStructType / KindUnionType: Text is the type's own
//     name (may be "" for an anonymous type); Children are member
//     declarations (KindDataDeclaration-shaped: Text the member name, At(0)
//     the member's own type, or for an enum member an optional value
//     expression at At(0)).
func (c *Compilation) ResolveType(node interface{}, ctx *bind.Context) typing.Type {
	n, ok := node.(*syntax.Node)
	if !ok || n == nil {
		return c.Interner().Error()
	}
	return c.resolveTypeNode(n, ctx)
}

func (c *Compilation) resolveTypeNode(n *syntax.Node, ctx *bind.Context) typing.Type {
	switch n.Kind {
	case syntax.KindIntegerType:
		return c.resolveBuiltinType(n)
	case syntax.KindNamedType:
		return c.resolveNamedType(n, ctx)
	case syntax.KindPackedArrayType:
		return c.resolvePackedArrayType(n, ctx)
	case syntax.KindUnpackedArrayType:
		return c.resolveUnpackedArrayType(n, ctx)
	case syntax.KindEnumType:
		return c.resolveEnumType(n, ctx)
	case syntax.KindStructType:
		return c.resolveAggregateType(n, ctx, false)
	case syntax.KindUnionType:
		return c.resolveAggregateType(n, ctx, true)
	default:
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, n.Range.Start,
			"%q is not a type reference", n.Kind))
		return c.Interner().Error()
	}
}

var builtinWidth = map[string]int{
	"bit": 1, "logic": 1, "reg": 1,
	"byte": 8, "shortint": 16, "int": 32, "longint": 64, "integer": 32, "time": 64,
}

var builtinFourState = map[string]bool{
	"logic": true, "reg": true, "integer": true, "time": true,
}

var builtinSigned = map[string]bool{
	"byte": true, "shortint": true, "int": true, "longint": true, "integer": true,
}

func (c *Compilation) resolveBuiltinType(n *syntax.Node) typing.Type {
	in := c.Interner()
	switch n.Text {
	case "real":
		return in.Real()
	case "shortreal":
		return in.ShortReal()
	case "string":
		return in.StringType()
	case "void":
		return in.Void()
	case "chandle":
		return in.CHandle()
	case "event":
		return in.Event()
	}

	width, ok := builtinWidth[n.Text]
	if !ok {
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, n.Range.Start,
			"unknown built-in type %q", n.Text))
		return in.Error()
	}
	signed := builtinSigned[n.Text]
	switch n.Op {
	case "signed":
		signed = true
	case "unsigned":
		signed = false
	}
	return in.GetIntegral(width, signed, builtinFourState[n.Text])
}

func (c *Compilation) resolveNamedType(n *syntax.Node, ctx *bind.Context) typing.Type {
	sym, ok := resolve.Lookup(resolve.Request{
		Name:      n.Text,
		From:      ctx.Scope,
		Location:  ctx.Location,
		Mode:      resolve.ModeType,
		SourceLoc: n.Range.Start,
	}, resolve.Config{TypoCorrectionLimit: c.TypoCorrectionLimit()}, c.bag)
	if !ok {
		return c.Interner().Error()
	}
	typed, ok := sym.(symbols.Typed)
	if !ok {
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, n.Range.Start,
			"%q does not name a type", n.Text))
		return c.Interner().Error()
	}
	return typed.SymbolType()
}

func (c *Compilation) evalTypeBound(n *syntax.Node, ctx *bind.Context) (int, bool) {
	expr := bind.BindExpression(*ctx, n)
	v := eval.Eval(c.constEvalCtx(ctx.Location.Scope), expr)
	iv, ok := v.Integer()
	if !ok {
		return 0, false
	}
	return int(iv.AsInt64()), true
}

func (c *Compilation) resolvePackedArrayType(n *syntax.Node, ctx *bind.Context) typing.Type {
	elem := c.resolveTypeNode(n.At(0), ctx)
	left, lok := c.evalTypeBound(n.At(1), ctx)
	right, rok := c.evalTypeBound(n.At(2), ctx)
	if !lok || !rok {
		c.bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, n.Range.Start,
			"packed dimension bounds must be constant"))
		return c.Interner().Error()
	}
	width := left - right + 1
	if right > left {
		width = right - left + 1
	}

	it, ok := typing.AsIntegral(elem)
	if !ok {
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, n.Range.Start,
			"packed dimension applied to a non-integral element type"))
		return c.Interner().Error()
	}
	signed := it.Signed
	if n.Op == "signed" {
		signed = true
	} else if n.Op == "unsigned" {
		signed = false
	}
	return c.Interner().GetIntegral(width*it.Width, signed, it.FourState)
}

func (c *Compilation) resolveUnpackedArrayType(n *syntax.Node, ctx *bind.Context) typing.Type {
	elem := c.resolveTypeNode(n.At(0), ctx)
	switch n.Op {
	case "queue":
		return c.Interner().NewUnpackedArray(elem, typing.ArrayQueue, 0, 0, nil, -1)
	case "dynamic":
		return c.Interner().NewUnpackedArray(elem, typing.ArrayDynamic, 0, 0, nil, 0)
	case "associative":
		var keyType typing.Type = c.Interner().Int()
		if n.Len() > 1 {
			keyType = c.resolveTypeNode(n.At(1), ctx)
		}
		return c.Interner().NewUnpackedArray(elem, typing.ArrayAssociative, 0, 0, keyType, 0)
	default:
		left, lok := c.evalTypeBound(n.At(1), ctx)
		right, rok := c.evalTypeBound(n.At(2), ctx)
		if !lok || !rok {
			c.bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, n.Range.Start,
				"unpacked dimension bounds must be constant"))
			return c.Interner().Error()
		}
		bound := left - right
		if bound < 0 {
			bound = -bound
		}
		bound++
		return c.Interner().NewUnpackedArray(elem, typing.ArrayFixed, left, right, nil, bound)
	}
}

func (c *Compilation) resolveEnumType(n *syntax.Node, ctx *bind.Context) typing.Type {
	base := c.Interner().Int()

	var members []*typing.EnumMember
	next := int64(0)
	for i := 0; i < n.Len(); i++ {
		m := n.At(i)
		val := next
		if m.Len() > 0 {
			if v, ok := c.evalTypeBound(m.At(0), ctx); ok {
				val = int64(v)
			}
		}
		members = append(members, &typing.EnumMember{Name: m.Text, Value: constant.Integer(constant.NewInt(base.Width, base.Signed, val))})
		next = val + 1
	}
	return c.Interner().NewEnum(n.Text, base, members)
}

func (c *Compilation) resolveAggregateType(n *syntax.Node, ctx *bind.Context, union bool) typing.Type {
	var fields []typing.Field
	width := 0
	signed := false
	allPacked := true
	for i := 0; i < n.Len(); i++ {
		m := n.At(i)
		ft := c.resolveTypeNode(m.At(0), ctx)
		it, ok := typing.AsIntegral(ft)
		if !ok {
			allPacked = false
		} else {
			width += it.Width
		}
		fields = append(fields, typing.Field{Name: m.Text, Type: ft})
	}

	if allPacked {
		// Packed struct members are laid out first-declared at the most
		// significant end; every packed union member starts at bit 0.
		if !union {
			offset := 0
			for i := len(fields) - 1; i >= 0; i-- {
				fields[i].Offset = offset
				it, _ := typing.AsIntegral(fields[i].Type)
				offset += it.Width
			}
		}
		if union {
			return c.Interner().GetPackedUnion(n.Text, fields, width, signed)
		}
		return c.Interner().GetPackedStruct(n.Text, fields, width, signed)
	}
	if union {
		return c.Interner().NewUnpackedUnion(n.Text, fields)
	}
	return c.Interner().NewUnpackedStruct(n.Text, fields)
}
