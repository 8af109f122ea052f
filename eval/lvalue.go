package eval

import (
	"slangcore/bind"
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/symbols"
)

// SelectorKind tags one step of an LValue's selector chain.
type SelectorKind uint8

const (
	SelectElement SelectorKind = iota
	SelectRange
	SelectField
)

// Selector is one selection step applied to a base value: an element index,
// a bit range, or a named field, matching the three ways spec.md §4.6
// lets an expression narrow an assignment target.
type Selector struct {
	Kind SelectorKind

	Index int // SelectElement

	Left, Right int // SelectRange, in declared (not necessarily msb>=lsb) order

	Field string // SelectField
}

// LValue is a symbolic assignment target: a base symbol plus an ordered
// list of selectors narrowing into it, exactly the "(base symbol, list of
// selector operations)" shape spec.md calls for.
type LValue struct {
	Base      symbols.Symbol
	Selectors []Selector
}

// EvalLValue resolves expr as an assignment target. Only named values,
// element selects, range selects, and member accesses are valid lvalues;
// anything else fails with a diagnostic.
func EvalLValue(ctx *Context, expr *bind.Expression) (LValue, bool) {
	switch expr.Kind {
	case bind.ExprNamedValue:
		data := expr.Payload.(bind.NamedValueData)
		return LValue{Base: data.Symbol}, true

	case bind.ExprElementSelect:
		data := expr.Payload.(bind.ElementSelectData)
		base, ok := EvalLValue(ctx, data.Value)
		if !ok {
			return LValue{}, false
		}
		idx := Eval(ctx, data.Index)
		iv, ok := idx.Integer()
		if !ok {
			ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc, "element-select index is not constant"))
			return LValue{}, false
		}
		base.Selectors = append(base.Selectors, Selector{Kind: SelectElement, Index: int(iv.AsInt64())})
		return base, true

	case bind.ExprRangeSelect:
		data := expr.Payload.(bind.RangeSelectData)
		base, ok := EvalLValue(ctx, data.Value)
		if !ok {
			return LValue{}, false
		}
		l := Eval(ctx, data.Left)
		r := Eval(ctx, data.Right)
		lv, lok := l.Integer()
		rv, rok := r.Integer()
		if !lok || !rok {
			ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc, "range-select bound is not constant"))
			return LValue{}, false
		}
		base.Selectors = append(base.Selectors, Selector{Kind: SelectRange, Left: int(lv.AsInt64()), Right: int(rv.AsInt64())})
		return base, true

	case bind.ExprMemberAccess:
		data := expr.Payload.(bind.MemberAccessData)
		base, ok := EvalLValue(ctx, data.Value)
		if !ok {
			return LValue{}, false
		}
		base.Selectors = append(base.Selectors, Selector{Kind: SelectField, Field: data.Member})
		return base, true

	default:
		ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc, "expression is not a valid assignment target"))
		return LValue{}, false
	}
}

// Store writes value into lv's current frame (or, absent a frame, the
// base symbol's own slot is not writable -- top-level constants, outside a
// function body, are never assignment targets). Selectors are applied by
// reading the existing full value, splicing the new bits/field in, and
// writing the modified whole back.
func Store(ctx *Context, lv LValue, value constant.Value) bool {
	frame := ctx.CurrentFrame()
	if frame == nil {
		ctx.Bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, ctx.loc, "assignment outside a constant function frame"))
		return false
	}

	current, ok := frame.Locals[lv.Base]
	var cur constant.Value
	if ok {
		cur, _ = current.Value.(constant.Value)
	}

	var splice func(whole constant.Value, sels []Selector, v constant.Value) constant.Value
	splice = func(whole constant.Value, sels []Selector, v constant.Value) constant.Value {
		if len(sels) == 0 {
			return v
		}
		sel := sels[0]
		switch sel.Kind {
		case SelectField:
			names := []string{}
			fields := map[string]constant.Value{}
			if whole.Kind() == constant.ValueStruct {
				names, fields = whole.Fields()
			}
			sub, ok := fields[sel.Field]
			if !ok {
				sub = constant.Error()
				names = append(names, sel.Field)
			}
			fields[sel.Field] = splice(sub, sels[1:], v)
			return constant.Struct(names, fields)
		case SelectElement, SelectRange:
			wi, ok := whole.Integer()
			if !ok {
				wi = constant.NewInt(1, false, 0)
			}
			var sub constant.Value
			if sel.Kind == SelectElement {
				sub = constant.Integer(wi.BitSelect(sel.Index))
			} else {
				sub = constant.Integer(wi.PartSelect(sel.Left, sel.Right))
			}
			spliced := splice(sub, sels[1:], v)
			vi, ok := spliced.Integer()
			if !ok {
				return whole
			}
			if sel.Kind == SelectElement {
				return constant.Integer(spliceBit(wi, sel.Index, vi))
			}
			return constant.Integer(spliceRange(wi, sel.Left, sel.Right, vi))
		}
		return v
	}

	newVal := splice(cur, lv.Selectors, value)
	if frame.Locals == nil {
		frame.Locals = map[symbols.Symbol]Local{}
	}
	frame.Locals[lv.Base] = Local{Value: newVal}
	return true
}

func spliceBit(whole constant.SVInt, index int, bit constant.SVInt) constant.SVInt {
	bits := make([]byte, whole.Width())
	for i := 0; i < whole.Width(); i++ {
		bits[i] = whole.Bit(i)
	}
	if index >= 0 && index < len(bits) {
		bits[index] = bit.Bit(0)
	}
	return constant.FromBits(whole.Width(), whole.Signed(), bits)
}

func spliceRange(whole constant.SVInt, left, right int, value constant.SVInt) constant.SVInt {
	if left < right {
		left, right = right, left
	}
	bits := make([]byte, whole.Width())
	for i := 0; i < whole.Width(); i++ {
		bits[i] = whole.Bit(i)
	}
	for i := right; i <= left && i < len(bits); i++ {
		bits[i] = value.Bit(i - right)
	}
	return constant.FromBits(whole.Width(), whole.Signed(), bits)
}
