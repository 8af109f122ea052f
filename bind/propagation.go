package bind

import (
	"slangcore/constant"
	"slangcore/syntax"
	"slangcore/typing"
)

// PropagateType runs the propagation pass over an already creation-pass-
// bound expression: for a context-determined operator (propagatesContext),
// the target type replaces the node's own inferred type and is pushed down
// into both operands (except a shift's rhs, which stays self-determined);
// for everything else the node keeps its own type and only needs an
// implicit conversion inserted if target differs from what it already has.
func PropagateType(ctx Context, expr *Expression, target typing.Type) *Expression {
	if expr == nil || typing.IsError(target) {
		return expr
	}

	switch expr.Kind {
	case ExprBinaryOp:
		data := expr.Payload.(BinaryOpData)
		if propagatesContext(data.Op) {
			expr.Type = target
			data.Left = PropagateType(ctx, data.Left, target)
			if isShift(data.Op) {
				// rhs stays self-determined; already bound that way.
			} else {
				data.Right = PropagateType(ctx, data.Right, target)
			}
			expr.Payload = data
			expr.Constant = foldBinary(data.Op, data.Left, data.Right)
			return expr
		}
		return convertTo(ctx, target, expr)

	case ExprUnaryOp:
		data := expr.Payload.(UnaryOpData)
		switch data.Op {
		case UnaryPlus, UnaryMinus, UnaryBitwiseNot:
			expr.Type = target
			data.Operand = PropagateType(ctx, data.Operand, target)
			expr.Payload = data
			expr.Constant = foldUnary(data.Op, data.Operand)
			return expr
		default:
			return convertTo(ctx, target, expr)
		}

	case ExprConditionalOp:
		data := expr.Payload.(ConditionalOpData)
		expr.Type = target
		data.Then = PropagateType(ctx, data.Then, target)
		data.Else = PropagateType(ctx, data.Else, target)
		expr.Payload = data
		return expr

	case ExprIntegerLiteral, ExprUnbasedUnsizedLiteral:
		return propagateLiteralWidth(ctx, expr, target)

	default:
		return convertTo(ctx, target, expr)
	}
}

// propagateLiteralWidth implements the unsized-literal replication rule and
// ordinary literal re-widening: an unbased unsized literal ('1, '0, 'x, 'z)
// replicates its single bit to the full target width; a plain sized literal
// is simply re-extended/truncated like any other integral value.
func propagateLiteralWidth(ctx Context, expr *Expression, target typing.Type) *Expression {
	ti, ok := typing.AsIntegral(target)
	if !ok {
		return expr
	}
	data := expr.Payload.(IntegerLiteralData)
	var v constant.SVInt
	if data.IsUnsized {
		bit := data.Value.Bit(0)
		bits := make([]byte, ti.Width)
		for i := range bits {
			bits[i] = bit
		}
		v = constant.FromBits(ti.Width, ti.Signed, bits)
	} else {
		v = data.Value.Extend(ti.Width)
		if ti.Width < data.Value.Width() {
			v = data.Value.Truncate(ti.Width)
		}
	}
	cv := constant.Integer(v)
	expr.Type = ti
	expr.Constant = &cv
	expr.Payload = IntegerLiteralData{Value: v, IsUnsized: data.IsUnsized}
	return expr
}

// convertTo inserts an implicit ConversionData wrapper around expr if its
// type differs from target, per CanAssign; an incompatible conversion emits
// a diagnostic and returns an invalid expression instead.
func convertTo(ctx Context, target typing.Type, expr *Expression) *Expression {
	if expr == nil {
		return invalidExpr(target)
	}
	if typing.Equal(expr.Type, target) || typing.IsError(expr.Type) || typing.IsError(target) {
		return expr
	}
	if !typing.CanAssign(target, expr.Type) {
		ctx.Diag.Diagnostics().Add(diagTypeMismatch(expr.Range.Start, target.Repr(), expr.Type.Repr()))
		return invalidExpr(ctx.Compilation.Interner().Error())
	}

	converted := &Expression{
		Kind: ExprConversion, Type: target, Syntax: expr.Syntax, Range: expr.Range,
		Payload: ConversionData{Operand: expr, Explicit: false},
	}
	if ti, ok := typing.AsIntegral(target); ok && expr.Constant != nil {
		if si, ok := expr.Constant.Integer(); ok {
			v := si.Extend(ti.Width)
			if ti.Width < si.Width() {
				v = si.Truncate(ti.Width)
			}
			cv := constant.Integer(v)
			converted.Constant = &cv
		}
	}
	return converted
}

// ConvertAssignment implements the spec's three-way assignment-conversion
// outcome: value unchanged if types already match, an inserted implicit
// conversion if CanAssign allows it, or a diagnosed invalid expression if
// the types are fundamentally incompatible.
func ConvertAssignment(ctx Context, dst typing.Type, value *Expression) *Expression {
	if value == nil {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}
	if typing.Equal(value.Type, dst) {
		return value
	}
	return convertTo(ctx, dst, value)
}

func bindAssignment(ctx Context, node *syntax.Node) *Expression {
	target := BindExpression(ctx, node.At(0))
	compoundOp := BinaryOperator(0)
	nonBlocking := node.Op == "<="
	hasCompound := node.Op != "=" && node.Op != "<=" && node.Op != ""
	if hasCompound {
		if op, ok := binaryOpTable[compoundBase(node.Op)]; ok {
			compoundOp = op
		}
	}

	value := BindExpression(selfDetermined(ctx), node.At(1))
	if hasCompound {
		value = &Expression{
			Kind: ExprBinaryOp, Type: inferBinaryResultType(ctx, compoundOp, target.Type, value.Type), Syntax: node, Range: node.Range,
			Payload: BinaryOpData{Op: compoundOp, Left: target, Right: value},
		}
		if propagatesContext(compoundOp) {
			value = PropagateType(ctx, value, target.Type)
		}
	}
	value = ConvertAssignment(ctx, target.Type, value)

	return &Expression{
		Kind: ExprAssignment, Type: target.Type, Syntax: node, Range: node.Range,
		Payload: AssignmentData{Target: target, Value: value, CompoundOp: compoundOp, IsNonBlocking: nonBlocking},
	}
}

// compoundBase strips the trailing "=" from a compound-assignment operator
// token ("+=" -> "+", "<<=" -> "<<") to find its table entry.
func compoundBase(op string) string {
	if len(op) > 1 && op[len(op)-1] == '=' {
		return op[:len(op)-1]
	}
	return op
}

// BindCaseItems binds a case statement's controlling expression and every
// label expression self-determined, computes the type they all unify to,
// and propagates that type uniformly across the controlling expression and
// every label -- the dedicated case-expression binding routine the
// two-pass rule requires beyond ordinary operator binding.
func BindCaseItems(ctx Context, controllingNode *syntax.Node, labelNodes []*syntax.Node) (*Expression, []*Expression) {
	controlling := BindExpression(selfDetermined(ctx), controllingNode)
	labels := make([]*Expression, len(labelNodes))
	for i, n := range labelNodes {
		labels[i] = BindExpression(selfDetermined(ctx), n)
	}

	common := controlling.Type
	for _, l := range labels {
		common = combinedType(ctx, common, l.Type)
	}

	controlling = PropagateType(ctx, controlling, common)
	for i, l := range labels {
		labels[i] = PropagateType(ctx, l, common)
	}
	return controlling, labels
}
