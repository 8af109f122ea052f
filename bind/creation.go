package bind

import (
	"slangcore/constant"
	"slangcore/resolve"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// binaryOpTable and unaryOpTable map the raw operator token text the parser
// attaches to a node (Node.Op) to the semantic operator enum. A real parser would tag these
// more richly; this core accepts whatever string the external parser hands
// it and classifies it once, here, rather than scattering string
// comparisons through the binder.
var binaryOpTable = map[string]BinaryOperator{
	"+": BinaryAdd, "-": BinarySub, "*": BinaryMul, "/": BinaryDiv, "%": BinaryMod, "**": BinaryPow,
	"&": BinaryBitwiseAnd, "|": BinaryBitwiseOr, "^": BinaryBitwiseXor, "^~": BinaryBitwiseXnor, "~^": BinaryBitwiseXnor,
	"&&": BinaryLogicalAnd, "||": BinaryLogicalOr,
	"==": BinaryEquality, "!=": BinaryInequality, "===": BinaryCaseEquality, "!==": BinaryCaseInequality,
	"<": BinaryLessThan, "<=": BinaryLessEqual, ">": BinaryGreaterThan, ">=": BinaryGreaterEqual,
	"<<": BinaryLogicalShiftLeft, ">>": BinaryLogicalShiftRight, "<<<": BinaryArithShiftLeft, ">>>": BinaryArithShiftRight,
}

var unaryOpTable = map[string]UnaryOperator{
	"+": UnaryPlus, "-": UnaryMinus, "!": UnaryLogicalNot, "~": UnaryBitwiseNot,
	"&": UnaryReduceAnd, "|": UnaryReduceOr, "^": UnaryReduceXor,
	"~&": UnaryReduceNand, "~|": UnaryReduceNor, "~^": UnaryReduceXnor, "^~": UnaryReduceXnor,
}

// BindExpression runs the creation pass: it recursively binds node and
// every sub-expression self-determined, producing a tree whose types are
// each node's natural self-determined type. A caller that needs context
// propagation runs PropagateType over the result afterward.
func BindExpression(ctx Context, node *syntax.Node) *Expression {
	if node == nil {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}

	switch node.Kind {
	case syntax.KindIntegerLiteralExpression:
		return bindIntegerLiteral(ctx, node)
	case syntax.KindRealLiteralExpression:
		return bindRealLiteral(ctx, node)
	case syntax.KindUnbasedUnsizedLiteralExpression:
		return bindUnbasedUnsizedLiteral(ctx, node)
	case syntax.KindNullLiteralExpression:
		return &Expression{Kind: ExprNullLiteral, Type: ctx.Compilation.Interner().Null(), Syntax: node, Range: node.Range}
	case syntax.KindStringLiteralExpression:
		return bindStringLiteral(ctx, node)
	case syntax.KindIdentifierName, syntax.KindScopedName:
		return bindNamedValue(ctx, node)
	case syntax.KindUnaryExpression:
		return bindUnary(ctx, node)
	case syntax.KindBinaryExpression:
		return bindBinary(ctx, node)
	case syntax.KindConditionalExpression:
		return bindConditional(ctx, node)
	case syntax.KindAssignmentExpression:
		return bindAssignment(ctx, node)
	case syntax.KindConcatenationExpression:
		return bindConcatenation(ctx, node)
	case syntax.KindReplicationExpression:
		return bindReplication(ctx, node)
	case syntax.KindElementSelectExpression:
		return bindElementSelect(ctx, node)
	case syntax.KindRangeSelectExpression:
		return bindRangeSelect(ctx, node)
	case syntax.KindMemberAccessExpression:
		return bindMemberAccess(ctx, node)
	case syntax.KindInvocationExpression:
		return bindCall(ctx, node)
	case syntax.KindSimpleAssignmentPatternExpression,
		syntax.KindStructuredAssignmentPatternExpression,
		syntax.KindReplicatedAssignmentPatternExpression:
		return bindAssignmentPattern(ctx, node)
	default:
		ctx.Diag.Diagnostics().Add(diagNotAnExpression(node))
		return invalidExpr(ctx.Compilation.Interner().Error())
	}
}

func selfDetermined(ctx Context) Context {
	return ctx.WithFlags(FlagSelfDetermined)
}

func bindIntegerLiteral(ctx Context, node *syntax.Node) *Expression {
	in := ctx.Compilation.Interner()
	// A real parser supplies width/signedness/bits directly; this core
	// falls back to the language default (32-bit signed) for a sized
	// literal whose text doesn't encode a width, and treats an entirely
	// numeric Text as that default too.
	width, signed, fourState := 32, true, false
	v := parseSizedLiteral(node.Text, width, signed, fourState)
	t := in.GetIntegral(v.Width(), signed, v.HasUnknown() || fourState)
	cv := constant.Integer(v)
	return &Expression{
		Kind: ExprIntegerLiteral, Type: t, Constant: &cv, Syntax: node, Range: node.Range,
		Payload: IntegerLiteralData{Value: v},
	}
}

// parseSizedLiteral is a minimal stand-in for the real numeric-literal
// lexer: it treats node text as a plain decimal integer at the given
// default width unless it already looks like a four-state bit pattern
// (all bit characters among 01xXzZ, with at least one x or z), in which
// case it is read as that pattern at its own length.
func parseSizedLiteral(text string, defaultWidth int, signed, fourState bool) constant.SVInt {
	if isBitPattern(text) {
		bits := make([]byte, len(text))
		for i, c := range []byte(text) {
			bits[len(text)-1-i] = c
		}
		return constant.FromBits(len(text), signed, bits)
	}
	var n int64
	for _, c := range text {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
	}
	return constant.NewInt(defaultWidth, signed, n)
}

func isBitPattern(s string) bool {
	if s == "" {
		return false
	}
	unknown := false
	for _, c := range s {
		switch c {
		case 'x', 'X', 'z', 'Z':
			unknown = true
		case '0', '1':
		default:
			return false
		}
	}
	return unknown
}

func bindUnbasedUnsizedLiteral(ctx Context, node *syntax.Node) *Expression {
	in := ctx.Compilation.Interner()
	// Self-determined width is 1 bit; PropagateType replicates it to the
	// context width, per "an unsized unbased literal adopts the context
	// width by replication."
	v := parseSizedLiteral(node.Text, 1, false, true)
	t := in.GetIntegral(1, false, true)
	cv := constant.Integer(v)
	return &Expression{
		Kind: ExprUnbasedUnsizedLiteral, Type: t, Constant: &cv, Syntax: node, Range: node.Range,
		Payload: IntegerLiteralData{Value: v, IsUnsized: true},
	}
}

func bindRealLiteral(ctx Context, node *syntax.Node) *Expression {
	var f float64
	parseFloat(node.Text, &f)
	t := ctx.Compilation.Interner().Real()
	cv := constant.Real(f)
	return &Expression{Kind: ExprRealLiteral, Type: t, Constant: &cv, Syntax: node, Range: node.Range, Payload: RealLiteralData{Value: f}}
}

func parseFloat(s string, out *float64) {
	var whole, frac float64
	var fracDiv float64 = 1
	seenDot := false
	for _, c := range s {
		if c == '.' {
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			continue
		}
		d := float64(c - '0')
		if seenDot {
			fracDiv *= 10
			frac = frac*10 + d
		} else {
			whole = whole*10 + d
		}
	}
	*out = whole + frac/fracDiv
}

func bindStringLiteral(ctx Context, node *syntax.Node) *Expression {
	t := ctx.Compilation.Interner().StringType()
	cv := constant.String(node.Text)
	return &Expression{Kind: ExprStringLiteral, Type: t, Constant: &cv, Syntax: node, Range: node.Range, Payload: StringLiteralData{Value: node.Text}}
}

func bindNamedValue(ctx Context, node *syntax.Node) *Expression {
	sym, ok := resolve.Lookup(resolve.Request{
		Name:      node.Text,
		From:      ctx.Scope,
		Location:  ctx.Location,
		Mode:      lookupModeFor(ctx),
		SourceLoc: node.Range.Start,
	}, resolve.Config{TypoCorrectionLimit: ctx.Diag.TypoCorrectionLimit()}, ctx.Diag.Diagnostics())
	if !ok {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}

	var t typing.Type = ctx.Compilation.Interner().Error()
	if typed, ok := sym.(symbols.Typed); ok {
		t = typed.SymbolType()
	}

	expr := &Expression{Kind: ExprNamedValue, Type: t, Syntax: node, Range: node.Range, Payload: NamedValueData{Symbol: sym}}
	if p, ok := sym.(*symbols.ParameterSymbol); ok && p.Value != nil {
		if cv, ok := p.Value.(constant.Value); ok {
			expr.Constant = &cv
		}
	}
	return expr
}

func lookupModeFor(ctx Context) resolve.Mode {
	var m resolve.Mode
	if ctx.Flags.Has(FlagConstantRequired) {
		m |= resolve.ModeConstant
	}
	return m
}

func bindUnary(ctx Context, node *syntax.Node) *Expression {
	op, ok := unaryOpTable[node.Op]
	if !ok {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}
	operand := BindExpression(selfDetermined(ctx), node.At(0))

	resultType := operand.Type
	switch op {
	case UnaryLogicalNot, UnaryReduceAnd, UnaryReduceOr, UnaryReduceXor, UnaryReduceNand, UnaryReduceNor, UnaryReduceXnor:
		resultType = ctx.Compilation.Interner().GetIntegral(1, false, true)
	}

	return &Expression{
		Kind: ExprUnaryOp, Type: resultType, Syntax: node, Range: node.Range,
		Payload: UnaryOpData{Op: op, Operand: operand},
		Constant: foldUnary(op, operand),
	}
}

func bindBinary(ctx Context, node *syntax.Node) *Expression {
	op, ok := binaryOpTable[node.Op]
	if !ok {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}

	lhsCtx := selfDetermined(ctx)
	rhsCtx := selfDetermined(ctx)
	if isShift(op) {
		// Shift's rhs is always self-determined and unsigned regardless of
		// lhs signedness; its own creation-pass binding already gives it a
		// self-determined type, so no extra handling is needed here beyond
		// not propagating lhs's type onto it later (see PropagateType).
	}
	lhs := BindExpression(lhsCtx, node.At(0))
	rhs := BindExpression(rhsCtx, node.At(1))

	resultType := inferBinaryResultType(ctx, op, lhs.Type, rhs.Type)

	return &Expression{
		Kind: ExprBinaryOp, Type: resultType, Syntax: node, Range: node.Range,
		Payload: BinaryOpData{Op: op, Left: lhs, Right: rhs},
		Constant: foldBinary(op, lhs, rhs),
	}
}

// inferBinaryResultType computes the self-determined result type of a
// binary operator application during the creation pass. Context-determined
// operators still need a provisional self-determined type here; the
// propagation pass widens it later against any enclosing context.
func inferBinaryResultType(ctx Context, op BinaryOperator, lt, rt typing.Type) typing.Type {
	in := ctx.Compilation.Interner()
	if isComparison(op) {
		return in.GetIntegral(1, false, true)
	}
	if isShift(op) {
		return lt // shifts take the lhs type
	}
	li, lok := typing.AsIntegral(lt)
	ri, rok := typing.AsIntegral(rt)
	if lok && rok {
		return typing.CommonIntegralType(in, li, ri)
	}
	if _, ok := typing.AsReal(lt); ok {
		return lt
	}
	return in.Error()
}

func bindConditional(ctx Context, node *syntax.Node) *Expression {
	in := ctx.Compilation.Interner()
	cond := BindExpression(selfDetermined(ctx), node.At(0))
	cond = convertTo(ctx, in.GetIntegral(1, false, true), cond)

	thenExpr := BindExpression(selfDetermined(ctx), node.At(1))
	elseExpr := BindExpression(selfDetermined(ctx), node.At(2))

	resultType := combinedType(ctx, thenExpr.Type, elseExpr.Type)
	thenExpr = convertTo(ctx, resultType, thenExpr)
	elseExpr = convertTo(ctx, resultType, elseExpr)

	return &Expression{
		Kind: ExprConditionalOp, Type: resultType, Syntax: node, Range: node.Range,
		Payload: ConditionalOpData{Cond: cond, Then: thenExpr, Else: elseExpr},
	}
}

// combinedType computes the type two branches of a conditional (or case
// labels) unify to: the wider/four-stated integral type when both are
// integral, otherwise the first non-error type.
func combinedType(ctx Context, a, b typing.Type) typing.Type {
	ai, aok := typing.AsIntegral(a)
	bi, bok := typing.AsIntegral(b)
	if aok && bok {
		return typing.CommonIntegralType(ctx.Compilation.Interner(), ai, bi)
	}
	if !typing.IsError(a) {
		return a
	}
	return b
}

func bindConcatenation(ctx Context, node *syntax.Node) *Expression {
	in := ctx.Compilation.Interner()
	operands := make([]*Expression, 0, node.Len())
	width := 0
	fourState := false
	for i := 0; i < node.Len(); i++ {
		e := BindExpression(selfDetermined(ctx), node.At(i))
		operands = append(operands, e)
		if it, ok := typing.AsIntegral(e.Type); ok {
			width += it.Width
			fourState = fourState || it.FourState
		}
	}
	return &Expression{
		Kind: ExprConcatenation, Type: in.GetIntegral(width, false, fourState), Syntax: node, Range: node.Range,
		Payload: ConcatenationData{Operands: operands},
	}
}

func bindReplication(ctx Context, node *syntax.Node) *Expression {
	in := ctx.Compilation.Interner()
	countExpr := BindExpression(ctx.WithFlags(FlagConstantRequired|FlagSelfDetermined), node.At(0))
	operand := BindExpression(selfDetermined(ctx), node.At(1))

	count := int64(0)
	if countExpr.Constant != nil {
		if v, ok := countExpr.Constant.Integer(); ok {
			count = v.AsInt64()
		}
	}

	elemWidth := 0
	fourState := false
	if it, ok := typing.AsIntegral(operand.Type); ok {
		elemWidth = it.Width
		fourState = it.FourState
	}

	return &Expression{
		Kind: ExprReplication, Type: in.GetIntegral(int(count)*elemWidth, false, fourState), Syntax: node, Range: node.Range,
		Payload: ReplicationData{Count: count, Operand: operand},
	}
}

func bindElementSelect(ctx Context, node *syntax.Node) *Expression {
	value := BindExpression(ctx, node.At(0))
	index := BindExpression(selfDetermined(ctx), node.At(1))
	in := ctx.Compilation.Interner()

	elemType := typing.Type(in.Bit())
	if ua, ok := typing.Unwrap(value.Type).(*typing.UnpackedArrayType); ok {
		elemType = ua.Elem
	} else if it, ok := typing.AsIntegral(value.Type); ok {
		elemType = in.GetIntegral(1, false, it.FourState)
	}

	return &Expression{
		Kind: ExprElementSelect, Type: elemType, Syntax: node, Range: node.Range,
		Payload: ElementSelectData{Value: value, Index: index},
	}
}

func bindRangeSelect(ctx Context, node *syntax.Node) *Expression {
	value := BindExpression(ctx, node.At(0))
	left := BindExpression(ctx.WithFlags(FlagConstantRequired|FlagSelfDetermined), node.At(1))
	right := BindExpression(ctx.WithFlags(FlagConstantRequired|FlagSelfDetermined), node.At(2))
	in := ctx.Compilation.Interner()

	width := 0
	if left.Constant != nil && right.Constant != nil {
		if l, ok := left.Constant.Integer(); ok {
			if r, ok := right.Constant.Integer(); ok {
				width = int(l.AsInt64()-r.AsInt64()) + 1
				if width < 0 {
					width = -width + 2
				}
			}
		}
	}
	fourState := false
	if it, ok := typing.AsIntegral(value.Type); ok {
		fourState = it.FourState
	}

	return &Expression{
		Kind: ExprRangeSelect, Type: in.GetIntegral(width, false, fourState), Syntax: node, Range: node.Range,
		Payload: RangeSelectData{Value: value, Left: left, Right: right},
	}
}

func bindMemberAccess(ctx Context, node *syntax.Node) *Expression {
	value := BindExpression(ctx, node.At(0))
	member := node.Text

	var fieldType typing.Type = ctx.Compilation.Interner().Error()
	var field typing.Field
	switch t := typing.Unwrap(value.Type).(type) {
	case *typing.PackedStructType:
		if f, ok := t.FieldOffset(member); ok {
			fieldType, field = f.Type, f
		}
	case *typing.UnpackedStructType:
		for _, f := range t.Fields {
			if f.Name == member {
				fieldType, field = f.Type, f
				break
			}
		}
	}

	return &Expression{
		Kind: ExprMemberAccess, Type: fieldType, Syntax: node, Range: node.Range,
		Payload: MemberAccessData{Value: value, Member: member, Field: field},
	}
}

func bindCall(ctx Context, node *syntax.Node) *Expression {
	// A system call carries its name in Op, so every child is an argument;
	// a user call's child 0 names the subroutine.
	first := 1
	if node.Op != "" {
		first = 0
	}
	args := make([]*Expression, 0, node.Len())
	for i := first; i < node.Len(); i++ {
		args = append(args, BindExpression(selfDetermined(ctx), node.At(i)))
	}

	if node.Op != "" { // system call, e.g. $bits, $clog2
		return &Expression{
			Kind: ExprCall, Type: ctx.Compilation.Interner().Int(), Syntax: node, Range: node.Range,
			Payload: CallData{SystemName: node.Op, Args: args},
		}
	}

	sym, ok := resolve.Lookup(resolve.Request{
		Name: node.At(0).Text, From: ctx.Scope, Location: ctx.Location, SourceLoc: node.Range.Start,
	}, resolve.Config{TypoCorrectionLimit: ctx.Diag.TypoCorrectionLimit()}, ctx.Diag.Diagnostics())
	if !ok {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}
	sub, ok := sym.(*symbols.SubroutineSymbol)
	if !ok {
		return invalidExpr(ctx.Compilation.Interner().Error())
	}
	return &Expression{
		Kind: ExprCall, Type: sub.ReturnType, Syntax: node, Range: node.Range,
		Payload: CallData{Subroutine: sub, Args: args},
	}
}

func bindAssignmentPattern(ctx Context, node *syntax.Node) *Expression {
	kind := ExprSimpleAssignmentPattern
	data := AssignmentPatternData{}

	switch node.Kind {
	case syntax.KindSimpleAssignmentPatternExpression:
		for i := 0; i < node.Len(); i++ {
			data.Simple = append(data.Simple, BindExpression(selfDetermined(ctx), node.At(i)))
		}
	case syntax.KindStructuredAssignmentPatternExpression:
		kind = ExprStructuredAssignmentPattern
		data.Structured = make(map[string]*Expression)
		for i := 0; i+1 < node.Len(); i += 2 {
			name := node.At(i).Text
			data.Structured[name] = BindExpression(selfDetermined(ctx), node.At(i+1))
		}
	case syntax.KindReplicatedAssignmentPatternExpression:
		kind = ExprReplicatedAssignmentPattern
		countExpr := BindExpression(ctx.WithFlags(FlagConstantRequired), node.At(0))
		if countExpr.Constant != nil {
			if v, ok := countExpr.Constant.Integer(); ok {
				data.Count = v.AsInt64()
			}
		}
		data.Replicated = BindExpression(selfDetermined(ctx), node.At(1))
	}

	return &Expression{Kind: kind, Type: ctx.Compilation.Interner().Error(), Syntax: node, Range: node.Range, Payload: data}
}
