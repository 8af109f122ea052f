package bind

import (
	"slangcore/constant"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
	"slangcore/typing"
)

// ExprKind tags every Expression variant enumerated in the expression-
// binding component.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntegerLiteral
	ExprRealLiteral
	ExprUnbasedUnsizedLiteral
	ExprNullLiteral
	ExprStringLiteral
	ExprNamedValue
	ExprUnaryOp
	ExprBinaryOp
	ExprConditionalOp
	ExprAssignment
	ExprConcatenation
	ExprReplication
	ExprElementSelect
	ExprRangeSelect
	ExprMemberAccess
	ExprCall
	ExprConversion
	ExprDataTypeAsExpression
	ExprSimpleAssignmentPattern
	ExprStructuredAssignmentPattern
	ExprReplicatedAssignmentPattern
)

// Expression is the common shape of every bound expression node: a kind
// tag, its resolved type, an optional folded constant, the syntax it came
// from, and its source range. Dispatch on Kind with a safe downcast to the
// concrete payload, the same shape types.Type and symbols.Symbol use.
type Expression struct {
	Kind     ExprKind
	Type     typing.Type
	Constant *constant.Value // populated iff folding succeeded and was attempted
	Syntax   *syntax.Node
	Range    diag.SourceRange

	// Payload is one of the *Data structs below, chosen by Kind.
	Payload interface{}
}

func invalidExpr(t typing.Type) *Expression {
	return &Expression{Kind: ExprInvalid, Type: t}
}

// IntegerLiteralData backs ExprIntegerLiteral and ExprUnbasedUnsizedLiteral.
type IntegerLiteralData struct {
	Value    constant.SVInt
	IsUnsized bool // unsized unbased literal ('1, '0, 'x, 'z): replicated to context width
}

// RealLiteralData backs ExprRealLiteral.
type RealLiteralData struct {
	Value float64
}

// StringLiteralData backs ExprStringLiteral.
type StringLiteralData struct {
	Value string
}

// NamedValueData backs ExprNamedValue: a resolved reference to a symbol.
type NamedValueData struct {
	Symbol symbols.Symbol
}

// UnaryOpData backs ExprUnaryOp.
type UnaryOpData struct {
	Op      UnaryOperator
	Operand *Expression
}

// BinaryOpData backs ExprBinaryOp.
type BinaryOpData struct {
	Op    BinaryOperator
	Left  *Expression
	Right *Expression
}

// ConditionalOpData backs ExprConditionalOp.
type ConditionalOpData struct {
	Cond *Expression
	Then *Expression
	Else *Expression
}

// AssignmentData backs ExprAssignment.
type AssignmentData struct {
	Target   *Expression
	Value    *Expression
	CompoundOp BinaryOperator // zero value means a plain `=`
	IsNonBlocking bool
}

// ConcatenationData backs ExprConcatenation.
type ConcatenationData struct {
	Operands []*Expression
}

// ReplicationData backs ExprReplication.
type ReplicationData struct {
	Count    int64
	Operand  *Expression
}

// ElementSelectData backs ExprElementSelect.
type ElementSelectData struct {
	Value *Expression
	Index *Expression
}

// RangeSelectData backs ExprRangeSelect.
type RangeSelectData struct {
	Value *Expression
	Left  *Expression
	Right *Expression
}

// MemberAccessData backs ExprMemberAccess.
type MemberAccessData struct {
	Value *Expression
	Member string
	Field  typing.Field
}

// CallData backs ExprCall.
type CallData struct {
	Subroutine *symbols.SubroutineSymbol
	SystemName string // non-empty for a system subroutine call ($display, ...)
	Args       []*Expression
}

// ConversionData backs ExprConversion: an implicit or explicit type
// conversion node inserted by the propagation pass or by an explicit cast.
type ConversionData struct {
	Operand  *Expression
	Explicit bool
}

// DataTypeAsExpressionData backs ExprDataTypeAsExpression, used when a type
// name appears where an expression is grammatically expected (e.g. as a
// `$bits` argument).
type DataTypeAsExpressionData struct {
	ReferencedType typing.Type
}

// AssignmentPatternData backs the three assignment-pattern variants.
type AssignmentPatternData struct {
	Simple      []*Expression          // '{a, b, c}
	Structured  map[string]*Expression // '{x: a, y: b}
	Replicated  *Expression            // the replicated element, when Count > 0
	Count       int64
}
