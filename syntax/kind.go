// Package syntax defines the shape of the syntax tree this core consumes.
// The lexer/preprocessor and the hand-written parser that produce this tree
// are external collaborators (see spec.md ­§1, §6); this package only fixes
// the contract between them and the semantic core: a discriminated-union
// node tagged with a SyntaxKind and a source range.
package syntax

// Kind tags every node with the grammar production it came from. Matching
// on Kind with a safe downcast is the portable shape for dispatch across
// an open-ended node catalogue (see the "Visitor dispatch" design note).
type Kind uint16

const (
	KindUnknown Kind = iota

	// Compilation-unit level.
	KindCompilationUnit
	KindModuleDeclaration
	KindInterfaceDeclaration
	KindProgramDeclaration
	KindPackageDeclaration

	// Members.
	KindPortDeclaration
	KindParameterDeclaration
	KindLocalParameterDeclaration
	KindDataDeclaration
	KindNetDeclaration
	KindTypedefDeclaration
	KindGenvarDeclaration
	KindFunctionDeclaration
	KindTaskDeclaration
	KindHierarchyInstantiation
	KindContinuousAssign
	KindInitialBlock
	KindAlwaysBlock
	KindGenerateRegion
	KindGenerateIf
	KindGenerateFor
	KindGenerateBlock
	KindDefParam

	// Types.
	KindIntegerType
	KindNamedType
	KindPackedArrayType
	KindUnpackedArrayType
	KindEnumType
	KindStructType
	KindUnionType

	// Expressions.
	KindIntegerLiteralExpression
	KindRealLiteralExpression
	KindUnbasedUnsizedLiteralExpression
	KindNullLiteralExpression
	KindStringLiteralExpression
	KindIdentifierName
	KindScopedName
	KindUnaryExpression
	KindBinaryExpression
	KindConditionalExpression
	KindAssignmentExpression
	KindConcatenationExpression
	KindReplicationExpression
	KindElementSelectExpression
	KindRangeSelectExpression
	KindMemberAccessExpression
	KindInvocationExpression
	KindSimpleAssignmentPatternExpression
	KindStructuredAssignmentPatternExpression
	KindReplicatedAssignmentPatternExpression

	// Statements.
	KindBlockStatement
	KindExpressionStatement
	KindConditionalStatement
	KindCaseStatement
	KindCaseItem
	KindForLoopStatement
	KindReturnStatement
)

var kindNames = map[Kind]string{
	KindUnknown:                                "unknown",
	KindCompilationUnit:                        "compilation-unit",
	KindModuleDeclaration:                      "module-declaration",
	KindInterfaceDeclaration:                   "interface-declaration",
	KindProgramDeclaration:                     "program-declaration",
	KindPackageDeclaration:                     "package-declaration",
	KindPortDeclaration:                        "port-declaration",
	KindParameterDeclaration:                   "parameter-declaration",
	KindLocalParameterDeclaration:               "localparam-declaration",
	KindDataDeclaration:                        "data-declaration",
	KindNetDeclaration:                         "net-declaration",
	KindTypedefDeclaration:                     "typedef-declaration",
	KindGenvarDeclaration:                      "genvar-declaration",
	KindFunctionDeclaration:                    "function-declaration",
	KindTaskDeclaration:                        "task-declaration",
	KindHierarchyInstantiation:                 "hierarchy-instantiation",
	KindContinuousAssign:                       "continuous-assign",
	KindInitialBlock:                           "initial-block",
	KindAlwaysBlock:                            "always-block",
	KindGenerateRegion:                         "generate-region",
	KindGenerateIf:                             "generate-if",
	KindGenerateFor:                            "generate-for",
	KindGenerateBlock:                          "generate-block",
	KindDefParam:                               "defparam",
	KindIntegerType:                            "integer-type",
	KindNamedType:                              "named-type",
	KindPackedArrayType:                        "packed-array-type",
	KindUnpackedArrayType:                      "unpacked-array-type",
	KindEnumType:                               "enum-type",
	KindStructType:                             "struct-type",
	KindUnionType:                              "union-type",
	KindIntegerLiteralExpression:               "integer-literal",
	KindRealLiteralExpression:                  "real-literal",
	KindUnbasedUnsizedLiteralExpression:        "unbased-unsized-literal",
	KindNullLiteralExpression:                  "null-literal",
	KindStringLiteralExpression:                "string-literal",
	KindIdentifierName:                         "identifier-name",
	KindScopedName:                             "scoped-name",
	KindUnaryExpression:                        "unary-expression",
	KindBinaryExpression:                       "binary-expression",
	KindConditionalExpression:                  "conditional-expression",
	KindAssignmentExpression:                   "assignment-expression",
	KindConcatenationExpression:                "concatenation-expression",
	KindReplicationExpression:                  "replication-expression",
	KindElementSelectExpression:                "element-select-expression",
	KindRangeSelectExpression:                  "range-select-expression",
	KindMemberAccessExpression:                 "member-access-expression",
	KindInvocationExpression:                   "invocation-expression",
	KindSimpleAssignmentPatternExpression:       "simple-assignment-pattern",
	KindStructuredAssignmentPatternExpression:   "structured-assignment-pattern",
	KindReplicatedAssignmentPatternExpression:   "replicated-assignment-pattern",
	KindBlockStatement:                         "block-statement",
	KindExpressionStatement:                    "expression-statement",
	KindConditionalStatement:                   "conditional-statement",
	KindCaseStatement:                          "case-statement",
	KindCaseItem:                               "case-item",
	KindForLoopStatement:                       "for-loop-statement",
	KindReturnStatement:                        "return-statement",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsExpression reports whether k tags an expression-producing node.
func (k Kind) IsExpression() bool {
	return k >= KindIntegerLiteralExpression && k <= KindReplicatedAssignmentPatternExpression
}
