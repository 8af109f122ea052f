package bind

import (
	"slangcore/diag"
	"slangcore/syntax"
)

func diagNotAnExpression(node *syntax.Node) diag.Diagnostic {
	return diag.Errorf(diag.CodeTypeMismatch, diag.CategorySyntax, node.Range.Start,
		"%q cannot appear where an expression is expected", node.Kind.String())
}

func diagTypeMismatch(loc diag.SourceLocation, dstRepr, srcRepr string) diag.Diagnostic {
	return diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, loc,
		"cannot implicitly convert %q to %q", srcRepr, dstRepr)
}
