package eval

import (
	"slangcore/bind"
	"slangcore/diag"
	"slangcore/symbols"
)

// VerifyConstant walks expr and reports a diagnostic for every non-constant
// construct reachable from a constant context -- a call to a non-constant
// subroutine, a reference to a non-parameter variable, a hierarchical
// reference -- without stopping at the first one, so a single bad
// expression lists every offender in one pass. It always completes (modulo
// errorLimit, enforced by the shared diag.Bag), regardless of how many
// problems it finds.
func VerifyConstant(bag *diag.Bag, loc diag.SourceLocation, expr *bind.Expression) {
	if expr == nil {
		return
	}

	switch expr.Kind {
	case bind.ExprInvalid:
		// already diagnosed wherever it was produced; don't cascade.
		return

	case bind.ExprNamedValue:
		sym := expr.Payload.(bind.NamedValueData).Symbol
		if _, ok := sym.(*symbols.ParameterSymbol); !ok {
			bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, loc,
				"%q is not usable in a constant expression", sym.SymbolName()))
		}
		return

	case bind.ExprCall:
		data := expr.Payload.(bind.CallData)
		if data.SystemName == "" && (data.Subroutine == nil || !data.Subroutine.IsFunction) {
			bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, loc,
				"call is not constant-evaluable"))
		}
		for _, a := range data.Args {
			VerifyConstant(bag, loc, a)
		}
		return
	}

	for _, child := range children(expr) {
		VerifyConstant(bag, loc, child)
	}
}

// children returns the direct expression operands of expr, dispatching on
// its Payload the same way Eval does, so VerifyConstant's traversal stays
// in lockstep with evaluation's.
func children(expr *bind.Expression) []*bind.Expression {
	switch data := expr.Payload.(type) {
	case bind.UnaryOpData:
		return []*bind.Expression{data.Operand}
	case bind.BinaryOpData:
		return []*bind.Expression{data.Left, data.Right}
	case bind.ConditionalOpData:
		return []*bind.Expression{data.Cond, data.Then, data.Else}
	case bind.AssignmentData:
		return []*bind.Expression{data.Target, data.Value}
	case bind.ConcatenationData:
		return data.Operands
	case bind.ReplicationData:
		return []*bind.Expression{data.Operand}
	case bind.ElementSelectData:
		return []*bind.Expression{data.Value, data.Index}
	case bind.RangeSelectData:
		return []*bind.Expression{data.Value, data.Left, data.Right}
	case bind.MemberAccessData:
		return []*bind.Expression{data.Value}
	case bind.ConversionData:
		return []*bind.Expression{data.Operand}
	case bind.AssignmentPatternData:
		out := append([]*bind.Expression{}, data.Simple...)
		for _, v := range data.Structured {
			out = append(out, v)
		}
		if data.Replicated != nil {
			out = append(out, data.Replicated)
		}
		return out
	default:
		return nil
	}
}
