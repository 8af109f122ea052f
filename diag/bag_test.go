package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/diag"
)

func TestBagDeduplicatesByCodeAndLocation(t *testing.T) {
	b := diag.NewBag(0)
	loc := diag.SourceLocation{Buffer: 1, Offset: 10}

	require.True(t, b.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, loc, "undeclared identifier `x`")))
	require.True(t, b.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, loc, "undeclared identifier `x`")))

	ds := b.Diagnostics()
	require.Len(t, ds, 1)
	require.Equal(t, 1, len(ds[0].Notes))
	require.Equal(t, 1, b.ErrorCount())
}

func TestBagStopsAtErrorLimit(t *testing.T) {
	b := diag.NewBag(2)

	for i := 0; i < 5; i++ {
		loc := diag.SourceLocation{Buffer: 1, Offset: i}
		b.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, loc, "error %d", i))
	}

	require.True(t, b.LimitExceeded())

	ds := b.Diagnostics()
	var sawLimitDiag bool
	for _, d := range ds {
		if d.Code == diag.CodeErrorLimitExceeded {
			sawLimitDiag = true
		}
	}
	require.True(t, sawLimitDiag)
}

func TestBagIsIdempotentAcrossReentry(t *testing.T) {
	b := diag.NewBag(0)
	loc := diag.SourceLocation{Buffer: 2, Offset: 4}

	emit := func() {
		b.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, loc, "non-constant reference"))
	}

	emit()
	emit()
	emit()

	require.Len(t, b.Diagnostics(), 1)
}
