package compilation

import (
	"slangcore/diag"
	"slangcore/resolve"
	"slangcore/symbols"
)

// resolveDefParams applies every pendingDefParam collected while
// materializing module bodies, bounded by maxDefParamSteps. Each defparam
// names a dotted hierarchical path to a parameter; resolve.Lookup already
// understands dotted names (the same mechanism a hierarchical reference
// inside an expression uses), so this reuses it directly rather than
// hand-rolling a second path walker.
//
// An override mutates the target ParameterSymbol's Value in place, on
// whichever InstanceBody the path resolves through -- it does not create a
// new cache entry or retroactively re-elaborate bodies whose parameters
// changed as a result (a defparam reaching into a shared, cached body
// affects every instance sharing it, matching the rare, legacy-only way
// real tools let defparam interact with instance sharing).
func (c *Compilation) resolveDefParams() {
	pending := c.defparams
	cfg := resolve.Config{TypoCorrectionLimit: c.TypoCorrectionLimit()}

	for step := 0; len(pending) > 0; step++ {
		if step >= c.opts.MaxDefParamSteps {
			c.bag.Add(diag.Errorf(diag.CodeDefParamStepLimit, diag.CategoryElaboration, pending[0].loc,
				"defparam resolution exceeded %d steps", c.opts.MaxDefParamSteps))
			return
		}

		next := pending[:0]
		changed := false
		for _, pd := range pending {
			if c.applyDefParam(pd, cfg) {
				changed = true
				continue
			}
			next = append(next, pd)
		}
		pending = next
		if !changed {
			return
		}
	}
}

func (c *Compilation) applyDefParam(pd pendingDefParam, cfg resolve.Config) bool {
	sym, ok := resolve.Lookup(resolve.Request{
		Name:      pd.path,
		From:      pd.scope,
		Location:  symbols.MaxLocation(pd.scope),
		Mode:      resolve.ModeNone,
		SourceLoc: pd.loc,
	}, cfg, c.bag)
	if !ok {
		return false
	}

	param, ok := sym.(*symbols.ParameterSymbol)
	if !ok {
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, pd.loc,
			"%q does not name a parameter", pd.path))
		return true
	}
	if param.IsLocal {
		c.bag.Add(diag.Errorf(diag.CodeTypeMismatch, diag.CategoryType, pd.loc,
			"%q is a localparam and cannot be overridden by defparam", pd.path))
		return true
	}

	param.Value = c.evalConst(pd.scope, pd.value)
	param.IsOverride = true
	return true
}
