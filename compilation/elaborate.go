package compilation

import (
	"sort"
	"strings"

	"slangcore/constant"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
)

// instFrame carries the per-instance-body context materializeItem needs
// that isn't recoverable from the scope tree on its own: the hierarchical
// path prefix (for nested InstanceSymbol.HierarchicalPath) and the current
// instantiation depth (for the maxInstanceDepth budget).
type instFrame struct {
	hierPath string
	depth    int
}

// GetRoot runs spec.md §4.8's getRoot algorithm on first call and returns
// the same RootSymbol on every later call -- the idempotence invariant
// §8 tests for.
func (c *Compilation) GetRoot() *symbols.RootSymbol {
	if c.root != nil {
		return c.root
	}

	c.root = symbols.NewRoot(c.arena)
	c.unit.Body.SetParent(c.root.Body)

	// (a) create definitions from all registered trees.
	c.collectDefinitions()

	// (b) determine top modules.
	tops := c.topModuleNames()
	sort.Strings(tops)

	// (c) elaborate each top with empty parameter context.
	for _, name := range tops {
		def, ok := c.definitions[name]
		if !ok {
			continue
		}
		// elaborateInstance places each top instance in the root scope
		// before populating its body.
		c.elaborateTop(def)
	}

	// (d)/(e) resolve defparams via fix-point iteration; each override
	// takes effect in place on the body it targets.
	c.resolveDefParams()

	// (f) mark finalized.
	c.finalized = true
	return c.root
}

// GetSemanticDiagnostics forces getRoot, walks the full symbol tree to
// drain any scope materialization skipped, and returns the recorded
// diagnostics.
func (c *Compilation) GetSemanticDiagnostics() []diag.Diagnostic {
	root := c.GetRoot()
	for _, inst := range root.TopInstances {
		c.drainScope(inst.Body.Body)
	}
	return c.bag.Diagnostics()
}

func (c *Compilation) drainScope(s *symbols.Scope) {
	if s == nil {
		return
	}
	s.Materialize()
	for _, sym := range s.Members() {
		switch v := sym.(type) {
		case *symbols.InstanceSymbol:
			c.drainScope(v.Body.Body)
		case *symbols.GenerateBlockSymbol:
			c.drainScope(v.Body)
		case *symbols.StatementBlockSymbol:
			c.drainScope(v.Body)
		case *symbols.SubroutineSymbol:
			c.drainScope(v.Body)
		}
	}
}

// elaborateTop elaborates def as a top-level instance: no port connections
// (a top module's ports are left dangling, per real elaborators), and
// parameter overrides drawn from config.CompilationOptions.ParamOverrides
// when that override names one of def's parameters. A config override's
// value is command-line text, not parsed syntax -- this core owns no
// expression parser (parsing is an external collaborator, spec.md §1), so
// only the overwhelmingly common plain-integer-literal case (`-Gwidth=8`)
// is honored; anything else is diagnosed rather than silently misread as a
// string.
func (c *Compilation) elaborateTop(def *symbols.Definition) *symbols.InstanceSymbol {
	overrides := map[string]*syntax.Node{}
	for _, ov := range c.opts.ParamOverrides {
		if !isDecimalLiteral(ov.Value) {
			c.bag.Add(diag.Errorf(diag.CodeNotConstant, diag.CategoryConstEval, def.Loc,
				"parameter override %q=%q is not a plain integer literal", ov.Name, ov.Value))
			continue
		}
		lit := syntax.NewLeaf(syntax.KindIntegerLiteralExpression, diag.SourceRange{}, strings.TrimPrefix(ov.Value, "-"))
		if strings.HasPrefix(ov.Value, "-") {
			neg := syntax.New(syntax.KindUnaryExpression, diag.SourceRange{}, lit)
			neg.Op = "-"
			lit = neg
		}
		overrides[ov.Name] = lit
	}
	return c.elaborateInstance(def, overrides, c.unit.Body, def.Name, instFrame{hierPath: def.Name, depth: 1}, def.Loc)
}

func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// elaborateInstance resolves def's parameters against overrides (keyed by
// parameter name, each an expression bound and evaluated against
// overrideScope -- the instantiating site), consults the instance-body
// cache on the resulting canonical tuple, and on a miss builds a fresh
// InstanceBody and materializes every remaining item into it.
func (c *Compilation) elaborateInstance(def *symbols.Definition, overrides map[string]*syntax.Node, overrideScope *symbols.Scope, instName string, frame instFrame, loc diag.SourceLocation) *symbols.InstanceSymbol {
	if frame.depth > c.opts.MaxInstanceDepth {
		c.diagInstanceDepthExceeded(loc)
		return nil
	}

	body := &symbols.InstanceBody{
		Base:       symbols.Base{Kind: symbols.KindInstanceBody, Name: def.Name, Loc: def.Loc},
		Definition: def,
	}
	bodyScope := symbols.NewNestedScope(c.arena, body, def.DeclaringScope)
	body.Body = bodyScope

	var paramTuple []symbols.ParamBinding
	for i := 0; i < def.BodySyntax.Len(); i++ {
		item := def.BodySyntax.At(i)
		if item.Kind != syntax.KindParameterDeclaration {
			continue
		}
		p := c.resolveParameter(item, bodyScope, overrides, overrideScope)
		bodyScope.AddMember(p, c.bag)
		paramTuple = append(paramTuple, symbols.ParamBinding{Name: p.SymbolName(), Value: p.Value})
	}
	body.Params = paramTuple

	key := instanceCacheKey{def: def, params: c.paramTupleKey(paramTuple)}
	populate := true
	if !c.opts.DisableInstanceCaching {
		if cached, ok := c.instanceBodies.Get(key); ok {
			body = cached
			populate = false
		} else {
			c.instanceBodies.Set(key, body)
		}
	}

	inst := &symbols.InstanceSymbol{
		Base:             symbols.Base{Kind: symbols.KindInstance, Name: instName, Loc: loc},
		Body:             body,
		HierarchicalPath: frame.hierPath,
	}
	body.Instances = append(body.Instances, inst)
	if frame.depth == 1 {
		// A top instance joins the root scope before its body is populated,
		// so names bound inside the body (e.g. `top.u.x`) can reach it.
		c.root.AddTopInstance(inst)
		c.root.Body.AddMember(inst, c.bag)
	}
	if populate {
		c.frames[body] = frame
		c.populateBody(def, body)
	}
	return inst
}

// resolveParameter evaluates one KindParameterDeclaration item's default
// (or, if overrides names it, the override expression instead, evaluated
// against overrideScope -- the instantiating site, since an override
// expression may reference the instantiator's own parameters, not the
// instantiated module's).
func (c *Compilation) resolveParameter(item *syntax.Node, bodyScope *symbols.Scope, overrides map[string]*syntax.Node, overrideScope *symbols.Scope) *symbols.ParameterSymbol {
	typeNode, defaultNode := splitParamChildren(item)

	p := &symbols.ParameterSymbol{
		Base: symbols.Base{Kind: symbols.KindParameter, Name: item.Text, Loc: item.Range.Start},
		Type: c.Interner().Int(),
	}
	if typeNode != nil {
		ctx := c.constCtx(bodyScope)
		p.Type = c.resolveTypeNode(typeNode, &ctx)
	}

	if ov, ok := overrides[item.Text]; ok {
		p.Value = c.evalConst(overrideScope, ov)
		p.IsOverride = true
	} else if defaultNode != nil {
		p.Value = c.evalConst(bodyScope, defaultNode)
	} else {
		p.Value = constant.Error()
	}
	return p
}

// splitParamChildren applies the KindParameterDeclaration /
// KindLocalParameterDeclaration node-shape convention (documented in full
// in materialize.go): one child means a bare default expression (implicit
// int type); two children means [typeNode, defaultExpr].
func splitParamChildren(item *syntax.Node) (typeNode, defaultNode *syntax.Node) {
	switch item.Len() {
	case 1:
		return nil, item.At(0)
	case 2:
		return item.At(0), item.At(1)
	default:
		return nil, nil
	}
}
