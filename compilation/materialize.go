package compilation

import (
	"fmt"

	"slangcore/bind"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
)

// populateBody defers every non-parameter item of def's body onto body's
// scope (parameters are already placed by elaborateInstance, since the
// instance-body cache key needs them resolved eagerly), then forces
// materialization immediately -- getRoot's defparam fix-point pass (step
// (d)) needs every body fully elaborated up front, so this core trades the
// laziness the Scope.Defer/Materialize idiom otherwise buys for
// deterministic, single-pass elaboration. A second Materialize call
// elsewhere (e.g. GetSemanticDiagnostics's drain) is a no-op per Scope's own
// idempotence guarantee.
func (c *Compilation) populateBody(def *symbols.Definition, body *symbols.InstanceBody) {
	scope := body.Body
	for i := 0; i < def.BodySyntax.Len(); i++ {
		item := def.BodySyntax.At(i)
		if item.Kind == syntax.KindParameterDeclaration {
			continue
		}
		scope.Defer(func(s *symbols.Scope) {
			c.materializeItem(s, item)
		})
	}
	scope.Materialize()
}

// materializeItem turns one module-item syntax node into symbols placed in
// scope. It also serves as the generate.ItemMaterializer the shared
// Generator calls for every surviving generate-block item, so ordinary
// module items and generate-construct items flow through one dispatcher.
//
// Node-shape convention for the module-item subset this core consumes:
//   - KindPortDeclaration: Text the port name, Op the direction keyword
//     ("input"/"output"/"inout"/"ref"), At(0) the optional type node
//     (absent means an implicit 1-bit logic port).
//   - KindParameterDeclaration / KindLocalParameterDeclaration: Text the
//     name; one child is a bare default expression (implicit int type), two
//     children are [typeNode, defaultExpr].
//   - KindDataDeclaration: Text the name, At(0) the type node; also reused
//     for function/task formal parameters.
//   - KindNetDeclaration: Text the name, Op the net kind keyword (e.g.
//     "wire"), At(0) the optional type node.
//   - KindTypedefDeclaration: Text the alias name, At(0) the target type.
//   - KindGenvarDeclaration: Text the genvar name, no children.
//   - KindFunctionDeclaration: Text the name, At(0) the return type; the
//     remaining children but the last are KindDataDeclaration-shaped formal
//     parameters, and the last child is the body statement.
//   - KindTaskDeclaration: Text the name; all children but the last are
//     formal parameters, the last child is the body statement.
//   - KindHierarchyInstantiation: Text the definition name, Op the instance
//     name; At(0) a parameter-override container (each child
//     KindParameterDeclaration-shaped: Text the name, At(0) the override
//     expr) and At(1) a port-connection container (each child
//     KindPortDeclaration-shaped: Text the port name, At(0) the connected
//     expr) -- both containers may be nil/empty.
//   - KindContinuousAssign: At(0) the lvalue expr, At(1) the rvalue expr,
//     bound for diagnostics only; no symbol is created.
//   - KindInitialBlock / KindAlwaysBlock: children are a statement list;
//     only KindExpressionStatement children are bound (via At(0)), for
//     diagnostics only -- full procedural execution is an explicit
//     Non-goal, so no StatementBlockSymbol's worth of control flow is
//     interpreted here.
//   - KindGenerateRegion / KindGenerateIf / KindGenerateFor: delegated
//     whole to the shared Generator.
//   - KindDefParam: Text the dotted hierarchical target path, At(0) the
//     override expression; collected into c.defparams rather than
//     materialized immediately, resolved by the fix-point pass in
//     defparam.go.
func (c *Compilation) materializeItem(scope *symbols.Scope, item *syntax.Node) {
	switch item.Kind {
	case syntax.KindPortDeclaration:
		c.materializePort(scope, item)
	case syntax.KindLocalParameterDeclaration:
		c.materializeLocalParam(scope, item)
	case syntax.KindDataDeclaration:
		c.materializeVariable(scope, item)
	case syntax.KindNetDeclaration:
		c.materializeNet(scope, item)
	case syntax.KindTypedefDeclaration:
		c.materializeTypedef(scope, item)
	case syntax.KindGenvarDeclaration:
		scope.AddMember(&symbols.GenvarSymbol{Base: symbols.Base{Kind: symbols.KindGenvar, Name: item.Text, Loc: item.Range.Start}}, c.bag)
	case syntax.KindFunctionDeclaration:
		c.materializeSubroutine(scope, item, true)
	case syntax.KindTaskDeclaration:
		c.materializeSubroutine(scope, item, false)
	case syntax.KindHierarchyInstantiation:
		c.materializeInstantiation(scope, item)
	case syntax.KindContinuousAssign:
		c.bindDiagnosticOnly(scope, item.At(0))
		c.bindDiagnosticOnly(scope, item.At(1))
	case syntax.KindInitialBlock, syntax.KindAlwaysBlock:
		for i := 0; i < item.Len(); i++ {
			stmt := item.At(i)
			if stmt.Kind == syntax.KindExpressionStatement {
				c.bindDiagnosticOnly(scope, stmt.At(0))
			}
		}
	case syntax.KindGenerateRegion, syntax.KindGenerateIf, syntax.KindGenerateFor:
		c.generator().Elaborate(scope, item)
	case syntax.KindDefParam:
		c.defparams = append(c.defparams, pendingDefParam{
			path:  item.Text,
			value: item.At(0),
			scope: scope,
			loc:   item.Range.Start,
		})
	}
}

func (c *Compilation) bindDiagnosticOnly(scope *symbols.Scope, n *syntax.Node) {
	if n == nil {
		return
	}
	bind.BindExpression(c.bindCtx(scope), n)
}

func (c *Compilation) materializePort(scope *symbols.Scope, item *syntax.Node) {
	p := &symbols.PortSymbol{
		Base:      symbols.Base{Kind: symbols.KindPort, Name: item.Text, Loc: item.Range.Start},
		Type:      c.Interner().GetIntegral(1, false, true),
		Direction: portDirection(item.Op),
	}
	if item.At(0) != nil {
		ctx := c.bindCtx(scope)
		p.Type = c.resolveTypeNode(item.At(0), &ctx)
	}
	scope.AddMember(p, c.bag)
}

func portDirection(op string) symbols.PortDirection {
	switch op {
	case "input":
		return symbols.DirInput
	case "output":
		return symbols.DirOutput
	case "inout":
		return symbols.DirInout
	case "ref":
		return symbols.DirRef
	default:
		return symbols.DirUnknown
	}
}

func (c *Compilation) materializeLocalParam(scope *symbols.Scope, item *syntax.Node) {
	typeNode, defaultNode := splitParamChildren(item)
	p := &symbols.ParameterSymbol{
		Base:    symbols.Base{Kind: symbols.KindParameter, Name: item.Text, Loc: item.Range.Start},
		Type:    c.Interner().Int(),
		IsLocal: true,
	}
	if typeNode != nil {
		ctx := c.constCtx(scope)
		p.Type = c.resolveTypeNode(typeNode, &ctx)
	}
	p.Value = c.evalConst(scope, defaultNode)
	scope.AddMember(p, c.bag)
}

func (c *Compilation) materializeVariable(scope *symbols.Scope, item *syntax.Node) {
	v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: item.Text, Loc: item.Range.Start}}
	ctx := c.bindCtx(scope)
	v.Type = c.resolveTypeNode(item.At(0), &ctx)
	scope.AddMember(v, c.bag)
}

func (c *Compilation) materializeNet(scope *symbols.Scope, item *syntax.Node) {
	n := &symbols.NetSymbol{
		Base:    symbols.Base{Kind: symbols.KindNet, Name: item.Text, Loc: item.Range.Start},
		Type:    c.Interner().GetIntegral(1, false, true),
		NetKind: item.Op,
	}
	if item.At(0) != nil {
		ctx := c.bindCtx(scope)
		n.Type = c.resolveTypeNode(item.At(0), &ctx)
	}
	scope.AddMember(n, c.bag)
}

func (c *Compilation) materializeTypedef(scope *symbols.Scope, item *syntax.Node) {
	t := &symbols.TypeAliasSymbol{Base: symbols.Base{Kind: symbols.KindTypeAlias, Name: item.Text, Loc: item.Range.Start}}
	ctx := c.bindCtx(scope)
	t.Target = c.resolveTypeNode(item.At(0), &ctx)
	scope.AddMember(t, c.bag)
}

func (c *Compilation) materializeSubroutine(scope *symbols.Scope, item *syntax.Node, isFunction bool) {
	sub := &symbols.SubroutineSymbol{
		Base:       symbols.Base{Kind: symbols.KindSubroutine, Name: item.Text, Loc: item.Range.Start},
		IsFunction: isFunction,
	}
	sub.Body = symbols.NewNestedScope(c.arena, sub, scope)

	lastFormal := item.Len() - 2
	firstFormal := 0
	if isFunction {
		ctx := c.bindCtx(scope)
		sub.ReturnType = c.resolveTypeNode(item.At(0), &ctx)
		firstFormal = 1
	} else {
		sub.ReturnType = c.Interner().Void()
	}

	for i := firstFormal; i <= lastFormal && i >= firstFormal; i++ {
		formal := item.At(i)
		if formal == nil {
			continue
		}
		v := &symbols.VariableSymbol{Base: symbols.Base{Kind: symbols.KindVariable, Name: formal.Text, Loc: formal.Range.Start}, Automatic: true}
		ctx := c.bindCtx(sub.Body)
		v.Type = c.resolveTypeNode(formal.At(0), &ctx)
		sub.Body.AddMember(v, c.bag)
		sub.Params = append(sub.Params, v)
	}

	sub.BodySyntax = item.At(item.Len() - 1)
	scope.AddMember(sub, c.bag)
}

func (c *Compilation) materializeInstantiation(scope *symbols.Scope, item *syntax.Node) {
	def, ok := c.definitions[item.Text]
	if !ok {
		c.bag.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, item.Range.Start,
			"unknown module, interface, or program %q", item.Text))
		return
	}

	overrides := map[string]*syntax.Node{}
	if paramList := item.At(0); paramList != nil {
		for i := 0; i < paramList.Len(); i++ {
			ov := paramList.At(i)
			overrides[ov.Text] = ov.At(0)
		}
	}

	parentFrame, _ := c.enclosingFrame(scope)
	childFrame := instFrame{
		hierPath: fmt.Sprintf("%s.%s", parentFrame.hierPath, item.Op),
		depth:    parentFrame.depth + 1,
	}

	inst := c.elaborateInstance(def, overrides, scope, item.Op, childFrame, item.Range.Start)
	if inst == nil {
		return
	}
	scope.AddMember(inst, c.bag)

	if portList := item.At(1); portList != nil {
		for i := 0; i < portList.Len(); i++ {
			conn := portList.At(i)
			c.bindDiagnosticOnly(scope, conn.At(0))
		}
	}
}

// enclosingFrame finds the instFrame recorded for the InstanceBody owning
// scope or one of scope's ancestors -- the same upward climb
// (resolve).enclosingInstanceBody performs for hierarchical lookup. A
// generate block placed between scope and that InstanceBody contributes no
// path segment of its own here; nested instance paths are named relative
// to the enclosing module instance, not per generate-block label.
func (c *Compilation) enclosingFrame(scope *symbols.Scope) (instFrame, bool) {
	for s := scope; s != nil; s = s.Parent() {
		if ib, ok := s.Owner().(*symbols.InstanceBody); ok {
			if f, ok := c.frames[ib]; ok {
				return f, true
			}
		}
	}
	return instFrame{hierPath: "$root", depth: 1}, false
}
