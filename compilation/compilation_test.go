package compilation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangcore/compilation"
	"slangcore/config"
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
)

func leaf(kind syntax.Kind, text string) *syntax.Node {
	return syntax.NewLeaf(kind, diag.SourceRange{}, text)
}

func module(name string, children ...*syntax.Node) *syntax.Node {
	n := syntax.New(syntax.KindModuleDeclaration, diag.SourceRange{}, children...)
	n.Text = name
	return n
}

func netDecl(name string) *syntax.Node {
	n := syntax.New(syntax.KindNetDeclaration, diag.SourceRange{})
	n.Text = name
	n.Op = "wire"
	return n
}

func portDecl(name, direction string) *syntax.Node {
	n := syntax.New(syntax.KindPortDeclaration, diag.SourceRange{})
	n.Text = name
	n.Op = direction
	return n
}

func paramDecl(name string, value *syntax.Node) *syntax.Node {
	n := syntax.New(syntax.KindParameterDeclaration, diag.SourceRange{}, value)
	n.Text = name
	return n
}

func overrideList(overrides ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindParameterDeclaration, diag.SourceRange{}, overrides...)
}

func instantiate(defName, instName string, overrides *syntax.Node) *syntax.Node {
	var n *syntax.Node
	if overrides != nil {
		n = syntax.New(syntax.KindHierarchyInstantiation, diag.SourceRange{}, overrides)
	} else {
		n = syntax.New(syntax.KindHierarchyInstantiation, diag.SourceRange{})
	}
	n.Text = defName
	n.Op = instName
	return n
}

func assign(lvalue, rvalue *syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindContinuousAssign, diag.SourceRange{}, lvalue, rvalue)
}

func ident(name string) *syntax.Node {
	return leaf(syntax.KindIdentifierName, name)
}

func intLit(text string) *syntax.Node {
	return leaf(syntax.KindIntegerLiteralExpression, text)
}

func memberOf(scope *symbols.Scope, name string) symbols.Symbol {
	for _, sym := range scope.Members() {
		if sym.SymbolName() == name {
			return sym
		}
	}
	return nil
}

// Scenario #1: a module with a port and a net elaborates to exactly one top
// instance, and GetRoot is idempotent across repeated calls.
func TestSimpleModuleElaboration(t *testing.T) {
	top := module("top",
		portDecl("clk", "input"),
		netDecl("out"),
	)

	c := compilation.NewCompilation(config.DefaultOptions())
	c.AddSyntaxTree(top)

	root := c.GetRoot()
	require.Len(t, root.TopInstances, 1)
	require.Equal(t, "top", root.TopInstances[0].SymbolName())

	require.NotNil(t, memberOf(root.TopInstances[0].Body.Body, "clk"))
	require.NotNil(t, memberOf(root.TopInstances[0].Body.Body, "out"))

	again := c.GetRoot()
	require.Same(t, root, again)
}

// Scenario #2: two instances elaborated with canonically-equal parameter
// values share the same InstanceBody, and an instance with a different
// value gets its own.
func TestParameterOverrideSharesInstanceBody(t *testing.T) {
	leafMod := module("leaf", paramDecl("W", intLit("8")))
	top := module("top",
		instantiate("leaf", "u1", nil),
		instantiate("leaf", "u2", overrideList(paramDecl("W", intLit("8")))),
		instantiate("leaf", "u3", overrideList(paramDecl("W", intLit("16")))),
	)

	c := compilation.NewCompilation(config.DefaultOptions())
	c.AddSyntaxTree(leafMod)
	c.AddSyntaxTree(top)

	root := c.GetRoot()
	require.Empty(t, errorsOnly(c.GetSemanticDiagnostics()))

	topScope := root.TopInstances[0].Body.Body
	u1, ok := memberOf(topScope, "u1").(*symbols.InstanceSymbol)
	require.True(t, ok)
	u2, ok := memberOf(topScope, "u2").(*symbols.InstanceSymbol)
	require.True(t, ok)
	u3, ok := memberOf(topScope, "u3").(*symbols.InstanceSymbol)
	require.True(t, ok)

	require.Same(t, u1.Body, u2.Body, "equal resolved parameter values must share one InstanceBody")
	require.NotSame(t, u1.Body, u3.Body, "a differing parameter value must get its own InstanceBody")
}

// Scenario #6: a reference to the design's own top-level name from within
// the top module itself resolves through the root scope, exercising both
// ordinary lexical climbing up through $unit to $root and a dotted
// hierarchical path back down into a child instance.
func TestHierarchicalLookupFromWithinTop(t *testing.T) {
	leafMod := module("leaf", netDecl("x"))
	top := module("top",
		netDecl("y"),
		instantiate("leaf", "u", nil),
		assign(ident("y"), ident("top.u.x")),
	)

	c := compilation.NewCompilation(config.DefaultOptions())
	c.AddSyntaxTree(leafMod)
	c.AddSyntaxTree(top)

	c.GetRoot()
	diags := errorsOnly(c.GetSemanticDiagnostics())
	require.Empty(t, diags, "resolving top.u.x from within top itself must not error")
}

// A reference to a name that is never declared anywhere in scope must
// fail to resolve and produce a diagnostic.
func TestUnresolvedNameIsAnError(t *testing.T) {
	top := module("top",
		netDecl("y"),
		assign(ident("y"), ident("never_declared")),
	)

	c := compilation.NewCompilation(config.DefaultOptions())
	c.AddSyntaxTree(top)

	c.GetRoot()
	diags := errorsOnly(c.GetSemanticDiagnostics())
	require.NotEmpty(t, diags)
}

func errorsOnly(diags []diag.Diagnostic) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			out = append(out, d)
		}
	}
	return out
}
