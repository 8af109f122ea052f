package compilation

import (
	"slangcore/diag"
	"slangcore/symbols"
	"slangcore/syntax"
)

// collectDefinitions scans every registered tree for top-level
// KindModuleDeclaration / KindInterfaceDeclaration / KindProgramDeclaration
// nodes and turns each into a symbols.Definition, keyed by name in
// c.definitions -- spec.md §3's "Definition... instances are elaborated
// from definitions," looked up by instantiation rather than ordinary scoped
// name resolution, so these are never placed in c.unit.Body.
func (c *Compilation) collectDefinitions() {
	for _, tree := range c.trees {
		c.collectFromTree(tree)
	}
}

func (c *Compilation) collectFromTree(tree *syntax.Node) {
	if tree == nil {
		return
	}
	if tree.Kind == syntax.KindCompilationUnit {
		for i := 0; i < tree.Len(); i++ {
			c.collectFromTree(tree.At(i))
		}
		return
	}

	var kind symbols.DefinitionKind
	switch tree.Kind {
	case syntax.KindModuleDeclaration:
		kind = symbols.DefModule
	case syntax.KindInterfaceDeclaration:
		kind = symbols.DefInterface
	case syntax.KindProgramDeclaration:
		kind = symbols.DefProgram
	default:
		return
	}

	if _, exists := c.definitions[tree.Text]; exists {
		c.bag.Add(diag.Errorf(diag.CodeDuplicateDefinition, diag.CategoryName, tree.Range.Start,
			"%q is already defined", tree.Text))
		return
	}

	c.definitions[tree.Text] = &symbols.Definition{
		Base:           symbols.Base{Kind: symbols.KindDefinition, Name: tree.Text, Loc: tree.Range.Start},
		DefinitionKind: kind,
		BodySyntax:     tree,
		DeclaringScope: c.unit.Body,
	}
}

// instantiatedElsewhere reports whether any definition's body syntax
// contains a KindHierarchyInstantiation referencing name -- used by
// top-module auto-detection (spec.md §4.8 step (b): "all modules
// uninstantiated elsewhere").
func (c *Compilation) instantiatedElsewhere(name string) bool {
	for _, def := range c.definitions {
		if containsInstantiationOf(def.BodySyntax, name) {
			return true
		}
	}
	return false
}

func containsInstantiationOf(n *syntax.Node, name string) bool {
	if n == nil {
		return false
	}
	if n.Kind == syntax.KindHierarchyInstantiation && n.Text == name {
		return true
	}
	for i := 0; i < n.Len(); i++ {
		if containsInstantiationOf(n.At(i), name) {
			return true
		}
	}
	return false
}

// topModuleNames determines which definitions elaborate as top instances:
// the explicit config.CompilationOptions.TopModules set if non-empty,
// otherwise every module-kind definition never instantiated by another.
func (c *Compilation) topModuleNames() []string {
	if len(c.opts.TopModules) > 0 {
		return c.opts.TopModules
	}
	var tops []string
	for name, def := range c.definitions {
		if def.DefinitionKind != symbols.DefModule {
			continue
		}
		if !c.instantiatedElsewhere(name) {
			tops = append(tops, name)
		}
	}
	return tops
}
