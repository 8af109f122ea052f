package compilation

import (
	"encoding/json"

	"slangcore/constant"
	"slangcore/symbols"
)

// symbolView is the JSON shape one symbol serializes to: a structured tree
// tools and tests can diff, rather than a dump of the internal pointer
// graph. Fields are omitted when not meaningful for a given symbol kind.
type symbolView struct {
	Kind    string        `json:"kind"`
	Name    string        `json:"name,omitempty"`
	Type    string        `json:"type,omitempty"`
	Value   string        `json:"value,omitempty"`
	Path    string        `json:"path,omitempty"`
	Active  *bool         `json:"active,omitempty"`
	Members []symbolView `json:"members,omitempty"`
}

// SerializeRoot renders the finished design (forcing GetRoot if it hasn't
// run yet) as an indented JSON document: one entry per top instance, each
// recursively expanding its instance body's members. Used by the cmd demo
// driver's -dump-symbols flag and by tests that want to assert on shape
// rather than walk the symbol graph by hand.
func (c *Compilation) SerializeRoot() ([]byte, error) {
	root := c.GetRoot()
	var tops []symbolView
	for _, inst := range root.TopInstances {
		tops = append(tops, viewInstance(inst))
	}
	return json.MarshalIndent(tops, "", "  ")
}

func viewInstance(inst *symbols.InstanceSymbol) symbolView {
	v := symbolView{
		Kind: "instance",
		Name: inst.SymbolName(),
		Type: inst.Body.Definition.SymbolName(),
		Path: inst.HierarchicalPath,
	}
	for _, p := range inst.Body.Params {
		pv, _ := p.Value.(constant.Value)
		v.Members = append(v.Members, symbolView{Kind: "param", Name: p.Name, Value: pv.GoString()})
	}
	for _, sym := range inst.Body.Body.Members() {
		v.Members = append(v.Members, viewSymbol(sym))
	}
	return v
}

func viewSymbol(sym symbols.Symbol) symbolView {
	switch s := sym.(type) {
	case *symbols.ParameterSymbol:
		value, _ := s.Value.(constant.Value)
		kind := "parameter"
		if s.IsLocal {
			kind = "localparam"
		}
		return symbolView{Kind: kind, Name: s.SymbolName(), Type: s.Type.Repr(), Value: value.GoString()}
	case *symbols.PortSymbol:
		return symbolView{Kind: "port", Name: s.SymbolName(), Type: s.Type.Repr()}
	case *symbols.NetSymbol:
		return symbolView{Kind: "net", Name: s.SymbolName(), Type: s.Type.Repr()}
	case *symbols.VariableSymbol:
		return symbolView{Kind: "variable", Name: s.SymbolName(), Type: s.Type.Repr()}
	case *symbols.TypeAliasSymbol:
		return symbolView{Kind: "typedef", Name: s.SymbolName(), Type: s.Target.Repr()}
	case *symbols.GenvarSymbol:
		return symbolView{Kind: "genvar", Name: s.SymbolName()}
	case *symbols.SubroutineSymbol:
		return symbolView{Kind: "subroutine", Name: s.SymbolName(), Type: s.ReturnType.Repr()}
	case *symbols.GenerateBlockSymbol:
		active := s.Active
		v := symbolView{Kind: "generate-block", Name: s.SymbolName(), Active: &active}
		if active {
			for _, member := range s.Body.Members() {
				v.Members = append(v.Members, viewSymbol(member))
			}
		}
		return v
	case *symbols.InstanceSymbol:
		return viewInstance(s)
	default:
		return symbolView{Kind: sym.SymbolKind().String(), Name: sym.SymbolName()}
	}
}
