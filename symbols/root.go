package symbols

import "slangcore/arena"

// RootSymbol is the single top-level symbol of a finished compilation: it
// exposes the top instances selected during elaboration and is what the
// compilation package returns from getRoot(). It is also the outermost
// scope for upward hierarchical lookup to terminate against.
type RootSymbol struct {
	Base
	Body         *Scope
	TopInstances []*InstanceSymbol
}

func (r *RootSymbol) SymbolKind() Kind { return KindRoot }

// NewRoot creates an empty RootSymbol with its scope allocated from a.
func NewRoot(a *arena.Arena) *RootSymbol {
	r := &RootSymbol{Base: Base{Kind: KindRoot, Name: "$root"}}
	r.Body = NewScope(a, r)
	return r
}

// AddTopInstance records inst as one of the design's top-level instances.
func (r *RootSymbol) AddTopInstance(inst *InstanceSymbol) {
	r.TopInstances = append(r.TopInstances, inst)
}
