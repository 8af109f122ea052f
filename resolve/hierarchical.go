package resolve

import "slangcore/symbols"

// upwardHierarchicalLookup implements step 3 of the algorithm: when an
// unqualified head cannot be found through ordinary lexical scoping, walk
// the current instance path outward -- from the instance body owning
// `from`, to each instance placing that body, to the scope each instance is
// placed in -- looking in every enclosing instance body's scope along the
// way. This is what lets an always-block deep inside a design reference a
// name declared in a containing module without an explicit hierarchical
// path.
func upwardHierarchicalLookup(name string, from *symbols.Scope, loc symbols.LookupLocation) (symbols.Symbol, bool) {
	body, ok := enclosingInstanceBody(from)
	for ok {
		if sym, found := body.Body.Lookup(name, symbols.MaxLocation(body.Body), false); found {
			return sym, true
		}
		if len(body.Instances) == 0 {
			return nil, false
		}
		// An instance body may be shared by several placements; hierarchical
		// lookup only makes sense relative to one placement's path, so take
		// the first -- every placement's enclosing scope chain is equally
		// valid for resolving a name that doesn't depend on the parameter
		// binding itself.
		placement := body.Instances[0]
		outer := placement.ParentScope()
		if outer == nil {
			return nil, false
		}
		body, ok = enclosingInstanceBody(outer)
	}
	return nil, false
}

// enclosingInstanceBody returns the nearest InstanceBody that owns scope or
// one of scope's ancestors.
func enclosingInstanceBody(scope *symbols.Scope) (*symbols.InstanceBody, bool) {
	for s := scope; s != nil; s = s.Parent() {
		if ib, ok := s.Owner().(*symbols.InstanceBody); ok {
			return ib, true
		}
	}
	return nil, false
}
