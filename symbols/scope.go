package symbols

import (
	"slangcore/arena"
	"slangcore/diag"
)

// WildcardImport is one `import pkg::*;` recorded against a scope. It does
// not populate the name index; (resolve) consults the list on a lookup miss,
// honoring Loc so a wildcard import is only visible to lookups at or after
// the point it was declared.
type WildcardImport struct {
	Package *Scope
	Loc     LookupLocation
}

// deferredEntry is one lazily-materialized slice of a scope's members.
// Scopes backed by syntax that hasn't been walked yet register one of these
// instead of eagerly binding every member; Materialize runs every pending
// entry exactly once.
type deferredEntry struct {
	materialize func(*Scope)
}

// Scope holds an ordered member list, a name index, and the two side-band
// lists (deferred members, wildcard imports) the data model calls for.
// Scope never owns the memory of its members directly -- members live in
// the compilation's Arena -- it only orders and indexes references to them.
type Scope struct {
	arena *arena.Arena

	owner   Symbol // the symbol this scope is the body of (may be nil for a compilation unit)
	parent  *Scope // the lexically enclosing scope climbed during unqualified lookup
	members []Symbol
	names   *arena.OrderedMap[Symbol]

	deferred   []deferredEntry
	materiazed bool

	imports []WildcardImport

	finalized bool
}

// NewScope creates an empty scope owned by the given symbol (nil for the
// top-level compilation-unit scope).
func NewScope(a *arena.Arena, owner Symbol) *Scope {
	return &Scope{
		arena: a,
		owner: owner,
		names: arena.NewSymbolMap[Symbol](a),
	}
}

// NewNestedScope creates an empty scope owned by owner, lexically enclosed
// by parent -- unqualified lookup that misses in the new scope climbs to
// parent next.
func NewNestedScope(a *arena.Arena, owner Symbol, parent *Scope) *Scope {
	s := NewScope(a, owner)
	s.parent = parent
	return s
}

func (s *Scope) Owner() Symbol  { return s.owner }
func (s *Scope) Parent() *Scope { return s.parent }

// SetParent attaches a lexically enclosing scope after construction, used
// when a scope must exist before its eventual parent is known (e.g. the
// compilation unit scope, attached to the root once the root is built).
func (s *Scope) SetParent(parent *Scope) { s.parent = parent }

// AddMember appends sym to the member list and inserts it into the name
// index. A duplicate name emits a diagnostic through bag and keeps the
// first declaration, per the "duplicate names emit an error and keep the
// first" rule; sym's parent scope and index are always set, even on the
// duplicate path, so every symbol satisfies "parent scope set before
// visible" even when it loses the name-index race.
func (s *Scope) AddMember(sym Symbol, bag *diag.Bag) {
	if s.finalized {
		bag.Add(diag.Errorf(diag.CodeDuplicateDefinition, diag.CategoryElaboration, sym.Location(),
			"cannot add member %q to a scope after finalization", sym.SymbolName()))
		return
	}

	idx := len(s.members)
	sym.setParentScope(s)
	sym.setIndex(idx)
	s.members = append(s.members, sym)

	if sym.SymbolName() == "" {
		return // anonymous members (unnamed generate blocks, etc.) skip the name index
	}

	if !s.names.Set(sym.SymbolName(), sym) {
		if existing, ok := s.names.Get(sym.SymbolName()); ok {
			bag.Add(diag.Errorf(diag.CodeDuplicateDefinition, diag.CategoryName, sym.Location(),
				"%q is already defined at this scope, first declared as a %s", sym.SymbolName(), existing.SymbolKind()))
		}
	}
}

// AddWildcardImport records a wildcard import without touching the name
// index.
func (s *Scope) AddWildcardImport(pkg *Scope, at LookupLocation) {
	s.imports = append(s.imports, WildcardImport{Package: pkg, Loc: at})
}

// WildcardImports returns the recorded wildcard imports in declaration order.
func (s *Scope) WildcardImports() []WildcardImport {
	s.Materialize()
	return s.imports
}

// Defer registers a closure that materializes some of this scope's members
// from syntax the first time the scope is traversed. Multiple deferred
// entries may be registered (e.g. one per generate branch); Materialize
// drains them all, in registration order, exactly once.
func (s *Scope) Defer(f func(*Scope)) {
	s.deferred = append(s.deferred, deferredEntry{materialize: f})
}

// Materialize drains every pending deferred entry. It is idempotent: a
// second call is a no-op, matching the "materialization is idempotent"
// requirement so re-entrant lookups during recursive binding never double-
// add members.
func (s *Scope) Materialize() {
	if s.materiazed {
		return
	}
	s.materiazed = true
	pending := s.deferred
	s.deferred = nil
	for _, d := range pending {
		d.materialize(s)
	}
}

// Finalize marks the scope closed: any further AddMember call becomes an
// error, implementing "out-of-order inserts become errors post-
// finalization."
func (s *Scope) Finalize() {
	s.Materialize()
	s.finalized = true
}

// Lookup returns the member named name that is visible from loc, consulting
// only this scope's own name index -- it does not climb to a parent scope
// or consult wildcard imports; that is the job of (resolve)'s algorithm,
// which calls this once per scope on its climb.
func (s *Scope) Lookup(name string, loc LookupLocation, allowDeclaredAfter bool) (Symbol, bool) {
	s.Materialize()
	sym, ok := s.names.Get(name)
	if !ok {
		return nil, false
	}
	if !visibleAt(loc, sym.Index(), allowDeclaredAfter) {
		return nil, false
	}
	return sym, true
}

// Members returns every member in declaration order, ignoring
// LookupLocation -- used by full-tree visitors and JSON serialization.
func (s *Scope) Members() []Symbol {
	s.Materialize()
	return s.members
}

// Names returns every distinct member name in declaration order.
func (s *Scope) Names() []string {
	s.Materialize()
	return s.names.Names()
}
