package resolve

import (
	"strings"

	"slangcore/diag"
	"slangcore/symbols"
)

// Config carries the bounded-budget knobs lookup consults: only
// typoCorrectionLimit matters here, but it is threaded as a struct so the
// compilation package's CompilationOptions can be passed straight through.
type Config struct {
	TypoCorrectionLimit int
}

// Request describes one name-resolution query: a (possibly dotted) name,
// the scope and location it is issued from, the lookup mode, and the
// source location of the reference itself (used only for diagnostics, since
// LookupLocation is not comparable across scopes).
type Request struct {
	Name     string
	From     *symbols.Scope
	Location symbols.LookupLocation
	Mode     Mode
	SourceLoc diag.SourceLocation
}

// Lookup resolves name against (scope, location) per the name-lookup
// algorithm: climb parent scopes for the head segment (consulting wildcard
// imports on a miss), resolve subsequent dotted segments within the
// previously found symbol's child scope, fall back to upward hierarchical
// lookup for an unqualified miss, and finally attempt bounded typo
// correction. bag receives exactly one diagnostic for an unresolved name.
func Lookup(req Request, cfg Config, bag *diag.Bag) (symbols.Symbol, bool) {
	segments := strings.Split(strings.ReplaceAll(req.Name, "::", "."), ".")

	head, ok := resolveHead(segments[0], req.From, req.Location, req.Mode, req.SourceLoc, bag)
	if !ok {
		if req.Mode.has(ModeConstant) || req.Mode.has(ModeType) {
			return reportUnresolved(req, cfg, bag)
		}
		if up, ok := upwardHierarchicalLookup(segments[0], req.From, req.Location); ok {
			head = up
		} else {
			return reportUnresolved(req, cfg, bag)
		}
	}

	current := head
	for _, seg := range segments[1:] {
		child := childScopeOf(current)
		if child == nil {
			bag.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, req.SourceLoc,
				"%q is not a scope and cannot be the target of member %q", current.SymbolName(), seg))
			return nil, false
		}
		next, ok := child.Lookup(seg, symbols.MaxLocation(child), true)
		if !ok {
			bag.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, req.SourceLoc,
				"no member %q in %q", seg, current.SymbolName()))
			return nil, false
		}
		current = next
	}

	return current, true
}

// resolveHead climbs from scope up through parent scopes, at each level
// searching the name index, then (unless disallowed) the wildcard-import
// list, stopping at the first scope that resolves the name. A same-scope
// declaration always wins over an import at that same scope level.
func resolveHead(name string, scope *symbols.Scope, loc symbols.LookupLocation, mode Mode, srcLoc diag.SourceLocation, bag *diag.Bag) (symbols.Symbol, bool) {
	allowAfter := mode.has(ModeAllowDeclaredAfter) || mode.has(ModeType)
	for s := scope; s != nil; s = s.Parent() {
		effectiveLoc := loc
		if s != scope {
			// Once we've climbed past the originating scope, location no
			// longer constrains anything -- per-scope comparisons aren't
			// valid across scopes; treat the enclosing scope as fully
			// visible.
			effectiveLoc = symbols.MaxLocation(s)
		}
		if sym, ok := s.Lookup(name, effectiveLoc, allowAfter); ok {
			return sym, true
		}
		if !mode.has(ModeDisallowWildcardImport) {
			if sym, ambiguous, ok := lookupWildcard(name, s, effectiveLoc); ok {
				if ambiguous {
					bag.Add(diag.Errorf(diag.CodeAmbiguousImport, diag.CategoryName, srcLoc,
						"%q is imported from multiple wildcard-imported packages", name))
				}
				return sym, true
			}
		}
	}
	return nil, false
}

// lookupWildcard consults a scope's recorded wildcard imports for name,
// visible only if the import itself precedes loc. Two wildcard imports
// both providing the same name is ambiguous; the caller still gets a usable
// symbol (the first) so elaboration can proceed, and the ambiguity is
// reported through the second result for the caller (resolveHead) to
// diagnose.
func lookupWildcard(name string, scope *symbols.Scope, loc symbols.LookupLocation) (symbols.Symbol, bool, bool) {
	var found symbols.Symbol
	count := 0
	for _, imp := range scope.WildcardImports() {
		if imp.Loc.Index > loc.Index {
			continue
		}
		if sym, ok := imp.Package.Lookup(name, symbols.MaxLocation(imp.Package), false); ok {
			count++
			if found == nil {
				found = sym
			}
		}
	}
	if count == 0 {
		return nil, false, false
	}
	return found, count > 1, true
}

// childScopeOf returns the scope a dotted-name segment resolves into,
// returning nil for symbols that aren't themselves scopes (variables,
// ports, parameters, ...).
func childScopeOf(sym symbols.Symbol) *symbols.Scope {
	switch s := sym.(type) {
	case *symbols.PackageSymbol:
		return s.Body
	case *symbols.InstanceSymbol:
		return s.Body.Body
	case *symbols.InstanceBody:
		return s.Body
	case *symbols.CompilationUnitSymbol:
		return s.Body
	case *symbols.GenerateBlockSymbol:
		return s.Body
	case *symbols.StatementBlockSymbol:
		return s.Body
	case *symbols.RootSymbol:
		return s.Body
	default:
		return nil
	}
}

func reportUnresolved(req Request, cfg Config, bag *diag.Bag) (symbols.Symbol, bool) {
	if cfg.TypoCorrectionLimit > 0 {
		if suggestion, ok := typoCorrect(req.Name, req.From, cfg.TypoCorrectionLimit); ok {
			bag.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, req.SourceLoc,
				"unknown identifier %q; did you mean %q?", req.Name, suggestion))
			return nil, false
		}
	}
	bag.Add(diag.Errorf(diag.CodeNameNotFound, diag.CategoryName, req.SourceLoc,
		"unknown identifier %q", req.Name))
	return nil, false
}
