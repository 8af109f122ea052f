package diag

// key is the deduplication key: same code at the same first-seen location
// collapse into one reported diagnostic with a multiplicity note.
type key struct {
	code Code
	loc  SourceLocation
}

// Bag accumulates diagnostics for a single compilation. Unlike the
// teacher's logging package, a Bag is never a package-level global: every
// Compilation owns exactly one, so multiple independent compilations can
// run without sharing mutable state (see the compilation package).
//
// Re-entrant elaboration must be idempotent with respect to the emitted
// diagnostic set: memoized lazy-binding points call Add freely on every
// traversal, and Bag's own deduplication keeps that safe.
type Bag struct {
	limit      int
	order      []*Diagnostic
	byKey      map[key]*Diagnostic
	errorCount int
	limitHit   bool
}

// NewBag creates a Bag that stops accumulating new distinct diagnostics
// after errorLimit errors have been reported (0 means unbounded).
func NewBag(errorLimit int) *Bag {
	return &Bag{
		limit: errorLimit,
		byKey: make(map[key]*Diagnostic),
	}
}

// Add records a diagnostic, deduplicating by (code, location). A repeat of
// an already-seen key appends a multiplicity note instead of creating a new
// entry. Returns false once the error limit has been exceeded and the
// caller should unwind the current elaboration path.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limitHit {
		return false
	}

	k := key{code: d.Code, loc: d.Location}
	if existing, ok := b.byKey[k]; ok {
		existing.Notes = append(existing.Notes, "")
		return true
	}

	cp := d
	b.byKey[k] = &cp
	b.order = append(b.order, &cp)

	if cp.isError() {
		b.errorCount++
		if b.limit > 0 && b.errorCount >= b.limit {
			b.limitHit = true
			exceeded := cp
			exceeded.Code = CodeErrorLimitExceeded
			exceeded.Category = CategoryElaboration
			exceeded.Message = "error limit exceeded; suppressing further diagnostics"
			b.order = append(b.order, &exceeded)
			return false
		}
	}

	return true
}

// Diagnostics returns the deduplicated diagnostics in report order.
func (b *Bag) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.order))
	for i, d := range b.order {
		out[i] = *d
	}
	return out
}

// ErrorCount returns the number of distinct error-severity diagnostics
// recorded so far (not counting multiplicity notes).
func (b *Bag) ErrorCount() int {
	return b.errorCount
}

// LimitExceeded reports whether the error limit has been hit.
func (b *Bag) LimitExceeded() bool {
	return b.limitHit
}
