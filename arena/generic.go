package arena

// anyPointerMap and anySymbolMap are the Arena's record of each side-table
// it has handed out (one entry per table; the Arena exposes no count of
// them); the real storage lives in the generic wrappers below. This mirrors the teacher's pattern of a destructor-registered pool
// for every non-trivially-destructible container, adapted to Go where the
// only thing worth tracking is bookkeeping, not manual destruction.
type anyPointerMap struct{ size int }
type anySymbolMap struct{ size int }

// PointerMap is a reference-identity keyed map allocated through an Arena.
// It is used for caches keyed by pointer identity, such as the instance
// body cache (definition pointer + canonical parameter tuple).
type PointerMap[K comparable, V any] struct {
	m map[K]V
}

// NewPointerMap allocates a new, empty PointerMap and registers it with the
// arena.
func NewPointerMap[K comparable, V any](a *Arena) *PointerMap[K, V] {
	a.ptrMaps = append(a.ptrMaps, &anyPointerMap{})
	return &PointerMap[K, V]{m: make(map[K]V)}
}

func (p *PointerMap[K, V]) Get(k K) (V, bool) {
	v, ok := p.m[k]
	return v, ok
}

func (p *PointerMap[K, V]) Set(k K, v V) {
	p.m[k] = v
}

func (p *PointerMap[K, V]) Len() int {
	return len(p.m)
}

// OrderedMap is an insertion-ordered name index, used by Scope to back its
// name -> symbol lookup table while preserving declaration order for
// enumeration.
type OrderedMap[V any] struct {
	index map[string]int
	names []string
	vals  []V
}

// NewSymbolMap allocates a new, empty OrderedMap and registers it with the
// arena.
func NewSymbolMap[V any](a *Arena) *OrderedMap[V] {
	a.symMaps = append(a.symMaps, &anySymbolMap{})
	return &OrderedMap[V]{index: make(map[string]int)}
}

// Get returns the value stored under name, if any.
func (m *OrderedMap[V]) Get(name string) (V, bool) {
	if i, ok := m.index[name]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Set inserts name -> v if name is not already present, and reports whether
// the insertion happened. A name that already exists is left untouched --
// scopes keep the first declaration on a duplicate name, per the "duplicate
// names emit an error and keep the first" rule.
func (m *OrderedMap[V]) Set(name string, v V) bool {
	if _, ok := m.index[name]; ok {
		return false
	}
	m.index[name] = len(m.vals)
	m.names = append(m.names, name)
	m.vals = append(m.vals, v)
	return true
}

// Names returns the keys in insertion (declaration) order.
func (m *OrderedMap[V]) Names() []string {
	return m.names
}

func (m *OrderedMap[V]) Len() int {
	return len(m.vals)
}
