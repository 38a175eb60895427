package identity

// Ref is the registry of the REF regime.
//
// External handles are hashed into forward; reverse is keyed by internal
// index. Each handle carries a reference count: a binding holds one
// reference and importers may pin a handle with IncRef while a parse is in
// flight. A reverse entry is cleared only once its handle's count drops to
// zero.
type Ref[T comparable] struct {
	forward map[T]int
	reverse []T
	live    []bool
	refs    map[T]int
	parked  map[T]int // released indices whose handle is still pinned
}

// NewRef returns an empty REF registry.
func NewRef[T comparable]() *Ref[T] {
	return &Ref[T]{
		forward: make(map[T]int),
		refs:    make(map[T]int),
		parked:  make(map[T]int),
	}
}

// Regime implements Registry.
func (r *Ref[T]) Regime() Regime { return REF }

// Len implements Registry.
func (r *Ref[T]) Len() int { return len(r.forward) }

// Lookup implements Registry.
func (r *Ref[T]) Lookup(id T) (int, bool) {
	idx, ok := r.forward[id]
	return idx, ok
}

// TranslateIn implements Registry.
func (r *Ref[T]) TranslateIn(id T) (int, error) {
	if idx, ok := r.forward[id]; ok {
		return idx, nil
	}
	return 0, noSuchID(id)
}

// Contains implements Registry.
func (r *Ref[T]) Contains(id T) bool {
	_, ok := r.forward[id]
	return ok
}

// TranslateOut implements Registry. A released index whose handle is
// still pinned keeps returning that handle until the slot is reused.
func (r *Ref[T]) TranslateOut(index int) T {
	return r.reverse[index]
}

// Inject implements Registry.
func (r *Ref[T]) Inject(id T, index int) error {
	if index < 0 {
		return badIndex(index)
	}
	if _, ok := r.forward[id]; ok {
		return duplicateID(id)
	}
	if index < len(r.live) && r.live[index] {
		return badIndex(index)
	}
	for len(r.reverse) <= index {
		var zero T
		r.reverse = append(r.reverse, zero)
		r.live = append(r.live, false)
	}
	delete(r.parked, id)
	r.forward[id] = index
	r.reverse[index] = id
	r.live[index] = true
	r.refs[id]++
	return nil
}

// Release implements Registry.
func (r *Ref[T]) Release(index int) {
	if index < 0 || index >= len(r.live) || !r.live[index] {
		return
	}
	id := r.reverse[index]
	delete(r.forward, id)
	r.live[index] = false
	if r.DecRef(id) > 0 {
		r.parked[id] = index
		return
	}
	var zero T
	r.reverse[index] = zero
}

// IncRef pins id and returns its new reference count.
func (r *Ref[T]) IncRef(id T) int {
	r.refs[id]++
	return r.refs[id]
}

// DecRef unpins id and returns its new reference count. When the count
// reaches zero a parked reverse entry for id is cleared.
func (r *Ref[T]) DecRef(id T) int {
	n := r.refs[id] - 1
	if n > 0 {
		r.refs[id] = n
		return n
	}
	delete(r.refs, id)
	if idx, ok := r.parked[id]; ok {
		delete(r.parked, id)
		if !r.live[idx] && r.reverse[idx] == id {
			var zero T
			r.reverse[idx] = zero
		}
	}
	return 0
}

// RefCount returns the current reference count of id.
func (r *Ref[T]) RefCount(id T) int {
	return r.refs[id]
}
