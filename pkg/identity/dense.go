package identity

// denseLimit bounds the external ids kept in the dense forward table.
// Ids outside [0, denseLimit) fall back to a map so that a single large id
// from an input file does not allocate a huge table.
const denseLimit = 1 << 20

// Integer is the constraint satisfied by the INT and LONG regimes.
type Integer interface {
	~int32 | ~int64
}

// Dense is the registry of the INT and LONG regimes.
//
// Both directions are dense tables: reverse is keyed by internal index and
// forward by external id (index+1, zero meaning unbound). External ids
// that are negative or very large are kept in a sparse overflow map.
type Dense[T Integer] struct {
	regime   Regime
	forward  []int
	overflow map[T]int
	reverse  []T
	live     []bool
	n        int
}

// NewInt returns an empty INT registry.
func NewInt() *Dense[int32] {
	return &Dense[int32]{regime: INT, overflow: make(map[int32]int)}
}

// NewLong returns an empty LONG registry.
func NewLong() *Dense[int64] {
	return &Dense[int64]{regime: LONG, overflow: make(map[int64]int)}
}

// Regime implements Registry.
func (d *Dense[T]) Regime() Regime { return d.regime }

// Len implements Registry.
func (d *Dense[T]) Len() int { return d.n }

// Lookup implements Registry.
func (d *Dense[T]) Lookup(id T) (int, bool) {
	if id >= 0 && int64(id) < denseLimit {
		if int64(id) < int64(len(d.forward)) {
			if slot := d.forward[int(id)]; slot > 0 {
				return slot - 1, true
			}
		}
		return 0, false
	}
	idx, ok := d.overflow[id]
	return idx, ok
}

// TranslateIn implements Registry.
func (d *Dense[T]) TranslateIn(id T) (int, error) {
	if idx, ok := d.Lookup(id); ok {
		return idx, nil
	}
	return 0, noSuchID(id)
}

// Contains implements Registry.
func (d *Dense[T]) Contains(id T) bool {
	_, ok := d.Lookup(id)
	return ok
}

// TranslateOut implements Registry.
func (d *Dense[T]) TranslateOut(index int) T {
	return d.reverse[index]
}

// Inject implements Registry.
func (d *Dense[T]) Inject(id T, index int) error {
	if index < 0 {
		return badIndex(index)
	}
	if d.Contains(id) {
		return duplicateID(id)
	}
	if index < len(d.live) && d.live[index] {
		return badIndex(index)
	}
	for len(d.reverse) <= index {
		d.reverse = append(d.reverse, 0)
		d.live = append(d.live, false)
	}
	d.reverse[index] = id
	d.live[index] = true
	if id >= 0 && int64(id) < denseLimit {
		for int64(len(d.forward)) <= int64(id) {
			d.forward = append(d.forward, 0)
		}
		d.forward[int(id)] = index + 1
	} else {
		d.overflow[id] = index
	}
	d.n++
	return nil
}

// Release implements Registry.
func (d *Dense[T]) Release(index int) {
	if index < 0 || index >= len(d.live) || !d.live[index] {
		return
	}
	id := d.reverse[index]
	if id >= 0 && int64(id) < denseLimit {
		d.forward[int(id)] = 0
	} else {
		delete(d.overflow, id)
	}
	d.live[index] = false
	d.reverse[index] = 0
	d.n--
}
