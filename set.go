package probemap

// ProbeSet is a set of integer keys built on the same probing table as
// ProbeMap. It doesn't store values, only keys.
type ProbeSet[K Key] struct {
	table[K, struct{}]
}

// Returns a new set with no slots allocated.
func NewSet[K Key](opts ...Option[K, struct{}]) *ProbeSet[K] {
	return NewSetWithCapacity(0, opts...)
}

// Returns a new set with exactly capacity empty slots.
func NewSetWithCapacity[K Key](capacity int, opts ...Option[K, struct{}]) *ProbeSet[K] {
	var ps ProbeSet[K]
	ps.init(capacity, opts...)

	return &ps
}

// Checks whether a key is in the set.
func (ps *ProbeSet[K]) Has(key K) bool {
	_, ok := ps.lookup(key)
	return ok
}

// Inserts a key in the set. Returns *DuplicateKeyError if it's already there.
func (ps *ProbeSet[K]) Insert(key K) error {
	return ps.insert(key, struct{}{})
}

// Adds a key unless it's present. Returns whether the key is new.
func (ps *ProbeSet[K]) Add(key K) (bool, error) {
	_, existed, err := ps.put(key, struct{}{})
	return !existed && err == nil, err
}

// Deletes a key from the set. Returns whether it was there.
func (ps *ProbeSet[K]) Delete(key K) bool {
	_, ok := ps.remove(key)
	return ok
}
