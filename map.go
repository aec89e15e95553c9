package probemap

// ProbeMap maps integer keys to values using open addressing with linear
// probing. A key is its own hash: it lives at key modulo capacity or further
// along the probe sequence. Removed entries leave tombstones behind, which
// keep probe chains intact and are reused by later inserts. The map doubles
// its capacity when every slot is filled and never shrinks.
//
// ProbeMap is not safe for concurrent use.
type ProbeMap[K Key, V comparable] struct {
	table[K, V]
}

// Returns a new map with no slots allocated.
func New[K Key, V comparable](opts ...Option[K, V]) *ProbeMap[K, V] {
	return NewWithCapacity(0, opts...)
}

// Returns a new map with exactly capacity empty slots.
func NewWithCapacity[K Key, V comparable](capacity int, opts ...Option[K, V]) *ProbeMap[K, V] {
	var pm ProbeMap[K, V]
	pm.init(capacity, opts...)

	return &pm
}

// Returns the value stored for key.
func (pm *ProbeMap[K, V]) Find(key K) (V, bool) {
	return pm.get(key)
}

// Checks whether a key is in the map.
func (pm *ProbeMap[K, V]) ContainsKey(key K) bool {
	_, ok := pm.lookup(key)
	return ok
}

// Inserts a new key. Returns *DuplicateKeyError if the key is already present,
// the map is left unchanged in that case.
func (pm *ProbeMap[K, V]) Insert(key K, value V) error {
	return pm.insert(key, value)
}

// Puts a value for the key, overwriting an existing one.
// Returns the previous value and whether there was one.
// An error is only possible when the map fails to grow.
func (pm *ProbeMap[K, V]) Put(key K, value V) (V, bool, error) {
	return pm.put(key, value)
}

// Removes a key from the map, returning its value.
func (pm *ProbeMap[K, V]) Remove(key K) (V, bool) {
	return pm.remove(key)
}
