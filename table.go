package probemap

import (
	"math"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Key is the set of fixed-width integer types usable as keys.
// A key is its own hash: its home slot is key modulo capacity.
type Key interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64
}

type slotState uint8

const (
	// The zero value, so a freshly allocated slice is all empty.
	slotEmpty slotState = iota
	slotFilled
	slotDeleted
)

type slot[K Key, V comparable] struct {
	key   K
	value V
	state slotState
}

type table[K Key, V comparable] struct {
	slots []slot[K, V]

	size       int
	tombstones int

	// Growth never goes past this many slots.
	maxCapacity int

	logger log.Logger

	emptyV V
}

type Option[K Key, V comparable] func(t *table[K, V])

// WithLogger sets a logger for rehash events. Nothing is logged by default.
func WithLogger[K Key, V comparable](logger log.Logger) Option[K, V] {
	return func(t *table[K, V]) {
		t.logger = logger
	}
}

// WithMaxCapacity caps growth: an insert that would need more than
// capacity slots fails with ErrCapacityOverflow.
func WithMaxCapacity[K Key, V comparable](capacity int) Option[K, V] {
	return func(t *table[K, V]) {
		t.maxCapacity = capacity
	}
}

func (t *table[K, V]) init(capacity int, opts ...Option[K, V]) {
	if capacity < 0 {
		panic("probemap: negative capacity")
	}

	if capacity > 0 {
		t.slots = make([]slot[K, V], capacity)
	}

	t.size = 0
	t.tombstones = 0
	t.maxCapacity = math.MaxInt

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = log.NewNopLogger()
	}
}

// Returns the number of allocated slots.
func (t *table[K, V]) Capacity() int {
	return len(t.slots)
}

// Returns the number of stored keys.
func (t *table[K, V]) Len() int {
	return t.size
}

// lookup returns the index of the filled slot holding key.
func (t *table[K, V]) lookup(key K) (int, bool) {
	n := len(t.slots)
	if n == 0 {
		return 0, false
	}

	start := home(key, n)
	for i := start; ; {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			return 0, false
		case slotFilled:
			if s.key == key {
				return i, true
			}
		}

		if i = next(i, n); i == start {
			return 0, false
		}
	}
}

func (t *table[K, V]) get(key K) (V, bool) {
	if i, ok := t.lookup(key); ok {
		return t.slots[i].value, true
	}

	return t.emptyV, false
}

func (t *table[K, V]) insert(key K, value V) error {
	if t.size == len(t.slots) {
		if err := t.grow(); err != nil {
			return err
		}
	}

	i, exists := probe(t.slots, key)
	if exists {
		return &DuplicateKeyError[K]{Key: key}
	}

	s := &t.slots[i]
	if s.state == slotDeleted {
		t.tombstones--
	}

	*s = slot[K, V]{key: key, value: value, state: slotFilled}
	t.size++

	return nil
}

// put overwrites the value of a present key and returns the previous one,
// otherwise it inserts the pair.
func (t *table[K, V]) put(key K, value V) (V, bool, error) {
	if i, ok := t.lookup(key); ok {
		prev := t.slots[i].value
		t.slots[i].value = value

		return prev, true, nil
	}

	return t.emptyV, false, t.insert(key, value)
}

func (t *table[K, V]) remove(key K) (V, bool) {
	i, ok := t.lookup(key)
	if !ok {
		return t.emptyV, false
	}

	// The key stays behind in the tombstone, the value is released.
	s := &t.slots[i]
	value := s.value
	s.value = t.emptyV
	s.state = slotDeleted

	t.size--
	t.tombstones++

	return value, true
}

func (t *table[K, V]) grow() error {
	n := len(t.slots)
	if n == 0 && t.maxCapacity >= 1 {
		return t.rehash(1)
	}

	if n == 0 || n > t.maxCapacity/2 {
		err := errors.Wrapf(ErrCapacityOverflow, "cannot double %d slots", n)
		level.Error(t.logger).Log("msg", "table growth failed", "capacity", n, "err", err)

		return err
	}

	return t.rehash(n * 2)
}

// rehash moves every filled slot into a fresh slice of the given capacity,
// dropping tombstones. On failure the current slice is left untouched.
func (t *table[K, V]) rehash(capacity int) error {
	slots, err := makeSlots[K, V](capacity)
	if err != nil {
		level.Error(t.logger).Log("msg", "slot allocation failed", "capacity", capacity, "err", err)
		return err
	}

	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotFilled {
			continue
		}

		j, _ := probe(slots, s.key)
		slots[j] = *s
	}

	level.Debug(t.logger).Log(
		"msg", "table rehashed",
		"from", len(t.slots),
		"to", capacity,
		"size", t.size,
		"tombstones", t.tombstones,
	)

	t.slots = slots
	t.tombstones = 0

	return nil
}

// Removes every key, keeping the allocated slots.
func (t *table[K, V]) Reset() {
	clear(t.slots)

	t.size = 0
	t.tombstones = 0
}

// Compact drops all tombstones by rehashing at the current capacity.
func (t *table[K, V]) Compact() error {
	if t.tombstones == 0 {
		return nil
	}

	return t.rehash(len(t.slots))
}

// Returns a snapshot of size, capacity and tombstone counters.
func (t *table[K, V]) Stats() Stats {
	st := Stats{
		Size:       t.size,
		Capacity:   len(t.slots),
		Tombstones: t.tombstones,
	}

	if st.Capacity > 0 {
		st.TombstonesCapacityRatio = float32(st.Tombstones) / float32(st.Capacity)
	}
	if st.Size > 0 {
		st.TombstonesSizeRatio = float32(st.Tombstones) / float32(st.Size)
	}

	return st
}

// probe walks the probe sequence of key over slots at most once.
// If key is filled it returns its index and true. Otherwise it returns the
// first empty or deleted slot seen, or -1 if every slot is filled.
func probe[K Key, V comparable](slots []slot[K, V], key K) (int, bool) {
	n := len(slots)
	start := home(key, n)
	target := -1

	for i := start; ; {
		s := &slots[i]
		switch s.state {
		case slotEmpty:
			if target < 0 {
				target = i
			}
			return target, false
		case slotDeleted:
			if target < 0 {
				target = i
			}
		case slotFilled:
			if s.key == key {
				return i, true
			}
		}

		if i = next(i, n); i == start {
			return target, false
		}
	}
}

// home is the first slot of the probe sequence for key.
// Signed keys are sign-extended before the modulo.
func home[K Key](key K, n int) int {
	return int(uint64(key) % uint64(n))
}

func next(i, n int) int {
	if i++; i == n {
		return 0
	}

	return i
}

// makeSlots turns a failing make into ErrAllocation.
func makeSlots[K Key, V comparable](capacity int) (slots []slot[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}

			slots = nil
			err = errors.Wrapf(ErrAllocation, "%d slots: %s", capacity, rerr.Error())
		}
	}()

	return make([]slot[K, V], capacity), nil
}
