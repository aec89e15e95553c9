package probemap

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateKey matches every *DuplicateKeyError via errors.Is.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCapacityOverflow is returned when growing would exceed the maximum capacity.
	ErrCapacityOverflow = errors.New("capacity overflow")
	// ErrAllocation is returned when the slots for a rehash can't be allocated.
	ErrAllocation = errors.New("slot allocation failed")
)

// DuplicateKeyError is returned by Insert when the key is already present.
// Use Put to overwrite an existing value instead.
type DuplicateKeyError[K Key] struct {
	Key K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("duplicate key: %d", e.Key)
}

func (e *DuplicateKeyError[K]) Is(target error) bool {
	return target == ErrDuplicateKey
}
