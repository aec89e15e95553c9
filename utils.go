package probemap

import (
	"unsafe"
)

// Estimates capacity (number of slots) from the given memory size in bytes.
func CapacityFromSize[K Key, V comparable](size uintptr) int {
	sizeOfSlot := unsafe.Sizeof(slot[K, V]{})

	return int(size / sizeOfSlot)
}
