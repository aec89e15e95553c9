package probemap

type Stats struct {
	Size                    int
	Capacity                int
	Tombstones              int
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}
