package vissim

// NextID returns identifier following the maximum of given ones. One for empty set.
func NextID(ids []int) int {
	if len(ids) == 0 {
		return 1
	}
	max := ids[0]
	for _, id := range ids[1:] {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// DefaultID returns the first identifier of the set
func DefaultID(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyCatalog
	}
	return ids[0], nil
}
