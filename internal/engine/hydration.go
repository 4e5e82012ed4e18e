package engine

// IncrementCups adds one cup to the counter.
func IncrementCups(cups int) int {
	return cups + 1
}

// DecrementCups removes one cup, flooring at zero. Decrementing an
// empty counter is a no-op, not an error.
func DecrementCups(cups int) int {
	if cups <= 0 {
		return 0
	}
	return cups - 1
}
