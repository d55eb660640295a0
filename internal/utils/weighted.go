package utils

import "errors"

// ErrNoCandidates is returned when a weighted selection has nothing to
// choose from or the total weight is not positive.
var ErrNoCandidates = errors.New("no candidates with positive total weight")

// WeightedIndex selects one index from weights, with probability
// weights[i]/total. rnd must return values in [0, 1). Negative weights
// are rejected; zero-weight entries are never selected.
func WeightedIndex(weights []int, rnd func() float64) (int, error) {
	total := 0
	for _, w := range weights {
		if w < 0 {
			return -1, ErrNoCandidates
		}
		total += w
	}
	if total <= 0 {
		return -1, ErrNoCandidates
	}

	target := rnd() * float64(total)
	acc := 0
	for i, w := range weights {
		acc += w
		if target < float64(acc) {
			return i, nil
		}
	}
	// rnd returned a value at the very top of the range; fall back to
	// the last positively weighted entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return -1, ErrNoCandidates
}
