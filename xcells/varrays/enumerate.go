package varrays

import "iter"

// Enumerate yields every index vector implied by the given per-dimension
// ranges, in odometer order: the last dimension advances first and carries
// into the one before it when it wraps. A singleton dimension never advances.
// The sequence is finite, holds exactly the product of the range sizes, and
// restarts from the first vector each time it is ranged over.
//
// The yielded vector is owned by the iterator: callers that retain it must
// Clone it first.
func Enumerate(ranges []IndexRange) iter.Seq[IndexVector] {
	return func(yield func(IndexVector) bool) {
		vec := firstIndexVector(ranges)
		for {
			if !yield(vec) {
				return
			}
			if !nextIndexVector(vec, ranges) {
				return
			}
		}
	}
}

// firstIndexVector returns the smallest vector of the ranges. A rank-0 array
// has the empty vector as its only coordinate.
func firstIndexVector(ranges []IndexRange) IndexVector {
	vec := make(IndexVector, len(ranges))
	for d, r := range ranges {
		vec[d] = r.Smallest()
	}
	return vec
}

// nextIndexVector advances vec in place to the next vector within ranges and
// reports whether one exists. The increment starts at the last dimension;
// wrapping past a range's upper bound resets that dimension to its lower
// bound and carries left. Exhaustion is the carry leaving dimension 0.
func nextIndexVector(vec IndexVector, ranges []IndexRange) bool {
	d := len(vec) - 1
	for ; d >= 0; d-- {
		if ranges[d].IsSingleton() {
			continue
		}
		vec[d]++
		if vec[d] > ranges[d].Largest() {
			vec[d] = ranges[d].Smallest()
			continue
		}
		break
	}
	return d >= 0
}
