package varrays

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// IndexRange holds the indices a compact form addresses in one dimension:
// either a single index or an inclusive interval. Bounds are zero-based and
// validated against the dimension size by the compact-form parser, which has
// the size context.
type IndexRange struct {
	lo, hi    int
	singleton bool
}

// Singleton returns the range containing exactly v.
func Singleton(v int) IndexRange {
	return IndexRange{lo: v, hi: v, singleton: true}
}

// Interval returns the inclusive range lo..hi.
func Interval(lo, hi int) (IndexRange, error) {
	if lo > hi {
		return IndexRange{}, fmt.Errorf("%w: %d..%d has low above high", ErrIndexOutOfBounds, lo, hi)
	}
	return IndexRange{lo: lo, hi: hi}, nil
}

// IsSingleton reports whether the range was declared as a single index.
func (r IndexRange) IsSingleton() bool { return r.singleton }

// Smallest returns the lowest contained index.
func (r IndexRange) Smallest() int { return r.lo }

// Largest returns the highest contained index.
func (r IndexRange) Largest() int { return r.hi }

// Size returns the number of contained indices.
func (r IndexRange) Size() int { return r.hi - r.lo + 1 }

// Contains reports whether v falls inside the range.
func (r IndexRange) Contains(v int) bool { return r.lo <= v && v <= r.hi }

// Values yields every contained index in ascending order. The sequence is
// finite and can be ranged over any number of times.
func (r IndexRange) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := r.lo; v <= r.hi; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

func (r IndexRange) String() string {
	if r.singleton {
		return strconv.Itoa(r.lo)
	}
	return fmt.Sprintf("%d..%d", r.lo, r.hi)
}

// ParseRangeToken parses the content of one non-empty bracket group: a bare
// integer yields a singleton, "lo..hi" an interval. The empty group and "*"
// mean "full extent" and are resolved by the compact-form parser instead.
func ParseRangeToken(tok string) (IndexRange, error) {
	if lo, hi, ok := strings.Cut(tok, ".."); ok {
		l, err := strconv.Atoi(lo)
		if err != nil {
			return IndexRange{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
		}
		h, err := strconv.Atoi(hi)
		if err != nil {
			return IndexRange{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
		}
		return Interval(l, h)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return IndexRange{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	return Singleton(v), nil
}
