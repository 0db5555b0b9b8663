package varrays

import (
	"fmt"
	"strings"
)

// ParseCompactForm resolves one compact-form token, e.g. "x[1..3][*][2]",
// against the declaring array's id and per-dimension sizes. It returns one
// IndexRange per dimension. An empty bracket group and "*" both expand to the
// full extent of their dimension.
func ParseCompactForm(token, id string, sizes []int) ([]IndexRange, error) {
	prefix, suffix, found := strings.Cut(token, "[")
	if !found {
		// Rank-0 arrays are addressed by the bare id.
		prefix, suffix = token, ""
	} else {
		suffix = "[" + suffix
	}
	if prefix != id {
		return nil, fmt.Errorf("%w: %q does not belong to array %q", ErrIdentifierMismatch, token, id)
	}

	ranges := make([]IndexRange, 0, len(sizes))
	for dim, size := range sizes {
		if !strings.HasPrefix(suffix, "[") {
			return nil, fmt.Errorf("%w: %q has %d group(s), array %q has rank %d",
				ErrRankMismatch, token, dim, id, len(sizes))
		}
		group, rest, ok := strings.Cut(suffix[1:], "]")
		if !ok {
			return nil, fmt.Errorf("%w: unterminated group in %q", ErrMalformedToken, token)
		}
		suffix = rest

		r, err := parseGroup(group, size)
		if err != nil {
			return nil, fmt.Errorf("dimension %d of %q: %w", dim, token, err)
		}
		ranges = append(ranges, r)
	}
	if suffix != "" {
		return nil, fmt.Errorf("%w: %q has more groups than array %q's rank %d",
			ErrRankMismatch, token, id, len(sizes))
	}
	return ranges, nil
}

func parseGroup(group string, size int) (IndexRange, error) {
	group = strings.TrimSpace(group)
	if group == "" || group == "*" {
		return Interval(0, size-1)
	}
	r, err := ParseRangeToken(group)
	if err != nil {
		return IndexRange{}, err
	}
	if r.Smallest() < 0 || r.Largest() >= size {
		return IndexRange{}, fmt.Errorf("%w: %s not within [0, %d]", ErrIndexOutOfBounds, r, size-1)
	}
	return r, nil
}
