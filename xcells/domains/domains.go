// Package domains holds the value domains variable cells are bound to. The
// array-resolution core treats a domain as an opaque value object; the
// concrete kinds here are what the declaration front-end produces.
package domains

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Domain is an opaque value domain bound to a variable cell. The core never
// looks inside it; Describe is for diagnostics and output only.
type Domain interface {
	Describe() string
}

// IntRange is the contiguous integer domain lo..hi, inclusive.
type IntRange struct {
	Lo, Hi int64
}

func (d IntRange) Describe() string {
	return fmt.Sprintf("%d..%d", d.Lo, d.Hi)
}

// IntSet is a finite, explicitly enumerated integer domain.
type IntSet struct {
	Values []int64
}

func (d IntSet) Describe() string {
	parts := make([]string, len(d.Values))
	for i, v := range d.Values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}

// SymbolSet is a finite domain of symbolic values.
type SymbolSet struct {
	Symbols []string
}

func (d SymbolSet) Describe() string {
	return strings.Join(d.Symbols, " ")
}

// ParseInt parses an integer domain literal: either "lo..hi" or a
// whitespace-separated list of values.
func ParseInt(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, ".."); ok && !strings.ContainsAny(lo, " \t") {
		l, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad domain bound %q: %w", lo, err)
		}
		h, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad domain bound %q: %w", hi, err)
		}
		if l > h {
			return nil, fmt.Errorf("domain %q has low above high", s)
		}
		return IntRange{Lo: l, Hi: h}, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty domain literal")
	}
	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad domain value %q: %w", f, err)
		}
		values[i] = v
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return IntSet{Values: values}, nil
}
