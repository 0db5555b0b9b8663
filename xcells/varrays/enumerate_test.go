package varrays

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectVectors(ranges []IndexRange) []IndexVector {
	var out []IndexVector
	for vec := range Enumerate(ranges) {
		out = append(out, vec.Clone())
	}
	return out
}

func mustInterval(t *testing.T, lo, hi int) IndexRange {
	t.Helper()
	r, err := Interval(lo, hi)
	require.NoError(t, err)
	return r
}

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"OdometerOrder", testEnumerateOdometerOrder},
		{"SingletonDimensions", testEnumerateSingletonDimensions},
		{"AllSingletons", testEnumerateAllSingletons},
		{"RankZero", testEnumerateRankZero},
		{"CountMatchesProduct", testEnumerateCountMatchesProduct},
		{"Restartable", testEnumerateRestartable},
		{"EarlyStop", testEnumerateEarlyStop},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testEnumerateOdometerOrder(t *testing.T) {
	ranges := []IndexRange{mustInterval(t, 0, 1), mustInterval(t, 0, 2)}

	want := []IndexVector{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	assert.Equal(t, want, collectVectors(ranges), "last dimension must vary fastest")
}

func testEnumerateSingletonDimensions(t *testing.T) {
	// The middle dimension is pinned; it must never advance.
	ranges := []IndexRange{mustInterval(t, 0, 1), Singleton(2), mustInterval(t, 1, 2)}

	want := []IndexVector{
		{0, 2, 1}, {0, 2, 2},
		{1, 2, 1}, {1, 2, 2},
	}
	assert.Equal(t, want, collectVectors(ranges))
}

func testEnumerateAllSingletons(t *testing.T) {
	ranges := []IndexRange{Singleton(1), Singleton(0), Singleton(3)}
	got := collectVectors(ranges)
	require.Len(t, got, 1)
	assert.Equal(t, IndexVector{1, 0, 3}, got[0])
}

func testEnumerateRankZero(t *testing.T) {
	got := collectVectors(nil)
	require.Len(t, got, 1, "a rank-0 array has exactly one coordinate")
	assert.Empty(t, got[0])
}

func testEnumerateCountMatchesProduct(t *testing.T) {
	cases := []struct {
		ranges []IndexRange
		want   int
	}{
		{[]IndexRange{mustInterval(t, 0, 4)}, 5},
		{[]IndexRange{mustInterval(t, 2, 3), mustInterval(t, 0, 2)}, 6},
		{[]IndexRange{Singleton(0), mustInterval(t, 0, 1), mustInterval(t, 0, 3)}, 8},
		{[]IndexRange{mustInterval(t, 0, 1), mustInterval(t, 0, 1), mustInterval(t, 0, 1), mustInterval(t, 0, 1)}, 16},
	}

	for _, c := range cases {
		seen := make(map[string]bool)
		count := 0
		for vec := range Enumerate(c.ranges) {
			count++
			key := vec.String()
			assert.False(t, seen[key], "vector %s yielded twice", key)
			seen[key] = true
		}
		assert.Equal(t, c.want, count)
	}
}

func testEnumerateRestartable(t *testing.T) {
	ranges := []IndexRange{mustInterval(t, 0, 1), mustInterval(t, 0, 1)}
	seq := Enumerate(ranges)

	var first, second []IndexVector
	for vec := range seq {
		first = append(first, vec.Clone())
	}
	for vec := range seq {
		second = append(second, vec.Clone())
	}
	assert.Equal(t, first, second, "a fresh pass must reproduce the same sequence")
}

func testEnumerateEarlyStop(t *testing.T) {
	ranges := []IndexRange{mustInterval(t, 0, 9)}
	count := 0
	for range Enumerate(ranges) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
