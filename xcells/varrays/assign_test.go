package varrays

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cspforge/xcells/xcells/domains"
)

var (
	domA = domains.IntRange{Lo: 1, Hi: 10}
	domB = domains.IntRange{Lo: 0, Hi: 1}
)

func TestAssignDomain(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"ParseSpec", testAssignParseSpec},
		{"OthersFullCoverage", testAssignOthersFullCoverage},
		{"ExplicitThenOthers", testAssignExplicitThenOthers},
		{"OthersLeavesOccupied", testAssignOthersLeavesOccupied},
		{"DuplicateAssignment", testAssignDuplicateAssignment},
		{"RankTwoColumns", testAssignRankTwoColumns},
		{"MultiTokenSpec", testAssignMultiTokenSpec},
		{"Incomplete", testAssignIncomplete},
		{"VarsFor", testAssignVarsFor},
		{"EntryIdentity", testAssignEntryIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testAssignParseSpec(t *testing.T) {
	assert.True(t, ParseSpec("others").IsOthers())
	assert.True(t, ParseSpec("  others ").IsOthers())
	assert.False(t, ParseSpec("x[0]").IsOthers())
	assert.Equal(t, "others", Others().String())
	assert.Equal(t, "x[0]", Compact("x[0]").String())
}

func testAssignOthersFullCoverage(t *testing.T) {
	s, err := NewFlatArrayStore("x", TypeInteger, []int{2, 3})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Others(), domA))
	require.NoError(t, s.CheckComplete())

	for o := 0; o < s.Len(); o++ {
		entry, err := s.At(o)
		require.NoError(t, err)
		require.NotNil(t, entry, "offset %d", o)
		assert.Equal(t, domA, entry.Domain(), "offset %d", o)
	}
}

func testAssignExplicitThenOthers(t *testing.T) {
	// Array x of size [3]: x[1..2] gets A, then OTHERS gives B to the rest.
	s, err := NewFlatArrayStore("x", TypeInteger, []int{3})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("x[1..2]"), domA))
	require.NoError(t, s.AssignDomain(Others(), domB))
	require.NoError(t, s.CheckComplete())

	x0, err := s.VarAt(0)
	require.NoError(t, err)
	assert.Equal(t, domB, x0.Domain())

	for _, i := range []int{1, 2} {
		v, err := s.VarAt(i)
		require.NoError(t, err)
		assert.Equal(t, domA, v.Domain(), "x[%d]", i)
	}
}

func testAssignOthersLeavesOccupied(t *testing.T) {
	s, err := NewFlatArrayStore("x", TypeInteger, []int{2})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("x[0]"), domA))
	// OTHERS must skip the occupied slot silently.
	require.NoError(t, s.AssignDomain(Others(), domB))
	require.NoError(t, s.AssignDomain(Others(), domA), "a second catch-all has nothing left to do")

	x0, _ := s.VarAt(0)
	x1, _ := s.VarAt(1)
	assert.Equal(t, domA, x0.Domain())
	assert.Equal(t, domB, x1.Domain())
}

func testAssignDuplicateAssignment(t *testing.T) {
	s, err := NewFlatArrayStore("x", TypeInteger, []int{4})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("x[0..2]"), domA))
	// x[2..3] intersects the earlier spec at x[2].
	err = s.AssignDomain(Compact("x[2..3]"), domB)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
}

func testAssignRankTwoColumns(t *testing.T) {
	// m[][0] and m[][1] split a 2x2 array by column with no gaps.
	s, err := NewFlatArrayStore("m", TypeInteger, []int{2, 2})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("m[][0]"), domA))
	require.NoError(t, s.AssignDomain(Compact("m[][1]"), domB))
	require.NoError(t, s.CheckComplete())

	for i := 0; i < 2; i++ {
		col0, err := s.VarAt(i, 0)
		require.NoError(t, err)
		assert.Equal(t, domA, col0.Domain(), "m[%d][0]", i)

		col1, err := s.VarAt(i, 1)
		require.NoError(t, err)
		assert.Equal(t, domB, col1.Domain(), "m[%d][1]", i)
	}
}

func testAssignMultiTokenSpec(t *testing.T) {
	// One spec may carry several whitespace-separated compact forms.
	s, err := NewFlatArrayStore("x", TypeInteger, []int{4})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("x[0] x[2..3]"), domA))
	assert.Equal(t, 3, s.Population())

	x1, err := s.VarAt(1)
	require.NoError(t, err)
	assert.Nil(t, x1)
}

func testAssignIncomplete(t *testing.T) {
	s, err := NewFlatArrayStore("x", TypeInteger, []int{3})
	require.NoError(t, err)

	require.NoError(t, s.AssignDomain(Compact("x[0]"), domA))
	err = s.CheckComplete()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteArray)
	assert.Contains(t, err.Error(), "2 of 3")
}

func testAssignVarsFor(t *testing.T) {
	s, err := NewFlatArrayStore("x", TypeInteger, []int{4})
	require.NoError(t, err)
	require.NoError(t, s.AssignDomain(Others(), domA))

	vars, err := s.VarsFor("x[1..3]")
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, "x[1]", vars[0].Name())
	assert.Equal(t, "x[2]", vars[1].Name())
	assert.Equal(t, "x[3]", vars[2].Name())
}

func testAssignEntryIdentity(t *testing.T) {
	s, err := NewFlatArrayStore("grid", TypeSymbolic, []int{2, 2})
	require.NoError(t, err)
	require.NoError(t, s.AssignDomain(Others(), domA))

	entry, err := s.VarAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "grid[1][0]", entry.Name())
	assert.Equal(t, "grid", entry.ArrayID())
	assert.Equal(t, IndexVector{1, 0}, entry.Indexes())
	assert.Equal(t, TypeSymbolic, entry.Type())

	assert.Equal(t, 0, entry.Degree())
	entry.BumpDegree()
	assert.Equal(t, 1, entry.Degree())
}
