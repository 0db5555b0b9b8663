package varrays

import (
	"fmt"
	"iter"

	roaring "github.com/RoaringBitmap/roaring"
)

// FlatArrayStore owns the cells of one (possibly multi-dimensional) variable
// array as a contiguous one-dimensional buffer, so arrays of any rank are
// handled uniformly. Cells are addressed either by flat offset or by index
// vector; the two addressings are exact inverses of each other, using
// row-major order (last dimension fastest).
//
// Occupancy is tracked in a roaring bitmap kept exactly in sync with the slot
// buffer, so "which cells are still empty" and completeness checks are bitmap
// operations.
type FlatArrayStore struct {
	id       string
	typ      TypeTag
	sizes    []int
	slots    []*ScalarEntry
	occupied *roaring.Bitmap
}

// NewFlatArrayStore allocates an empty store for the given dimension sizes.
// An empty size list declares a rank-0 (scalar) array with exactly one slot.
func NewFlatArrayStore(id string, typ TypeTag, sizes []int) (*FlatArrayStore, error) {
	length := 1
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: array %q declares size %d", ErrInvalidSize, id, s)
		}
		length *= s
	}
	sz := make([]int, len(sizes))
	copy(sz, sizes)
	return &FlatArrayStore{
		id:       id,
		typ:      typ,
		sizes:    sz,
		slots:    make([]*ScalarEntry, length),
		occupied: roaring.New(),
	}, nil
}

// ID returns the declaring array's id.
func (s *FlatArrayStore) ID() string { return s.id }

// Type returns the array's variable type tag.
func (s *FlatArrayStore) Type() TypeTag { return s.typ }

// Rank returns the number of dimensions.
func (s *FlatArrayStore) Rank() int { return len(s.sizes) }

// Sizes returns a copy of the per-dimension sizes.
func (s *FlatArrayStore) Sizes() []int {
	out := make([]int, len(s.sizes))
	copy(out, s.sizes)
	return out
}

// Len returns the total number of cells.
func (s *FlatArrayStore) Len() int { return len(s.slots) }

// Population returns how many cells hold an entry.
func (s *FlatArrayStore) Population() int {
	return int(s.occupied.GetCardinality())
}

// IsComplete reports whether every cell holds an entry.
func (s *FlatArrayStore) IsComplete() bool {
	return s.Population() == len(s.slots)
}

// FlatOffset converts an index vector to its flat offset. Dimensions are
// accumulated from last to first, last dimension fastest.
func (s *FlatArrayStore) FlatOffset(vec IndexVector) (int, error) {
	if len(vec) != len(s.sizes) {
		return 0, fmt.Errorf("%w: got %d indices for array %q of rank %d",
			ErrRankMismatch, len(vec), s.id, len(s.sizes))
	}
	offset, stride := 0, 1
	for d := len(vec) - 1; d >= 0; d-- {
		if vec[d] < 0 || vec[d] >= s.sizes[d] {
			return 0, fmt.Errorf("%w: index %d of dimension %d not within [0, %d] in array %q",
				ErrIndexOutOfBounds, vec[d], d, s.sizes[d]-1, s.id)
		}
		offset += vec[d] * stride
		stride *= s.sizes[d]
	}
	return offset, nil
}

// IndexVectorFor converts a flat offset back to its index vector. It is the
// exact inverse of FlatOffset: trailing dimensions are peeled off by modulo,
// and whatever quotient remains is the leading dimension's index.
func (s *FlatArrayStore) IndexVectorFor(offset int) (IndexVector, error) {
	if offset < 0 || offset >= len(s.slots) {
		return nil, fmt.Errorf("%w: flat offset %d not within [0, %d] in array %q",
			ErrIndexOutOfBounds, offset, len(s.slots)-1, s.id)
	}
	vec := make(IndexVector, len(s.sizes))
	for d := len(vec) - 1; d > 0; d-- {
		vec[d] = offset % s.sizes[d]
		offset /= s.sizes[d]
	}
	if len(vec) > 0 {
		vec[0] = offset
	}
	return vec, nil
}

// At returns the entry at a flat offset, or nil for a still-empty slot.
func (s *FlatArrayStore) At(offset int) (*ScalarEntry, error) {
	if offset < 0 || offset >= len(s.slots) {
		return nil, fmt.Errorf("%w: flat offset %d not within [0, %d] in array %q",
			ErrIndexOutOfBounds, offset, len(s.slots)-1, s.id)
	}
	return s.slots[offset], nil
}

// VarAt returns the entry at the position given by the multi-dimensional
// index, or nil for a still-empty slot.
func (s *FlatArrayStore) VarAt(vec ...int) (*ScalarEntry, error) {
	offset, err := s.FlatOffset(vec)
	if err != nil {
		return nil, err
	}
	return s.slots[offset], nil
}

// put stores an entry at a currently-empty slot. An occupied slot is a
// duplicate definition and is never silently overwritten.
func (s *FlatArrayStore) put(offset int, entry *ScalarEntry) error {
	if s.occupied.Contains(uint32(offset)) {
		return fmt.Errorf("%w: %s", ErrDuplicateAssignment, s.slots[offset].Name())
	}
	s.slots[offset] = entry
	s.occupied.Add(uint32(offset))
	return nil
}

// emptyOffsets returns the bitmap of slots that hold no entry yet.
func (s *FlatArrayStore) emptyOffsets() *roaring.Bitmap {
	return roaring.Flip(s.occupied, 0, uint64(len(s.slots)))
}

// Entries yields every populated cell in flat order, keyed by flat offset.
// Empty slots are skipped.
func (s *FlatArrayStore) Entries() iter.Seq2[int, *ScalarEntry] {
	return func(yield func(int, *ScalarEntry) bool) {
		it := s.occupied.Iterator()
		for it.HasNext() {
			offset := int(it.Next())
			if !yield(offset, s.slots[offset]) {
				return
			}
		}
	}
}

func (s *FlatArrayStore) String() string {
	return fmt.Sprintf("%s:%s%s", s.id, s.typ, IndexVector(s.sizes))
}
