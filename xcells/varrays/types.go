package varrays

import (
	"strconv"
	"strings"

	"github.com/cspforge/xcells/xcells/domains"
)

// TypeTag describes the kind of variable an array declares. Every cell of an
// array shares the array's tag.
type TypeTag int

const (
	TypeInteger TypeTag = iota
	TypeSymbolic
	TypeReal
	TypeStochastic
	TypeSymbolicStochastic
	TypeSet
	TypeSymbolicSet
	TypeUndirectedGraph
	TypeDirectedGraph
	TypePoint
	TypeInterval
	TypeRegion
)

var typeTagNames = map[TypeTag]string{
	TypeInteger:            "integer",
	TypeSymbolic:           "symbolic",
	TypeReal:               "real",
	TypeStochastic:         "stochastic",
	TypeSymbolicStochastic: "symbolic_stochastic",
	TypeSet:                "set",
	TypeSymbolicSet:        "symbolic_set",
	TypeUndirectedGraph:    "undirected_graph",
	TypeDirectedGraph:      "directed_graph",
	TypePoint:              "point",
	TypeInterval:           "interval",
	TypeRegion:             "region",
}

func (t TypeTag) String() string {
	if name, ok := typeTagNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTypeTag resolves a textual type attribute to its tag.
func ParseTypeTag(s string) (TypeTag, bool) {
	for tag, name := range typeTagNames {
		if name == s {
			return tag, true
		}
	}
	return TypeInteger, false
}

func (t TypeTag) IsStochastic() bool {
	return t == TypeStochastic || t == TypeSymbolicStochastic
}

// IsBasic reports whether the tag is integer, symbolic, real or (symbolic) stochastic.
func (t TypeTag) IsBasic() bool {
	return t == TypeInteger || t == TypeSymbolic || t == TypeReal || t.IsStochastic()
}

func (t TypeTag) IsSet() bool {
	return t == TypeSet || t == TypeSymbolicSet
}

func (t TypeTag) IsGraph() bool {
	return t == TypeUndirectedGraph || t == TypeDirectedGraph
}

func (t TypeTag) IsComplex() bool {
	return t.IsSet() || t.IsGraph()
}

func (t TypeTag) IsQualitative() bool {
	return t == TypePoint || t == TypeInterval || t == TypeRegion
}

// IndexVector is the coordinate of one cell, one entry per dimension.
type IndexVector []int

// Clone returns an independent copy of the vector.
func (v IndexVector) Clone() IndexVector {
	out := make(IndexVector, len(v))
	copy(out, v)
	return out
}

// String renders the vector in bracket form, e.g. "[1][0][2]".
func (v IndexVector) String() string {
	var b strings.Builder
	for _, i := range v {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(']')
	}
	return b.String()
}

// ScalarEntry is the resolved variable occupying one array cell. Entries are
// created by the store during domain assignment and never mutated afterwards,
// except for the solver-maintained degree counter.
type ScalarEntry struct {
	arrayID string
	indexes IndexVector
	typ     TypeTag
	dom     domains.Domain
	degree  int
}

func newScalarEntry(arrayID string, indexes IndexVector, typ TypeTag, dom domains.Domain) *ScalarEntry {
	return &ScalarEntry{
		arrayID: arrayID,
		indexes: indexes.Clone(),
		typ:     typ,
		dom:     dom,
	}
}

// Name renders the entry's display identity, e.g. "x[1][2]". The id and the
// index vector are kept structurally; the string form is built on demand.
func (e *ScalarEntry) Name() string {
	return e.arrayID + e.indexes.String()
}

// ArrayID returns the id of the declaring array.
func (e *ScalarEntry) ArrayID() string { return e.arrayID }

// Indexes returns a copy of the entry's coordinate.
func (e *ScalarEntry) Indexes() IndexVector { return e.indexes.Clone() }

// Type returns the tag inherited from the declaring array.
func (e *ScalarEntry) Type() TypeTag { return e.typ }

// Domain returns the value domain bound to this cell.
func (e *ScalarEntry) Domain() domains.Domain { return e.dom }

// Degree returns the number of constraints involving this variable. It is
// computed by later stages, after all constraints have been parsed.
func (e *ScalarEntry) Degree() int { return e.degree }

// BumpDegree increments the degree counter.
func (e *ScalarEntry) BumpDegree() { e.degree++ }

func (e *ScalarEntry) String() string {
	return e.Name()
}
