package varrays

import (
	"fmt"
	"strings"

	"github.com/cspforge/xcells/xcells/domains"
)

// OthersKeyword is the literal that selects every still-unassigned cell.
const OthersKeyword = "others"

type specKind int

const (
	specCompact specKind = iota
	specOthers
)

// Spec is one domain-assignment specification from a declaration: either a
// compact form (possibly several whitespace-separated tokens) or the OTHERS
// sentinel. The sentinel is an explicit tag, not a string compared at use
// sites.
type Spec struct {
	kind specKind
	raw  string
}

// Compact builds a spec from a compact-form string such as "x[1..3][0]".
// Several tokens may be separated by whitespace; they are applied in order.
func Compact(raw string) Spec {
	return Spec{kind: specCompact, raw: raw}
}

// Others builds the catch-all spec addressing every still-empty cell.
func Others() Spec {
	return Spec{kind: specOthers}
}

// ParseSpec recognizes the OTHERS literal and treats anything else as a
// compact form.
func ParseSpec(raw string) Spec {
	if strings.TrimSpace(raw) == OthersKeyword {
		return Others()
	}
	return Compact(raw)
}

// IsOthers reports whether the spec is the catch-all sentinel.
func (sp Spec) IsOthers() bool { return sp.kind == specOthers }

func (sp Spec) String() string {
	if sp.kind == specOthers {
		return OthersKeyword
	}
	return sp.raw
}

// AssignDomain binds dom to every cell the spec addresses.
//
// For the OTHERS sentinel, every still-empty slot receives a fresh entry and
// occupied slots are left untouched; that is the defined mechanism for
// applying a catch-all after explicit specs, not an error. For a compact
// form, each addressed slot must be empty: a slot already populated by an
// earlier spec is a duplicate definition and aborts the declaration.
func (s *FlatArrayStore) AssignDomain(sp Spec, dom domains.Domain) error {
	if sp.IsOthers() {
		s.fillRemaining(dom)
		return nil
	}
	for _, token := range strings.Fields(sp.raw) {
		if err := s.assignCompact(token, dom); err != nil {
			return err
		}
	}
	return nil
}

func (s *FlatArrayStore) assignCompact(token string, dom domains.Domain) error {
	ranges, err := ParseCompactForm(token, s.id, s.sizes)
	if err != nil {
		return err
	}
	for vec := range Enumerate(ranges) {
		offset, err := s.FlatOffset(vec)
		if err != nil {
			return err
		}
		if err := s.put(offset, newScalarEntry(s.id, vec, s.typ, dom)); err != nil {
			return fmt.Errorf("token %q: %w", token, err)
		}
	}
	return nil
}

// fillRemaining builds an entry with dom for each unoccupied cell.
func (s *FlatArrayStore) fillRemaining(dom domains.Domain) {
	it := s.emptyOffsets().Iterator()
	for it.HasNext() {
		offset := int(it.Next())
		vec, _ := s.IndexVectorFor(offset)
		s.slots[offset] = newScalarEntry(s.id, vec, s.typ, dom)
		s.occupied.Add(uint32(offset))
	}
}

// CheckComplete fails when cells are still empty after all specs (including
// any catch-all) have been applied — the declaration gave them no domain.
func (s *FlatArrayStore) CheckComplete() error {
	if missing := len(s.slots) - s.Population(); missing > 0 {
		return fmt.Errorf("%w: array %q has %d of %d cells unassigned",
			ErrIncompleteArray, s.id, missing, len(s.slots))
	}
	return nil
}

// VarsFor returns the entries addressed by one compact form, in odometer
// order. For x[1..3] on a rank-1 array the result is x[1], x[2], x[3].
// Cells the declaration never populated come back as nil slots only if the
// store is still mid-population; on a complete store every returned entry is
// non-nil.
func (s *FlatArrayStore) VarsFor(compactForm string) ([]*ScalarEntry, error) {
	ranges, err := ParseCompactForm(compactForm, s.id, s.sizes)
	if err != nil {
		return nil, err
	}
	var out []*ScalarEntry
	for vec := range Enumerate(ranges) {
		offset, err := s.FlatOffset(vec)
		if err != nil {
			return nil, err
		}
		out = append(out, s.slots[offset])
	}
	return out, nil
}
