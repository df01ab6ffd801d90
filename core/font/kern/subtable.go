package kern

import (
	"github.com/adobe-type-tools/feawriter/core"
)

// Subtable is a capacity-bounded partition of the ordered pair sequence.
// Pair positioning references one glyph class per pair side (a plain glyph
// side counts as a singleton class); the subtable tracks how many distinct
// classes it references.
type Subtable struct {
	Pairs        []ClassifiedPair
	LeftClasses  int
	RightClasses int
}

// Classes returns the subtable's combined glyph-class coverage.
func (s *Subtable) Classes() int {
	return s.LeftClasses + s.RightClasses
}

// block is a run of pairs that must not be split across a subtable
// boundary: all pairs keyed by the same group within one tier. A boundary
// may only fall between tiers or between blocks.
type block struct {
	pairs []ClassifiedPair
	left  map[string]bool
	right map[string]bool
}

// blockKey identifies the run a pair belongs to. Glyph/glyph pairs are
// splittable anywhere, so every pair forms its own block.
func blockKey(cp ClassifiedPair) (tier int, key string) {
	switch cp.Tier {
	case GlyphGroup:
		return 1, cp.Right
	case GroupGlyph:
		return 1, cp.Left
	case GroupGroup:
		return 2, cp.Left
	}
	return 0, cp.Left + " " + cp.Right
}

func blocks(ordered []ClassifiedPair) []block {
	var bs []block
	lastTier, lastKey := -1, ""
	for _, cp := range ordered {
		tier, key := blockKey(cp)
		if len(bs) == 0 || tier != lastTier || key != lastKey || tier == 0 {
			bs = append(bs, block{
				left:  make(map[string]bool),
				right: make(map[string]bool),
			})
		}
		b := &bs[len(bs)-1]
		b.pairs = append(b.pairs, cp)
		b.left[cp.Left] = true
		b.right[cp.Right] = true
		lastTier, lastKey = tier, key
	}
	return bs
}

// Partition splits the ordered pair sequence into subtables none of which
// references more than capacity distinct glyph classes. Global specificity
// order is preserved across boundaries: subtable N's pairs all precede
// subtable N+1's pairs.
//
// A block whose own class coverage exceeds capacity fails with
// ErrSubtableCapacity; there is no way to resolve that by splitting.
func Partition(ordered []ClassifiedPair, capacity int) ([]Subtable, error) {
	if len(ordered) == 0 {
		return nil, nil
	}

	var subtables []Subtable
	cur := Subtable{}
	left := make(map[string]bool)
	right := make(map[string]bool)

	flush := func() {
		if len(cur.Pairs) == 0 {
			return
		}
		cur.LeftClasses, cur.RightClasses = len(left), len(right)
		subtables = append(subtables, cur)
		cur = Subtable{}
		left = make(map[string]bool)
		right = make(map[string]bool)
	}

	for _, b := range blocks(ordered) {
		if cost := len(b.left) + len(b.right); cost > capacity {
			return nil, core.WrapError(ErrSubtableCapacity, core.EOVERFLOW,
				"pair block starting at %s needs %d glyph classes, subtable capacity is %d",
				b.pairs[0].Pair, cost, capacity)
		}
		if classCount(left, b.left)+classCount(right, b.right) > capacity {
			flush()
		}
		cur.Pairs = append(cur.Pairs, b.pairs...)
		merge(left, b.left)
		merge(right, b.right)
	}
	flush()

	trace().Debugf("partitioned %d pairs into %d subtables", len(ordered), len(subtables))
	return subtables, nil
}

// classCount computes the distinct class count of have ∪ add.
func classCount(have, add map[string]bool) int {
	n := len(have)
	for k := range add {
		if !have[k] {
			n++
		}
	}
	return n
}

func merge(dst, src map[string]bool) {
	for k := range src {
		dst[k] = true
	}
}
