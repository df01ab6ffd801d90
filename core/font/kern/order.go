package kern

import (
	"sort"

	"github.com/adobe-type-tools/feawriter/core/font"
)

// Ordered carries the emission order of classified pairs. Left-to-right and
// right-to-left pairs go into directionally distinct lookups and are never
// interleaved.
type Ordered struct {
	LTR []ClassifiedPair
	RTL []ClassifiedPair
}

// Order produces the emission order used by the subtable partitioner and
// the writer. The ordering invariant is that more specific rules precede
// less specific ones, because pair positioning resolves the first matching
// rule per glyph pair:
//
// ▪︎ glyph/glyph exceptions first, in declaration order
//
// ▪︎ then glyph/group and group/glyph pairs, grouped by their group side in
// group-declaration order
//
// ▪︎ then group/group pairs, in group-declaration order (left side major)
//
// The sort is stable. Order is a pure function of the classified set:
// identical input yields identical output.
func Order(ps *PairSet) Ordered {
	var o Ordered
	for _, cp := range ps.Pairs {
		if cp.RTL {
			o.RTL = append(o.RTL, cp)
		} else {
			o.LTR = append(o.LTR, cp)
		}
	}
	groupRank := groupRanks(ps.Groups)
	orderPairs(o.LTR, groupRank)
	orderPairs(o.RTL, groupRank)
	return o
}

func groupRanks(groups *font.GroupTable) map[string]int {
	ranks := make(map[string]int, groups.Len())
	for i, name := range groups.Names() {
		ranks[name] = i
	}
	return ranks
}

// tierRank collapses the two single-group tiers: glyph/group and
// group/glyph pairs share a specificity level.
func tierRank(t Tier) int {
	switch t {
	case GlyphGlyph:
		return 0
	case GlyphGroup, GroupGlyph:
		return 1
	}
	return 2
}

// blockRank orders pairs within a tier by their group side's declaration
// position. For group/group pairs the left group is the major key and the
// right group the minor key; glyph/glyph pairs have no group key.
func blockRank(cp ClassifiedPair, groupRank map[string]int) (major, minor int) {
	switch cp.Tier {
	case GlyphGroup:
		return groupRank[cp.Right], 0
	case GroupGlyph:
		return groupRank[cp.Left], 0
	case GroupGroup:
		return groupRank[cp.Left], groupRank[cp.Right]
	}
	return 0, 0
}

func orderPairs(pairs []ClassifiedPair, groupRank map[string]int) {
	sort.SliceStable(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		ti, tj := tierRank(pi.Tier), tierRank(pj.Tier)
		if ti != tj {
			return ti < tj
		}
		iMaj, iMin := blockRank(pi, groupRank)
		jMaj, jMin := blockRank(pj, groupRank)
		if iMaj != jMaj {
			return iMaj < jMaj
		}
		if iMin != jMin {
			return iMin < jMin
		}
		return pi.seq < pj.seq
	})
}
