package kern

import (
	"strings"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font"
)

// UFO stores kerning groups under standardized prefixes. They are remapped
// to the feature-file spelling before classification.
const (
	ufoKern1Prefix = "public.kern1." // first (left) side
	ufoKern2Prefix = "public.kern2." // second (right) side
	mmkLeftPrefix  = "@MMK_L_"
	mmkRightPrefix = "@MMK_R_"
)

// remapName rewrites a UFO kerning-group name to its feature-file spelling:
// public.kern1.X becomes @MMK_L_X, public.kern2.X becomes @MMK_R_X. A name
// already carrying the @MMK_ prefix keeps it; other names pass unchanged.
func remapName(name string) string {
	switch {
	case strings.HasPrefix(name, ufoKern1Prefix+mmkLeftPrefix):
		return strings.TrimPrefix(name, ufoKern1Prefix)
	case strings.HasPrefix(name, ufoKern2Prefix+mmkRightPrefix):
		return strings.TrimPrefix(name, ufoKern2Prefix)
	case strings.HasPrefix(name, ufoKern1Prefix):
		return mmkLeftPrefix + strings.TrimPrefix(name, ufoKern1Prefix)
	case strings.HasPrefix(name, ufoKern2Prefix):
		return mmkRightPrefix + strings.TrimPrefix(name, ufoKern2Prefix)
	}
	return name
}

// PairSet is the outcome of classification: the surviving pairs (in
// declaration order, no specificity ordering yet), the pairs trimmed by the
// minimum-value filter, the normalized group table, and the names of groups
// actually used by surviving pairs, in group-declaration order.
type PairSet struct {
	Pairs   []ClassifiedPair
	Trimmed []ClassifiedPair
	Groups  *font.GroupTable
	Used    []string
}

// Classify extracts and classifies the kerning pairs of a font.
//
// Pairs whose absolute value falls below cfg.MinValue are trimmed unless
// they are glyph/glyph pairs: exceptions are deliberate fine-tuning and are
// never filtered, regardless of magnitude. A pair side naming a group that
// does not exist fails with ErrUndefinedGroup.
func Classify(f *font.Font, cfg Config) (*PairSet, error) {
	groups, kerning := normalize(f, cfg)
	rtlRef, _ := groups.Get(cfg.RTLGroupName)

	ps := &PairSet{Groups: groups}
	usedGroups := make(map[string]bool)

	for seq, pair := range kerning.Pairs() {
		value, _ := kerning.Get(pair)

		if skipBySuffix(pair, cfg.IgnoreSuffix) {
			trace().Debugf("kerning pair %s carries ignore suffix, skipped", pair)
			continue
		}

		tier, err := tierOf(pair, groups)
		if err != nil {
			return nil, err
		}
		cp := ClassifiedPair{
			Pair:  pair,
			Value: value,
			Tier:  tier,
			RTL:   isRTLPair(pair, tier, groups, rtlRef),
			seq:   seq,
		}

		// Exceptions escape the minimum-value filter.
		if tier != GlyphGlyph && abs(value) < cfg.MinValue {
			ps.Trimmed = append(ps.Trimmed, cp)
			continue
		}
		if tier != GlyphGlyph && value == 0 {
			ps.Trimmed = append(ps.Trimmed, cp)
			continue
		}

		ps.Pairs = append(ps.Pairs, cp)
		if font.IsGroup(pair.Left) {
			usedGroups[pair.Left] = true
		}
		if font.IsGroup(pair.Right) {
			usedGroups[pair.Right] = true
		}
	}

	for _, name := range groups.Names() {
		if usedGroups[name] {
			ps.Used = append(ps.Used, name)
		}
	}
	trace().Infof("classified %d kerning pairs, %d trimmed, %d groups used",
		len(ps.Pairs), len(ps.Trimmed), len(ps.Used))
	return ps, nil
}

// normalize rebuilds the group and kerning tables with UFO prefixes
// remapped and, if configured, single-member group sides dissolved into
// plain glyph sides. The font's own tables are left untouched.
func normalize(f *font.Font, cfg Config) (*font.GroupTable, *font.KernTable) {
	groups := font.NewGroupTable()
	singletons := make(map[string]string) // group name → its only member
	for _, name := range f.Groups.Names() {
		g, _ := f.Groups.Get(name)
		remapped := &font.Group{Name: remapName(name), Members: g.Members}
		if cfg.DissolveSingle && len(remapped.Members) == 1 && !remapped.IsRTL() {
			singletons[remapped.Name] = remapped.Members[0]
			continue
		}
		groups.Add(remapped)
	}

	kerning := font.NewKernTable()
	for _, pair := range f.Kerning.Pairs() {
		value, _ := f.Kerning.Get(pair)
		left, right := remapName(pair.Left), remapName(pair.Right)
		if m, ok := singletons[left]; ok {
			left = m
		}
		if m, ok := singletons[right]; ok {
			right = m
		}
		kerning.Set(font.Pair{Left: left, Right: right}, value)
	}
	return groups, kerning
}

func skipBySuffix(pair font.Pair, suffix string) bool {
	if suffix == "" {
		return false
	}
	return strings.HasSuffix(pair.Left, suffix) || strings.HasSuffix(pair.Right, suffix)
}

func tierOf(pair font.Pair, groups *font.GroupTable) (Tier, error) {
	lGroup, rGroup := font.IsGroup(pair.Left), font.IsGroup(pair.Right)
	if lGroup {
		if _, ok := groups.Get(pair.Left); !ok {
			return 0, core.WrapError(ErrUndefinedGroup, core.EINVALID,
				"kerning pair %s references undefined group %s", pair, pair.Left)
		}
	}
	if rGroup {
		if _, ok := groups.Get(pair.Right); !ok {
			return 0, core.WrapError(ErrUndefinedGroup, core.EINVALID,
				"kerning pair %s references undefined group %s", pair, pair.Right)
		}
	}
	switch {
	case lGroup && rGroup:
		return GroupGroup, nil
	case lGroup:
		return GroupGlyph, nil
	case rGroup:
		return GlyphGroup, nil
	}
	return GlyphGlyph, nil
}

// isRTLPair flags right-to-left kerning. A pair with a group side is RTL if
// that group carries a script tag or is listed in the RTL reference group.
// An all-glyph pair is RTL only if the reference group lists both glyphs.
func isRTLPair(pair font.Pair, tier Tier, groups *font.GroupTable, rtlRef *font.Group) bool {
	if tier == GlyphGlyph {
		return rtlRef != nil && rtlRef.Contains(pair.Left) && rtlRef.Contains(pair.Right)
	}
	return isRTLSide(pair.Left, groups, rtlRef) || isRTLSide(pair.Right, groups, rtlRef)
}

func isRTLSide(name string, groups *font.GroupTable, rtlRef *font.Group) bool {
	if font.IsGroup(name) {
		if g, ok := groups.Get(name); ok && g.IsRTL() {
			return true
		}
	}
	return rtlRef != nil && rtlRef.Contains(name)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
