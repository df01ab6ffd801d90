package kern

import (
	"fmt"

	"github.com/adobe-type-tools/feawriter/core/font"
	"github.com/adobe-type-tools/feawriter/core/font/fea"
)

// Write compiles the font's kerning into a feature fragment: group
// definitions first, then left-to-right positioning rules in specificity
// order, then right-to-left rules in their own RightToLeft lookup. The
// fragment carries no feature-block fencing.
//
// Re-running on unchanged input and configuration reproduces the fragment
// byte-for-byte.
func Write(f *font.Font, cfg Config) (string, error) {
	if f.Kerning.Len() == 0 {
		trace().Infof("font %s has no kerning", f.PSName)
		return "", nil
	}
	ps, err := Classify(f, cfg)
	if err != nil {
		return "", err
	}
	if len(ps.Pairs) == 0 {
		trace().Infof("font %s has no kerning pairs above the minimum", f.PSName)
		return "", nil
	}
	o := Order(ps)

	var b fea.Builder
	for _, name := range ps.Used {
		g, _ := ps.Groups.Get(name)
		b.Line(fea.ClassDef(name, g.Members))
	}

	if err := writeDirection(&b, o.LTR, cfg, false); err != nil {
		return "", err
	}

	if cfg.WriteTrimmed && len(ps.Trimmed) > 0 {
		b.Blank()
		b.Comment("trimmed pairs:")
		for _, cp := range ps.Trimmed {
			b.Comment(posLine(cp, false))
		}
	}

	if len(o.RTL) > 0 {
		b.Blank()
		b.Line(fea.OpenLookup("RTL_kerning"))
		b.Line("lookupflag RightToLeft IgnoreMarks;")
		if err := writeDirection(&b, o.RTL, cfg, true); err != nil {
			return "", err
		}
		b.Blank()
		b.Line(fea.CloseLookup("RTL_kerning"))
	}
	return b.String(), nil
}

// writeDirection emits one direction's ordered pairs, partitioned into
// subtables when configured. Tier comments precede each tier's first pair.
func writeDirection(b *fea.Builder, ordered []ClassifiedPair, cfg Config, rtl bool) error {
	if len(ordered) == 0 {
		return nil
	}
	subtables := []Subtable{{Pairs: ordered}}
	if cfg.WriteSubtables {
		var err error
		subtables, err = Partition(ordered, cfg.SubtableSize)
		if err != nil {
			return err
		}
	}

	lastTier := Tier(-1)
	for i, st := range subtables {
		if i > 0 {
			b.Blank()
			b.Line("subtable;")
		}
		for _, cp := range st.Pairs {
			if cp.Tier != lastTier {
				b.Blank()
				b.Comment(cp.Tier.String() + ":")
				lastTier = cp.Tier
			}
			b.Line(posLine(cp, rtl))
		}
	}
	return nil
}

// posLine formats one pair-positioning statement. Right-to-left pairs use
// the four-value record form with the adjustment on x-placement and
// x-advance.
func posLine(cp ClassifiedPair, rtl bool) string {
	v := fea.Num(cp.Value)
	if rtl {
		return fmt.Sprintf("pos %s %s <%s 0 %s 0>;", cp.Left, cp.Right, v, v)
	}
	return fmt.Sprintf("pos %s %s %s;", cp.Left, cp.Right, v)
}
