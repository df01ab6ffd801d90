package mark

import (
	"sort"
	"strings"

	"github.com/adobe-type-tools/feawriter/core/font"
	"github.com/adobe-type-tools/feawriter/core/font/fea"
)

// Fragments holds the generated feature text, split by destination file.
// Empty fragments correspond to files that should not be written.
type Fragments struct {
	MarkClasses string // markClass statements, when Config.WriteClasses is set
	Mark        string // mark feature rules (includes the classes otherwise)
	Mkmk        string // mark-to-mark rules, when Config.WriteMkmk is set
	Abvm        string // above-base rules, when Config.IndicFormat is set
	Blwm        string // below-base rules, when Config.IndicFormat is set
}

// markClassName returns the "@MC_<role>" mark class reference.
func markClassName(role string) string {
	return "@MC_" + role
}

// Write compiles the font's anchors into mark attachment feature text.
//
// The mark classes come first (in their own fragment when cfg.WriteClasses
// is set), then one lookup per attachment role, roles in sorted order and
// glyphs in font order throughout, so that identical input yields identical
// output. With cfg.IndicFormat, roles named abvm*/blwm* are diverted to
// their own fragments.
func Write(f *font.Font, cfg Config) (*Fragments, error) {
	classes, err := BuildClasses(f, cfg)
	if err != nil {
		return nil, err
	}
	res, err := Resolve(f, cfg)
	if err != nil {
		return nil, err
	}

	var cb fea.Builder
	for _, role := range classes.Roles() {
		writeMarkClass(&cb, role, classes.Marks[role])
	}

	var markBody, abvm, blwm fea.Builder
	for _, role := range res.Roles() {
		if len(classes.Marks[role]) == 0 {
			// A role can survive resolution on mkmk targets alone.
			continue
		}
		b := &markBody
		if cfg.IndicFormat {
			switch {
			case strings.HasPrefix(role, "abvm"):
				b = &abvm
			case strings.HasPrefix(role, "blwm"):
				b = &blwm
			}
		}
		writeAttachments(b, role, res.Bases[role])
	}

	frags := &Fragments{
		Mark: markBody.String(),
		Abvm: abvm.String(),
		Blwm: blwm.String(),
	}
	if cfg.WriteClasses {
		frags.MarkClasses = cb.String()
	} else if frags.Mark != "" {
		cb.Blank()
		frags.Mark = cb.String() + frags.Mark
	} else {
		frags.Mark = cb.String()
	}
	if cfg.WriteMkmk {
		frags.Mkmk = writeMkmk(classes)
	}
	return frags, nil
}

// writeMarkClass emits the markClass statements for one role. Marks sharing
// an anchor position are folded into a "@mGC_<role>_<x>_<y>" glyph class so
// the class is stated once per position.
func writeMarkClass(b *fea.Builder, role string, marks []MarkEntry) {
	type position struct {
		x, y float64
	}
	var order []position
	grouped := make(map[position][]string)
	for _, m := range marks {
		p := position{m.X, m.Y}
		if _, ok := grouped[p]; !ok {
			order = append(order, p)
		}
		grouped[p] = append(grouped[p], m.Glyph)
	}
	for _, p := range order {
		glyphs := grouped[p]
		target := glyphs[0]
		if len(glyphs) > 1 {
			target = "@mGC_" + role + "_" + fea.ClassNum(p.x) + "_" + fea.ClassNum(p.y)
			b.Line(fea.ClassDef(target, glyphs))
		}
		b.Line("markClass %s %s %s;", target, fea.Anchor(p.x, p.y), markClassName(role))
	}
}

// writeAttachments emits the attachment lookups for one role: base rules in
// MARK_BASE_<role>, ligature rules in MARK_LIGATURE_<role>. Base glyphs
// sharing an anchor position are folded into a "@bGC_<glyph>_<role>" class
// named after the first such glyph.
func writeAttachments(b *fea.Builder, role string, entries []BaseEntry) {
	var simple, ligatures []BaseEntry
	for _, e := range entries {
		if e.IsLigature() {
			ligatures = append(ligatures, e)
		} else {
			simple = append(simple, e)
		}
	}
	if len(simple) > 0 {
		b.Blank()
		lookup := "MARK_BASE_" + role
		b.Line(fea.OpenLookup(lookup))
		writeBaseRules(b, role, simple)
		b.Line(fea.CloseLookup(lookup))
	}
	if len(ligatures) > 0 {
		b.Blank()
		lookup := "MARK_LIGATURE_" + role
		b.Line(fea.OpenLookup(lookup))
		for _, e := range ligatures {
			writeLigatureRule(b, role, e)
		}
		b.Line(fea.CloseLookup(lookup))
	}
}

func writeBaseRules(b *fea.Builder, role string, entries []BaseEntry) {
	type position struct {
		x, y float64
	}
	var order []position
	grouped := make(map[position][]string)
	for _, e := range entries {
		p := position{e.X, e.Y}
		if _, ok := grouped[p]; !ok {
			order = append(order, p)
		}
		grouped[p] = append(grouped[p], e.Glyph)
	}
	// Class definitions precede the rules that use them.
	targets := make([]string, len(order))
	for i, p := range order {
		glyphs := grouped[p]
		targets[i] = glyphs[0]
		if len(glyphs) > 1 {
			targets[i] = "@bGC_" + glyphs[0] + "_" + role
			b.Line(fea.ClassDef(targets[i], glyphs))
		}
	}
	for i, p := range order {
		b.Line("pos base %s %s mark %s;", targets[i], fea.Anchor(p.x, p.y), markClassName(role))
	}
}

// writeLigatureRule emits one "pos ligature" rule, one ligComponent clause
// per component after the first.
func writeLigatureRule(b *fea.Builder, role string, e BaseEntry) {
	var sb strings.Builder
	sb.WriteString("pos ligature " + e.Glyph)
	for i, c := range e.Components {
		if i > 0 {
			sb.WriteString("\n\tligComponent")
		}
		sb.WriteString(" " + fea.Anchor(c.X, c.Y) + " mark " + markClassName(role))
	}
	sb.WriteString(";")
	b.Line(sb.String())
}

// writeMkmk emits one MKMK_MARK_<role> lookup per role that has both a mark
// class and mark-to-mark targets. The MarkAttachmentType flag restricts each
// lookup to the marks of its own class.
func writeMkmk(classes *Classes) string {
	var roles []string
	for role := range classes.Mkmk {
		if len(classes.Marks[role]) == 0 {
			trace().Infof("no combining mark attaches under %s, mkmk lookup skipped", role)
			continue
		}
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var b fea.Builder
	for _, role := range roles {
		b.Blank()
		lookup := "MKMK_MARK_" + role
		b.Line(fea.OpenLookup(lookup))
		b.Line("lookupflag MarkAttachmentType %s;", markClassName(role))
		for _, m := range classes.Mkmk[role] {
			b.Line("pos mark %s %s mark %s;", m.Glyph, fea.Anchor(m.X, m.Y), markClassName(role))
		}
		b.Line(fea.CloseLookup(lookup))
	}
	return b.String()
}
