package mark

import (
	"sort"
	"strings"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font"
)

// MarkEntry is one combining mark's attachment point within a mark class.
type MarkEntry struct {
	Glyph string
	X     float64
	Y     float64
}

// Classes groups the combining marks by role. Marks holds the attaching
// anchors (the underscore-prefixed ones), Mkmk the plain anchors that make a
// mark a mark-to-mark attachment target. Entries follow the font's glyph
// order.
type Classes struct {
	Marks map[string][]MarkEntry
	Mkmk  map[string][]MarkEntry
	roles []string
}

// Roles returns the mark class role names in sorted order.
func (c *Classes) Roles() []string {
	return c.roles
}

// BuildClasses collects the mark classes from the combining-marks group.
// Glyphs outside the group never contribute to a class, even if they carry
// mark anchors. Group members missing from the font are reported and
// skipped. A role nothing attaches under yields no class.
func BuildClasses(f *font.Font, cfg Config) (*Classes, error) {
	marksGroup, ok := f.Groups.Get(cfg.GroupName)
	if !ok || len(marksGroup.Members) == 0 {
		return nil, core.WrapError(ErrNoMarksGroup, core.EMISSING,
			"no group named %s in the font (add it, and combining marks to it)", cfg.GroupName)
	}
	isMark := make(map[string]bool, len(marksGroup.Members))
	for _, m := range marksGroup.Members {
		if !f.HasGlyph(m) {
			trace().Infof("group %s member %s is not a glyph in the font, skipped", cfg.GroupName, m)
			continue
		}
		isMark[m] = true
	}

	classes := &Classes{
		Marks: make(map[string][]MarkEntry),
		Mkmk:  make(map[string][]MarkEntry),
	}
	for _, name := range f.GlyphNames() {
		if !isMark[name] {
			continue
		}
		g, _ := f.Glyph(name)
		seen := make(map[string]bool) // one anchor per role per mark
		for _, a := range g.Anchors {
			aname := anchorName(g, a, cfg)
			if aname == "" {
				continue
			}
			target := classes.Mkmk
			role := aname
			if strings.HasPrefix(aname, "_") {
				target = classes.Marks
				role = aname[1:]
			}
			if seen[aname] {
				trace().Infof("glyph %s has more than one anchor named %s", g.Name, aname)
				continue
			}
			seen[aname] = true
			target[role] = append(target[role], MarkEntry{Glyph: g.Name, X: a.X, Y: a.Y})
		}
	}
	for role := range classes.Marks {
		classes.roles = append(classes.roles, role)
	}
	sort.Strings(classes.roles)
	return classes, nil
}
