package mark

import (
	"sort"
	"strings"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font"
)

// ignoreAnchorTag marks contextual anchors; they never produce attachment
// rules or mark classes.
const ignoreAnchorTag = "CXT"

// maxComponents is the highest supported ligature component ordinal (1ST
// through 9TH).
const maxComponents = 9

var casingTags = []string{"UC", "LC", "SC"}

// trimCasing strips a trailing casing tag so that cased anchor variants
// (aboveUC, aboveLC) group under one role. Coordinates are unaffected;
// trimming changes grouping only.
func trimCasing(name string) string {
	for _, tag := range casingTags {
		if len(name) > len(tag) && strings.HasSuffix(name, tag) {
			return strings.TrimSuffix(name, tag)
		}
	}
	return name
}

var ordinalSuffixes = []string{"ST", "ND", "RD", "TH"}

// splitOrdinal detects a ligature-component ordinal suffix (1ST…9TH) on a
// base anchor name. It returns the role with the ordinal stripped (and a
// separating underscore, if any) and the component number, or 0 for a plain
// name. An ordinal beyond maxComponents fails with ErrLigatureComponents.
func splitOrdinal(name string) (role string, ordinal int, err error) {
	var suffix string
	for _, s := range ordinalSuffixes {
		if strings.HasSuffix(name, s) {
			suffix = s
			break
		}
	}
	if suffix == "" {
		return name, 0, nil
	}
	digits := 0
	rest := strings.TrimSuffix(name, suffix)
	for digits < len(rest) && rest[len(rest)-1-digits] >= '0' && rest[len(rest)-1-digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return name, 0, nil // e.g. "breakFIRST" is not an ordinal
	}
	n := 0
	for _, c := range rest[len(rest)-digits:] {
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		return name, 0, nil
	}
	if n > maxComponents {
		return "", 0, core.WrapError(ErrLigatureComponents, core.EINVALID,
			"anchor %s: component ordinal %d exceeds the maximum of %d", name, n, maxComponents)
	}
	role = strings.TrimSuffix(rest[:len(rest)-digits], "_")
	return role, n, nil
}

// Component is one ligature component's attachment point, in ordinal order.
type Component struct {
	X float64
	Y float64
}

// BaseEntry is one base glyph's attachment data for a role: either a single
// anchor position, or, for a ligature, one position per component.
type BaseEntry struct {
	Glyph      string
	X          float64
	Y          float64
	Components []Component
}

// IsLigature reports whether the entry attaches per ligature component.
func (e BaseEntry) IsLigature() bool {
	return e.Components != nil
}

// Resolution maps anchor roles to the base glyphs carrying them, and
// records which roles appear as mark anchors on combining marks. Base roles
// without a mark counterpart are dropped (with a notice) before the
// Resolution is returned.
type Resolution struct {
	Bases     map[string][]BaseEntry // role → base entries, in glyph order
	MarkRoles map[string]bool        // roles of _anchors on combining marks
	MkmkRoles map[string]bool        // roles of plain anchors on combining marks
	roles     []string               // sorted keys of Bases
}

// Roles returns the attachment role names in sorted order.
func (r *Resolution) Roles() []string {
	return r.roles
}

// Resolve pairs base and mark anchors across the font's glyphs.
//
// Base anchors are collected from glyphs outside the combining-marks group
// that have a nonzero advance width. Each base role must have a matching
// mark anchor (the underscore-prefixed counterpart) on at least one
// combining mark; a base role without one is reported and skipped. A mark
// anchor whose role has no base anchor anywhere fails with
// ErrOrphanMarkAnchor.
func Resolve(f *font.Font, cfg Config) (*Resolution, error) {
	marksGroup, ok := f.Groups.Get(cfg.GroupName)
	if !ok || len(marksGroup.Members) == 0 {
		return nil, core.WrapError(ErrNoMarksGroup, core.EMISSING,
			"no group named %s in the font (add it, and combining marks to it)", cfg.GroupName)
	}
	isMark := make(map[string]bool, len(marksGroup.Members))
	for _, m := range marksGroup.Members {
		isMark[m] = true
	}

	res := &Resolution{
		Bases:     make(map[string][]BaseEntry),
		MarkRoles: make(map[string]bool),
		MkmkRoles: make(map[string]bool),
	}

	for _, name := range f.GlyphNames() {
		g, _ := f.Glyph(name)
		if isMark[name] {
			collectMarkRoles(g, cfg, res)
			continue
		}
		if len(g.Anchors) == 0 || g.Width == 0 {
			continue
		}
		if err := resolveBaseGlyph(g, cfg, res); err != nil {
			return nil, err
		}
	}

	// Every mark anchor needs a base (or mkmk target) counterpart.
	for role := range res.MarkRoles {
		if _, ok := res.Bases[role]; !ok && !res.MkmkRoles[role] {
			return nil, core.WrapError(ErrOrphanMarkAnchor, core.EINVALID,
				"mark anchor _%s has no matching base anchor %s in any glyph", role, role)
		}
	}
	// Base roles nothing attaches to produce no rule.
	for role := range res.Bases {
		if !res.MarkRoles[role] {
			trace().Infof("anchor %s is not used by any combining mark, skipped", role)
			delete(res.Bases, role)
			continue
		}
		res.roles = append(res.roles, role)
	}
	sort.Strings(res.roles)
	return res, nil
}

// collectMarkRoles records which roles a combining mark participates in:
// underscore anchors attach it, plain anchors make it a mark-to-mark target.
func collectMarkRoles(g *font.Glyph, cfg Config, res *Resolution) {
	for _, a := range g.Anchors {
		name := anchorName(g, a, cfg)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "_") {
			res.MarkRoles[name[1:]] = true
		} else {
			res.MkmkRoles[name] = true
		}
	}
}

// resolveBaseGlyph collects one glyph's base anchors into role entries.
// Ordinal-suffixed anchors make the glyph a ligature for that role: the run
// must start at 1ST and be contiguous, and must not mix with a plain anchor
// of the same role.
func resolveBaseGlyph(g *font.Glyph, cfg Config, res *Resolution) error {
	plain := make(map[string]font.Anchor)
	ordinals := make(map[string]map[int]font.Anchor)
	var order []string // roles in anchor order

	for _, a := range g.Anchors {
		name := anchorName(g, a, cfg)
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		role, ord, err := splitOrdinal(name)
		if err != nil {
			return core.WrapError(err, core.Code(err), "glyph %s: %s", g.Name, core.UserMessage(err))
		}
		seen := false
		if _, ok := plain[role]; ok {
			seen = true
		}
		if _, ok := ordinals[role]; ok {
			seen = true
		}
		if ord == 0 {
			if _, dup := plain[role]; dup {
				trace().Infof("glyph %s has more than one anchor named %s", g.Name, name)
				continue
			}
			plain[role] = a
		} else {
			if ordinals[role] == nil {
				ordinals[role] = make(map[int]font.Anchor)
			}
			if _, dup := ordinals[role][ord]; dup {
				trace().Infof("glyph %s has more than one anchor named %s", g.Name, name)
				continue
			}
			ordinals[role][ord] = a
		}
		if !seen {
			order = append(order, role)
		}
	}

	for _, role := range order {
		ords, isLig := ordinals[role]
		anchor, isPlain := plain[role]
		if isLig && isPlain {
			return core.WrapError(ErrInconsistentLigature, core.EINVALID,
				"glyph %s mixes ordinal and plain anchors for role %s", g.Name, role)
		}
		entry := BaseEntry{Glyph: g.Name}
		if isLig {
			for i := 1; i <= len(ords); i++ {
				a, ok := ords[i]
				if !ok {
					return core.WrapError(ErrInconsistentLigature, core.EINVALID,
						"glyph %s: ligature anchors for role %s have a gap at component %d", g.Name, role, i)
				}
				entry.Components = append(entry.Components, Component{X: a.X, Y: a.Y})
			}
		} else {
			entry.X, entry.Y = anchor.X, anchor.Y
		}
		res.Bases[role] = append(res.Bases[role], entry)
	}
	return nil
}

// anchorName normalizes an anchor name for role matching. Nameless and
// contextual anchors are reported and return "".
func anchorName(g *font.Glyph, a font.Anchor, cfg Config) string {
	if a.Name == "" {
		trace().Infof("glyph %s has a nameless anchor, skipped", g.Name)
		return ""
	}
	if strings.Contains(a.Name, ignoreAnchorTag) {
		trace().Debugf("glyph %s: contextual anchor %s skipped", g.Name, a.Name)
		return ""
	}
	if cfg.TrimTags {
		return trimCasing(a.Name)
	}
	return a.Name
}
