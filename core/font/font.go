/*
Package font holds a read-only projection of the font data that the feature
compilers consume: glyphs with anchors, kerning groups, and kerning pairs.

The projection is deliberately small. It carries exactly what the kern and
mark compilers need and nothing of the source environment (UFO directory,
editor object model) it was lifted from. Group and kerning tables preserve
insertion order, which is semantically load-bearing: rule emission order and
tie-breaking depend on declaration order, not on any container's accidental
iteration order.

Naming conventions, as established by type-design practice:

▪︎ a kerning side starting with "@" references a group

▪︎ group names carry side tags (_LEFT/_1ST/_L_ vs _RIGHT/_2ND/_R_) and
script tags (_ARA, _HEB, _RTL for right-to-left kerning)

▪︎ anchor names starting with "_" are attachment sources (mark anchors),
all others attachment targets (base anchors)
*/
package font

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// --- Anchors and glyphs ------------------------------------------------------

// Anchor is a named attachment point on a glyph.
type Anchor struct {
	Name string
	X    float64
	Y    float64
}

// IsMark returns true if the anchor is an attachment source, i.e. its name
// starts with an underscore.
func (a Anchor) IsMark() bool {
	return strings.HasPrefix(a.Name, "_")
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s(%g,%g)", a.Name, a.X, a.Y)
}

// Glyph is a glyph of the source font, reduced to the properties the feature
// compilers read: its name, advance width and anchor list. Anchors keep the
// order of their declaration in the source.
type Glyph struct {
	Name    string
	Width   float64
	Anchors []Anchor
}

// Anchor returns the glyph's anchor with the given name.
func (g *Glyph) Anchor(name string) (Anchor, bool) {
	for _, a := range g.Anchors {
		if a.Name == name {
			return a, true
		}
	}
	return Anchor{}, false
}

// --- Groups ------------------------------------------------------------------

// GroupPrefix marks a kerning side as a group reference.
const GroupPrefix = "@"

// IsGroup returns true if a kerning-pair side references a group.
func IsGroup(name string) bool {
	return strings.HasPrefix(name, GroupPrefix)
}

// Group is an ordered, duplicate-free sequence of member glyph names.
type Group struct {
	Name    string
	Members []string
}

var leftTags = []string{"_LEFT", "_1ST", "_L_"}
var rightTags = []string{"_RIGHT", "_2ND", "_R_"}
var rtlTags = []string{"_ARA", "_HEB", "_RTL"}

// GroupSide tells which side of a kerning pair a group is intended for.
type GroupSide int8

const (
	SideAny GroupSide = iota // no side tag in the name, usable on both sides
	SideLeft
	SideRight
)

// Side derives the group's kerning side from its naming convention.
// Groups without an explicit side tag are usable on either side.
func (g *Group) Side() GroupSide {
	for _, tag := range leftTags {
		if strings.Contains(g.Name, tag) {
			return SideLeft
		}
	}
	for _, tag := range rightTags {
		if strings.Contains(g.Name, tag) {
			return SideRight
		}
	}
	return SideAny
}

// IsRTL returns true if the group name carries a right-to-left script tag.
func (g *Group) IsRTL() bool {
	return IsRTLName(g.Name)
}

// IsRTLName checks a kerning item name for a right-to-left script tag.
func IsRTLName(name string) bool {
	for _, tag := range rtlTags {
		if strings.Contains(name, tag) {
			return true
		}
	}
	return false
}

// Contains reports group membership.
func (g *Group) Contains(glyphName string) bool {
	for _, m := range g.Members {
		if m == glyphName {
			return true
		}
	}
	return false
}

// GroupTable is an insertion-ordered table of kerning groups, keyed by group
// name. Adding a group a second time keeps the first definition's position.
type GroupTable struct {
	m *linkedhashmap.Map
}

func NewGroupTable() *GroupTable {
	return &GroupTable{m: linkedhashmap.New()}
}

// Add inserts a group, silently dropping duplicate members (first occurrence
// wins). Re-adding a name replaces the members but keeps the table position.
func (t *GroupTable) Add(g *Group) {
	members := make([]string, 0, len(g.Members))
	seen := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		if seen[m] {
			T().Infof("group %s repeats member %s, ignored", g.Name, m)
			continue
		}
		seen[m] = true
		members = append(members, m)
	}
	t.m.Put(g.Name, &Group{Name: g.Name, Members: members})
}

// Get looks up a group by name.
func (t *GroupTable) Get(name string) (*Group, bool) {
	if v, ok := t.m.Get(name); ok {
		return v.(*Group), true
	}
	return nil, false
}

// Names returns all group names in declaration order.
func (t *GroupTable) Names() []string {
	keys := t.m.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

func (t *GroupTable) Len() int {
	return t.m.Size()
}

// --- Kerning -----------------------------------------------------------------

// Pair is a kerning pair: each side is either a glyph name or a group name
// (marked by the "@" prefix).
type Pair struct {
	Left  string
	Right string
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Left, p.Right)
}

// KernTable is an insertion-ordered table of kerning pairs and their values.
type KernTable struct {
	m *linkedhashmap.Map
}

func NewKernTable() *KernTable {
	return &KernTable{m: linkedhashmap.New()}
}

// Set stores a pair's value. A pair set twice keeps its original position.
func (t *KernTable) Set(p Pair, value float64) {
	t.m.Put(p, value)
}

// Get looks up a pair's value.
func (t *KernTable) Get(p Pair) (float64, bool) {
	if v, ok := t.m.Get(p); ok {
		return v.(float64), true
	}
	return 0, false
}

// Pairs returns all pairs in declaration order.
func (t *KernTable) Pairs() []Pair {
	keys := t.m.Keys()
	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = k.(Pair)
	}
	return pairs
}

func (t *KernTable) Len() int {
	return t.m.Size()
}

// --- Font --------------------------------------------------------------------

// Font is the snapshot of one source font, as supplied by a font data
// adapter (see package ufo for the on-disk variant). The compilers never
// mutate it.
type Font struct {
	PSName  string // PostScript font name, used in output headers
	Groups  *GroupTable
	Kerning *KernTable
	glyphs  *linkedhashmap.Map // glyph name → *Glyph, in glyph order
	index   map[string]int     // glyph name → position in glyph order
}

func NewFont(psName string) *Font {
	return &Font{
		PSName:  psName,
		Groups:  NewGroupTable(),
		Kerning: NewKernTable(),
		glyphs:  linkedhashmap.New(),
		index:   make(map[string]int),
	}
}

// AddGlyph appends a glyph to the font's glyph order. A glyph added twice
// keeps its original position.
func (f *Font) AddGlyph(g *Glyph) {
	if _, ok := f.index[g.Name]; !ok {
		f.index[g.Name] = f.glyphs.Size()
	}
	f.glyphs.Put(g.Name, g)
}

// Glyph looks up a glyph by name.
func (f *Font) Glyph(name string) (*Glyph, bool) {
	if v, ok := f.glyphs.Get(name); ok {
		return v.(*Glyph), true
	}
	return nil, false
}

// HasGlyph reports whether the font contains a glyph with the given name.
func (f *Font) HasGlyph(name string) bool {
	_, ok := f.index[name]
	return ok
}

// GlyphIndex returns a glyph's position in the font's glyph order, or -1.
// The mark compiler uses it to sort glyph lists reproducibly.
func (f *Font) GlyphIndex(name string) int {
	if i, ok := f.index[name]; ok {
		return i
	}
	return -1
}

// GlyphNames returns all glyph names in glyph order.
func (f *Font) GlyphNames() []string {
	keys := f.glyphs.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.glyphs.Size()
}
