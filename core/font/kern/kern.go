/*
Package kern compiles glyph/group kerning pairs into GPOS pair-positioning
feature source.

The compilation runs in three stages:

▪︎ classification (classify.go): pairs are validated, normalized and sorted
into four tiers (glyph/glyph, glyph/group, group/glyph, group/group), with
right-to-left pairs flagged for a separate lookup

▪︎ specificity ordering (order.go): more specific rules must precede less
specific ones, because pair positioning resolves the first matching rule per
glyph pair

▪︎ subtable partitioning (subtable.go): the ordered sequence is split into
capacity-bounded subtables, since a single pair-positioning subtable with
unbounded glyph-class coverage overflows format limits and corrupts lookups

The writer (writer.go) serializes the result as a plain-text feature
fragment, left-to-right pairs first, right-to-left pairs wrapped in a
RightToLeft lookup.
*/
package kern

import (
	"errors"

	"github.com/adobe-type-tools/feawriter/core/font"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces to a global core-tracer.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Config collects the knobs of the kern compiler. It is threaded explicitly
// through all stages; the compiler is a pure function of (font, config).
type Config struct {
	MinValue       float64 // minimum absolute kerning value, inclusive
	WriteTrimmed   bool    // emit trimmed pairs as comments
	WriteSubtables bool    // split class kerning into subtables
	SubtableSize   int     // subtable capacity, in distinct glyph classes
	IgnoreSuffix   string  // kerning items with this suffix are skipped
	DissolveSingle bool    // rewrite single-member group sides as glyphs
	RTLGroupName   string  // reference group marking RTL kerning items
}

// DefaultConfig returns the compiler defaults. MinValue is inclusive: a pair
// whose absolute value equals it survives trimming.
func DefaultConfig() Config {
	return Config{
		MinValue:       3,
		WriteSubtables: false,
		SubtableSize:   100,
		IgnoreSuffix:   ".cxt",
		DissolveSingle: false,
		RTLGroupName:   "RTL_KERNING",
	}
}

// Tier classifies a kerning pair by the kind of its sides. Lower tiers are
// more specific and take precedence during shaping.
type Tier int8

const (
	GlyphGlyph Tier = iota // exceptions, never trimmed
	GlyphGroup
	GroupGlyph
	GroupGroup
)

func (t Tier) String() string {
	switch t {
	case GlyphGlyph:
		return "glyph, glyph"
	case GlyphGroup:
		return "glyph, group"
	case GroupGlyph:
		return "group, glyph"
	case GroupGroup:
		return "group, group"
	}
	return "invalid"
}

// ClassifiedPair is one surviving kerning pair with its classification.
type ClassifiedPair struct {
	font.Pair
	Value float64
	Tier  Tier
	RTL   bool
	seq   int // position in the kerning table, for stable ordering
}

// Errors of the kern compiler. They are wrapped in coded core errors which
// carry the offending pair or group; use errors.Is against these sentinels.
var (
	// ErrUndefinedGroup: a kerning pair side names a group that is not in
	// the group table.
	ErrUndefinedGroup = errors.New("kerning pair references undefined group")
	// ErrSubtableCapacity: a single pair block's glyph-class coverage
	// already exceeds the configured subtable capacity. Not recoverable
	// by splitting.
	ErrSubtableCapacity = errors.New("kerning pair exceeds subtable capacity")
)
