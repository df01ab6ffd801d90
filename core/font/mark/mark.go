/*
Package mark compiles anchor points on base and mark glyphs into GPOS
mark-attachment feature source: mark-to-base, mark-to-ligature and,
optionally, mark-to-mark positioning rules.

Anchor roles follow a paired-name convention that is checked in one place,
the resolver (anchors.go): a base anchor "above" attaches marks carrying the
underscore-prefixed counterpart "_above". Base anchors may carry ordinal
suffixes (above1ST, above2ND, …) marking ligature component attachment
points, and casing suffixes (UC, LC, SC) which can be trimmed so cased
anchor variants feed one attachment rule.

Mark classes (classes.go) are built exclusively from the members of a
designated combining-marks group; a glyph outside that group may carry
underscore anchors without participating, which is how deliberately skipped
anchors are expressed in source fonts.
*/
package mark

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces to a global core-tracer.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Config collects the knobs of the mark compiler, threaded explicitly
// through resolver, class builder and writer.
type Config struct {
	GroupName    string // reference group listing all combining marks
	TrimTags     bool   // strip casing tags (UC, LC, SC) from anchor names
	IndicFormat  bool   // split abvm/blwm roles into their own fragments
	WriteMkmk    bool   // build the mark-to-mark fragment
	WriteClasses bool   // keep mark classes in a standalone fragment
}

// DefaultConfig returns the compiler defaults.
func DefaultConfig() Config {
	return Config{
		GroupName: "COMBINING_MARKS",
	}
}

// Errors of the mark compiler, wrapped in coded core errors carrying glyph
// and anchor context; use errors.Is against these sentinels.
var (
	// ErrNoMarksGroup: the combining-marks reference group is missing or
	// empty. Without it no mark class can be built.
	ErrNoMarksGroup = errors.New("combining-marks group not found")
	// ErrOrphanMarkAnchor: a mark anchor has no base anchor counterpart
	// anywhere in the font.
	ErrOrphanMarkAnchor = errors.New("mark anchor without matching base anchor")
	// ErrInconsistentLigature: a glyph mixes ordinal and plain anchors of
	// one role, or its ordinal run has a gap or does not start at 1ST.
	ErrInconsistentLigature = errors.New("inconsistent ligature component anchors")
	// ErrLigatureComponents: an anchor carries an ordinal beyond the
	// supported maximum of 9 components.
	ErrLigatureComponents = errors.New("ligature component limit exceeded")
)
