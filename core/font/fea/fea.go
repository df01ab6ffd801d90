/*
Package fea provides primitives for assembling OpenType feature-file source
text. The kern and mark compilers both serialize through this package so
that formatting decisions (number formatting, class definitions, lookup
framing, file writing) stay in one place and output is reproducible
byte-for-byte.

The emitted text contains rule bodies only. Feature-block fencing (e.g.
"feature kern { ... } kern;") is left to the including feature file, so
compilation flags around the include can change without touching generated
content.
*/
package fea

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces to a global core-tracer.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Builder accumulates output lines of a feature fragment.
// The zero value is ready to use.
type Builder struct {
	lines []string
}

// Line appends one formatted line.
func (b *Builder) Line(format string, v ...interface{}) {
	if len(v) == 0 {
		b.lines = append(b.lines, format)
		return
	}
	b.lines = append(b.lines, fmt.Sprintf(format, v...))
}

// Blank appends an empty line, but never two in a row and never as the
// first line of a fragment.
func (b *Builder) Blank() {
	if len(b.lines) == 0 || b.lines[len(b.lines)-1] == "" {
		return
	}
	b.lines = append(b.lines, "")
}

// Comment appends a "# ..." comment line.
func (b *Builder) Comment(text string) {
	b.lines = append(b.lines, "# "+text)
}

// Len returns the number of lines appended so far.
func (b *Builder) Len() int {
	return len(b.lines)
}

// String joins the fragment's lines. Non-empty fragments end in a newline.
func (b *Builder) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// --- Formatting helpers ------------------------------------------------------

// Num formats a coordinate or kerning value. Integral values print without
// a decimal part, which is what font editors store in the overwhelming
// majority of cases.
func Num(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClassNum formats a coordinate for use inside a glyph-class name.
// Hyphens are not allowed in class names, so negative values use 'n'.
func ClassNum(v float64) string {
	return strings.ReplaceAll(Num(v), "-", "n")
}

// ClassDef formats a glyph class definition: "@NAME = [a b c];".
func ClassDef(name string, members []string) string {
	return fmt.Sprintf("%s = [%s];", name, strings.Join(members, " "))
}

// Anchor formats an anchor literal: "<anchor x y>".
func Anchor(x, y float64) string {
	return fmt.Sprintf("<anchor %s %s>", Num(x), Num(y))
}

// --- Lookup framing ----------------------------------------------------------

// OpenLookup returns the opening line of a named lookup block.
func OpenLookup(name string) string {
	return fmt.Sprintf("lookup %s {", name)
}

// CloseLookup returns the closing line of a named lookup block.
func CloseLookup(name string) string {
	return fmt.Sprintf("} %s;", name)
}

// --- Output ------------------------------------------------------------------

// Save writes a fully assembled fragment to a file in a single operation.
// Nothing is written for an empty fragment; a pre-existing file is left
// untouched in that case. A partial file is never left behind: the fragment
// is complete in memory before the file is touched.
func Save(path string, fragment string) error {
	if fragment == "" {
		trace().Infof("fragment for %s is empty, not written", path)
		return nil
	}
	trace().Infof("writing %s", path)
	return os.WriteFile(path, []byte(fragment), 0644)
}
