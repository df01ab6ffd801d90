package ufo

import (
	"encoding/xml"
	"os"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font"
)

// GLIF (glyph interchange format) XML shapes, reduced to what the feature
// compilers read. Outlines are parsed only far enough to recover format-1
// anchors, which GLIF 1 spells as single-point "move" contours with a name.
type glifGlyph struct {
	XMLName  xml.Name      `xml:"glyph"`
	Name     string        `xml:"name,attr"`
	Format   int           `xml:"format,attr"`
	Advance  *glifAdvance  `xml:"advance"`
	Anchors  []glifAnchor  `xml:"anchor"`
	Contours []glifContour `xml:"outline>contour"`
}

type glifAdvance struct {
	Width float64 `xml:"width,attr"`
}

type glifAnchor struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Name string  `xml:"name,attr"`
}

type glifContour struct {
	Points []glifPoint `xml:"point"`
}

type glifPoint struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Type string  `xml:"type,attr"`
	Name string  `xml:"name,attr"`
}

// readGlif parses one .glif file into a glyph.
func readGlif(path string) (*font.Glyph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "glyph source %s: %v", path, err)
	}
	var gg glifGlyph
	if err := xml.Unmarshal(data, &gg); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "glyph source %s: %v", path, err)
	}
	g := &font.Glyph{Name: gg.Name}
	if gg.Advance != nil {
		g.Width = gg.Advance.Width
	}
	for _, a := range gg.Anchors {
		g.Anchors = append(g.Anchors, font.Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}
	if gg.Format <= 1 && len(g.Anchors) == 0 {
		g.Anchors = formatOneAnchors(gg.Contours)
	}
	return g, nil
}

// formatOneAnchors recovers GLIF 1 anchors: a contour consisting of exactly
// one named "move" point.
func formatOneAnchors(contours []glifContour) []font.Anchor {
	var anchors []font.Anchor
	for _, c := range contours {
		if len(c.Points) != 1 {
			continue
		}
		p := c.Points[0]
		if p.Type != "move" || p.Name == "" {
			continue
		}
		anchors = append(anchors, font.Anchor{Name: p.Name, X: p.X, Y: p.Y})
	}
	return anchors
}
