/*
Package ufo loads a Unified Font Object (UFO 2 or 3) package from disk into
the compilers' font projection.

Property lists are decoded with howett.net/plist, glyph sources (.glif) with
encoding/xml. Dictionaries in plists carry no order, so groups are inserted
by sorted name and kerning pairs by sorted (left, right); glyph order follows
public.glyphOrder from lib.plist, remaining glyphs appended in sorted order.
Loading the same UFO therefore always produces the same font snapshot.
*/
package ufo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"howett.net/plist"

	"github.com/adobe-type-tools/feawriter/core"
	"github.com/adobe-type-tools/feawriter/core/font"
)

// trace traces to a global core-tracer.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}

type metaInfo struct {
	Creator       string `plist:"creator"`
	FormatVersion int    `plist:"formatVersion"`
}

type fontInfo struct {
	PostscriptFontName string `plist:"postscriptFontName"`
	FamilyName         string `plist:"familyName"`
	StyleName          string `plist:"styleName"`
}

type libInfo struct {
	GlyphOrder []string `plist:"public.glyphOrder"`
}

// Load reads the UFO package at path and assembles the font snapshot the
// feature compilers consume.
func Load(path string) (*font.Font, error) {
	var meta metaInfo
	if err := readPlist(filepath.Join(path, "metainfo.plist"), &meta); err != nil {
		return nil, core.WrapError(err, core.EMISSING, "%s is not a UFO package: %s",
			path, core.UserMessage(err))
	}
	if meta.FormatVersion < 2 || meta.FormatVersion > 3 {
		return nil, core.Error(core.EINVALID, "%s: unsupported UFO format version %d",
			path, meta.FormatVersion)
	}
	trace().Debugf("loading UFO %s (format %d, creator %s)", path, meta.FormatVersion, meta.Creator)

	f := font.NewFont(psName(path))
	if err := loadGlyphs(path, meta.FormatVersion, f); err != nil {
		return nil, err
	}
	if err := loadGroups(path, f); err != nil {
		return nil, err
	}
	if err := loadKerning(path, f); err != nil {
		return nil, err
	}
	markKerningGroups(f)
	trace().Infof("loaded %s: %d glyphs, %d groups, %d kerning pairs",
		f.PSName, f.NumGlyphs(), f.Groups.Len(), f.Kerning.Len())
	return f, nil
}

// psName derives the PostScript font name from fontinfo.plist, falling back
// to FamilyName-StyleName and finally to the package's base name.
func psName(path string) string {
	var info fontInfo
	if err := readPlist(filepath.Join(path, "fontinfo.plist"), &info); err != nil {
		trace().Infof("no readable fontinfo.plist in %s", path)
	}
	if info.PostscriptFontName != "" {
		return info.PostscriptFontName
	}
	if info.FamilyName != "" {
		name := strings.ReplaceAll(info.FamilyName, " ", "")
		if info.StyleName != "" {
			name += "-" + strings.ReplaceAll(info.StyleName, " ", "")
		}
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(filepath.Base(path)))
}

// readPlist decodes one property list file into v.
func readPlist(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, v); err != nil {
		return core.WrapError(err, core.EINVALID, "%s: %v", filepath.Base(path), err)
	}
	return nil
}

// glyphsDir locates the default glyph layer: "glyphs" for UFO 2, the first
// entry of layercontents.plist for UFO 3.
func glyphsDir(path string, formatVersion int) string {
	if formatVersion < 3 {
		return "glyphs"
	}
	var layers [][]string
	if err := readPlist(filepath.Join(path, "layercontents.plist"), &layers); err != nil || len(layers) == 0 {
		return "glyphs"
	}
	if len(layers[0]) < 2 {
		return "glyphs"
	}
	return layers[0][1]
}

func loadGlyphs(path string, formatVersion int, f *font.Font) error {
	dir := filepath.Join(path, glyphsDir(path, formatVersion))
	var contents map[string]string
	if err := readPlist(filepath.Join(dir, "contents.plist"), &contents); err != nil {
		return core.WrapError(err, core.EMISSING, "%s has no glyph layer: %s",
			path, core.UserMessage(err))
	}

	var lib libInfo
	if err := readPlist(filepath.Join(path, "lib.plist"), &lib); err != nil {
		trace().Debugf("no readable lib.plist in %s", path)
	}
	order := make([]string, 0, len(contents))
	listed := make(map[string]bool, len(lib.GlyphOrder))
	for _, name := range lib.GlyphOrder {
		if _, ok := contents[name]; !ok {
			trace().Infof("public.glyphOrder lists %s, which has no glyph source", name)
			continue
		}
		if listed[name] {
			continue
		}
		listed[name] = true
		order = append(order, name)
	}
	rest := make([]string, 0, len(contents))
	for name := range contents {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	for _, name := range order {
		g, err := readGlif(filepath.Join(dir, contents[name]))
		if err != nil {
			return err
		}
		if g.Name != name {
			trace().Infof("glyph source %s declares name %s, contents.plist says %s",
				contents[name], g.Name, name)
			g.Name = name
		}
		f.AddGlyph(g)
	}
	return nil
}

func loadGroups(path string, f *font.Font) error {
	var groups map[string][]string
	err := readPlist(filepath.Join(path, "groups.plist"), &groups)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f.Groups.Add(&font.Group{Name: name, Members: groups[name]})
	}
	return nil
}

func loadKerning(path string, f *font.Font) error {
	var kerning map[string]map[string]float64
	err := readPlist(filepath.Join(path, "kerning.plist"), &kerning)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	lefts := make([]string, 0, len(kerning))
	for left := range kerning {
		lefts = append(lefts, left)
	}
	sort.Strings(lefts)
	for _, left := range lefts {
		row := kerning[left]
		rights := make([]string, 0, len(row))
		for right := range row {
			rights = append(rights, right)
		}
		sort.Strings(rights)
		for _, right := range rights {
			f.Kerning.Set(font.Pair{Left: left, Right: right}, row[right])
		}
	}
	return nil
}

// markKerningGroups rewrites kerning sides that reference a group by its
// bare name to the "@"-prefixed feature-file spelling, registering the group
// under the prefixed name as well. UFO kerning references groups by plain
// dictionary key, while the compilers distinguish groups from glyphs by the
// "@" prefix; public.kernN.* names are left alone, the kern compiler remaps
// those itself.
func markKerningGroups(f *font.Font) {
	renamed := make(map[string]string)
	sideName := func(s string) string {
		if r, ok := renamed[s]; ok {
			return r
		}
		if font.IsGroup(s) || strings.HasPrefix(s, "public.kern") || f.HasGlyph(s) {
			return s
		}
		g, ok := f.Groups.Get(s)
		if !ok {
			return s
		}
		prefixed := font.GroupPrefix + s
		f.Groups.Add(&font.Group{Name: prefixed, Members: g.Members})
		renamed[s] = prefixed
		trace().Debugf("kerning group %s referenced by bare name, spelled %s", s, prefixed)
		return prefixed
	}
	rewritten := font.NewKernTable()
	for _, p := range f.Kerning.Pairs() {
		value, _ := f.Kerning.Get(p)
		rewritten.Set(font.Pair{Left: sideName(p.Left), Right: sideName(p.Right)}, value)
	}
	f.Kerning = rewritten
}
