package ufo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/require"

	"github.com/adobe-type-tools/feawriter/core/font"
)

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

// writeTestUFO lays out a minimal UFO 3 package with two base glyphs, one
// combining mark, a kerning group and two kerning pairs.
func writeTestUFO(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Test-Regular.ufo")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "glyphs"), 0755))

	files := map[string]string{
		"metainfo.plist": plistHeader + `<plist version="1.0"><dict>
<key>creator</key><string>test</string>
<key>formatVersion</key><integer>3</integer>
</dict></plist>`,
		"fontinfo.plist": plistHeader + `<plist version="1.0"><dict>
<key>postscriptFontName</key><string>Test-Regular</string>
</dict></plist>`,
		"layercontents.plist": plistHeader + `<plist version="1.0"><array>
<array><string>public.default</string><string>glyphs</string></array>
</array></plist>`,
		"lib.plist": plistHeader + `<plist version="1.0"><dict>
<key>public.glyphOrder</key><array>
<string>v</string><string>A</string><string>gravecmb</string>
</array>
</dict></plist>`,
		"groups.plist": plistHeader + `<plist version="1.0"><dict>
<key>COMBINING_MARKS</key><array><string>gravecmb</string></array>
<key>public.kern1.A</key><array><string>A</string></array>
</dict></plist>`,
		"kerning.plist": plistHeader + `<plist version="1.0"><dict>
<key>public.kern1.A</key><dict><key>v</key><integer>-40</integer></dict>
<key>A</key><dict><key>v</key><integer>-35</integer></dict>
</dict></plist>`,
		"glyphs/contents.plist": plistHeader + `<plist version="1.0"><dict>
<key>A</key><string>A_.glif</string>
<key>v</key><string>v.glif</string>
<key>gravecmb</key><string>gravecmb.glif</string>
</dict></plist>`,
		"glyphs/A_.glif": `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="A" format="2">
  <advance width="600"/>
  <anchor x="321" y="700" name="above"/>
  <outline/>
</glyph>`,
		"glyphs/v.glif": `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="v" format="2">
  <advance width="500"/>
  <outline/>
</glyph>`,
		"glyphs/gravecmb.glif": `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="gravecmb" format="2">
  <advance width="0"/>
  <anchor x="0" y="495" name="_above"/>
  <outline/>
</glyph>`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoadUFO(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f, err := Load(writeTestUFO(t))
	require.NoError(t, err)

	require.Equal(t, "Test-Regular", f.PSName)
	require.Equal(t, []string{"v", "A", "gravecmb"}, f.GlyphNames(),
		"glyph order follows public.glyphOrder")

	g, ok := f.Glyph("A")
	require.True(t, ok)
	require.Equal(t, 600.0, g.Width)
	require.Len(t, g.Anchors, 1)
	require.Equal(t, font.Anchor{Name: "above", X: 321, Y: 700}, g.Anchors[0])

	marks, ok := f.Groups.Get("COMBINING_MARKS")
	require.True(t, ok)
	require.Equal(t, []string{"gravecmb"}, marks.Members)

	// kerning pairs in sorted order, bare names untouched
	require.Equal(t, 2, f.Kerning.Len())
	v, ok := f.Kerning.Get(font.Pair{Left: "public.kern1.A", Right: "v"})
	require.True(t, ok)
	require.Equal(t, -40.0, v)
	v, ok = f.Kerning.Get(font.Pair{Left: "A", Right: "v"})
	require.True(t, ok)
	require.Equal(t, -35.0, v)
}

func TestLoadRejectsNonUFO(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadBareGroupNamesInKerning(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	dir := writeTestUFO(t)
	groups := plistHeader + `<plist version="1.0"><dict>
<key>COMBINING_MARKS</key><array><string>gravecmb</string></array>
<key>A_LEFT</key><array><string>A</string></array>
</dict></plist>`
	kerning := plistHeader + `<plist version="1.0"><dict>
<key>A_LEFT</key><dict><key>v</key><integer>-40</integer></dict>
</dict></plist>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.plist"), []byte(groups), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kerning.plist"), []byte(kerning), 0644))

	f, err := Load(dir)
	require.NoError(t, err)
	_, ok := f.Kerning.Get(font.Pair{Left: "@A_LEFT", Right: "v"})
	require.True(t, ok, "bare group reference gets the @ prefix")
	_, ok = f.Groups.Get("@A_LEFT")
	require.True(t, ok)
}

func TestGlifFormatOneAnchors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "a.glif")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="a" format="1">
  <advance width="500"/>
  <outline>
    <contour><point x="180" y="520" type="move" name="above"/></contour>
    <contour>
      <point x="0" y="0" type="line"/>
      <point x="100" y="0" type="line"/>
    </contour>
  </outline>
</glyph>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := readGlif(path)
	require.NoError(t, err)
	require.Len(t, g.Anchors, 1)
	require.Equal(t, font.Anchor{Name: "above", X: 180, Y: 520}, g.Anchors[0])
}
