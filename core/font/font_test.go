package font

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
)

func TestGroupSides(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for name, side := range map[string]GroupSide{
		"@A_LEFT":     SideLeft,
		"@A_1ST":      SideLeft,
		"@MMK_L_A":    SideLeft,
		"@A_RIGHT":    SideRight,
		"@A_2ND":      SideRight,
		"@MMK_R_A":    SideRight,
		"@A_anywhere": SideAny,
	} {
		g := &Group{Name: name}
		if g.Side() != side {
			t.Errorf("expected side %d for group %s, have %d", side, name, g.Side())
		}
	}
}

func TestRTLNames(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for name, rtl := range map[string]bool{
		"@alef_ARA": true,
		"@alef_HEB": true,
		"@alef_RTL": true,
		"@alef":     false,
	} {
		if IsRTLName(name) != rtl {
			t.Errorf("expected IsRTLName(%s) = %v", name, rtl)
		}
	}
}

func TestGroupTableDedupsMembers(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	gt := NewGroupTable()
	gt.Add(&Group{Name: "@A", Members: []string{"a", "b", "a"}})
	g, ok := gt.Get("@A")
	if !ok || len(g.Members) != 2 {
		t.Errorf("expected 2 members after dedup, have %v", g)
	}
}

func TestGroupTableKeepsDeclarationOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	gt := NewGroupTable()
	gt.Add(&Group{Name: "@B"})
	gt.Add(&Group{Name: "@A"})
	gt.Add(&Group{Name: "@B", Members: []string{"b"}}) // re-add keeps position
	names := gt.Names()
	if len(names) != 2 || names[0] != "@B" || names[1] != "@A" {
		t.Errorf("expected declaration order [@B @A], have %v", names)
	}
}

func TestKernTableKeepsDeclarationOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	kt := NewKernTable()
	kt.Set(Pair{"a", "v"}, -10)
	kt.Set(Pair{"o", "v"}, -20)
	kt.Set(Pair{"a", "v"}, -15) // overwrite keeps position
	pairs := kt.Pairs()
	if len(pairs) != 2 || pairs[0] != (Pair{"a", "v"}) {
		t.Errorf("expected pair (a, v) to keep first position, have %v", pairs)
	}
	if v, _ := kt.Get(Pair{"a", "v"}); v != -15 {
		t.Errorf("expected overwritten value -15, have %g", v)
	}
}

func TestFontGlyphOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := NewFont("Test-Regular")
	f.AddGlyph(&Glyph{Name: "b"})
	f.AddGlyph(&Glyph{Name: "a"})
	if f.GlyphIndex("b") != 0 || f.GlyphIndex("a") != 1 {
		t.Errorf("expected glyph order [b a], have %v", f.GlyphNames())
	}
	if f.GlyphIndex("missing") != -1 {
		t.Errorf("expected -1 for unknown glyph")
	}
	f.AddGlyph(&Glyph{Name: "b", Width: 500}) // re-add keeps position
	if f.GlyphIndex("b") != 0 || f.NumGlyphs() != 2 {
		t.Errorf("expected re-added glyph to keep position 0")
	}
}

func TestAnchorKinds(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	if !(Anchor{Name: "_above"}).IsMark() {
		t.Errorf("expected _above to be a mark anchor")
	}
	if (Anchor{Name: "above"}).IsMark() {
		t.Errorf("expected above to be a base anchor")
	}
}
