package core

import "testing"

func TestPertagValuesFollowView(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()

	ctx.View(1 << 1)
	ctx.SetMFact(0.7, true)
	ctx.IncNMaster(1)
	ctx.SetLayout(1)
	if m.MFact() != 0.7 || m.NMaster() != 2 || m.Layout().Kind != Monocle {
		t.Fatalf("tag 2: mfact=%v nmaster=%d layout=%v", m.MFact(), m.NMaster(), m.Layout().Kind)
	}

	ctx.View(1)
	if m.MFact() != 0.5 || m.NMaster() != 1 || m.Layout().Kind != Tile {
		t.Fatalf("tag 1: mfact=%v nmaster=%d layout=%v", m.MFact(), m.NMaster(), m.Layout().Kind)
	}

	ctx.View(0)
	if m.CurTag() != 2 || m.TagSet() != 1<<1 {
		t.Fatalf("after view prev: curtag=%d tagset=%b", m.CurTag(), m.TagSet())
	}
	if m.MFact() != 0.7 || m.NMaster() != 2 || m.Layout().Kind != Monocle {
		t.Fatalf("tag 2 again: mfact=%v nmaster=%d layout=%v", m.MFact(), m.NMaster(), m.Layout().Kind)
	}
}

func TestViewAllTags(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.AllTagsLayout = 3 })
	ctx := env.ctx
	m := ctx.SelMon()
	ctx.View(AllTags)
	if m.CurTag() != 0 || m.TagSet() != ctx.TagMask() {
		t.Fatalf("curtag=%d tagset=%b", m.CurTag(), m.TagSet())
	}
	if m.Layout().Kind != Grid {
		t.Fatalf("all-tags layout = %v, want grid", m.Layout().Kind)
	}
}

func TestToggleViewNeverEmpty(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	ctx.ToggleView(1)
	if m.TagSet() != 1 {
		t.Fatalf("tagset = %b, want 1", m.TagSet())
	}
	ctx.ToggleView(1 << 2)
	if m.TagSet() != 0b101 || m.CurTag() != 1 {
		t.Fatalf("tagset=%b curtag=%d", m.TagSet(), m.CurTag())
	}
	ctx.ToggleView(1)
	if m.TagSet() != 0b100 || m.CurTag() != 3 {
		t.Fatalf("tagset=%b curtag=%d", m.TagSet(), m.CurTag())
	}
}

func TestTagMovesClientAway(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	ctx.Tag(1 << 3)
	if b.Tags != 1<<3 {
		t.Fatalf("tags = %b", b.Tags)
	}
	if ctx.Visible(b) {
		t.Fatal("retagged client still visible")
	}
	if got := ctx.SelMon().Sel(); got != a {
		t.Fatalf("selection = %v, want the remaining client", got)
	}

	ctx.ToggleTag(1 << 3)
	if a.Tags != 1|1<<3 {
		t.Fatalf("toggletag: tags = %b", a.Tags)
	}
	ctx.ToggleTag(1 << 3)
	ctx.ToggleTag(1)
	if a.Tags != 1 {
		t.Fatalf("client lost its last tag: %b", a.Tags)
	}
}

func TestSetFactBounds(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	a := env.manage(t, nil)

	ctx.SetMFact(0.5, false)
	if m.MFact() != 0.5 {
		t.Errorf("out of range mfact applied: %v", m.MFact())
	}
	ctx.SetCfact(10, true, false)
	if a.Cfact != 4 {
		t.Errorf("cfact = %v, want clamp to 4", a.Cfact)
	}
	ctx.SetCfact(-10, false, false)
	if a.Cfact != 0.25 {
		t.Errorf("cfact = %v, want clamp to 0.25", a.Cfact)
	}
	ctx.SetCfact(0, false, true)
	if a.Cfact != 1 {
		t.Errorf("cfact = %v, want reset to 1", a.Cfact)
	}
	ctx.IncNMaster(-5)
	if m.NMaster() != 0 {
		t.Errorf("nmaster = %d, want 0", m.NMaster())
	}
	ctx.ResetNMaster()
	if m.NMaster() != 1 {
		t.Errorf("nmaster = %d, want 1", m.NMaster())
	}
}

func TestSetLayoutToggles(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	env.manage(t, nil)
	ctx.SetLayout(3)
	if m.Layout().Kind != Grid {
		t.Fatalf("layout = %v", m.Layout().Kind)
	}
	ctx.SetLayout(-1)
	if m.Layout().Kind != Tile {
		t.Fatalf("toggle back: layout = %v", m.Layout().Kind)
	}
	ctx.CycleLayout(-1)
	if m.LayoutIndex() != 5 {
		t.Fatalf("cycle: index = %d, want 5", m.LayoutIndex())
	}
}

func TestToggleBarPerTag(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	ctx.ToggleBar()
	if !m.ShowBar() || m.W.H != testScreen.H-20 || m.W.Y != 20 {
		t.Fatalf("bar on: showbar=%v work=%+v", m.ShowBar(), m.W)
	}
	ctx.View(1 << 1)
	if m.ShowBar() || m.W != m.M {
		t.Fatalf("tag 2: showbar=%v work=%+v", m.ShowBar(), m.W)
	}
}
