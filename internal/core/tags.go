package core

// View switches the selected monitor to mask. AllTags enters the all
// tags view and drops every fullscreen slot; zero returns to the
// previous view. Viewing the mask already shown does nothing.
func (ctx *Context) View(mask uint32) {
	m := ctx.selmon
	pt := m.pertag
	if mask&ctx.tagMask == m.TagSet() {
		return
	}
	if m.sticky != nil {
		ctx.setFullscreen(m.sticky, false, false)
	}
	m.seltags ^= 1
	if mask&ctx.tagMask != 0 {
		m.tagset[m.seltags] = mask & ctx.tagMask
		pt.prevtag = pt.curtag
		if mask == AllTags {
			pt.curtag = 0
			ctx.dropFullscreens(m)
		} else {
			pt.curtag = lowestTag(mask) + 1
			if fs := pt.fullscreens[pt.curtag]; fs != nil {
				ctx.focus(fs)
			}
		}
	} else {
		pt.prevtag, pt.curtag = pt.curtag, pt.prevtag
	}
	m.updateBarPos()
	ctx.leftAllTags(m)
	ctx.focus(nil)
	ctx.Arrange(m)
	ctx.updateCurrentDesktop()
}

// dropFullscreens demotes the holder of every fullscreen slot of m.
func (ctx *Context) dropFullscreens(m *Monitor) {
	for i, fs := range m.pertag.fullscreens {
		if fs != nil {
			ctx.setFullscreenOnTag(fs, false, i, false)
		}
	}
}

// leftAllTags clears the all-tags fullscreen slot once m has moved on
// from that view.
func (ctx *Context) leftAllTags(m *Monitor) {
	pt := m.pertag
	if pt.prevtag != 0 || pt.curtag == 0 {
		return
	}
	if fs := pt.fullscreens[0]; fs != nil {
		ctx.setFullscreenOnTag(fs, false, 0, false)
	}
}

// ToggleView adds or removes mask from the view. The view never
// becomes empty.
func (ctx *Context) ToggleView(mask uint32) {
	m := ctx.selmon
	pt := m.pertag
	ts := m.TagSet() ^ (mask & ctx.tagMask)
	if ts == 0 {
		return
	}
	m.tagset[m.seltags] = ts
	if ts == ctx.tagMask {
		pt.prevtag = pt.curtag
		pt.curtag = 0
		ctx.dropFullscreens(m)
	}
	if pt.curtag == 0 && ts != ctx.tagMask || pt.curtag > 0 && ts&(1<<(pt.curtag-1)) == 0 {
		pt.prevtag = pt.curtag
		pt.curtag = lowestTag(ts) + 1
	}
	m.updateBarPos()
	ctx.leftAllTags(m)
	ctx.focus(nil)
	ctx.Arrange(m)
	ctx.updateCurrentDesktop()
}

// Tag moves the selected client to mask. A fullscreen client stays
// fullscreen on the lowest tag of mask.
func (ctx *Context) Tag(mask uint32) {
	m := ctx.selmon
	c := m.sel
	if mask&ctx.tagMask == m.TagSet() || c == nil || mask&ctx.tagMask == 0 {
		return
	}
	fs := c.Fullscreen()
	if fs {
		ctx.setFullscreen(c, false, false)
	}
	c.Tags = mask & ctx.tagMask
	i := lowestTag(c.Tags)
	ctx.placer.SetDesktop(c.Shown(), i+1)
	if m.sticky == c {
		return
	}
	ctx.detach(c)
	if m.pertag.attachDirs[i+1] == AttachAbove || m.pertag.attachDirs[i+1] == AttachTop {
		ctx.attachTop(c)
	} else {
		ctx.attachBottom(c)
	}
	if fs {
		ctx.setFullscreenOnTag(c, true, i+1, false)
	}
	ctx.focus(nil)
	ctx.Arrange(m)
}

// ToggleTag adds or removes mask from the selected client's tags. A
// client never ends up without tags.
func (ctx *Context) ToggleTag(mask uint32) {
	c := ctx.selmon.sel
	if c == nil {
		return
	}
	tags := c.Tags ^ (mask & ctx.tagMask)
	if tags == 0 {
		return
	}
	c.Tags = tags
	ctx.placer.SetDesktop(c.Shown(), lowestTag(tags)+1)
	ctx.focus(nil)
	ctx.Arrange(ctx.selmon)
}

// ToggleBar flips bar visibility for the current tag.
func (ctx *Context) ToggleBar() {
	m := ctx.selmon
	pt := m.pertag
	pt.showbars[pt.curtag] = !pt.showbars[pt.curtag]
	m.updateBarPos()
	ctx.Arrange(m)
}

// SetLayout selects layout table entry idx on the current tag. A
// negative idx, or the entry already selected, flips between the two
// remembered layouts. Entering the floating layout restores the float
// geometry of visible clients; leaving it saves their geometry.
func (ctx *Context) SetLayout(idx int) {
	m := ctx.selmon
	pt := m.pertag
	old := m.Layout()
	if idx < 0 || idx != m.LayoutIndex() {
		pt.sellts[pt.curtag] ^= 1
	}
	if idx >= 0 && idx < len(ctx.settings.Layouts) {
		pt.layouts[pt.curtag][pt.sellts[pt.curtag]] = idx
	}
	lt := m.Layout()
	if !lt.Arranges() {
		for _, c := range m.clients {
			if c.ScratchKey == 0 && !c.Fullscreen() && ctx.visible(c) {
				ctx.resizeClient(c, c.sf)
			}
		}
	}
	if !old.Arranges() {
		for _, c := range m.clients {
			if c.ScratchKey == 0 && !c.Fullscreen() && ctx.visible(c) {
				c.sf = c.Geometry()
			}
		}
	}
	m.Symbol = lt.Symbol
	if m.sel != nil {
		ctx.Arrange(m)
	}
}

// CycleLayout moves delta entries through the layout table.
func (ctx *Context) CycleLayout(delta int) {
	n := len(ctx.settings.Layouts)
	i := (ctx.selmon.LayoutIndex() + delta) % n
	if i < 0 {
		i += n
	}
	ctx.SetLayout(i)
}

// SetMFact changes the master area factor of the current tag by delta,
// or sets it when absolute. Results outside [0.05, 0.95] are ignored.
func (ctx *Context) SetMFact(f float64, absolute bool) {
	m := ctx.selmon
	if !m.Layout().Arranges() {
		return
	}
	if !absolute {
		f += m.MFact()
	}
	if f < 0.05 || f > 0.95 {
		return
	}
	m.pertag.mfacts[m.pertag.curtag] = f
	ctx.Arrange(m)
}

// SetCfact changes the selected client's weight by delta, sets it when
// absolute, or resets it to 1 when reset. The result is clamped to
// [0.25, 4].
func (ctx *Context) SetCfact(f float64, absolute, reset bool) {
	m := ctx.selmon
	c := m.sel
	if c == nil || !m.Layout().Arranges() {
		return
	}
	switch {
	case reset:
		f = 1.0
	case !absolute:
		f += c.Cfact
	}
	c.Cfact = min(max(f, 0.25), 4.0)
	ctx.Arrange(m)
}

// IncNMaster changes the master count of the current tag, never below
// zero.
func (ctx *Context) IncNMaster(delta int) {
	m := ctx.selmon
	m.pertag.nmasters[m.pertag.curtag] = max(m.NMaster()+delta, 0)
	ctx.Arrange(m)
}

// ResetNMaster puts one client back in the master area.
func (ctx *Context) ResetNMaster() {
	m := ctx.selmon
	m.pertag.nmasters[m.pertag.curtag] = 1
	ctx.Arrange(m)
}

// ResetFact restores the configured mfact and every tiled weight.
func (ctx *Context) ResetFact() {
	m := ctx.selmon
	m.pertag.mfacts[m.pertag.curtag] = ctx.settings.MFact
	for _, c := range m.tiled() {
		c.Cfact = 1.0
	}
	ctx.Arrange(m)
}
