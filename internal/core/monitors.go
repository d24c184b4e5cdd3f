package core

// uniqueRects drops screens that repeat the geometry of an earlier one,
// as cloned outputs do.
func uniqueRects(rects []Rect) []Rect {
	var out []Rect
	for _, r := range rects {
		dup := false
		for _, u := range out {
			if u == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

// bounds returns the smallest rectangle holding every rect.
func bounds(rects []Rect) Rect {
	b := rects[0]
	for _, r := range rects[1:] {
		x1, y1 := max(b.X+b.W, r.X+r.W), max(b.Y+b.H, r.Y+r.H)
		b.X, b.Y = min(b.X, r.X), min(b.Y, r.Y)
		b.W, b.H = x1-b.X, y1-b.Y
	}
	return b
}

// UpdateMonitors reconciles the monitor list with the given screen
// rectangles and reports whether anything changed. Clients of monitors
// that went away move to the first monitor.
func (ctx *Context) UpdateMonitors(rects []Rect) bool {
	rects = uniqueRects(rects)
	if len(rects) == 0 {
		rects = []Rect{ctx.screen}
	}
	ctx.screen = bounds(rects)
	dirty := false
	for len(ctx.mons) < len(rects) {
		m := newMonitor(ctx)
		m.Num = len(ctx.mons)
		ctx.mons = append(ctx.mons, m)
		dirty = true
	}
	for i, r := range rects {
		m := ctx.mons[i]
		if m.M != r {
			m.M = r
			m.updateBarPos()
			dirty = true
		}
	}
	for len(ctx.mons) > len(rects) {
		gone := ctx.mons[len(ctx.mons)-1]
		first := ctx.mons[0]
		for _, c := range gone.Clients() {
			dirty = true
			ctx.setFullscreen(c, false, false)
			if gone.sticky == c {
				gone.sticky = nil
			}
			ctx.detach(c)
			ctx.detachStack(c)
			c.mon = first
			ctx.attach(c)
			ctx.attachStack(c)
		}
		if ctx.selmon == gone {
			ctx.selmon = first
		}
		ctx.mons = ctx.mons[:len(ctx.mons)-1]
	}
	if ctx.selmon == nil {
		ctx.selmon = ctx.mons[0]
	}
	if dirty {
		ctx.log.Info("monitors", "count", len(ctx.mons))
		ctx.selmon = ctx.rectToMon(ctx.selmon.W)
		ctx.focus(nil)
		ctx.Arrange(nil)
	}
	return dirty
}

// rectToMon returns the monitor whose work area overlaps r the most,
// defaulting to the selected one.
func (ctx *Context) rectToMon(r Rect) *Monitor {
	best, area := ctx.selmon, 0
	for _, m := range ctx.mons {
		if a := r.intersect(m.W); a > area {
			best, area = m, a
		}
	}
	return best
}

// MonitorAt returns the monitor under the point x, y.
func (ctx *Context) MonitorAt(x, y int) *Monitor {
	return ctx.rectToMon(Rect{x, y, 1, 1})
}

// dirToMon returns the monitor dir steps after the selected one,
// wrapping around.
func (ctx *Context) dirToMon(dir int) *Monitor {
	n := len(ctx.mons)
	i := indexOfMon(ctx.mons, ctx.selmon)
	return ctx.mons[((i+dir)%n+n)%n]
}

func indexOfMon(mons []*Monitor, m *Monitor) int {
	for i, k := range mons {
		if k == m {
			return i
		}
	}
	return 0
}

// sendMon moves c to monitor m, onto its current view.
func (ctx *Context) sendMon(c *Client, m *Monitor) {
	if c.mon == m {
		return
	}
	ctx.unfocus(c, true)
	if c.mon.sticky == c {
		c.mon.sticky = nil
	}
	ctx.setFullscreen(c, false, false)
	ctx.detach(c)
	ctx.detachStack(c)
	c.mon = m
	c.Tags = m.TagSet()
	ctx.attach(c)
	ctx.attachStack(c)
	ctx.placer.SetDesktop(c.Shown(), m.pertag.curtag)
	ctx.focus(nil)
	ctx.Arrange(nil)
}

// FocusMon selects the monitor dir steps away.
func (ctx *Context) FocusMon(dir int) {
	if len(ctx.mons) < 2 {
		return
	}
	m := ctx.dirToMon(dir)
	if m == ctx.selmon {
		return
	}
	ctx.unfocus(ctx.selmon.sel, false)
	ctx.selmon = m
	ctx.focus(nil)
}

// TagMon sends the selected client to the monitor dir steps away.
// Scratchpads stay where they are.
func (ctx *Context) TagMon(dir int) {
	c := ctx.selmon.sel
	if c == nil || len(ctx.mons) < 2 || c.ScratchKey != 0 {
		return
	}
	ctx.sendMon(c, ctx.dirToMon(dir))
}

// SelectMonitor makes m the selected monitor, as when the pointer
// enters it.
func (ctx *Context) SelectMonitor(m *Monitor) {
	if m == nil || m == ctx.selmon {
		return
	}
	ctx.unfocus(ctx.selmon.sel, true)
	ctx.selmon = m
	ctx.focus(nil)
}
