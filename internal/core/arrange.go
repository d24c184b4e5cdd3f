package core

// Arrange recomputes visibility, geometry and stacking of m, or of every
// monitor when m is nil.
func (ctx *Context) Arrange(m *Monitor) {
	if m != nil {
		ctx.showHide(m)
		ctx.arrangeMon(m)
		ctx.restack(m)
		return
	}
	for _, m := range ctx.mons {
		ctx.showHide(m)
	}
	for _, m := range ctx.mons {
		ctx.arrangeMon(m)
		ctx.restack(m)
	}
}

// showHide moves visible clients into place, most recent first, and
// parks hidden ones off-screen, least recent first.
func (ctx *Context) showHide(m *Monitor) {
	arranges := m.Layout().Arranges()
	for _, c := range m.stack {
		if !ctx.visible(c) {
			continue
		}
		if c.needResize {
			c.needResize = false
			ctx.placer.MoveResize(c.Shown(), c.Geometry())
		} else {
			ctx.placer.Move(c.Shown(), c.X, c.Y)
		}
		if (!arranges || c.Floating) && !c.Fullscreen() {
			ctx.resize(c, c.Geometry(), false)
		}
	}
	for i := len(m.stack) - 1; i >= 0; i-- {
		c := m.stack[i]
		if !ctx.visible(c) {
			ctx.placer.Move(c.Shown(), -2*c.width(), c.Y)
		}
	}
}

func (ctx *Context) arrangeMon(m *Monitor) {
	lt := m.Layout()
	m.Symbol = lt.Symbol
	if !lt.Arranges() {
		return
	}
	tiled := m.tiled()
	if len(tiled) == 0 {
		if n := m.countVisible(); lt.Kind == Monocle && n > 0 {
			m.Symbol = monocle(Params{Visible: n}, nil).Symbol
		}
		return
	}
	panes := make([]Pane, len(tiled))
	for i, c := range tiled {
		panes[i] = Pane{Cfact: c.Cfact, BW: c.BW, StackRank: indexOf(m.stack, c)}
	}
	res := lt.Kind.Arrange(Params{
		Area:    m.W,
		NMaster: m.NMaster(),
		MFact:   m.MFact(),
		MinSize: ctx.settings.BarHeight,
		Visible: m.countVisible(),
	}, panes)
	if res.Symbol != "" {
		m.Symbol = res.Symbol
	}
	for i, c := range tiled {
		c.Cfact = res.Cfacts[i]
		if res.Floated[i] {
			c.Floating = true
			ctx.placer.Restack(c.Shown(), 0, StackAbove)
		}
		ctx.resize(c, res.Rects[i], false)
	}
}

// resize applies size hints and, if anything changed, the geometry.
func (ctx *Context) resize(c *Client, r Rect, interact bool) {
	if r, ok := ctx.applySizeHints(c, r, interact); ok {
		ctx.resizeClient(c, r)
	}
}

// applySizeHints clamps r to the screen (interactive) or to the
// client's monitor and honours the ICCCM size hints. It reports whether
// the result differs from the current geometry.
func (ctx *Context) applySizeHints(c *Client, r Rect, interact bool) (Rect, bool) {
	m := c.mon
	bh := ctx.settings.BarHeight
	r.W = max(1, r.W)
	r.H = max(1, r.H)
	if interact {
		sw, sh := ctx.screen.W, ctx.screen.H
		if r.X > sw {
			r.X = sw - c.width()
		}
		if r.Y > sh {
			r.Y = sh - c.height()
		}
		if r.X+r.W+2*c.BW < 0 {
			r.X = 0
		}
		if r.Y+r.H+2*c.BW < 0 {
			r.Y = 0
		}
	} else {
		if r.X >= m.W.X+m.W.W {
			r.X = m.W.X + m.W.W - c.width()
		}
		if r.Y >= m.W.Y+m.W.H {
			r.Y = m.W.Y + m.W.H - c.height()
		}
		if r.X+r.W+2*c.BW <= m.W.X {
			r.X = m.W.X
		}
		if r.Y+r.H+2*c.BW <= m.W.Y {
			r.Y = m.W.Y
		}
	}
	r.H = max(r.H, bh)
	r.W = max(r.W, bh)
	if ctx.settings.ResizeHints || c.Floating || !m.Layout().Arranges() {
		r.W, r.H = c.Hints.apply(r.W, r.H)
	}
	return r, r != c.Geometry()
}

// apply fits w x h to the hints (ICCCM 4.1.2.3).
func (h SizeHints) apply(w, ht int) (int, int) {
	baseIsMin := h.BaseW == h.MinW && h.BaseH == h.MinH
	if !baseIsMin {
		w -= h.BaseW
		ht -= h.BaseH
	}
	if h.MinA > 0 && h.MaxA > 0 && w > 0 && ht > 0 {
		if h.MaxA < float64(w)/float64(ht) {
			w = int(float64(ht)*h.MaxA + 0.5)
		} else if h.MinA < float64(ht)/float64(w) {
			ht = int(float64(w)*h.MinA + 0.5)
		}
	}
	if baseIsMin {
		w -= h.BaseW
		ht -= h.BaseH
	}
	if h.IncW > 0 {
		w -= w % h.IncW
	}
	if h.IncH > 0 {
		ht -= ht % h.IncH
	}
	w = max(w+h.BaseW, h.MinW)
	ht = max(ht+h.BaseH, h.MinH)
	if h.MaxW > 0 {
		w = min(w, h.MaxW)
	}
	if h.MaxH > 0 {
		ht = min(ht, h.MaxH)
	}
	return w, ht
}

// resizeClient commits r and applies the gap rule: floating clients and
// the floating layout get no gap, a lone tiled client or the monocle
// layout lose border and gap, everything else is inset by the gap.
func (ctx *Context) resizeClient(c *Client, r Rect) {
	m := c.mon
	lt := m.Layout()
	bw := c.BW
	switch {
	case c.Floating || !lt.Arranges():
	case lt.Kind == Monocle || len(m.tiled()) == 1:
		bw = 0
		r.W += 2 * c.BW
		r.H += 2 * c.BW
	default:
		g := ctx.settings.GapPx
		r.X += g
		r.Y += g
		r.W -= 2 * g
		r.H -= 2 * g
	}
	r.W = max(1, r.W)
	r.H = max(1, r.H)
	c.setGeometry(r)
	if (c.Floating && !c.Fullscreen()) || !lt.Arranges() {
		c.sf = r
	}
	ctx.placer.Configure(c.Shown(), r, bw)
}
