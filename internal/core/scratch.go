package core

// setHidden withdraws c by clearing its tags, or shows it on the
// current view of the selected monitor.
func (ctx *Context) setHidden(c *Client, hidden bool) {
	if hidden {
		c.Tags = 0
		ctx.placer.SetState(c.Shown(), WithdrawnState)
		ctx.focus(nil)
		return
	}
	c.Tags = ctx.selmon.TagSet()
	ctx.placer.SetDesktop(c.Shown(), c.mon.pertag.curtag)
	ctx.placer.SetState(c.Shown(), NormalState)
	ctx.focus(c)
}

// scratchGeometry centres a scratchpad on the selected monitor.
func (ctx *Context) scratchGeometry(c *Client) {
	m := ctx.selmon
	s := ctx.settings
	w, h := s.ScratchW, s.ScratchH
	if w <= 0 {
		w = m.M.W / 2
	}
	if h <= 0 {
		h = m.M.H / 2
	}
	c.BW = s.BorderPx
	c.W, c.H = w, h
	c.X = m.M.X + (m.M.W/2 - c.width()/2)
	c.Y = m.M.Y + (m.M.H/2 - c.height()/2)
	c.clampToWork()
	c.sf = c.Geometry()
	c.needResize = true
}

// ToggleScratch shows, hides or launches the scratchpad bound to key.
// Showing one scratchpad hides every other visible one on the selected
// monitor.
func (ctx *Context) ToggleScratch(key byte) error {
	m := ctx.selmon
	var c *Client
	for _, mon := range ctx.mons {
		for _, k := range mon.clients {
			if k.ScratchKey == key {
				c = k
				break
			}
		}
		if c != nil {
			break
		}
	}
	if c == nil {
		argv, ok := ctx.settings.Scratchpads[key]
		if !ok {
			return ErrBadArgument
		}
		ctx.hideScratchpads(nil)
		ctx.Arrange(m)
		if ctx.spawner == nil {
			return nil
		}
		return ctx.spawner.Spawn(argv)
	}

	vis := ctx.visible(c)
	ctx.setFullscreen(c, false, false)
	if c.mon == m {
		ctx.setHidden(c, vis)
	} else {
		ctx.sendMon(c, m)
		ctx.focus(c)
		if !vis {
			ctx.setHidden(c, false)
		}
	}
	ctx.hideScratchpads(c)
	ctx.scratchGeometry(c)
	ctx.Arrange(m)
	return nil
}

func (ctx *Context) hideScratchpads(except *Client) {
	for _, k := range ctx.selmon.Clients() {
		if k != except && k.ScratchKey != 0 && ctx.visible(k) {
			ctx.setFullscreen(k, false, false)
			ctx.setHidden(k, true)
		}
	}
}
