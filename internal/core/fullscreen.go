package core

// setFullscreenOnTag promotes c into, or demotes it from, the fullscreen
// slot of pertag index tag. Promotion demotes the previous holder first.
// When focus is set the focus follows the change.
func (ctx *Context) setFullscreenOnTag(c *Client, on bool, tag int, focus bool) {
	m := c.mon
	pt := m.pertag
	switch {
	case on && !c.Fullscreen():
		if prev := pt.fullscreens[tag]; prev != nil {
			ctx.setFullscreen(prev, false, focus)
		}
		ctx.placer.SetFullscreen(c.Shown(), true)
		pt.fullscreens[tag] = c
		c.oldFloating = c.Floating
		c.oldBW = c.BW
		c.fsRestore = c.Geometry()
		c.BW = 0
		c.Floating = true
		c.FSTag = tag
		ctx.resizeClient(c, m.M)
		ctx.placer.Restack(c.Shown(), 0, StackAbove)
		if focus {
			ctx.focus(c)
		}
		ctx.Arrange(m)
	case !on && c.Fullscreen():
		ctx.placer.SetFullscreen(c.Shown(), false)
		if pt.fullscreens[c.FSTag] == c {
			pt.fullscreens[c.FSTag] = nil
		}
		c.Floating = c.oldFloating
		c.BW = c.oldBW
		c.FSTag = -1
		ctx.resizeClient(c, c.fsRestore)
		if focus {
			ctx.focus(nil)
		}
		ctx.Arrange(m)
	}
}

// setFullscreen promotes c on its monitor's current tag, or demotes it
// from whichever slot holds it. Nothing can be promoted in the all-tags
// view.
func (ctx *Context) setFullscreen(c *Client, on bool, focus bool) {
	if c == nil || c.mon == nil {
		return
	}
	if !on {
		if c.Fullscreen() {
			ctx.setFullscreenOnTag(c, false, c.FSTag, focus)
		}
		return
	}
	tag := c.mon.pertag.curtag
	if tag == 0 {
		return
	}
	ctx.setFullscreenOnTag(c, true, tag, focus)
}

// SetFullscreen is the public form of setFullscreen with focus
// following.
func (ctx *Context) SetFullscreen(c *Client, on bool) {
	ctx.setFullscreen(c, on, true)
}

// ToggleFullscreen flips fullscreen on the selected client.
func (ctx *Context) ToggleFullscreen() {
	if c := ctx.selmon.sel; c != nil {
		ctx.setFullscreen(c, !c.Fullscreen(), true)
	}
}

// FullscreenRequest handles an EWMH _NET_WM_STATE request for the
// fullscreen state. A client that asks to be fullscreen while it
// already is gets its next remove request swallowed, since some clients
// send add/remove pairs around their own resizes.
func (ctx *Context) FullscreenRequest(w Window, action int) {
	c := ctx.WindowToClient(w)
	if c == nil {
		return
	}
	switch action {
	case 1: // add
		if c.Fullscreen() {
			c.cmeSetFS = true
		} else {
			ctx.setFullscreen(c, true, true)
		}
	case 0: // remove
		if !c.Fullscreen() {
			return
		}
		if c.cmeSetFS {
			c.cmeSetFS = false
		} else {
			ctx.setFullscreen(c, false, true)
		}
	case 2: // toggle
		ctx.setFullscreen(c, !c.Fullscreen(), true)
	}
}

// ToggleSticky makes the selected client follow every view of its
// monitor, or releases the current sticky client. Scratchpads cannot be
// sticky.
func (ctx *Context) ToggleSticky() {
	m := ctx.selmon
	c := m.sel
	if c == nil || c.ScratchKey != 0 {
		return
	}
	ctx.setFullscreen(c, false, false)
	if m.sticky != nil {
		m.sticky = nil
	} else {
		m.sticky = c
	}
	ctx.focus(nil)
	ctx.Arrange(m)
}

// ToggleFloating flips the selected client between tiled and floating.
// Fixed-size clients stay floating; floating restores the last float
// geometry.
func (ctx *Context) ToggleFloating() {
	c := ctx.selmon.sel
	if c == nil || c.ScratchKey != 0 || c.Fullscreen() {
		return
	}
	c.Floating = !c.Floating || c.fixed()
	if c.Floating {
		ctx.resize(c, c.sf, false)
	}
	ctx.Arrange(ctx.selmon)
}

// Center moves the selected floating client to the middle of its
// monitor.
func (ctx *Context) Center() {
	m := ctx.selmon
	c := m.sel
	if c == nil || (!c.Floating && m.Layout().Arranges()) {
		return
	}
	c.X = m.M.X + (m.M.W/2 - c.width()/2)
	c.Y = m.M.Y + (m.M.H/2 - c.height()/2)
	ctx.Arrange(m)
}
