package core

// BeginDrag prepares c for a pointer move or resize. Fullscreen clients
// cannot be dragged.
func (ctx *Context) BeginDrag(c *Client) bool {
	if c == nil || c.mon == nil || c.Fullscreen() {
		return false
	}
	ctx.focus(c)
	ctx.restack(ctx.selmon)
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DragMove moves c so its top-left corner lands at x, y. Edges within
// the snap distance of the work area stick to it; a tiled client pulled
// further than that starts floating.
func (ctx *Context) DragMove(c *Client, x, y int) {
	m := ctx.selmon
	snap := ctx.settings.Snap
	wa := m.W
	if abs(wa.X-x) < snap {
		x = wa.X
	} else if abs(wa.X+wa.W-(x+c.width())) < snap {
		x = wa.X + wa.W - c.width()
	}
	if abs(wa.Y-y) < snap {
		y = wa.Y
	} else if abs(wa.Y+wa.H-(y+c.height())) < snap {
		y = wa.Y + wa.H - c.height()
	}
	lt := m.Layout()
	if !c.Floating && lt.Arranges() && (abs(x-c.X) > snap || abs(y-c.Y) > snap) {
		ctx.ToggleFloating()
	}
	if !lt.Arranges() || c.Floating {
		ctx.resize(c, Rect{x, y, c.W, c.H}, true)
	}
}

// DragResize sizes c so its bottom-right corner follows the pointer at
// x, y.
func (ctx *Context) DragResize(c *Client, x, y int) {
	m := ctx.selmon
	w := max(x-c.X-2*c.BW+1, 1)
	h := max(y-c.Y-2*c.BW+1, 1)
	snap := ctx.settings.Snap
	lt := m.Layout()
	inside := c.mon.W.X+w >= m.W.X && c.mon.W.X+w <= m.W.X+m.W.W &&
		c.mon.W.Y+h >= m.W.Y && c.mon.W.Y+h <= m.W.Y+m.W.H
	if inside && !c.Floating && lt.Arranges() && (abs(w-c.W) > snap || abs(h-c.H) > snap) {
		ctx.ToggleFloating()
	}
	if !lt.Arranges() || c.Floating {
		ctx.resize(c, Rect{c.X, c.Y, w, h}, true)
	}
}

// EndDrag finishes a drag. A client dropped on another monitor moves
// there and that monitor is selected.
func (ctx *Context) EndDrag(c *Client) {
	if c == nil || c.mon == nil {
		return
	}
	if m := ctx.rectToMon(c.Geometry()); m != ctx.selmon {
		ctx.sendMon(c, m)
		ctx.selmon = m
		ctx.focus(nil)
	}
}

// MoveResize places a floating client at r, as an API caller asks.
// Tiled clients are floated first.
func (ctx *Context) MoveResize(c *Client, r Rect) error {
	if c == nil || c.mon == nil {
		return ErrNoSuchClient
	}
	if r.W <= 0 || r.H <= 0 || c.Fullscreen() {
		return ErrBadArgument
	}
	if !c.Floating && c.mon.Layout().Arranges() {
		c.Floating = true
	}
	ctx.resize(c, r, true)
	ctx.Arrange(c.mon)
	return nil
}
