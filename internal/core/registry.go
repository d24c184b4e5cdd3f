package core

import "slices"

func indexOf(list []*Client, c *Client) int {
	return slices.Index(list, c)
}

func (ctx *Context) mustDetached(c *Client) {
	if indexOf(c.mon.clients, c) >= 0 {
		panic("core: client attached twice")
	}
}

// attach inserts c into its monitor's arrangement list according to the
// current tag's attach direction.
func (ctx *Context) attach(c *Client) {
	switch c.mon.AttachDir() {
	case AttachBelow:
		ctx.attachBelow(c)
	case AttachBottom:
		ctx.attachBottom(c)
	case AttachAbove:
		ctx.attachAbove(c)
	default:
		ctx.attachTop(c)
	}
}

func (ctx *Context) attachTop(c *Client) {
	ctx.mustDetached(c)
	m := c.mon
	m.clients = slices.Insert(m.clients, 0, c)
}

func (ctx *Context) attachBottom(c *Client) {
	ctx.mustDetached(c)
	m := c.mon
	m.clients = append(m.clients, c)
}

// attachBelow falls back to the bottom when there is no usable
// selection: none, c itself, or a floating client that is not
// fullscreen.
func (ctx *Context) attachBelow(c *Client) {
	m := c.mon
	sel := m.sel
	i := indexOf(m.clients, sel)
	if sel == nil || sel == c || (sel.Floating && !sel.Fullscreen()) || i < 0 {
		ctx.attachBottom(c)
		return
	}
	ctx.mustDetached(c)
	m.clients = slices.Insert(m.clients, i+1, c)
}

func (ctx *Context) attachAbove(c *Client) {
	m := c.mon
	sel := m.sel
	i := indexOf(m.clients, sel)
	if sel == nil || i <= 0 || (sel.Floating && !sel.Fullscreen()) {
		ctx.attachTop(c)
		return
	}
	ctx.mustDetached(c)
	m.clients = slices.Insert(m.clients, i, c)
}

func (ctx *Context) detach(c *Client) {
	m := c.mon
	if i := indexOf(m.clients, c); i >= 0 {
		m.clients = slices.Delete(m.clients, i, i+1)
	}
}

func (ctx *Context) attachStack(c *Client) {
	m := c.mon
	if indexOf(m.stack, c) >= 0 {
		panic("core: client stacked twice")
	}
	m.stack = slices.Insert(m.stack, 0, c)
}

// detachStack removes c from the focus stack. If c was selected, the
// most recent visible client takes over.
func (ctx *Context) detachStack(c *Client) {
	m := c.mon
	if i := indexOf(m.stack, c); i >= 0 {
		m.stack = slices.Delete(m.stack, i, i+1)
	}
	if c == m.sel {
		m.sel = nil
		for _, t := range m.stack {
			if ctx.visible(t) {
				m.sel = t
				break
			}
		}
	}
}

// CycleAttachDir rotates the attach direction of the current tag.
func (ctx *Context) CycleAttachDir(delta int) {
	m := ctx.selmon
	pt := m.pertag
	d := (int(pt.attachDirs[pt.curtag]) + delta) % int(numAttachDirs)
	if d < 0 {
		d += int(numAttachDirs)
	}
	pt.attachDirs[pt.curtag] = AttachDir(d)
}
