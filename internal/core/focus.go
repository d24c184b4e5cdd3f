package core

import (
	"math"
	"slices"
)

// focus selects c, or when c is nil or hidden the most recently focused
// visible client of the selected monitor. The sticky client is skipped
// in that search unless it is already selected or fullscreen, and only
// picked as a last resort.
func (ctx *Context) focus(c *Client) {
	m := ctx.selmon
	if c == nil || !ctx.visible(c) {
		c = nil
		for _, k := range m.stack {
			if m.sticky == k && m.sel != k && !k.Fullscreen() {
				continue
			}
			if ctx.visible(k) {
				c = k
				break
			}
		}
	}
	if c == nil && m.sticky != nil {
		c = m.sticky
	}
	if m.sel != nil && m.sel != c {
		ctx.unfocus(m.sel, false)
	}
	if c != nil {
		if c.mon != ctx.selmon {
			ctx.selmon = c.mon
		}
		if c.Urgent {
			ctx.setUrgent(c, false)
		}
		ctx.detachStack(c)
		ctx.attachStack(c)
		ctx.placer.GrabButtons(c.Shown(), true)
		ctx.placer.SetBorder(c.Shown(), SchemeSel)
		ctx.setFocus(c)
	} else {
		ctx.placer.FocusRoot()
	}
	ctx.selmon.sel = c
}

func (ctx *Context) setFocus(c *Client) {
	ctx.placer.Focus(c.Shown(), !c.NeverFocus)
	if c.IgnoreMoveRequest {
		ctx.placer.SetState(c.Shown(), NormalState)
	}
}

func (ctx *Context) unfocus(c *Client, revert bool) {
	if c == nil {
		return
	}
	ctx.placer.GrabButtons(c.Shown(), false)
	ctx.placer.SetBorder(c.Shown(), SchemeNorm)
	if revert {
		ctx.placer.FocusRoot()
	}
}

func (ctx *Context) unfocusMon(m *Monitor) {
	for _, c := range m.stack {
		ctx.unfocus(c, false)
	}
}

func (ctx *Context) setUrgent(c *Client, on bool) {
	c.Urgent = on
	ctx.placer.SetUrgent(c.Shown(), on)
}

// Focus focuses c and restacks its monitor. A nil c picks the most
// recent visible client.
func (ctx *Context) Focus(c *Client) {
	ctx.focus(c)
	ctx.restack(ctx.selmon)
}

// FocusStack focuses the client addressed by spec among the visible
// clients of the selected monitor. Focus never leaves a fullscreen
// client except for a scratchpad.
func (ctx *Context) FocusStack(spec IndexSpec) {
	m := ctx.selmon
	i := ctx.stackPos(spec)
	if m.sel == nil || i < 0 {
		return
	}
	// Past the end means the last visible client.
	var c, lastVis *Client
	for _, k := range m.clients {
		if ctx.visible(k) {
			if i == 0 {
				c = k
				break
			}
			i--
			lastVis = k
		}
	}
	if c == nil {
		c = lastVis
	}
	if c == nil || (m.sel.Fullscreen() && c.ScratchKey == 0) {
		return
	}
	ctx.focus(c)
	ctx.restack(m)
}

// PushStack moves the selected client to the position addressed by
// spec in the arrangement list.
func (ctx *Context) PushStack(spec IndexSpec) {
	m := ctx.selmon
	sel := m.sel
	i := ctx.stackPos(spec)
	if i < 0 || sel == nil {
		return
	}
	if i == 0 {
		ctx.detach(sel)
		ctx.attachTop(sel)
		ctx.Arrange(m)
		return
	}
	var c, lastVis *Client
	for _, k := range m.clients {
		if ctx.visible(k) && k != sel {
			i--
			lastVis = k
		}
		if i == 0 {
			c = k
			break
		}
	}
	if c == nil {
		c = lastVis
	}
	last := m.clients[len(m.clients)-1]
	if c == nil || (c == last && sel == last) {
		return
	}
	ctx.detach(sel)
	m.clients = slices.Insert(m.clients, indexOf(m.clients, c)+1, sel)
	ctx.Arrange(m)
}

// stackPos resolves spec to an index among the visible clients of the
// selected monitor, or -1.
func (ctx *Context) stackPos(spec IndexSpec) int {
	m := ctx.selmon
	if len(m.clients) == 0 {
		return -1
	}
	n := m.countVisible()
	switch spec.Kind {
	case IndexPrevSel:
		for _, l := range m.stack {
			if ctx.visible(l) && l != m.sel {
				return m.visibleIndex(l)
			}
		}
		return -1
	case IndexLeft, IndexRight:
		if m.sel == nil {
			return -1
		}
		i := m.visibleIndex(m.sel)
		if spec.Kind == IndexLeft {
			k := leftStep(m.Layout().Kind, i, n, m.NMaster())
			if i-k >= 0 {
				return i - k
			}
			return i
		}
		k := rightStep(m.Layout().Kind, i, n, m.NMaster())
		if i+k <= n-1 {
			return i + k
		}
		return i
	case IndexRelative:
		if m.sel == nil {
			return -1
		}
		i := m.visibleIndex(m.sel)
		return min(max(i+spec.N, 0), n-1)
	case IndexFromEnd:
		return max(n-spec.N, 0)
	}
	return spec.N
}

// leftStep is how many list positions lie between the client at i and
// its left neighbour on screen.
func leftStep(k LayoutKind, i, n, nmaster int) int {
	switch k {
	case Dwindle:
		return (i+1)%2 + 1
	case Grid:
		return gridSide(n)
	case Tile:
		if nmaster <= 0 || n <= nmaster || i < nmaster {
			return 0
		}
		f := float64(n-nmaster) / float64(nmaster)
		lf := int(math.Ceil(float64(i+1-nmaster)/f)) - 1
		return i - lf
	}
	return 0
}

func rightStep(k LayoutKind, i, n, nmaster int) int {
	switch k {
	case Dwindle:
		if i%2 == 0 {
			return 2
		}
		return 0
	case Grid:
		c := gridSide(n)
		if c+i > n-1 {
			return 1
		}
		return c
	case Tile:
		if nmaster <= 0 || i >= nmaster || n <= nmaster {
			return 0
		}
		f := float64(n-nmaster) / float64(nmaster)
		rf := (nmaster - 1) + int(math.Floor(float64(i)*f)) + 1
		return rf - i
	}
	return 0
}

// gridSide is the list distance between horizontal neighbours in the
// grid layout.
func gridSide(n int) int {
	return int(math.Round(math.Sqrt(float64(n))))
}

// restack emits stacking directives for m. Nothing happens when m has
// no selection, or when nothing floats and the layout cannot overlap
// clients.
func (ctx *Context) restack(m *Monitor) {
	if m.sel == nil {
		return
	}
	lt := m.Layout()
	var tops []*Client
	var scratch, fs *Client
	hasFloat := false
	for _, c := range m.stack {
		if !ctx.visible(c) {
			continue
		}
		if c.AlwaysOnTop && c.Floating {
			tops = append(tops, c)
		}
		if c.ScratchKey != 0 {
			scratch = c
		}
		if c.Fullscreen() {
			fs = c
		}
		if c.Floating || !lt.Arranges() {
			hasFloat = true
		}
	}
	if !hasFloat && lt.Kind != Monocle && lt.Kind != Deck {
		return
	}
	p := ctx.placer
	var sib Window
	below := func(c *Client) {
		if sib == 0 {
			p.Restack(c.Shown(), 0, StackAbove)
		} else {
			p.Restack(c.Shown(), sib, StackBelow)
		}
		sib = c.Shown()
	}
	head := m.stack[0].Shown()
	if len(tops) == 0 {
		for _, c := range m.stack {
			if !ctx.visible(c) {
				continue
			}
			tiledHere := !c.Floating && lt.Arranges()
			underFS := fs != nil && (c.Floating || !lt.Arranges()) && c != fs
			if tiledHere || underFS {
				below(c)
			} else {
				p.Restack(c.Shown(), 0, StackAbove)
			}
		}
		if fs != nil && scratch != nil && fs != scratch {
			p.Restack(scratch.Shown(), fs.Shown(), StackAbove)
		} else if scratch != nil {
			p.Restack(scratch.Shown(), head, StackAbove)
		}
		return
	}
	for _, c := range m.stack {
		if !ctx.visible(c) {
			continue
		}
		if c.Fullscreen() {
			ctx.setFullscreen(c, false, false)
		}
		if !c.AlwaysOnTop && c.ScratchKey == 0 {
			below(c)
		}
	}
	p.Restack(tops[0].Shown(), m.stack[0].Shown(), StackTopIf)
	if scratch != nil && tops[0] != scratch {
		p.Restack(scratch.Shown(), tops[0].Shown(), StackBelow)
	}
	for k := 1; k < len(tops); k++ {
		p.Restack(tops[k].Shown(), tops[k-1].Shown(), StackBelow)
	}
}
