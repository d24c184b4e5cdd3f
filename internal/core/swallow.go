package core

import "strings"

// maxProcDepth bounds ancestry walks so a bogus process table cannot
// loop forever.
const maxProcDepth = 64

// procDepth returns how many generations separate the descendant from
// the ancestor, or 0 when ancestor is not an ancestor.
func (ctx *Context) procDepth(ancestor, descendant int) int {
	d := 0
	for descendant != ancestor && descendant != 0 {
		if d == maxProcDepth {
			return 0
		}
		descendant = ctx.procs.Parent(descendant)
		d++
	}
	if descendant == 0 {
		return 0
	}
	return d
}

func (ctx *Context) parentIsEditor(pid int) bool {
	if ctx.settings.Editor == "" {
		return false
	}
	ppid := ctx.procs.Parent(pid)
	if ppid == 0 {
		return false
	}
	comm := ctx.procs.Command(ppid)
	return comm != "" && strings.Contains(comm, ctx.settings.Editor)
}

// termForWin finds the terminal that c descends from, preferring the
// closest ancestor. Terminals, editors' children and clients without a
// pid are never swallowed.
func (ctx *Context) termForWin(c *Client) *Client {
	if ctx.procs == nil || c.PID == 0 || c.IsTerminal || ctx.parentIsEditor(c.PID) {
		return nil
	}
	var term *Client
	best := 0
	for _, m := range ctx.mons {
		for _, t := range m.clients {
			if !t.IsTerminal || t.swallowing != nil || t.PID == 0 {
				continue
			}
			if d := ctx.procDepth(t.PID, c.PID); d > 0 && (term == nil || d < best) {
				term, best = t, d
			}
		}
	}
	return term
}

// swallow hides terminal t and shows c in its slot. The slot keeps its
// position, tags and geometry; c is parked in t.swallowing.
func (ctx *Context) swallow(t, c *Client) {
	if c.NoSwallow || !ctx.swallowOn {
		return
	}
	ctx.log.Debug("swallow", "terminal", t.Window, "child", c.Window)
	ctx.placer.Map(c.Window)
	ctx.detach(c)
	ctx.detachStack(c)
	delete(ctx.clients, c.ID)
	ctx.placer.SetState(t.Window, WithdrawnState)
	ctx.placer.Unmap(t.Window)
	t.swallowing = c
	c.mon = t.mon
	c.Tags = t.Tags
	if t.ScratchKey != 0 {
		ctx.placer.Restack(c.Window, 0, StackAbove)
	}
	ctx.placer.SetDesktop(c.Window, lowestTag(t.Tags)+1)
	ctx.placer.Configure(c.Window, t.Geometry(), t.BW)
	ctx.Arrange(t.mon)
	ctx.updateClientList()
}

// unswallow ends the swallow of t after the child went away and shows
// the terminal again where it was.
func (ctx *Context) unswallow(t *Client) {
	child := t.swallowing
	ctx.log.Debug("unswallow", "terminal", t.Window, "child", child.Window)
	ctx.setFullscreen(t, false, false)
	t.swallowing = nil
	child.mon = nil
	ctx.placer.Map(t.Window)
	ctx.placer.Configure(t.Window, t.Geometry(), t.BW)
	ctx.placer.SetState(t.Window, NormalState)
	ctx.focus(nil)
	ctx.Arrange(t.mon)
	ctx.updateClientList()
}

// terminalGone hands the slot of a swallowing terminal whose own window
// disappeared over to the child it swallowed.
func (ctx *Context) terminalGone(t *Client) {
	child := t.swallowing
	ctx.log.Debug("terminal gone", "terminal", t.Window, "child", child.Window)
	t.Window = child.Window
	t.Title = child.Title
	t.Class = child.Class
	t.Instance = child.Instance
	t.PID = child.PID
	t.IsTerminal = child.IsTerminal
	t.NoSwallow = child.NoSwallow
	t.Hints = child.Hints
	t.NeverFocus = child.NeverFocus
	t.swallowing = nil
	child.mon = nil
	ctx.Arrange(t.mon)
	ctx.focus(nil)
}

// ToggleSwallow turns swallowing of new clients on or off.
func (ctx *Context) ToggleSwallow() {
	ctx.swallowOn = !ctx.swallowOn
	ctx.log.Info("swallowing", "enabled", ctx.swallowOn)
}
