package core

import "strings"

// WindowInfo is what the windowing side knows about a window that asks
// to be mapped.
type WindowInfo struct {
	Window   Window
	Title    string
	Class    string
	Instance string
	PID      int

	Geometry    Rect
	BorderWidth int

	// TransientFor is the WM_TRANSIENT_FOR target; Transient is set
	// whenever the property exists, even for unmanaged targets.
	TransientFor Window
	Transient    bool
	// Special is set for splash, toolbar, dialog and utility windows.
	Special    bool
	Above      bool
	Fullscreen bool

	Hints      SizeHints
	Urgent     bool
	NeverFocus bool
}

const brokenName = "broken"

func (c *Client) clampToWork() {
	w := c.mon.W
	if c.X+c.width() > w.X+w.W {
		c.X = w.X + w.W - c.width()
	}
	if c.Y+c.height() > w.Y+w.H {
		c.Y = w.Y + w.H - c.height()
	}
	c.X = max(c.X, w.X)
	c.Y = max(c.Y, w.Y)
}

func (ctx *Context) applyRules(c *Client, info WindowInfo) {
	c.Floating = false
	c.Tags = 0
	c.IgnoreMoveRequest = false
	c.GrabOnUrgent = true
	c.ScratchKey = 0
	c.FSTag = -1
	c.cmeSetFS = false
	c.NoSwallow = false
	c.IsTerminal = false

	class, instance := info.Class, info.Instance
	if class == "" {
		class = brokenName
	}
	if instance == "" {
		instance = brokenName
	}
	for _, r := range ctx.settings.Rules {
		if !strings.Contains(c.Title, r.Title) ||
			!strings.Contains(class, r.Class) ||
			!strings.Contains(instance, r.Instance) {
			continue
		}
		c.Floating = r.Floating
		c.Tags |= r.Tags
		c.ScratchKey = r.ScratchKey
		c.NoSwallow = r.NoSwallow
		c.IsTerminal = r.IsTerminal
		c.IgnoreMoveRequest = r.IgnoreMoveRequest
		c.GrabOnUrgent = r.GrabOnUrgent
		for _, m := range ctx.mons {
			if m.Num == r.Monitor {
				c.mon = m
			}
		}
	}
	c.AlwaysOnTop = info.Special
	if c.Tags&ctx.tagMask != 0 {
		c.Tags &= ctx.tagMask
	} else {
		c.Tags = c.mon.TagSet()
	}
}

// setClientGeo picks the initial geometry: scratchpads are centred,
// floating clients too, and under the floating layout the first four
// clients go to the corners of the selected monitor.
func (ctx *Context) setClientGeo(c *Client, info WindowInfo) {
	m := ctx.selmon
	c.BW = ctx.settings.BorderPx
	if c.ScratchKey != 0 {
		ctx.scratchGeometry(c)
		c.Cfact = 1.0
		return
	}
	c.W, c.H = info.Geometry.W, info.Geometry.H
	c.oldBW = info.BorderWidth
	center := func() {
		c.X = m.M.X + (m.M.W/2 - c.width()/2)
		c.Y = m.M.Y + (m.M.H/2 - c.height()/2)
	}
	switch {
	case !c.mon.Layout().Arranges():
		switch len(m.tiled()) {
		case 0:
			c.X, c.Y = m.M.X, m.M.Y
		case 1:
			c.X, c.Y = m.M.X+m.M.W-c.W, m.M.Y
		case 2:
			c.X, c.Y = m.M.X, m.M.Y+m.M.H-c.H
		case 3:
			c.X, c.Y = m.M.X+m.M.W-c.W, m.M.Y+m.M.H-c.H
		default:
			center()
		}
	case c.Floating:
		center()
	default:
		c.X, c.Y = info.Geometry.X, info.Geometry.Y
	}
	c.Cfact = 1.0
	c.clampToWork()
	c.sf = c.Geometry()
}

// Manage takes over a newly mapped window and returns its client. A
// window that is already managed is returned as is.
func (ctx *Context) Manage(info WindowInfo) *Client {
	if c := ctx.WindowToClient(info.Window); c != nil {
		return c
	}
	ctx.nextID++
	c := &Client{
		ID:           ctx.nextID,
		Window:       info.Window,
		Title:        info.Title,
		Class:        info.Class,
		Instance:     info.Instance,
		PID:          info.PID,
		FSTag:        -1,
		Cfact:        1.0,
		GrabOnUrgent: true,
	}
	if c.Title == "" {
		c.Title = brokenName
	}
	var term *Client
	if t := ctx.WindowToClient(info.TransientFor); info.TransientFor != 0 && t != nil {
		c.mon = t.mon
		c.Tags = t.Tags
		c.AlwaysOnTop = true
	} else {
		c.mon = ctx.selmon
		ctx.applyRules(c, info)
		term = ctx.termForWin(c)
	}
	ctx.clients[c.ID] = c
	ctx.setClientGeo(c, info)

	p := ctx.placer
	p.SetBorderWidth(c.Window, c.BW)
	p.SetBorder(c.Window, SchemeNorm)
	p.NotifyConfigure(c.Window, c.Geometry(), c.BW)
	if info.Above || info.Special {
		c.AlwaysOnTop = true
	}
	c.Hints = info.Hints
	c.Urgent = info.Urgent
	c.NeverFocus = info.NeverFocus
	p.GrabButtons(c.Window, false)
	if !c.Floating {
		c.Floating = info.Transient || c.fixed()
		c.oldFloating = c.Floating
	}
	ctx.attach(c)
	ctx.attachStack(c)
	ctx.updateClientList()
	p.MoveResize(c.Window, Rect{c.X + 2*ctx.screen.W, c.Y, c.W, c.H})
	p.SetState(c.Window, NormalState)
	if c.mon == ctx.selmon {
		ctx.unfocusMon(ctx.selmon)
	}
	pt := c.mon.pertag
	if fs := pt.fullscreens[pt.curtag]; fs != nil && !c.AlwaysOnTop {
		ctx.focus(fs)
	}
	if c.ScratchKey != 0 {
		ctx.focus(c)
	}
	ctx.Arrange(c.mon)
	p.Map(c.Window)
	if term != nil {
		ctx.swallow(term, c)
		if term.swallowing == c {
			c = term
		}
	}
	ctx.focus(nil)
	p.SetDesktop(c.Window, pt.curtag)
	if info.Fullscreen && c.swallowing == nil && indexOf(c.mon.clients, c) >= 0 {
		ctx.setFullscreen(c, true, true)
	}
	ctx.log.Debug("manage", "id", c.ID, "window", c.Window, "class", c.Class, "tags", c.Tags)
	return c
}

// unmanage forgets c. destroyed tells whether its window still exists.
func (ctx *Context) unmanage(c *Client, destroyed bool) {
	m := c.mon
	if c.swallowing != nil {
		ctx.unswallow(c)
		return
	}
	ctx.log.Debug("unmanage", "id", c.ID, "window", c.Window, "destroyed", destroyed)
	ctx.detach(c)
	ctx.detachStack(c)
	if !destroyed {
		ctx.placer.SetBorderWidth(c.Window, c.oldBW)
		ctx.placer.SetState(c.Window, WithdrawnState)
	}
	if c.Fullscreen() {
		pt := m.pertag
		if pt.fullscreens[c.FSTag] == c {
			pt.fullscreens[c.FSTag] = nil
		}
		c.FSTag = -1
	}
	if m.sticky == c {
		m.sticky = nil
	}
	delete(ctx.clients, c.ID)
	c.mon = nil

	vis := false
	for _, k := range m.stack {
		if ctx.visible(k) {
			vis = true
			break
		}
	}
	if m.pertag.curtag == 0 && !vis && m.pertag.prevtag > 0 {
		sel := ctx.selmon
		ctx.selmon = m
		ctx.View(1 << (m.pertag.prevtag - 1))
		ctx.selmon = sel
	}
	ctx.focus(nil)
	ctx.updateClientList()
	ctx.Arrange(m)
}

// Unmanage forgets the client whose slot shows w.
func (ctx *Context) Unmanage(w Window) {
	if c := ctx.WindowToClient(w); c != nil {
		ctx.unmanage(c, false)
	}
}

// WindowDestroyed handles a window that no longer exists.
func (ctx *Context) WindowDestroyed(w Window) {
	if t := ctx.swallowingClient(w); t != nil {
		ctx.terminalGone(t)
		return
	}
	if c := ctx.WindowToClient(w); c != nil {
		ctx.unmanage(c, true)
	}
}

// WindowUnmapped handles an unmap. A synthetic unmap is the client
// withdrawing itself.
func (ctx *Context) WindowUnmapped(w Window, synthetic bool) {
	c := ctx.WindowToClient(w)
	if c == nil {
		return
	}
	if synthetic {
		ctx.placer.SetState(w, WithdrawnState)
		return
	}
	ctx.unmanage(c, false)
}

// ConfigureRequest is a client's wish to change its geometry. Has*
// mark the fields that were set.
type ConfigureRequest struct {
	Window     Window
	X, Y, W, H int
	BW         int
	HasX, HasY bool
	HasW, HasH bool
	HasBW      bool
}

// HandleConfigureRequest applies req to a managed client and reports
// whether the window was managed. Tiled clients only get their current
// geometry confirmed.
func (ctx *Context) HandleConfigureRequest(req ConfigureRequest) bool {
	c := ctx.WindowToClient(req.Window)
	if c == nil {
		return false
	}
	m := c.mon
	switch {
	case req.HasBW:
		c.BW = req.BW
	case (c.Floating && !c.Fullscreen() && c.swallowing == nil) || !ctx.selmon.Layout().Arranges():
		if !c.IgnoreMoveRequest {
			if req.HasX {
				c.X = m.M.X + req.X
			}
			if req.HasY {
				c.Y = m.M.Y + req.Y
			}
		}
		if req.HasW {
			c.W = req.W
		}
		if req.HasH {
			c.H = req.H
		}
		if c.X+c.W > m.M.X+m.M.W && c.Floating {
			c.X = m.M.X + (m.M.W/2 - c.width()/2)
		}
		if c.Y+c.H > m.M.Y+m.M.H && c.Floating {
			c.Y = m.M.Y + (m.M.H/2 - c.height()/2)
		}
		if (req.HasX || req.HasY) && !(req.HasW || req.HasH) {
			ctx.placer.NotifyConfigure(c.Shown(), c.Geometry(), c.BW)
		}
		if ctx.visible(c) {
			ctx.placer.MoveResize(c.Shown(), c.Geometry())
		} else {
			c.needResize = true
		}
	default:
		ctx.placer.NotifyConfigure(c.Shown(), c.Geometry(), c.BW)
	}
	return true
}

// UpdateTitle records a new window title.
func (ctx *Context) UpdateTitle(w Window, title string) {
	if title == "" {
		title = brokenName
	}
	if c := ctx.WindowToClient(w); c != nil {
		if c.swallowing != nil {
			c.swallowing.Title = title
		} else {
			c.Title = title
		}
	}
}

// UpdateSizeHints records new WM_NORMAL_HINTS.
func (ctx *Context) UpdateSizeHints(w Window, h SizeHints) {
	if c := ctx.WindowToClient(w); c != nil {
		c.Hints = h
	}
}

// UpdateWMHints records urgency and input hints. The selected client
// never stays urgent; others with GrabOnUrgent pull the view to them.
func (ctx *Context) UpdateWMHints(w Window, urgent, neverFocus bool) {
	c := ctx.WindowToClient(w)
	if c == nil {
		return
	}
	if c == ctx.selmon.sel && urgent {
		ctx.placer.SetUrgent(c.Shown(), false)
	} else {
		c.Urgent = urgent
		if urgent && c.GrabOnUrgent {
			ctx.grabFocus(c)
		}
	}
	c.NeverFocus = neverFocus
}

// UpdateTransient floats a tiled client that became transient for a
// managed one.
func (ctx *Context) UpdateTransient(w, transientFor Window) {
	c := ctx.WindowToClient(w)
	if c == nil || c.Floating {
		return
	}
	if ctx.WindowToClient(transientFor) != nil {
		c.Floating = true
		ctx.Arrange(c.mon)
	}
}

// UpdateWindowType applies a changed _NET_WM_WINDOW_TYPE or state.
func (ctx *Context) UpdateWindowType(w Window, special, fullscreen bool) {
	c := ctx.WindowToClient(w)
	if c == nil {
		return
	}
	if special {
		c.AlwaysOnTop = true
	}
	if fullscreen {
		ctx.setFullscreen(c, true, true)
	}
}

// Activate handles a _NET_ACTIVE_WINDOW request: the client turns
// urgent and, if its rules allow, grabs the focus.
func (ctx *Context) Activate(w Window) {
	c := ctx.WindowToClient(w)
	if c == nil {
		return
	}
	ctx.setUrgent(c, true)
	if c.GrabOnUrgent {
		ctx.grabFocus(c)
	}
}

// grabFocus views the lowest tag of c and focuses it, pushing aside a
// fullscreen client in the way.
func (ctx *Context) grabFocus(c *Client) {
	if c.Tags&ctx.tagMask == 0 {
		return
	}
	m := c.mon
	if m.sticky != c {
		ctx.selmon = m
		ctx.View(1 << lowestTag(c.Tags))
	}
	if fs := m.pertag.fullscreens[m.pertag.curtag]; fs != nil && fs != c {
		ctx.setFullscreen(fs, false, false)
	}
	lt := m.Layout()
	if c.Floating || !lt.Arranges() || lt.Kind == Deck || lt.Kind == Monocle {
		ctx.detachStack(c)
		ctx.attachStack(c)
		ctx.restack(m)
	}
	ctx.focus(c)
}

// KillClient closes the selected client. Scratchpads are only closed
// while they swallow something.
func (ctx *Context) KillClient() {
	c := ctx.selmon.sel
	if c == nil || (c.ScratchKey != 0 && c.swallowing == nil) {
		return
	}
	ctx.CloseClient(c)
}

// CloseClient asks c to close. Unlike killclient it also closes
// scratchpads.
func (ctx *Context) CloseClient(c *Client) error {
	if c == nil || c.mon == nil {
		return ErrNoSuchClient
	}
	ctx.placer.Close(c.Shown())
	return nil
}

// Quit stops the manager when called twice within the quit window.
func (ctx *Context) Quit() {
	now := ctx.now()
	if !ctx.lastQuit.IsZero() && now.Sub(ctx.lastQuit) <= ctx.settings.QuitWindow {
		ctx.running = false
		return
	}
	ctx.lastQuit = now
	ctx.log.Info("quit requested, repeat to confirm")
}
