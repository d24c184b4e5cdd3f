package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/intio/tagwm/internal/core"
)

func eventType(ev xgb.Event) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", ev), "xproto.")
}

func (wm *WM) handleEvent(xev xgb.Event) (err error) {
	var w xproto.Window
	switch e := xev.(type) {
	case xproto.KeyPressEvent:
		wm.runKey(e)
		return nil
	case xproto.ButtonPressEvent:
		w = e.Event
		err = wm.handleButtonPressEvent(e)
	case xproto.MotionNotifyEvent:
		return wm.handleMotionNotifyEvent(e)
	case xproto.EnterNotifyEvent:
		return wm.handleEnterNotifyEvent(e)
	case xproto.FocusInEvent:
		return wm.handleFocusInEvent(e)
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingKeyboard {
			wm.refreshKeyboard()
		}
		return nil
	case xproto.DestroyNotifyEvent:
		if e.Event != e.Window {
			return nil
		}
		w = e.Window
		wm.ctx.WindowDestroyed(core.Window(w))
	case xproto.UnmapNotifyEvent:
		if e.Event != e.Window {
			return nil
		}
		w = e.Window
		err = wm.handleUnmapNotifyEvent(e)
	case xproto.ConfigureRequestEvent:
		w = e.Window
		err = wm.handleConfigureRequestEvent(e)
	case xproto.ConfigureNotifyEvent:
		if e.Window != wm.xroot.Root {
			return nil
		}
		err = wm.handleConfigureNotifyEvent(e)
	case xproto.MapRequestEvent:
		w = e.Window
		err = wm.handleMapRequestEvent(e)
	case xproto.PropertyNotifyEvent:
		return wm.handlePropertyNotifyEvent(e)
	case xproto.ClientMessageEvent:
		w = e.Window
		err = wm.handleClientMessageEvent(e)
	default:
		return nil
	}
	wm.hub.Publish(wm.xEvent(xev, w))
	return err
}

// xEvent describes a handled X event for subscribers.
func (wm *WM) xEvent(xev xgb.Event, w xproto.Window) Event {
	ev := Event{Type: eventType(xev), Window: uint32(w)}
	if c := wm.ctx.WindowToClient(core.Window(w)); c != nil {
		v := newClientView(wm.ctx, c)
		ev.Client = &v
	}
	return ev
}

func (wm *WM) handleButtonPressEvent(e xproto.ButtonPressEvent) error {
	c := wm.ctx.WindowToClient(core.Window(e.Event))
	if c == nil {
		m := wm.ctx.MonitorAt(int(e.RootX), int(e.RootY))
		wm.ctx.SelectMonitor(m)
		return nil
	}
	wm.ctx.Focus(c)
	xproto.AllowEvents(wm.xc, xproto.AllowReplayPointer, e.Time)
	wm.runButton(c, e)
	return nil
}

func (wm *WM) handleMotionNotifyEvent(e xproto.MotionNotifyEvent) error {
	if e.Event != wm.xroot.Root {
		return nil
	}
	wm.ctx.SelectMonitor(wm.ctx.MonitorAt(int(e.RootX), int(e.RootY)))
	return nil
}

func (wm *WM) handleEnterNotifyEvent(e xproto.EnterNotifyEvent) error {
	if (e.Mode != xproto.NotifyModeNormal || e.Detail == xproto.NotifyDetailInferior) &&
		e.Event != wm.xroot.Root {
		return nil
	}
	c := wm.ctx.WindowToClient(core.Window(e.Event))
	if c == nil {
		wm.ctx.SelectMonitor(wm.ctx.MonitorAt(int(e.RootX), int(e.RootY)))
		return nil
	}
	if c.Monitor() != wm.ctx.SelMon() {
		wm.ctx.SelectMonitor(c.Monitor())
	} else if c == wm.ctx.SelMon().Sel() {
		return nil
	}
	wm.ctx.Focus(c)
	return nil
}

// handleFocusInEvent takes the focus back from clients that grab it.
func (wm *WM) handleFocusInEvent(e xproto.FocusInEvent) error {
	sel := wm.ctx.SelMon().Sel()
	if sel != nil && xproto.Window(sel.Shown()) != e.Event {
		wm.placer.Focus(sel.Shown(), !sel.NeverFocus)
	}
	return nil
}

// handleUnmapNotifyEvent forgets windows that unmap themselves. xgb does
// not expose the send_event flag, so only the StructureNotify copy of
// the event (reported on the window itself) reaches here; the
// SubstructureNotify copy on the root is a duplicate.
func (wm *WM) handleUnmapNotifyEvent(e xproto.UnmapNotifyEvent) error {
	wm.ctx.WindowUnmapped(core.Window(e.Window), false)
	return nil
}

func (wm *WM) handleConfigureRequestEvent(e xproto.ConfigureRequestEvent) error {
	req := core.ConfigureRequest{
		Window: core.Window(e.Window),
		X:      int(e.X),
		Y:      int(e.Y),
		W:      int(e.Width),
		H:      int(e.Height),
		BW:     int(e.BorderWidth),
		HasX:   e.ValueMask&xproto.ConfigWindowX != 0,
		HasY:   e.ValueMask&xproto.ConfigWindowY != 0,
		HasW:   e.ValueMask&xproto.ConfigWindowWidth != 0,
		HasH:   e.ValueMask&xproto.ConfigWindowHeight != 0,
		HasBW:  e.ValueMask&xproto.ConfigWindowBorderWidth != 0,
	}
	if wm.ctx.HandleConfigureRequest(req) {
		return nil
	}
	// Unmanaged windows get what they ask for. Values go in mask bit
	// order.
	var (
		mask   uint16
		values []uint32
	)
	add := func(bit uint16, v uint32) {
		if e.ValueMask&bit != 0 {
			mask |= bit
			values = append(values, v)
		}
	}
	add(xproto.ConfigWindowX, i16(int(e.X)))
	add(xproto.ConfigWindowY, i16(int(e.Y)))
	add(xproto.ConfigWindowWidth, uint32(e.Width))
	add(xproto.ConfigWindowHeight, uint32(e.Height))
	add(xproto.ConfigWindowBorderWidth, uint32(e.BorderWidth))
	add(xproto.ConfigWindowSibling, uint32(e.Sibling))
	add(xproto.ConfigWindowStackMode, uint32(e.StackMode))
	return xproto.ConfigureWindowChecked(wm.xc, e.Window, mask, values).Check()
}

// handleConfigureNotifyEvent follows root window size changes.
func (wm *WM) handleConfigureNotifyEvent(e xproto.ConfigureNotifyEvent) error {
	wm.xroot.WidthInPixels = e.Width
	wm.xroot.HeightInPixels = e.Height
	wm.ctx.UpdateMonitors(wm.screens())
	return nil
}

func (wm *WM) handleMapRequestEvent(e xproto.MapRequestEvent) error {
	attrs, err := xproto.GetWindowAttributes(wm.xc, e.Window).Reply()
	if err != nil {
		return err
	}
	if attrs.OverrideRedirect || wm.ctx.WindowToClient(core.Window(e.Window)) != nil {
		return nil
	}
	wm.manage(e.Window)
	return nil
}

func (wm *WM) handlePropertyNotifyEvent(e xproto.PropertyNotifyEvent) error {
	w := core.Window(e.Window)
	if e.Window == wm.xroot.Root {
		if e.Atom == xproto.AtomWmName {
			wm.ctx.RootNameChanged(wm.windowTitle(e.Window))
		}
		return nil
	}
	if e.State == xproto.PropertyDelete {
		return nil
	}
	switch e.Atom {
	case xproto.AtomWmTransientFor:
		if t, err := icccm.WmTransientForGet(wm.X, e.Window); err == nil {
			wm.ctx.UpdateTransient(w, core.Window(t))
		}
	case xproto.AtomWmNormalHints:
		wm.ctx.UpdateSizeHints(w, wm.sizeHints(e.Window))
	case xproto.AtomWmHints:
		urgent, neverFocus := wm.wmHints(e.Window)
		wm.ctx.UpdateWMHints(w, urgent, neverFocus)
	case xproto.AtomWmName, atomNetWMName:
		wm.ctx.UpdateTitle(w, wm.windowTitle(e.Window))
	case atomNetWMWindowType:
		special, fullscreen, _ := wm.windowType(e.Window)
		wm.ctx.UpdateWindowType(w, special, fullscreen)
	default:
		return nil
	}
	wm.hub.Publish(wm.xEvent(e, e.Window))
	return nil
}

func (wm *WM) handleClientMessageEvent(e xproto.ClientMessageEvent) error {
	data := e.Data.Data32
	switch e.Type {
	case atomNetWMState:
		if xproto.Atom(data[1]) == atomNetWMStateFullscreen ||
			xproto.Atom(data[2]) == atomNetWMStateFullscreen {
			wm.ctx.FullscreenRequest(core.Window(e.Window), int(data[0]))
		}
	case atomNetActiveWindow:
		wm.ctx.Activate(core.Window(e.Window))
	}
	return nil
}
