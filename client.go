package main

import (
	"slices"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/charmbracelet/log"

	"github.com/intio/tagwm/internal/core"
)

// clientEventMask is selected on every managed window.
const clientEventMask = xproto.EventMaskEnterWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

// xPlacer carries out the engine's placement decisions on the X server.
// Requests are sent unchecked; their errors surface in the event loop.
type xPlacer struct {
	X       *xgbutil.XUtil
	xc      *xgb.Conn
	root    xproto.Window
	painter *Painter
	log     *log.Logger
	// modMask is the modifier of the move and resize buttons.
	modMask uint16
}

func win(w core.Window) xproto.Window { return xproto.Window(w) }

// i16 packs a signed coordinate into a ConfigureWindow value.
func i16(v int) uint32 { return uint32(int32(v)) }

func (p *xPlacer) Configure(w core.Window, r core.Rect, bw int) {
	xproto.ConfigureWindow(p.xc, win(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{i16(r.X), i16(r.Y), uint32(r.W), uint32(r.H), uint32(bw)})
	p.NotifyConfigure(w, r, bw)
}

func (p *xPlacer) NotifyConfigure(w core.Window, r core.Rect, bw int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win(w),
		Window:           win(w),
		AboveSibling:     xproto.WindowNone,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(r.W),
		Height:           uint16(r.H),
		BorderWidth:      uint16(bw),
		OverrideRedirect: false,
	}
	xproto.SendEvent(p.xc, false, win(w), xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (p *xPlacer) Move(w core.Window, x, y int) {
	xproto.ConfigureWindow(p.xc, win(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{i16(x), i16(y)})
}

func (p *xPlacer) MoveResize(w core.Window, r core.Rect) {
	xproto.ConfigureWindow(p.xc, win(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{i16(r.X), i16(r.Y), uint32(r.W), uint32(r.H)})
}

func (p *xPlacer) SetBorderWidth(w core.Window, bw int) {
	xproto.ConfigureWindow(p.xc, win(w), xproto.ConfigWindowBorderWidth, []uint32{uint32(bw)})
}

func (p *xPlacer) SetBorder(w core.Window, s core.Scheme) {
	xproto.ChangeWindowAttributes(p.xc, win(w), xproto.CwBorderPixel,
		[]uint32{p.painter.BorderPixel(s, false)})
}

var stackModes = map[core.StackMode]uint32{
	core.StackAbove: xproto.StackModeAbove,
	core.StackBelow: xproto.StackModeBelow,
	core.StackTopIf: xproto.StackModeTopIf,
}

func (p *xPlacer) Restack(w, sibling core.Window, mode core.StackMode) {
	if sibling == 0 {
		xproto.ConfigureWindow(p.xc, win(w), xproto.ConfigWindowStackMode,
			[]uint32{stackModes[mode]})
		return
	}
	xproto.ConfigureWindow(p.xc, win(w),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), stackModes[mode]})
}

func (p *xPlacer) Map(w core.Window) {
	xproto.MapWindow(p.xc, win(w))
}

// Unmap hides w without the resulting UnmapNotify reaching us, so the
// window stays managed.
func (p *xPlacer) Unmap(w core.Window) {
	xproto.GrabServer(p.xc)
	xproto.ChangeWindowAttributes(p.xc, p.root, xproto.CwEventMask,
		[]uint32{rootEventMask &^ xproto.EventMaskSubstructureNotify})
	xproto.ChangeWindowAttributes(p.xc, win(w), xproto.CwEventMask,
		[]uint32{clientEventMask &^ xproto.EventMaskStructureNotify})
	xproto.UnmapWindow(p.xc, win(w))
	p.SetState(w, core.WithdrawnState)
	xproto.ChangeWindowAttributes(p.xc, p.root, xproto.CwEventMask, []uint32{rootEventMask})
	xproto.ChangeWindowAttributes(p.xc, win(w), xproto.CwEventMask, []uint32{clientEventMask})
	xproto.UngrabServer(p.xc)
}

func (p *xPlacer) SetState(w core.Window, s core.WMState) {
	if err := icccm.WmStateSet(p.X, win(w), &icccm.WmState{State: uint(s)}); err != nil {
		p.log.Debug("WM_STATE", "window", w, "err", err)
	}
}

func (p *xPlacer) SetFullscreen(w core.Window, on bool) {
	var states []string
	if on {
		states = []string{"_NET_WM_STATE_FULLSCREEN"}
	}
	if err := ewmh.WmStateSet(p.X, win(w), states); err != nil {
		p.log.Debug("_NET_WM_STATE", "window", w, "err", err)
	}
}

func (p *xPlacer) SetUrgent(w core.Window, on bool) {
	hints, err := icccm.WmHintsGet(p.X, win(w))
	if err != nil {
		hints = &icccm.Hints{}
	}
	if on {
		hints.Flags |= icccm.HintUrgency
		xproto.ChangeWindowAttributes(p.xc, win(w), xproto.CwBorderPixel,
			[]uint32{p.painter.BorderPixel(core.SchemeNorm, true)})
	} else {
		hints.Flags &^= icccm.HintUrgency
	}
	if err := icccm.WmHintsSet(p.X, win(w), hints); err != nil {
		p.log.Debug("WM_HINTS", "window", w, "err", err)
	}
}

func (p *xPlacer) SetDesktop(w core.Window, tag int) {
	ewmh.WmDesktopSet(p.X, win(w), uint(tag))
}

func (p *xPlacer) SetCurrentDesktop(tag int) {
	ewmh.CurrentDesktopSet(p.X, uint(tag))
}

func (p *xPlacer) SetClientList(ws []core.Window) {
	list := make([]xproto.Window, len(ws))
	for i, w := range ws {
		list[i] = win(w)
	}
	ewmh.ClientListSet(p.X, list)
}

// moveResizeButtons are grabbed on every client with the mod key held.
var moveResizeButtons = []xproto.Button{
	xproto.ButtonIndex1,
	xproto.ButtonIndex2,
	xproto.ButtonIndex3,
}

// GrabButtons grabs every button on unfocused clients so that a click
// focuses them, and the mod key bindings everywhere.
func (p *xPlacer) GrabButtons(w core.Window, focused bool) {
	const mask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	xproto.UngrabButton(p.xc, xproto.ButtonIndexAny, win(w), xproto.ModMaskAny)
	if !focused {
		xproto.GrabButton(p.xc, false, win(w), mask,
			xproto.GrabModeSync, xproto.GrabModeSync,
			xproto.WindowNone, xproto.CursorNone,
			xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
	for _, b := range moveResizeButtons {
		for _, extra := range ignoredMods {
			xproto.GrabButton(p.xc, false, win(w), mask,
				xproto.GrabModeAsync, xproto.GrabModeSync,
				xproto.WindowNone, xproto.CursorNone,
				byte(b), p.modMask|extra)
		}
	}
}

func (p *xPlacer) supports(w core.Window, protocol string) bool {
	protocols, err := icccm.WmProtocolsGet(p.X, win(w))
	return err == nil && slices.Contains(protocols, protocol)
}

// sendProtocol delivers an ICCCM WM_PROTOCOLS client message.
func (p *xPlacer) sendProtocol(w core.Window, protocol string) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win(w),
		Type:   getAtom(p.X, "WM_PROTOCOLS"),
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(getAtom(p.X, protocol)),
			uint32(xproto.TimeCurrentTime),
			0,
			0,
			0,
		}),
	}
	xproto.SendEvent(p.xc, false, win(w), xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (p *xPlacer) Focus(w core.Window, input bool) {
	if input {
		xproto.SetInputFocus(p.xc, xproto.InputFocusPointerRoot, win(w), xproto.TimeCurrentTime)
		ewmh.ActiveWindowSet(p.X, win(w))
	}
	if p.supports(w, "WM_TAKE_FOCUS") {
		p.sendProtocol(w, "WM_TAKE_FOCUS")
	}
}

func (p *xPlacer) FocusRoot() {
	xproto.SetInputFocus(p.xc, xproto.InputFocusPointerRoot, p.root, xproto.TimeCurrentTime)
	xproto.DeleteProperty(p.xc, p.root, atomNetActiveWindow)
}

func (p *xPlacer) Warp(w core.Window, x, y int) {
	dst := win(w)
	if w == 0 {
		dst = p.root
	}
	xproto.WarpPointer(p.xc, xproto.WindowNone, dst, 0, 0, 0, 0, int16(x), int16(y))
}

// Close asks w to close with WM_DELETE_WINDOW and kills its client
// when it does not speak the protocol.
func (p *xPlacer) Close(w core.Window) {
	if p.supports(w, "WM_DELETE_WINDOW") {
		p.sendProtocol(w, "WM_DELETE_WINDOW")
		return
	}
	xproto.GrabServer(p.xc)
	xproto.SetCloseDownMode(p.xc, xproto.CloseDownDestroyAll)
	xproto.KillClient(p.xc, uint32(w))
	xproto.UngrabServer(p.xc)
}
