package main

import (
	"slices"

	"github.com/BurntSushi/xgb/res"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/intio/tagwm/internal/core"
)

// Atoms the event handlers compare against. The ICCCM ones are
// predefined in xproto.
var (
	atomNetWMName            xproto.Atom
	atomNetWMState           xproto.Atom
	atomNetWMStateFullscreen xproto.Atom
	atomNetWMWindowType      xproto.Atom
	atomNetActiveWindow      xproto.Atom
)

// EWMH hints advertised in _NET_SUPPORTED.
var supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_CLIENT_LIST",
	"_NET_CURRENT_DESKTOP",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_WM_DESKTOP",
}

var specialTypes = []string{
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_UTILITY",
}

func (wm *WM) initAtoms() {
	atomNetWMName = getAtom(wm.X, "_NET_WM_NAME")
	atomNetWMState = getAtom(wm.X, "_NET_WM_STATE")
	atomNetWMStateFullscreen = getAtom(wm.X, "_NET_WM_STATE_FULLSCREEN")
	atomNetWMWindowType = getAtom(wm.X, "_NET_WM_WINDOW_TYPE")
	atomNetActiveWindow = getAtom(wm.X, "_NET_ACTIVE_WINDOW")
}

func getAtom(X *xgbutil.XUtil, name string) xproto.Atom {
	return must(xprop.Atm(X, name))
}

// screens returns the Xinerama heads, or the whole root window when
// the extension is missing.
func (wm *WM) screens() []core.Rect {
	root := core.Rect{W: int(wm.xroot.WidthInPixels), H: int(wm.xroot.HeightInPixels)}
	if !wm.xinerama {
		return []core.Rect{root}
	}
	reply, err := xinerama.QueryScreens(wm.xc).Reply()
	if err != nil || len(reply.ScreenInfo) == 0 {
		return []core.Rect{root}
	}
	rects := make([]core.Rect, len(reply.ScreenInfo))
	for i, s := range reply.ScreenInfo {
		rects[i] = core.Rect{X: int(s.XOrg), Y: int(s.YOrg), W: int(s.Width), H: int(s.Height)}
	}
	return rects
}

// windowPID asks the X-Resource extension who owns w and falls back to
// _NET_WM_PID.
func (wm *WM) windowPID(w xproto.Window) int {
	if wm.xres {
		spec := res.ClientIdSpec{Client: uint32(w), Mask: res.ClientIdMaskLocalClientPID}
		reply, err := res.QueryClientIds(wm.xc, 1, []res.ClientIdSpec{spec}).Reply()
		if err == nil {
			for _, id := range reply.Ids {
				if id.Spec.Mask&res.ClientIdMaskLocalClientPID != 0 && len(id.Value) > 0 {
					return int(id.Value[0])
				}
			}
		}
	}
	pid, err := ewmh.WmPidGet(wm.X, w)
	if err != nil {
		return 0
	}
	return int(pid)
}

func (wm *WM) windowTitle(w xproto.Window) string {
	if name, err := ewmh.WmNameGet(wm.X, w); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(wm.X, w)
	return name
}

func (wm *WM) sizeHints(w xproto.Window) core.SizeHints {
	var h core.SizeHints
	nh, err := icccm.WmNormalHintsGet(wm.X, w)
	if err != nil {
		return h
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseW, h.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.BaseW, h.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinW, h.MinH = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.MinW, h.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectNum != 0 && nh.MaxAspectDen != 0 {
		h.MinA = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		h.MaxA = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}
	return h
}

// wmHints returns urgency and whether the client refuses input focus.
func (wm *WM) wmHints(w xproto.Window) (urgent, neverFocus bool) {
	hints, err := icccm.WmHintsGet(wm.X, w)
	if err != nil {
		return false, false
	}
	urgent = hints.Flags&icccm.HintUrgency != 0
	neverFocus = hints.Flags&icccm.HintInput != 0 && hints.Input == 0
	return urgent, neverFocus
}

// windowType reports whether w is a dialog-like window and whether it
// asks for fullscreen or above.
func (wm *WM) windowType(w xproto.Window) (special, fullscreen, above bool) {
	if types, err := ewmh.WmWindowTypeGet(wm.X, w); err == nil {
		special = slices.ContainsFunc(types, func(t string) bool {
			return slices.Contains(specialTypes, t)
		})
	}
	if states, err := ewmh.WmStateGet(wm.X, w); err == nil {
		fullscreen = slices.Contains(states, "_NET_WM_STATE_FULLSCREEN")
		above = slices.Contains(states, "_NET_WM_STATE_ABOVE")
	}
	return special, fullscreen, above
}

// windowInfo collects everything Manage needs to know about w.
func (wm *WM) windowInfo(w xproto.Window, geom *xproto.GetGeometryReply) core.WindowInfo {
	info := core.WindowInfo{
		Window: core.Window(w),
		Title:  wm.windowTitle(w),
		PID:    wm.windowPID(w),
		Geometry: core.Rect{
			X: int(geom.X), Y: int(geom.Y),
			W: int(geom.Width), H: int(geom.Height),
		},
		BorderWidth: int(geom.BorderWidth),
		Hints:       wm.sizeHints(w),
	}
	if class, err := icccm.WmClassGet(wm.X, w); err == nil {
		info.Class, info.Instance = class.Class, class.Instance
	}
	if t, err := icccm.WmTransientForGet(wm.X, w); err == nil {
		info.Transient = true
		info.TransientFor = core.Window(t)
	}
	info.Special, info.Fullscreen, info.Above = wm.windowType(w)
	info.Urgent, info.NeverFocus = wm.wmHints(w)
	return info
}
