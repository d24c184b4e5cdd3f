package main

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/intio/tagwm/internal/core"
)

// dragInterval rate-limits motion handling to 60 Hz, in server
// milliseconds.
const dragInterval = 1000 / 60

// drag moves or resizes c with the pointer until the button is
// released. Only the X event stream is serviced meanwhile; API calls
// wait until the drag ends.
func (wm *WM) drag(c *core.Client, resize bool) {
	if !wm.ctx.BeginDrag(c) {
		return
	}
	cursor := wm.painter.cursorMove
	if resize {
		cursor = wm.painter.cursorResize
	}
	root := wm.xroot.Root
	grab, err := xproto.GrabPointer(wm.xc, false, root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, cursor, xproto.TimeCurrentTime).Reply()
	if err != nil || grab.Status != xproto.GrabStatusSuccess {
		return
	}
	defer xproto.UngrabPointer(wm.xc, xproto.TimeCurrentTime)

	w := c.Shown()
	var startX, startY int
	ocx, ocy := c.X, c.Y
	if resize {
		wm.placer.Warp(w, c.W+c.BW-1, c.H+c.BW-1)
	} else {
		ptr, err := xproto.QueryPointer(wm.xc, root).Reply()
		if err != nil {
			return
		}
		startX, startY = int(ptr.RootX), int(ptr.RootY)
	}

	var last xproto.Timestamp
	for e := range wm.events {
		if e.err != nil {
			continue
		}
		switch ev := e.ev.(type) {
		case xproto.ConfigureRequestEvent, xproto.ExposeEvent, xproto.MapRequestEvent:
			if err := wm.handleEvent(ev); err != nil {
				wm.log.Debug("event during drag", "err", err)
			}
		case xproto.MotionNotifyEvent:
			if ev.Time-last <= dragInterval {
				continue
			}
			last = ev.Time
			if c.Monitor() == nil {
				return
			}
			if resize {
				wm.ctx.DragResize(c, int(ev.RootX), int(ev.RootY))
			} else {
				wm.ctx.DragMove(c, ocx+int(ev.RootX)-startX, ocy+int(ev.RootY)-startY)
			}
		case xproto.ButtonReleaseEvent:
			if c.Monitor() == nil {
				return
			}
			if resize {
				wm.placer.Warp(c.Shown(), c.W+c.BW-1, c.H+c.BW-1)
			}
			wm.ctx.EndDrag(c)
			wm.hub.Publish(clientEvent("drag", wm.ctx, c))
			return
		}
	}
}
