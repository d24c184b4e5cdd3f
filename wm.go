package main

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/res"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/charmbracelet/log"

	"github.com/intio/tagwm/internal/config"
	"github.com/intio/tagwm/internal/core"
	"github.com/intio/tagwm/internal/proctree"
)

// rootEventMask is selected on the root window; SubstructureRedirect
// is what makes us the window manager.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

type xevent struct {
	ev  xgb.Event
	err xgb.Error
}

// WM holds the global window manager state. Everything but the event
// reader and the API server runs on the goroutine that calls Run; API
// handlers reach the state through do.
type WM struct {
	X     *xgbutil.XUtil
	xc    *xgb.Conn
	xroot xproto.ScreenInfo

	xinerama bool
	xres     bool
	checkWin *xwindow.Window

	cfg      *config.Config
	settings core.Settings
	bindings []config.Binding
	log      *log.Logger

	ctx     *core.Context
	placer  *xPlacer
	painter *Painter
	keys    []keyGrab
	hub     *Hub

	events  chan xevent
	calls   chan func()
	stopped chan struct{}
}

// NewWM prepares a window manager for cfg without touching the X
// server.
func NewWM(cfg *config.Config, logger *log.Logger) (*WM, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}
	return &WM{
		cfg:      cfg,
		settings: settings,
		bindings: bindings,
		log:      logger,
		hub:      NewHub(logger),
		events:   make(chan xevent, 64),
		calls:    make(chan func()),
		stopped:  make(chan struct{}),
	}, nil
}

// Init connects to the X server, takes over the root window and
// manages the windows that already exist.
func (wm *WM) Init() error {
	xc, err := xgb.NewConn()
	if err != nil {
		return err
	}
	wm.xc = xc
	if wm.X, err = xgbutil.NewConnXgb(xc); err != nil {
		return err
	}
	wm.xroot = *xproto.Setup(xc).DefaultScreen(xc)
	root := wm.xroot.Root

	if err := xproto.ChangeWindowAttributesChecked(xc, root, xproto.CwEventMask,
		[]uint32{rootEventMask}).Check(); err != nil {
		return errorAnotherWM
	}
	wm.xinerama = xinerama.Init(xc) == nil
	wm.xres = res.Init(xc) == nil
	wm.initAtoms()
	keybind.Initialize(wm.X)

	wm.painter = NewPainter(xc)
	if err := wm.painter.Init(&wm.xroot, wm.cfg.Colors); err != nil {
		return err
	}
	xproto.ChangeWindowAttributes(xc, root, xproto.CwCursor,
		[]uint32{uint32(wm.painter.cursorNormal)})

	mod, err := modMask(wm.X, wm.cfg.ModKey)
	if err != nil {
		return err
	}
	wm.placer = &xPlacer{
		X:       wm.X,
		xc:      xc,
		root:    root,
		painter: wm.painter,
		log:     wm.log,
		modMask: mod,
	}
	if err := wm.initEWMH(); err != nil {
		return err
	}

	wm.ctx = core.New(wm.settings, wm.placer, wm.screens()[0],
		core.WithSpawner(execSpawner{log: wm.log}),
		core.WithProcessTree(proctree.New()),
		core.WithLogger(wm.log.WithPrefix("core")),
	)
	wm.ctx.UpdateMonitors(wm.screens())
	wm.grabKeys()
	wm.scan()
	wm.ctx.RootNameChanged(wm.windowTitle(root))

	go wm.readEvents()
	wm.log.Info("running", "monitors", len(wm.ctx.Monitors()), "clients", len(wm.ctx.Clients()))
	return nil
}

func (wm *WM) initEWMH() error {
	root := wm.xroot.Root
	w, err := xwindow.Generate(wm.X)
	if err != nil {
		return err
	}
	if err := w.CreateChecked(root, 0, 0, 1, 1, 0); err != nil {
		return err
	}
	wm.checkWin = w
	ewmh.SupportingWmCheckSet(wm.X, w.Id, w.Id)
	ewmh.WmNameSet(wm.X, w.Id, "tagwm")
	ewmh.SupportingWmCheckSet(wm.X, root, w.Id)
	ewmh.SupportedSet(wm.X, supported)
	ewmh.NumberOfDesktopsSet(wm.X, uint(len(wm.settings.Tags)))
	ewmh.DesktopNamesSet(wm.X, wm.settings.Tags)
	ewmh.CurrentDesktopSet(wm.X, 0)
	ewmh.ClientListSet(wm.X, nil)
	xproto.DeleteProperty(wm.xc, root, atomNetActiveWindow)
	return nil
}

// scan manages the windows that were mapped before we started,
// transients last so their parents exist.
func (wm *WM) scan() {
	tree, err := xproto.QueryTree(wm.xc, wm.xroot.Root).Reply()
	if err != nil {
		wm.log.Warn("scanning windows", "err", err)
		return
	}
	var transients []xproto.Window
	for _, w := range tree.Children {
		if !wm.adoptable(w) {
			continue
		}
		if _, err := icccm.WmTransientForGet(wm.X, w); err == nil {
			transients = append(transients, w)
			continue
		}
		wm.manage(w)
	}
	for _, w := range transients {
		wm.manage(w)
	}
}

func (wm *WM) adoptable(w xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(wm.xc, w).Reply()
	if err != nil || attrs.OverrideRedirect {
		return false
	}
	if attrs.MapState == xproto.MapStateViewable {
		return true
	}
	state, err := icccm.WmStateGet(wm.X, w)
	return err == nil && state.State == icccm.StateIconic
}

// manage hands w to the engine. It returns nil for windows that vanish
// before we get their geometry.
func (wm *WM) manage(w xproto.Window) *core.Client {
	geom, err := xproto.GetGeometry(wm.xc, xproto.Drawable(w)).Reply()
	if err != nil {
		wm.log.Debug("manage", "window", w, "err", err)
		return nil
	}
	xproto.ChangeWindowAttributes(wm.xc, w, xproto.CwEventMask, []uint32{clientEventMask})
	return wm.ctx.Manage(wm.windowInfo(w, geom))
}

func (wm *WM) readEvents() {
	for {
		ev, err := wm.xc.WaitForEvent()
		if ev == nil && err == nil {
			close(wm.events)
			return
		}
		wm.events <- xevent{ev, err}
	}
}

// Run is the main loop. It returns errorQuit once a quit has been
// confirmed.
func (wm *WM) Run() error {
	defer close(wm.stopped)
	for wm.ctx.Running() {
		select {
		case e, ok := <-wm.events:
			if !ok {
				return errorXClosed
			}
			if e.err != nil {
				wm.log.Debug("X error", "err", e.err)
				continue
			}
			if err := wm.handleEvent(e.ev); err != nil {
				wm.log.Warn("event", "type", eventType(e.ev), "err", err)
			}
		case f := <-wm.calls:
			f()
		}
	}
	return errorQuit
}

// do runs f on the main loop and waits for it. Once the loop has
// stopped f is dropped and errorStopped returned.
func (wm *WM) do(f func()) error {
	done := make(chan struct{})
	call := func() {
		defer close(done)
		f()
	}
	select {
	case wm.calls <- call:
	case <-wm.stopped:
		return errorStopped
	}
	select {
	case <-done:
		return nil
	case <-wm.stopped:
	}
	select {
	case <-done:
		return nil
	default:
		return errorStopped
	}
}

// Deinit hands every window back to the X server.
func (wm *WM) Deinit() {
	if wm.ctx == nil {
		return
	}
	wm.ctx.View(core.AllTags)
	for cs := wm.ctx.Clients(); len(cs) > 0; cs = wm.ctx.Clients() {
		wm.ctx.Unmanage(cs[0].Shown())
	}
	root := wm.xroot.Root
	xproto.UngrabKey(wm.xc, xproto.GrabAny, root, xproto.ModMaskAny)
	if wm.checkWin != nil {
		wm.checkWin.Destroy()
	}
	wm.painter.Free()
	xproto.SetInputFocus(wm.xc, xproto.InputFocusPointerRoot, root, xproto.TimeCurrentTime)
	xproto.DeleteProperty(wm.xc, root, atomNetActiveWindow)
	xproto.GetInputFocus(wm.xc).Reply()
	wm.xc.Close()
}
