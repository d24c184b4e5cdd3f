package core

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
	ErrNoSuchClient   = errors.New("no such client")
)

// AllTags views every tag at once.
const AllTags = ^uint32(0)

// Rule presets properties of clients whose class, instance and title
// contain the given substrings. Empty matchers match anything.
type Rule struct {
	Class, Instance, Title string

	Tags              uint32
	Floating          bool
	Monitor           int
	IgnoreMoveRequest bool
	GrabOnUrgent      bool
	ScratchKey        byte
	NoSwallow         bool
	IsTerminal        bool
}

// Settings holds everything the engine needs from the configuration.
type Settings struct {
	Tags        []string
	BorderPx    int
	GapPx       int
	Snap        int
	BarHeight   int
	ShowBar     bool
	TopBar      bool
	MFact       float64
	NMaster     int
	ResizeHints bool
	AttachDir   AttachDir

	// Layouts is the layout table; AllTagsLayout indexes the layout
	// used by the all-tags view.
	Layouts       []Layout
	AllTagsLayout int

	Rules       []Rule
	Scratchpads map[byte][]string
	// ScratchW and ScratchH size scratchpads; zero means half of the
	// monitor.
	ScratchW, ScratchH int

	Signals map[int]Command
	Swallow bool
	// Editor is matched against the parent process name of new
	// clients; editors never lose their terminal.
	Editor string
	// QuitWindow is how close two quit requests must be.
	QuitWindow time.Duration
}

// Context is the whole window manager state. It is not safe for
// concurrent use; callers serialise access onto one goroutine.
type Context struct {
	settings Settings
	tagMask  uint32

	placer  Placer
	spawner Spawner
	procs   ProcessTree
	log     *log.Logger
	now     func() time.Time

	screen  Rect
	mons    []*Monitor
	selmon  *Monitor
	clients map[ClientID]*Client
	nextID  ClientID

	swallowOn bool
	running   bool
	lastQuit  time.Time
	status    string
}

// Option configures a Context.
type Option func(*Context)

func WithSpawner(s Spawner) Option         { return func(c *Context) { c.spawner = s } }
func WithProcessTree(p ProcessTree) Option { return func(c *Context) { c.procs = p } }
func WithLogger(l *log.Logger) Option      { return func(c *Context) { c.log = l } }
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New builds a context with a single monitor covering screen.
func New(s Settings, p Placer, screen Rect, opts ...Option) *Context {
	if len(s.Layouts) == 0 {
		panic("core: empty layout table")
	}
	if len(s.Tags) == 0 || len(s.Tags) > 31 {
		panic("core: need between 1 and 31 tags")
	}
	ctx := &Context{
		settings:  s,
		tagMask:   uint32(1)<<len(s.Tags) - 1,
		placer:    p,
		log:       log.New(io.Discard),
		now:       time.Now,
		screen:    screen,
		clients:   make(map[ClientID]*Client),
		swallowOn: s.Swallow,
		running:   true,
	}
	for _, o := range opts {
		o(ctx)
	}
	ctx.UpdateMonitors([]Rect{screen})
	return ctx
}

// Settings returns the settings the context was built with.
func (ctx *Context) Settings() Settings { return ctx.settings }

// TagMask has one bit set per configured tag.
func (ctx *Context) TagMask() uint32 { return ctx.tagMask }

// Running is false once quit has been confirmed.
func (ctx *Context) Running() bool { return ctx.running }

// Monitors returns the monitors in order.
func (ctx *Context) Monitors() []*Monitor { return append([]*Monitor(nil), ctx.mons...) }

// SelMon returns the selected monitor.
func (ctx *Context) SelMon() *Monitor { return ctx.selmon }

// Status is the last root window name that was not a fake signal.
func (ctx *Context) Status() string { return ctx.status }

// SwallowEnabled reports whether new clients may swallow terminals.
func (ctx *Context) SwallowEnabled() bool { return ctx.swallowOn }

// Client looks a client up by arena id.
func (ctx *Context) Client(id ClientID) (*Client, error) {
	c, ok := ctx.clients[id]
	if !ok || c.mon == nil {
		return nil, ErrNoSuchClient
	}
	return c, nil
}

// Clients returns every attached client, monitor by monitor in
// arrangement order.
func (ctx *Context) Clients() []*Client {
	var out []*Client
	for _, m := range ctx.mons {
		out = append(out, m.clients...)
	}
	return out
}

// WindowToClient finds the client whose slot shows w.
func (ctx *Context) WindowToClient(w Window) *Client {
	for _, m := range ctx.mons {
		for _, c := range m.clients {
			if c.Shown() == w {
				return c
			}
		}
	}
	return nil
}

// swallowingClient finds the slot whose own window is w while it is
// swallowing another client.
func (ctx *Context) swallowingClient(w Window) *Client {
	for _, m := range ctx.mons {
		for _, c := range m.clients {
			if c.swallowing != nil && c.Window == w {
				return c
			}
		}
	}
	return nil
}

// visible is the visibility predicate: the client shares a tag with the
// view, or it is the sticky client and no other client is fullscreen on
// the current tag.
func (ctx *Context) visible(c *Client) bool {
	if c == nil || c.mon == nil {
		return false
	}
	m := c.mon
	if c.Tags&m.TagSet() != 0 {
		return true
	}
	if m.sticky != c {
		return false
	}
	fs := m.pertag.fullscreens[m.pertag.curtag]
	return fs == nil || fs == c
}

// Visible reports whether c is shown on its monitor.
func (ctx *Context) Visible(c *Client) bool { return ctx.visible(c) }

func (ctx *Context) updateClientList() {
	var ws []Window
	for _, m := range ctx.mons {
		for _, c := range m.clients {
			ws = append(ws, c.Shown())
		}
	}
	ctx.placer.SetClientList(ws)
}

func (ctx *Context) updateCurrentDesktop() {
	ts := ctx.selmon.TagSet()
	i := 0
	for ts>>(i+1) != 0 {
		i++
	}
	ctx.placer.SetCurrentDesktop(i)
}

// lowestTag returns the index of the lowest bit set in mask.
func lowestTag(mask uint32) int {
	for i := 0; i < 32; i++ {
		if mask&(1<<i) != 0 {
			return i
		}
	}
	return 0
}
