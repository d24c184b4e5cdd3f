package core

// Window is the opaque handle of a top-level X window.
type Window uint32

// ClientID keys a client in the context's arena. IDs are never reused.
type ClientID uint64

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) intersect(o Rect) int {
	w := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	h := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	return max(0, w) * max(0, h)
}

// SizeHints are the ICCCM WM_NORMAL_HINTS of a client, normalised the
// way the arrangement code consumes them: a missing base size falls back
// to the minimum size and vice versa, and aspect limits are expressed as
// ratios (MinA as height/width, MaxA as width/height).
type SizeHints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64
}

// Fixed reports whether the hints pin the client to a single size.
func (h SizeHints) Fixed() bool {
	return h.MaxW > 0 && h.MaxH > 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
}

// Client is a managed top-level window.
type Client struct {
	ID       ClientID
	Window   Window
	Title    string
	Class    string
	Instance string
	PID      int

	X, Y, W, H int
	BW         int

	oldBW       int
	oldFloating bool
	// float geometry, restored when floating is turned back on
	sf Rect
	// geometry before the client went fullscreen
	fsRestore Rect

	Hints SizeHints
	Tags  uint32
	Cfact float64

	Floating          bool
	Urgent            bool
	AlwaysOnTop       bool
	NeverFocus        bool
	IgnoreMoveRequest bool
	GrabOnUrgent      bool
	NoSwallow         bool
	IsTerminal        bool

	// FSTag is the tag whose fullscreen slot holds the client, -1 if none.
	FSTag      int
	ScratchKey byte

	mon        *Monitor
	swallowing *Client
	needResize bool
	cmeSetFS   bool
}

// Monitor returns the monitor the client lives on.
func (c *Client) Monitor() *Monitor { return c.mon }

// Fullscreen reports whether the client holds a fullscreen slot.
func (c *Client) Fullscreen() bool { return c.FSTag >= 0 }

// Swallowed returns the client parked in this client's slot, if any.
func (c *Client) Swallowed() *Client { return c.swallowing }

// Geometry returns the client's rectangle, border excluded.
func (c *Client) Geometry() Rect { return Rect{c.X, c.Y, c.W, c.H} }

// Shown returns the window currently displayed in the client's slot. A
// swallowing terminal shows the swallowed child's window.
func (c *Client) Shown() Window {
	if c.swallowing != nil {
		return c.swallowing.Window
	}
	return c.Window
}

// ShownTitle is the title of the window shown in the slot.
func (c *Client) ShownTitle() string {
	if c.swallowing != nil {
		return c.swallowing.Title
	}
	return c.Title
}

func (c *Client) width() int  { return c.W + 2*c.BW }
func (c *Client) height() int { return c.H + 2*c.BW }

func (c *Client) setGeometry(r Rect) {
	c.X, c.Y, c.W, c.H = r.X, r.Y, r.W, r.H
}

// fixed is evaluated from the hints so that hint updates take effect.
func (c *Client) fixed() bool { return c.Hints.Fixed() }
