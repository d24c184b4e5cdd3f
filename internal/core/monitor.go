package core

// AttachDir is where a new client enters the arrangement list.
type AttachDir int

const (
	AttachBelow AttachDir = iota
	AttachBottom
	AttachAbove
	AttachTop
	numAttachDirs
)

var attachDirSymbols = [numAttachDirs]string{
	AttachBelow:  "*∨",
	AttachBottom: "∨",
	AttachAbove:  "*∧",
	AttachTop:    "∧",
}

// Symbol is the bar indicator of the direction.
func (d AttachDir) Symbol() string { return attachDirSymbols[d] }

// Pertag is the per-tag storage of a monitor. Index 0 stands for the
// "all tags" view, index i for tag i-1. The monitor reads its live
// values straight from the slot of the current tag.
type Pertag struct {
	curtag, prevtag int

	nmasters    []int
	mfacts      []float64
	sellts      []int
	layouts     [][2]int
	showbars    []bool
	attachDirs  []AttachDir
	fullscreens []*Client
}

func newPertag(ctx *Context) *Pertag {
	s := &ctx.settings
	n := len(s.Tags) + 1
	pt := &Pertag{
		curtag:      1,
		prevtag:     1,
		nmasters:    make([]int, n),
		mfacts:      make([]float64, n),
		sellts:      make([]int, n),
		layouts:     make([][2]int, n),
		showbars:    make([]bool, n),
		attachDirs:  make([]AttachDir, n),
		fullscreens: make([]*Client, n),
	}
	for i := 0; i < n; i++ {
		pt.nmasters[i] = s.NMaster
		pt.mfacts[i] = s.MFact
		pt.layouts[i] = [2]int{0, 1 % len(s.Layouts)}
		pt.showbars[i] = s.ShowBar
		pt.attachDirs[i] = s.AttachDir
	}
	pt.layouts[0][0] = s.AllTagsLayout % len(s.Layouts)
	return pt
}

// Monitor is one physical screen with its own tag state.
type Monitor struct {
	Num int
	// M is the screen rectangle, W the work area left by the bar.
	M, W   Rect
	BarY   int
	TopBar bool
	Symbol string

	tagset  [2]uint32
	seltags int
	sel     *Client
	sticky  *Client
	clients []*Client
	stack   []*Client
	pertag  *Pertag
	ctx     *Context
}

func newMonitor(ctx *Context) *Monitor {
	m := &Monitor{
		TopBar: ctx.settings.TopBar,
		tagset: [2]uint32{1, 1},
		pertag: newPertag(ctx),
		ctx:    ctx,
	}
	m.Symbol = m.Layout().Symbol
	return m
}

// TagSet is the mask of tags being viewed.
func (m *Monitor) TagSet() uint32 { return m.tagset[m.seltags] }

// CurTag is the pertag index of the view: 0 for all tags, i+1 for tag i.
func (m *Monitor) CurTag() int { return m.pertag.curtag }

// PrevTag is the pertag index of the previous view.
func (m *Monitor) PrevTag() int { return m.pertag.prevtag }

func (m *Monitor) NMaster() int         { return m.pertag.nmasters[m.pertag.curtag] }
func (m *Monitor) MFact() float64       { return m.pertag.mfacts[m.pertag.curtag] }
func (m *Monitor) ShowBar() bool        { return m.pertag.showbars[m.pertag.curtag] }
func (m *Monitor) AttachDir() AttachDir { return m.pertag.attachDirs[m.pertag.curtag] }

// Layout is the layout selected on the current tag.
func (m *Monitor) Layout() Layout {
	pt := m.pertag
	return m.ctx.settings.Layouts[pt.layouts[pt.curtag][pt.sellts[pt.curtag]]]
}

// LayoutIndex is the layout table index selected on the current tag.
func (m *Monitor) LayoutIndex() int {
	pt := m.pertag
	return pt.layouts[pt.curtag][pt.sellts[pt.curtag]]
}

// Fullscreen returns the client holding the fullscreen slot of the
// pertag index tag.
func (m *Monitor) Fullscreen(tag int) *Client { return m.pertag.fullscreens[tag] }

func (m *Monitor) Sel() *Client    { return m.sel }
func (m *Monitor) Sticky() *Client { return m.sticky }

// Clients returns the arrangement order.
func (m *Monitor) Clients() []*Client { return append([]*Client(nil), m.clients...) }

// Stack returns the focus order, most recent first.
func (m *Monitor) Stack() []*Client { return append([]*Client(nil), m.stack...) }

func (m *Monitor) updateBarPos() {
	bh := m.ctx.settings.BarHeight
	m.W = m.M
	if m.ShowBar() {
		m.W.H -= bh
		if m.TopBar {
			m.BarY = m.W.Y
			m.W.Y += bh
		} else {
			m.BarY = m.W.Y + m.W.H
		}
	} else {
		m.BarY = -bh
	}
}

// tiled returns the visible non-floating clients in arrangement order.
func (m *Monitor) tiled() []*Client {
	var out []*Client
	for _, c := range m.clients {
		if !c.Floating && m.ctx.visible(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Monitor) countVisible() int {
	n := 0
	for _, c := range m.clients {
		if m.ctx.visible(c) {
			n++
		}
	}
	return n
}

// visibleIndex returns c's position among the visible clients of the
// arrangement list, or -1.
func (m *Monitor) visibleIndex(c *Client) int {
	i := 0
	for _, k := range m.clients {
		if k == c {
			return i
		}
		if m.ctx.visible(k) {
			i++
		}
	}
	return -1
}
