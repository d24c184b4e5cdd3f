package core

import (
	"fmt"
	"strings"
)

// LayoutKind names an arrangement algorithm.
type LayoutKind int

const (
	// Floating is the null layout: nothing is arranged.
	Floating LayoutKind = iota
	Tile
	LeftTile
	Deck
	Grid
	Dwindle
	Spiral
	Monocle
)

var layoutKindNames = [...]string{
	Floating: "floating",
	Tile:     "tile",
	LeftTile: "lefttile",
	Deck:     "deck",
	Grid:     "grid",
	Dwindle:  "dwindle",
	Spiral:   "spiral",
	Monocle:  "monocle",
}

func (k LayoutKind) String() string {
	if k < 0 || int(k) >= len(layoutKindNames) {
		return fmt.Sprintf("LayoutKind(%d)", int(k))
	}
	return layoutKindNames[k]
}

// ParseLayoutKind maps an algorithm name to its kind.
func ParseLayoutKind(s string) (LayoutKind, error) {
	for k, name := range layoutKindNames {
		if strings.EqualFold(s, name) {
			return LayoutKind(k), nil
		}
	}
	return Floating, fmt.Errorf("%w: unknown layout %q", ErrBadArgument, s)
}

// Layout is an entry of the layout table.
type Layout struct {
	Symbol string
	Kind   LayoutKind
}

// Arranges reports whether the layout positions tiled clients.
func (l Layout) Arranges() bool { return l.Kind != Floating }

// Pane is what an algorithm knows about one tiled client.
type Pane struct {
	Cfact float64
	BW    int
	// StackRank is the client's position in the focus stack, lower
	// being more recently focused.
	StackRank int
}

// Params are the monitor values an algorithm works with.
type Params struct {
	Area    Rect
	NMaster int
	MFact   float64
	// MinSize stops recursive splitting (the bar height).
	MinSize int
	// Visible counts every visible client, floating ones included.
	Visible int
}

// Result is the outcome of one arrangement.
type Result struct {
	// Rects has one entry per pane, border already subtracted.
	Rects []Rect
	// Floated marks panes that did not fit and must float.
	Floated []bool
	// Symbol overrides the layout symbol when non-empty.
	Symbol string
	// Cfacts holds the weights after the algorithm ran.
	Cfacts []float64
}

func newResult(panes []Pane) Result {
	r := Result{
		Rects:   make([]Rect, len(panes)),
		Floated: make([]bool, len(panes)),
		Cfacts:  make([]float64, len(panes)),
	}
	for i, p := range panes {
		r.Cfacts[i] = p.Cfact
	}
	return r
}

// Arrange runs the algorithm over panes in arrangement order. An empty
// pane list or the floating kind yields an empty result.
func (k LayoutKind) Arrange(p Params, panes []Pane) Result {
	if len(panes) == 0 || k == Floating {
		return newResult(nil)
	}
	switch k {
	case Tile:
		return tile(p, panes, false)
	case LeftTile:
		return tile(p, panes, true)
	case Deck:
		return deck(p, panes)
	case Grid:
		return grid(p, panes)
	case Dwindle:
		return fibonacci(p, panes, true)
	case Spiral:
		return fibonacci(p, panes, false)
	case Monocle:
		return monocle(p, panes)
	}
	panic(fmt.Sprintf("unhandled layout %v", k))
}

func masterWidth(p Params, n int) int {
	if n <= p.NMaster {
		return p.Area.W
	}
	if p.NMaster == 0 {
		return 0
	}
	return int(float64(p.Area.W) * p.MFact)
}

// column splits a column's height between panes[from:to] by cfact. The
// last pane takes whatever rounding left over.
func column(res *Result, panes []Pane, from, to, x, y, w, h int) {
	var facts float64
	for i := from; i < to; i++ {
		facts += panes[i].Cfact
	}
	off := 0
	for i := from; i < to; i++ {
		pn := panes[i]
		ph := h - off
		if i < to-1 {
			ph = int(float64(h-off) * (pn.Cfact / facts))
		}
		res.Rects[i] = Rect{x, y + off, w - 2*pn.BW, ph - 2*pn.BW}
		off += ph
		facts -= pn.Cfact
	}
}

func tile(p Params, panes []Pane, mirror bool) Result {
	res := newResult(panes)
	n := len(panes)
	a := p.Area
	mw := masterWidth(p, n)
	nm := min(n, p.NMaster)
	mx, sx := a.X, a.X+mw
	if mirror {
		mx, sx = a.X+a.W-mw, a.X
	}
	if n > p.NMaster {
		if mirror {
			res.Symbol = fmt.Sprintf("=[%d]", n-nm)
		} else {
			res.Symbol = fmt.Sprintf("[%d]=", n-nm)
		}
	}
	column(&res, panes, 0, nm, mx, a.Y, mw, a.H)
	column(&res, panes, nm, n, sx, a.Y, a.W-mw, a.H)
	return res
}

func deck(p Params, panes []Pane) Result {
	res := newResult(panes)
	n := len(panes)
	a := p.Area
	mw := masterWidth(p, n)
	nm := min(n, p.NMaster)
	if n > p.NMaster {
		res.Symbol = fmt.Sprintf("[%d]", n-p.NMaster)
	}
	column(&res, panes, 0, nm, a.X, a.Y, mw, a.H)
	for i := nm; i < n; i++ {
		bw := panes[i].BW
		res.Rects[i] = Rect{a.X + mw, a.Y, a.W - mw - 2*bw, a.H - 2*bw}
	}
	return res
}

func monocle(p Params, panes []Pane) Result {
	res := newResult(panes)
	if p.Visible > 0 {
		res.Symbol = fmt.Sprintf("[%d]", p.Visible)
	}
	a := p.Area
	for i, pn := range panes {
		res.Rects[i] = Rect{a.X, a.Y, a.W - 2*pn.BW, a.H - 2*pn.BW}
	}
	return res
}

// gridDims returns the smallest square-ish grid holding n cells.
func gridDims(n int) (cols, rows int) {
	for cols = 0; cols <= n/2; cols++ {
		if cols*cols >= n {
			break
		}
	}
	if cols == 0 {
		cols = 1
	}
	rows = cols
	if (cols-1)*cols >= n {
		rows = cols - 1
	}
	return cols, rows
}

func grid(p Params, panes []Pane) Result {
	res := newResult(panes)
	n := len(panes)
	a := p.Area
	cols, rows := gridDims(n)
	cw, ch := a.W/cols, a.H/rows
	for i, pn := range panes {
		col, row := i/rows, i%rows
		w, h := cw, ch
		if col == cols-1 {
			w = a.W - cw*col
		}
		if row == rows-1 {
			h = a.H - ch*row
		}
		if i == n-1 && row < rows-1 {
			h = a.H - ch*row
		}
		res.Rects[i] = Rect{a.X + col*cw, a.Y + row*ch, w - 2*pn.BW, h - 2*pn.BW}
	}
	return res
}
