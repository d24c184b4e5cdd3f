package core

import (
	"testing"
	"time"
)

type restackCall struct {
	w, sibling Window
	mode       StackMode
}

// fakePlacer records what the engine asks of the windowing side.
type fakePlacer struct {
	configured map[Window]Rect
	mapped     map[Window]bool
	states     map[Window]WMState
	urgent     map[Window]bool
	restacks   []restackCall
	closed     []Window
	focused    Window
	clientList []Window
	desktop    int
}

func newFakePlacer() *fakePlacer {
	return &fakePlacer{
		configured: make(map[Window]Rect),
		mapped:     make(map[Window]bool),
		states:     make(map[Window]WMState),
		urgent:     make(map[Window]bool),
	}
}

func (p *fakePlacer) Configure(w Window, r Rect, bw int)       { p.configured[w] = r }
func (p *fakePlacer) NotifyConfigure(w Window, r Rect, bw int) {}
func (p *fakePlacer) Move(w Window, x, y int)                  {}
func (p *fakePlacer) MoveResize(w Window, r Rect)              {}
func (p *fakePlacer) SetBorderWidth(w Window, bw int)          {}
func (p *fakePlacer) SetBorder(w Window, s Scheme)             {}
func (p *fakePlacer) Restack(w, sibling Window, mode StackMode) {
	p.restacks = append(p.restacks, restackCall{w, sibling, mode})
}
func (p *fakePlacer) Map(w Window)                    { p.mapped[w] = true }
func (p *fakePlacer) Unmap(w Window)                  { p.mapped[w] = false }
func (p *fakePlacer) SetState(w Window, s WMState)    { p.states[w] = s }
func (p *fakePlacer) SetFullscreen(w Window, on bool) {}
func (p *fakePlacer) SetUrgent(w Window, on bool)     { p.urgent[w] = on }
func (p *fakePlacer) SetDesktop(w Window, tag int)    {}
func (p *fakePlacer) SetCurrentDesktop(tag int)       { p.desktop = tag }
func (p *fakePlacer) SetClientList(ws []Window)       { p.clientList = ws }
func (p *fakePlacer) GrabButtons(w Window, f bool)    {}
func (p *fakePlacer) Focus(w Window, input bool)      { p.focused = w }
func (p *fakePlacer) FocusRoot()                      { p.focused = 0 }
func (p *fakePlacer) Warp(w Window, x, y int)         {}
func (p *fakePlacer) Close(w Window)                  { p.closed = append(p.closed, w) }

type fakeSpawner struct{ spawned [][]string }

func (s *fakeSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return nil
}

// fakeProcs is a process table keyed by pid.
type fakeProcs struct {
	parent map[int]int
	comm   map[int]string
}

func (p fakeProcs) Parent(pid int) int     { return p.parent[pid] }
func (p fakeProcs) Command(pid int) string { return p.comm[pid] }

var testScreen = Rect{0, 0, 1000, 800}

func testSettings() Settings {
	return Settings{
		Tags:        []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		BarHeight:   20,
		TopBar:      true,
		MFact:       0.5,
		NMaster:     1,
		ResizeHints: true,
		Snap:        32,
		Layouts: []Layout{
			{"[]=", Tile},
			{"[M]", Monocle},
			{"><>", Floating},
			{"###", Grid},
			{"[\\]", Dwindle},
			{"[D]", Deck},
		},
		Scratchpads: map[byte][]string{'S': {"st", "-t", "scratchpad"}},
		Rules: []Rule{
			{Title: "scratchpad", Floating: true, ScratchKey: 'S', GrabOnUrgent: true},
			{Class: "St", IsTerminal: true, GrabOnUrgent: true},
		},
		Signals:    map[int]Command{1: {Name: "togglebar"}, 2: {Name: "setlayout", Args: []string{"monocle"}}},
		Swallow:    true,
		QuitWindow: 2 * time.Second,
	}
}

type testEnv struct {
	ctx    *Context
	placer *fakePlacer
	spawn  *fakeSpawner
	procs  fakeProcs
	next   Window
}

func newTestEnv(t *testing.T, edit func(*Settings), opts ...Option) *testEnv {
	t.Helper()
	s := testSettings()
	if edit != nil {
		edit(&s)
	}
	env := &testEnv{
		placer: newFakePlacer(),
		spawn:  &fakeSpawner{},
		procs:  fakeProcs{parent: map[int]int{}, comm: map[int]string{}},
		next:   100,
	}
	opts = append([]Option{WithSpawner(env.spawn), WithProcessTree(env.procs)}, opts...)
	env.ctx = New(s, env.placer, testScreen, opts...)
	return env
}

// manage maps a new plain window and returns its client.
func (e *testEnv) manage(t *testing.T, edit func(*WindowInfo)) *Client {
	t.Helper()
	e.next++
	info := WindowInfo{
		Window:   e.next,
		Title:    "xterm",
		Class:    "XTerm",
		Instance: "xterm",
		Geometry: Rect{10, 10, 300, 200},
	}
	if edit != nil {
		edit(&info)
	}
	c := e.ctx.Manage(info)
	if c == nil {
		t.Fatalf("Manage(%d) returned nil", info.Window)
	}
	return c
}

func clientsEqual(t *testing.T, got []*Client, want ...*Client) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d clients, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("client %d: got window %d, want window %d", i, got[i].Window, want[i].Window)
		}
	}
}
