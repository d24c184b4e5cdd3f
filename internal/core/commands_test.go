package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseIndexSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexSpec
		wantErr bool
	}{
		{"0", IndexSpec{IndexAbsolute, 0}, false},
		{"3", IndexSpec{IndexAbsolute, 3}, false},
		{"+1", IndexSpec{IndexRelative, 1}, false},
		{"-2", IndexSpec{IndexRelative, -2}, false},
		{"last", IndexSpec{IndexFromEnd, 1}, false},
		{"last-2", IndexSpec{IndexFromEnd, 3}, false},
		{"prev", IndexSpec{Kind: IndexPrevSel}, false},
		{"left", IndexSpec{Kind: IndexLeft}, false},
		{"right", IndexSpec{Kind: IndexRight}, false},
		{"", IndexSpec{}, true},
		{"last-x", IndexSpec{}, true},
		{"up", IndexSpec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexSpec(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadArgument) {
					t.Fatalf("err = %v, want ErrBadArgument", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %+v, %v; want %+v", got, err, tt.want)
			}
		})
	}
}

func TestParseFact(t *testing.T) {
	tests := []struct {
		in       string
		f        float64
		absolute bool
	}{
		{"+0.05", 0.05, false},
		{"-0.05", -0.05, false},
		{"=0.6", 0.6, true},
		{"0.6", 0.6, true},
	}
	for _, tt := range tests {
		f, abs, err := parseFact(tt.in)
		if err != nil || f != tt.f || abs != tt.absolute {
			t.Errorf("parseFact(%q) = %v, %v, %v", tt.in, f, abs, err)
		}
	}
	if _, _, err := parseFact("lots"); !errors.Is(err, ErrBadArgument) {
		t.Errorf("err = %v, want ErrBadArgument", err)
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("  view  2,3 ")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "view" || len(cmd.Args) != 1 || cmd.Args[0] != "2,3" {
		t.Fatalf("got %+v", cmd)
	}
	if cmd.String() != "view 2,3" {
		t.Fatalf("String() = %q", cmd.String())
	}
	for _, line := range []string{"", "frobnicate 1"} {
		if _, err := ParseCommand(line); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("ParseCommand(%q) err = %v", line, err)
		}
	}
}

func TestExec(t *testing.T) {
	tests := []struct {
		line    string
		check   func(*Context) bool
		wantErr error
	}{
		{"view 2,3", func(c *Context) bool { return c.SelMon().TagSet() == 0b110 }, nil},
		{"view all", func(c *Context) bool { return c.SelMon().CurTag() == 0 }, nil},
		{"view 10", nil, ErrBadArgument},
		{"setlayout [M]", func(c *Context) bool { return c.SelMon().Layout().Kind == Monocle }, nil},
		{"setlayout grid", func(c *Context) bool { return c.SelMon().Layout().Kind == Grid }, nil},
		{"setlayout 4", func(c *Context) bool { return c.SelMon().Layout().Kind == Dwindle }, nil},
		{"setlayout spiral", nil, ErrBadArgument},
		{"setmfact =0.7", func(c *Context) bool { return c.SelMon().MFact() == 0.7 }, nil},
		{"incnmaster 2", func(c *Context) bool { return c.SelMon().NMaster() == 3 }, nil},
		{"incnmaster x", nil, ErrBadArgument},
		{"togglebar", func(c *Context) bool { return c.SelMon().ShowBar() }, nil},
		{"toggleswal", func(c *Context) bool { return !c.SwallowEnabled() }, nil},
		{"togglescratch", nil, ErrBadArgument},
		{"spawn", nil, ErrBadArgument},
		{"nope", nil, ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			env := newTestEnv(t, nil)
			cmd := Command{Name: tt.line}
			if f := strings.Fields(tt.line); len(f) > 0 {
				cmd = Command{Name: f[0], Args: f[1:]}
			}
			err := env.ctx.Exec(cmd)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(env.ctx) {
				t.Fatal("state not updated")
			}
		})
	}
}

func TestExecSpawn(t *testing.T) {
	env := newTestEnv(t, nil)
	if err := env.ctx.Exec(Command{Name: "spawn", Args: []string{"st", "-e", "htop"}}); err != nil {
		t.Fatal(err)
	}
	if len(env.spawn.spawned) != 1 || len(env.spawn.spawned[0]) != 3 {
		t.Fatalf("spawned %v", env.spawn.spawned)
	}
}

func TestFocusStackSpecs(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.AttachDir = AttachBottom })
	ctx := env.ctx
	m := ctx.SelMon()
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	c := env.manage(t, nil)
	d := env.manage(t, nil)

	tests := []struct {
		spec IndexSpec
		want *Client
	}{
		{IndexSpec{IndexAbsolute, 0}, a},
		{IndexSpec{IndexRelative, 2}, c},
		{IndexSpec{IndexRelative, 5}, d},
		{IndexSpec{IndexFromEnd, 1}, d},
		{IndexSpec{IndexFromEnd, 3}, b},
		{IndexSpec{Kind: IndexPrevSel}, d},
		{IndexSpec{IndexAbsolute, 9}, d},
		{IndexSpec{Kind: IndexLeft}, a},
		{IndexSpec{Kind: IndexRight}, b},
	}
	for _, tt := range tests {
		ctx.FocusStack(tt.spec)
		if got := m.Sel(); got != tt.want {
			t.Fatalf("FocusStack(%+v) selected window %d, want %d", tt.spec, got.Window, tt.want.Window)
		}
	}
}

func TestPushStack(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.AttachDir = AttachBottom })
	ctx := env.ctx
	m := ctx.SelMon()
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	c := env.manage(t, nil)

	ctx.PushStack(IndexSpec{IndexAbsolute, 0})
	clientsEqual(t, m.Clients(), c, a, b)
	ctx.PushStack(IndexSpec{IndexRelative, 1})
	clientsEqual(t, m.Clients(), a, c, b)
	ctx.PushStack(IndexSpec{IndexFromEnd, 1})
	clientsEqual(t, m.Clients(), a, b, c)
}

func TestStackSpecsPastEndSkipHiddenTail(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.AttachDir = AttachBottom })
	ctx := env.ctx
	m := ctx.SelMon()
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	h := env.manage(t, nil)
	ctx.Tag(1 << 1)
	if ctx.Visible(h) {
		t.Fatal("h still visible after moving it to tag 2")
	}

	ctx.Focus(a)
	ctx.FocusStack(IndexSpec{IndexAbsolute, 9})
	if m.Sel() != b {
		t.Fatalf("FocusStack past the end selected window %d, want %d", m.Sel().Window, b.Window)
	}

	ctx.Focus(a)
	ctx.PushStack(IndexSpec{IndexAbsolute, 9})
	clientsEqual(t, m.Clients(), b, a, h)
}

func TestFakeSignals(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()

	if !ctx.RootNameChanged("fsignal:1") || !m.ShowBar() {
		t.Fatal("signal 1 did not toggle the bar")
	}
	if !ctx.RootNameChanged("fsignal:2") || m.Layout().Kind != Monocle {
		t.Fatal("signal 2 did not select monocle")
	}
	if !ctx.RootNameChanged("fsignal:7") {
		t.Fatal("unbound signal treated as status")
	}
	if ctx.RootNameChanged("fsignal:x") || ctx.Status() != "fsignal:x" {
		t.Fatal("malformed signal not kept as status")
	}
	if ctx.RootNameChanged("12:30 | bat 80%") || ctx.Status() != "12:30 | bat 80%" {
		t.Fatalf("status = %q", ctx.Status())
	}
}

func TestQuitNeedsTwoPresses(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, nil, WithClock(func() time.Time { return now }))
	ctx := env.ctx

	ctx.Quit()
	if !ctx.Running() {
		t.Fatal("stopped after one press")
	}
	now = now.Add(3 * time.Second)
	ctx.Quit()
	if !ctx.Running() {
		t.Fatal("stopped after presses 3s apart")
	}
	now = now.Add(time.Second)
	ctx.Quit()
	if ctx.Running() {
		t.Fatal("still running after two quick presses")
	}
}

func TestKillClient(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.manage(t, nil)
	env.ctx.KillClient()
	if len(env.placer.closed) != 1 || env.placer.closed[0] != a.Window {
		t.Fatalf("closed %v", env.placer.closed)
	}
}
