package core

import (
	"errors"
	"testing"
)

func termInfo(pid int) func(*WindowInfo) {
	return func(i *WindowInfo) {
		i.Class, i.Instance, i.PID = "St", "st", pid
	}
}

func TestSwallowRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	x := env.manage(t, nil)
	term := env.manage(t, termInfo(100))
	y := env.manage(t, nil)
	clientsEqual(t, m.Clients(), x, term, y)
	geo, tags := term.Geometry(), term.Tags

	env.procs.parent[200] = 100
	var childWin Window
	slot := env.manage(t, func(i *WindowInfo) {
		i.Class, i.PID = "mpv", 200
		childWin = i.Window
	})
	if slot != term {
		t.Fatalf("Manage returned window %d, want the terminal slot", slot.Window)
	}
	if term.Shown() != childWin || term.Swallowed() == nil {
		t.Fatalf("terminal shows %d, want %d", term.Shown(), childWin)
	}
	clientsEqual(t, m.Clients(), x, term, y)
	if env.placer.mapped[term.Window] {
		t.Fatal("terminal window still mapped")
	}
	if got := ctx.WindowToClient(childWin); got != term {
		t.Fatal("child window does not resolve to the terminal slot")
	}
	if _, err := ctx.Client(term.Swallowed().ID); !errors.Is(err, ErrNoSuchClient) {
		t.Fatalf("swallowed child still addressable: %v", err)
	}

	ctx.WindowDestroyed(childWin)
	if term.Swallowed() != nil || term.Shown() != term.Window {
		t.Fatal("terminal still swallowing")
	}
	clientsEqual(t, m.Clients(), x, term, y)
	if term.Geometry() != geo || term.Tags != tags {
		t.Fatalf("terminal at %+v tags %b, want %+v tags %b", term.Geometry(), term.Tags, geo, tags)
	}
	if !env.placer.mapped[term.Window] {
		t.Fatal("terminal window not mapped again")
	}
}

func TestSwallowSkips(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Settings)
		child func(*WindowInfo)
	}{
		{"disabled", func(s *Settings) { s.Swallow = false }, nil},
		{"noswallow rule", func(s *Settings) {
			s.Rules = append(s.Rules, Rule{Class: "mpv", NoSwallow: true})
		}, nil},
		{"no pid", nil, func(i *WindowInfo) { i.PID = 0 }},
		{"terminal child", nil, func(i *WindowInfo) { i.Class = "St" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.edit)
			term := env.manage(t, termInfo(100))
			env.procs.parent[200] = 100
			child := env.manage(t, func(i *WindowInfo) {
				i.Class, i.PID = "mpv", 200
				if tt.child != nil {
					tt.child(i)
				}
			})
			if child == term || term.Swallowed() != nil {
				t.Fatal("terminal swallowed the child")
			}
			if n := len(env.ctx.SelMon().Clients()); n != 2 {
				t.Fatalf("%d clients, want 2", n)
			}
		})
	}
}

func TestSwallowPrefersClosestTerminal(t *testing.T) {
	env := newTestEnv(t, nil)
	outer := env.manage(t, termInfo(100))
	inner := env.manage(t, termInfo(150))
	env.procs.parent[150] = 120
	env.procs.parent[120] = 100
	env.procs.parent[200] = 150
	env.manage(t, func(i *WindowInfo) { i.Class, i.PID = "mpv", 200 })
	if inner.Swallowed() == nil || outer.Swallowed() != nil {
		t.Fatal("child not swallowed by the closest terminal")
	}
}

func TestTerminalGoneKeepsChild(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	term := env.manage(t, termInfo(100))
	termWin := term.Window
	env.procs.parent[200] = 100
	var childWin Window
	env.manage(t, func(i *WindowInfo) {
		i.Class, i.PID = "mpv", 200
		childWin = i.Window
	})
	ctx.WindowDestroyed(termWin)
	if term.Window != childWin || term.Class != "mpv" || term.Swallowed() != nil {
		t.Fatalf("slot now window %d class %q", term.Window, term.Class)
	}
	if ctx.WindowToClient(childWin) != term {
		t.Fatal("child lost its slot")
	}
}

func TestEditorChildrenNotSwallowed(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.Editor = "vim" })
	term := env.manage(t, termInfo(100))
	env.procs.parent[150] = 100
	env.procs.parent[200] = 150
	env.procs.comm[150] = "nvim"
	env.manage(t, func(i *WindowInfo) { i.Class, i.PID = "zathura", 200 })
	if term.Swallowed() != nil {
		t.Fatal("child of an editor swallowed its terminal")
	}
}
