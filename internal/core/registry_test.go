package core

import "testing"

func TestAttachDirections(t *testing.T) {
	tests := []struct {
		name    string
		dir     AttachDir
		reverse bool
	}{
		{"bottom", AttachBottom, false},
		{"top", AttachTop, true},
		{"below", AttachBelow, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(s *Settings) { s.AttachDir = tt.dir })
			a := env.manage(t, nil)
			b := env.manage(t, nil)
			c := env.manage(t, nil)
			m := env.ctx.SelMon()
			if tt.reverse {
				clientsEqual(t, m.Clients(), c, b, a)
			} else {
				clientsEqual(t, m.Clients(), a, b, c)
			}
			for _, k := range []*Client{c, b, a} {
				env.ctx.Unmanage(k.Window)
			}
			if n := len(m.Clients()); n != 0 {
				t.Fatalf("%d clients left after unmanaging all", n)
			}
			if n := len(m.Stack()); n != 0 {
				t.Fatalf("%d clients left on the focus stack", n)
			}
		})
	}
}

func TestAttachBelowSelection(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	c := env.manage(t, nil)
	m := env.ctx.SelMon()
	clientsEqual(t, m.Clients(), a, b, c)

	tests := []struct {
		c    *Client
		want Rect
	}{
		{a, Rect{0, 0, 500, 800}},
		{b, Rect{500, 0, 500, 400}},
		{c, Rect{500, 400, 500, 400}},
	}
	for _, tt := range tests {
		if got := tt.c.Geometry(); got != tt.want {
			t.Errorf("window %d at %+v, want %+v", tt.c.Window, got, tt.want)
		}
	}

	env.ctx.Focus(a)
	d := env.manage(t, nil)
	clientsEqual(t, m.Clients(), a, d, b, c)
}

func TestAttachAboveSelection(t *testing.T) {
	env := newTestEnv(t, func(s *Settings) { s.AttachDir = AttachAbove })
	a := env.manage(t, nil)
	b := env.manage(t, nil)
	m := env.ctx.SelMon()
	clientsEqual(t, m.Clients(), b, a)
	env.ctx.Focus(a)
	c := env.manage(t, nil)
	clientsEqual(t, m.Clients(), b, c, a)
}

func TestCycleAttachDir(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.ctx.SelMon()
	env.ctx.CycleAttachDir(-1)
	if got := m.AttachDir(); got != AttachTop {
		t.Fatalf("AttachDir = %v, want AttachTop", got)
	}
	env.ctx.CycleAttachDir(2)
	if got := m.AttachDir(); got != AttachBottom {
		t.Fatalf("AttachDir = %v, want AttachBottom", got)
	}
	env.ctx.View(1 << 1)
	if got := m.AttachDir(); got != AttachBelow {
		t.Fatalf("AttachDir on another tag = %v, want AttachBelow", got)
	}
}

func TestDoubleAttachPanics(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.manage(t, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("attaching an attached client did not panic")
		}
	}()
	env.ctx.attachBottom(a)
}
