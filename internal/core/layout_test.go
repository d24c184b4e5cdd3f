package core

import (
	"errors"
	"fmt"
	"testing"
)

func panes(n int) []Pane {
	ps := make([]Pane, n)
	for i := range ps {
		ps[i] = Pane{Cfact: 1, StackRank: i}
	}
	return ps
}

func TestTileColumnsFillHeight(t *testing.T) {
	area := Rect{0, 0, 1000, 799}
	for _, mirror := range []bool{false, true} {
		for n := 1; n <= 8; n++ {
			for nmaster := 0; nmaster <= n; nmaster++ {
				t.Run(fmt.Sprintf("mirror=%v/n=%d/nmaster=%d", mirror, n, nmaster), func(t *testing.T) {
					res := tile(Params{Area: area, NMaster: nmaster, MFact: 0.55}, panes(n), mirror)
					var master, stack int
					for i, r := range res.Rects {
						if i < nmaster {
							master += r.H
						} else {
							stack += r.H
						}
					}
					if nmaster > 0 && master != area.H {
						t.Errorf("master heights sum to %d, want %d", master, area.H)
					}
					if n > nmaster && stack != area.H {
						t.Errorf("stack heights sum to %d, want %d", stack, area.H)
					}
				})
			}
		}
	}
}

func TestTileCfactWeights(t *testing.T) {
	ps := panes(3)
	ps[1].Cfact = 3
	res := tile(Params{Area: Rect{0, 0, 1000, 800}, NMaster: 1, MFact: 0.5}, ps, false)
	if got := res.Rects[1].H; got != 600 {
		t.Errorf("weighted pane height = %d, want 600", got)
	}
	if got := res.Rects[2].H; got != 200 {
		t.Errorf("last pane height = %d, want 200", got)
	}
}

func TestLeftTileMirrorsMaster(t *testing.T) {
	res := tile(Params{Area: Rect{0, 0, 1000, 800}, NMaster: 1, MFact: 0.6}, panes(2), true)
	if res.Rects[0].X != 400 || res.Rects[0].W != 600 {
		t.Errorf("master = %+v, want x=400 w=600", res.Rects[0])
	}
	if res.Rects[1].X != 0 || res.Rects[1].W != 400 {
		t.Errorf("stack = %+v, want x=0 w=400", res.Rects[1])
	}
}

func TestGridDims(t *testing.T) {
	for n := 1; n <= 64; n++ {
		cols, rows := gridDims(n)
		if rows*cols < n {
			t.Errorf("n=%d: %dx%d grid too small", n, cols, rows)
		}
		if (rows-1)*cols >= n {
			t.Errorf("n=%d: %dx%d grid has an empty row", n, cols, rows)
		}
	}
}

func TestGridCoversArea(t *testing.T) {
	area := Rect{0, 0, 1001, 799}
	for n := 1; n <= 10; n++ {
		res := grid(Params{Area: area}, panes(n))
		total := 0
		for _, r := range res.Rects {
			total += r.W * r.H
		}
		if total != area.W*area.H {
			t.Errorf("n=%d: cells cover %d, want %d", n, total, area.W*area.H)
		}
	}
}

func TestFibonacciOverflowFloats(t *testing.T) {
	p := Params{Area: Rect{0, 0, 1000, 800}, MFact: 0.5, MinSize: 300}
	res := fibonacci(p, panes(4), true)
	want := []bool{false, false, false, true}
	for i := range want {
		if res.Floated[i] != want[i] {
			t.Fatalf("Floated = %v, want %v", res.Floated, want)
		}
	}
	if got, want := res.Rects[0], (Rect{0, 0, 500, 800}); got != want {
		t.Errorf("first = %+v, want %+v", got, want)
	}
	if got, want := res.Rects[3], (Rect{250, 200, 500, 400}); got != want {
		t.Errorf("overflow = %+v, want %+v", got, want)
	}
}

func TestLayoutSymbols(t *testing.T) {
	p := Params{Area: Rect{0, 0, 1000, 800}, NMaster: 1, MFact: 0.5, Visible: 3}
	tests := []struct {
		kind LayoutKind
		want string
	}{
		{Deck, "[2]"},
		{Monocle, "[3]"},
		{Tile, "[2]="},
		{LeftTile, "=[2]"},
		{Grid, ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Arrange(p, panes(3)).Symbol; got != tt.want {
				t.Errorf("symbol = %q, want %q", got, tt.want)
			}
		})
	}
	if got := Tile.Arrange(p, panes(1)).Symbol; got != "" {
		t.Errorf("tile without overflow: symbol = %q", got)
	}
}

func TestMonocleCountsFloatingClients(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := env.ctx
	m := ctx.SelMon()
	env.manage(t, nil)
	ctx.ToggleFloating()
	ctx.SetLayout(1)
	if m.Symbol != "[1]" {
		t.Fatalf("symbol = %q, want [1]", m.Symbol)
	}
}

func TestParseLayoutKind(t *testing.T) {
	k, err := ParseLayoutKind("Dwindle")
	if err != nil || k != Dwindle {
		t.Fatalf("ParseLayoutKind(Dwindle) = %v, %v", k, err)
	}
	if _, err := ParseLayoutKind("bogus"); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("err = %v, want ErrBadArgument", err)
	}
}
