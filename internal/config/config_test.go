package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/intio/tagwm/internal/core"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Layouts[0].Kind != core.Dwindle || s.Layouts[s.AllTagsLayout].Kind != core.LeftTile {
		t.Errorf("layouts = %+v", s.Layouts)
	}
	if s.BorderPx != 4 || s.GapPx != 3 || s.MFact != 0.55 || s.QuitWindow != 2*time.Second {
		t.Errorf("settings = %+v", s)
	}
	if got := s.Scratchpads['S']; len(got) == 0 || got[0] != "st" {
		t.Errorf("scratchpad S = %v", got)
	}
	if s.Rules[0].Monitor != -1 || !s.Rules[0].GrabOnUrgent || s.Rules[0].ScratchKey != 'S' {
		t.Errorf("rule 0 = %+v", s.Rules[0])
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse(`
border_px = 2
attach_dir = "top"
quit_window = "500ms"

[[rules]]
class = "Gimp"
tags = [3]
monitor = 1
grab_on_urgent = false

[signals]
9 = "quit"
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BorderPx != 2 || cfg.GapPx != 3 {
		t.Errorf("border=%d gap=%d", cfg.BorderPx, cfg.GapPx)
	}
	if len(cfg.Rules) != 1 || len(cfg.Signals) != 1 {
		t.Fatalf("rules=%d signals=%d, want the file's tables only", len(cfg.Rules), len(cfg.Signals))
	}
	if len(cfg.Keys) != len(Default().Keys) {
		t.Errorf("keys replaced without a keys table")
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	r := s.Rules[0]
	if r.Tags != 1<<2 || r.Monitor != 1 || r.GrabOnUrgent {
		t.Errorf("rule = %+v", r)
	}
	if s.AttachDir != core.AttachTop || s.QuitWindow != 500*time.Millisecond {
		t.Errorf("attach=%v quit=%v", s.AttachDir, s.QuitWindow)
	}
	if s.Signals[9].Name != "quit" {
		t.Errorf("signals = %+v", s.Signals)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown key", `colour = "red"`, "unknown keys"},
		{"bad mfact", `mfact = 0.99`, "mfact"},
		{"no tags", `tags = []`, "tags"},
		{"bad layout", "[[layouts]]\nsymbol = \"?\"\nkind = \"cascade\"", "layout 0"},
		{"bad attach", `attach_dir = "left"`, "attach_dir"},
		{"bad color", "[colors]\nnormal = \"blue\"\nselected = \"#005577\"\nurgent = \"#ff0000\"", "color"},
		{"rule tag", "[[rules]]\ntags = [12]", "out of range"},
		{"bad key cmd", "[[keys]]\nkey = \"MOD-x\"\ncmd = \"explode\"", "unknown command"},
		{"bad signal", "[signals]\nx = \"quit\"", "signal"},
		{"bad scratchpad", "[[scratchpads]]\nkey = \"SS\"\ncommand = [\"st\"]", "scratchpad"},
		{"syntax", `border_px = `, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.in)
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestBindingsExpandMod(t *testing.T) {
	cfg := Default()
	cfg.ModKey = "Mod1"
	cfg.Keys = []Key{{"MOD-Shift-j", "pushstack +1"}}
	b, err := cfg.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	if b[0].Key != "Mod1-Shift-j" || b[0].Cmd.Name != "pushstack" || b[0].Cmd.Args[0] != "+1" {
		t.Fatalf("binding = %+v", b[0])
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil || cfg.BorderPx != 4 {
		t.Fatalf("missing file: %v, %+v", err, cfg)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("gap_px = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOrDefault(path)
	if err != nil || cfg.GapPx != 0 {
		t.Fatalf("file: %v, gap %d", err, cfg.GapPx)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load of a missing file: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	v, err := ParseColor("#005577")
	if err != nil || v != 0x005577 {
		t.Fatalf("got %x, %v", v, err)
	}
	for _, s := range []string{"005577", "#05577", "#zzzzzz"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) accepted", s)
		}
	}
}
