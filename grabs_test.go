package main

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func TestCleanMask(t *testing.T) {
	tests := []struct {
		name  string
		state uint16
		want  uint16
	}{
		{"plain", xproto.ModMask4, xproto.ModMask4},
		{"caps lock", xproto.ModMask4 | xproto.ModMaskLock, xproto.ModMask4},
		{"num lock", xproto.ModMask4 | xproto.ModMaskShift | xproto.ModMask2, xproto.ModMask4 | xproto.ModMaskShift},
		{"button held", xproto.ModMask1 | xproto.KeyButMaskButton1, xproto.ModMask1},
		{"nothing", xproto.ModMaskLock, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMask(tt.state); got != tt.want {
				t.Errorf("cleanMask(%#x) = %#x, want %#x", tt.state, got, tt.want)
			}
		})
	}
}

func TestIgnoredModsClean(t *testing.T) {
	for _, m := range ignoredMods {
		if cleanMask(m|xproto.ModMaskControl) != xproto.ModMaskControl {
			t.Errorf("lock modifiers %#x survive cleaning", m)
		}
	}
}

func TestEventType(t *testing.T) {
	tests := []struct {
		ev   xgb.Event
		want string
	}{
		{xproto.MapRequestEvent{}, "MapRequestEvent"},
		{xproto.KeyPressEvent{}, "KeyPressEvent"},
		{xproto.ClientMessageEvent{}, "ClientMessageEvent"},
	}
	for _, tt := range tests {
		if got := eventType(tt.ev); got != tt.want {
			t.Errorf("eventType = %q, want %q", got, tt.want)
		}
	}
}
