package config

import (
	"fmt"
	"time"
)

func stackKeys(mod, cmd string) []Key {
	specs := []struct{ key, spec string }{
		{"j", "+1"},
		{"k", "-1"},
		{"x", "prev"},
		{"q", "0"},
		{"a", "1"},
		{"s", "2"},
		{"d", "3"},
		{"z", "last"},
		{"h", "left"},
		{"l", "right"},
	}
	keys := make([]Key, len(specs))
	for i, s := range specs {
		keys[i] = Key{mod + s.key, cmd + " " + s.spec}
	}
	return keys
}

func tagKeys(n int) []Key {
	var keys []Key
	for i := 1; i <= n; i++ {
		keys = append(keys,
			Key{fmt.Sprintf("MOD-%d", i), fmt.Sprintf("view %d", i)},
			Key{fmt.Sprintf("MOD-Control-%d", i), fmt.Sprintf("toggleview %d", i)},
			Key{fmt.Sprintf("MOD-Shift-%d", i), fmt.Sprintf("tag %d", i)},
			Key{fmt.Sprintf("MOD-Control-Shift-%d", i), fmt.Sprintf("toggletag %d", i)},
		)
	}
	return keys
}

// Default returns the built-in configuration.
func Default() *Config {
	tags := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	keys := []Key{
		{"MOD-e", "spawn dmenu_run"},
		{"MOD-Return", "spawn st"},
		{"MOD-c", "togglescratch S"},
		{"MOD-v", "togglescratch T"},
		{"MOD-b", "togglebar"},
		{"MOD-Control-l", "setmfact +0.05"},
		{"MOD-Control-h", "setmfact -0.05"},
		{"MOD-Control-j", "setcfact +0.25"},
		{"MOD-Control-k", "setcfact -0.25"},
		{"MOD-Control-o", "setcfact 0"},
		{"MOD-i", "incnmaster +1"},
		{"MOD-o", "incnmaster -1"},
		{"MOD-Shift-o", "resetnmaster"},
		{"MOD-Shift-r", "resetfact"},
		{"MOD-f", "togglefullscreen"},
		{"MOD-Tab", "view prev"},
		{"MOD-bracketleft", "cycleattachdir +1"},
		{"MOD-bracketright", "cycleattachdir -1"},
		{"MOD-Shift-w", "killclient"},
		{"MOD-r", "cyclelayout +1"},
		{"MOD-t", "cyclelayout -1"},
		{"MOD-space", "setlayout"},
		{"MOD-Shift-space", "togglefloating"},
		{"MOD-0", "view all"},
		{"MOD-Shift-0", "tag all"},
		{"MOD-m", "togglesticky"},
		{"MOD-g", "toggleswal"},
		{"MOD-Shift-c", "center"},
		{"MOD-comma", "focusmon -1"},
		{"MOD-period", "focusmon +1"},
		{"MOD-Shift-comma", "tagmon -1"},
		{"MOD-Shift-period", "tagmon +1"},
		{"MOD-Shift-F4", "quit"},
	}
	keys = append(keys, stackKeys("MOD-", "focusstack")...)
	keys = append(keys, stackKeys("MOD-Shift-", "pushstack")...)
	keys = append(keys, tagKeys(len(tags))...)

	return &Config{
		Listen:      "127.0.0.1:7070",
		Log:         "info",
		BorderPx:    4,
		GapPx:       3,
		Snap:        32,
		BarHeight:   20,
		ShowBar:     true,
		TopBar:      true,
		MFact:       0.55,
		NMaster:     1,
		ResizeHints: true,
		AttachDir:   "below",
		Colors: Colors{
			Normal:   "#444444",
			Selected: "#005577",
			Urgent:   "#ff0000",
		},
		Tags: tags,
		Layouts: []Layout{
			{"[\\]", "dwindle"},
			{"[]=", "tile"},
			{"=[]", "lefttile"},
			{"[D]", "deck"},
			{"###", "grid"},
			{"[@]", "spiral"},
			{"[M]", "monocle"},
			{"><>", "floating"},
		},
		AllTagsLayout: 2,
		Rules: []Rule{
			{Title: "scratchpad", Floating: true, ScratchKey: "S"},
			{Title: "floatterm", Floating: true, ScratchKey: "T"},
			{Class: "net-runelite-client-RuneLite", IgnoreMoveRequest: true},
			{Class: "St", Instance: "st", Terminal: true},
		},
		Scratchpads: []Scratchpad{
			{"S", []string{"st", "-t", "scratchpad", "-g", "100x40"}},
			{"T", []string{"st", "-t", "floatterm", "-g", "100x40"}},
		},
		Swallow:    true,
		Editor:     "vim",
		QuitWindow: duration{2 * time.Second},
		ModKey:     "Mod4",
		Keys:       keys,
		Signals: map[string]string{
			"1": "toggleswal",
			"2": "togglebar",
			"3": "setlayout tile",
			"4": "setlayout monocle",
			"5": "setlayout floating",
			"6": "view prev",
		},
	}
}
