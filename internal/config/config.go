// Package config loads the window manager configuration from TOML and
// turns it into engine settings and key bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/intio/tagwm/internal/core"
)

// Config mirrors the TOML file. Zero values left by a partial file are
// filled from Default.
type Config struct {
	Listen string `toml:"listen"`
	Log    string `toml:"log_level"`

	BorderPx    int     `toml:"border_px"`
	GapPx       int     `toml:"gap_px"`
	Snap        int     `toml:"snap"`
	BarHeight   int     `toml:"bar_height"`
	ShowBar     bool    `toml:"show_bar"`
	TopBar      bool    `toml:"top_bar"`
	MFact       float64 `toml:"mfact"`
	NMaster     int     `toml:"nmaster"`
	ResizeHints bool    `toml:"resize_hints"`
	AttachDir   string  `toml:"attach_dir"`

	Colors Colors `toml:"colors"`

	Tags          []string `toml:"tags"`
	Layouts       []Layout `toml:"layouts"`
	AllTagsLayout int      `toml:"all_tags_layout"`

	Rules       []Rule       `toml:"rules"`
	Scratchpads []Scratchpad `toml:"scratchpads"`
	ScratchW    int          `toml:"scratch_width"`
	ScratchH    int          `toml:"scratch_height"`

	Swallow bool   `toml:"swallow"`
	Editor  string `toml:"editor"`

	QuitWindow duration `toml:"quit_window"`

	ModKey  string            `toml:"mod_key"`
	Keys    []Key             `toml:"keys"`
	Signals map[string]string `toml:"signals"`
}

// Colors are the border colours as #rrggbb.
type Colors struct {
	Normal   string `toml:"normal"`
	Selected string `toml:"selected"`
	Urgent   string `toml:"urgent"`
}

type Layout struct {
	Symbol string `toml:"symbol"`
	Kind   string `toml:"kind"`
}

type Rule struct {
	Class    string `toml:"class"`
	Instance string `toml:"instance"`
	Title    string `toml:"title"`
	// Tags are 1-based tag numbers.
	Tags              []int  `toml:"tags"`
	Floating          bool   `toml:"floating"`
	Monitor           *int   `toml:"monitor"`
	IgnoreMoveRequest bool   `toml:"ignore_move_request"`
	GrabOnUrgent      *bool  `toml:"grab_on_urgent"`
	ScratchKey        string `toml:"scratch_key"`
	NoSwallow         bool   `toml:"no_swallow"`
	Terminal          bool   `toml:"terminal"`
}

type Scratchpad struct {
	Key     string   `toml:"key"`
	Command []string `toml:"command"`
}

// Key binds an xgbutil key string such as "Mod4-Shift-j" to a command
// line. "MOD" in the key string stands for ModKey.
type Key struct {
	Key string `toml:"key"`
	Cmd string `toml:"cmd"`
}

// Binding is a validated key binding.
type Binding struct {
	Key string
	Cmd core.Command
}

type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DefaultPath is $XDG_CONFIG_HOME/tagwm/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tagwm", "config.toml")
}

// Load reads path over the defaults. Tables and arrays the file sets
// replace the defaults as a whole. Keys the file sets but Config does
// not know are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data string) (*Config, error) {
	md, err := toml.Decode(data, &Config{})
	if err != nil {
		return nil, err
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
	}
	cfg := Default()
	if md.IsDefined("tags") {
		cfg.Tags = nil
	}
	if md.IsDefined("layouts") {
		cfg.Layouts = nil
	}
	if md.IsDefined("rules") {
		cfg.Rules = nil
	}
	if md.IsDefined("scratchpads") {
		cfg.Scratchpads = nil
	}
	if md.IsDefined("keys") {
		cfg.Keys = nil
	}
	if md.IsDefined("signals") {
		cfg.Signals = nil
	}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the
// defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

var attachDirs = map[string]core.AttachDir{
	"below":  core.AttachBelow,
	"bottom": core.AttachBottom,
	"above":  core.AttachAbove,
	"top":    core.AttachTop,
}

// Validate checks everything that Settings and Bindings would reject.
func (c *Config) Validate() error {
	if n := len(c.Tags); n == 0 || n > 31 {
		return fmt.Errorf("need between 1 and 31 tags, have %d", n)
	}
	if len(c.Layouts) == 0 {
		return errors.New("no layouts")
	}
	for i, l := range c.Layouts {
		if _, err := core.ParseLayoutKind(l.Kind); err != nil {
			return fmt.Errorf("layout %d: %w", i, err)
		}
	}
	if c.AllTagsLayout < 0 || c.AllTagsLayout >= len(c.Layouts) {
		return fmt.Errorf("all_tags_layout %d out of range", c.AllTagsLayout)
	}
	if c.MFact < 0.05 || c.MFact > 0.95 {
		return fmt.Errorf("mfact %v outside [0.05, 0.95]", c.MFact)
	}
	if c.NMaster < 0 || c.BorderPx < 0 || c.GapPx < 0 || c.BarHeight < 0 {
		return errors.New("negative size")
	}
	if _, ok := attachDirs[c.AttachDir]; !ok {
		return fmt.Errorf("unknown attach_dir %q", c.AttachDir)
	}
	for _, col := range []string{c.Colors.Normal, c.Colors.Selected, c.Colors.Urgent} {
		if _, err := ParseColor(col); err != nil {
			return err
		}
	}
	for i, r := range c.Rules {
		for _, t := range r.Tags {
			if t < 1 || t > len(c.Tags) {
				return fmt.Errorf("rule %d: tag %d out of range", i, t)
			}
		}
		if len(r.ScratchKey) > 1 {
			return fmt.Errorf("rule %d: scratch_key %q is not a single character", i, r.ScratchKey)
		}
	}
	for _, s := range c.Scratchpads {
		if len(s.Key) != 1 || len(s.Command) == 0 {
			return fmt.Errorf("scratchpad %q: need a one character key and a command", s.Key)
		}
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	if _, err := c.signals(); err != nil {
		return err
	}
	return nil
}

// ParseColor reads "#rrggbb" into a pixel value.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Bindings returns the key table with MOD expanded and every command
// parsed.
func (c *Config) Bindings() ([]Binding, error) {
	out := make([]Binding, 0, len(c.Keys))
	for _, k := range c.Keys {
		cmd, err := core.ParseCommand(k.Cmd)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k.Key, err)
		}
		out = append(out, Binding{
			Key: strings.ReplaceAll(k.Key, "MOD", c.ModKey),
			Cmd: cmd,
		})
	}
	return out, nil
}

func (c *Config) signals() (map[int]core.Command, error) {
	out := make(map[int]core.Command, len(c.Signals))
	for k, v := range c.Signals {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("signal %q: not a number", k)
		}
		cmd, err := core.ParseCommand(v)
		if err != nil {
			return nil, fmt.Errorf("signal %d: %w", n, err)
		}
		out[n] = cmd
	}
	return out, nil
}

// Settings converts the configuration for the engine. Call Validate
// first.
func (c *Config) Settings() (core.Settings, error) {
	s := core.Settings{
		Tags:          c.Tags,
		BorderPx:      c.BorderPx,
		GapPx:         c.GapPx,
		Snap:          c.Snap,
		BarHeight:     c.BarHeight,
		ShowBar:       c.ShowBar,
		TopBar:        c.TopBar,
		MFact:         c.MFact,
		NMaster:       c.NMaster,
		ResizeHints:   c.ResizeHints,
		AttachDir:     attachDirs[c.AttachDir],
		AllTagsLayout: c.AllTagsLayout,
		ScratchW:      c.ScratchW,
		ScratchH:      c.ScratchH,
		Scratchpads:   make(map[byte][]string, len(c.Scratchpads)),
		Swallow:       c.Swallow,
		Editor:        c.Editor,
		QuitWindow:    c.QuitWindow.Duration,
	}
	for _, l := range c.Layouts {
		k, err := core.ParseLayoutKind(l.Kind)
		if err != nil {
			return core.Settings{}, err
		}
		s.Layouts = append(s.Layouts, core.Layout{Symbol: l.Symbol, Kind: k})
	}
	for _, r := range c.Rules {
		cr := core.Rule{
			Class:             r.Class,
			Instance:          r.Instance,
			Title:             r.Title,
			Floating:          r.Floating,
			Monitor:           -1,
			IgnoreMoveRequest: r.IgnoreMoveRequest,
			GrabOnUrgent:      true,
			NoSwallow:         r.NoSwallow,
			IsTerminal:        r.Terminal,
		}
		for _, t := range r.Tags {
			cr.Tags |= 1 << (t - 1)
		}
		if r.Monitor != nil {
			cr.Monitor = *r.Monitor
		}
		if r.GrabOnUrgent != nil {
			cr.GrabOnUrgent = *r.GrabOnUrgent
		}
		if r.ScratchKey != "" {
			cr.ScratchKey = r.ScratchKey[0]
		}
		s.Rules = append(s.Rules, cr)
	}
	for _, sp := range c.Scratchpads {
		s.Scratchpads[sp.Key[0]] = sp.Command
	}
	sig, err := c.signals()
	if err != nil {
		return core.Settings{}, err
	}
	s.Signals = sig
	return s, nil
}
