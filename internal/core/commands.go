package core

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexKind says how an IndexSpec addresses a visible client.
type IndexKind int

const (
	IndexAbsolute IndexKind = iota
	IndexRelative
	IndexFromEnd
	IndexPrevSel
	IndexLeft
	IndexRight
)

// IndexSpec addresses a client among the visible clients of the
// selected monitor.
type IndexSpec struct {
	Kind IndexKind
	N    int
}

// ParseIndexSpec reads "3", "+1", "-1", "last", "last-2", "prev",
// "left" or "right".
func ParseIndexSpec(s string) (IndexSpec, error) {
	switch s {
	case "prev":
		return IndexSpec{Kind: IndexPrevSel}, nil
	case "left":
		return IndexSpec{Kind: IndexLeft}, nil
	case "right":
		return IndexSpec{Kind: IndexRight}, nil
	case "last":
		return IndexSpec{Kind: IndexFromEnd, N: 1}, nil
	}
	if rest, ok := strings.CutPrefix(s, "last-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return IndexSpec{}, fmt.Errorf("%w: index %q", ErrBadArgument, s)
		}
		return IndexSpec{Kind: IndexFromEnd, N: n + 1}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return IndexSpec{}, fmt.Errorf("%w: index %q", ErrBadArgument, s)
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return IndexSpec{Kind: IndexRelative, N: n}, nil
	}
	return IndexSpec{Kind: IndexAbsolute, N: n}, nil
}

// Command is one instruction of the command language shared by key
// bindings, fake signals and the HTTP API.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

func (c Command) arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// ParseCommand splits a command line on whitespace.
func ParseCommand(line string) (Command, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}
	cmd := Command{Name: f[0], Args: f[1:]}
	if _, ok := commands[cmd.Name]; !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	return cmd, nil
}

type commandFunc func(ctx *Context, c Command) error

var commands map[string]commandFunc

func init() {
	commands = map[string]commandFunc{
		"view": func(ctx *Context, c Command) error {
			if c.arg(0) == "prev" {
				ctx.View(0)
				return nil
			}
			mask, err := ctx.parseTags(c.arg(0))
			if err != nil {
				return err
			}
			ctx.View(mask)
			return nil
		},
		"tag":        maskCommand((*Context).Tag),
		"toggleview": maskCommand((*Context).ToggleView),
		"toggletag":  maskCommand((*Context).ToggleTag),
		"setlayout": func(ctx *Context, c Command) error {
			if len(c.Args) == 0 {
				ctx.SetLayout(-1)
				return nil
			}
			i, err := ctx.parseLayout(c.arg(0))
			if err != nil {
				return err
			}
			ctx.SetLayout(i)
			return nil
		},
		"cyclelayout":    intCommand((*Context).CycleLayout),
		"incnmaster":     intCommand((*Context).IncNMaster),
		"cycleattachdir": intCommand((*Context).CycleAttachDir),
		"focusmon":       intCommand((*Context).FocusMon),
		"tagmon":         intCommand((*Context).TagMon),
		"setmfact": func(ctx *Context, c Command) error {
			f, abs, err := parseFact(c.arg(0))
			if err != nil {
				return err
			}
			ctx.SetMFact(f, abs)
			return nil
		},
		"setcfact": func(ctx *Context, c Command) error {
			if c.arg(0) == "0" {
				ctx.SetCfact(0, false, true)
				return nil
			}
			f, abs, err := parseFact(c.arg(0))
			if err != nil {
				return err
			}
			ctx.SetCfact(f, abs, false)
			return nil
		},
		"resetnmaster":     plain((*Context).ResetNMaster),
		"resetfact":        plain((*Context).ResetFact),
		"togglefloating":   plain((*Context).ToggleFloating),
		"togglefullscreen": plain((*Context).ToggleFullscreen),
		"togglesticky":     plain((*Context).ToggleSticky),
		"togglebar":        plain((*Context).ToggleBar),
		"toggleswal":       plain((*Context).ToggleSwallow),
		"center":           plain((*Context).Center),
		"killclient":       plain((*Context).KillClient),
		"quit":             plain((*Context).Quit),
		"togglescratch": func(ctx *Context, c Command) error {
			if len(c.arg(0)) != 1 {
				return fmt.Errorf("%w: scratchpad key %q", ErrBadArgument, c.arg(0))
			}
			return ctx.ToggleScratch(c.arg(0)[0])
		},
		"focusstack": specCommand((*Context).FocusStack),
		"pushstack":  specCommand((*Context).PushStack),
		"spawn": func(ctx *Context, c Command) error {
			return ctx.Spawn(c.Args)
		},
	}
}

func plain(f func(*Context)) commandFunc {
	return func(ctx *Context, _ Command) error {
		f(ctx)
		return nil
	}
}

func maskCommand(f func(*Context, uint32)) commandFunc {
	return func(ctx *Context, c Command) error {
		mask, err := ctx.parseTags(c.arg(0))
		if err != nil {
			return err
		}
		f(ctx, mask)
		return nil
	}
}

func intCommand(f func(*Context, int)) commandFunc {
	return func(ctx *Context, c Command) error {
		n, err := strconv.Atoi(c.arg(0))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadArgument, c.arg(0))
		}
		f(ctx, n)
		return nil
	}
}

func specCommand(f func(*Context, IndexSpec)) commandFunc {
	return func(ctx *Context, c Command) error {
		spec, err := ParseIndexSpec(c.arg(0))
		if err != nil {
			return err
		}
		f(ctx, spec)
		return nil
	}
}

// parseTags reads "all" or a comma separated list of 1-based tag
// numbers into a mask.
func (ctx *Context) parseTags(s string) (uint32, error) {
	if s == "all" {
		return AllTags, nil
	}
	var mask uint32
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(ctx.settings.Tags) {
			return 0, fmt.Errorf("%w: tag %q", ErrBadArgument, f)
		}
		mask |= 1 << (n - 1)
	}
	return mask, nil
}

// parseLayout accepts a layout table index, a symbol or a layout name.
func (ctx *Context) parseLayout(s string) (int, error) {
	lts := ctx.settings.Layouts
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(lts) {
			return 0, fmt.Errorf("%w: layout %d", ErrBadArgument, i)
		}
		return i, nil
	}
	for i, l := range lts {
		if l.Symbol == s {
			return i, nil
		}
	}
	k, err := ParseLayoutKind(s)
	if err != nil {
		return 0, err
	}
	for i, l := range lts {
		if l.Kind == k {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: layout %q not configured", ErrBadArgument, s)
}

// parseFact reads "+0.05" or "-0.05" as a delta and "=0.6" or a bare
// number as an absolute value.
func parseFact(s string) (f float64, absolute bool, err error) {
	absolute = true
	if rest, ok := strings.CutPrefix(s, "="); ok {
		s = rest
	} else if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		absolute = false
	}
	f, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: factor %q", ErrBadArgument, s)
	}
	return f, absolute, nil
}

// Exec runs cmd against the current state.
func (ctx *Context) Exec(cmd Command) error {
	f, ok := commands[cmd.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	ctx.log.Debug("exec", "cmd", cmd.String())
	return f(ctx, cmd)
}

// Spawn starts argv through the spawner.
func (ctx *Context) Spawn(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: nothing to spawn", ErrBadArgument)
	}
	if ctx.spawner == nil {
		return nil
	}
	return ctx.spawner.Spawn(argv)
}
