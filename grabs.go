package main

import (
	"errors"
	"os/exec"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/charmbracelet/log"

	"github.com/intio/tagwm/internal/core"
)

// ignoredMods are the lock modifiers a binding fires under as well.
// Num Lock is assumed to live on Mod2.
var ignoredMods = []uint16{
	0,
	xproto.ModMaskLock,
	xproto.ModMask2,
	xproto.ModMaskLock | xproto.ModMask2,
}

// cleanMask strips lock and button state from an event's modifiers.
func cleanMask(state uint16) uint16 {
	return state & (xproto.ModMaskShift | xproto.ModMaskControl |
		xproto.ModMask1 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5)
}

// modMask parses a modifier name such as "Mod4".
func modMask(X *xgbutil.XUtil, name string) (uint16, error) {
	mods, _, err := mousebind.ParseString(X, name+"-1")
	if err != nil {
		return 0, err
	}
	if mods == 0 {
		return 0, errors.New("mod_key: no modifier in " + name)
	}
	return mods, nil
}

// keyGrab is a grabbed key and the command it runs.
type keyGrab struct {
	mods uint16
	code xproto.Keycode
	key  string
	cmd  core.Command
}

// grabKeys (re)grabs the binding table on the root window. It runs
// again whenever the keyboard mapping changes.
func (wm *WM) grabKeys() {
	root := wm.xroot.Root
	xproto.UngrabKey(wm.xc, xproto.GrabAny, root, xproto.ModMaskAny)
	wm.keys = wm.keys[:0]
	for _, b := range wm.bindings {
		mods, codes, err := keybind.ParseString(wm.X, b.Key)
		if err != nil {
			wm.log.Warn("unusable key binding", "key", b.Key, "err", err)
			continue
		}
		for _, code := range codes {
			for _, extra := range ignoredMods {
				xproto.GrabKey(wm.xc, true, root, mods|extra, code,
					xproto.GrabModeAsync, xproto.GrabModeAsync)
			}
			wm.keys = append(wm.keys, keyGrab{mods: mods, code: code, key: b.Key, cmd: b.Cmd})
		}
	}
	wm.log.Debug("grabbed keys", "bindings", len(wm.bindings), "grabs", len(wm.keys))
}

func (wm *WM) refreshKeyboard() {
	keyMap, modMap := keybind.MapsGet(wm.X)
	keybind.KeyMapSet(wm.X, keyMap)
	keybind.ModMapSet(wm.X, modMap)
	wm.grabKeys()
}

// runKey executes the command bound to a key press, if any.
func (wm *WM) runKey(e xproto.KeyPressEvent) {
	state := cleanMask(e.State)
	for _, k := range wm.keys {
		if k.code != e.Detail || k.mods != state {
			continue
		}
		err := wm.ctx.Exec(k.cmd)
		if err != nil {
			wm.log.Warn("key binding", "key", k.key, "cmd", k.cmd.String(), "err", err)
		}
		wm.hub.Publish(commandEvent(k.cmd, err))
	}
}

// runButton handles the mod key button bindings on clients: move,
// toggle floating and resize.
func (wm *WM) runButton(c *core.Client, e xproto.ButtonPressEvent) bool {
	if c == nil || cleanMask(e.State) != wm.placer.modMask {
		return false
	}
	switch xproto.Button(e.Detail) {
	case xproto.ButtonIndex1:
		wm.drag(c, false)
	case xproto.ButtonIndex2:
		wm.ctx.ToggleFloating()
	case xproto.ButtonIndex3:
		wm.drag(c, true)
	default:
		return false
	}
	return true
}

// execSpawner starts commands in their own session and reaps them in
// the background.
type execSpawner struct {
	log *log.Logger
}

func (s execSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return errors.New("spawn: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	s.log.Debug("spawned", "argv", argv, "pid", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.Debug("child exited", "argv", argv[0], "err", err)
		}
	}()
	return nil
}
