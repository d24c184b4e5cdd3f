package core

import (
	"strconv"
	"strings"
)

const signalPrefix = "fsignal:"

// RootNameChanged handles a new root window name. "fsignal:<n>" runs
// the command bound to signal n; any other name becomes the status
// text. It reports whether the name was a signal.
func (ctx *Context) RootNameChanged(name string) bool {
	rest, ok := strings.CutPrefix(name, signalPrefix)
	if !ok || rest == "" {
		ctx.status = name
		return false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		ctx.status = name
		return false
	}
	cmd, ok := ctx.settings.Signals[n]
	if !ok {
		ctx.log.Warn("unbound signal", "signal", n)
		return true
	}
	if err := ctx.Exec(cmd); err != nil {
		ctx.log.Error("signal", "signal", n, "cmd", cmd.String(), "err", err)
	}
	return true
}
