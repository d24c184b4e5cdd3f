// Package proctree answers process ancestry questions from procfs.
package proctree

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Tree reads process information below Root, normally /proc.
type Tree struct {
	Root string
}

// New returns a Tree reading the system procfs.
func New() Tree { return Tree{Root: "/proc"} }

func (t Tree) read(pid int, name string) (string, bool) {
	if pid <= 0 {
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(t.Root, strconv.Itoa(pid), name))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Parent returns the parent pid of pid, or 0 when it cannot be read.
func (t Tree) Parent(pid int) int {
	stat, ok := t.read(pid, "stat")
	if !ok {
		return 0
	}
	// the command name may contain spaces and parentheses; fields
	// resume after the last ')'
	i := strings.LastIndexByte(stat, ')')
	if i < 0 {
		return 0
	}
	f := strings.Fields(stat[i+1:])
	if len(f) < 2 {
		return 0
	}
	ppid, err := strconv.Atoi(f[1])
	if err != nil {
		return 0
	}
	return ppid
}

// Command returns the short command name of pid, or "".
func (t Tree) Command(pid int) string {
	comm, ok := t.read(pid, "comm")
	if !ok {
		return ""
	}
	return strings.TrimSpace(comm)
}
