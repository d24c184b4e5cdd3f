package core

// Scheme selects the border colour of a client.
type Scheme int

const (
	SchemeNorm Scheme = iota
	SchemeSel
)

// StackMode is a relative stacking directive.
type StackMode int

const (
	// StackAbove places the window directly above the sibling, or on
	// top of everything when the sibling is zero.
	StackAbove StackMode = iota
	// StackBelow places the window directly below the sibling.
	StackBelow
	// StackTopIf raises the window if the sibling occludes it.
	StackTopIf
)

func (m StackMode) String() string {
	switch m {
	case StackAbove:
		return "above"
	case StackBelow:
		return "below"
	case StackTopIf:
		return "topif"
	}
	return "unknown"
}

// WMState mirrors the ICCCM WM_STATE values.
type WMState int

const (
	WithdrawnState WMState = 0
	NormalState    WMState = 1
)

// Placer applies the engine's decisions to real windows. All methods are
// fire-and-forget: failures belong to the windowing side and are never
// reported back.
type Placer interface {
	// Configure sets position, size and border width and tells the
	// client about it.
	Configure(w Window, r Rect, bw int)
	// NotifyConfigure sends a synthetic ConfigureNotify without moving
	// the window.
	NotifyConfigure(w Window, r Rect, bw int)
	Move(w Window, x, y int)
	MoveResize(w Window, r Rect)
	SetBorderWidth(w Window, bw int)
	SetBorder(w Window, s Scheme)
	Restack(w, sibling Window, mode StackMode)

	Map(w Window)
	Unmap(w Window)
	SetState(w Window, s WMState)
	SetFullscreen(w Window, on bool)
	SetUrgent(w Window, on bool)
	SetDesktop(w Window, tag int)
	SetCurrentDesktop(tag int)
	SetClientList(ws []Window)

	GrabButtons(w Window, focused bool)
	// Focus gives the window input focus unless input is false, and
	// offers WM_TAKE_FOCUS either way.
	Focus(w Window, input bool)
	// FocusRoot reverts focus to the root window and clears the active
	// window property.
	FocusRoot()
	// Warp moves the pointer to (x, y) relative to w, or to root
	// coordinates when w is zero.
	Warp(w Window, x, y int)
	// Close asks the client to close, killing it if it does not speak
	// WM_DELETE_WINDOW.
	Close(w Window)
}

// Spawner launches detached processes.
type Spawner interface {
	Spawn(argv []string) error
}

// ProcessTree answers questions about process ancestry.
type ProcessTree interface {
	// Parent returns the parent pid, or 0 when unknown.
	Parent(pid int) int
	// Command returns the short command name of pid, or "".
	Command(pid int) string
}
