package core

// Action is a semantic game action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - move one lane left
	ActionRight          // Right arrow, D - move one lane right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R - restart the session
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P, Escape - pause/resume
	ActionMute           // M - toggle sound
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input of one simulation tick: the actions
// triggered, the grid cells selected and the lanes a second player dropped
// enemies into, each in press order.
type InputFrame struct {
	Actions map[Action]bool
	cells   []int
	drops   []int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// PressCell records a grid-cell selection (0-based).
func (f *InputFrame) PressCell(cell int) {
	if cell < 0 {
		return
	}
	f.cells = append(f.cells, cell)
}

// Cells returns the cells selected this frame, oldest first.
func (f InputFrame) Cells() []int {
	return f.cells
}

// Drop records a second-player drop into a lane (0-based).
func (f *InputFrame) Drop(lane int) {
	if lane < 0 {
		return
	}
	f.drops = append(f.drops, lane)
}

// Drops returns the lanes dropped into this frame, oldest first.
func (f InputFrame) Drops() []int {
	return f.drops
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.cells) == 0 && len(f.drops) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.cells = f.cells[:0]
	f.drops = f.drops[:0]
}
