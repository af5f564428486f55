package core

// Action is what the player asked for, independent of the key pressed.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect  // pick up or drop a gem
	ActionConfirm // menus
	ActionBack    // drop the picked gem; leave when paused or finished
	ActionHint
	ActionRestart // only honored after game over
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Select", "Confirm",
	"Back", "Hint", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf returns a frame holding the given actions.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func (f *InputFrame) Set(a Action) {
	if a < actionCount {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.bits == 0
}

func (f *InputFrame) Clear() {
	f.bits = 0
}
