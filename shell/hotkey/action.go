package hotkey

// Action is one of the shell's logical hotkey actions. The set is
// closed; every action is evaluated every tick.
type Action int

const (
	Reset Action = iota
	Turbo
	StateSave
	StateLoad
	NextSlot
	PrevSlot
	Rewind
	Menu
	FullScreen
	ScaleUp
	ScaleDown
)

// Actions lists every action in a stable order. Dispatch iterates this
// exhaustively each tick.
var Actions = []Action{
	Reset,
	Turbo,
	StateSave,
	StateLoad,
	NextSlot,
	PrevSlot,
	Rewind,
	Menu,
	FullScreen,
	ScaleUp,
	ScaleDown,
}

// actionNames maps actions to the stable identifiers used in config files.
var actionNames = map[Action]string{
	Reset:      "Reset",
	Turbo:      "Turbo",
	StateSave:  "StateSave",
	StateLoad:  "StateLoad",
	NextSlot:   "NextSlot",
	PrevSlot:   "PrevSlot",
	Rewind:     "Rewind",
	Menu:       "Menu",
	FullScreen: "FullScreen",
	ScaleUp:    "ScaleUp",
	ScaleDown:  "ScaleDown",
}

var namesToAction map[string]Action

func init() {
	namesToAction = make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		namesToAction[name] = a
	}
}

// Name returns the stable config-file identifier for the action.
func (a Action) Name() string {
	return actionNames[a]
}

// ParseAction converts a config-file identifier back to an Action.
func ParseAction(name string) (Action, bool) {
	a, ok := namesToAction[name]
	return a, ok
}

// String returns the display label for the action.
func (a Action) String() string {
	switch a {
	case Reset:
		return "Reset"
	case Turbo:
		return "Turbo"
	case StateSave:
		return "State Save"
	case StateLoad:
		return "State Load"
	case NextSlot:
		return "State Slot Next"
	case PrevSlot:
		return "State Slot Prev"
	case Rewind:
		return "Start Rewinding"
	case Menu:
		return "Enter/Leave Menu"
	case FullScreen:
		return "Fullscreen"
	case ScaleUp:
		return "Window Scale +"
	case ScaleDown:
		return "Window Scale -"
	default:
		return "Unknown"
	}
}
