package hotkey

import "github.com/hajimehoshi/ebiten/v2"

// Entry pairs an action with its binding tree.
type Entry struct {
	Action Action
	Bind   Node
}

// Bindings is an ordered list of (action, binding) pairs. Actions with
// no entry fall back to their default binding on lookup. A user
// override replaces the default for that action entirely; defaults and
// overrides are never merged.
type Bindings []Entry

// Lookup returns the binding tree for an action, falling back to the
// default when the action has no entry.
func (b Bindings) Lookup(a Action) Node {
	for _, e := range b {
		if e.Action == a && e.Bind != nil {
			return e.Bind
		}
	}
	return defaultBinding(a)
}

// Set replaces the binding for an action, appending when absent.
func (b Bindings) Set(a Action, n Node) Bindings {
	for i, e := range b {
		if e.Action == a {
			b[i].Bind = n
			return b
		}
	}
	return append(b, Entry{Action: a, Bind: n})
}

// DefaultBindings returns the full default binding list, one entry per
// action, in the canonical action order.
func DefaultBindings() Bindings {
	out := make(Bindings, 0, len(Actions))
	for _, a := range Actions {
		out = append(out, Entry{Action: a, Bind: defaultBinding(a)})
	}
	return out
}

// defaultBinding returns the built-in binding tree for an action.
// Multi-key chords use All, alternate triggers use Any.
func defaultBinding(a Action) Node {
	ctrl := func() Node { return Key(ebiten.KeyControlLeft) }

	switch a {
	case Reset:
		return All(ctrl(), Key(ebiten.KeyR))
	case Turbo:
		return Any(
			Key(ebiten.KeyTab),
			Button(0, ebiten.StandardGamepadButtonFrontBottomLeft),
		)
	case StateSave:
		return All(ctrl(), Key(ebiten.KeyS))
	case StateLoad:
		return All(ctrl(), Key(ebiten.KeyL))
	case NextSlot:
		return All(ctrl(), Key(ebiten.KeyN))
	case PrevSlot:
		return All(ctrl(), Key(ebiten.KeyP))
	case Rewind:
		// Backspace, or both bottom shoulder triggers on pad 0.
		return Any(
			Key(ebiten.KeyBackspace),
			All(
				Button(0, ebiten.StandardGamepadButtonFrontBottomLeft),
				Button(0, ebiten.StandardGamepadButtonFrontBottomRight),
			),
		)
	case Menu:
		return Key(ebiten.KeyEscape)
	case FullScreen:
		return All(Key(ebiten.KeyAltRight), Key(ebiten.KeyEnter))
	case ScaleUp:
		return All(ctrl(), Any(Key(ebiten.KeyEqual), Key(ebiten.KeyNumpadAdd)))
	case ScaleDown:
		return All(ctrl(), Key(ebiten.KeyMinus))
	default:
		return nil
	}
}
