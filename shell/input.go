package shell

import (
	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/thomas-k-cameron/meru/api"
	"github.com/thomas-k-cameron/meru/shell/hotkey"
)

// InputMapping maps button bit IDs to ebiten input types.
// Keyed by the Button.ID (bit position in the uint32 bitmask).
type InputMapping struct {
	Keys    map[int]ebiten.Key                   // bit ID -> keyboard key
	Gamepad map[int]ebiten.StandardGamepadButton // bit ID -> gamepad button
}

// D-pad defaults: WASD on the keyboard, the d-pad on a controller.
var dpadButtons = []struct {
	Name       string
	BitID      int
	DefaultKey string
	DefaultPad string
}{
	{"Up", emucore.ButtonUp, "W", "DpadUp"},
	{"Down", emucore.ButtonDown, "S", "DpadDown"},
	{"Left", emucore.ButtonLeft, "A", "DpadLeft"},
	{"Right", emucore.ButtonRight, "D", "DpadRight"},
}

// BuildDefaultMapping creates an InputMapping from the core's button
// definitions: D-pad defaults plus the core's own buttons.
func BuildDefaultMapping(buttons []emucore.Button) InputMapping {
	m := InputMapping{
		Keys:    make(map[int]ebiten.Key),
		Gamepad: make(map[int]ebiten.StandardGamepadButton),
	}

	for _, dp := range dpadButtons {
		if k, ok := hotkey.ParseKey(dp.DefaultKey); ok {
			m.Keys[dp.BitID] = k
		}
		if b, ok := hotkey.ParsePad(dp.DefaultPad); ok {
			m.Gamepad[dp.BitID] = b
		}
	}

	for _, btn := range buttons {
		if btn.DefaultKey != "" {
			if k, ok := hotkey.ParseKey(btn.DefaultKey); ok {
				m.Keys[btn.ID] = k
			}
		}
		if btn.DefaultPad != "" {
			if b, ok := hotkey.ParsePad(btn.DefaultPad); ok {
				m.Gamepad[btn.ID] = b
			}
		}
	}

	return m
}

// PollButtons reads P1 input from keyboard and gamepad (including
// D-pad and analog stick) and returns the button bitmask for the core.
func PollButtons(mapping InputMapping, gamepadID ebiten.GamepadID, hasGamepad bool) uint32 {
	var buttons uint32

	for bitID, key := range mapping.Keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << uint(bitID)
		}
	}

	if !hasGamepad {
		return buttons
	}

	for bitID, padBtn := range mapping.Gamepad {
		if ebiten.IsStandardGamepadButtonPressed(gamepadID, padBtn) {
			buttons |= 1 << uint(bitID)
		}
	}

	pollAnalogStick(&buttons, mapping, gamepadID)

	return buttons
}

// PollGamepadButtons reads input for players beyond the first from the
// gamepad only; the keyboard belongs to player one.
func PollGamepadButtons(mapping InputMapping, gamepadID ebiten.GamepadID) uint32 {
	var buttons uint32

	for bitID, padBtn := range mapping.Gamepad {
		if ebiten.IsStandardGamepadButtonPressed(gamepadID, padBtn) {
			buttons |= 1 << uint(bitID)
		}
	}

	pollAnalogStick(&buttons, mapping, gamepadID)

	return buttons
}

// pollAnalogStick reads the left analog stick and sets the same bit IDs
// that the d-pad buttons are mapped to, so the stick follows any d-pad
// remapping.
func pollAnalogStick(buttons *uint32, mapping InputMapping, gamepadID ebiten.GamepadID) {
	axisX := ebiten.StandardGamepadAxisValue(gamepadID, ebiten.StandardGamepadAxisLeftStickHorizontal)
	axisY := ebiten.StandardGamepadAxisValue(gamepadID, ebiten.StandardGamepadAxisLeftStickVertical)

	for bitID, padBtn := range mapping.Gamepad {
		switch padBtn {
		case ebiten.StandardGamepadButtonLeftLeft:
			if axisX < -0.25 {
				*buttons |= 1 << uint(bitID)
			}
		case ebiten.StandardGamepadButtonLeftRight:
			if axisX > 0.25 {
				*buttons |= 1 << uint(bitID)
			}
		case ebiten.StandardGamepadButtonLeftTop:
			if axisY < -0.25 {
				*buttons |= 1 << uint(bitID)
			}
		case ebiten.StandardGamepadButtonLeftBottom:
			if axisY > 0.25 {
				*buttons |= 1 << uint(bitID)
			}
		}
	}
}

// pollSnapshot captures the full input state for hotkey evaluation:
// every pressed keyboard key, plus all standard buttons and axes of
// every connected gamepad. Pad indices in binding trees are positions
// in the connected-gamepad list, not ebiten's internal IDs.
func pollSnapshot(gamepadIDs []ebiten.GamepadID) *hotkey.Snapshot {
	snap := hotkey.NewSnapshot()

	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if ebiten.IsKeyPressed(k) {
			snap.SetKey(k)
		}
	}

	for pad, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				snap.SetPadButton(pad, b)
			}
		}
		for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
			snap.SetPadAxis(pad, a, ebiten.StandardGamepadAxisValue(id, a))
		}
	}

	return snap
}
