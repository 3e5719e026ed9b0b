package hotkey

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// axisThreshold is the magnitude past which an analog axis reads as held.
// Matches the gameplay analog stick threshold.
const axisThreshold = 0.25

// AxisDirection selects which half of an analog axis range counts as held.
type AxisDirection int

const (
	AxisPositive AxisDirection = iota
	AxisNegative
)

// PadButton identifies one button on one gamepad.
type PadButton struct {
	Pad    int
	Button ebiten.StandardGamepadButton
}

// PadAxis identifies one analog axis on one gamepad.
type PadAxis struct {
	Pad  int
	Axis ebiten.StandardGamepadAxis
}

// Snapshot is the raw state of every input device class at one tick.
// It is pure data, rebuilt from the host input layer every tick.
// Devices that are absent simply have no entries, so every predicate
// against them reads as not held.
type Snapshot struct {
	Keys       map[ebiten.Key]bool
	PadButtons map[PadButton]bool
	PadAxes    map[PadAxis]float64
}

// NewSnapshot returns an empty snapshot with allocated maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Keys:       make(map[ebiten.Key]bool),
		PadButtons: make(map[PadButton]bool),
		PadAxes:    make(map[PadAxis]float64),
	}
}

// SetKey marks a keyboard key as held.
func (s *Snapshot) SetKey(k ebiten.Key) {
	s.Keys[k] = true
}

// SetPadButton marks a gamepad button as held.
func (s *Snapshot) SetPadButton(pad int, b ebiten.StandardGamepadButton) {
	s.PadButtons[PadButton{Pad: pad, Button: b}] = true
}

// SetPadAxis records an analog axis value in [-1, 1].
func (s *Snapshot) SetPadAxis(pad int, a ebiten.StandardGamepadAxis, v float64) {
	s.PadAxes[PadAxis{Pad: pad, Axis: a}] = v
}

// Node is one node of a binding tree: a leaf predicate over a single
// device input, or an All/Any combinator over child nodes. Trees are
// finite and strictly owned; once built they are not mutated.
type Node interface {
	// Held reports whether the node's condition holds in s.
	Held(s *Snapshot) bool

	encode() nodeJSON
}

// JustPressed reports whether the tree transitioned from not-held to
// held between the two snapshots. The transition is computed on the
// whole tree, not per leaf: a conjunction fires only on the tick its
// last required leaf becomes held, and a disjunction fires only when
// the tree as a whole goes from all-false to at-least-one-true.
// Diffing children's individual edges instead would re-fire when keys
// are released out of order.
func JustPressed(n Node, prev, cur *Snapshot) bool {
	return n.Held(cur) && !n.Held(prev)
}

type keyNode struct {
	key ebiten.Key
}

func (n keyNode) Held(s *Snapshot) bool {
	return s.Keys[n.key]
}

type padButtonNode struct {
	pad    int
	button ebiten.StandardGamepadButton
}

func (n padButtonNode) Held(s *Snapshot) bool {
	return s.PadButtons[PadButton{Pad: n.pad, Button: n.button}]
}

type padAxisNode struct {
	pad  int
	axis ebiten.StandardGamepadAxis
	dir  AxisDirection
}

func (n padAxisNode) Held(s *Snapshot) bool {
	v := s.PadAxes[PadAxis{Pad: n.pad, Axis: n.axis}]
	if n.dir == AxisNegative {
		return v < -axisThreshold
	}
	return v > axisThreshold
}

type allNode struct {
	children []Node
}

func (n allNode) Held(s *Snapshot) bool {
	for _, c := range n.children {
		if !c.Held(s) {
			return false
		}
	}
	return true
}

type anyNode struct {
	children []Node
}

func (n anyNode) Held(s *Snapshot) bool {
	for _, c := range n.children {
		if c.Held(s) {
			return true
		}
	}
	return false
}

// Key builds a leaf that holds while the keyboard key is pressed.
func Key(k ebiten.Key) Node {
	return keyNode{key: k}
}

// Button builds a leaf that holds while a gamepad button is pressed.
func Button(pad int, b ebiten.StandardGamepadButton) Node {
	return padButtonNode{pad: pad, button: b}
}

// Axis builds a leaf that holds while an analog axis is deflected past
// the threshold in the given direction.
func Axis(pad int, a ebiten.StandardGamepadAxis, dir AxisDirection) Node {
	return padAxisNode{pad: pad, axis: a, dir: dir}
}

// All builds a conjunction: held only while every child is held.
func All(children ...Node) Node {
	return allNode{children: children}
}

// Any builds a disjunction: held while at least one child is held.
func Any(children ...Node) Node {
	return anyNode{children: children}
}
