package hotkey

import (
	"encoding/json"
	"fmt"
)

// nodeJSON is the wire form of a binding tree node. Exactly one of the
// leaf forms (key / pad+button / pad+axis+dir) or combinator forms
// (all / any) is populated per node:
//
//	{"key": "R"}
//	{"pad": 0, "button": "L2"}
//	{"pad": 0, "axis": "LeftStickX", "dir": "+"}
//	{"all": [ ... ]}
//	{"any": [ ... ]}
type nodeJSON struct {
	Key    string     `json:"key,omitempty"`
	Pad    *int       `json:"pad,omitempty"`
	Button string     `json:"button,omitempty"`
	Axis   string     `json:"axis,omitempty"`
	Dir    string     `json:"dir,omitempty"`
	All    []nodeJSON `json:"all,omitempty"`
	Any    []nodeJSON `json:"any,omitempty"`
}

type entryJSON struct {
	Action string   `json:"action"`
	Bind   nodeJSON `json:"bind"`
}

func (n keyNode) encode() nodeJSON {
	name, _ := KeyToName(n.key)
	return nodeJSON{Key: name}
}

func (n padButtonNode) encode() nodeJSON {
	pad := n.pad
	name, _ := PadToName(n.button)
	return nodeJSON{Pad: &pad, Button: name}
}

func (n padAxisNode) encode() nodeJSON {
	pad := n.pad
	name, _ := AxisToName(n.axis)
	dir := "+"
	if n.dir == AxisNegative {
		dir = "-"
	}
	return nodeJSON{Pad: &pad, Axis: name, Dir: dir}
}

func (n allNode) encode() nodeJSON {
	children := make([]nodeJSON, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c.encode())
	}
	return nodeJSON{All: children}
}

func (n anyNode) encode() nodeJSON {
	children := make([]nodeJSON, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c.encode())
	}
	return nodeJSON{Any: children}
}

// decodeNode rebuilds a binding tree from its wire form. Unknown key,
// button, axis, or direction names are errors so a corrupted config is
// rejected as a whole rather than silently dropping leaves.
func decodeNode(n nodeJSON) (Node, error) {
	switch {
	case n.Key != "":
		k, ok := ParseKey(n.Key)
		if !ok {
			return nil, fmt.Errorf("unknown key name %q", n.Key)
		}
		return Key(k), nil

	case n.Button != "":
		if n.Pad == nil {
			return nil, fmt.Errorf("button %q missing pad index", n.Button)
		}
		b, ok := ParsePad(n.Button)
		if !ok {
			return nil, fmt.Errorf("unknown pad button name %q", n.Button)
		}
		return Button(*n.Pad, b), nil

	case n.Axis != "":
		if n.Pad == nil {
			return nil, fmt.Errorf("axis %q missing pad index", n.Axis)
		}
		a, ok := ParseAxis(n.Axis)
		if !ok {
			return nil, fmt.Errorf("unknown pad axis name %q", n.Axis)
		}
		var dir AxisDirection
		switch n.Dir {
		case "+":
			dir = AxisPositive
		case "-":
			dir = AxisNegative
		default:
			return nil, fmt.Errorf("axis %q has invalid direction %q", n.Axis, n.Dir)
		}
		return Axis(*n.Pad, a, dir), nil

	case n.All != nil:
		children, err := decodeNodes(n.All)
		if err != nil {
			return nil, err
		}
		return All(children...), nil

	case n.Any != nil:
		children, err := decodeNodes(n.Any)
		if err != nil {
			return nil, err
		}
		return Any(children...), nil

	default:
		return nil, fmt.Errorf("binding node has no recognized form")
	}
}

func decodeNodes(ns []nodeJSON) ([]Node, error) {
	out := make([]Node, 0, len(ns))
	for _, n := range ns {
		c, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MarshalJSON encodes the bindings as an ordered list of
// {"action": name, "bind": node} pairs.
func (b Bindings) MarshalJSON() ([]byte, error) {
	entries := make([]entryJSON, 0, len(b))
	for _, e := range b {
		if e.Bind == nil {
			continue
		}
		entries = append(entries, entryJSON{
			Action: e.Action.Name(),
			Bind:   e.Bind.encode(),
		})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an ordered list of (action, bind) pairs.
// Actions absent from the list keep their defaults via Lookup.
func (b *Bindings) UnmarshalJSON(data []byte) error {
	var entries []entryJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	out := make(Bindings, 0, len(entries))
	for _, e := range entries {
		a, ok := ParseAction(e.Action)
		if !ok {
			return fmt.Errorf("unknown action %q", e.Action)
		}
		n, err := decodeNode(e.Bind)
		if err != nil {
			return fmt.Errorf("action %q: %w", e.Action, err)
		}
		out = append(out, Entry{Action: a, Bind: n})
	}

	*b = out
	return nil
}
