package hotkey

// Dispatcher turns per-tick snapshot deltas into discrete action
// events. Every action except Turbo is edge-triggered: it fires once
// on the tick its binding tree transitions to held, and not again
// until the tree is fully released and re-pressed. Turbo is a level:
// the dispatcher reports whether its binding is currently held, every
// tick, with no edge semantics.
type Dispatcher struct {
	prev Snapshot
}

// NewDispatcher returns a dispatcher with an empty previous snapshot,
// so anything held on the very first tick counts as just pressed.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{prev: *NewSnapshot()}
}

// Tick evaluates every action against the previous and current
// snapshots. It returns the actions that fired this tick (at most one
// event per action) and the Turbo level state. The dispatcher retains
// cur as the previous snapshot for the next tick; callers must build a
// fresh snapshot every tick and not mutate it afterwards.
func (d *Dispatcher) Tick(cur *Snapshot, bindings Bindings) (fired []Action, turbo bool) {
	for _, a := range Actions {
		n := bindings.Lookup(a)
		if n == nil {
			continue
		}

		if a == Turbo {
			turbo = n.Held(cur)
			continue
		}

		if JustPressed(n, &d.prev, cur) {
			fired = append(fired, a)
		}
	}

	d.prev = *cur
	return fired, turbo
}
