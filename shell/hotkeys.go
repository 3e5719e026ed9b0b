package shell

import (
	"fmt"
	"log"
	"time"

	emucore "github.com/thomas-k-cameron/meru/api"
	"github.com/thomas-k-cameron/meru/shell/hotkey"
)

// processAction applies one dispatched hotkey event. Every action is
// guarded by its precondition; an action that doesn't meet it is
// ignored rather than erroring.
func (a *App) processAction(action hotkey.Action, now time.Time) {
	switch action {
	case hotkey.Reset:
		if a.session == nil {
			return
		}
		a.session.Reset()
		a.notifications.Show("Reset machine", now)

	case hotkey.StateSave:
		if a.session == nil {
			return
		}
		if err := a.session.SaveStateSlot(a.slot, a.stateCfg); err != nil {
			log.Printf("Failed to save state: %v", err)
			a.notifications.Show("Failed to save state", now)
			return
		}
		a.notifications.Show(fmt.Sprintf("State saved: #%d", a.slot), now)

	case hotkey.StateLoad:
		if a.session == nil {
			return
		}
		if err := a.session.LoadStateSlot(a.slot, a.stateCfg); err != nil {
			log.Printf("Failed to load state: %v", err)
			a.notifications.Show("Failed to load state", now)
			return
		}
		// The rewind history no longer leads to the current state
		if a.rewind != nil {
			a.rewind.Reset()
		}
		a.notifications.Show(fmt.Sprintf("State loaded: #%d", a.slot), now)

	case hotkey.NextSlot:
		a.slot++
		a.notifications.Show(fmt.Sprintf("State slot changed: #%d", a.slot), now)

	case hotkey.PrevSlot:
		if a.slot > 0 {
			a.slot--
		}
		a.notifications.Show(fmt.Sprintf("State slot changed: #%d", a.slot), now)

	case hotkey.Rewind:
		if a.modes.Current() != ModeRunning || a.session == nil ||
			a.saveStater == nil || a.rewind == nil {
			return
		}
		a.session.PushAutoSave()
		a.modes.Push(ModeRewinding)
		a.rewindHold = 0
		if a.audio != nil {
			a.audio.ClearQueue()
		}

	case hotkey.Menu:
		switch a.modes.Current() {
		case ModeRunning:
			a.modes.Replace(ModeMenu)
			// Drop buffered gameplay audio so it doesn't keep
			// playing over the menu
			if a.audio != nil {
				a.audio.ClearQueue()
			}
			a.reconcileWindow()
		case ModeMenu:
			if a.session != nil {
				a.modes.Replace(ModeRunning)
				a.reconcileWindow()
			}
		}
		// Rewinding handles its own exit keys

	case hotkey.FullScreen:
		a.window.ToggleFullscreen()
		a.reconcileWindow()

	case hotkey.ScaleUp:
		a.config.Scaling++
		a.reconcileWindow()

	case hotkey.ScaleDown:
		if a.config.Scaling > 1 {
			a.config.Scaling--
		}
		a.reconcileWindow()
	}
}

// reconcileWindow re-applies window geometry for the current mode and
// scale. Call after any mode, scale, or fullscreen change.
func (a *App) reconcileWindow() {
	var fb emucore.FrameSize
	if a.session != nil {
		fb = a.session.FrameBufferSize()
	}
	a.window.Reconcile(a.modes.Current(), fb, a.config.Scaling)
}
