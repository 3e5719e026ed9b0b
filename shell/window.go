package shell

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/thomas-k-cameron/meru/api"
)

// doubleClickWindow is the maximum gap between two clicks for them to
// count as a double click.
const doubleClickWindow = 250 * time.Millisecond

// WindowOutput abstracts the window operations the reconciler drives,
// so geometry logic can be tested without a real window.
type WindowOutput interface {
	SetResolution(width, height int)
	SetFullscreen(enabled bool)
}

// ebitenWindow drives the real window.
type ebitenWindow struct{}

func (ebitenWindow) SetResolution(width, height int) {
	ebiten.SetWindowSize(width, height)
}

func (ebitenWindow) SetFullscreen(enabled bool) {
	ebiten.SetFullscreen(enabled)
}

// WindowReconciler keeps the window geometry consistent with the
// current mode: the menu uses its fixed intrinsic size, gameplay uses
// the core framebuffer times the integer scale factor. Fullscreen is
// borderless, covering the monitor regardless of resolution, so while
// fullscreen is active no resolution is applied; the windowed geometry
// is restored on the next reconcile after leaving fullscreen.
type WindowReconciler struct {
	out        WindowOutput
	menuWidth  int
	menuHeight int
	fullscreen bool
	lastClick  time.Time
}

// NewWindowReconciler creates a reconciler with the given menu
// intrinsic size and initial fullscreen state.
func NewWindowReconciler(out WindowOutput, menuWidth, menuHeight int, fullscreen bool) *WindowReconciler {
	w := &WindowReconciler{
		out:        out,
		menuWidth:  menuWidth,
		menuHeight: menuHeight,
		fullscreen: fullscreen,
	}
	if fullscreen {
		out.SetFullscreen(true)
	}
	return w
}

// Reconcile applies the window resolution for the given mode. Rewinding
// shows the same framebuffer as Running and uses the same geometry.
func (w *WindowReconciler) Reconcile(mode Mode, fb emucore.FrameSize, scale int) {
	if w.fullscreen {
		return
	}
	if mode == ModeMenu {
		w.out.SetResolution(w.menuWidth, w.menuHeight)
		return
	}
	w.out.SetResolution(fb.Width*scale, fb.Height*scale)
}

// SetFullscreen switches fullscreen on or off. Leaving fullscreen does
// not restore the windowed resolution here; the caller reconciles.
func (w *WindowReconciler) SetFullscreen(enabled bool) {
	if w.fullscreen == enabled {
		return
	}
	w.fullscreen = enabled
	w.out.SetFullscreen(enabled)
}

// ToggleFullscreen flips the fullscreen state.
func (w *WindowReconciler) ToggleFullscreen() {
	w.SetFullscreen(!w.fullscreen)
}

// IsFullscreen returns the tracked fullscreen state.
func (w *WindowReconciler) IsFullscreen() bool {
	return w.fullscreen
}

// Click registers a primary button press at the given time. A second
// click within the double-click window toggles fullscreen and reports
// true. The stored timestamp is then pushed a full second into the past
// so a third rapid click cannot pair with the second and toggle right
// back.
func (w *WindowReconciler) Click(now time.Time) bool {
	if now.Sub(w.lastClick) < doubleClickWindow {
		w.ToggleFullscreen()
		w.lastClick = now.Add(-time.Second)
		return true
	}
	w.lastClick = now
	return false
}
