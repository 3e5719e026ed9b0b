package shell

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/thomas-k-cameron/meru/shell/hotkey"
	"github.com/thomas-k-cameron/meru/shell/storage"
)

// newTestApp builds an app with fakes instead of a real window, audio
// device, or core. A non-nil session starts in Running mode.
func newTestApp(session *fakeSession, stater *fakeStater) *App {
	app := &App{
		config:        storage.DefaultConfig(),
		modes:         NewModeStack(),
		notifications: NewNotificationQueue(),
	}
	app.window = NewWindowReconciler(&fakeWindow{}, MenuWidth, MenuHeight, false)
	if session != nil {
		app.session = session
		app.modes.Replace(ModeRunning)
	}
	if stater != nil {
		app.saveStater = stater
		app.rewind = NewRewindBuffer(1, 1, 1024)
	}
	return app
}

func lastNotification(t *testing.T, app *App) string {
	t.Helper()
	if app.notifications.Len() == 0 {
		t.Fatal("expected a notification")
	}
	return app.notifications.notices[app.notifications.Len()-1].message
}

func TestSlotSaturatesAtZero(t *testing.T) {
	app := newTestApp(&fakeSession{}, nil)
	now := time.Now()

	app.processAction(hotkey.PrevSlot, now)
	if app.slot != 0 {
		t.Errorf("slot = %d after PrevSlot from 0, want 0", app.slot)
	}

	app.processAction(hotkey.NextSlot, now)
	app.processAction(hotkey.PrevSlot, now)
	if app.slot != 0 {
		t.Errorf("slot = %d after NextSlot+PrevSlot, want 0", app.slot)
	}

	app.processAction(hotkey.NextSlot, now)
	app.processAction(hotkey.NextSlot, now)
	if app.slot != 2 {
		t.Errorf("slot = %d after two NextSlot, want 2", app.slot)
	}
	if got := lastNotification(t, app); got != "State slot changed: #2" {
		t.Errorf("notification = %q", got)
	}
}

func TestScaleClampedAtOneNoCeiling(t *testing.T) {
	app := newTestApp(&fakeSession{}, nil)
	now := time.Now()

	app.config.Scaling = 1
	app.processAction(hotkey.ScaleDown, now)
	if app.config.Scaling != 1 {
		t.Errorf("scaling = %d after ScaleDown from 1, want 1", app.config.Scaling)
	}

	for i := 0; i < 49; i++ {
		app.processAction(hotkey.ScaleUp, now)
	}
	if app.config.Scaling != 50 {
		t.Errorf("scaling = %d after 49 increments, want 50", app.config.Scaling)
	}
}

func TestScaleChangeResizesWindow(t *testing.T) {
	out := &fakeWindow{}
	session := &fakeSession{}
	app := newTestApp(session, nil)
	app.window = NewWindowReconciler(out, MenuWidth, MenuHeight, false)
	app.config.Scaling = 2

	app.processAction(hotkey.ScaleUp, time.Now())

	fb := session.FrameBufferSize()
	if out.width != fb.Width*3 || out.height != fb.Height*3 {
		t.Errorf("resolution = %dx%d, want %dx%d", out.width, out.height, fb.Width*3, fb.Height*3)
	}
}

func TestRewindPushesOnceFromRunningOnly(t *testing.T) {
	session := &fakeSession{}
	app := newTestApp(session, &fakeStater{})
	now := time.Now()

	app.processAction(hotkey.Rewind, now)
	if app.modes.Current() != ModeRewinding {
		t.Fatalf("mode = %v, want Rewinding", app.modes.Current())
	}
	if session.autoSaves != 1 {
		t.Errorf("autoSaves = %d, want 1", session.autoSaves)
	}

	// Already rewinding: no second push, no second auto save
	app.processAction(hotkey.Rewind, now)
	if app.modes.Depth() != 2 || session.autoSaves != 1 {
		t.Errorf("depth = %d autoSaves = %d after repeat, want 2 and 1", app.modes.Depth(), session.autoSaves)
	}

	// From the menu: no effect
	menuApp := newTestApp(nil, nil)
	menuApp.processAction(hotkey.Rewind, now)
	if menuApp.modes.Current() != ModeMenu {
		t.Errorf("mode = %v after Rewind in menu, want Menu", menuApp.modes.Current())
	}
}

func TestRewindRequiresSaveStater(t *testing.T) {
	session := &fakeSession{}
	app := newTestApp(session, nil) // no stater, no rewind buffer

	app.processAction(hotkey.Rewind, time.Now())
	if app.modes.Current() != ModeRunning || session.autoSaves != 0 {
		t.Errorf("mode = %v autoSaves = %d, want Running and 0", app.modes.Current(), session.autoSaves)
	}
}

func TestMenuTogglesRunning(t *testing.T) {
	app := newTestApp(&fakeSession{}, nil)
	now := time.Now()

	app.processAction(hotkey.Menu, now)
	if app.modes.Current() != ModeMenu {
		t.Fatalf("mode = %v, want Menu", app.modes.Current())
	}
	app.processAction(hotkey.Menu, now)
	if app.modes.Current() != ModeRunning {
		t.Fatalf("mode = %v, want Running", app.modes.Current())
	}

	// Without a session the menu has nothing to return to
	empty := newTestApp(nil, nil)
	empty.processAction(hotkey.Menu, now)
	if empty.modes.Current() != ModeMenu {
		t.Errorf("mode = %v without session, want Menu", empty.modes.Current())
	}
}

func TestMenuEntryFlushesAudio(t *testing.T) {
	app := newTestApp(&fakeSession{}, nil)
	// Ring buffer only; ClearQueue never touches the device
	app.audio = &AudioPlayer{
		ringBuffer: NewAudioRingBuffer(256),
		audioBytes: make([]byte, 0, 64),
	}
	app.audio.QueueSamples([]int16{1, 2, 3, 4})
	if app.audio.ringBuffer.Buffered() == 0 {
		t.Fatal("expected queued audio before entering the menu")
	}

	app.processAction(hotkey.Menu, time.Now())

	if app.modes.Current() != ModeMenu {
		t.Fatalf("mode = %v, want Menu", app.modes.Current())
	}
	if got := app.audio.ringBuffer.Buffered(); got != 0 {
		t.Errorf("buffered bytes = %d after entering menu, want 0", got)
	}
}

func TestResetNotifies(t *testing.T) {
	session := &fakeSession{}
	app := newTestApp(session, nil)

	app.processAction(hotkey.Reset, time.Now())
	if session.resets != 1 {
		t.Errorf("resets = %d, want 1", session.resets)
	}
	if got := lastNotification(t, app); got != "Reset machine" {
		t.Errorf("notification = %q", got)
	}

	// No session: silently ignored
	empty := newTestApp(nil, nil)
	empty.processAction(hotkey.Reset, time.Now())
	if empty.notifications.Len() != 0 {
		t.Error("expected no notification without a session")
	}
}

func TestStateSaveUsesCurrentSlot(t *testing.T) {
	session := &fakeSession{}
	app := newTestApp(session, nil)
	now := time.Now()

	app.processAction(hotkey.NextSlot, now)
	app.processAction(hotkey.StateSave, now)

	if session.lastSlot != 1 {
		t.Errorf("lastSlot = %d, want 1", session.lastSlot)
	}
	if got := lastNotification(t, app); got != "State saved: #1" {
		t.Errorf("notification = %q", got)
	}
}

func TestStateLoadFailureLeavesStateUntouched(t *testing.T) {
	session := &fakeSession{loadErr: errors.New("slot file corrupt")}
	app := newTestApp(session, &fakeStater{})
	app.slot = 3

	var logBuf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logBuf)
	defer log.SetOutput(prev)

	app.processAction(hotkey.StateLoad, time.Now())

	if app.modes.Current() != ModeRunning {
		t.Errorf("mode = %v, want Running", app.modes.Current())
	}
	if app.slot != 3 {
		t.Errorf("slot = %d, want 3", app.slot)
	}
	if app.notifications.Len() != 1 {
		t.Fatalf("notifications = %d, want 1", app.notifications.Len())
	}
	if got := lastNotification(t, app); got != "Failed to load state" {
		t.Errorf("notification = %q", got)
	}
	logged := logBuf.String()
	if !strings.Contains(logged, "slot file corrupt") {
		t.Errorf("log output %q missing the underlying error", logged)
	}
	if n := strings.Count(logged, "\n"); n != 1 {
		t.Errorf("log lines = %d, want 1", n)
	}
}

func TestStateLoadSuccessClearsRewindHistory(t *testing.T) {
	session := &fakeSession{}
	stater := &fakeStater{}
	app := newTestApp(session, stater)

	for i := 0; i < 5; i++ {
		if err := app.rewind.Capture(stater); err != nil {
			t.Fatal(err)
		}
	}
	if app.rewind.Count() != 5 {
		t.Fatalf("count = %d, want 5", app.rewind.Count())
	}

	app.processAction(hotkey.StateLoad, time.Now())
	if app.rewind.Count() != 0 {
		t.Errorf("count = %d after load, want 0", app.rewind.Count())
	}
	if got := lastNotification(t, app); got != "State loaded: #0" {
		t.Errorf("notification = %q", got)
	}
}

func TestFullScreenAction(t *testing.T) {
	app := newTestApp(&fakeSession{}, nil)

	app.processAction(hotkey.FullScreen, time.Now())
	if !app.window.IsFullscreen() {
		t.Error("expected fullscreen after toggle")
	}
	app.processAction(hotkey.FullScreen, time.Now())
	if app.window.IsFullscreen() {
		t.Error("expected windowed after second toggle")
	}
}
