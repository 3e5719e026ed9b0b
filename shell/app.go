// Package shell is the interactive front end: it owns the window, the
// menu, audio output, hotkey dispatch, and the mode state machine, and
// drives an emulation session one frame per tick.
package shell

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	emucore "github.com/thomas-k-cameron/meru/api"
	"github.com/thomas-k-cameron/meru/romloader"
	"github.com/thomas-k-cameron/meru/shell/hotkey"
	"github.com/thomas-k-cameron/meru/shell/storage"
	"github.com/thomas-k-cameron/meru/shell/style"
)

// App is the ebiten game driving the whole shell. All state is owned by
// the update goroutine; the only concurrent piece is the audio ring
// buffer, which oto reads from its own goroutine.
type App struct {
	factory emucore.Factory
	info    emucore.SystemInfo
	config  *storage.Config
	// configLoadFailed blocks saving on exit so a corrupt but
	// hand-editable config file isn't clobbered with defaults.
	configLoadFailed bool

	session    emucore.Session
	saveStater emucore.SaveStater // nil when the core can't serialize
	stateCfg   emucore.StateConfig
	romName    string

	modes         *ModeStack
	dispatcher    *hotkey.Dispatcher
	mapping       InputMapping
	window        *WindowReconciler
	notifications *NotificationQueue
	renderer      *Renderer
	audio         *AudioPlayer
	rewind        *RewindBuffer
	menu          *Menu

	slot          uint
	turbo         bool
	rewindHeld    bool
	rewindHold    int // Frames the rewind binding has been held
	quitRequested bool

	gamepadIDs []ebiten.GamepadID // Reused each tick
}

// Run starts the shell for the given core factory and blocks until the
// user quits. An unavailable audio device is fatal: without a sink
// there is nothing pacing emulation to real time.
func Run(factory emucore.Factory) error {
	info := factory.SystemInfo()
	storage.Init(info.DataDirName)
	if err := storage.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	config, err := storage.LoadConfig()
	configLoadFailed := false
	if err != nil {
		log.Printf("Warning: failed to load config, using defaults: %v", err)
		config = storage.DefaultConfig()
		configLoadFailed = true
	}
	storage.CorrectConfig(config)

	audio, err := NewAudioPlayer(info.SampleRate, config.Audio.Volume, config.Audio.Muted)
	if err != nil {
		return err
	}

	app := &App{
		factory:          factory,
		info:             info,
		config:           config,
		configLoadFailed: configLoadFailed,
		modes:            NewModeStack(),
		dispatcher:       hotkey.NewDispatcher(),
		mapping:          BuildDefaultMapping(info.Buttons),
		notifications:    NewNotificationQueue(),
		renderer:         NewRenderer(),
		audio:            audio,
	}
	app.window = NewWindowReconciler(ebitenWindow{}, MenuWidth, MenuHeight, config.Window.Fullscreen)
	style.SetDPIScale(ebiten.Monitor().DeviceScaleFactor())
	app.menu = NewMenu(app)

	ebiten.SetWindowTitle(info.Name)
	ebiten.SetWindowSize(MenuWidth, MenuHeight)

	runErr := ebiten.RunGame(app)
	app.shutdown()
	return runErr
}

// Update advances the shell one tick: poll input, dispatch hotkeys,
// check the double-click debounce, run the active mode's body, then
// age out notifications. Hotkeys are drained before the mode body so
// geometry and mode changes are visible within the same tick.
func (a *App) Update() error {
	now := time.Now()

	a.gamepadIDs = ebiten.AppendGamepadIDs(a.gamepadIDs[:0])
	snap := pollSnapshot(a.gamepadIDs)
	fired, turbo := a.dispatcher.Tick(snap, a.config.Hotkeys)
	a.turbo = turbo
	a.rewindHeld = a.config.Hotkeys.Lookup(hotkey.Rewind).Held(snap)
	for _, action := range fired {
		a.processAction(action, now)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if a.window.Click(now) {
			a.reconcileWindow()
		}
	}

	switch a.modes.Current() {
	case ModeMenu:
		a.menu.Update()
	case ModeRunning:
		a.updateRunning()
	case ModeRewinding:
		a.updateRewinding()
	}

	a.notifications.Advance(now)

	if a.quitRequested {
		return ebiten.Termination
	}
	return nil
}

// updateRunning executes one tick of live emulation. Turbo runs
// FrameSkipOnTurbo frames per tick instead of one; only the last
// frame's audio is queued, which keeps the buffer from flooding.
func (a *App) updateRunning() {
	a.pollPlayers()

	frames := 1
	if a.turbo && a.config.FrameSkipOnTurbo > 1 {
		frames = a.config.FrameSkipOnTurbo
	}

	for i := 0; i < frames; i++ {
		a.session.RunFrame()
		if a.rewind != nil {
			if err := a.rewind.Capture(a.saveStater); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	a.audio.QueueSamples(a.session.AudioSamples())
}

// updateRewinding steps the session backwards while the rewind binding
// is held, accelerating with hold duration. Enter or Escape ends the
// rewind session and resumes gameplay from the rewound position.
func (a *App) updateRewinding() {
	if a.rewindHeld {
		a.rewindHold++
		items := rewindItemsForHoldDuration(a.rewindHold)
		if items > 0 {
			a.rewind.Rewind(a.session, a.saveStater, items)
		}
	} else {
		a.rewindHold = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.modes.Pop()
		a.rewindHold = 0
		a.reconcileWindow()
	}
}

// pollPlayers reads controller state for every player. Player one gets
// keyboard plus the first gamepad; extra players get gamepads only.
func (a *App) pollPlayers() {
	hasGamepad := len(a.gamepadIDs) > 0
	var padID ebiten.GamepadID
	if hasGamepad {
		padID = a.gamepadIDs[0]
	}
	a.session.SetButtons(0, PollButtons(a.mapping, padID, hasGamepad))

	for p := 1; p < a.info.Players && p < len(a.gamepadIDs); p++ {
		a.session.SetButtons(p, PollGamepadButtons(a.mapping, a.gamepadIDs[p]))
	}
}

// Draw renders the active mode plus the notification and FPS overlays.
func (a *App) Draw(screen *ebiten.Image) {
	now := time.Now()

	switch a.modes.Current() {
	case ModeMenu:
		a.menu.Draw(screen)
	case ModeRunning:
		a.renderer.Draw(screen, a.session.FrameBuffer(), a.session.FrameBufferSize())
	case ModeRewinding:
		a.renderer.Draw(screen, a.session.FrameBuffer(), a.session.FrameBufferSize())
		a.drawRewindIndicator(screen)
	}

	a.notifications.Draw(screen, now)

	if a.config.ShowFPS {
		drawFPSOverlay(screen, a.turbo, a.config.FrameSkipOnTurbo)
	}
}

// drawRewindIndicator shows remaining history while rewinding.
func (a *App) drawRewindIndicator(screen *ebiten.Image) {
	msg := fmt.Sprintf("<< Rewind (%d/%d)", a.rewind.Count(), a.rewind.Capacity())
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(float64(screen.Bounds().Dx()/2), float64(style.OverlayMargin))
	opts.PrimaryAlign = text.AlignCenter
	opts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, msg, *style.FontFace(), opts)
}

// Layout uses the outside size directly; the reconciler controls the
// window size, and the renderer scales the framebuffer to fit.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	return outsideWidth, outsideHeight
}

// launchROM loads ROM data from path, starts a session for it, and
// switches to Running. Failures are reported and leave the current
// session (if any) untouched.
func (a *App) launchROM(path string, now time.Time) {
	rom, name, err := romloader.Load(path, a.info.Extensions)
	if err != nil {
		log.Printf("Failed to load ROM %s: %v", path, err)
		a.notifications.Show("Failed to load ROM", now)
		return
	}

	session, err := a.factory.Create(rom)
	if err != nil {
		log.Printf("Failed to start %s session: %v", a.info.ConsoleName, err)
		a.notifications.Show("Failed to start emulation", now)
		return
	}

	if a.session != nil {
		a.session.Close()
	}
	a.session = session
	a.romName = name
	a.slot = 0
	a.saveStater, _ = session.(emucore.SaveStater)

	a.stateCfg = emucore.StateConfig{}
	saveDir, err := storage.GetGameSaveDir(name)
	if err != nil {
		log.Printf("Warning: save states unavailable: %v", err)
	} else if err := os.MkdirAll(saveDir, 0755); err != nil {
		log.Printf("Warning: save states unavailable: %v", err)
	} else {
		a.stateCfg.SaveDir = saveDir
	}

	a.setupRewind()
	a.audio.ClearQueue()
	a.modes.Replace(ModeRunning)
	a.reconcileWindow()
}

// setupRewind sizes the rewind ring buffer from a probe serialization.
// Rewind stays disabled for cores that can't serialize.
func (a *App) setupRewind() {
	a.rewind = nil
	if !a.config.Rewind.Enabled || a.saveStater == nil {
		return
	}

	state, err := a.saveStater.Serialize()
	if err != nil {
		log.Printf("Warning: rewind disabled, state serialization failed: %v", err)
		return
	}

	a.rewind = NewRewindBuffer(a.config.Rewind.BufferSizeMB, a.config.Rewind.FrameStep, len(state))
	if a.rewind == nil {
		log.Printf("Warning: rewind disabled, state too large for %dMB buffer", a.config.Rewind.BufferSizeMB)
	}
}

// resumeFromMenu returns to the running session, if there is one.
func (a *App) resumeFromMenu() {
	if a.session == nil {
		return
	}
	a.modes.Replace(ModeRunning)
	a.reconcileWindow()
}

// shutdown releases the session and audio device and persists settings.
func (a *App) shutdown() {
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.audio.Close()

	if a.configLoadFailed {
		// The file on disk may be fixable by hand; don't overwrite it.
		return
	}
	a.config.Window.Fullscreen = a.window.IsFullscreen()
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Warning: failed to save config: %v", err)
	}
}
