package shell

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"

	"github.com/thomas-k-cameron/meru/shell/hotkey"
	"github.com/thomas-k-cameron/meru/shell/storage"
	"github.com/thomas-k-cameron/meru/shell/style"
)

// Menu intrinsic window size. The reconciler restores this whenever the
// shell returns to the menu.
const (
	MenuWidth  = 640
	MenuHeight = 480
)

// Archive formats the ROM loader can open, offered in the file dialog
// alongside the core's native extensions.
var archiveExtensions = []string{"zip", "7z", "gz", "rar"}

// Menu is the ebitenui menu screen: session controls, ROM loading, and
// display settings. The widget tree is rebuilt whenever the state it
// reflects (scale, toggles, loaded ROM) changes.
type Menu struct {
	app            *App
	ui             *ebitenui.UI
	dirty          bool
	clipboardReady bool
}

// NewMenu builds the menu for the app. Clipboard failure only disables
// the copy-path button; everything else works without it.
func NewMenu(app *App) *Menu {
	m := &Menu{app: app}
	if err := clipboard.Init(); err != nil {
		log.Printf("Warning: clipboard unavailable: %v", err)
	} else {
		m.clipboardReady = true
	}
	m.rebuild()
	return m
}

// Refresh marks the widget tree stale. The rebuild happens on the next
// Update, not immediately, so click handlers never tear down the tree
// they are running inside of.
func (m *Menu) Refresh() {
	m.dirty = true
}

// Update processes menu input for this tick.
func (m *Menu) Update() {
	if m.dirty {
		m.rebuild()
		m.dirty = false
	}
	m.ui.Update()
}

// Draw renders the menu.
func (m *Menu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

func (m *Menu) rebuild() {
	root := style.ScreenContainer()
	content := style.CenteredContainer(style.SmallSpacing)

	content.AddChild(widget.NewText(
		widget.TextOpts.Text(m.app.info.Name, style.FontFace(), style.Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
	))

	if m.app.session != nil {
		name, _ := style.TruncateEnd(m.app.romName, 48)
		content.AddChild(widget.NewText(
			widget.TextOpts.Text("Playing: "+name, style.FontFace(), style.TextSecondary),
			widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		))
		content.AddChild(style.PrimaryTextButton("Resume", style.ButtonPaddingMedium,
			func(*widget.ButtonClickedEventArgs) {
				m.app.resumeFromMenu()
			}))
	}

	content.AddChild(style.TextButton("Load ROM...", style.ButtonPaddingMedium,
		func(*widget.ButtonClickedEventArgs) {
			m.openROMDialog()
		}))

	scaleRow := style.ButtonRow()
	scaleRow.AddChild(style.TextButton("-", style.ButtonPaddingSmall,
		func(*widget.ButtonClickedEventArgs) {
			m.app.processAction(hotkey.ScaleDown, time.Now())
			m.Refresh()
		}))
	scaleRow.AddChild(widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Scale: %dx", m.app.config.Scaling), style.FontFace(), style.Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
	))
	scaleRow.AddChild(style.TextButton("+", style.ButtonPaddingSmall,
		func(*widget.ButtonClickedEventArgs) {
			m.app.processAction(hotkey.ScaleUp, time.Now())
			m.Refresh()
		}))
	content.AddChild(scaleRow)

	content.AddChild(style.ToggleButton("Fullscreen", m.app.window.IsFullscreen(),
		func(*widget.ButtonClickedEventArgs) {
			m.app.window.ToggleFullscreen()
			m.app.reconcileWindow()
			m.Refresh()
		}))
	content.AddChild(style.ToggleButton("Show FPS", m.app.config.ShowFPS,
		func(*widget.ButtonClickedEventArgs) {
			m.app.config.ShowFPS = !m.app.config.ShowFPS
			m.Refresh()
		}))
	content.AddChild(style.ToggleButton("Mute audio", m.app.config.Audio.Muted,
		func(*widget.ButtonClickedEventArgs) {
			m.app.config.Audio.Muted = !m.app.config.Audio.Muted
			m.app.audio.SetMuted(m.app.config.Audio.Muted)
			m.Refresh()
		}))

	content.AddChild(style.TextButton("Copy config path", style.ButtonPaddingSmall,
		func(*widget.ButtonClickedEventArgs) {
			m.copyConfigPath()
		}))
	content.AddChild(style.TextButton("Quit", style.ButtonPaddingSmall,
		func(*widget.ButtonClickedEventArgs) {
			m.app.quitRequested = true
		}))

	root.AddChild(content)
	m.ui = &ebitenui.UI{Container: root}
}

// openROMDialog shows the native file picker and launches the chosen
// ROM. The dialog blocks the update loop, which is fine: the menu has
// nothing to animate while it's up.
func (m *Menu) openROMDialog() {
	exts := make([]string, 0, len(m.app.info.Extensions)+len(archiveExtensions))
	for _, e := range m.app.info.Extensions {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	exts = append(exts, archiveExtensions...)

	path, err := dialog.File().
		Title("Select a " + m.app.info.ConsoleName + " ROM").
		Filter(m.app.info.ConsoleName+" ROMs", exts...).
		Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			log.Printf("Warning: file dialog failed: %v", err)
		}
		return
	}

	m.app.launchROM(path, time.Now())
	m.Refresh()
}

// copyConfigPath puts the config file location on the clipboard so the
// user can find and hand-edit it (hotkey bindings in particular).
func (m *Menu) copyConfigPath() {
	path, err := storage.GetConfigPath()
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	if !m.clipboardReady {
		m.app.notifications.Show("Clipboard unavailable", time.Now())
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(path))
	m.app.notifications.Show("Config path copied", time.Now())
}
