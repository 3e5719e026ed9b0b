package shell

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/thomas-k-cameron/meru/shell/style"
)

// displayFPS returns the frame rate to show on the overlay. While
// turbo is held the core runs frameSkip frames per tick, so the
// effective emulated rate is the tick rate times the skip factor.
func displayFPS(actual float64, turbo bool, frameSkip int) float64 {
	if turbo && frameSkip > 1 {
		return actual * float64(frameSkip)
	}
	return actual
}

// drawFPSOverlay renders the frame rate in the top-left corner.
func drawFPSOverlay(screen *ebiten.Image, turbo bool, frameSkip int) {
	fps := displayFPS(ebiten.ActualFPS(), turbo, frameSkip)
	label := fmt.Sprintf("%.0f FPS", fps)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(style.OverlayMargin), float64(style.OverlayMargin))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, label, *style.FontFace(), textOpts)
}
