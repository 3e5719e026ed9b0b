package shell

import (
	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/thomas-k-cameron/meru/api"
)

// Renderer owns the ebiten offscreen buffer and blits the core's RGBA
// framebuffer to the screen with aspect-ratio-preserving scaling.
type Renderer struct {
	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions
}

// NewRenderer creates an empty renderer; the offscreen buffer is
// allocated lazily from the framebuffer size.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders the framebuffer to the screen, centered, scaled to fit
// while keeping the native aspect ratio, with nearest filtering.
func (r *Renderer) Draw(screen *ebiten.Image, pixels []byte, size emucore.FrameSize) {
	if size.Width == 0 || size.Height == 0 {
		return
	}

	requiredLen := size.Width * size.Height * 4
	if len(pixels) < requiredLen {
		return
	}

	if r.offscreen == nil || r.offscreen.Bounds().Dx() != size.Width || r.offscreen.Bounds().Dy() != size.Height {
		r.offscreen = ebiten.NewImage(size.Width, size.Height)
	}

	r.offscreen.WritePixels(pixels[:requiredLen])

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(size.Width)
	nativeH := float64(size.Height)

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(scale, scale)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(r.offscreen, &r.drawOpts)
}
