// Package style holds the shell's shared colors, font, spacing values,
// and ebitenui widget constructors.
package style

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// UI palette.
var (
	Background        = color.NRGBA{0x1a, 0x1a, 0x2e, 0xff} // Dark blue-gray
	Surface           = color.NRGBA{0x25, 0x25, 0x3a, 0xff} // Slightly lighter
	Primary           = color.NRGBA{0x4a, 0x4a, 0x8a, 0xff} // Muted purple
	PrimaryHover      = color.NRGBA{0x5a, 0x5a, 0x9a, 0xff}
	Text              = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	TextSecondary     = color.NRGBA{0xaa, 0xaa, 0xaa, 0xff}
	Border            = color.NRGBA{0x3a, 0x3a, 0x5a, 0xff}
	OverlayBackground = color.NRGBA{0x1a, 0x1a, 0x2e, 0xff} // Alpha applied per use
)

// baseFontSize is the UI font size in points at DPI scale 1.0.
const baseFontSize = 14

var (
	// sharedFontSource is the TrueType source shared by all faces
	sharedFontSource *text.GoTextFaceSource

	fontFace text.Face
)

// loadFontSource loads the shared GoTextFaceSource from goregular.TTF (once)
func loadFontSource() *text.GoTextFaceSource {
	if sharedFontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Failed to load font source: %v", err)
			return nil
		}
		sharedFontSource = source
	}
	return sharedFontSource
}

// FontFace returns the face for UI text, sized for the current DPI
// scale. Widgets hold the returned pointer, so on DPI changes the face
// is replaced in-place rather than nil-ed; a nil face would crash
// widgets before a rebuild completes.
func FontFace() *text.Face {
	if fontFace == nil {
		reloadFontFace()
	}
	return &fontFace
}

func reloadFontFace() {
	source := loadFontSource()
	if source == nil {
		return
	}
	fontFace = &text.GoTextFace{
		Source: source,
		Size:   baseFontSize * dpiScale,
	}
}
