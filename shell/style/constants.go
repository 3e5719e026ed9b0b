package style

// Base values in logical pixels. The exported vars are recalculated
// from these by SetDPIScale.
const (
	baseSmallSpacing        = 8
	baseButtonPaddingSmall  = 8
	baseButtonPaddingMedium = 12

	// Overlay insets (notifications, FPS counter, rewind indicator)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8
)

// Layout vars shared across the shell, DPI-scaled at runtime.
var (
	SmallSpacing        = baseSmallSpacing
	ButtonPaddingSmall  = baseButtonPaddingSmall
	ButtonPaddingMedium = baseButtonPaddingMedium

	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
)

// dpiScale is the device pixel ratio (1.0 on non-retina displays).
var dpiScale = 1.0

// DPIScale returns the current device scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels using the
// current DPI scale.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// SetDPIScale sets the device scale factor and recalculates all
// spatial vars and the font face from their base values.
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	dpiScale = scale

	SmallSpacing = Px(baseSmallSpacing)
	ButtonPaddingSmall = Px(baseButtonPaddingSmall)
	ButtonPaddingMedium = Px(baseButtonPaddingMedium)
	OverlayPadding = Px(baseOverlayPadding)
	OverlayMargin = Px(baseOverlayMargin)

	reloadFontFace()
}
