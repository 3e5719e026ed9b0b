package shell

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/thomas-k-cameron/meru/shell/style"
)

const (
	// noticeDuration is how long a message stays on screen.
	noticeDuration = 3 * time.Second
	// noticeStackStep is how far existing messages shift up when a new
	// one arrives.
	noticeStackStep = 20.0
	// noticeEaseDuration is the length of the shift animation.
	noticeEaseDuration = 100 * time.Millisecond
)

// notice is a single on-screen message. Its vertical offset animates
// from offsetFrom to offsetTo starting at easeStart.
type notice struct {
	message    string
	created    time.Time
	offsetFrom float64
	offsetTo   float64
	easeStart  time.Time
}

// offset returns the animated vertical offset at the given time.
func (n *notice) offset(now time.Time) float64 {
	elapsed := now.Sub(n.easeStart)
	if elapsed >= noticeEaseDuration {
		return n.offsetTo
	}
	if elapsed <= 0 {
		return n.offsetFrom
	}
	t := float64(elapsed) / float64(noticeEaseDuration)
	return n.offsetFrom + (n.offsetTo-n.offsetFrom)*cubicInOut(t)
}

// cubicInOut is the standard cubic easing curve over t in [0, 1].
func cubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// NotificationQueue displays temporary messages stacked above the
// bottom-right corner of the screen. New messages appear at the anchor
// position; existing ones ease upward to make room. The queue is driven
// entirely from the game loop, so it needs no locking.
type NotificationQueue struct {
	notices []notice

	// Reused background image to avoid per-frame allocations
	bg *ebiten.Image
}

// NewNotificationQueue creates an empty queue.
func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{}
}

// Show adds a message at the anchor position and starts easing every
// existing message one stacking step upward.
func (q *NotificationQueue) Show(message string, now time.Time) {
	for i := range q.notices {
		n := &q.notices[i]
		n.offsetFrom = n.offset(now)
		n.offsetTo += noticeStackStep
		n.easeStart = now
	}
	q.notices = append(q.notices, notice{
		message:   message,
		created:   now,
		easeStart: now,
	})
}

// Advance removes messages that have been visible for the full
// duration. Call once per tick.
func (q *NotificationQueue) Advance(now time.Time) {
	kept := q.notices[:0]
	for _, n := range q.notices {
		if now.Sub(n.created) < noticeDuration {
			kept = append(kept, n)
		}
	}
	// Release the tail so evicted messages can be collected
	for i := len(kept); i < len(q.notices); i++ {
		q.notices[i] = notice{}
	}
	q.notices = kept
}

// Len returns the number of visible messages.
func (q *NotificationQueue) Len() int {
	return len(q.notices)
}

// Clear removes all messages.
func (q *NotificationQueue) Clear() {
	q.notices = q.notices[:0]
}

// Draw renders the visible messages bottom-right, newest at the anchor.
func (q *NotificationQueue) Draw(screen *ebiten.Image, now time.Time) {
	if len(q.notices) == 0 {
		return
	}

	bounds := screen.Bounds()
	screenWidth := bounds.Dx()
	screenHeight := bounds.Dy()

	padding := style.OverlayPadding
	margin := style.OverlayMargin

	// Messages never outgrow the screen; long ones are cut to fit.
	maxTextWidth := float64(screenWidth - margin*2 - padding*2)

	for i := range q.notices {
		n := &q.notices[i]

		msg, _ := style.TruncateToWidth(n.message, *style.FontFace(), maxTextWidth)
		textWidth, textHeight := text.Measure(msg, *style.FontFace(), 0)
		bgWidth := int(textWidth) + padding*2
		bgHeight := int(textHeight) + padding*2

		bgX := screenWidth - bgWidth - margin
		bgY := screenHeight - bgHeight - margin - int(n.offset(now))

		if q.bg == nil || q.bg.Bounds().Dx() < bgWidth || q.bg.Bounds().Dy() < bgHeight {
			q.bg = ebiten.NewImage(bgWidth, bgHeight)
		}
		q.bg.Clear()
		overlayBg := style.OverlayBackground
		overlayBg.A = 153 // 60% opacity
		q.bg.Fill(overlayBg)

		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(bgX), float64(bgY))
		screen.DrawImage(q.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
		textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(screen, msg, *style.FontFace(), textOpts)
	}
}
