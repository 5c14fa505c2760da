package media

import (
	"fmt"
	"time"
)

// Progress is the read-only progress view of the loaded media.
// While a scrub is in effect, sink time updates are ignored so the user's
// drag and the sink's ticks do not fight.
type Progress struct {
	position time.Duration
	duration time.Duration
	dragging bool
}

// ProgressView is a copy of the progress state.
type ProgressView struct {
	Position time.Duration
	Duration time.Duration
	Dragging bool
}

// Reset clears the view for newly loaded media.
func (p *Progress) Reset() {
	p.position = 0
	p.duration = 0
	p.dragging = false
}

// OnMetadata records the media duration.
func (p *Progress) OnMetadata(duration time.Duration) {
	if p.dragging {
		return
	}
	p.duration = nonNegative(duration)
}

// OnTimeUpdate records a position tick from the sink.
// Returns false when the tick was dropped because a scrub is in effect.
func (p *Progress) OnTimeUpdate(position, duration time.Duration) bool {
	if p.dragging {
		return false
	}
	p.position = nonNegative(position)
	if duration > 0 {
		p.duration = duration
	}
	return true
}

// BeginDrag freezes the view against sink updates.
func (p *Progress) BeginDrag() {
	p.dragging = true
}

// DragTo moves the displayed position while dragging.
func (p *Progress) DragTo(position time.Duration) {
	if !p.dragging {
		return
	}
	p.position = p.clamp(position)
}

// EndDrag unfreezes the view and returns the position to seek to.
// ok is false when no drag was in effect.
func (p *Progress) EndDrag() (time.Duration, bool) {
	if !p.dragging {
		return 0, false
	}
	p.dragging = false
	return p.position, true
}

// Dragging reports whether a scrub is in effect.
func (p *Progress) Dragging() bool {
	return p.dragging
}

// View returns a copy of the progress state.
func (p *Progress) View() ProgressView {
	return ProgressView{
		Position: p.position,
		Duration: p.duration,
		Dragging: p.dragging,
	}
}

func (p *Progress) clamp(position time.Duration) time.Duration {
	position = nonNegative(position)
	if p.duration > 0 && position > p.duration {
		return p.duration
	}
	return position
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// FormatClock renders d as m:ss. Zero and negative durations render as 0:00.
func FormatClock(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
