package audio

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/media"
)

// None is a silent sink. Every loaded reference plays for TrackLength on a
// simulated clock and then ends, so the player behaves as with a device.
type None struct {
	emitter

	mu          sync.Mutex
	trackLength time.Duration
	interval    time.Duration
	src         string
	position    time.Duration
	volume      float64
	playing     bool
	stopClock   chan struct{}
	closed      bool
}

// NewNone creates a silent sink.
func NewNone(settings Settings) *None {
	return &None{
		emitter:     newEmitter(),
		trackLength: settings.TrackLength,
		interval:    settings.ProgressInterval,
		volume:      1,
	}
}

// Load implements media.Sink.
func (n *None) Load(_ context.Context, src string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.haltLocked()
	n.src = src
	n.position = 0
	zlog.Debug().Msgf("audio: none sink loaded: src=%s", src)
	n.offer(media.Event{Type: media.EventMetadataLoaded, Source: src, Duration: n.trackLength})
	return nil
}

// Play implements media.Sink.
func (n *None) Play(_ context.Context) <-chan error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.src == "" || n.closed {
		return resolved(ErrNothingLoaded)
	}
	if n.playing {
		return resolved(nil)
	}
	if n.position >= n.trackLength {
		n.position = 0
	}
	n.playing = true
	n.stopClock = make(chan struct{})
	go n.run(n.src, n.stopClock)
	return resolved(nil)
}

// Pause implements media.Sink.
func (n *None) Pause() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.haltLocked()
}

// Seek implements media.Sink.
func (n *None) Seek(position time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.src == "" {
		return ErrNothingLoaded
	}
	n.position = clamp(position, 0, n.trackLength)
	return nil
}

// SetVolume implements media.Sink.
func (n *None) SetVolume(volume float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = volume
}

// Volume returns the last applied volume.
func (n *None) Volume() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume
}

// Position returns the simulated position.
func (n *None) Position() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

// Playing reports whether the simulated clock is running.
func (n *None) Playing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.playing
}

// Close implements media.Sink.
func (n *None) Close() error {
	n.mu.Lock()
	n.haltLocked()
	n.closed = true
	n.mu.Unlock()

	n.shutdown()
	return nil
}

// haltLocked stops the clock. Callers hold n.mu.
func (n *None) haltLocked() {
	n.playing = false
	if n.stopClock != nil {
		close(n.stopClock)
		n.stopClock = nil
	}
}

func (n *None) run(src string, stop <-chan struct{}) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		n.mu.Lock()
		select {
		case <-stop:
			n.mu.Unlock()
			return
		default:
		}
		n.position = min(n.position+n.interval, n.trackLength)
		position, ended := n.position, n.position >= n.trackLength
		if ended {
			n.haltLocked()
		}
		n.mu.Unlock()

		if ended {
			n.emit(media.Event{Type: media.EventEnded, Source: src, Position: position, Duration: n.trackLength})
			return
		}
		n.offer(media.Event{Type: media.EventTimeUpdate, Source: src, Position: position, Duration: n.trackLength})
	}
}

var _ media.Sink = (*None)(nil)
