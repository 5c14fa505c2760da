// Package media bridges the playback state machine and a playback sink.
package media

import (
	"context"
	"time"
)

// EventType represents a sink-originated event type.
type EventType int

const (
	EventEnded          EventType = iota // The loaded media finished playing unassisted
	EventMetadataLoaded                  // Media metadata (duration) became available
	EventTimeUpdate                      // Playback position progressed
	EventError                           // The sink failed asynchronously
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventEnded:
		return "ended"
	case EventMetadataLoaded:
		return "metadata_loaded"
	case EventTimeUpdate:
		return "time_update"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by a Sink.
type Event struct {
	Type     EventType
	Source   string        // Media reference the event belongs to
	Position time.Duration // Current position (time updates)
	Duration time.Duration // Total duration (metadata, time updates)
	Err      error         // Failure (EventError only)
}

// Sink is the playback device. Only the Adapter may drive it, from a single
// worker goroutine in request order; requests may block on I/O.
//
// Implementations must be safe for use from multiple goroutines: Play
// resolves asynchronously while the adapter keeps issuing requests, and
// Events is drained elsewhere.
type Sink interface {
	// Load replaces the media reference. Playback does not start.
	Load(ctx context.Context, src string) error
	// Play requests playback of the loaded media. The returned channel
	// receives exactly one value (nil on success) and is then closed.
	Play(ctx context.Context) <-chan error
	// Pause requests playback to stop.
	Pause()
	// Seek moves the playback position.
	Seek(position time.Duration) error
	// SetVolume applies a volume in [0,1].
	SetVolume(volume float64)
	// Events returns the sink's event stream.
	Events() <-chan Event
	// Close releases the device.
	Close() error
}
