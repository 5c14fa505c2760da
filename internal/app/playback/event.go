package playback

// EventType represents a kind of observable state change.
type EventType int

const (
	EventSongChanged    EventType = iota // A new current song was loaded
	EventStateChanged                    // Playing flag flipped
	EventVolumeChanged                   // Volume changed
	EventLoopChanged                     // Auto-advance flag flipped
	EventShuffleChanged                  // Shuffle flag flipped
	EventQueueChanged                    // Queue replaced or position moved
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventSongChanged:
		return "song_changed"
	case EventStateChanged:
		return "state_changed"
	case EventVolumeChanged:
		return "volume_changed"
	case EventLoopChanged:
		return "loop_changed"
	case EventShuffleChanged:
		return "shuffle_changed"
	case EventQueueChanged:
		return "queue_changed"
	default:
		return "unknown"
	}
}

// Diff lists the changes between two snapshots, in EventType order.
func Diff(prev, next Snapshot) []EventType {
	var events []EventType
	if prev.Sequence != next.Sequence {
		events = append(events, EventSongChanged)
	}
	if prev.Playing != next.Playing {
		events = append(events, EventStateChanged)
	}
	if prev.Volume != next.Volume {
		events = append(events, EventVolumeChanged)
	}
	if prev.Looping != next.Looping {
		events = append(events, EventLoopChanged)
	}
	if prev.Shuffled != next.Shuffled {
		events = append(events, EventShuffleChanged)
	}
	if prev.QueueVersion != next.QueueVersion || prev.Position != next.Position {
		events = append(events, EventQueueChanged)
	}
	return events
}
