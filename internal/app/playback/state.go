// Package playback provides the player state machine: current song, queue
// traversal, shuffle, loop and history.
package playback

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // No song loaded (initial state)
	StatePaused               // Song loaded, not playing
	StatePlaying              // Song loaded and playing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}
