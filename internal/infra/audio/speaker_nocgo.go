//go:build !((linux && cgo) || windows || darwin)

package audio

// Available indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const Available = false

// Speaker is not available without cgo.
type Speaker struct {
	None
}

// NewSpeaker always fails when cgo is disabled. Use the none sink instead.
func NewSpeaker(Settings) (*Speaker, error) {
	return nil, ErrUnavailable
}
