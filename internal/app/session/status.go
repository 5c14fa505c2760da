package session

import (
	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/app/media"
	"github.com/osa030/tunebox/internal/app/playback"
)

// Status is the player state together with the progress view.
type Status struct {
	playback.Snapshot
	Progress media.ProgressView
}

// Message converts the status to its wire form.
func (s Status) Message() *tuneboxv1.Status {
	msg := &tuneboxv1.Status{
		State:          playbackState(s.State),
		IsPlaying:      s.Playing,
		Volume:         s.Volume,
		IsLooping:      s.Looping,
		IsShuffled:     s.Shuffled,
		Queue:          tuneboxv1.FromSongs(s.Queue),
		Position:       s.Position,
		RecentlyPlayed: tuneboxv1.FromCurrentSongs(s.RecentlyPlayed),
		Progress: tuneboxv1.Progress{
			PositionMs: s.Progress.Position.Milliseconds(),
			DurationMs: s.Progress.Duration.Milliseconds(),
			Dragging:   s.Progress.Dragging,
		},
	}
	if s.Current != nil {
		cs := tuneboxv1.FromCurrentSong(*s.Current)
		msg.Current = &cs
	}
	return msg
}

func playbackState(st playback.State) tuneboxv1.PlaybackState {
	switch st {
	case playback.StatePlaying:
		return tuneboxv1.PlaybackStatePlaying
	case playback.StatePaused:
		return tuneboxv1.PlaybackStatePaused
	default:
		return tuneboxv1.PlaybackStateIdle
	}
}
