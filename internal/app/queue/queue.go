// Package queue holds the active play queue and the recently played list.
package queue

import (
	"github.com/samber/lo"

	"github.com/osa030/tunebox/internal/domain/song"
)

// Queue is the ordered list of songs available for next/previous traversal.
// It is only mutated from the session event loop.
type Queue struct {
	songs    []song.Song
	position int
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{songs: make([]song.Song, 0)}
}

// Set replaces the queue wholesale and resolves the position of start by ID.
// A start song that is not part of songs resolves to position 0.
func (q *Queue) Set(songs []song.Song, start song.Song) int {
	q.songs = make([]song.Song, len(songs))
	copy(q.songs, songs)

	_, index, found := lo.FindIndexOf(q.songs, func(s song.Song) bool {
		return s.ID == start.ID
	})
	if !found {
		index = 0
	}
	q.position = index
	return q.position
}

// Len returns the number of songs in the queue.
func (q *Queue) Len() int {
	return len(q.songs)
}

// IsEmpty returns true if the queue has no songs.
func (q *Queue) IsEmpty() bool {
	return len(q.songs) == 0
}

// Position returns the current playback position.
// Meaningless when the queue is empty.
func (q *Queue) Position() int {
	return q.position
}

// At returns the song at index i.
func (q *Queue) At(i int) (song.Song, bool) {
	if i < 0 || i >= len(q.songs) {
		return song.Song{}, false
	}
	return q.songs[i], true
}

// MoveTo sets the position to i and returns the song there.
// Out of range indexes leave the position unchanged.
func (q *Queue) MoveTo(i int) (song.Song, bool) {
	s, ok := q.At(i)
	if !ok {
		return song.Song{}, false
	}
	q.position = i
	return s, true
}

// Step returns the index delta steps away from the current position,
// wrapping around both ends. Returns 0 for an empty queue.
func (q *Queue) Step(delta int) int {
	n := len(q.songs)
	if n == 0 {
		return 0
	}
	return ((q.position+delta)%n + n) % n
}

// Songs returns a copy of the queued songs.
func (q *Queue) Songs() []song.Song {
	result := make([]song.Song, len(q.songs))
	copy(result, q.songs)
	return result
}
