package playback

import (
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/tunebox/internal/app/queue"
	"github.com/osa030/tunebox/internal/app/shuffle"
	"github.com/osa030/tunebox/internal/domain/song"
)

// Config holds controller configuration.
type Config struct {
	Volume       float64        // Initial volume in [0,1]
	Looping      bool           // Initial auto-advance flag
	Shuffled     bool           // Initial shuffle flag
	HistoryLimit int            // Recently played size (0 = queue.DefaultHistoryLimit)
	Source       shuffle.Source // Random source for shuffle orders (nil = global)
}

// Snapshot is a point-in-time copy of everything the controller exposes.
type Snapshot struct {
	State          State
	Current        *song.CurrentSong
	Sequence       uint64 // Incremented every time a new current song is loaded
	Playing        bool
	Volume         float64
	Looping        bool
	Shuffled       bool
	Queue          []song.Song
	QueueVersion   uint64 // Incremented every time the queue is replaced
	Position       int
	RecentlyPlayed []song.CurrentSong
}

// Controller is the playback state machine.
//
// It is not safe for concurrent use: every transition must run on the
// session event loop, which is what makes each operation atomic to readers.
type Controller struct {
	// Current song state
	current  *song.CurrentSong
	sequence uint64
	playing  bool

	// Flags
	volume   float64
	looping  bool
	shuffled bool

	// Traversal
	queue        *queue.Queue
	queueVersion uint64
	order        *shuffle.Order // Stale while shuffle is off; never read then
	source       shuffle.Source

	history *queue.History
}

// NewController creates a new playback controller in the idle state.
func NewController(cfg Config) *Controller {
	src := cfg.Source
	if src == nil {
		src = shuffle.DefaultSource()
	}
	return &Controller{
		volume:   clampVolume(cfg.Volume),
		looping:  cfg.Looping,
		shuffled: cfg.Shuffled,
		queue:    queue.New(),
		source:   src,
		history:  queue.NewHistory(cfg.HistoryLimit),
	}
}

// Play loads cs as the current song with q as the new queue and starts playing.
// If cs is not part of q the position falls back to 0.
func (c *Controller) Play(cs song.CurrentSong, q []song.Song) {
	position := c.queue.Set(q, cs.Song)
	c.queueVersion++

	c.load(cs)
	c.playing = true

	if c.shuffled && !c.queue.IsEmpty() {
		c.order = shuffle.New(c.queue.Len(), position, c.source)
	}

	zlog.Debug().Msgf("playback: play song=%s queue=%d position=%d shuffled=%t",
		cs.ID, c.queue.Len(), position, c.shuffled)
}

// Pause stops playback without touching anything else.
func (c *Controller) Pause() {
	c.playing = false
}

// Toggle flips the playing flag. No-op when nothing is loaded.
func (c *Controller) Toggle() {
	if c.current == nil {
		return
	}
	c.playing = !c.playing
}

// Next moves to the following song in traversal order and wraps at the end.
// No-op on an empty queue. The playing flag is left unchanged.
func (c *Controller) Next() {
	c.step(true)
}

// Previous moves to the preceding song in traversal order and wraps at the start.
// No-op on an empty queue. The playing flag is left unchanged.
func (c *Controller) Previous() {
	c.step(false)
}

// SetVolume stores v clamped to [0,1].
func (c *Controller) SetVolume(v float64) {
	c.volume = clampVolume(v)
}

// ToggleLoop flips the auto-advance flag. It does not repeat the current
// song: it decides whether end-of-track moves on to the next queue entry.
func (c *Controller) ToggleLoop() {
	c.looping = !c.looping
}

// ToggleShuffle flips shuffle. Turning it on with a non-empty queue builds a
// fresh order anchored on the current position; turning it off keeps the old
// order around unused.
func (c *Controller) ToggleShuffle() {
	c.shuffled = !c.shuffled
	if c.shuffled && !c.queue.IsEmpty() {
		c.order = shuffle.New(c.queue.Len(), c.queue.Position(), c.source)
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	switch {
	case c.current == nil:
		return StateIdle
	case c.playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Current returns the current song, or false when idle.
func (c *Controller) Current() (song.CurrentSong, bool) {
	if c.current == nil {
		return song.CurrentSong{}, false
	}
	return *c.current, true
}

// Recent returns the recently played entry for songID.
func (c *Controller) Recent(songID string) (song.CurrentSong, bool) {
	return lo.Find(c.history.Entries(), func(cs song.CurrentSong) bool {
		return cs.ID == songID
	})
}

// IsLooping reports whether end-of-track advances the queue.
func (c *Controller) IsLooping() bool {
	return c.looping
}

// IsShuffled reports whether shuffle is on.
func (c *Controller) IsShuffled() bool {
	return c.shuffled
}

// QueueLen returns the number of songs in the queue.
func (c *Controller) QueueLen() int {
	return c.queue.Len()
}

// Position returns the current queue position.
func (c *Controller) Position() int {
	return c.queue.Position()
}

// ShuffleOrder returns a copy of the shuffle permutation and its cursor.
// ok is false when shuffle is off or no order has been built.
func (c *Controller) ShuffleOrder() (perm []int, cursor int, ok bool) {
	// The order is rebuilt lazily once the queue changes length.
	if !c.shuffled || c.order == nil || c.order.Len() != c.queue.Len() {
		return nil, 0, false
	}
	return c.order.Permutation(), c.order.Cursor(), true
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:          c.State(),
		Sequence:       c.sequence,
		Playing:        c.playing,
		Volume:         c.volume,
		Looping:        c.looping,
		Shuffled:       c.shuffled,
		Queue:          c.queue.Songs(),
		QueueVersion:   c.queueVersion,
		Position:       c.queue.Position(),
		RecentlyPlayed: c.history.Entries(),
	}
	if c.current != nil {
		cs := *c.current
		snap.Current = &cs
	}
	return snap
}

// step resolves the target index and advances the traversal in one go.
func (c *Controller) step(forward bool) {
	if c.queue.IsEmpty() {
		return
	}

	index := c.resolve(forward)
	s, ok := c.queue.MoveTo(index)
	if !ok {
		zlog.Warn().Msgf("playback: resolved index out of range: index=%d queue=%d", index, c.queue.Len())
		return
	}

	next := song.CurrentSong{Song: s}
	if c.current != nil {
		next.Playlist = c.current.Playlist
	}
	c.load(next)
}

// resolve computes the next queue index. In shuffle mode it moves the
// shuffle cursor as a side effect, so it must be called exactly once per step.
func (c *Controller) resolve(forward bool) int {
	if c.shuffled {
		if c.order == nil || c.order.Len() != c.queue.Len() {
			c.order = shuffle.New(c.queue.Len(), c.queue.Position(), c.source)
		}
		if forward {
			return c.order.Advance()
		}
		return c.order.Retreat()
	}

	if forward {
		return c.queue.Step(1)
	}
	return c.queue.Step(-1)
}

// load supersedes the current song and records it as played.
func (c *Controller) load(cs song.CurrentSong) {
	c.current = &cs
	c.sequence++
	c.history.Record(cs)
}

func clampVolume(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
