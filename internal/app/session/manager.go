// Package session provides the session manager.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/app/media"
	"github.com/osa030/tunebox/internal/app/notification"
	"github.com/osa030/tunebox/internal/app/playback"
	"github.com/osa030/tunebox/internal/domain/song"
)

var (
	ErrSessionNotRunning = errors.New("session is not running")
	ErrNotRecentlyPlayed = errors.New("song is not in recently played")
)

// outboxSize bounds notifications waiting for the broadcaster.
const outboxSize = 64

// Catalog resolves songs and playlists for PlaySong.
type Catalog interface {
	GetSong(ctx context.Context, id string) (song.Song, error)
	GetPlaylist(ctx context.Context, id string) (song.Playlist, error)
	ListSongs(ctx context.Context, playlistID string) ([]song.Song, error)
}

// Config holds session configuration.
type Config struct {
	Player playback.Config
}

// command is a user transition queued for the event loop.
type command struct {
	name string
	fn   func()
	done chan struct{}
}

// Manager owns the player session. User commands and sink events are
// drained by a single goroutine, so every transition runs to completion
// before the next one starts.
type Manager struct {
	mu      sync.RWMutex
	started bool
	closed  bool

	// Components
	controller   *playback.Controller
	adapter      *media.Adapter
	sink         media.Sink
	catalog      Catalog
	notification *notification.Manager

	// Published state
	statusMu sync.RWMutex
	status   Status
	last     playback.Snapshot // Owned by the event loop

	// Channels
	commands  chan command
	outbox    chan *tuneboxv1.Notification
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates a new session manager. The session does not process
// commands until Start is called.
func NewManager(cfg Config, sink media.Sink, catalog Catalog) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		controller:   playback.NewController(cfg.Player),
		adapter:      media.NewAdapter(sink),
		sink:         sink,
		catalog:      catalog,
		notification: notification.NewManager(),

		commands: make(chan command),
		outbox:   make(chan *tuneboxv1.Notification, outboxSize),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start pushes the initial state to the sink and starts the event loop.
// Starting twice is a no-op; starting a closed session fails.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrSessionNotRunning
	}
	if m.started {
		return nil
	}

	snap := m.controller.Snapshot()
	m.adapter.Sync(ctx, snap)
	m.last = snap
	m.setStatus(Status{Snapshot: snap, Progress: m.adapter.Progress()})

	go m.loop()
	go m.broadcastLoop()

	m.started = true
	zlog.Info().Msgf("session: started: volume=%.2f looping=%t shuffled=%t", snap.Volume, snap.Looping, snap.Shuffled)
	return nil
}

// Close stops the event loop, closes the sink and drops all subscribers.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		started := m.started
		m.closed = true
		m.mu.Unlock()

		m.cancel()
		if started {
			<-m.done
		} else {
			close(m.done)
		}

		// Pending sink requests run against the cancelled context
		m.adapter.Close()
		if err := m.sink.Close(); err != nil {
			zlog.Warn().Err(err).Msg("session: failed to close sink")
		}
		m.notification.Close()
		zlog.Info().Msg("session: closed")
	})
}

// Done returns a channel that is closed when the session is stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// GetNotificationManager returns the notification manager.
func (m *Manager) GetNotificationManager() *notification.Manager {
	return m.notification
}

// Status returns the state published by the last applied transition.
func (m *Manager) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

// Play loads cs with queue as the new queue and starts playing.
func (m *Manager) Play(cs song.CurrentSong, queue []song.Song) error {
	return m.dispatch("play", func() {
		m.controller.Play(cs, queue)
	})
}

// PlaySong resolves songID through the catalog and plays it. With a
// playlistID the queue is the playlist's songs; without one the queue holds
// the song alone.
func (m *Manager) PlaySong(ctx context.Context, songID, playlistID string) error {
	if !m.running() {
		return ErrSessionNotRunning
	}

	s, err := m.catalog.GetSong(ctx, songID)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve song: song_id=%s", songID)
	}

	cs := song.Current(s)
	queue := []song.Song{s}
	if playlistID != "" {
		pl, err := m.catalog.GetPlaylist(ctx, playlistID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve playlist: playlist_id=%s", playlistID)
		}
		songs, err := m.catalog.ListSongs(ctx, playlistID)
		if err != nil {
			return errors.Wrapf(err, "failed to list playlist songs: playlist_id=%s", playlistID)
		}
		cs.Playlist = &pl
		queue = songs
	}

	zlog.Info().Msgf("session: play song=%s name=%q playlist=%s queue=%d", s.ID, s.Name, playlistID, len(queue))
	return m.Play(cs, queue)
}

// Replay plays a recently played song again, with its launching playlist
// and an empty queue.
func (m *Manager) Replay(songID string) error {
	var found bool
	err := m.dispatch("replay", func() {
		cs, ok := m.controller.Recent(songID)
		if !ok {
			return
		}
		found = true
		m.controller.Play(cs, nil)
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.Wrapf(ErrNotRecentlyPlayed, "song_id=%s", songID)
	}
	return nil
}

// Pause stops playback.
func (m *Manager) Pause() error {
	return m.dispatch("pause", m.controller.Pause)
}

// Toggle flips between playing and paused.
func (m *Manager) Toggle() error {
	return m.dispatch("toggle", m.controller.Toggle)
}

// Next moves to the following song.
func (m *Manager) Next() error {
	return m.dispatch("next", m.controller.Next)
}

// Previous moves to the preceding song.
func (m *Manager) Previous() error {
	return m.dispatch("previous", m.controller.Previous)
}

// SetVolume sets the volume, clamped to [0,1].
func (m *Manager) SetVolume(v float64) error {
	return m.dispatch("set_volume", func() {
		m.controller.SetVolume(v)
	})
}

// ToggleLoop flips auto-advance.
func (m *Manager) ToggleLoop() error {
	return m.dispatch("toggle_loop", m.controller.ToggleLoop)
}

// ToggleShuffle flips shuffle.
func (m *Manager) ToggleShuffle() error {
	return m.dispatch("toggle_shuffle", m.controller.ToggleShuffle)
}

// BeginScrub freezes the progress view for a drag.
func (m *Manager) BeginScrub() error {
	return m.dispatch("begin_scrub", m.adapter.BeginScrub)
}

// Scrub moves the displayed position during a drag.
func (m *Manager) Scrub(position time.Duration) error {
	return m.dispatch("scrub", func() {
		m.adapter.Scrub(position)
	})
}

// EndScrub releases the drag and seeks the sink once.
func (m *Manager) EndScrub() error {
	return m.dispatch("end_scrub", func() {
		m.adapter.EndScrub()
	})
}

// running reports whether commands are being processed.
func (m *Manager) running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.started && !m.closed
}

// dispatch queues fn on the event loop and waits until it has been applied
// and published. It never waits on the sink.
func (m *Manager) dispatch(name string, fn func()) error {
	if !m.running() {
		return ErrSessionNotRunning
	}

	cmd := command{name: name, fn: fn, done: make(chan struct{})}
	select {
	case m.commands <- cmd:
	case <-m.done:
		return ErrSessionNotRunning
	}

	select {
	case <-cmd.done:
		return nil
	case <-m.done:
		return ErrSessionNotRunning
	}
}

// loop is the session event loop.
func (m *Manager) loop() {
	defer close(m.done)

	events := m.sink.Events()
	for {
		select {
		case <-m.ctx.Done():
			return

		case cmd := <-m.commands:
			zlog.Debug().Msgf("session: command: name=%s", cmd.name)
			cmd.fn()
			m.publish(isScrub(cmd.name))
			close(cmd.done)

		case ev, ok := <-events:
			if !ok {
				zlog.Warn().Msg("session: sink event stream closed")
				events = nil
				continue
			}
			progressed := m.adapter.HandleEvent(ev, m.controller)
			m.publish(progressed)
		}
	}
}

// publish mirrors the controller onto the sink, stores the resulting status
// and queues a notification describing what changed.
func (m *Manager) publish(progressed bool) {
	next := m.controller.Snapshot()
	m.adapter.Sync(m.ctx, next)

	changes := playback.Diff(m.last, next)
	m.last = next

	status := Status{Snapshot: next, Progress: m.adapter.Progress()}
	m.setStatus(status)

	typ, ok := notificationType(changes, progressed)
	if !ok {
		return
	}
	if typ != tuneboxv1.NotificationTypeProgress {
		zlog.Debug().Msgf("session: changes=%v notify=%s", changes, typ)
	}

	n := &tuneboxv1.Notification{Type: typ, Status: status.Message()}
	select {
	case m.outbox <- n:
	default:
		zlog.Warn().Msgf("session: notification dropped, outbox full: type=%s", typ)
	}
}

// broadcastLoop sends queued notifications in order.
func (m *Manager) broadcastLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case n := <-m.outbox:
			m.notification.Broadcast(n)
		}
	}
}

func (m *Manager) setStatus(status Status) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	m.status = status
}

func isScrub(name string) bool {
	return name == "begin_scrub" || name == "scrub" || name == "end_scrub"
}

// notificationType picks the most significant change.
func notificationType(changes []playback.EventType, progressed bool) (tuneboxv1.NotificationType, bool) {
	switch {
	case lo.Contains(changes, playback.EventSongChanged):
		return tuneboxv1.NotificationTypeSongChanged, true
	case lo.Contains(changes, playback.EventStateChanged):
		return tuneboxv1.NotificationTypeStateChanged, true
	case len(changes) > 0:
		return tuneboxv1.NotificationTypeSettingsChanged, true
	case progressed:
		return tuneboxv1.NotificationTypeProgress, true
	default:
		return "", false
	}
}
