package media

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/playback"
)

// Transport is the part of the state machine that sink events may drive.
type Transport interface {
	IsLooping() bool
	QueueLen() int
	Next()
	Pause()
}

// applied is what the adapter last pushed to the sink.
type applied struct {
	sequence uint64
	playing  bool
	volume   float64
	source   string
}

// Adapter mirrors state machine intent onto a Sink and relays sink events
// back. The sink has no native loop; auto-advance is decided here from the
// state machine's loop flag.
//
// Sink requests are applied in order by a single worker goroutine, never on
// the caller's goroutine. Adapter is otherwise not safe for concurrent use;
// it runs on the session event loop.
type Adapter struct {
	sink     Sink
	progress Progress
	last     applied
	synced   bool

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	closed  bool
	stopped chan struct{}
	starts  sync.WaitGroup
}

// NewAdapter creates an adapter driving sink. Close releases its worker.
func NewAdapter(sink Sink) *Adapter {
	a := &Adapter{
		sink:    sink,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go a.run()
	return a
}

// Sync pushes the snapshot's intent to the sink. Start requests are not
// awaited; their failures are logged and otherwise ignored, so the playing
// flag keeps reflecting what the listener asked for.
func (a *Adapter) Sync(ctx context.Context, snap playback.Snapshot) {
	first := !a.synced
	a.synced = true

	if first || snap.Volume != a.last.volume {
		volume := snap.Volume
		a.do(func() { a.sink.SetVolume(volume) })
		a.last.volume = snap.Volume
	}

	songChanged := snap.Sequence != a.last.sequence
	if songChanged {
		a.last.sequence = snap.Sequence
		a.progress.Reset()
		a.last.source = ""
		if snap.Current != nil {
			songID, src := snap.Current.ID, snap.Current.FileURL
			a.last.source = src
			a.do(func() {
				if err := a.sink.Load(ctx, src); err != nil {
					zlog.Warn().Err(err).Msgf("media: failed to load: song=%s src=%s", songID, src)
				}
			})
		}
	}

	if !first && !songChanged && snap.Playing == a.last.playing {
		return
	}
	a.last.playing = snap.Playing

	if snap.Playing && snap.Current != nil {
		a.start(ctx, snap.Current.ID, snap.Current.FileURL)
		return
	}
	a.do(a.sink.Pause)
}

// HandleEvent applies a sink event. End-of-track advances through t when
// looping is on and the queue is non-empty, and stops playback otherwise.
// Metadata and time updates only reach the progress view. Returns true when
// the progress view changed.
func (a *Adapter) HandleEvent(ev Event, t Transport) bool {
	if ev.Source != "" && ev.Source != a.last.source {
		zlog.Debug().Msgf("media: dropping stale %s event: src=%s current=%s", ev.Type, ev.Source, a.last.source)
		return false
	}

	switch ev.Type {
	case EventEnded:
		if t.IsLooping() && t.QueueLen() > 0 {
			zlog.Debug().Msgf("media: track ended, advancing: src=%s", ev.Source)
			t.Next()
		} else {
			zlog.Debug().Msgf("media: track ended, stopping: src=%s", ev.Source)
			t.Pause()
		}
		return false
	case EventMetadataLoaded:
		before := a.progress.View()
		a.progress.OnMetadata(ev.Duration)
		return a.progress.View() != before
	case EventTimeUpdate:
		return a.progress.OnTimeUpdate(ev.Position, ev.Duration)
	case EventError:
		zlog.Warn().Err(ev.Err).Msgf("media: sink error: src=%s", ev.Source)
		return false
	default:
		return false
	}
}

// BeginScrub freezes the progress view for a user drag.
func (a *Adapter) BeginScrub() {
	a.progress.BeginDrag()
}

// Scrub moves the displayed position during a drag. The sink is not touched.
func (a *Adapter) Scrub(position time.Duration) {
	a.progress.DragTo(position)
}

// EndScrub releases the drag and issues a single seek to the sink.
// Returns false when no drag was in effect.
func (a *Adapter) EndScrub() bool {
	position, ok := a.progress.EndDrag()
	if !ok {
		return false
	}
	a.do(func() {
		if err := a.sink.Seek(position); err != nil {
			zlog.Warn().Err(err).Msgf("media: seek failed: position=%v", position)
		}
	})
	return true
}

// Progress returns the progress view.
func (a *Adapter) Progress() ProgressView {
	return a.progress.View()
}

// Wait blocks until every queued sink request has been applied and every
// pending start request has resolved.
func (a *Adapter) Wait() {
	applied := make(chan struct{})
	if a.do(func() { close(applied) }) {
		<-applied
	}
	a.starts.Wait()
}

// Close applies the requests already queued, waits for pending starts and
// stops the worker. Later requests are dropped. The sink is left open.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.stopped
		return
	}
	a.closed = true
	close(a.wake)
	a.mu.Unlock()

	<-a.stopped
	a.starts.Wait()
}

func (a *Adapter) start(ctx context.Context, songID, src string) {
	a.do(func() {
		done := a.sink.Play(ctx)

		a.starts.Add(1)
		go func() {
			defer a.starts.Done()
			if err := <-done; err != nil {
				zlog.Warn().Err(err).Msgf("media: playback start failed: song=%s src=%s", songID, src)
			}
		}()
	})
}

// do queues a sink request for the worker. Returns false once closed.
func (a *Adapter) do(fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return false
	}
	a.pending = append(a.pending, fn)
	select {
	case a.wake <- struct{}{}:
	default:
	}
	return true
}

func (a *Adapter) run() {
	defer close(a.stopped)
	for range a.wake {
		a.drain()
	}
	a.drain()
}

func (a *Adapter) drain() {
	for {
		a.mu.Lock()
		batch := a.pending
		a.pending = nil
		a.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}
