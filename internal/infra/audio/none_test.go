package audio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunebox/internal/app/media"
	"github.com/osa030/tunebox/internal/infra/config"
)

func newTestNone(t *testing.T, length time.Duration) *None {
	t.Helper()
	settings, err := DecodeSettings(config.SinkConfig{Type: config.SinkTypeNone})
	require.NoError(t, err)
	settings.TrackLength = length
	settings.ProgressInterval = 5 * time.Millisecond

	n := NewNone(settings)
	t.Cleanup(func() { n.Close() })
	return n
}

// next waits for the next event of the given type, skipping others.
func next(t *testing.T, n *None, typ media.EventType) media.Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-n.Events():
			if ev.Type == typ {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", typ)
		}
	}
}

func TestNone_LoadEmitsMetadata(t *testing.T) {
	n := newTestNone(t, time.Minute)

	require.NoError(t, n.Load(context.Background(), "/music/a.mp3"))

	ev := next(t, n, media.EventMetadataLoaded)
	assert.Equal(t, "/music/a.mp3", ev.Source)
	assert.Equal(t, time.Minute, ev.Duration)
	assert.False(t, n.Playing())
}

func TestNone_PlayWithoutLoad(t *testing.T) {
	n := newTestNone(t, time.Minute)

	err := <-n.Play(context.Background())
	assert.ErrorIs(t, err, ErrNothingLoaded)
	assert.ErrorIs(t, n.Seek(time.Second), ErrNothingLoaded)
}

func TestNone_PlayResolvesOnce(t *testing.T) {
	n := newTestNone(t, time.Minute)
	require.NoError(t, n.Load(context.Background(), "a"))

	done := n.Play(context.Background())
	assert.NoError(t, <-done)
	_, ok := <-done
	assert.False(t, ok, "play future must close after its value")
}

func TestNone_TimeUpdatesThenEnd(t *testing.T) {
	n := newTestNone(t, 30*time.Millisecond)
	require.NoError(t, n.Load(context.Background(), "a"))
	require.NoError(t, <-n.Play(context.Background()))

	update := next(t, n, media.EventTimeUpdate)
	assert.Equal(t, "a", update.Source)
	assert.Positive(t, update.Position)
	assert.Equal(t, 30*time.Millisecond, update.Duration)

	ended := next(t, n, media.EventEnded)
	assert.Equal(t, "a", ended.Source)
	assert.Equal(t, 30*time.Millisecond, ended.Position)
	assert.False(t, n.Playing())
}

func TestNone_PlayAfterEndRestarts(t *testing.T) {
	n := newTestNone(t, 20*time.Millisecond)
	require.NoError(t, n.Load(context.Background(), "a"))
	require.NoError(t, <-n.Play(context.Background()))
	next(t, n, media.EventEnded)

	require.NoError(t, <-n.Play(context.Background()))

	assert.True(t, n.Playing())
	ended := next(t, n, media.EventEnded)
	assert.Equal(t, "a", ended.Source)
}

func TestNone_PauseFreezesPosition(t *testing.T) {
	n := newTestNone(t, time.Minute)
	require.NoError(t, n.Load(context.Background(), "a"))
	require.NoError(t, <-n.Play(context.Background()))
	next(t, n, media.EventTimeUpdate)

	n.Pause()
	frozen := n.Position()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, frozen, n.Position())
	assert.False(t, n.Playing())
}

func TestNone_Seek(t *testing.T) {
	n := newTestNone(t, time.Minute)
	require.NoError(t, n.Load(context.Background(), "a"))

	tests := []struct {
		name   string
		target time.Duration
		want   time.Duration
	}{
		{name: "inside", target: 20 * time.Second, want: 20 * time.Second},
		{name: "negative", target: -time.Second, want: 0},
		{name: "past end", target: 2 * time.Minute, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, n.Seek(tt.target))
			assert.Equal(t, tt.want, n.Position())
		})
	}
}

func TestNone_LoadResetsPosition(t *testing.T) {
	n := newTestNone(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, n.Load(ctx, "a"))
	require.NoError(t, n.Seek(10*time.Second))
	require.NoError(t, <-n.Play(ctx))

	require.NoError(t, n.Load(ctx, "b"))

	assert.Zero(t, n.Position())
	assert.False(t, n.Playing())
}

func TestNone_SetVolume(t *testing.T) {
	n := newTestNone(t, time.Minute)

	n.SetVolume(0.25)

	assert.Equal(t, 0.25, n.Volume())
}

func TestNone_CloseStopsClock(t *testing.T) {
	n := newTestNone(t, 10*time.Millisecond)
	require.NoError(t, n.Load(context.Background(), "a"))
	require.NoError(t, <-n.Play(context.Background()))

	require.NoError(t, n.Close())
	require.NoError(t, n.Close())

	assert.False(t, n.Playing())
	assert.ErrorIs(t, <-n.Play(context.Background()), ErrNothingLoaded)
}
