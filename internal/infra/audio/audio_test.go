package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunebox/internal/infra/config"
)

func TestDecodeSettings(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		check   func(t *testing.T, s Settings)
		wantErr bool
	}{
		{
			name:  "defaults",
			input: nil,
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 44100, s.SampleRate)
				assert.Equal(t, 100*time.Millisecond, s.Buffer)
				assert.Equal(t, 4, s.ResampleQuality)
				assert.Equal(t, 250*time.Millisecond, s.ProgressInterval)
				assert.Equal(t, 30*time.Second, s.TrackLength)
			},
		},
		{
			name:  "overrides",
			input: map[string]any{"sample_rate": 48000, "progress_interval": "1s", "track_length": "3m"},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 48000, s.SampleRate)
				assert.Equal(t, time.Second, s.ProgressInterval)
				assert.Equal(t, 3*time.Minute, s.TrackLength)
				assert.Equal(t, 4, s.ResampleQuality)
			},
		},
		{
			name:    "sample rate out of range",
			input:   map[string]any{"sample_rate": 100},
			wantErr: true,
		},
		{
			name:    "unknown key",
			input:   map[string]any{"device": "hw:0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeSettings(config.SinkConfig{Type: config.SinkTypeNone, Settings: tt.input})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestNew(t *testing.T) {
	sink, err := New(config.SinkConfig{Type: config.SinkTypeNone})
	require.NoError(t, err)
	defer sink.Close()
	assert.IsType(t, &None{}, sink)

	_, err = New(config.SinkConfig{Type: "alsa"})
	assert.ErrorContains(t, err, "unknown sink type")

	_, err = New(config.SinkConfig{Type: config.SinkTypeNone, Settings: map[string]any{"buffer": "1ms"}})
	assert.Error(t, err)
}

func TestRestartPlan(t *testing.T) {
	tests := []struct {
		name       string
		attached   bool
		position   int
		length     int
		wantRewind bool
		wantAttach bool
	}{
		{name: "first play", attached: false, position: 0, length: 100, wantAttach: true},
		{name: "resume after pause", attached: true, position: 40, length: 100},
		{name: "seeked back after end", attached: false, position: 40, length: 100, wantAttach: true},
		{name: "play after natural end", attached: false, position: 100, length: 100, wantRewind: true, wantAttach: true},
		{name: "drained before completion ran", attached: true, position: 100, length: 100, wantRewind: true, wantAttach: true},
		{name: "empty stream", attached: false, position: 0, length: 0, wantRewind: true, wantAttach: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewind, attach := restartPlan(tt.attached, tt.position, tt.length)
			assert.Equal(t, tt.wantRewind, rewind)
			assert.Equal(t, tt.wantAttach, attach)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		src  string
		want Format
	}{
		{"/music/a.mp3", FormatMP3},
		{"/music/b.WAV", FormatWAV},
		{"https://p.scdn.co/mp3-preview/abc?cid=1", FormatMP3},
		{"https://cdn.example.com/clip.wav?token=x", FormatWAV},
		{"song", FormatMP3},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, formatOf(tt.src))
		})
	}
}

func TestOpen_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o644))

	for _, src := range []string{path, "file://" + path} {
		r, err := open(context.Background(), http.DefaultClient, src)
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "local", string(data))
		require.NoError(t, r.Close())
	}
}

func TestOpen_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	r, err := open(context.Background(), srv.Client(), srv.URL+"/clip")
	require.NoError(t, err)
	_, err = r.Seek(2, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "mote", string(data))

	_, err = open(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}

func TestOpen_Errors(t *testing.T) {
	_, err := open(context.Background(), http.DefaultClient, "")
	assert.ErrorIs(t, err, ErrNothingLoaded)

	_, err = open(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorContains(t, err, "failed to open media")
}
