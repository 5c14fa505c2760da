//go:build (linux && cgo) || windows || darwin

package audio

import (
	"context"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/media"
)

// Available indicates whether audio playback is supported in this build.
const Available = true

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Speaker plays media on the default audio device through beep.
type Speaker struct {
	emitter

	mu         sync.Mutex
	settings   Settings
	sampleRate beep.SampleRate
	client     *http.Client
	src        string
	streamer   beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	level      float64
	generation uint64
	queued     bool // Stream is attached to the mixer
	stopClock  chan struct{}
}

// NewSpeaker initializes the audio device and returns a sink driving it.
func NewSpeaker(settings Settings) (*Speaker, error) {
	sampleRate := beep.SampleRate(settings.SampleRate)
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(settings.Buffer))
	})
	if speakerErr != nil {
		return nil, errors.Wrap(speakerErr, "failed to initialize speaker")
	}

	zlog.Info().Msgf("audio: speaker initialized: sample_rate=%d, buffer=%s", settings.SampleRate, settings.Buffer)
	return &Speaker{
		emitter:    newEmitter(),
		settings:   settings,
		sampleRate: sampleRate,
		client:     &http.Client{Timeout: settings.FetchTimeout},
		level:      1,
	}, nil
}

// Load implements media.Sink. The stream reaches the mixer on Play.
func (s *Speaker) Load(ctx context.Context, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.generation++
	s.src = src

	r, err := open(ctx, s.client, src)
	if err != nil {
		return err
	}
	streamer, format, err := decode(src, r)
	if err != nil {
		r.Close()
		return errors.Wrapf(err, "failed to decode media: %s", src)
	}

	s.streamer = streamer
	s.format = format
	resampled := beep.Resample(s.settings.ResampleQuality, format.SampleRate, s.sampleRate, streamer)
	s.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: levelToVolume(s.level), Silent: s.level <= 0}

	duration := format.SampleRate.D(streamer.Len())
	zlog.Debug().Msgf("audio: loaded: src=%s, duration=%s", src, duration)
	s.offer(media.Event{Type: media.EventMetadataLoaded, Source: src, Duration: duration})
	return nil
}

func decode(src string, r io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	if formatOf(src) == FormatWAV {
		return wav.Decode(r)
	}
	return mp3.Decode(r)
}

// Play implements media.Sink.
func (s *Speaker) Play(_ context.Context) <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return resolved(ErrNothingLoaded)
	}

	speaker.Lock()
	rewind, attach := restartPlan(s.queued, s.streamer.Position(), s.streamer.Len())
	var err error
	if rewind {
		err = s.streamer.Seek(0)
	}
	s.ctrl.Paused = false
	speaker.Unlock()
	if err != nil {
		return resolved(errors.Wrapf(err, "failed to rewind: %s", s.src))
	}

	if attach {
		s.attachLocked()
	}
	if s.stopClock == nil {
		s.stopClock = make(chan struct{})
		go s.run(s.generation, s.src, s.stopClock)
	}
	return resolved(nil)
}

// Pause implements media.Sink.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = true
		speaker.Unlock()
	}
	s.haltLocked()
}

// Seek implements media.Sink.
func (s *Speaker) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return ErrNothingLoaded
	}
	speaker.Lock()
	defer speaker.Unlock()

	n := s.format.SampleRate.N(position)
	n = max(0, min(n, s.streamer.Len()-1))
	return errors.Wrap(s.streamer.Seek(n), "failed to seek")
}

// SetVolume implements media.Sink.
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = max(0, min(level, 1))
	if s.volume != nil {
		speaker.Lock()
		s.volume.Volume = levelToVolume(s.level)
		s.volume.Silent = s.level <= 0
		speaker.Unlock()
	}
}

// Close implements media.Sink.
func (s *Speaker) Close() error {
	s.mu.Lock()
	s.releaseLocked()
	s.mu.Unlock()

	s.shutdown()
	return nil
}

// attachLocked hands the stream to the mixer under a new generation, so a
// completion from an earlier attachment is ignored. Callers hold s.mu.
func (s *Speaker) attachLocked() {
	s.haltLocked()
	s.generation++
	s.queued = true
	generation, src := s.generation, s.src

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs on the audio goroutine with the speaker locked.
		go s.ended(generation, src)
	})))
}

// releaseLocked stops output and frees the current stream. Callers hold s.mu.
func (s *Speaker) releaseLocked() {
	s.haltLocked()
	speaker.Clear()
	if s.streamer != nil {
		if err := s.streamer.Close(); err != nil {
			zlog.Debug().Err(err).Msgf("audio: failed to close stream: src=%s", s.src)
		}
	}
	s.streamer = nil
	s.ctrl = nil
	s.volume = nil
	s.queued = false
	s.src = ""
}

func (s *Speaker) haltLocked() {
	if s.stopClock != nil {
		close(s.stopClock)
		s.stopClock = nil
	}
}

func (s *Speaker) ended(generation uint64, src string) {
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.queued = false
	s.haltLocked()
	s.mu.Unlock()

	s.emit(media.Event{Type: media.EventEnded, Source: src})
}

func (s *Speaker) run(generation uint64, src string, stop <-chan struct{}) {
	ticker := time.NewTicker(s.settings.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.streamer == nil || s.generation != generation {
			s.mu.Unlock()
			return
		}
		speaker.Lock()
		position := s.format.SampleRate.D(s.streamer.Position())
		duration := s.format.SampleRate.D(s.streamer.Len())
		speaker.Unlock()
		s.mu.Unlock()

		s.offer(media.Event{Type: media.EventTimeUpdate, Source: src, Position: position, Duration: duration})
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

var _ media.Sink = (*Speaker)(nil)
