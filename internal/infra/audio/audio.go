// Package audio provides the playback sinks: a speaker backed by beep and a
// silent simulator.
package audio

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/osa030/tunebox/internal/app/media"
	"github.com/osa030/tunebox/internal/infra/config"
)

var (
	// ErrNothingLoaded is returned when playback is requested before a Load.
	ErrNothingLoaded = errors.New("no media loaded")
	// ErrUnavailable is returned when the speaker is not compiled in.
	ErrUnavailable = errors.New("audio output is not available in this build")
)

// Settings holds sink tuning decoded from the sink settings map.
type Settings struct {
	SampleRate       int           `mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	Buffer           time.Duration `mapstructure:"buffer" default:"100ms" validate:"gte=10ms"`
	ResampleQuality  int           `mapstructure:"resample_quality" default:"4" validate:"gte=1,lte=64"`
	ProgressInterval time.Duration `mapstructure:"progress_interval" default:"250ms" validate:"gte=1ms"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout" default:"15s" validate:"gt=0"`
	TrackLength      time.Duration `mapstructure:"track_length" default:"30s" validate:"gt=0"` // none sink only
}

// DecodeSettings applies defaults, then the configured overrides, then validates.
func DecodeSettings(cfg config.SinkConfig) (Settings, error) {
	var s Settings
	if err := defaults.Set(&s); err != nil {
		return Settings{}, errors.Wrap(err, "failed to set sink defaults")
	}
	if err := cfg.DecodeSettings(&s); err != nil {
		return Settings{}, err
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, errors.Wrap(err, "invalid sink settings")
	}
	return s, nil
}

// New builds the sink selected by cfg.
func New(cfg config.SinkConfig) (media.Sink, error) {
	settings, err := DecodeSettings(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Type {
	case config.SinkTypeSpeaker:
		sp, err := NewSpeaker(settings)
		if err != nil {
			return nil, err
		}
		return sp, nil
	case config.SinkTypeNone:
		return NewNone(settings), nil
	default:
		return nil, errors.Newf("unknown sink type: %s", cfg.Type)
	}
}

// emitter delivers sink events without ever blocking past Close.
type emitter struct {
	events chan media.Event
	done   chan struct{}
	once   sync.Once
}

func newEmitter() emitter {
	return emitter{
		events: make(chan media.Event, 64),
		done:   make(chan struct{}),
	}
}

// emit blocks until the event is consumed or the sink is closed.
// Never call it from the goroutine that drains Events.
func (e *emitter) emit(ev media.Event) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// offer drops the event when the buffer is full.
func (e *emitter) offer(ev media.Event) {
	select {
	case e.events <- ev:
	default:
	}
}

// Events implements media.Sink.
func (e *emitter) Events() <-chan media.Event {
	return e.events
}

func (e *emitter) shutdown() {
	e.once.Do(func() { close(e.done) })
}

func resolved(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}

// restartPlan decides how to resume a stream of length samples at position.
// A drained stream is rewound, and a stream the mixer no longer pulls from
// is attached again.
func restartPlan(attached bool, position, length int) (rewind, attach bool) {
	drained := position >= length
	return drained, drained || !attached
}

func clamp(d, lo, hi time.Duration) time.Duration {
	return max(lo, min(d, hi))
}
