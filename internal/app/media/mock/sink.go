// Package mock provides a recording media.Sink for tests.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/osa030/tunebox/internal/app/media"
)

// Call is one recorded sink request.
type Call struct {
	Method string
	Src    string
	Volume float64
	Seek   time.Duration
}

// Sink records every request and lets tests inject sink events.
type Sink struct {
	mu      sync.Mutex
	calls   []Call
	source  string
	playErr error
	loadErr error
	seekErr error
	events  chan media.Event
	closed  bool
}

// NewSink creates a recording sink.
func NewSink() *Sink {
	return &Sink{events: make(chan media.Event, 64)}
}

// FailPlay makes subsequent Play requests resolve with err.
func (s *Sink) FailPlay(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playErr = err
}

// FailLoad makes subsequent Load requests fail with err.
func (s *Sink) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSeek makes subsequent Seek requests fail with err.
func (s *Sink) FailSeek(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekErr = err
}

// Load implements media.Sink.
func (s *Sink) Load(_ context.Context, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: "load", Src: src})
	if s.loadErr != nil {
		return s.loadErr
	}
	s.source = src
	return nil
}

// Play implements media.Sink.
func (s *Sink) Play(_ context.Context) <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: "play", Src: s.source})

	done := make(chan error, 1)
	done <- s.playErr
	close(done)
	return done
}

// Pause implements media.Sink.
func (s *Sink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: "pause", Src: s.source})
}

// Seek implements media.Sink.
func (s *Sink) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: "seek", Src: s.source, Seek: position})
	return s.seekErr
}

// SetVolume implements media.Sink.
func (s *Sink) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: "volume", Volume: volume})
}

// Events implements media.Sink.
func (s *Sink) Events() <-chan media.Event {
	return s.events
}

// Close implements media.Sink.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}

// Emit pushes an event as if the device raised it. Events without a source
// are stamped with the currently loaded one.
func (s *Sink) Emit(ev media.Event) {
	s.mu.Lock()
	if ev.Source == "" {
		ev.Source = s.source
	}
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.events <- ev
}

// End emits an end-of-track event for the loaded media.
func (s *Sink) End() {
	s.Emit(media.Event{Type: media.EventEnded})
}

// Source returns the loaded media reference.
func (s *Sink) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Calls returns a copy of the recorded requests.
func (s *Sink) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Call, len(s.calls))
	copy(result, s.calls)
	return result
}

// Methods returns the recorded request names in order.
func (s *Sink) Methods() []string {
	calls := s.Calls()
	methods := make([]string, len(calls))
	for i, c := range calls {
		methods[i] = c.Method
	}
	return methods
}

// Reset forgets recorded requests.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

var _ media.Sink = (*Sink)(nil)
