package session

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrNoSession is returned when a context carries no session manager.
var ErrNoSession = errors.New("no session in context")

type contextKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the session manager carried by ctx. It fails with
// ErrNoSession when none was installed and ErrSessionNotRunning when the
// session has not been started or was closed.
func FromContext(ctx context.Context) (*Manager, error) {
	m, ok := ctx.Value(contextKey{}).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoSession
	}
	if !m.running() {
		return nil, ErrSessionNotRunning
	}
	return m, nil
}
