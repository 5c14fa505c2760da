package connect

import (
	"context"

	"connectrpc.com/connect"

	"github.com/osa030/tunebox/internal/app/session"
)

// sessionInterceptor installs the session manager into every request context.
type sessionInterceptor struct {
	manager *session.Manager
}

// NewSessionInterceptor returns an interceptor that makes m available to
// handlers through session.FromContext.
func NewSessionInterceptor(m *session.Manager) connect.Interceptor {
	return &sessionInterceptor{manager: m}
}

func (i *sessionInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return next(session.WithManager(ctx, i.manager), req)
	}
}

func (i *sessionInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *sessionInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		return next(session.WithManager(ctx, i.manager), conn)
	}
}
