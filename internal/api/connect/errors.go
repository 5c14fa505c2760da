package connect

import (
	"context"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/session"
	"github.com/osa030/tunebox/internal/infra/spotify"
	"github.com/osa030/tunebox/internal/infra/store"
)

var validate = validator.New()

// validateRequest rejects malformed request messages.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps application errors onto Connect codes.
func toConnectError(procedure string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, session.ErrNotRecentlyPlayed):
		code = connect.CodeNotFound
	case errors.Is(err, session.ErrSessionNotRunning):
		code = connect.CodeUnavailable
	case errors.Is(err, spotify.ErrInvalidPlaylistRef):
		code = connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		code = connect.CodeInternal
		zlog.Error().Err(err).Msgf("api: %s failed", procedure)
	}
	return connect.NewError(code, err)
}
