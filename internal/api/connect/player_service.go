package connect

import (
	"context"
	"sync"
	"time"

	"connectrpc.com/connect"
	zlog "github.com/rs/zerolog/log"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/app/session"
)

type (
	emptyRequest   = connect.Request[tuneboxv1.Empty]
	statusResponse = connect.Response[tuneboxv1.StatusResponse]
)

// PlayerService implements the PlayerService RPC. The session manager is
// taken from the request context, see NewSessionInterceptor.
type PlayerService struct{}

// NewPlayerService creates a new PlayerService.
func NewPlayerService() *PlayerService {
	return &PlayerService{}
}

// Ensure PlayerService implements the interface.
var _ tuneboxv1connect.PlayerServiceHandler = (*PlayerService)(nil)

// apply runs op against the session and responds with the resulting status.
func (s *PlayerService) apply(ctx context.Context, procedure string, op func(*session.Manager) error) (*statusResponse, error) {
	m, err := session.FromContext(ctx)
	if err != nil {
		return nil, toConnectError(procedure, err)
	}
	if err := op(m); err != nil {
		return nil, toConnectError(procedure, err)
	}
	return connect.NewResponse(&tuneboxv1.StatusResponse{Status: m.Status().Message()}), nil
}

// Play plays a catalog song, optionally within its playlist.
func (s *PlayerService) Play(
	ctx context.Context,
	req *connect.Request[tuneboxv1.PlayRequest],
) (*statusResponse, error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	return s.apply(ctx, "play", func(m *session.Manager) error {
		return m.PlaySong(ctx, req.Msg.SongID, req.Msg.PlaylistID)
	})
}

// Replay plays a recently played song again.
func (s *PlayerService) Replay(
	ctx context.Context,
	req *connect.Request[tuneboxv1.ReplayRequest],
) (*statusResponse, error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	return s.apply(ctx, "replay", func(m *session.Manager) error {
		return m.Replay(req.Msg.SongID)
	})
}

// Pause stops playback.
func (s *PlayerService) Pause(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "pause", (*session.Manager).Pause)
}

// Toggle flips between playing and paused.
func (s *PlayerService) Toggle(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "toggle", (*session.Manager).Toggle)
}

// Next moves to the following song.
func (s *PlayerService) Next(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "next", (*session.Manager).Next)
}

// Previous moves to the preceding song.
func (s *PlayerService) Previous(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "previous", (*session.Manager).Previous)
}

// SetVolume sets the volume. Out of range values are clamped.
func (s *PlayerService) SetVolume(
	ctx context.Context,
	req *connect.Request[tuneboxv1.SetVolumeRequest],
) (*statusResponse, error) {
	return s.apply(ctx, "set_volume", func(m *session.Manager) error {
		return m.SetVolume(req.Msg.Volume)
	})
}

// ToggleLoop flips auto-advance.
func (s *PlayerService) ToggleLoop(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "toggle_loop", (*session.Manager).ToggleLoop)
}

// ToggleShuffle flips shuffle.
func (s *PlayerService) ToggleShuffle(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "toggle_shuffle", (*session.Manager).ToggleShuffle)
}

// Scrub applies one step of a progress drag. The end step moves to the
// final position before releasing the drag.
func (s *PlayerService) Scrub(
	ctx context.Context,
	req *connect.Request[tuneboxv1.ScrubRequest],
) (*statusResponse, error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	position := time.Duration(req.Msg.PositionMs) * time.Millisecond

	return s.apply(ctx, "scrub", func(m *session.Manager) error {
		switch req.Msg.Phase {
		case tuneboxv1.ScrubPhaseBegin:
			return m.BeginScrub()
		case tuneboxv1.ScrubPhaseMove:
			return m.Scrub(position)
		default:
			if err := m.Scrub(position); err != nil {
				return err
			}
			return m.EndScrub()
		}
	})
}

// GetStatus returns the current status.
func (s *PlayerService) GetStatus(ctx context.Context, _ *emptyRequest) (*statusResponse, error) {
	return s.apply(ctx, "get_status", func(*session.Manager) error { return nil })
}

// WatchStatus streams the initial state followed by change notifications
// until the client goes away or the session ends.
func (s *PlayerService) WatchStatus(
	ctx context.Context,
	req *connect.Request[tuneboxv1.WatchStatusRequest],
	stream *connect.ServerStream[tuneboxv1.Notification],
) error {
	m, err := session.FromContext(ctx)
	if err != nil {
		return toConnectError("watch_status", err)
	}
	notifManager := m.GetNotificationManager()

	adapter := &notificationStreamAdapter{
		stream:          stream,
		includeProgress: req.Msg.IncludeProgress,
	}

	// Subscribe with the adapter held so the initial state is always sent
	// first; broadcasts stamped before it are dropped as already covered.
	adapter.mu.Lock()
	subscriptionID := notifManager.Subscribe(adapter)
	defer notifManager.Unsubscribe(subscriptionID)

	initial := &tuneboxv1.Notification{
		Type:       tuneboxv1.NotificationTypeInitialState,
		SequenceNo: notifManager.NextSequenceNo(),
		Status:     m.Status().Message(),
	}
	adapter.after = initial.SequenceNo
	err = stream.Send(initial)
	adapter.mu.Unlock()
	if err != nil {
		return err
	}
	zlog.Debug().Msgf("api: watch started: subscription=%s progress=%t", subscriptionID, req.Msg.IncludeProgress)

	select {
	case <-ctx.Done():
	case <-m.Done():
	}
	// A broadcast that gave up waiting may still be sending; the stream
	// must not be written once the handler returns.
	adapter.close()
	return nil
}

// notificationStreamAdapter adapts connect.ServerStream to notification.Stream.
type notificationStreamAdapter struct {
	mu              sync.Mutex
	stream          *connect.ServerStream[tuneboxv1.Notification]
	includeProgress bool
	after           uint64 // Sequence number of the initial state
	closed          bool
}

func (a *notificationStreamAdapter) Send(notification *tuneboxv1.Notification) error {
	if !a.includeProgress && notification.Type == tuneboxv1.NotificationTypeProgress {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || notification.SequenceNo <= a.after {
		return nil
	}
	return a.stream.Send(notification)
}

// close waits for an in-flight Send and turns later ones into no-ops.
func (a *notificationStreamAdapter) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
}
