// Package tuneboxv1connect binds the tunebox v1 messages to Connect handlers
// and clients.
package tuneboxv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
)

// PlayerServiceName is the fully-qualified name of the PlayerService service.
const PlayerServiceName = "tunebox.v1.PlayerService"

// PlayerService procedures.
const (
	PlayerServicePlayProcedure          = "/tunebox.v1.PlayerService/Play"
	PlayerServiceReplayProcedure        = "/tunebox.v1.PlayerService/Replay"
	PlayerServicePauseProcedure         = "/tunebox.v1.PlayerService/Pause"
	PlayerServiceToggleProcedure        = "/tunebox.v1.PlayerService/Toggle"
	PlayerServiceNextProcedure          = "/tunebox.v1.PlayerService/Next"
	PlayerServicePreviousProcedure      = "/tunebox.v1.PlayerService/Previous"
	PlayerServiceSetVolumeProcedure     = "/tunebox.v1.PlayerService/SetVolume"
	PlayerServiceToggleLoopProcedure    = "/tunebox.v1.PlayerService/ToggleLoop"
	PlayerServiceToggleShuffleProcedure = "/tunebox.v1.PlayerService/ToggleShuffle"
	PlayerServiceScrubProcedure         = "/tunebox.v1.PlayerService/Scrub"
	PlayerServiceGetStatusProcedure     = "/tunebox.v1.PlayerService/GetStatus"
	PlayerServiceWatchStatusProcedure   = "/tunebox.v1.PlayerService/WatchStatus"
)

type (
	statusRequest  = connect.Request[tuneboxv1.Empty]
	statusResponse = connect.Response[tuneboxv1.StatusResponse]
)

// PlayerServiceHandler is implemented by the player service.
type PlayerServiceHandler interface {
	Play(context.Context, *connect.Request[tuneboxv1.PlayRequest]) (*statusResponse, error)
	Replay(context.Context, *connect.Request[tuneboxv1.ReplayRequest]) (*statusResponse, error)
	Pause(context.Context, *statusRequest) (*statusResponse, error)
	Toggle(context.Context, *statusRequest) (*statusResponse, error)
	Next(context.Context, *statusRequest) (*statusResponse, error)
	Previous(context.Context, *statusRequest) (*statusResponse, error)
	SetVolume(context.Context, *connect.Request[tuneboxv1.SetVolumeRequest]) (*statusResponse, error)
	ToggleLoop(context.Context, *statusRequest) (*statusResponse, error)
	ToggleShuffle(context.Context, *statusRequest) (*statusResponse, error)
	Scrub(context.Context, *connect.Request[tuneboxv1.ScrubRequest]) (*statusResponse, error)
	GetStatus(context.Context, *statusRequest) (*statusResponse, error)
	WatchStatus(context.Context, *connect.Request[tuneboxv1.WatchStatusRequest], *connect.ServerStream[tuneboxv1.Notification]) error
}

// NewPlayerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		PlayerServicePlayProcedure:          connect.NewUnaryHandler(PlayerServicePlayProcedure, svc.Play, opts...),
		PlayerServiceReplayProcedure:        connect.NewUnaryHandler(PlayerServiceReplayProcedure, svc.Replay, opts...),
		PlayerServicePauseProcedure:         connect.NewUnaryHandler(PlayerServicePauseProcedure, svc.Pause, opts...),
		PlayerServiceToggleProcedure:        connect.NewUnaryHandler(PlayerServiceToggleProcedure, svc.Toggle, opts...),
		PlayerServiceNextProcedure:          connect.NewUnaryHandler(PlayerServiceNextProcedure, svc.Next, opts...),
		PlayerServicePreviousProcedure:      connect.NewUnaryHandler(PlayerServicePreviousProcedure, svc.Previous, opts...),
		PlayerServiceSetVolumeProcedure:     connect.NewUnaryHandler(PlayerServiceSetVolumeProcedure, svc.SetVolume, opts...),
		PlayerServiceToggleLoopProcedure:    connect.NewUnaryHandler(PlayerServiceToggleLoopProcedure, svc.ToggleLoop, opts...),
		PlayerServiceToggleShuffleProcedure: connect.NewUnaryHandler(PlayerServiceToggleShuffleProcedure, svc.ToggleShuffle, opts...),
		PlayerServiceScrubProcedure:         connect.NewUnaryHandler(PlayerServiceScrubProcedure, svc.Scrub, opts...),
		PlayerServiceGetStatusProcedure:     connect.NewUnaryHandler(PlayerServiceGetStatusProcedure, svc.GetStatus, opts...),
		PlayerServiceWatchStatusProcedure:   connect.NewServerStreamHandler(PlayerServiceWatchStatusProcedure, svc.WatchStatus, opts...),
	}
	return "/" + PlayerServiceName + "/", router(routes)
}

// PlayerServiceClient is a client for the player service.
type PlayerServiceClient struct {
	play          *connect.Client[tuneboxv1.PlayRequest, tuneboxv1.StatusResponse]
	replay        *connect.Client[tuneboxv1.ReplayRequest, tuneboxv1.StatusResponse]
	pause         *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	toggle        *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	next          *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	previous      *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	setVolume     *connect.Client[tuneboxv1.SetVolumeRequest, tuneboxv1.StatusResponse]
	toggleLoop    *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	toggleShuffle *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	scrub         *connect.Client[tuneboxv1.ScrubRequest, tuneboxv1.StatusResponse]
	getStatus     *connect.Client[tuneboxv1.Empty, tuneboxv1.StatusResponse]
	watchStatus   *connect.Client[tuneboxv1.WatchStatusRequest, tuneboxv1.Notification]
}

// NewPlayerServiceClient creates a client for the player service at baseURL.
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlayerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &PlayerServiceClient{
		play:          connect.NewClient[tuneboxv1.PlayRequest, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServicePlayProcedure, opts...),
		replay:        connect.NewClient[tuneboxv1.ReplayRequest, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceReplayProcedure, opts...),
		pause:         connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServicePauseProcedure, opts...),
		toggle:        connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceToggleProcedure, opts...),
		next:          connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceNextProcedure, opts...),
		previous:      connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServicePreviousProcedure, opts...),
		setVolume:     connect.NewClient[tuneboxv1.SetVolumeRequest, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceSetVolumeProcedure, opts...),
		toggleLoop:    connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceToggleLoopProcedure, opts...),
		toggleShuffle: connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceToggleShuffleProcedure, opts...),
		scrub:         connect.NewClient[tuneboxv1.ScrubRequest, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceScrubProcedure, opts...),
		getStatus:     connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatusResponse](httpClient, baseURL+PlayerServiceGetStatusProcedure, opts...),
		watchStatus:   connect.NewClient[tuneboxv1.WatchStatusRequest, tuneboxv1.Notification](httpClient, baseURL+PlayerServiceWatchStatusProcedure, opts...),
	}
}

// Play calls tunebox.v1.PlayerService.Play.
func (c *PlayerServiceClient) Play(ctx context.Context, req *connect.Request[tuneboxv1.PlayRequest]) (*statusResponse, error) {
	return c.play.CallUnary(ctx, req)
}

// Replay calls tunebox.v1.PlayerService.Replay.
func (c *PlayerServiceClient) Replay(ctx context.Context, req *connect.Request[tuneboxv1.ReplayRequest]) (*statusResponse, error) {
	return c.replay.CallUnary(ctx, req)
}

// Pause calls tunebox.v1.PlayerService.Pause.
func (c *PlayerServiceClient) Pause(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.pause.CallUnary(ctx, req)
}

// Toggle calls tunebox.v1.PlayerService.Toggle.
func (c *PlayerServiceClient) Toggle(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.toggle.CallUnary(ctx, req)
}

// Next calls tunebox.v1.PlayerService.Next.
func (c *PlayerServiceClient) Next(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.next.CallUnary(ctx, req)
}

// Previous calls tunebox.v1.PlayerService.Previous.
func (c *PlayerServiceClient) Previous(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.previous.CallUnary(ctx, req)
}

// SetVolume calls tunebox.v1.PlayerService.SetVolume.
func (c *PlayerServiceClient) SetVolume(ctx context.Context, req *connect.Request[tuneboxv1.SetVolumeRequest]) (*statusResponse, error) {
	return c.setVolume.CallUnary(ctx, req)
}

// ToggleLoop calls tunebox.v1.PlayerService.ToggleLoop.
func (c *PlayerServiceClient) ToggleLoop(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.toggleLoop.CallUnary(ctx, req)
}

// ToggleShuffle calls tunebox.v1.PlayerService.ToggleShuffle.
func (c *PlayerServiceClient) ToggleShuffle(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.toggleShuffle.CallUnary(ctx, req)
}

// Scrub calls tunebox.v1.PlayerService.Scrub.
func (c *PlayerServiceClient) Scrub(ctx context.Context, req *connect.Request[tuneboxv1.ScrubRequest]) (*statusResponse, error) {
	return c.scrub.CallUnary(ctx, req)
}

// GetStatus calls tunebox.v1.PlayerService.GetStatus.
func (c *PlayerServiceClient) GetStatus(ctx context.Context, req *statusRequest) (*statusResponse, error) {
	return c.getStatus.CallUnary(ctx, req)
}

// WatchStatus calls tunebox.v1.PlayerService.WatchStatus.
func (c *PlayerServiceClient) WatchStatus(ctx context.Context, req *connect.Request[tuneboxv1.WatchStatusRequest]) (*connect.ServerStreamForClient[tuneboxv1.Notification], error) {
	return c.watchStatus.CallServerStream(ctx, req)
}
