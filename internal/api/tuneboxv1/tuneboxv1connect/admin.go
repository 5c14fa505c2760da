package tuneboxv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
)

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "tunebox.v1.AdminService"

// AdminService procedures.
const (
	AdminServiceGetStatsProcedure       = "/tunebox.v1.AdminService/GetStats"
	AdminServiceCreatePlaylistProcedure = "/tunebox.v1.AdminService/CreatePlaylist"
	AdminServiceDeletePlaylistProcedure = "/tunebox.v1.AdminService/DeletePlaylist"
	AdminServiceAddSongProcedure        = "/tunebox.v1.AdminService/AddSong"
	AdminServiceDeleteSongProcedure     = "/tunebox.v1.AdminService/DeleteSong"
	AdminServiceImportPlaylistProcedure = "/tunebox.v1.AdminService/ImportPlaylist"
)

// AdminServiceHandler is implemented by the admin service.
type AdminServiceHandler interface {
	GetStats(context.Context, *connect.Request[tuneboxv1.Empty]) (*connect.Response[tuneboxv1.StatsResponse], error)
	CreatePlaylist(context.Context, *connect.Request[tuneboxv1.CreatePlaylistRequest]) (*connect.Response[tuneboxv1.PlaylistResponse], error)
	DeletePlaylist(context.Context, *connect.Request[tuneboxv1.DeletePlaylistRequest]) (*connect.Response[tuneboxv1.Empty], error)
	AddSong(context.Context, *connect.Request[tuneboxv1.AddSongRequest]) (*connect.Response[tuneboxv1.SongResponse], error)
	DeleteSong(context.Context, *connect.Request[tuneboxv1.DeleteSongRequest]) (*connect.Response[tuneboxv1.Empty], error)
	ImportPlaylist(context.Context, *connect.Request[tuneboxv1.ImportPlaylistRequest]) (*connect.Response[tuneboxv1.ImportPlaylistResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		AdminServiceGetStatsProcedure:       connect.NewUnaryHandler(AdminServiceGetStatsProcedure, svc.GetStats, opts...),
		AdminServiceCreatePlaylistProcedure: connect.NewUnaryHandler(AdminServiceCreatePlaylistProcedure, svc.CreatePlaylist, opts...),
		AdminServiceDeletePlaylistProcedure: connect.NewUnaryHandler(AdminServiceDeletePlaylistProcedure, svc.DeletePlaylist, opts...),
		AdminServiceAddSongProcedure:        connect.NewUnaryHandler(AdminServiceAddSongProcedure, svc.AddSong, opts...),
		AdminServiceDeleteSongProcedure:     connect.NewUnaryHandler(AdminServiceDeleteSongProcedure, svc.DeleteSong, opts...),
		AdminServiceImportPlaylistProcedure: connect.NewUnaryHandler(AdminServiceImportPlaylistProcedure, svc.ImportPlaylist, opts...),
	}
	return "/" + AdminServiceName + "/", router(routes)
}

// AdminServiceClient is a client for the admin service.
type AdminServiceClient struct {
	getStats       *connect.Client[tuneboxv1.Empty, tuneboxv1.StatsResponse]
	createPlaylist *connect.Client[tuneboxv1.CreatePlaylistRequest, tuneboxv1.PlaylistResponse]
	deletePlaylist *connect.Client[tuneboxv1.DeletePlaylistRequest, tuneboxv1.Empty]
	addSong        *connect.Client[tuneboxv1.AddSongRequest, tuneboxv1.SongResponse]
	deleteSong     *connect.Client[tuneboxv1.DeleteSongRequest, tuneboxv1.Empty]
	importPlaylist *connect.Client[tuneboxv1.ImportPlaylistRequest, tuneboxv1.ImportPlaylistResponse]
}

// NewAdminServiceClient creates a client for the admin service at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &AdminServiceClient{
		getStats:       connect.NewClient[tuneboxv1.Empty, tuneboxv1.StatsResponse](httpClient, baseURL+AdminServiceGetStatsProcedure, opts...),
		createPlaylist: connect.NewClient[tuneboxv1.CreatePlaylistRequest, tuneboxv1.PlaylistResponse](httpClient, baseURL+AdminServiceCreatePlaylistProcedure, opts...),
		deletePlaylist: connect.NewClient[tuneboxv1.DeletePlaylistRequest, tuneboxv1.Empty](httpClient, baseURL+AdminServiceDeletePlaylistProcedure, opts...),
		addSong:        connect.NewClient[tuneboxv1.AddSongRequest, tuneboxv1.SongResponse](httpClient, baseURL+AdminServiceAddSongProcedure, opts...),
		deleteSong:     connect.NewClient[tuneboxv1.DeleteSongRequest, tuneboxv1.Empty](httpClient, baseURL+AdminServiceDeleteSongProcedure, opts...),
		importPlaylist: connect.NewClient[tuneboxv1.ImportPlaylistRequest, tuneboxv1.ImportPlaylistResponse](httpClient, baseURL+AdminServiceImportPlaylistProcedure, opts...),
	}
}

// GetStats calls tunebox.v1.AdminService.GetStats.
func (c *AdminServiceClient) GetStats(ctx context.Context, req *connect.Request[tuneboxv1.Empty]) (*connect.Response[tuneboxv1.StatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

// CreatePlaylist calls tunebox.v1.AdminService.CreatePlaylist.
func (c *AdminServiceClient) CreatePlaylist(ctx context.Context, req *connect.Request[tuneboxv1.CreatePlaylistRequest]) (*connect.Response[tuneboxv1.PlaylistResponse], error) {
	return c.createPlaylist.CallUnary(ctx, req)
}

// DeletePlaylist calls tunebox.v1.AdminService.DeletePlaylist.
func (c *AdminServiceClient) DeletePlaylist(ctx context.Context, req *connect.Request[tuneboxv1.DeletePlaylistRequest]) (*connect.Response[tuneboxv1.Empty], error) {
	return c.deletePlaylist.CallUnary(ctx, req)
}

// AddSong calls tunebox.v1.AdminService.AddSong.
func (c *AdminServiceClient) AddSong(ctx context.Context, req *connect.Request[tuneboxv1.AddSongRequest]) (*connect.Response[tuneboxv1.SongResponse], error) {
	return c.addSong.CallUnary(ctx, req)
}

// DeleteSong calls tunebox.v1.AdminService.DeleteSong.
func (c *AdminServiceClient) DeleteSong(ctx context.Context, req *connect.Request[tuneboxv1.DeleteSongRequest]) (*connect.Response[tuneboxv1.Empty], error) {
	return c.deleteSong.CallUnary(ctx, req)
}

// ImportPlaylist calls tunebox.v1.AdminService.ImportPlaylist.
func (c *AdminServiceClient) ImportPlaylist(ctx context.Context, req *connect.Request[tuneboxv1.ImportPlaylistRequest]) (*connect.Response[tuneboxv1.ImportPlaylistResponse], error) {
	return c.importPlaylist.CallUnary(ctx, req)
}
