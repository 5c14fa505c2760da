package tuneboxv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "tunebox.v1.CatalogService"

// CatalogService procedures.
const (
	CatalogServiceListPlaylistsProcedure = "/tunebox.v1.CatalogService/ListPlaylists"
	CatalogServiceGetPlaylistProcedure   = "/tunebox.v1.CatalogService/GetPlaylist"
	CatalogServiceListSongsProcedure     = "/tunebox.v1.CatalogService/ListSongs"
	CatalogServiceSearchProcedure        = "/tunebox.v1.CatalogService/Search"
)

// CatalogServiceHandler is implemented by the catalog service.
type CatalogServiceHandler interface {
	ListPlaylists(context.Context, *connect.Request[tuneboxv1.ListPlaylistsRequest]) (*connect.Response[tuneboxv1.ListPlaylistsResponse], error)
	GetPlaylist(context.Context, *connect.Request[tuneboxv1.GetPlaylistRequest]) (*connect.Response[tuneboxv1.GetPlaylistResponse], error)
	ListSongs(context.Context, *connect.Request[tuneboxv1.ListSongsRequest]) (*connect.Response[tuneboxv1.ListSongsResponse], error)
	Search(context.Context, *connect.Request[tuneboxv1.SearchRequest]) (*connect.Response[tuneboxv1.SearchResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		CatalogServiceListPlaylistsProcedure: connect.NewUnaryHandler(CatalogServiceListPlaylistsProcedure, svc.ListPlaylists, opts...),
		CatalogServiceGetPlaylistProcedure:   connect.NewUnaryHandler(CatalogServiceGetPlaylistProcedure, svc.GetPlaylist, opts...),
		CatalogServiceListSongsProcedure:     connect.NewUnaryHandler(CatalogServiceListSongsProcedure, svc.ListSongs, opts...),
		CatalogServiceSearchProcedure:        connect.NewUnaryHandler(CatalogServiceSearchProcedure, svc.Search, opts...),
	}
	return "/" + CatalogServiceName + "/", router(routes)
}

// CatalogServiceClient is a client for the catalog service.
type CatalogServiceClient struct {
	listPlaylists *connect.Client[tuneboxv1.ListPlaylistsRequest, tuneboxv1.ListPlaylistsResponse]
	getPlaylist   *connect.Client[tuneboxv1.GetPlaylistRequest, tuneboxv1.GetPlaylistResponse]
	listSongs     *connect.Client[tuneboxv1.ListSongsRequest, tuneboxv1.ListSongsResponse]
	search        *connect.Client[tuneboxv1.SearchRequest, tuneboxv1.SearchResponse]
}

// NewCatalogServiceClient creates a client for the catalog service at baseURL.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &CatalogServiceClient{
		listPlaylists: connect.NewClient[tuneboxv1.ListPlaylistsRequest, tuneboxv1.ListPlaylistsResponse](httpClient, baseURL+CatalogServiceListPlaylistsProcedure, opts...),
		getPlaylist:   connect.NewClient[tuneboxv1.GetPlaylistRequest, tuneboxv1.GetPlaylistResponse](httpClient, baseURL+CatalogServiceGetPlaylistProcedure, opts...),
		listSongs:     connect.NewClient[tuneboxv1.ListSongsRequest, tuneboxv1.ListSongsResponse](httpClient, baseURL+CatalogServiceListSongsProcedure, opts...),
		search:        connect.NewClient[tuneboxv1.SearchRequest, tuneboxv1.SearchResponse](httpClient, baseURL+CatalogServiceSearchProcedure, opts...),
	}
}

// ListPlaylists calls tunebox.v1.CatalogService.ListPlaylists.
func (c *CatalogServiceClient) ListPlaylists(ctx context.Context, req *connect.Request[tuneboxv1.ListPlaylistsRequest]) (*connect.Response[tuneboxv1.ListPlaylistsResponse], error) {
	return c.listPlaylists.CallUnary(ctx, req)
}

// GetPlaylist calls tunebox.v1.CatalogService.GetPlaylist.
func (c *CatalogServiceClient) GetPlaylist(ctx context.Context, req *connect.Request[tuneboxv1.GetPlaylistRequest]) (*connect.Response[tuneboxv1.GetPlaylistResponse], error) {
	return c.getPlaylist.CallUnary(ctx, req)
}

// ListSongs calls tunebox.v1.CatalogService.ListSongs.
func (c *CatalogServiceClient) ListSongs(ctx context.Context, req *connect.Request[tuneboxv1.ListSongsRequest]) (*connect.Response[tuneboxv1.ListSongsResponse], error) {
	return c.listSongs.CallUnary(ctx, req)
}

// Search calls tunebox.v1.CatalogService.Search.
func (c *CatalogServiceClient) Search(ctx context.Context, req *connect.Request[tuneboxv1.SearchRequest]) (*connect.Response[tuneboxv1.SearchResponse], error) {
	return c.search.CallUnary(ctx, req)
}
