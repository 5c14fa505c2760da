package connect

import (
	"context"

	"connectrpc.com/connect"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/infra/store"
)

// CatalogService implements the read-only CatalogService RPC.
type CatalogService struct {
	store *store.Store
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// Ensure CatalogService implements the interface.
var _ tuneboxv1connect.CatalogServiceHandler = (*CatalogService)(nil)

// ListPlaylists lists playlists newest first.
func (s *CatalogService) ListPlaylists(
	ctx context.Context,
	req *connect.Request[tuneboxv1.ListPlaylistsRequest],
) (*connect.Response[tuneboxv1.ListPlaylistsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	playlists, err := s.store.ListPlaylists(ctx, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError("list_playlists", err)
	}
	return connect.NewResponse(&tuneboxv1.ListPlaylistsResponse{
		Playlists: tuneboxv1.FromPlaylists(playlists),
	}), nil
}

// GetPlaylist returns a playlist with its songs in play order.
func (s *CatalogService) GetPlaylist(
	ctx context.Context,
	req *connect.Request[tuneboxv1.GetPlaylistRequest],
) (*connect.Response[tuneboxv1.GetPlaylistResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	playlist, err := s.store.GetPlaylist(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError("get_playlist", err)
	}
	songs, err := s.store.ListSongs(ctx, playlist.ID)
	if err != nil {
		return nil, toConnectError("get_playlist", err)
	}
	return connect.NewResponse(&tuneboxv1.GetPlaylistResponse{
		Playlist: tuneboxv1.FromPlaylist(playlist),
		Songs:    tuneboxv1.FromSongs(songs),
	}), nil
}

// ListSongs lists a playlist's songs, or every song newest first.
func (s *CatalogService) ListSongs(
	ctx context.Context,
	req *connect.Request[tuneboxv1.ListSongsRequest],
) (*connect.Response[tuneboxv1.ListSongsResponse], error) {
	songs, err := s.store.ListSongs(ctx, req.Msg.PlaylistID)
	if err != nil {
		return nil, toConnectError("list_songs", err)
	}
	return connect.NewResponse(&tuneboxv1.ListSongsResponse{
		Songs: tuneboxv1.FromSongs(songs),
	}), nil
}

// Search finds playlists by name and songs by name or artist.
func (s *CatalogService) Search(
	ctx context.Context,
	req *connect.Request[tuneboxv1.SearchRequest],
) (*connect.Response[tuneboxv1.SearchResponse], error) {
	result, err := s.store.Search(ctx, req.Msg.Term)
	if err != nil {
		return nil, toConnectError("search", err)
	}
	return connect.NewResponse(&tuneboxv1.SearchResponse{
		Playlists: tuneboxv1.FromPlaylists(result.Playlists),
		Songs:     tuneboxv1.FromSongs(result.Songs),
	}), nil
}
