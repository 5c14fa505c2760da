package connect

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/domain/song"
	"github.com/osa030/tunebox/internal/infra/spotify"
	"github.com/osa030/tunebox/internal/infra/store"
)

var errImportUnavailable = errors.New("spotify import is not configured")

// PlaylistFetcher resolves an external playlist for import.
type PlaylistFetcher interface {
	FetchPlaylist(ctx context.Context, ref string) (*spotify.PlaylistImport, error)
}

// AdminService implements the AdminService RPC.
type AdminService struct {
	store   *store.Store
	fetcher PlaylistFetcher
}

// NewAdminService creates a new AdminService. fetcher may be nil, in which
// case ImportPlaylist fails with FailedPrecondition.
func NewAdminService(st *store.Store, fetcher PlaylistFetcher) *AdminService {
	return &AdminService{
		store:   st,
		fetcher: fetcher,
	}
}

// Ensure AdminService implements the interface.
var _ tuneboxv1connect.AdminServiceHandler = (*AdminService)(nil)

// GetStats returns catalog counts and recent playlists.
func (s *AdminService) GetStats(
	ctx context.Context,
	_ *connect.Request[tuneboxv1.Empty],
) (*connect.Response[tuneboxv1.StatsResponse], error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, toConnectError("get_stats", err)
	}
	return connect.NewResponse(&tuneboxv1.StatsResponse{
		PlaylistCount:   stats.PlaylistCount,
		SongCount:       stats.SongCount,
		RecentPlaylists: tuneboxv1.FromPlaylists(stats.RecentPlaylists),
	}), nil
}

// CreatePlaylist creates an empty playlist.
func (s *AdminService) CreatePlaylist(
	ctx context.Context,
	req *connect.Request[tuneboxv1.CreatePlaylistRequest],
) (*connect.Response[tuneboxv1.PlaylistResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	playlist, err := s.store.CreatePlaylist(ctx, strings.TrimSpace(req.Msg.Name), lo.EmptyableToPtr(req.Msg.CoverImageURL))
	if err != nil {
		return nil, toConnectError("create_playlist", err)
	}
	return connect.NewResponse(&tuneboxv1.PlaylistResponse{
		Playlist: tuneboxv1.FromPlaylist(playlist),
	}), nil
}

// DeletePlaylist deletes a playlist and its songs.
func (s *AdminService) DeletePlaylist(
	ctx context.Context,
	req *connect.Request[tuneboxv1.DeletePlaylistRequest],
) (*connect.Response[tuneboxv1.Empty], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeletePlaylist(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError("delete_playlist", err)
	}
	return connect.NewResponse(&tuneboxv1.Empty{}), nil
}

// AddSong adds a song, optionally to a playlist.
func (s *AdminService) AddSong(
	ctx context.Context,
	req *connect.Request[tuneboxv1.AddSongRequest],
) (*connect.Response[tuneboxv1.SongResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	created, err := s.store.AddSong(ctx, song.Song{
		Name:       strings.TrimSpace(req.Msg.Name),
		Artist:     strings.TrimSpace(req.Msg.Artist),
		FileURL:    strings.TrimSpace(req.Msg.FileURL),
		PlaylistID: lo.EmptyableToPtr(req.Msg.PlaylistID),
	})
	if err != nil {
		return nil, toConnectError("add_song", err)
	}
	return connect.NewResponse(&tuneboxv1.SongResponse{
		Song: tuneboxv1.FromSong(created),
	}), nil
}

// DeleteSong deletes a song.
func (s *AdminService) DeleteSong(
	ctx context.Context,
	req *connect.Request[tuneboxv1.DeleteSongRequest],
) (*connect.Response[tuneboxv1.Empty], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeleteSong(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError("delete_song", err)
	}
	return connect.NewResponse(&tuneboxv1.Empty{}), nil
}

// ImportPlaylist copies a Spotify playlist and its preview clips into the catalog.
func (s *AdminService) ImportPlaylist(
	ctx context.Context,
	req *connect.Request[tuneboxv1.ImportPlaylistRequest],
) (*connect.Response[tuneboxv1.ImportPlaylistResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errImportUnavailable)
	}

	fetched, err := s.fetcher.FetchPlaylist(ctx, req.Msg.PlaylistRef)
	if err != nil {
		return nil, toConnectError("import_playlist", err)
	}
	playlist, err := s.store.ImportPlaylist(ctx, fetched.Name, fetched.CoverImageURL, fetched.Songs)
	if err != nil {
		return nil, toConnectError("import_playlist", err)
	}

	zlog.Info().Msgf("api: playlist imported: spotify_id=%s, playlist=%s, imported=%d, skipped=%d",
		fetched.SpotifyID, playlist.ID, len(fetched.Songs), fetched.Skipped)
	return connect.NewResponse(&tuneboxv1.ImportPlaylistResponse{
		Playlist: tuneboxv1.FromPlaylist(playlist),
		Imported: len(fetched.Songs),
		Skipped:  fetched.Skipped,
	}), nil
}
