package connect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/app/media/mock"
	"github.com/osa030/tunebox/internal/app/playback"
	"github.com/osa030/tunebox/internal/app/session"
	"github.com/osa030/tunebox/internal/domain/song"
	"github.com/osa030/tunebox/internal/infra/config"
	"github.com/osa030/tunebox/internal/infra/spotify"
	"github.com/osa030/tunebox/internal/infra/store"
)

const testAdminToken = "secret"

type fakeFetcher struct {
	result *spotify.PlaylistImport
	err    error
}

func (f *fakeFetcher) FetchPlaylist(context.Context, string) (*spotify.PlaylistImport, error) {
	return f.result, f.err
}

type testServer struct {
	player  *tuneboxv1connect.PlayerServiceClient
	catalog *tuneboxv1connect.CatalogServiceClient
	admin   *tuneboxv1connect.AdminServiceClient
	store   *store.Store
	sink    *mock.Sink
	manager *session.Manager
}

func newTestServer(t *testing.T, fetcher PlaylistFetcher) *testServer {
	t.Helper()

	st, err := store.Open(store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sink := mock.NewSink()
	m := session.NewManager(session.Config{Player: playback.Config{Volume: 1, Looping: true}}, sink, st)
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(m.Close)
	waitForMethods(t, sink, "volume", "pause")

	mux := http.NewServeMux()
	mux.Handle(tuneboxv1connect.NewPlayerServiceHandler(NewPlayerService(),
		connect.WithInterceptors(NewSessionInterceptor(m))))
	mux.Handle(tuneboxv1connect.NewCatalogServiceHandler(NewCatalogService(st)))
	mux.Handle(tuneboxv1connect.NewAdminServiceHandler(NewAdminService(st, fetcher),
		connect.WithInterceptors(NewAdminAuthInterceptor(config.AdminConfig{Token: testAdminToken}))))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{
		player:  tuneboxv1connect.NewPlayerServiceClient(srv.Client(), srv.URL),
		catalog: tuneboxv1connect.NewCatalogServiceClient(srv.Client(), srv.URL),
		admin:   tuneboxv1connect.NewAdminServiceClient(srv.Client(), srv.URL),
		store:   st,
		sink:    sink,
		manager: m,
	}
}

// waitForMethods waits until the sink has recorded exactly the given requests.
func waitForMethods(t *testing.T, sink *mock.Sink, methods ...string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(methods, sink.Methods())
	}, time.Second, 5*time.Millisecond, "sink requests: %v", sink.Methods())
}

func adminRequest[T any](msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(AdminTokenHeader, testAdminToken)
	return req
}

func empty() *connect.Request[tuneboxv1.Empty] {
	return connect.NewRequest(&tuneboxv1.Empty{})
}

func codeOf(err error) connect.Code {
	return connect.CodeOf(err)
}

// seed creates a playlist "Mix" with songs a, b, c and a standalone song.
func (ts *testServer) seed(t *testing.T) (song.Playlist, []song.Song) {
	t.Helper()
	ctx := context.Background()
	pl, err := ts.store.CreatePlaylist(ctx, "Mix", nil)
	require.NoError(t, err)

	var songs []song.Song
	for _, name := range []string{"a", "b", "c"} {
		s, err := ts.store.AddSong(ctx, song.Song{Name: name, Artist: "Band", FileURL: "/music/" + name + ".mp3", PlaylistID: &pl.ID})
		require.NoError(t, err)
		songs = append(songs, s)
	}
	loose, err := ts.store.AddSong(ctx, song.Song{Name: "loose", Artist: "Solo", FileURL: "/music/loose.mp3"})
	require.NoError(t, err)
	return pl, append(songs, loose)
}

func TestAdminAuthInterceptor(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		code  connect.Code
	}{
		{name: "missing token", token: "", code: connect.CodeUnauthenticated},
		{name: "wrong token", token: "nope", code: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&tuneboxv1.Empty{})
			if tt.token != "" {
				req.Header().Set(AdminTokenHeader, tt.token)
			}
			_, err := ts.admin.GetStats(ctx, req)
			assert.Equal(t, tt.code, codeOf(err))
		})
	}

	t.Run("valid token", func(t *testing.T) {
		_, err := ts.admin.GetStats(ctx, adminRequest(&tuneboxv1.Empty{}))
		assert.NoError(t, err)
	})
}

func TestAdminService_CatalogLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	created, err := ts.admin.CreatePlaylist(ctx, adminRequest(&tuneboxv1.CreatePlaylistRequest{
		Name:          "  Road Trip ",
		CoverImageURL: "https://example.com/cover.jpg",
	}))
	require.NoError(t, err)
	pl := created.Msg.Playlist
	assert.Equal(t, "Road Trip", pl.Name)
	assert.Equal(t, "https://example.com/cover.jpg", pl.CoverImageURL)

	for _, name := range []string{"one", "two"} {
		_, err := ts.admin.AddSong(ctx, adminRequest(&tuneboxv1.AddSongRequest{
			Name: name, Artist: "Band", FileURL: "/music/" + name + ".mp3", PlaylistID: pl.ID,
		}))
		require.NoError(t, err)
	}

	got, err := ts.catalog.GetPlaylist(ctx, connect.NewRequest(&tuneboxv1.GetPlaylistRequest{ID: pl.ID}))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Msg.Playlist.SongCount)
	require.Len(t, got.Msg.Songs, 2)
	assert.Equal(t, "one", got.Msg.Songs[0].Name)
	assert.Equal(t, pl.ID, got.Msg.Songs[0].PlaylistID)

	stats, err := ts.admin.GetStats(ctx, adminRequest(&tuneboxv1.Empty{}))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Msg.PlaylistCount)
	assert.Equal(t, 2, stats.Msg.SongCount)

	_, err = ts.admin.DeletePlaylist(ctx, adminRequest(&tuneboxv1.DeletePlaylistRequest{ID: pl.ID}))
	require.NoError(t, err)

	_, err = ts.catalog.GetPlaylist(ctx, connect.NewRequest(&tuneboxv1.GetPlaylistRequest{ID: pl.ID}))
	assert.Equal(t, connect.CodeNotFound, codeOf(err))

	songs, err := ts.catalog.ListSongs(ctx, connect.NewRequest(&tuneboxv1.ListSongsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, songs.Msg.Songs)
}

func TestAdminService_Validation(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{
			name: "playlist without name",
			call: func() error {
				_, err := ts.admin.CreatePlaylist(ctx, adminRequest(&tuneboxv1.CreatePlaylistRequest{}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "malformed cover url",
			call: func() error {
				_, err := ts.admin.CreatePlaylist(ctx, adminRequest(&tuneboxv1.CreatePlaylistRequest{Name: "x", CoverImageURL: "not a url"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "song without artist",
			call: func() error {
				_, err := ts.admin.AddSong(ctx, adminRequest(&tuneboxv1.AddSongRequest{Name: "x", FileURL: "/x.mp3"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "song in unknown playlist",
			call: func() error {
				_, err := ts.admin.AddSong(ctx, adminRequest(&tuneboxv1.AddSongRequest{Name: "x", Artist: "y", FileURL: "/x.mp3", PlaylistID: "missing"}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "delete unknown song",
			call: func() error {
				_, err := ts.admin.DeleteSong(ctx, adminRequest(&tuneboxv1.DeleteSongRequest{ID: "missing"}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "import without fetcher",
			call: func() error {
				_, err := ts.admin.ImportPlaylist(ctx, adminRequest(&tuneboxv1.ImportPlaylistRequest{PlaylistRef: "abc"}))
				return err
			},
			code: connect.CodeFailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, codeOf(tt.call()))
		})
	}
}

func TestAdminService_ImportPlaylist(t *testing.T) {
	cover := "https://i.scdn.co/cover.jpg"
	ts := newTestServer(t, &fakeFetcher{result: &spotify.PlaylistImport{
		SpotifyID:     "abc",
		Name:          "Summer",
		CoverImageURL: &cover,
		Songs: []song.Song{
			{Name: "One", Artist: "A", FileURL: "https://p.scdn.co/1"},
			{Name: "Two", Artist: "B, C", FileURL: "https://p.scdn.co/2"},
		},
		Skipped: 3,
	}})
	ctx := context.Background()

	resp, err := ts.admin.ImportPlaylist(ctx, adminRequest(&tuneboxv1.ImportPlaylistRequest{PlaylistRef: "spotify:playlist:abc"}))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Msg.Imported)
	assert.Equal(t, 3, resp.Msg.Skipped)
	assert.Equal(t, "Summer", resp.Msg.Playlist.Name)

	got, err := ts.catalog.GetPlaylist(ctx, connect.NewRequest(&tuneboxv1.GetPlaylistRequest{ID: resp.Msg.Playlist.ID}))
	require.NoError(t, err)
	require.Len(t, got.Msg.Songs, 2)
	assert.Equal(t, "B, C", got.Msg.Songs[1].Artist)
}

func TestAdminService_ImportPlaylist_InvalidRef(t *testing.T) {
	ts := newTestServer(t, &fakeFetcher{err: errors.Wrap(spotify.ErrInvalidPlaylistRef, `"   "`)})

	_, err := ts.admin.ImportPlaylist(context.Background(), adminRequest(&tuneboxv1.ImportPlaylistRequest{PlaylistRef: "x"}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))
}

func TestCatalogService_ListAndSearch(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	pl, songs := ts.seed(t)
	_, err := ts.store.CreatePlaylist(ctx, "Workout", nil)
	require.NoError(t, err)

	all, err := ts.catalog.ListPlaylists(ctx, connect.NewRequest(&tuneboxv1.ListPlaylistsRequest{}))
	require.NoError(t, err)
	require.Len(t, all.Msg.Playlists, 2)
	assert.Equal(t, "Workout", all.Msg.Playlists[0].Name)
	assert.Equal(t, 3, all.Msg.Playlists[1].SongCount)

	limited, err := ts.catalog.ListPlaylists(ctx, connect.NewRequest(&tuneboxv1.ListPlaylistsRequest{Limit: 1}))
	require.NoError(t, err)
	assert.Len(t, limited.Msg.Playlists, 1)

	_, err = ts.catalog.ListPlaylists(ctx, connect.NewRequest(&tuneboxv1.ListPlaylistsRequest{Limit: -1}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))

	inPlaylist, err := ts.catalog.ListSongs(ctx, connect.NewRequest(&tuneboxv1.ListSongsRequest{PlaylistID: pl.ID}))
	require.NoError(t, err)
	assert.Len(t, inPlaylist.Msg.Songs, 3)

	res, err := ts.catalog.Search(ctx, connect.NewRequest(&tuneboxv1.SearchRequest{Term: "solo"}))
	require.NoError(t, err)
	assert.Empty(t, res.Msg.Playlists)
	require.Len(t, res.Msg.Songs, 1)
	assert.Equal(t, songs[3].ID, res.Msg.Songs[0].ID)

	res, err = ts.catalog.Search(ctx, connect.NewRequest(&tuneboxv1.SearchRequest{Term: "MIX"}))
	require.NoError(t, err)
	require.Len(t, res.Msg.Playlists, 1)
	assert.Equal(t, pl.ID, res.Msg.Playlists[0].ID)
}

func TestPlayerService_PlayAndTransport(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	pl, songs := ts.seed(t)
	ts.sink.Reset()

	resp, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[1].ID, PlaylistID: pl.ID}))
	require.NoError(t, err)
	st := resp.Msg.Status
	assert.Equal(t, tuneboxv1.PlaybackStatePlaying, st.State)
	require.NotNil(t, st.Current)
	assert.Equal(t, songs[1].ID, st.Current.Song.ID)
	require.NotNil(t, st.Current.Playlist)
	assert.Equal(t, "Mix", st.Current.Playlist.Name)
	assert.Len(t, st.Queue, 3)
	assert.Equal(t, 1, st.Position)
	waitForMethods(t, ts.sink, "load", "play")

	resp, err = ts.player.Pause(ctx, empty())
	require.NoError(t, err)
	assert.Equal(t, tuneboxv1.PlaybackStatePaused, resp.Msg.Status.State)

	resp, err = ts.player.Next(ctx, empty())
	require.NoError(t, err)
	assert.Equal(t, songs[2].ID, resp.Msg.Status.Current.Song.ID)

	resp, err = ts.player.Previous(ctx, empty())
	require.NoError(t, err)
	assert.Equal(t, songs[1].ID, resp.Msg.Status.Current.Song.ID)

	resp, err = ts.player.Toggle(ctx, empty())
	require.NoError(t, err)
	assert.True(t, resp.Msg.Status.IsPlaying)

	resp, err = ts.player.SetVolume(ctx, connect.NewRequest(&tuneboxv1.SetVolumeRequest{Volume: 1.7}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Msg.Status.Volume)

	resp, err = ts.player.ToggleLoop(ctx, empty())
	require.NoError(t, err)
	assert.False(t, resp.Msg.Status.IsLooping)

	resp, err = ts.player.ToggleShuffle(ctx, empty())
	require.NoError(t, err)
	assert.True(t, resp.Msg.Status.IsShuffled)

	resp, err = ts.player.GetStatus(ctx, empty())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.Status.RecentlyPlayed)
}

func TestPlayerService_PlayStandaloneSong(t *testing.T) {
	ts := newTestServer(t, nil)
	_, songs := ts.seed(t)

	resp, err := ts.player.Play(context.Background(), connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[3].ID}))
	require.NoError(t, err)
	assert.Nil(t, resp.Msg.Status.Current.Playlist)
	require.Len(t, resp.Msg.Status.Queue, 1)
	assert.Equal(t, songs[3].ID, resp.Msg.Status.Queue[0].ID)
}

func TestPlayerService_Errors(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	_, songs := ts.seed(t)

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{
			name: "play without song",
			call: func() error {
				_, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "play unknown song",
			call: func() error {
				_, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: "missing"}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "play in unknown playlist",
			call: func() error {
				_, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[0].ID, PlaylistID: "missing"}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "replay song never played",
			call: func() error {
				_, err := ts.player.Replay(ctx, connect.NewRequest(&tuneboxv1.ReplayRequest{SongID: songs[0].ID}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "scrub with unknown phase",
			call: func() error {
				_, err := ts.player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{Phase: "drag"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, codeOf(tt.call()))
		})
	}
}

func TestPlayerService_Replay(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	pl, songs := ts.seed(t)

	_, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[0].ID, PlaylistID: pl.ID}))
	require.NoError(t, err)
	_, err = ts.player.Next(ctx, empty())
	require.NoError(t, err)

	resp, err := ts.player.Replay(ctx, connect.NewRequest(&tuneboxv1.ReplayRequest{SongID: songs[0].ID}))
	require.NoError(t, err)
	assert.Equal(t, songs[0].ID, resp.Msg.Status.Current.Song.ID)
	assert.Empty(t, resp.Msg.Status.Queue)
}

func TestPlayerService_Scrub(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	pl, songs := ts.seed(t)

	_, err := ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[0].ID, PlaylistID: pl.ID}))
	require.NoError(t, err)
	waitForMethods(t, ts.sink, "volume", "pause", "load", "play")
	ts.sink.Reset()

	resp, err := ts.player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{Phase: tuneboxv1.ScrubPhaseBegin}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Status.Progress.Dragging)

	resp, err = ts.player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{Phase: tuneboxv1.ScrubPhaseMove, PositionMs: 30_000}))
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), resp.Msg.Status.Progress.PositionMs)
	assert.Empty(t, ts.sink.Methods())

	resp, err = ts.player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{Phase: tuneboxv1.ScrubPhaseEnd, PositionMs: 45_000}))
	require.NoError(t, err)
	assert.False(t, resp.Msg.Status.Progress.Dragging)

	waitForMethods(t, ts.sink, "seek")
	calls := ts.sink.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "seek", calls[0].Method)
	assert.Equal(t, 45*time.Second, calls[0].Seek)
}

func TestPlayerService_WatchStatus(t *testing.T) {
	ts := newTestServer(t, nil)
	pl, songs := ts.seed(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := ts.player.WatchStatus(ctx, connect.NewRequest(&tuneboxv1.WatchStatusRequest{}))
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Receive(), "expected initial state: %v", stream.Err())
	initial := stream.Msg()
	assert.Equal(t, tuneboxv1.NotificationTypeInitialState, initial.Type)
	assert.Equal(t, tuneboxv1.PlaybackStateIdle, initial.Status.State)

	_, err = ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[0].ID, PlaylistID: pl.ID}))
	require.NoError(t, err)

	require.True(t, stream.Receive(), "expected song change: %v", stream.Err())
	changed := stream.Msg()
	assert.Equal(t, tuneboxv1.NotificationTypeSongChanged, changed.Type)
	assert.Greater(t, changed.SequenceNo, initial.SequenceNo)
	assert.Equal(t, songs[0].ID, changed.Status.Current.Song.ID)

	// Progress is filtered for this watcher; the next delivery is the pause.
	_, err = ts.player.Scrub(ctx, connect.NewRequest(&tuneboxv1.ScrubRequest{Phase: tuneboxv1.ScrubPhaseBegin}))
	require.NoError(t, err)
	_, err = ts.player.Pause(ctx, empty())
	require.NoError(t, err)

	require.True(t, stream.Receive(), "expected state change: %v", stream.Err())
	assert.Equal(t, tuneboxv1.NotificationTypeStateChanged, stream.Msg().Type)
}

func TestNotificationStreamAdapter_SendSkips(t *testing.T) {
	// None of these cases may reach the stream, which is left nil.
	tests := []struct {
		name         string
		closed       bool
		notification *tuneboxv1.Notification
	}{
		{
			name:         "progress filtered",
			notification: &tuneboxv1.Notification{Type: tuneboxv1.NotificationTypeProgress, SequenceNo: 9},
		},
		{
			name:         "covered by initial state",
			notification: &tuneboxv1.Notification{Type: tuneboxv1.NotificationTypeSongChanged, SequenceNo: 3},
		},
		{
			name:         "handler returned",
			closed:       true,
			notification: &tuneboxv1.Notification{Type: tuneboxv1.NotificationTypeSongChanged, SequenceNo: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &notificationStreamAdapter{after: 5}
			if tt.closed {
				adapter.close()
			}
			assert.NotPanics(t, func() {
				assert.NoError(t, adapter.Send(tt.notification))
			})
		})
	}
}

func TestPlayerService_WatchStatusDisconnect(t *testing.T) {
	ts := newTestServer(t, nil)
	pl, songs := ts.seed(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watchCtx, stopWatch := context.WithCancel(ctx)
	stream, err := ts.player.WatchStatus(watchCtx, connect.NewRequest(&tuneboxv1.WatchStatusRequest{IncludeProgress: true}))
	require.NoError(t, err)
	require.True(t, stream.Receive(), "expected initial state: %v", stream.Err())

	stopWatch()
	stream.Close()

	// Broadcasts after the watcher left must not touch its stream.
	for range 5 {
		_, err = ts.player.Play(ctx, connect.NewRequest(&tuneboxv1.PlayRequest{SongID: songs[0].ID, PlaylistID: pl.ID}))
		require.NoError(t, err)
		_, err = ts.player.Pause(ctx, empty())
		require.NoError(t, err)
	}

	resp, err := ts.player.GetStatus(ctx, empty())
	require.NoError(t, err)
	assert.Equal(t, tuneboxv1.PlaybackStatePaused, resp.Msg.Status.State)
}

func TestPlayerService_WithoutSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(tuneboxv1connect.NewPlayerServiceHandler(NewPlayerService()))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := tuneboxv1connect.NewPlayerServiceClient(srv.Client(), srv.URL)
	_, err := client.GetStatus(context.Background(), empty())
	assert.Equal(t, connect.CodeInternal, codeOf(err))
}

func TestPlayerService_ClosedSession(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.manager.Close()

	_, err := ts.player.Pause(context.Background(), empty())
	assert.Equal(t, connect.CodeUnavailable, codeOf(err))
}
