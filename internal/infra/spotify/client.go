// Package spotify fetches Spotify playlists for import into the catalog.
package spotify

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/osa030/tunebox/internal/domain/song"
	"github.com/osa030/tunebox/internal/infra/logger"
)

// pageLimit is the Spotify maximum for playlist item pages.
const pageLimit = 100

// ErrInvalidPlaylistRef is returned when a playlist reference cannot be parsed.
var ErrInvalidPlaylistRef = errors.New("invalid playlist reference")

// api is the part of the Spotify Web API used by the client.
type api interface {
	GetPlaylist(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.FullPlaylist, error)
	GetPlaylistItems(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.PlaylistItemPage, error)
}

// Client is a Spotify API client.
type Client struct {
	client     api
	market     string
	maxRetries int
	retryDelay time.Duration
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Market       string
}

// PlaylistImport is a Spotify playlist converted into catalog songs.
// Songs carry no IDs, owner or timestamps; the store assigns them.
type PlaylistImport struct {
	SpotifyID     string
	Name          string
	CoverImageURL *string
	Songs         []song.Song
	Skipped       int // Tracks without a preview or episodes
}

// New creates a new Spotify client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("spotify credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(spotifyauth.ScopePlaylistReadPrivate),
	)

	// Get HTTP client with auto-refresh capability
	httpClient := auth.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return newClient(spotify.New(httpClient), cfg.Market), nil
}

func newClient(c api, market string) *Client {
	if market == "" {
		market = "JP"
	}
	return &Client{
		client:     c,
		market:     market,
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// FetchPlaylist retrieves a playlist by ID, URL, or URI and converts its
// playable tracks into songs. Track order is preserved.
func (c *Client) FetchPlaylist(ctx context.Context, ref string) (*PlaylistImport, error) {
	playlistID := extractPlaylistID(ref)
	if playlistID == "" {
		return nil, errors.Wrapf(ErrInvalidPlaylistRef, "%q", ref)
	}
	log := logger.Component("spotify")

	var playlist *spotify.FullPlaylist
	err := c.retry(ctx, func() error {
		p, err := c.client.GetPlaylist(ctx, spotify.ID(playlistID), spotify.Market(c.market))
		if err != nil {
			return err
		}
		playlist = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get playlist")
	}

	result := &PlaylistImport{
		SpotifyID: playlistID,
		Name:      playlist.Name,
		Songs:     []song.Song{},
	}
	if len(playlist.Images) > 0 {
		result.CoverImageURL = lo.ToPtr(playlist.Images[0].URL)
	}

	offset := 0
	for {
		var page *spotify.PlaylistItemPage
		err := c.retry(ctx, func() error {
			p, err := c.client.GetPlaylistItems(ctx, spotify.ID(playlistID),
				spotify.Limit(pageLimit),
				spotify.Offset(offset),
				spotify.Market(c.market),
			)
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get playlist items")
		}

		for _, item := range page.Items {
			s, ok := convertTrack(item.Track.Track)
			if !ok {
				result.Skipped++
				continue
			}
			result.Songs = append(result.Songs, s)
		}

		if len(page.Items) < pageLimit {
			break
		}
		offset += pageLimit
	}

	log.Info().Msgf("playlist fetched: id=%s, name=%s, songs=%d, skipped=%d",
		playlistID, result.Name, len(result.Songs), result.Skipped)
	return result, nil
}

// convertTrack converts a track with a preview clip into a song.
// Episodes and tracks without a preview are rejected.
func convertTrack(t *spotify.FullTrack) (song.Song, bool) {
	if t == nil || t.ID == "" || t.PreviewURL == "" {
		return song.Song{}, false
	}
	artists := lo.Map(t.Artists, func(a spotify.SimpleArtist, _ int) string { return a.Name })
	return song.Song{
		Name:    t.Name,
		Artist:  strings.Join(artists, ", "),
		FileURL: t.PreviewURL,
	}, true
}

// retry retries an operation with linear backoff.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if i < c.maxRetries-1 {
			select {
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "retry aborted")
			case <-time.After(c.retryDelay * time.Duration(i+1)):
			}
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Status >= 500
	}
	// Rate limit errors and server errors are retryable
	errStr := err.Error()
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504")
}

// extractPlaylistID extracts the playlist ID from a Spotify playlist URL or URI.
func extractPlaylistID(input string) string {
	input = strings.TrimSpace(input)
	// spotify:playlist:PLAYLIST_ID
	if id, ok := strings.CutPrefix(input, "spotify:playlist:"); ok {
		return id
	}

	// https://open.spotify.com/playlist/PLAYLIST_ID or https://open.spotify.com/intl-XX/playlist/PLAYLIST_ID
	if strings.Contains(input, "open.spotify.com") && strings.Contains(input, "/playlist/") {
		parts := strings.Split(input, "/playlist/")
		id := strings.Split(parts[len(parts)-1], "?")[0]
		return strings.TrimRight(id, "/")
	}

	return input
}
