package store

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/tunebox/internal/domain/song"
)

// RecentPlaylistCount is the number of playlists reported by Stats.
const RecentPlaylistCount = 5

// SearchResult holds the matches of a catalog search.
type SearchResult struct {
	Playlists []song.Playlist
	Songs     []song.Song
}

// Stats summarizes the catalog.
type Stats struct {
	PlaylistCount   int
	SongCount       int
	RecentPlaylists []song.Playlist
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds playlists by name and songs by name or artist.
// Matching is case-insensitive for ASCII; results are newest first.
// A blank term matches nothing.
func (s *Store) Search(ctx context.Context, term string) (SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchResult{Playlists: []song.Playlist{}, Songs: []song.Song{}}, nil
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"

	playlists, err := s.queryPlaylists(ctx,
		`SELECT `+playlistColumns+` FROM playlists p
		 WHERE p.name LIKE ? ESCAPE '\'
		 ORDER BY p.created_at DESC, p.rowid DESC`, pattern)
	if err != nil {
		return SearchResult{}, err
	}

	songs, err := s.querySongs(ctx,
		`SELECT `+songColumns+` FROM songs
		 WHERE name LIKE ? ESCAPE '\' OR artist LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC, rowid DESC`, pattern, pattern)
	if err != nil {
		return SearchResult{}, err
	}

	s.log.Debug().Msgf("search: term=%q, playlists=%d, songs=%d", term, len(playlists), len(songs))
	return SearchResult{Playlists: playlists, Songs: songs}, nil
}

// Stats returns catalog counts and the most recent playlists.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM playlists), (SELECT COUNT(*) FROM songs)`).
		Scan(&stats.PlaylistCount, &stats.SongCount)
	if err != nil {
		return Stats{}, errors.Wrap(err, "failed to count catalog")
	}

	stats.RecentPlaylists, err = s.ListPlaylists(ctx, RecentPlaylistCount)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}
