package tuneboxv1

import (
	"github.com/samber/lo"

	"github.com/osa030/tunebox/internal/domain/song"
)

// FromSong converts a catalog song.
func FromSong(s song.Song) Song {
	return Song{
		ID:         s.ID,
		Name:       s.Name,
		Artist:     s.Artist,
		FileURL:    s.FileURL,
		PlaylistID: lo.FromPtr(s.PlaylistID),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromSongs converts catalog songs. The result is never nil.
func FromSongs(songs []song.Song) []Song {
	return lo.Map(songs, func(s song.Song, _ int) Song { return FromSong(s) })
}

// FromPlaylist converts a catalog playlist.
func FromPlaylist(p song.Playlist) Playlist {
	return Playlist{
		ID:            p.ID,
		Name:          p.Name,
		CoverImageURL: lo.FromPtr(p.CoverImageURL),
		SongCount:     p.SongCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromPlaylists converts catalog playlists. The result is never nil.
func FromPlaylists(playlists []song.Playlist) []Playlist {
	return lo.Map(playlists, func(p song.Playlist, _ int) Playlist { return FromPlaylist(p) })
}

// FromCurrentSong converts a current song.
func FromCurrentSong(cs song.CurrentSong) CurrentSong {
	result := CurrentSong{Song: FromSong(cs.Song)}
	if cs.Playlist != nil {
		pl := FromPlaylist(*cs.Playlist)
		result.Playlist = &pl
	}
	return result
}

// FromCurrentSongs converts current songs. The result is never nil.
func FromCurrentSongs(entries []song.CurrentSong) []CurrentSong {
	return lo.Map(entries, func(cs song.CurrentSong, _ int) CurrentSong { return FromCurrentSong(cs) })
}
