// Package song provides the catalog entities consumed by the player.
package song

import "time"

// Song represents a catalog song record.
// Songs are owned by the catalog store; the player only reads them.
type Song struct {
	ID         string    `json:"id"`          // Unique song ID
	Name       string    `json:"name"`        // Song title
	Artist     string    `json:"artist"`      // Artist name
	FileURL    string    `json:"file_url"`    // Playable media reference (path or URL)
	PlaylistID *string   `json:"playlist_id"` // Owning playlist (nil for standalone songs)
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Playlist represents a catalog playlist.
type Playlist struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CoverImageURL *string   `json:"cover_image_url"`
	SongCount     int       `json:"song_count,omitempty"` // Filled by listings only
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CurrentSong is a song as loaded into the player, with the playlist it was
// launched from (display only).
type CurrentSong struct {
	Song
	Playlist *Playlist `json:"playlist,omitempty"`
}

// Current wraps a song into a CurrentSong without playlist context.
func Current(s Song) CurrentSong {
	return CurrentSong{Song: s}
}

// InPlaylist reports whether the song belongs to the given playlist.
func (s *Song) InPlaylist(playlistID string) bool {
	return s.PlaylistID != nil && *s.PlaylistID == playlistID
}

// IDs returns the IDs of the given songs in order.
func IDs(songs []Song) []string {
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}
