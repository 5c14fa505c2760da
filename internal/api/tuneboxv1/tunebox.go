// Package tuneboxv1 holds the tunebox v1 wire messages.
//
// Messages are plain structs carried by the JSON codec in this package; the
// tuneboxv1connect subpackage binds them to Connect procedures.
package tuneboxv1

import "time"

// PlaybackState is the player state as seen by clients.
type PlaybackState string

const (
	PlaybackStateIdle    PlaybackState = "idle"
	PlaybackStatePaused  PlaybackState = "paused"
	PlaybackStatePlaying PlaybackState = "playing"
)

// NotificationType identifies why a notification was sent.
type NotificationType string

const (
	NotificationTypeInitialState    NotificationType = "initial_state"
	NotificationTypeSongChanged     NotificationType = "song_changed"
	NotificationTypeStateChanged    NotificationType = "state_changed"
	NotificationTypeSettingsChanged NotificationType = "settings_changed"
	NotificationTypeProgress        NotificationType = "progress"
)

// ScrubPhase identifies a step of a progress drag.
type ScrubPhase string

const (
	ScrubPhaseBegin ScrubPhase = "begin"
	ScrubPhaseMove  ScrubPhase = "move"
	ScrubPhaseEnd   ScrubPhase = "end"
)

// Song is a catalog song.
type Song struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Artist     string    `json:"artist"`
	FileURL    string    `json:"file_url"`
	PlaylistID string    `json:"playlist_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Playlist is a catalog playlist.
type Playlist struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	SongCount     int       `json:"song_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CurrentSong is a song together with the playlist it was launched from.
type CurrentSong struct {
	Song     Song      `json:"song"`
	Playlist *Playlist `json:"playlist,omitempty"`
}

// Progress is the progress view of the loaded media.
type Progress struct {
	PositionMs int64 `json:"position_ms"`
	DurationMs int64 `json:"duration_ms"`
	Dragging   bool  `json:"dragging"`
}

// Status is the full player status.
type Status struct {
	State          PlaybackState `json:"state"`
	Current        *CurrentSong  `json:"current,omitempty"`
	IsPlaying      bool          `json:"is_playing"`
	Volume         float64       `json:"volume"`
	IsLooping      bool          `json:"is_looping"`
	IsShuffled     bool          `json:"is_shuffled"`
	Queue          []Song        `json:"queue"`
	Position       int           `json:"position"`
	RecentlyPlayed []CurrentSong `json:"recently_played"`
	Progress       Progress      `json:"progress"`
}

// Notification is a status push to watchers.
type Notification struct {
	Type       NotificationType `json:"type"`
	SequenceNo uint64           `json:"sequence_no"`
	Status     *Status          `json:"status,omitempty"`
}

// Empty is used by procedures that take or return nothing.
type Empty struct{}

// PlayRequest plays a catalog song. With a playlist the queue becomes the
// playlist's songs; without one the queue holds the song alone.
type PlayRequest struct {
	SongID     string `json:"song_id" validate:"required"`
	PlaylistID string `json:"playlist_id,omitempty"`
}

// ReplayRequest plays a recently played song again with an empty queue.
type ReplayRequest struct {
	SongID string `json:"song_id" validate:"required"`
}

// SetVolumeRequest sets the volume in [0,1].
type SetVolumeRequest struct {
	Volume float64 `json:"volume"`
}

// ScrubRequest is one step of a progress drag.
type ScrubRequest struct {
	Phase      ScrubPhase `json:"phase" validate:"oneof=begin move end"`
	PositionMs int64      `json:"position_ms" validate:"gte=0"`
}

// StatusResponse carries the status after the call applied.
type StatusResponse struct {
	Status *Status `json:"status"`
}

// WatchStatusRequest opens a status stream.
type WatchStatusRequest struct {
	IncludeProgress bool `json:"include_progress"`
}

// ListPlaylistsRequest lists playlists. A positive limit keeps only the newest.
type ListPlaylistsRequest struct {
	Limit int `json:"limit,omitempty" validate:"gte=0"`
}

// ListPlaylistsResponse lists playlists newest first.
type ListPlaylistsResponse struct {
	Playlists []Playlist `json:"playlists"`
}

// GetPlaylistRequest selects a playlist.
type GetPlaylistRequest struct {
	ID string `json:"id" validate:"required"`
}

// GetPlaylistResponse is a playlist with its songs in play order.
type GetPlaylistResponse struct {
	Playlist Playlist `json:"playlist"`
	Songs    []Song   `json:"songs"`
}

// ListSongsRequest lists songs. An empty playlist id lists every song.
type ListSongsRequest struct {
	PlaylistID string `json:"playlist_id,omitempty"`
}

// ListSongsResponse lists songs.
type ListSongsResponse struct {
	Songs []Song `json:"songs"`
}

// SearchRequest searches the catalog.
type SearchRequest struct {
	Term string `json:"term"`
}

// SearchResponse holds matching playlists and songs.
type SearchResponse struct {
	Playlists []Playlist `json:"playlists"`
	Songs     []Song     `json:"songs"`
}

// StatsResponse summarizes the catalog.
type StatsResponse struct {
	PlaylistCount   int        `json:"playlist_count"`
	SongCount       int        `json:"song_count"`
	RecentPlaylists []Playlist `json:"recent_playlists"`
}

// CreatePlaylistRequest creates a playlist.
type CreatePlaylistRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	CoverImageURL string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
}

// PlaylistResponse carries a single playlist.
type PlaylistResponse struct {
	Playlist Playlist `json:"playlist"`
}

// DeletePlaylistRequest deletes a playlist and its songs.
type DeletePlaylistRequest struct {
	ID string `json:"id" validate:"required"`
}

// AddSongRequest adds a song.
type AddSongRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Artist     string `json:"artist" validate:"required,max=200"`
	FileURL    string `json:"file_url" validate:"required"`
	PlaylistID string `json:"playlist_id,omitempty"`
}

// SongResponse carries a single song.
type SongResponse struct {
	Song Song `json:"song"`
}

// DeleteSongRequest deletes a song.
type DeleteSongRequest struct {
	ID string `json:"id" validate:"required"`
}

// ImportPlaylistRequest imports a Spotify playlist by URL, URI or ID.
type ImportPlaylistRequest struct {
	PlaylistRef string `json:"playlist_ref" validate:"required"`
}

// ImportPlaylistResponse reports an import.
type ImportPlaylistResponse struct {
	Playlist Playlist `json:"playlist"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
}
