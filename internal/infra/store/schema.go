package store

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cover_image_url TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			file_url TEXT NOT NULL,
			playlist_id TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_playlists_created_at ON playlists(created_at);
		CREATE INDEX IF NOT EXISTS idx_songs_playlist_id ON songs(playlist_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_songs_created_at ON songs(created_at);
	`)
	return err
}
