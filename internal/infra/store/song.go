package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/osa030/tunebox/internal/domain/song"
)

const songColumns = `id, name, artist, file_url, playlist_id, created_at, updated_at`

func scanSong(row rowScanner) (song.Song, error) {
	var (
		sg                   song.Song
		playlistID           sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&sg.ID, &sg.Name, &sg.Artist, &sg.FileURL, &playlistID, &createdAt, &updatedAt); err != nil {
		return song.Song{}, err
	}
	sg.PlaylistID = stringPtr(playlistID)
	sg.CreatedAt = fromTimestamp(createdAt)
	sg.UpdatedAt = fromTimestamp(updatedAt)
	return sg, nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]song.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query songs")
	}
	defer rows.Close()

	songs := []song.Song{}
	for rows.Next() {
		sg, err := scanSong(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan song")
		}
		songs = append(songs, sg)
	}
	return songs, errors.Wrap(rows.Err(), "failed to iterate songs")
}

// GetSong returns the song with the given ID.
func (s *Store) GetSong(ctx context.Context, id string) (song.Song, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	sg, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return song.Song{}, errors.Wrapf(ErrNotFound, "song %s", id)
	}
	if err != nil {
		return song.Song{}, errors.Wrap(err, "failed to get song")
	}
	return sg, nil
}

// ListSongs returns the songs of a playlist in insertion order.
// With an empty playlistID it returns every song, newest first.
func (s *Store) ListSongs(ctx context.Context, playlistID string) ([]song.Song, error) {
	if playlistID == "" {
		return s.querySongs(ctx,
			`SELECT `+songColumns+` FROM songs ORDER BY created_at DESC, rowid DESC`)
	}
	return s.querySongs(ctx,
		`SELECT `+songColumns+` FROM songs WHERE playlist_id = ? ORDER BY created_at ASC, rowid ASC`,
		playlistID)
}

// AddSong inserts a song. A non-nil PlaylistID must reference an existing playlist.
func (s *Store) AddSong(ctx context.Context, sg song.Song) (song.Song, error) {
	var created song.Song
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if sg.PlaylistID != nil && *sg.PlaylistID != "" {
			var exists int
			err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM playlists WHERE id = ?`, *sg.PlaylistID).Scan(&exists)
			if err != nil {
				return errors.Wrap(err, "failed to check playlist")
			}
			if exists == 0 {
				return errors.Wrapf(ErrNotFound, "playlist %s", *sg.PlaylistID)
			}
		}
		var err error
		created, err = s.insertSong(ctx, tx, sg)
		return err
	})
	if err != nil {
		return song.Song{}, err
	}
	s.log.Info().Msgf("song added: id=%s, name=%s, artist=%s", created.ID, created.Name, created.Artist)
	return created, nil
}

func (s *Store) insertSong(ctx context.Context, tx *sql.Tx, sg song.Song) (song.Song, error) {
	ts := s.timestamp()
	sg.ID = s.newID()
	sg.PlaylistID = stringPtr(nullString(sg.PlaylistID))
	sg.CreatedAt = fromTimestamp(ts)
	sg.UpdatedAt = fromTimestamp(ts)

	_, err := tx.ExecContext(ctx,
		`INSERT INTO songs (`+songColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sg.ID, sg.Name, sg.Artist, sg.FileURL, nullString(sg.PlaylistID), ts, ts)
	if err != nil {
		return song.Song{}, errors.Wrap(err, "failed to insert song")
	}
	return sg, nil
}

// DeleteSong removes a song.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete song")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "song %s", id)
	}
	s.log.Info().Msgf("song deleted: id=%s", id)
	return nil
}
