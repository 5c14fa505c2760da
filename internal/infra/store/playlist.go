package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/osa030/tunebox/internal/domain/song"
)

const playlistColumns = `p.id, p.name, p.cover_image_url, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM songs s WHERE s.playlist_id = p.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row rowScanner) (song.Playlist, error) {
	var (
		p                    song.Playlist
		cover                sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &cover, &createdAt, &updatedAt, &p.SongCount); err != nil {
		return song.Playlist{}, err
	}
	p.CoverImageURL = stringPtr(cover)
	p.CreatedAt = fromTimestamp(createdAt)
	p.UpdatedAt = fromTimestamp(updatedAt)
	return p, nil
}

func (s *Store) queryPlaylists(ctx context.Context, query string, args ...any) ([]song.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query playlists")
	}
	defer rows.Close()

	playlists := []song.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan playlist")
		}
		playlists = append(playlists, p)
	}
	return playlists, errors.Wrap(rows.Err(), "failed to iterate playlists")
}

// ListPlaylists returns playlists newest first. A positive limit caps the result.
func (s *Store) ListPlaylists(ctx context.Context, limit int) ([]song.Playlist, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.queryPlaylists(ctx,
		`SELECT `+playlistColumns+` FROM playlists p
		 ORDER BY p.created_at DESC, p.rowid DESC LIMIT ?`, limit)
}

// GetPlaylist returns the playlist with the given ID.
func (s *Store) GetPlaylist(ctx context.Context, id string) (song.Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists p WHERE p.id = ?`, id)
	p, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return song.Playlist{}, errors.Wrapf(ErrNotFound, "playlist %s", id)
	}
	if err != nil {
		return song.Playlist{}, errors.Wrap(err, "failed to get playlist")
	}
	return p, nil
}

// CreatePlaylist inserts a new playlist.
func (s *Store) CreatePlaylist(ctx context.Context, name string, coverImageURL *string) (song.Playlist, error) {
	var p song.Playlist
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		p, err = s.insertPlaylist(ctx, tx, name, coverImageURL)
		return err
	})
	if err != nil {
		return song.Playlist{}, err
	}
	s.log.Info().Msgf("playlist created: id=%s, name=%s", p.ID, p.Name)
	return p, nil
}

func (s *Store) insertPlaylist(ctx context.Context, tx *sql.Tx, name string, coverImageURL *string) (song.Playlist, error) {
	ts := s.timestamp()
	p := song.Playlist{
		ID:            s.newID(),
		Name:          name,
		CoverImageURL: stringPtr(nullString(coverImageURL)),
		CreatedAt:     fromTimestamp(ts),
		UpdatedAt:     fromTimestamp(ts),
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO playlists (id, name, cover_image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, nullString(coverImageURL), ts, ts)
	if err != nil {
		return song.Playlist{}, errors.Wrap(err, "failed to insert playlist")
	}
	return p, nil
}

// DeletePlaylist removes a playlist together with its songs.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	var removed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE playlist_id = ?`, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete playlist songs")
		}
		removed, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete playlist")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.Wrapf(ErrNotFound, "playlist %s", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Msgf("playlist deleted: id=%s, songs=%d", id, removed)
	return nil
}

// ImportPlaylist creates a playlist and its songs atomically.
// Songs keep their given order; their IDs, owner and timestamps are assigned here.
func (s *Store) ImportPlaylist(ctx context.Context, name string, coverImageURL *string, songs []song.Song) (song.Playlist, error) {
	var p song.Playlist
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		p, err = s.insertPlaylist(ctx, tx, name, coverImageURL)
		if err != nil {
			return err
		}
		for _, sg := range songs {
			sg.PlaylistID = &p.ID
			if _, err := s.insertSong(ctx, tx, sg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return song.Playlist{}, err
	}
	p.SongCount = len(songs)
	s.log.Info().Msgf("playlist imported: id=%s, name=%s, songs=%d", p.ID, p.Name, len(songs))
	return p, nil
}
