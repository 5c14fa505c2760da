package song

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSong_InPlaylist(t *testing.T) {
	playlistID := "pl-1"
	other := "pl-2"

	tests := []struct {
		name       string
		playlistID *string
		query      string
		expected   bool
	}{
		{
			name:       "member of playlist",
			playlistID: &playlistID,
			query:      "pl-1",
			expected:   true,
		},
		{
			name:       "member of another playlist",
			playlistID: &other,
			query:      "pl-1",
			expected:   false,
		},
		{
			name:       "standalone song",
			playlistID: nil,
			query:      "pl-1",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Song{ID: "song-1", PlaylistID: tt.playlistID}
			assert.Equal(t, tt.expected, s.InPlaylist(tt.query))
		})
	}
}

func TestCurrent(t *testing.T) {
	s := Song{ID: "a", Name: "Alpha", Artist: "Band"}

	cs := Current(s)

	assert.Equal(t, s, cs.Song)
	assert.Nil(t, cs.Playlist)
}

func TestIDs(t *testing.T) {
	songs := []Song{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, []string{"a", "b", "c"}, IDs(songs))
	assert.Empty(t, IDs(nil))
}
