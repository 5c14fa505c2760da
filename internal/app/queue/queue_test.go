package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunebox/internal/domain/song"
)

func songs(ids ...string) []song.Song {
	result := make([]song.Song, len(ids))
	for i, id := range ids {
		result[i] = song.Song{ID: id, Name: "Song " + id}
	}
	return result
}

func TestNew(t *testing.T) {
	q := New()

	assert.Equal(t, 0, q.Len())
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Step(1))
}

func TestQueue_Set(t *testing.T) {
	tests := []struct {
		name     string
		queue    []song.Song
		start    song.Song
		expected int
	}{
		{name: "first song", queue: songs("a", "b", "c"), start: song.Song{ID: "a"}, expected: 0},
		{name: "last song", queue: songs("a", "b", "c"), start: song.Song{ID: "c"}, expected: 2},
		{name: "matched by id only", queue: songs("a", "b"), start: song.Song{ID: "b", Name: "renamed"}, expected: 1},
		{name: "absent song defaults to zero", queue: songs("a", "b"), start: song.Song{ID: "z"}, expected: 0},
		{name: "empty queue", queue: nil, start: song.Song{ID: "a"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			pos := q.Set(tt.queue, tt.start)

			assert.Equal(t, tt.expected, pos)
			assert.Equal(t, tt.expected, q.Position())
			assert.Equal(t, len(tt.queue), q.Len())
		})
	}
}

func TestQueue_SetCopiesInput(t *testing.T) {
	input := songs("a", "b")
	q := New()
	q.Set(input, input[0])

	input[0].Name = "mutated"

	s, ok := q.At(0)
	require.True(t, ok)
	assert.Equal(t, "Song a", s.Name)
}

func TestQueue_Step(t *testing.T) {
	q := New()
	q.Set(songs("a", "b", "c"), song.Song{ID: "a"})

	assert.Equal(t, 1, q.Step(1))
	assert.Equal(t, 2, q.Step(-1))

	q.MoveTo(2)
	assert.Equal(t, 0, q.Step(1))
	assert.Equal(t, 1, q.Step(-1))
	assert.Equal(t, 2, q.Step(3))
	assert.Equal(t, 2, q.Step(-3))
}

func TestQueue_MoveTo(t *testing.T) {
	q := New()
	q.Set(songs("a", "b", "c"), song.Song{ID: "a"})

	s, ok := q.MoveTo(1)
	require.True(t, ok)
	assert.Equal(t, "b", s.ID)
	assert.Equal(t, 1, q.Position())

	_, ok = q.MoveTo(5)
	assert.False(t, ok)
	assert.Equal(t, 1, q.Position(), "invalid move must not change position")

	_, ok = q.MoveTo(-1)
	assert.False(t, ok)
}

func TestQueue_Songs(t *testing.T) {
	q := New()
	q.Set(songs("a", "b"), song.Song{ID: "a"})

	out := q.Songs()
	out[0].ID = "changed"

	assert.Equal(t, []string{"a", "b"}, song.IDs(q.Songs()))
}

func TestHistory_Record(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)

	h.Record(song.Current(song.Song{ID: "a"}))
	h.Record(song.Current(song.Song{ID: "b"}))

	assert.Equal(t, []string{"b", "a"}, historyIDs(h))
}

func TestHistory_ReplayMovesToFront(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)

	for _, id := range []string{"a", "b", "c"} {
		h.Record(song.Current(song.Song{ID: id}))
	}
	h.Record(song.Current(song.Song{ID: "a", Name: "again"}))

	require.Equal(t, []string{"a", "c", "b"}, historyIDs(h))
	assert.Equal(t, "again", h.Entries()[0].Name, "newest record replaces the old entry")
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)

	for i := 0; i < 25; i++ {
		h.Record(song.Current(song.Song{ID: fmt.Sprintf("s%02d", i)}))
	}

	require.Equal(t, DefaultHistoryLimit, h.Len())
	ids := historyIDs(h)
	assert.Equal(t, "s24", ids[0])
	assert.Equal(t, "s15", ids[len(ids)-1])
}

func TestHistory_NeverDuplicates(t *testing.T) {
	h := NewHistory(3)
	sequence := []string{"a", "b", "a", "c", "b", "b", "d", "a"}

	for _, id := range sequence {
		h.Record(song.Current(song.Song{ID: id}))

		ids := historyIDs(h)
		assert.LessOrEqual(t, len(ids), 3)
		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate %s in %v", id, ids)
			seen[id] = true
		}
	}
	assert.Equal(t, []string{"a", "d", "b"}, historyIDs(h))
}

func TestNewHistory_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, NewHistory(0).Limit())
	assert.Equal(t, DefaultHistoryLimit, NewHistory(-1).Limit())
	assert.Equal(t, 4, NewHistory(4).Limit())
}

func historyIDs(h *History) []string {
	entries := h.Entries()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
