package queue

import (
	"github.com/samber/lo"

	"github.com/osa030/tunebox/internal/domain/song"
)

// DefaultHistoryLimit is the number of recently played entries kept by default.
const DefaultHistoryLimit = 10

// History is the recently played list, most recent first, unique by song ID.
type History struct {
	entries []song.CurrentSong
	limit   int
}

// NewHistory creates a history bounded to limit entries.
// Non-positive limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		entries: make([]song.CurrentSong, 0, limit),
		limit:   limit,
	}
}

// Record moves cs to the front, dropping any older entry with the same ID
// and anything beyond the limit.
func (h *History) Record(cs song.CurrentSong) {
	rest := lo.Reject(h.entries, func(e song.CurrentSong, _ int) bool {
		return e.ID == cs.ID
	})

	entries := make([]song.CurrentSong, 0, h.limit)
	entries = append(entries, cs)
	entries = append(entries, rest...)
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}
	h.entries = entries
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []song.CurrentSong {
	result := make([]song.CurrentSong, len(h.entries))
	copy(result, h.entries)
	return result
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the maximum number of entries kept.
func (h *History) Limit() int {
	return h.limit
}
