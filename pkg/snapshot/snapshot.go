// Package snapshot caches the ordered identifier lists that make
// stateless pagination stable.
//
// A Snapshot fixes which IDs exist for a (model, seed) pair and in what
// order. Item content is never cached; providers regenerate it on demand
// from (id, index, seed).
package snapshot

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable ordered list of item IDs. Only the access time
// changes after creation.
type Snapshot struct {
	ID          string    `json:"id"`
	ModelName   string    `json:"modelName"`
	Seed        string    `json:"seed"`
	Total       int       `json:"total"`
	ItemIDs     []string  `json:"itemIds"`
	IDFieldName string    `json:"idFieldName"`
	CreatedAt   time.Time `json:"createdAt"`

	// ExpiresAt is zero for snapshots that never expire.
	ExpiresAt time.Time `json:"expiresAt,omitzero"`

	accessedAt atomic.Int64
	index      map[string]int
}

func newSnapshot(id, model, seed, idField string, ids []string, now time.Time, ttl time.Duration) *Snapshot {
	s := &Snapshot{
		ID:          id,
		ModelName:   model,
		Seed:        seed,
		Total:       len(ids),
		ItemIDs:     ids,
		IDFieldName: idField,
		CreatedAt:   now,
		index:       make(map[string]int, len(ids)),
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	// First occurrence wins if a format ever produces a duplicate.
	for i := len(ids) - 1; i >= 0; i-- {
		s.index[ids[i]] = i
	}
	s.touch(now)
	return s
}

// IndexOf returns the position of id, or -1.
func (s *Snapshot) IndexOf(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Window returns the IDs in [start, end), clamped to the snapshot bounds.
func (s *Snapshot) Window(start, end int) []string {
	start = max(start, 0)
	end = min(end, len(s.ItemIDs))
	if start >= end {
		return nil
	}
	return s.ItemIDs[start:end]
}

// Expired reports whether the snapshot has passed its expiry at now.
func (s *Snapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AccessedAt returns the last time the snapshot was handed out.
func (s *Snapshot) AccessedAt() time.Time {
	return time.UnixMilli(s.accessedAt.Load())
}

func (s *Snapshot) touch(now time.Time) {
	s.accessedAt.Store(now.UnixMilli())
}
