package snapshot

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/provider"
)

// Options adjust a single GetOrCreate call.
type Options struct {
	// DisableCache builds a fresh, unstored snapshot.
	DisableCache bool

	// TTL overrides the store TTL when positive.
	TTL time.Duration
}

// Store owns every cached snapshot. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	byKey  map[string]*Snapshot
	byID   map[string]*Snapshot
	cache  bool
	ttl    time.Duration
	sweep  time.Duration
	now    func() time.Time
	log    *slog.Logger
	stopCh chan struct{}
	once   sync.Once
	start  sync.Once
}

// NewStore creates a store from the pagination config. The sweep loop is
// not running until Start is called.
func NewStore(cfg config.PaginationConfig) *Store {
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = config.DefaultSweepInterval
	}
	return &Store{
		byKey:  make(map[string]*Snapshot),
		byID:   make(map[string]*Snapshot),
		cache:  cfg.Cache,
		ttl:    cfg.CacheTTL,
		sweep:  sweep,
		now:    time.Now,
		log:    logging.Nop(),
		stopCh: make(chan struct{}),
	}
}

// SetLogger sets the logger for snapshot lifecycle events.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = logging.Nop()
	}
	s.log = logger
}

// SetClock replaces the time source. Tests use it to move time forward.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

func key(model, seed string) string {
	return model + ":" + seed
}

// GetOrCreate returns the live snapshot for (p.ModelName(), seed) when one
// exists with the requested total; otherwise it generates total IDs with
// p.GenerateID and caches the result.
func (s *Store) GetOrCreate(p provider.ItemProvider, seed string, total int, opts Options) *Snapshot {
	now := s.now()
	k := key(p.ModelName(), seed)
	cached := s.cache && !opts.DisableCache

	if cached {
		s.mu.RLock()
		snap, ok := s.byKey[k]
		s.mu.RUnlock()
		if ok && !snap.Expired(now) && snap.Total == total {
			snap.touch(now)
			return snap
		}
	}

	ttl := s.ttl
	if opts.TTL > 0 {
		ttl = opts.TTL
	}
	ids := make([]string, max(total, 0))
	for i := range ids {
		ids[i] = p.GenerateID(i, seed)
	}
	snap := newSnapshot(uuid.NewString(), p.ModelName(), seed, p.IDFieldName(), ids, now, ttl)

	if !cached {
		return snap
	}

	s.mu.Lock()
	if old, ok := s.byKey[k]; ok {
		delete(s.byID, old.ID)
		s.log.Debug("snapshot refreshed", "model", snap.ModelName, "seed", seed, "old", old.ID, "new", snap.ID)
	} else {
		s.log.Debug("snapshot created", "model", snap.ModelName, "seed", seed, "id", snap.ID, "total", total)
	}
	s.byKey[k] = snap
	s.byID[snap.ID] = snap
	s.mu.Unlock()
	return snap
}

// GetByID returns a live snapshot by its handle.
func (s *Store) GetByID(id string) (*Snapshot, bool) {
	now := s.now()
	s.mu.RLock()
	snap, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok || snap.Expired(now) {
		return nil, false
	}
	snap.touch(now)
	return snap, true
}

// Delete removes the snapshot for (model, seed). It reports whether one
// was present.
func (s *Store) Delete(model, seed string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.byKey[key(model, seed)]
	if ok {
		delete(s.byKey, key(model, seed))
		delete(s.byID, snap.ID)
	}
	return ok
}

// Len returns the number of cached snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// Sweep removes expired snapshots and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, snap := range s.byKey {
		if snap.Expired(now) {
			delete(s.byKey, k)
			delete(s.byID, snap.ID)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("snapshots swept", "removed", removed, "remaining", len(s.byKey))
	}
	return removed
}

// Reset drops every snapshot.
func (s *Store) Reset() {
	s.mu.Lock()
	n := len(s.byKey)
	s.byKey = make(map[string]*Snapshot)
	s.byID = make(map[string]*Snapshot)
	s.mu.Unlock()
	s.log.Info("snapshot store reset", "removed", n)
}

// Start launches the periodic sweep. Calling it more than once has no
// further effect.
func (s *Store) Start() {
	s.start.Do(func() { go s.loop() })
}

// Stop ends the sweep loop and clears the store.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	s.Reset()
}

func (s *Store) loop() {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}
