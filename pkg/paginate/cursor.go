package paginate

import (
	"log/slog"
	"math"
	"time"

	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/logging"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/snapshot"
)

// CursorManager serves cursor windows.
type CursorManager struct {
	store      *snapshot.Store
	cfg        config.CursorConfig
	pagination config.PaginationConfig
	log        *slog.Logger
}

// NewCursorManager creates a cursor manager over store.
func NewCursorManager(store *snapshot.Store, cfg config.CursorConfig, pagination config.PaginationConfig) *CursorManager {
	return &CursorManager{
		store:      store,
		cfg:        cfg,
		pagination: pagination,
		log:        logging.Nop(),
	}
}

// SetLogger sets the logger for decode and fallback events.
func (m *CursorManager) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = logging.Nop()
	}
	m.log = logger
}

// position is where a request resolved to within a snapshot.
type position struct {
	snap      *snapshot.Snapshot
	start     int
	sortField string
	sortOrder string
}

// GetCursorResponse returns the window addressed by req.Cursor.
func (m *CursorManager) GetCursorResponse(p provider.ItemProvider, req CursorRequest) CursorResponse {
	limit := resolveLimit(req.Limit, m.pagination)
	total := resolveTotal(req.Total, m.pagination)
	now := m.store.Now()

	pos := m.resolve(p, req, limit, total, now)
	snap := pos.snap
	start := min(max(pos.start, 0), len(snap.ItemIDs))
	end := min(start+limit, len(snap.ItemIDs))

	resp := CursorResponse{
		Items:   buildItems(p, snap, start, end),
		HasMore: end < len(snap.ItemIDs),
		HasPrev: start > 0,
	}
	if m.pagination.IncludeSnapshotID {
		resp.SnapshotID = snap.ID
	}

	issue := func(anchor string, dir Direction) string {
		payload := CursorPayload{
			LastID:     anchor,
			Direction:  dir,
			SnapshotID: snap.ID,
			Timestamp:  now.UnixMilli(),
		}
		if m.cfg.IncludeSortInfo {
			payload.SortField = pos.sortField
			payload.SortOrder = pos.sortOrder
		}
		return EncodeCursor(payload)
	}
	if resp.HasMore && end > start {
		resp.NextCursor = issue(snap.ItemIDs[end-1], Forward)
	}
	if resp.HasPrev {
		resp.PrevCursor = issue(snap.ItemIDs[start], Backward)
	}
	return resp
}

func (m *CursorManager) resolve(p provider.ItemProvider, req CursorRequest, limit, total int, now time.Time) position {
	pos := position{sortField: req.SortField, sortOrder: req.SortOrder}
	fresh := func() *snapshot.Snapshot {
		return m.store.GetOrCreate(p, req.Seed, total, snapshot.Options{DisableCache: req.DisableCache})
	}

	if req.Cursor == "" {
		pos.snap = fresh()
		return pos
	}

	payload, encoding, ok := DecodeCursor(req.Cursor)
	if !ok {
		m.log.Debug("cursor not decodable, restarting", "model", p.ModelName())
		pos.snap = fresh()
		return pos
	}
	if m.expired(payload, now) {
		m.log.Debug("cursor expired, restarting", "model", p.ModelName(), "issued", payload.Timestamp)
		pos.snap = fresh()
		return pos
	}
	if pos.sortField == "" {
		pos.sortField, pos.sortOrder = payload.SortField, payload.SortOrder
	}

	if payload.SnapshotID != "" {
		if snap, ok := m.store.GetByID(payload.SnapshotID); ok && snap.ModelName == p.ModelName() {
			pos.snap = snap
		}
	}
	if pos.snap == nil {
		pos.snap = fresh()
	}

	dir := payload.Direction
	if req.Backward {
		dir = Backward
	}

	anchor := pos.snap.IndexOf(payload.LastID)
	if anchor < 0 {
		if n, ok := legacyIndex(payload.LastID); ok {
			pos.start = n
			if dir == Backward {
				pos.start = max(0, n-limit)
			}
			return pos
		}
		pos.start = estimateStart(payload, pos.snap, now)
		m.log.Debug("cursor anchor not found, estimating",
			"model", p.ModelName(), "encoding", encoding, "start", pos.start)
		return pos
	}

	if dir == Backward {
		pos.start = max(0, anchor-limit)
	} else {
		pos.start = anchor + 1
	}
	return pos
}

func (m *CursorManager) expired(p CursorPayload, now time.Time) bool {
	if !m.cfg.EnableExpiry || p.Timestamp <= 0 {
		return false
	}
	ttl := m.cfg.CursorTTL
	if ttl <= 0 {
		ttl = config.DefaultCursorTTL
	}
	return now.Sub(time.UnixMilli(p.Timestamp)) > ttl
}

// estimateStart approximates the position of a lost anchor from how far
// into the snapshot's lifetime the cursor was issued. The result is best
// effort only.
func estimateStart(p CursorPayload, snap *snapshot.Snapshot, now time.Time) int {
	if p.Timestamp <= 0 {
		return 0
	}
	age := now.Sub(snap.CreatedAt)
	if age <= 0 {
		return 0
	}
	elapsed := time.UnixMilli(p.Timestamp).Sub(snap.CreatedAt)
	ratio := math.Min(math.Max(float64(elapsed)/float64(age), 0), 1)
	return int(math.Round(ratio * float64(snap.Total)))
}
