package paginate

import (
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/snapshot"
)

// PageManager serves page and offset windows.
type PageManager struct {
	store *snapshot.Store
	cfg   config.PaginationConfig
}

// NewPageManager creates a page manager over store.
func NewPageManager(store *snapshot.Store, cfg config.PaginationConfig) *PageManager {
	return &PageManager{store: store, cfg: cfg}
}

// GetPagedResponse returns page req.Page of the model p generates. Pages
// past the last one have no items.
func (m *PageManager) GetPagedResponse(p provider.ItemProvider, req PageRequest) PageResponse {
	page := max(req.Page, 1)
	limit := resolveLimit(req.Limit, m.cfg)
	total := resolveTotal(req.Total, m.cfg)

	snap := m.store.GetOrCreate(p, req.Seed, total, snapshot.Options{DisableCache: req.DisableCache})
	start, end := window(page-1, limit, total)

	resp := PageResponse{
		Items: buildItems(p, snap, start, end),
		Pagination: PageInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}
	if m.cfg.IncludeSnapshotID {
		resp.SnapshotID = snap.ID
	}
	return resp
}

// GetOffsetResponse returns req.Limit items starting at req.Offset.
func (m *PageManager) GetOffsetResponse(p provider.ItemProvider, req OffsetRequest) OffsetResponse {
	offset := max(req.Offset, 0)
	limit := resolveLimit(req.Limit, m.cfg)
	total := resolveTotal(req.Total, m.cfg)

	snap := m.store.GetOrCreate(p, req.Seed, total, snapshot.Options{DisableCache: req.DisableCache})
	start := min(offset, total)
	end := start + min(limit, total-start)

	resp := OffsetResponse{
		Items: buildItems(p, snap, start, end),
		Pagination: OffsetInfo{
			Offset:  offset,
			Limit:   limit,
			Total:   total,
			HasMore: end < total,
		},
	}
	if m.cfg.IncludeSnapshotID {
		resp.SnapshotID = snap.ID
	}
	return resp
}

// window returns the bounds of the page-th (0-based) window of limit items
// within total, without overflowing for huge page numbers.
func window(page, limit, total int) (start, end int) {
	start = total
	if page <= total/limit {
		start = page * limit
	}
	return start, start + min(limit, total-start)
}

func resolveLimit(limit int, cfg config.PaginationConfig) int {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	return limit
}

func resolveTotal(total int, cfg config.PaginationConfig) int {
	if total > 0 {
		return total
	}
	if cfg.DefaultTotal > 0 {
		return cfg.DefaultTotal
	}
	return config.DefaultTotal
}

// buildItems generates the items for snapshot positions [start, end).
// The result is never nil so it encodes as [].
func buildItems(p provider.ItemProvider, snap *snapshot.Snapshot, start, end int) []Item {
	start = max(start, 0)
	ids := snap.Window(start, end)
	items := make([]Item, 0, len(ids))
	for i, id := range ids {
		items = append(items, p.GenerateItemWithID(id, start+i, snap.Seed))
	}
	return items
}
