package paginate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/snapshot"
)

type testProvider struct {
	provider.Base
}

func newTestProvider() *testProvider {
	return &testProvider{Base: provider.NewBase("Widget", []string{"id", "name"}, nil)}
}

func (p *testProvider) GenerateItem(index int, seed string) map[string]any {
	return map[string]any{"name": "widget", "position": index, "seed": seed}
}

func (p *testProvider) GenerateItemWithID(id string, index int, seed string) map[string]any {
	return p.WithID(p.GenerateItem(index, seed), id)
}

type fixture struct {
	store  *snapshot.Store
	pages  *PageManager
	cursor *CursorManager
	now    time.Time
}

func newFixture(t testing.TB, mutate func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	f := &fixture{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	f.store = snapshot.NewStore(cfg.Pagination)
	f.store.SetClock(func() time.Time { return f.now })
	t.Cleanup(f.store.Stop)
	f.pages = NewPageManager(f.store, cfg.Pagination)
	f.cursor = NewCursorManager(f.store, cfg.Cursor, cfg.Pagination)
	return f
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it["id"].(string)
	}
	return out
}

func TestGetPagedResponse_Partition(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	seen := map[string]bool{}
	var sizes []int
	for page := 1; page <= 3; page++ {
		resp := f.pages.GetPagedResponse(p, PageRequest{Page: page, Limit: 10, Total: 25, Seed: "s"})
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, 25, resp.Pagination.Total)
		sizes = append(sizes, len(resp.Items))
		for _, id := range ids(resp.Items) {
			assert.False(t, seen[id], "id %s repeated", id)
			seen[id] = true
		}
	}
	assert.Equal(t, []int{10, 10, 5}, sizes)

	snap := f.store.GetOrCreate(p, "s", 25, snapshot.Options{})
	for _, id := range snap.ItemIDs {
		assert.True(t, seen[id], "id %s skipped", id)
	}
}

func TestGetPagedResponse_Stable(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()
	req := PageRequest{Page: 2, Limit: 5, Total: 20, Seed: "stable"}

	a := f.pages.GetPagedResponse(p, req)
	b := f.pages.GetPagedResponse(p, req)
	assert.Equal(t, a, b)
	assert.Equal(t, 5, a.Items[0]["position"])
}

func TestGetPagedResponse_Defaults(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Pagination.MaxLimit = 50 })
	p := newTestProvider()

	resp := f.pages.GetPagedResponse(p, PageRequest{Seed: "d"})
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, config.DefaultLimit, resp.Pagination.Limit)
	assert.Equal(t, config.DefaultTotal, resp.Pagination.Total)
	assert.Len(t, resp.Items, config.DefaultLimit)

	capped := f.pages.GetPagedResponse(p, PageRequest{Limit: 500, Seed: "d"})
	assert.Equal(t, 50, capped.Pagination.Limit)
}

func TestGetPagedResponse_BeyondLastPage(t *testing.T) {
	f := newFixture(t, nil)
	resp := f.pages.GetPagedResponse(newTestProvider(), PageRequest{Page: 9, Limit: 10, Total: 25, Seed: "s"})
	require.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestGetPagedResponse_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	resp := f.pages.GetPagedResponse(p, PageRequest{Page: math.MaxInt, Limit: 10, Total: 50, Seed: "s"})
	require.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, math.MaxInt, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.TotalPages)

	off := f.pages.GetOffsetResponse(p, OffsetRequest{Offset: math.MaxInt - 1, Limit: 10, Total: 50, Seed: "s"})
	assert.Empty(t, off.Items)
	assert.False(t, off.Pagination.HasMore)
}

func TestGetPagedResponse_SnapshotID(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Pagination.IncludeSnapshotID = true })
	resp := f.pages.GetPagedResponse(newTestProvider(), PageRequest{Total: 3, Seed: "s"})
	assert.NotEmpty(t, resp.SnapshotID)

	plain := newFixture(t, nil).pages.GetPagedResponse(newTestProvider(), PageRequest{Total: 3, Seed: "s"})
	assert.Empty(t, plain.SnapshotID)
}

func TestGetOffsetResponse(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	page := f.pages.GetPagedResponse(p, PageRequest{Page: 2, Limit: 4, Total: 10, Seed: "o"})
	off := f.pages.GetOffsetResponse(p, OffsetRequest{Offset: 4, Limit: 4, Total: 10, Seed: "o"})
	assert.Equal(t, ids(page.Items), ids(off.Items))
	assert.True(t, off.Pagination.HasMore)

	last := f.pages.GetOffsetResponse(p, OffsetRequest{Offset: 8, Limit: 4, Total: 10, Seed: "o"})
	assert.Len(t, last.Items, 2)
	assert.False(t, last.Pagination.HasMore)
}

func TestCursor_Exhaustion(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	seen := map[string]int{}
	cursor := ""
	var resp CursorResponse
	for i := 0; i < 10; i++ {
		resp = f.cursor.GetCursorResponse(p, CursorRequest{Cursor: cursor, Limit: 1, Total: 10, Seed: "c"})
		require.Len(t, resp.Items, 1, "step %d", i)
		seen[ids(resp.Items)[0]]++
		if i < 9 {
			require.True(t, resp.HasMore, "step %d", i)
			require.NotEmpty(t, resp.NextCursor, "step %d", i)
		}
		cursor = resp.NextCursor
	}
	assert.False(t, resp.HasMore)
	assert.Empty(t, resp.NextCursor)
	assert.Len(t, seen, 10)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestCursor_BackwardSymmetry(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	first := f.cursor.GetCursorResponse(p, CursorRequest{Limit: 5, Total: 20, Seed: "b"})
	assert.False(t, first.HasPrev)
	assert.Empty(t, first.PrevCursor)

	back := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: first.NextCursor, Backward: true, Limit: 5, Total: 20, Seed: "b"})
	assert.Equal(t, ids(first.Items), ids(back.Items))
}

func TestCursor_PrevCursorReturnsPreviousWindow(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()
	req := CursorRequest{Limit: 3, Total: 9, Seed: "p"}

	first := f.cursor.GetCursorResponse(p, req)
	req.Cursor = first.NextCursor
	second := f.cursor.GetCursorResponse(p, req)
	require.True(t, second.HasPrev)
	require.NotEmpty(t, second.PrevCursor)

	req.Cursor = second.PrevCursor
	again := f.cursor.GetCursorResponse(p, req)
	assert.Equal(t, ids(first.Items), ids(again.Items))
}

func TestCursor_MalformedRestarts(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()
	first := f.cursor.GetCursorResponse(p, CursorRequest{Limit: 2, Total: 6, Seed: "m"})

	for _, c := range []string{"short", "has spaces in it", "!!!"} {
		resp := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: c, Limit: 2, Total: 6, Seed: "m"})
		assert.Equal(t, ids(first.Items), ids(resp.Items), c)
	}
}

func TestCursor_ExpiredRestarts(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()
	req := CursorRequest{Limit: 2, Total: 6, Seed: "e"}

	first := f.cursor.GetCursorResponse(p, req)
	f.now = f.now.Add(2 * time.Hour)
	req.Cursor = first.NextCursor
	resp := f.cursor.GetCursorResponse(p, req)
	assert.Equal(t, ids(first.Items), ids(resp.Items))
	assert.False(t, resp.HasPrev)
}

func TestCursor_ExpiryDisabled(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Cursor.EnableExpiry = false
		c.Pagination.CacheTTL = 0
	})
	p := newTestProvider()
	req := CursorRequest{Limit: 2, Total: 6, Seed: "e"}

	first := f.cursor.GetCursorResponse(p, req)
	f.now = f.now.Add(48 * time.Hour)
	req.Cursor = first.NextCursor
	resp := f.cursor.GetCursorResponse(p, req)
	assert.Equal(t, 2, resp.Items[0]["position"])
}

func TestCursor_LegacyAndRaw(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	legacy := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: EncodeLegacyCursor(3), Limit: 2, Total: 10, Seed: "l"})
	assert.Equal(t, 3, legacy.Items[0]["position"])

	snap := f.store.GetOrCreate(p, "l", 10, snapshot.Options{})
	raw := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: snap.ItemIDs[4], Limit: 2, Total: 10, Seed: "l"})
	assert.Equal(t, 5, raw.Items[0]["position"])
}

func TestCursor_LostAnchorEstimates(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()
	snap := f.store.GetOrCreate(p, "x", 10, snapshot.Options{})

	issued := f.now.Add(5 * time.Minute)
	f.now = f.now.Add(10 * time.Minute)
	cursor := EncodeCursor(CursorPayload{LastID: "vanished-item", SnapshotID: snap.ID, Timestamp: issued.UnixMilli()})

	resp := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: cursor, Limit: 2, Total: 10, Seed: "x"})
	assert.Equal(t, 5, resp.Items[0]["position"])
}

func TestCursor_SnapshotHandleWins(t *testing.T) {
	f := newFixture(t, nil)
	p := newTestProvider()

	first := f.cursor.GetCursorResponse(p, CursorRequest{Limit: 2, Total: 6, Seed: "orig"})
	// a different seed on the follow-up request still continues the original snapshot
	next := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: first.NextCursor, Limit: 2, Total: 6, Seed: "other"})
	assert.Equal(t, "orig", next.Items[0]["seed"])
	assert.Equal(t, 2, next.Items[0]["position"])
}

func TestCursor_SortInfo(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Cursor.IncludeSortInfo = true })
	p := newTestProvider()

	resp := f.cursor.GetCursorResponse(p, CursorRequest{Limit: 2, Total: 6, Seed: "s", SortField: "name", SortOrder: "asc"})
	payload, enc, ok := DecodeCursor(resp.NextCursor)
	require.True(t, ok)
	assert.Equal(t, EncodingStructured, enc)
	assert.Equal(t, "name", payload.SortField)
	assert.Equal(t, "asc", payload.SortOrder)

	// carried forward when the follow-up omits it
	next := f.cursor.GetCursorResponse(p, CursorRequest{Cursor: resp.NextCursor, Limit: 2, Total: 6, Seed: "s"})
	payload, _, _ = DecodeCursor(next.NextCursor)
	assert.Equal(t, "name", payload.SortField)
}

func TestDecodeCursor(t *testing.T) {
	structured := EncodeCursor(CursorPayload{LastID: "abc", Direction: Backward, Timestamp: 42})

	tests := []struct {
		name     string
		input    string
		ok       bool
		encoding string
		lastID   string
		dir      Direction
	}{
		{"structured", structured, true, EncodingStructured, "abc", Backward},
		{"structured padded", structured + "==", true, EncodingStructured, "abc", Backward},
		{"legacy", EncodeLegacyCursor(12), true, EncodingLegacy, "legacy-12", Forward},
		{"raw uuid", "0f8fad5b-d9cb-469f-a165-70867728950e", true, EncodingRaw, "0f8fad5b-d9cb-469f-a165-70867728950e", Forward},
		{"too short", "abc", false, "", "", ""},
		{"whitespace", "abc def ghi", false, "", "", ""},
		{"empty", "", false, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, enc, ok := DecodeCursor(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.encoding, enc)
			assert.Equal(t, tt.lastID, p.LastID)
			assert.Equal(t, tt.dir, p.Direction)
		})
	}
}

func TestLegacyIndex(t *testing.T) {
	n, ok := legacyIndex("legacy-7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = legacyIndex("legacy-x")
	assert.False(t, ok)
	_, ok = legacyIndex("7")
	assert.False(t, ok)
}
