package paginate

// Item is one generated item.
type Item = map[string]any

// PageRequest asks for one page of a model.
type PageRequest struct {
	// Page is 1-based. Values below 1 mean the first page.
	Page int `json:"page"`

	// Limit of zero or less uses the configured default.
	Limit int `json:"limit"`

	// Total of zero or less uses the configured default.
	Total int `json:"total"`

	Seed string `json:"seed"`

	DisableCache bool `json:"-"`
}

// PageInfo is the pagination block of a page response.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageResponse is a page-style list.
type PageResponse struct {
	Items      []Item   `json:"items"`
	Pagination PageInfo `json:"pagination"`
	SnapshotID string   `json:"snapshotId,omitempty"`
}

// OffsetRequest asks for limit items starting at offset.
type OffsetRequest struct {
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
	Total        int    `json:"total"`
	Seed         string `json:"seed"`
	DisableCache bool   `json:"-"`
}

// OffsetInfo is the pagination block of an offset response.
type OffsetInfo struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// OffsetResponse is an offset-style list.
type OffsetResponse struct {
	Items      []Item     `json:"items"`
	Pagination OffsetInfo `json:"pagination"`
	SnapshotID string     `json:"snapshotId,omitempty"`
}

// CursorRequest asks for the window after (or before) a cursor.
type CursorRequest struct {
	// Cursor is empty for the first window.
	Cursor string `json:"cursor,omitempty"`

	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Seed  string `json:"seed"`

	// Backward walks toward the start regardless of the cursor's own
	// direction.
	Backward bool `json:"backward,omitempty"`

	SortField string `json:"sortField,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`

	DisableCache bool `json:"-"`
}

// CursorResponse is a cursor-style list. NextCursor and PrevCursor are set
// only when a further window exists in that direction.
type CursorResponse struct {
	Items      []Item `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	PrevCursor string `json:"prevCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	HasPrev    bool   `json:"hasPrev"`
	SnapshotID string `json:"snapshotId,omitempty"`
}
