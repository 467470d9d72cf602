package schema

import (
	"strings"
	"unicode"
)

// PaginationShape classifies a list response.
type PaginationShape struct {
	// ItemsFieldName is the property holding the list, or "" if none.
	ItemsFieldName string   `json:"itemsFieldName,omitempty"`
	IsPageBased    bool     `json:"isPageBased"`
	IsCursorBased  bool     `json:"isCursorBased"`
	MetaFields     []string `json:"metaFields,omitempty"`
}

// IsPaginated reports whether the response has an item list and either
// page or cursor metadata.
func (s PaginationShape) IsPaginated() bool {
	return s.ItemsFieldName != "" && (s.IsPageBased || s.IsCursorBased)
}

// ShapeProperty is one property of a response schema, as seen by Classify.
type ShapeProperty struct {
	Name string

	// IsArray marks list-typed properties.
	IsArray bool

	// ItemIsRecord marks lists whose elements are objects/messages.
	ItemIsRecord bool
}

// ItemsFieldPriority lists preferred item-list property names, most
// preferred first. Domain-specific names follow the generic ones.
var ItemsFieldPriority = []string{
	"items", "data", "results", "records", "entries", "list", "rows", "content", "nodes", "edges",
	"users", "products", "orders", "posts", "comments", "events", "messages", "customers",
	"accounts", "transactions", "files", "tags", "pets", "books",
}

// PageMetaFields are the property names that indicate page/offset
// pagination. Two or more present means page-based.
var PageMetaFields = []string{
	"page", "pageSize", "perPage", "pageNumber", "currentPage",
	"totalPages", "total", "totalCount", "totalItems", "totalResults",
	"limit", "offset", "count", "size",
}

// CursorMetaFields are the property names that indicate cursor
// pagination. One present means cursor-based.
var CursorMetaFields = []string{
	"nextCursor", "prevCursor", "previousCursor", "cursor", "hasMore", "hasNext",
	"hasPrevious", "nextPageToken", "pageToken", "nextToken", "continuationToken",
	"startCursor", "endCursor", "after", "before",
}

// NameNormalizer maps property names into a comparable form.
type NameNormalizer func(string) string

// Classifier decides which property holds the items and what kind of
// pagination the other properties describe.
type Classifier struct {
	// RecordItemsOnly skips lists whose elements are not records.
	RecordItemsOnly bool

	// Normalize is applied to both property names and the known name sets.
	// Nil compares names as-is.
	Normalize NameNormalizer
}

// Classify returns the pagination shape for props. Properties are
// considered in the order given.
func (c Classifier) Classify(props []ShapeProperty) PaginationShape {
	norm := c.Normalize
	if norm == nil {
		norm = func(s string) string { return s }
	}

	var shape PaginationShape
	shape.ItemsFieldName = c.itemsField(props, norm)

	pageSet := normalizedSet(PageMetaFields, norm)
	cursorSet := normalizedSet(CursorMetaFields, norm)

	pageHits, cursorHits := 0, 0
	for _, p := range props {
		if p.Name == shape.ItemsFieldName {
			continue
		}
		key := norm(p.Name)
		switch {
		case pageSet[key]:
			pageHits++
			shape.MetaFields = append(shape.MetaFields, p.Name)
		case cursorSet[key]:
			cursorHits++
			shape.MetaFields = append(shape.MetaFields, p.Name)
		}
	}
	shape.IsPageBased = pageHits >= 2
	shape.IsCursorBased = cursorHits >= 1
	return shape
}

func (c Classifier) itemsField(props []ShapeProperty, norm NameNormalizer) string {
	candidates := make(map[string]string, len(props))
	var order []string
	for _, p := range props {
		if !p.IsArray || (c.RecordItemsOnly && !p.ItemIsRecord) {
			continue
		}
		key := norm(p.Name)
		if _, dup := candidates[key]; !dup {
			candidates[key] = p.Name
			order = append(order, key)
		}
	}
	for _, preferred := range ItemsFieldPriority {
		if name, ok := candidates[norm(preferred)]; ok {
			return name
		}
	}
	if len(order) > 0 {
		return candidates[order[0]]
	}
	return ""
}

func normalizedSet(names []string, norm NameNormalizer) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[norm(n)] = true
	}
	return set
}

// ToSnake converts camelCase or PascalCase to snake_case.
func ToSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts snake_case or kebab-case to lowerCamelCase.
func ToCamel(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	if len(parts) == 0 {
		return s
	}
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(strings.ToLower(p[:1]) + p[1:])
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
