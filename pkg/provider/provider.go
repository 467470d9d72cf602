// Package provider defines ItemProvider, the backend-independent interface
// the pagination layer uses to request generated items, and the ID policy
// shared by every backend.
package provider

import (
	"strconv"

	"github.com/getmockd/seedmock/internal/rng"
)

// ItemProvider generates items for one model of one schema backend.
// Implementations hold no mutable state and are safe for concurrent use.
type ItemProvider interface {
	// GenerateItem returns the item at index for seed.
	GenerateItem(index int, seed string) map[string]any

	// GenerateItemWithID generates the item at index and sets its ID field
	// to id, adding the field when the model does not declare it.
	GenerateItemWithID(id string, index int, seed string) map[string]any

	// IDFieldName returns the wire key that holds the item ID.
	IDFieldName() string

	// GenerateID returns the ID of the item at index for seed.
	GenerateID(index int, seed string) string

	// ModelName returns the model this provider generates.
	ModelName() string
}

// ItemSeed derives the per-item seed from a caller seed and an index.
func ItemSeed(seed string, index int) uint32 {
	return rng.Hash(seed + ":" + strconv.Itoa(index))
}

// Base carries the pieces every backend provider shares. Backends embed
// it and add GenerateItem and GenerateItemWithID.
type Base struct {
	Model   string
	IDField string
	Policy  *IDPolicy
}

// NewBase resolves the ID field among fieldNames and returns a Base.
// A nil policy uses DefaultIDPolicy.
func NewBase(model string, fieldNames []string, policy *IDPolicy) Base {
	if policy == nil {
		policy = DefaultIDPolicy()
	}
	return Base{
		Model:   model,
		IDField: policy.DetectField(fieldNames),
		Policy:  policy,
	}
}

// ModelName implements ItemProvider.
func (b Base) ModelName() string { return b.Model }

// IDFieldName implements ItemProvider.
func (b Base) IDFieldName() string { return b.IDField }

// GenerateID implements ItemProvider.
func (b Base) GenerateID(index int, seed string) string {
	return b.Policy.Generate(b.IDField, index, seed)
}

// WithID overwrites the ID field of item with id. A nil item becomes a
// map holding just the ID.
func (b Base) WithID(item map[string]any, id string) map[string]any {
	if item == nil {
		item = make(map[string]any, 1)
	}
	item[b.IDField] = b.Policy.Value(b.IDField, id)
	return item
}
