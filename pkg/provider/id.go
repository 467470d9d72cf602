package provider

import (
	"strconv"
	"strings"

	"github.com/getmockd/seedmock/internal/id"
	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
)

// DefaultIDField is used when no field name matches a pattern or suffix.
const DefaultIDField = "id"

// IDPolicy detects ID fields and generates ID values.
type IDPolicy struct {
	patterns  []string
	suffixes  []string
	format    config.IDFormat
	prefix    string
	overrides map[string]config.IDFormat
}

// NewIDPolicy builds a policy from cfg. Empty pattern and suffix lists
// fall back to the defaults.
func NewIDPolicy(cfg config.IDConfig) *IDPolicy {
	p := &IDPolicy{
		patterns:  cfg.FieldPatterns,
		suffixes:  cfg.FieldSuffixes,
		format:    cfg.Format,
		prefix:    cfg.Prefix,
		overrides: cfg.FieldOverrides,
	}
	if len(p.patterns) == 0 {
		p.patterns = config.DefaultIDFieldPatterns
	}
	if len(p.suffixes) == 0 {
		p.suffixes = config.DefaultIDFieldSuffixes
	}
	if p.format == "" {
		p.format = config.IDFormatUUID
	}
	return p
}

// DefaultIDPolicy returns the policy for config.Default().ID.
func DefaultIDPolicy() *IDPolicy {
	return NewIDPolicy(config.Default().ID)
}

// DetectField returns the ID field among names: the first exact pattern
// match in pattern order, then the first suffix match in suffix order,
// then DefaultIDField.
func (p *IDPolicy) DetectField(names []string) string {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, pattern := range p.patterns {
		if set[pattern] {
			return pattern
		}
	}
	for _, suffix := range p.suffixes {
		for _, n := range names {
			if len(n) > len(suffix) && strings.HasSuffix(n, suffix) {
				return n
			}
		}
	}
	return DefaultIDField
}

// FormatFor returns the ID format used for field.
func (p *IDPolicy) FormatFor(field string) config.IDFormat {
	if f, ok := p.overrides[field]; ok {
		return f
	}
	return p.format
}

// Generate returns the ID for field at index. Every format except
// sequential draws from a stream seeded by (seed, field, index), so the
// same inputs always yield the same ID.
func (p *IDPolicy) Generate(field string, index int, seed string) string {
	r := rng.New(rng.HashParts(seed, field, strconv.Itoa(index)))

	var v string
	switch p.FormatFor(field) {
	case config.IDFormatSequential:
		v = strconv.Itoa(index + 1)
	case config.IDFormatULID:
		v = id.ULIDAt(r, index)
	case config.IDFormatNanoID:
		v = id.NanoID(r, id.NanoIDLength)
	case config.IDFormatNumeric:
		base := 10000 + int(rng.Hash(seed)%90000)
		v = strconv.Itoa(base + index)
	case config.IDFormatHash:
		v = id.Short(r)
	default:
		v = id.UUID(r)
	}
	return p.prefix + v
}

// Value converts a generated ID string into the value stored in an item.
// Unprefixed numeric and sequential IDs become int64 so integer ID
// fields stay integers; everything else stays a string.
func (p *IDPolicy) Value(field, v string) any {
	switch p.FormatFor(field) {
	case config.IDFormatNumeric, config.IDFormatSequential:
		if p.prefix == "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return v
}
