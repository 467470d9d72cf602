package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/seedmock/pkg/provider"
)

// Provider adapts one OpenAPI schema to provider.ItemProvider.
type Provider struct {
	provider.Base
	gen    *Generator
	schema *openapi3.SchemaRef
}

var _ provider.ItemProvider = (*Provider)(nil)

// NewProvider creates a provider for ref named model. The ID field is
// detected among the schema's properties.
func NewProvider(model string, ref *openapi3.SchemaRef, gen *Generator, policy *provider.IDPolicy) *Provider {
	var names []string
	if ref != nil && ref.Value != nil {
		props, _ := collectProperties(ref.Value)
		names = sortedKeys(props)
	}
	return &Provider{
		Base:   provider.NewBase(model, names, policy),
		gen:    gen,
		schema: ref,
	}
}

// Provider returns a provider for the named component schema.
func (d *Document) Provider(model string, gen *Generator, policy *provider.IDPolicy) (*Provider, error) {
	ref, err := d.Schema(model)
	if err != nil {
		return nil, err
	}
	return NewProvider(model, ref, gen, policy), nil
}

// GenerateItem implements provider.ItemProvider. Non-object schemas are
// wrapped as {"value": v}.
func (p *Provider) GenerateItem(index int, seed string) map[string]any {
	v := p.gen.Generate(p.schema, provider.ItemSeed(seed, index))
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": v}
}

// GenerateItemWithID implements provider.ItemProvider.
func (p *Provider) GenerateItemWithID(id string, index int, seed string) map[string]any {
	return p.WithID(p.GenerateItem(index, seed), id)
}
