package modelgen

import (
	"errors"
	"fmt"

	"github.com/getmockd/seedmock/pkg/provider"
)

// ErrUnknownModel is returned when a provider is requested for a model
// the generator does not know.
var ErrUnknownModel = errors.New("unknown model")

// Provider adapts one model to provider.ItemProvider.
type Provider struct {
	provider.Base
	gen *Generator
}

var _ provider.ItemProvider = (*Provider)(nil)

// Provider returns a provider for the named model. The ID field is
// detected among the model's wire keys.
func (g *Generator) Provider(model string, policy *provider.IDPolicy) (*Provider, error) {
	m := g.models.Lookup(model)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	return &Provider{
		Base: provider.NewBase(model, m.WireKeys(), policy),
		gen:  g,
	}, nil
}

// GenerateItem implements provider.ItemProvider.
func (p *Provider) GenerateItem(index int, seed string) map[string]any {
	return p.gen.Generate(p.Model, provider.ItemSeed(seed, index))
}

// GenerateItemWithID implements provider.ItemProvider.
func (p *Provider) GenerateItemWithID(id string, index int, seed string) map[string]any {
	return p.WithID(p.GenerateItem(index, seed), id)
}
