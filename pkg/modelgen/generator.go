package modelgen

import (
	"github.com/getmockd/seedmock/internal/faker"
	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/schema"
)

// Options tune the generator.
type Options struct {
	// OmitRate is the probability an optional field is left out.
	OmitRate float64

	// MaxDepth bounds reference nesting.
	MaxDepth int

	// ArrayMin and ArrayMax bound generated list lengths.
	ArrayMin int
	ArrayMax int
}

// OptionsFromConfig maps the synth config onto generator options.
func OptionsFromConfig(c config.SynthConfig) Options {
	return Options{
		OmitRate: c.ModelOmitRate,
		MaxDepth: c.ModelMaxDepth,
		ArrayMin: c.ArrayMin,
		ArrayMax: c.ArrayMax,
	}
}

// DefaultOptions returns the options for config.Default().
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Synth)
}

// Generator produces items for the models of one package. The models
// map is read but never modified.
type Generator struct {
	models schema.Models
	opts   Options
}

// NewGenerator creates a generator over models.
func NewGenerator(models schema.Models, opts Options) *Generator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	if opts.ArrayMin < 0 {
		opts.ArrayMin = 0
	}
	if opts.ArrayMax < opts.ArrayMin {
		opts.ArrayMax = opts.ArrayMin
	}
	return &Generator{models: models, opts: opts}
}

// Models returns the models the generator draws from.
func (g *Generator) Models() schema.Models { return g.models }

type walk struct {
	visited map[string]bool
	depth   int
}

// Generate returns an item for the named model. Unknown models yield an
// empty object and enum models yield {"value": member}.
func (g *Generator) Generate(model string, seed uint32) map[string]any {
	m := g.models.Lookup(model)
	if m == nil {
		return map[string]any{}
	}
	if m.IsEnum() {
		return map[string]any{"value": rng.Pick(rng.New(seed), m.EnumValues)}
	}
	w := &walk{visited: make(map[string]bool)}
	return g.record(w, m, seed)
}

func (g *Generator) record(w *walk, m *schema.ModelSchema, seed uint32) map[string]any {
	if w.visited[m.Name] || w.depth >= g.opts.MaxDepth {
		return map[string]any{}
	}
	w.visited[m.Name] = true
	w.depth++
	defer func() {
		delete(w.visited, m.Name)
		w.depth--
	}()

	r := rng.New(seed)
	obj := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		if !f.Required && r.Bool(g.opts.OmitRate) {
			continue
		}
		obj[f.WireKey()] = g.field(w, f, rng.Mix(seed, f.Name))
	}
	return obj
}

func (g *Generator) field(w *walk, f schema.Field, seed uint32) any {
	if !f.IsArray {
		return g.single(w, f, seed)
	}
	// A reference that cannot expand yields an empty list, not a list of
	// empty objects.
	if ref := g.models.Lookup(f.RefType); ref != nil && !ref.IsEnum() &&
		(w.visited[ref.Name] || w.depth >= g.opts.MaxDepth) {
		return []any{}
	}

	r := rng.New(seed)
	n := r.IntRange(g.opts.ArrayMin, g.opts.ArrayMax)
	items := make([]any, n)
	for i := range items {
		items[i] = g.single(w, f, seed+uint32(i)+1)
	}
	return items
}

func (g *Generator) single(w *walk, f schema.Field, seed uint32) any {
	r := rng.New(seed)

	if f.RefType != "" {
		ref := g.models.Lookup(f.RefType)
		switch {
		case ref == nil:
			return map[string]any{}
		case ref.IsEnum():
			return rng.Pick(r, ref.EnumValues)
		default:
			return g.record(w, ref, seed)
		}
	}

	switch f.Type {
	case schema.TypeString:
		return stringFor(r, f.Name)
	case schema.TypeInteger:
		if v, ok := intForField(r, f.Name); ok {
			return v
		}
		return r.IntRange(1, 1000)
	case schema.TypeNumber:
		return numberFor(r, f.Name)
	case schema.TypeBoolean:
		return r.Bool(0.5)
	case schema.TypeDate:
		return faker.DateTime(r)
	case schema.TypeObject:
		key := faker.Word(r)
		return map[string]any{key: faker.Word(r)}
	default:
		return valueForName(r, f.Name)
	}
}
