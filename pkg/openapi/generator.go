package openapi

import (
	"math"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/seedmock/internal/faker"
	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
)

// Options tune the generator.
type Options struct {
	// OmitRate is the probability a non-required property is left out.
	OmitRate float64

	// MaxDepth bounds nesting. Deeper nodes become empty objects or arrays.
	MaxDepth int

	// ArrayMin and ArrayMax bound list lengths when the schema does not.
	ArrayMin int
	ArrayMax int
}

// OptionsFromConfig maps the synth config onto generator options.
func OptionsFromConfig(c config.SynthConfig) Options {
	return Options{
		OmitRate: c.OpenAPIOmitRate,
		MaxDepth: c.OpenAPIMaxDepth,
		ArrayMin: c.ArrayMin,
		ArrayMax: c.ArrayMax,
	}
}

// DefaultOptions returns the options for config.Default().
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Synth)
}

// Generator produces values from OpenAPI schema nodes. A Generator holds
// only options and is safe for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator creates a generator.
func NewGenerator(opts Options) *Generator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	if opts.ArrayMax < opts.ArrayMin {
		opts.ArrayMax = opts.ArrayMin
	}
	return &Generator{opts: opts}
}

// walk carries per-call recursion state.
type walk struct {
	expanding map[*openapi3.Schema]bool
	depth     int
}

// Generate produces a value for ref driven by seed. The priority chain is
// example, enum, default, composition, then type.
func (g *Generator) Generate(ref *openapi3.SchemaRef, seed uint32) any {
	w := &walk{expanding: make(map[*openapi3.Schema]bool)}
	return g.generate(w, ref, seed, "")
}

// GenerateNamed is Generate with a property name for heuristics.
func (g *Generator) GenerateNamed(ref *openapi3.SchemaRef, seed uint32, name string) any {
	w := &walk{expanding: make(map[*openapi3.Schema]bool)}
	return g.generate(w, ref, seed, name)
}

func (g *Generator) generate(w *walk, ref *openapi3.SchemaRef, seed uint32, name string) any {
	if ref == nil || ref.Value == nil {
		return map[string]any{}
	}
	s := ref.Value
	typ := primaryType(s)

	if s.Example != nil {
		return clone(s.Example)
	}
	if len(s.Enum) > 0 {
		return clone(s.Enum[0])
	}
	if s.Default != nil {
		return clone(s.Default)
	}

	// Only containers can recurse, so only they are guarded.
	if isContainer(s, typ) {
		if w.expanding[s] || w.depth >= g.opts.MaxDepth {
			return emptyOf(typ)
		}
		w.expanding[s] = true
		w.depth++
		defer func() {
			delete(w.expanding, s)
			w.depth--
		}()
	}

	r := rng.New(seed)

	if len(s.AllOf) > 0 {
		return g.allOf(w, s, seed, name)
	}
	if branches := firstNonEmpty(s.OneOf, s.AnyOf); len(branches) > 0 {
		branch := branches[r.IntN(len(branches))]
		return g.generate(w, branch, rng.Mix(seed, "branch"), name)
	}

	switch typ {
	case "object":
		return g.object(w, s, seed, r)
	case "array":
		return g.array(w, s, seed, r)
	case "string":
		return g.str(s, r, name)
	case "integer":
		return g.integer(s, r)
	case "number":
		return g.number(s, r)
	case "boolean":
		return r.Bool(0.5)
	default:
		return map[string]any{}
	}
}

func (g *Generator) object(w *walk, s *openapi3.Schema, seed uint32, r *rng.Rand) map[string]any {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	obj := make(map[string]any, len(s.Properties))
	for _, name := range sortedKeys(s.Properties) {
		if !required[name] && r.Bool(g.opts.OmitRate) {
			continue
		}
		obj[name] = g.generate(w, s.Properties[name], rng.Mix(seed, name), name)
	}

	if len(s.Properties) == 0 && s.AdditionalProperties.Schema != nil {
		key := faker.Word(r)
		obj[key] = g.generate(w, s.AdditionalProperties.Schema, rng.Mix(seed, key), key)
	}
	return obj
}

func (g *Generator) allOf(w *walk, s *openapi3.Schema, seed uint32, name string) any {
	merged := make(map[string]any)
	var last any
	for i, sub := range s.AllOf {
		v := g.generate(w, sub, rng.Mix(seed, "allOf"+strconv.Itoa(i)), name)
		if m, ok := v.(map[string]any); ok {
			for k, val := range m {
				merged[k] = val
			}
			continue
		}
		last = v
	}
	if len(s.Properties) > 0 {
		for k, v := range g.object(w, s, seed, rng.New(seed)) {
			merged[k] = v
		}
	}
	if len(merged) == 0 && last != nil {
		return last
	}
	return merged
}

func (g *Generator) array(w *walk, s *openapi3.Schema, seed uint32, r *rng.Rand) []any {
	lo := g.opts.ArrayMin
	if s.MinItems > 0 {
		lo = int(s.MinItems)
	}
	hi := max(g.opts.ArrayMax, lo)
	if s.MaxItems != nil {
		hi = min(hi, int(*s.MaxItems))
		lo = min(lo, hi)
	}
	n := r.IntRange(lo, hi)

	items := make([]any, n)
	for i := range items {
		items[i] = g.generate(w, s.Items, seed+uint32(i)+1, "")
	}
	return items
}

func (g *Generator) str(s *openapi3.Schema, r *rng.Rand, name string) string {
	v, ok := stringByFormat(r, s.Format)
	if !ok && name != "" {
		v, ok = faker.StringForField(r, name)
	}
	if !ok {
		v = faker.Word(r) + "_" + faker.Token(r, 6)
	}

	for uint64(len(v)) < s.MinLength {
		v += faker.Token(r, int(s.MinLength)-len(v))
	}
	if s.MaxLength != nil && uint64(len(v)) > *s.MaxLength {
		v = v[:*s.MaxLength]
	}
	return v
}

func (g *Generator) integer(s *openapi3.Schema, r *rng.Rand) int64 {
	lo, hi := numericBounds(s, 1000)
	ilo, ihi := int64(math.Ceil(lo)), int64(math.Floor(hi))
	if ihi < ilo {
		return ilo
	}
	v := ilo + int64(r.IntN(int(min(ihi-ilo+1, math.MaxInt32))))

	if s.MultipleOf != nil && *s.MultipleOf >= 1 {
		m := int64(*s.MultipleOf)
		snapped := (v + m - 1) / m * m
		if v < 0 {
			snapped = v / m * m
		}
		if snapped > ihi {
			snapped -= m
		}
		if snapped >= ilo {
			v = snapped
		}
	}
	return v
}

func (g *Generator) number(s *openapi3.Schema, r *rng.Rand) float64 {
	lo, hi := numericBounds(s, 1000)
	if hi <= lo {
		return lo
	}
	v := faker.Round2(r.FloatRange(lo, hi))
	if s.MultipleOf != nil && *s.MultipleOf > 0 {
		m := *s.MultipleOf
		v = math.Round(v/m) * m
		v = math.Min(math.Max(v, lo), hi)
	}
	return v
}

// numericBounds returns [lo, hi] from minimum/maximum, spanning width
// when either side is open.
func numericBounds(s *openapi3.Schema, width float64) (float64, float64) {
	switch {
	case s.Min != nil && s.Max != nil:
		lo, hi := *s.Min, *s.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi
	case s.Min != nil:
		return *s.Min, *s.Min + width
	case s.Max != nil:
		return math.Min(0, *s.Max-width), *s.Max
	default:
		return 0, width
	}
}

// primaryType returns the schema's first non-null type, inferring object
// or array from properties or items when no type is declared.
func primaryType(s *openapi3.Schema) string {
	for _, t := range s.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	switch {
	case len(s.Properties) > 0 || s.AdditionalProperties.Schema != nil:
		return "object"
	case s.Items != nil:
		return "array"
	}
	return ""
}

// clone deep-copies literal values taken from the document so callers
// may mutate generated items.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = clone(val)
		}
		return out
	default:
		return v
	}
}

func isContainer(s *openapi3.Schema, typ string) bool {
	return typ == "object" || typ == "array" || typ == "" ||
		len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0
}

func emptyOf(typ string) any {
	if typ == "array" {
		return []any{}
	}
	return map[string]any{}
}

func firstNonEmpty(sets ...openapi3.SchemaRefs) openapi3.SchemaRefs {
	for _, s := range sets {
		if len(s) > 0 {
			return s
		}
	}
	return nil
}

func sortedKeys(m openapi3.Schemas) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
