package protomock

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/getmockd/seedmock/internal/faker"
	"github.com/getmockd/seedmock/internal/id"
	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
)

// Options tune the generator.
type Options struct {
	// MaxDepth bounds message nesting. The root message is depth 1.
	MaxDepth int

	// ArrayMin and ArrayMax bound how many elements a repeated field of
	// the root message gets. Deeper repeated fields get one.
	ArrayMin int
	ArrayMax int
}

// OptionsFromConfig maps the synth config onto generator options.
func OptionsFromConfig(c config.SynthConfig) Options {
	return Options{
		MaxDepth: c.ProtoMaxDepth,
		ArrayMin: c.ArrayMin,
		ArrayMax: c.ArrayMax,
	}
}

// DefaultOptions returns the options for config.Default().
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Synth)
}

// Generator produces JSON-shaped values from message descriptors. It holds
// only options and is safe for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator creates a generator.
func NewGenerator(opts Options) *Generator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	if opts.ArrayMin <= 0 {
		opts.ArrayMin = 1
	}
	if opts.ArrayMax < opts.ArrayMin {
		opts.ArrayMax = opts.ArrayMin
	}
	return &Generator{opts: opts}
}

type walk struct {
	expanding map[protoreflect.FullName]bool
	depth     int
}

// Generate produces a map keyed by JSON field names for md.
func (g *Generator) Generate(md protoreflect.MessageDescriptor, seed uint32) map[string]any {
	w := &walk{expanding: make(map[protoreflect.FullName]bool)}
	v, ok := g.message(w, md, seed).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return v
}

func (g *Generator) message(w *walk, md protoreflect.MessageDescriptor, seed uint32) any {
	if md == nil || md.IsPlaceholder() {
		return map[string]any{}
	}
	if v, ok := g.wellKnown(w, md, seed); ok {
		return v
	}
	name := md.FullName()
	if w.expanding[name] || w.depth >= g.opts.MaxDepth {
		return map[string]any{}
	}
	w.expanding[name] = true
	w.depth++
	defer func() {
		delete(w.expanding, name)
		w.depth--
	}()

	chosen := g.pickOneofs(md, seed)
	out := make(map[string]any, md.Fields().Len())
	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if oo := fd.ContainingOneof(); oo != nil && !oo.IsSynthetic() && chosen[oo.FullName()] != fd.Number() {
			continue
		}
		out[fd.JSONName()] = g.field(w, fd, rng.Mix(seed, string(fd.Name())))
	}
	return out
}

// pickOneofs selects one member field per real oneof.
func (g *Generator) pickOneofs(md protoreflect.MessageDescriptor, seed uint32) map[protoreflect.FullName]protoreflect.FieldNumber {
	oneofs := md.Oneofs()
	if oneofs.Len() == 0 {
		return nil
	}
	chosen := make(map[protoreflect.FullName]protoreflect.FieldNumber, oneofs.Len())
	for i := 0; i < oneofs.Len(); i++ {
		oo := oneofs.Get(i)
		if oo.IsSynthetic() || oo.Fields().Len() == 0 {
			continue
		}
		r := rng.New(rng.Mix(seed, "oneof:"+string(oo.Name())))
		chosen[oo.FullName()] = oo.Fields().Get(r.IntN(oo.Fields().Len())).Number()
	}
	return chosen
}

func (g *Generator) field(w *walk, fd protoreflect.FieldDescriptor, seed uint32) any {
	switch {
	case fd.IsMap():
		r := rng.New(seed)
		key := faker.Word(r)
		if fd.MapKey().Kind() != protoreflect.StringKind {
			key = fmt.Sprint(g.singular(w, fd.MapKey(), rng.Mix(seed, "key")))
		}
		return map[string]any{key: g.singular(w, fd.MapValue(), rng.Mix(seed, "value"))}
	case fd.IsList():
		n := 1
		// Near the root, lists get several distinct elements.
		if w.depth <= 1 {
			n = rng.New(seed).IntRange(g.opts.ArrayMin, g.opts.ArrayMax)
		}
		items := make([]any, n)
		for i := range items {
			items[i] = g.singular(w, fd, seed+uint32(i)+1)
		}
		return items
	default:
		return g.singular(w, fd, seed)
	}
}

func (g *Generator) singular(w *walk, fd protoreflect.FieldDescriptor, seed uint32) any {
	r := rng.New(seed)
	name := string(fd.Name())

	switch fd.Kind() {
	case protoreflect.BoolKind:
		return r.Bool(0.5)
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return r.IntRange(1, 1000)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return r.IntRange(1, 1000)
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return strconv.Itoa(r.IntRange(1, 1_000_000))
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return faker.Round2(r.FloatRange(0, 1000))
	case protoreflect.StringKind:
		return name + "_" + id.Alphanumeric(r, 8)
	case protoreflect.BytesKind:
		return faker.Base64(r, 12)
	case protoreflect.EnumKind:
		return enumValue(fd.Enum(), r)
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return g.message(w, fd.Message(), seed)
	default:
		return nil
	}
}

func enumValue(ed protoreflect.EnumDescriptor, r *rng.Rand) any {
	if ed == nil || ed.Values().Len() == 0 {
		return nil
	}
	values := ed.Values()
	return string(values.Get(r.IntN(values.Len())).Name())
}

// wellKnown handles google.protobuf types whose JSON form is not an object.
func (g *Generator) wellKnown(w *walk, md protoreflect.MessageDescriptor, seed uint32) (any, bool) {
	r := rng.New(seed)
	switch md.FullName() {
	case "google.protobuf.Timestamp":
		return faker.DateTime(r), true
	case "google.protobuf.Duration":
		return strconv.Itoa(r.IntRange(1, 86400)) + "s", true
	case "google.protobuf.FieldMask":
		return faker.Word(r), true
	case "google.protobuf.Empty", "google.protobuf.Any", "google.protobuf.Struct":
		return map[string]any{}, true
	case "google.protobuf.Value":
		return faker.Word(r), true
	case "google.protobuf.ListValue":
		return []any{}, true
	case "google.protobuf.StringValue", "google.protobuf.BytesValue", "google.protobuf.BoolValue",
		"google.protobuf.Int32Value", "google.protobuf.UInt32Value", "google.protobuf.Int64Value",
		"google.protobuf.UInt64Value", "google.protobuf.FloatValue", "google.protobuf.DoubleValue":
		if fd := md.Fields().ByName("value"); fd != nil {
			return g.singular(w, fd, seed), true
		}
	}
	return nil, false
}
