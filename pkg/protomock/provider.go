package protomock

import (
	"math"
	"strconv"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/schema"
)

// Provider adapts one message type to provider.ItemProvider.
type Provider struct {
	provider.Base
	gen *Generator
	msg protoreflect.MessageDescriptor
}

var _ provider.ItemProvider = (*Provider)(nil)

// NewProvider creates a provider for md. The ID field is detected among
// the fields' JSON names.
func NewProvider(md protoreflect.MessageDescriptor, gen *Generator, policy *provider.IDPolicy) *Provider {
	fields := md.Fields()
	names := make([]string, 0, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		names = append(names, fields.Get(i).JSONName())
	}
	return &Provider{
		Base: provider.NewBase(string(md.FullName()), names, policy),
		gen:  gen,
		msg:  md,
	}
}

// Provider returns a provider for the named message.
func (s *Schema) Provider(message string, gen *Generator, policy *provider.IDPolicy) (*Provider, error) {
	md, err := s.Message(message)
	if err != nil {
		return nil, err
	}
	return NewProvider(md, gen, policy), nil
}

// Descriptor returns the message this provider generates.
func (p *Provider) Descriptor() protoreflect.MessageDescriptor {
	return p.msg
}

// GenerateItem implements provider.ItemProvider.
func (p *Provider) GenerateItem(index int, seed string) map[string]any {
	return p.gen.Generate(p.msg, provider.ItemSeed(seed, index))
}

// GenerateItemWithID implements provider.ItemProvider. The ID is coerced
// to the declared kind of the ID field so the item still converts to a
// message. IDs that are not numbers map to a stable integer derived from
// the ID string.
func (p *Provider) GenerateItemWithID(id string, index int, seed string) map[string]any {
	item := p.GenerateItem(index, seed)
	fd := p.msg.Fields().ByJSONName(p.IDField)
	if fd == nil {
		return p.WithID(item, id)
	}
	item[p.IDField] = CoerceID(fd.Kind(), id)
	return item
}

// CoerceID converts a generated ID into a value of kind. 32-bit kinds
// yield an int64 within the kind's range; 64-bit kinds yield the decimal
// string protojson expects. Other kinds keep the string.
func CoerceID(kind protoreflect.Kind, id string) any {
	switch kind {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		if n, err := strconv.ParseInt(id, 10, 32); err == nil {
			return n
		}
		return int64(rng.Hash(id) & math.MaxInt32)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		if n, err := strconv.ParseUint(id, 10, 32); err == nil {
			return int64(n)
		}
		return int64(rng.Hash(id))
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		if _, err := strconv.ParseInt(id, 10, 64); err == nil {
			return id
		}
		hi := uint64(rng.Hash(id)) & math.MaxInt32
		lo := uint64(rng.Hash(id + "#"))
		return strconv.FormatUint(hi<<32|lo, 10)
	default:
		return id
	}
}

// Models normalizes every message and enum of the schema.
func (s *Schema) Models() schema.Models {
	models := make(schema.Models, len(s.messages)+len(s.enums))
	for name, ed := range s.enums {
		values := ed.Values()
		m := &schema.ModelSchema{Name: name, EnumValues: make([]string, values.Len())}
		for i := 0; i < values.Len(); i++ {
			m.EnumValues[i] = string(values.Get(i).Name())
		}
		models[name] = m
	}
	for name, md := range s.messages {
		fields := md.Fields()
		m := &schema.ModelSchema{Name: name, Fields: make([]schema.Field, 0, fields.Len())}
		for i := 0; i < fields.Len(); i++ {
			m.Fields = append(m.Fields, modelField(fields.Get(i)))
		}
		models[name] = m
	}
	return models
}

func modelField(fd protoreflect.FieldDescriptor) schema.Field {
	f := schema.Field{
		Name:     string(fd.Name()),
		IsArray:  fd.IsList(),
		Required: fd.Cardinality() == protoreflect.Required,
	}
	if fd.JSONName() != f.Name {
		f.JSONKey = fd.JSONName()
	}
	switch fd.Kind() {
	case protoreflect.BoolKind:
		f.Type = schema.TypeBoolean
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		f.Type = schema.TypeInteger
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		f.Type = schema.TypeNumber
	case protoreflect.StringKind, protoreflect.BytesKind:
		f.Type = schema.TypeString
	case protoreflect.EnumKind:
		f.Type = schema.TypeString
		f.RefType = string(fd.Enum().FullName())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		if fd.IsMap() {
			f.Type = schema.TypeObject
			f.IsArray = false
			break
		}
		if fd.Message().FullName() == "google.protobuf.Timestamp" {
			f.Type = schema.TypeDate
			break
		}
		f.Type = schema.TypeObject
		f.RefType = string(fd.Message().FullName())
	default:
		f.Type = schema.TypeAny
	}
	return f
}

// Endpoints lists every method as an endpoint on its gRPC path. Server
// streaming methods are reported as returning a list.
func (s *Schema) Endpoints() []schema.Endpoint {
	var eps []schema.Endpoint
	for _, svcName := range s.ListServices() {
		svc := s.services[svcName]
		for _, name := range svc.ListMethods() {
			m := svc.Methods[name]
			eps = append(eps, schema.Endpoint{
				Path:            "/" + svc.Name + "/" + m.Name,
				Method:          "POST",
				OperationID:     m.FullName,
				RequestBodyType: m.InputType,
				ResponseType:    m.OutputType,
				ResponseIsArray: m.ServerStreaming,
			})
		}
	}
	return eps
}
