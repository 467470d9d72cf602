package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/seedmock/pkg/schema"
)

// Models normalizes the document's component schemas. Enum schemas become
// enum models; everything else becomes a record whose fields follow the
// schema's properties, including those pulled in through allOf.
func (d *Document) Models() schema.Models {
	models := make(schema.Models)
	if d.T == nil || d.T.Components == nil {
		return models
	}
	for _, name := range sortedKeys(d.T.Components.Schemas) {
		ref := d.T.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		models[name] = modelFromSchema(name, ref.Value)
	}
	return models
}

func modelFromSchema(name string, s *openapi3.Schema) *schema.ModelSchema {
	m := &schema.ModelSchema{Name: name}
	if len(s.Enum) > 0 {
		for _, v := range s.Enum {
			m.EnumValues = append(m.EnumValues, fmt.Sprint(v))
		}
		return m
	}

	props, required := collectProperties(s)
	for _, prop := range sortedKeys(props) {
		m.Fields = append(m.Fields, fieldFromSchema(prop, props[prop], required[prop]))
	}
	return m
}

// collectProperties flattens direct and allOf properties into one set.
func collectProperties(s *openapi3.Schema) (openapi3.Schemas, map[string]bool) {
	props := make(openapi3.Schemas)
	required := make(map[string]bool)
	var walk func(*openapi3.Schema, int)
	walk = func(s *openapi3.Schema, depth int) {
		if s == nil || depth > 8 {
			return
		}
		for _, sub := range s.AllOf {
			if sub != nil {
				walk(sub.Value, depth+1)
			}
		}
		for k, v := range s.Properties {
			props[k] = v
		}
		for _, r := range s.Required {
			required[r] = true
		}
	}
	walk(s, 0)
	return props, required
}

func fieldFromSchema(name string, ref *openapi3.SchemaRef, required bool) schema.Field {
	f := schema.Field{Name: name, Required: required, Type: schema.TypeAny}
	if ref == nil {
		return f
	}
	if ref.Value == nil {
		f.RefType = refName(ref.Ref)
		return f
	}

	node := ref
	if primaryType(ref.Value) == "array" {
		f.IsArray = true
		node = ref.Value.Items
		if node == nil || node.Value == nil {
			return f
		}
	}

	if node.Ref != "" {
		f.RefType = refName(node.Ref)
	}
	f.Type = fieldType(node.Value)
	return f
}

func fieldType(s *openapi3.Schema) schema.FieldType {
	switch primaryType(s) {
	case "string":
		if s.Format == "date" || s.Format == "date-time" {
			return schema.TypeDate
		}
		return schema.TypeString
	case "integer":
		return schema.TypeInteger
	case "number":
		return schema.TypeNumber
	case "boolean":
		return schema.TypeBoolean
	case "object":
		return schema.TypeObject
	default:
		return schema.TypeAny
	}
}
