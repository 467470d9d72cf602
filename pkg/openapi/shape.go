package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/seedmock/pkg/schema"
)

// ClassifyResponse classifies a response schema's pagination shape.
// Properties are offered to the classifier in name order so the fallback
// array choice is stable.
func ClassifyResponse(ref *openapi3.SchemaRef) schema.PaginationShape {
	if ref == nil || ref.Value == nil || primaryType(ref.Value) == "array" {
		return schema.PaginationShape{}
	}
	props, _ := collectProperties(ref.Value)
	shapeProps := make([]schema.ShapeProperty, 0, len(props))
	for _, name := range sortedKeys(props) {
		p := schema.ShapeProperty{Name: name}
		if v := props[name]; v != nil && v.Value != nil && primaryType(v.Value) == "array" {
			p.IsArray = true
			if items := v.Value.Items; items != nil && items.Value != nil {
				p.ItemIsRecord = primaryType(items.Value) == "object"
			}
		}
		shapeProps = append(shapeProps, p)
	}
	return schema.Classifier{}.Classify(shapeProps)
}
