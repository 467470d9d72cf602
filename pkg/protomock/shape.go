package protomock

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/getmockd/seedmock/pkg/schema"
)

var messageClassifier = schema.Classifier{
	RecordItemsOnly: true,
	Normalize:       schema.ToSnake,
}

// ClassifyMessage returns the pagination shape of a response message. The
// first repeated field whose element is a message holds the items; the
// remaining field names are matched against the meta-field sets in
// snake_case. ItemsFieldName is the proto field name.
func ClassifyMessage(md protoreflect.MessageDescriptor) schema.PaginationShape {
	if md == nil {
		return schema.PaginationShape{}
	}
	fields := md.Fields()
	props := make([]schema.ShapeProperty, 0, fields.Len())
	seenItems := false
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		isItems := !seenItems && fd.IsList() && fd.Kind() == protoreflect.MessageKind
		if isItems {
			seenItems = true
		}
		props = append(props, schema.ShapeProperty{
			Name:         string(fd.Name()),
			IsArray:      isItems,
			ItemIsRecord: isItems,
		})
	}
	return messageClassifier.Classify(props)
}

// ItemsField returns the descriptor of the items field of a list
// response, or nil when md has none.
func ItemsField(md protoreflect.MessageDescriptor) protoreflect.FieldDescriptor {
	shape := ClassifyMessage(md)
	if shape.ItemsFieldName == "" {
		return nil
	}
	return md.Fields().ByName(protoreflect.Name(shape.ItemsFieldName))
}
