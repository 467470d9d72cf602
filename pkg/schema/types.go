package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// FieldType is the normalized type of a model field.
type FieldType string

// Field types understood by every synthesizer.
const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
	TypeObject  FieldType = "object"
	TypeAny     FieldType = "any"
)

// ErrEnumWithFields is returned by ModelSchema.Validate when a schema
// declares both enum values and fields.
var ErrEnumWithFields = errors.New("model declares both enum values and fields")

// Field is one property of a record model.
type Field struct {
	// Name is the in-memory field name.
	Name string `json:"name" yaml:"name"`

	// JSONKey is the wire-level key when it differs from Name.
	JSONKey string `json:"jsonKey,omitempty" yaml:"jsonKey,omitempty"`

	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	IsArray  bool      `json:"isArray,omitempty" yaml:"isArray,omitempty"`

	// RefType names another ModelSchema this field points to.
	RefType string `json:"refType,omitempty" yaml:"refType,omitempty"`
}

// WireKey returns the key used in generated output.
func (f Field) WireKey() string {
	if f.JSONKey != "" {
		return f.JSONKey
	}
	return f.Name
}

// ModelSchema is the normalized shape of one model. It is either an enum
// (EnumValues set) or a record (Fields set), never both.
type ModelSchema struct {
	Name       string   `json:"name" yaml:"name"`
	Fields     []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	EnumValues []string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
}

// IsEnum reports whether the model is an enumeration.
func (m *ModelSchema) IsEnum() bool {
	return len(m.EnumValues) > 0
}

// Validate checks the enum/record exclusivity invariant.
func (m *ModelSchema) Validate() error {
	if len(m.EnumValues) > 0 && len(m.Fields) > 0 {
		return fmt.Errorf("%w: %s", ErrEnumWithFields, m.Name)
	}
	return nil
}

// Field returns the field with the given in-memory name.
func (m *ModelSchema) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// WireKeys returns the wire keys of all fields in declaration order.
func (m *ModelSchema) WireKeys() []string {
	keys := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		keys[i] = f.WireKey()
	}
	return keys
}

// Models maps model names to schemas.
type Models map[string]*ModelSchema

// Lookup returns the named model or nil.
func (m Models) Lookup(name string) *ModelSchema {
	if m == nil {
		return nil
	}
	return m[name]
}

// Names returns all model names in sorted order.
func (m Models) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Param is a path or query parameter of an Endpoint.
type Param struct {
	// Name is the parameter name as it appears on the wire.
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Endpoint is one operation recovered from a client package.
type Endpoint struct {
	Path            string  `json:"path" yaml:"path"`
	Method          string  `json:"method" yaml:"method"`
	OperationID     string  `json:"operationId" yaml:"operationId"`
	PathParams      []Param `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
	QueryParams     []Param `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	RequestBodyType string  `json:"requestBodyType,omitempty" yaml:"requestBodyType,omitempty"`
	ResponseType    string  `json:"responseType,omitempty" yaml:"responseType,omitempty"`

	// ResponseIsArray is set when the response is a list of ResponseType.
	ResponseIsArray bool `json:"responseIsArray,omitempty" yaml:"responseIsArray,omitempty"`
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Placeholders returns the {name} placeholders of the path template in order.
func (e Endpoint) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(e.Path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
