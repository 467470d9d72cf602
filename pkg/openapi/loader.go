package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Errors returned when loading documents.
var (
	ErrUnknownVersion = errors.New("not a valid OpenAPI 3.x or Swagger 2.0 document")
	ErrModelNotFound  = errors.New("schema not found in components")
)

// Document is a loaded, reference-resolved OpenAPI 3 document.
type Document struct {
	T *openapi3.T

	// Version is the declared openapi or swagger version string.
	Version string

	// Source is the file path, or empty for in-memory documents.
	Source string
}

// Title returns the info title, or "" when absent.
func (d *Document) Title() string {
	if d.T == nil || d.T.Info == nil {
		return ""
	}
	return d.T.Info.Title
}

type versionProbe struct {
	OpenAPI string `json:"openapi" yaml:"openapi"`
	Swagger string `json:"swagger" yaml:"swagger"`
}

// LoadFile reads and parses a document from path. External references
// are resolved relative to the file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec %s: %w", path, err)
	}
	probe, err := probeVersion(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if probe.OpenAPI != "" {
		loader := openapi3.NewLoader()
		loader.IsExternalRefsAllowed = true
		doc, err := loader.LoadFromFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load spec from file %s: %w", path, err)
		}
		return &Document{T: doc, Version: probe.OpenAPI, Source: path}, nil
	}

	d, err := loadSwagger(data, probe.Swagger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Source = path
	return d, nil
}

// LoadData parses a YAML or JSON document held in memory.
func LoadData(data []byte) (*Document, error) {
	probe, err := probeVersion(data)
	if err != nil {
		return nil, err
	}
	if probe.OpenAPI != "" {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load spec: %w", err)
		}
		return &Document{T: doc, Version: probe.OpenAPI}, nil
	}
	return loadSwagger(data, probe.Swagger)
}

func probeVersion(data []byte) (versionProbe, error) {
	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return probe, fmt.Errorf("failed to parse specification: %w", err)
	}
	switch {
	case strings.HasPrefix(probe.OpenAPI, "3"):
		return probe, nil
	case probe.Swagger != "":
		return probe, nil
	default:
		return probe, ErrUnknownVersion
	}
}

// loadSwagger converts a Swagger 2.0 document to OpenAPI 3. The openapi2
// types only decode JSON, so YAML input is re-encoded first.
func loadSwagger(data []byte, version string) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse Swagger 2.0 specification: %w", err)
	}
	jsonData, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode Swagger 2.0 specification: %w", err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(jsonData, &doc2); err != nil {
		return nil, fmt.Errorf("failed to parse Swagger 2.0 specification: %w", err)
	}
	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert Swagger 2.0 to OpenAPI 3: %w", err)
	}
	if err := openapi3.NewLoader().ResolveRefsIn(doc3, nil); err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}
	return &Document{T: doc3, Version: version}, nil
}

// stringKeys rewrites YAML maps with non-string keys (such as unquoted
// status codes) into map[string]any so they encode as JSON.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// Schema returns the named component schema.
func (d *Document) Schema(name string) (*openapi3.SchemaRef, error) {
	if d.T == nil || d.T.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	ref, ok := d.T.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return ref, nil
}

// refName returns the last path segment of a $ref, e.g. "Pet" for
// "#/components/schemas/Pet".
func refName(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
