package openapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/seedmock/pkg/schema"
)

// Operation is one path+method of a document with its chosen response.
type Operation struct {
	Method      string
	Path        string
	OperationID string

	// Status is the response status the schema was taken from.
	Status int

	// Response is the JSON response schema, or nil when none is declared.
	Response *openapi3.SchemaRef

	// Shape classifies Response for pagination.
	Shape schema.PaginationShape

	op     *openapi3.Operation
	params openapi3.Parameters
}

var methodOrder = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodHead, http.MethodOptions, http.MethodTrace,
}

// Operations lists every operation, sorted by path then method.
func (d *Document) Operations() []Operation {
	if d.T == nil || d.T.Paths == nil {
		return nil
	}
	pathMap := d.T.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var ops []Operation
	for _, path := range paths {
		item := pathMap[path]
		if item == nil {
			continue
		}
		byMethod := item.Operations()
		for _, method := range methodOrder {
			op, ok := byMethod[method]
			if !ok || op == nil {
				continue
			}
			status, resp := findBestResponse(op.Responses)
			o := Operation{
				Method:      method,
				Path:        path,
				OperationID: op.OperationID,
				Status:      status,
				Response:    jsonSchema(resp),
				op:          op,
				params:      append(append(openapi3.Parameters{}, item.Parameters...), op.Parameters...),
			}
			if o.OperationID == "" {
				o.OperationID = strings.ToLower(method) + pathToName(path)
			}
			o.Shape = ClassifyResponse(o.Response)
			ops = append(ops, o)
		}
	}
	return ops
}

// Operation returns the operation with the given id.
func (d *Document) Operation(operationID string) (Operation, bool) {
	for _, op := range d.Operations() {
		if op.OperationID == operationID {
			return op, true
		}
	}
	return Operation{}, false
}

// IsList reports whether the response is an array or a paginated wrapper.
func (o Operation) IsList() bool {
	return o.ItemSchema() != nil
}

// ItemSchema returns the element schema of a list response: the items of
// a top-level array, or the items of the item list property of a
// paginated wrapper.
func (o Operation) ItemSchema() *openapi3.SchemaRef {
	if o.Response == nil || o.Response.Value == nil {
		return nil
	}
	s := o.Response.Value
	if primaryType(s) == "array" {
		return s.Items
	}
	if !o.Shape.IsPaginated() {
		return nil
	}
	props, _ := collectProperties(s)
	prop := props[o.Shape.ItemsFieldName]
	if prop == nil || prop.Value == nil {
		return nil
	}
	return prop.Value.Items
}

// ItemModelName names the model a list operation yields: the referenced
// component when there is one, otherwise one derived from the operation.
func (o Operation) ItemModelName() string {
	if item := o.ItemSchema(); item != nil && item.Ref != "" {
		return refName(item.Ref)
	}
	if o.Response != nil && o.Response.Ref != "" {
		return refName(o.Response.Ref)
	}
	return o.OperationID
}

// Endpoint converts the operation into the shared endpoint shape.
func (o Operation) Endpoint() schema.Endpoint {
	e := schema.Endpoint{
		Path:        o.Path,
		Method:      o.Method,
		OperationID: o.OperationID,
	}
	for _, pr := range o.params {
		if pr == nil || pr.Value == nil {
			continue
		}
		p := schema.Param{Name: pr.Value.Name, Required: pr.Value.Required}
		if pr.Value.Schema != nil && pr.Value.Schema.Value != nil {
			p.Type = primaryType(pr.Value.Schema.Value)
		}
		switch pr.Value.In {
		case openapi3.ParameterInPath:
			e.PathParams = append(e.PathParams, p)
		case openapi3.ParameterInQuery:
			e.QueryParams = append(e.QueryParams, p)
		}
	}
	if o.op != nil && o.op.RequestBody != nil && o.op.RequestBody.Value != nil {
		if mt := pickJSON(o.op.RequestBody.Value.Content); mt != nil && mt.Schema != nil {
			e.RequestBodyType = refName(mt.Schema.Ref)
		}
	}
	if o.Response != nil {
		if item := o.ItemSchema(); item != nil && primaryType(o.Response.Value) == "array" {
			e.ResponseIsArray = true
			e.ResponseType = refName(item.Ref)
		} else {
			e.ResponseType = refName(o.Response.Ref)
		}
	}
	return e
}

// Endpoints returns Endpoint for every operation.
func (d *Document) Endpoints() []schema.Endpoint {
	ops := d.Operations()
	out := make([]schema.Endpoint, len(ops))
	for i, op := range ops {
		out[i] = op.Endpoint()
	}
	return out
}

// findBestResponse prefers 200, 201, 202, 204, then the lowest other 2xx,
// then the lowest declared status.
func findBestResponse(responses *openapi3.Responses) (int, *openapi3.Response) {
	if responses == nil {
		return http.StatusOK, nil
	}
	m := responses.Map()
	if len(m) == 0 {
		return http.StatusOK, nil
	}
	for _, status := range []string{"200", "201", "202", "204"} {
		if ref, ok := m[status]; ok && ref != nil && ref.Value != nil {
			return parseStatusCode(status), ref.Value
		}
	}

	codes := make([]string, 0, len(m))
	for status := range m {
		codes = append(codes, status)
	}
	sort.Strings(codes)
	for _, status := range codes {
		if strings.HasPrefix(status, "2") && m[status] != nil && m[status].Value != nil {
			return parseStatusCode(status), m[status].Value
		}
	}
	for _, status := range codes {
		if m[status] != nil && m[status].Value != nil {
			return parseStatusCode(status), m[status].Value
		}
	}
	return http.StatusOK, nil
}

func parseStatusCode(s string) int {
	code, err := strconv.Atoi(strings.ReplaceAll(strings.ToUpper(s), "X", "0"))
	if err != nil || code < 100 {
		return http.StatusOK
	}
	return code
}

func jsonSchema(resp *openapi3.Response) *openapi3.SchemaRef {
	if resp == nil {
		return nil
	}
	if mt := pickJSON(resp.Content); mt != nil {
		return mt.Schema
	}
	return nil
}

// pickJSON returns application/json, then any *json media type, then
// whatever media type sorts first.
func pickJSON(content openapi3.Content) *openapi3.MediaType {
	if len(content) == 0 {
		return nil
	}
	if mt := content.Get("application/json"); mt != nil {
		return mt
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, "json") {
			return content[k]
		}
	}
	return content[keys[0]]
}

// pathToName turns /pets/{petId}/toys into PetsPetIdToys.
func pathToName(path string) string {
	var b strings.Builder
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]) + seg[1:])
	}
	return b.String()
}
