package clientscan

import (
	"regexp"
	"strings"

	"github.com/getmockd/seedmock/pkg/schema"
)

var (
	rawMethod    = regexp.MustCompile(`(?m)^\s*(?:public\s+|private\s+|protected\s+)?async\s+(\w+)Raw\s*\(\s*(?:requestParameters\s*:\s*(\w+))?`)
	httpMethod   = regexp.MustCompile(`method:\s*['"](\w+)['"]`)
	urlPathDecl  = regexp.MustCompile("(?:let|const|var)\\s+urlPath\\s*=\\s*[`'\"]([^`'\"]*)[`'\"]")
	inlinePath   = regexp.MustCompile("path:\\s*[`'\"]([^`'\"]*)[`'\"]")
	pathFromVar  = regexp.MustCompile(`path:\s*urlPath\b`)
	pathReplace  = regexp.MustCompile("\\.replace\\(\\s*`\\{\\$\\{\"([^\"]+)\"\\}\\}`\\s*,\\s*encodeURIComponent\\(String\\(requestParameters(?:\\.([\\w$]+)|\\[['\"]([\\w$]+)['\"]\\])")
	queryAssign  = regexp.MustCompile(`queryParameters\[['"]([^'"]+)['"]\]\s*=\s*[^;]*?requestParameters(?:\.([\w$]+)|\[['"]([\w$]+)['"]\])`)
	requiredErr  = regexp.MustCompile(`new\s+runtime\.RequiredError\(\s*['"]([\w$]+)['"]`)
	bodyToJSON   = regexp.MustCompile(`body:\s*(?:\w+\.)?(\w+)ToJSON\(`)
	bodyParam    = regexp.MustCompile(`body:\s*requestParameters(?:\.([\w$]+)|\[['"]([\w$]+)['"]\])`)
	responseType = regexp.MustCompile(`Promise<\s*runtime\.ApiResponse<\s*(.+?)\s*>\s*>\s*\{`)
	requestDecl  = regexp.MustCompile(`export\s+interface\s+(\w+)\s*\{`)
)

// scanAPIFile extracts the endpoints of one apis/*.ts file.
func (s *Scanner) scanAPIFile(path, src string) []schema.Endpoint {
	src = stripComments(src)
	requests := requestInterfaces(src)

	starts := rawMethod.FindAllStringSubmatchIndex(src, -1)
	endpoints := make([]schema.Endpoint, 0, len(starts))
	for i, loc := range starts {
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		opID := src[loc[2]:loc[3]]
		var reqType string
		if loc[4] >= 0 {
			reqType = src[loc[4]:loc[5]]
		}
		ep, ok := s.parseMethod(opID, src[loc[0]:end], requests[reqType])
		if !ok {
			s.log.Debug("skipping unrecognized api method", "file", path, "operation", opID)
			continue
		}
		endpoints = append(endpoints, ep)
	}
	if len(starts) == 0 {
		s.log.Debug("no api methods recognized", "file", path)
	}
	return endpoints
}

// parseMethod reads one *Raw method body. params holds the declared
// request parameter types keyed by in-memory name.
func (s *Scanner) parseMethod(opID, chunk string, params map[string]tsType) (schema.Endpoint, bool) {
	m := httpMethod.FindStringSubmatch(chunk)
	if m == nil {
		return schema.Endpoint{}, false
	}
	path, ok := methodPath(chunk)
	if !ok {
		return schema.Endpoint{}, false
	}

	ep := schema.Endpoint{
		Path:        path,
		Method:      strings.ToUpper(m[1]),
		OperationID: opID,
	}

	required := make(map[string]bool)
	for _, r := range requiredErr.FindAllStringSubmatch(chunk, -1) {
		required[r[1]] = true
	}

	// Placeholders map to request parameters through the replace chain.
	replaced := make(map[string]string)
	for _, r := range pathReplace.FindAllStringSubmatch(chunk, -1) {
		replaced[r[1]] = firstNonEmpty(r[2], r[3])
	}
	for _, name := range ep.Placeholders() {
		local := replaced[name]
		if local == "" {
			local = name
		}
		ep.PathParams = append(ep.PathParams, schema.Param{
			Name:     name,
			Type:     paramType(params[local]),
			Required: true,
		})
	}

	seenQuery := make(map[string]bool)
	for _, q := range queryAssign.FindAllStringSubmatch(chunk, -1) {
		wire := q[1]
		if seenQuery[wire] {
			continue
		}
		seenQuery[wire] = true
		local := firstNonEmpty(q[2], q[3])
		ep.QueryParams = append(ep.QueryParams, schema.Param{
			Name:     wire,
			Type:     paramType(params[local]),
			Required: required[local],
		})
	}

	if b := bodyToJSON.FindStringSubmatch(chunk); b != nil {
		ep.RequestBodyType = b[1]
	} else if b := bodyParam.FindStringSubmatch(chunk); b != nil {
		if t, ok := params[firstNonEmpty(b[1], b[2])]; ok {
			ep.RequestBodyType = typeName(t)
		}
	}

	if r := responseType.FindStringSubmatch(chunk); r != nil {
		t := parseTSType(r[1])
		ep.ResponseIsArray = t.IsArray
		switch {
		case t.Ref != "":
			ep.ResponseType = t.Ref
		case strings.TrimSpace(r[1]) != "void":
			ep.ResponseType = string(t.Type)
		}
	}
	return ep, true
}

// methodPath returns the path template, from a urlPath variable or an
// inline path property.
func methodPath(chunk string) (string, bool) {
	if pathFromVar.MatchString(chunk) {
		if m := urlPathDecl.FindStringSubmatch(chunk); m != nil {
			return m[1], true
		}
		return "", false
	}
	if m := inlinePath.FindStringSubmatch(chunk); m != nil {
		return m[1], true
	}
	return "", false
}

// requestInterfaces parses the FooRequest interfaces of an API file.
func requestInterfaces(src string) map[string]map[string]tsType {
	out := make(map[string]map[string]tsType)
	for _, loc := range requestDecl.FindAllStringSubmatchIndex(src, -1) {
		body, ok := blockAt(src, loc[1]-1)
		if !ok {
			continue
		}
		fields := make(map[string]tsType)
		for _, line := range topLevelLines(body) {
			if m := interfaceField.FindStringSubmatch(line); m != nil {
				fields[m[1]] = parseTSType(m[3])
			}
		}
		out[src[loc[2]:loc[3]]] = fields
	}
	return out
}

func paramType(t tsType) string {
	if t.Type == "" {
		return string(schema.TypeString)
	}
	if t.IsArray {
		return "array"
	}
	return string(t.Type)
}

func typeName(t tsType) string {
	if t.Ref != "" {
		return t.Ref
	}
	return string(t.Type)
}
