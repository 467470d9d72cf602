package clientscan

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/getmockd/seedmock/pkg/schema"
)

var (
	interfaceDecl = regexp.MustCompile(`export\s+interface\s+(\w+)(?:<[^>{]*>)?(?:\s+extends\s+([\w\s,<>.]+?))?\s*\{`)
	enumDecl      = regexp.MustCompile(`export\s+(?:const\s+)?enum\s+(\w+)\s*\{`)
	constEnumDecl = regexp.MustCompile(`export\s+const\s+(\w+)\s*=\s*\{`)
	asConstTail   = regexp.MustCompile(`^\s*as\s+const`)
	unionTypeDecl = regexp.MustCompile(`export\s+type\s+(\w+)\s*=\s*((?:['"][^'"]*['"]\s*\|?\s*)+);`)

	interfaceField = regexp.MustCompile(`^(?:readonly\s+)?['"]?([A-Za-z_$][\w$]*)['"]?\s*(\?)?\s*:\s*(.+?)\s*;?$`)
	objectEntry    = regexp.MustCompile(`^['"]?([\w$-]+)['"]?\s*:\s*(.+?),?$`)
	enumMember     = regexp.MustCompile(`^['"]?(\w+)['"]?\s*(?:=|:)\s*(?:'([^']*)'|"([^"]*)"|(-?\d+(?:\.\d+)?))\s*,?$`)
	bareEnumMember = regexp.MustCompile(`^(\w+)\s*,?$`)
	literalValue   = regexp.MustCompile(`['"]([^'"]*)['"]`)

	jsonIndexed    = regexp.MustCompile(`json\[['"]([^'"]+)['"]\]`)
	jsonDotted     = regexp.MustCompile(`json\.([\w$]+)`)
	mapFromJSON    = regexp.MustCompile(`\.map\((\w+)FromJSON\)`)
	valuesOfJSON   = regexp.MustCompile(`mapValues\([^,]+,\s*(\w+)FromJSON\)`)
	callFromJSON   = regexp.MustCompile(`(\w+)FromJSON\(`)
	spreadFromJSON = regexp.MustCompile(`^\.\.\.(\w+)FromJSONTyped\(`)
	valueAccess    = regexp.MustCompile(`value(?:\.([\w$]+)|\[['"]([\w$]+)['"]\])`)
)

// fromJSONHint is what one FromJSON entry reveals about a field.
type fromJSONHint struct {
	wire    string
	ref     string
	isArray bool
	isDate  bool
	isMap   bool
}

// modelFile is the outcome of scanning one models/*.ts file.
type modelFile struct {
	models  []*schema.ModelSchema
	parents map[string][]string
}

func (s *Scanner) scanModelFile(path, src string) modelFile {
	src = stripComments(src)
	out := modelFile{parents: make(map[string][]string)}

	enums := s.scanEnums(path, src)
	ifaces := interfaceDecl.FindAllStringSubmatchIndex(src, -1)

	// Enum-only files produce enum models and nothing else.
	if len(ifaces) == 0 {
		out.models = enums
		if len(enums) == 0 {
			s.log.Debug("no model declaration recognized", "file", path)
		}
		return out
	}

	for _, loc := range ifaces {
		name := src[loc[2]:loc[3]]
		body, ok := blockAt(src, loc[1]-1)
		if !ok {
			s.log.Debug("skipping interface with unbalanced braces", "file", path, "model", name)
			continue
		}
		if loc[4] >= 0 {
			for _, parent := range strings.Split(src[loc[4]:loc[5]], ",") {
				if parent = strings.TrimSpace(parent); parent != "" {
					out.parents[name] = append(out.parents[name], parent)
				}
			}
		}

		from, order, spreads := s.fromJSONHints(src, name)
		for _, parent := range spreads {
			if !contains(out.parents[name], parent) {
				out.parents[name] = append(out.parents[name], parent)
			}
		}
		model := &schema.ModelSchema{
			Name:   name,
			Fields: s.recordFields(path, name, body, from, order, toJSONKeys(src, name)),
		}
		out.models = append(out.models, model)
	}
	// Inline enums such as PetStatusEnum live beside their record.
	out.models = append(out.models, enums...)
	return out
}

func (s *Scanner) recordFields(path, model, body string, from map[string]fromJSONHint, order []string, toWire map[string]string) []schema.Field {
	var fields []schema.Field
	for _, line := range topLevelLines(body) {
		if strings.HasPrefix(line, "[") {
			continue
		}
		m := interfaceField.FindStringSubmatch(line)
		if m == nil {
			s.log.Debug("skipping unrecognized field", "file", path, "model", model, "line", line)
			continue
		}
		t := parseTSType(m[3])
		f := schema.Field{
			Name:     m[1],
			Type:     t.Type,
			Required: m[2] == "",
			IsArray:  t.IsArray,
			RefType:  t.Ref,
		}
		hint, hasHint := from[f.Name]
		switch wire, ok := toWire[f.Name]; {
		case ok:
			f.JSONKey = wire
		case hasHint && hint.wire != "":
			f.JSONKey = hint.wire
		}
		if f.JSONKey == f.Name {
			f.JSONKey = ""
		}
		if hasHint {
			applyHint(&f, hint)
		}
		fields = append(fields, f)
	}

	// Without an interface body, fall back to the FromJSON listing.
	if len(fields) == 0 && len(from) > 0 {
		for _, name := range order {
			hint := from[name]
			f := schema.Field{Name: name, Type: schema.TypeAny}
			if hint.wire != "" && hint.wire != name {
				f.JSONKey = hint.wire
			}
			applyHint(&f, hint)
			fields = append(fields, f)
		}
	}
	return fields
}

func applyHint(f *schema.Field, h fromJSONHint) {
	switch {
	case h.isDate:
		f.Type = schema.TypeDate
		f.RefType = ""
	case h.isMap:
		f.Type = schema.TypeObject
		f.RefType = ""
		f.IsArray = false
	case h.ref != "":
		if f.RefType == "" {
			f.RefType = h.ref
		}
		if f.Type == schema.TypeAny {
			f.Type = schema.TypeObject
		}
	}
	if h.isArray {
		f.IsArray = true
	}
}

// fromJSONHints reads the object returned by <model>FromJSONTyped, or
// <model>FromJSON in clients that have no Typed variant.
func (s *Scanner) fromJSONHints(src, model string) (hints map[string]fromJSONHint, order, spreads []string) {
	body, ok := namedFunction(src, model+"FromJSONTyped")
	if !ok {
		body, ok = namedFunction(src, model+"FromJSON")
	}
	if !ok {
		return nil, nil, nil
	}
	obj, ok := returnedObject(body)
	if !ok {
		return nil, nil, nil
	}

	hints = make(map[string]fromJSONHint)
	for _, line := range topLevelLines(obj) {
		if m := spreadFromJSON.FindStringSubmatch(line); m != nil {
			spreads = append(spreads, m[1])
			continue
		}
		m := objectEntry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		expr := m[2]
		var h fromJSONHint
		if w := jsonIndexed.FindStringSubmatch(expr); w != nil {
			h.wire = w[1]
		} else if w := jsonDotted.FindStringSubmatch(expr); w != nil {
			h.wire = w[1]
		}
		switch {
		case strings.Contains(expr, "new Date("):
			h.isDate = true
			h.isArray = strings.Contains(expr, ".map(")
		case valuesOfJSON.MatchString(expr):
			h.isMap = true
		case mapFromJSON.MatchString(expr):
			h.ref = mapFromJSON.FindStringSubmatch(expr)[1]
			h.isArray = true
		case callFromJSON.MatchString(expr):
			h.ref = callFromJSON.FindStringSubmatch(expr)[1]
		}
		if strings.Contains(expr, "as Array<any>") {
			h.isArray = true
		}
		if _, dup := hints[m[1]]; !dup {
			order = append(order, m[1])
		}
		hints[m[1]] = h
	}
	return hints, order, spreads
}

// toJSONKeys maps in-memory field names to wire keys using <model>ToJSON
// or <model>ToJSONTyped, whichever returns the object literal.
func toJSONKeys(src, model string) map[string]string {
	for _, fn := range []string{model + "ToJSONTyped", model + "ToJSON"} {
		body, ok := namedFunction(src, fn)
		if !ok {
			continue
		}
		obj, ok := returnedObject(body)
		if !ok {
			continue
		}
		keys := make(map[string]string)
		for _, line := range topLevelLines(obj) {
			m := objectEntry.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			v := valueAccess.FindStringSubmatch(m[2])
			if v == nil {
				continue
			}
			field := v[1]
			if field == "" {
				field = v[2]
			}
			keys[field] = m[1]
		}
		return keys
	}
	return nil
}

var functionDecl = regexp.MustCompile(`function\s+(\w+)\s*\(`)

// namedFunction returns the body of "function name(".
func namedFunction(src, name string) (string, bool) {
	for _, loc := range functionDecl.FindAllStringSubmatchIndex(src, -1) {
		if src[loc[2]:loc[3]] == name {
			return functionBody(src, loc[2])
		}
	}
	return "", false
}

// scanEnums collects export enum, "as const" objects and string-literal
// union aliases.
func (s *Scanner) scanEnums(path, src string) []*schema.ModelSchema {
	var out []*schema.ModelSchema

	for _, loc := range enumDecl.FindAllStringSubmatchIndex(src, -1) {
		name := src[loc[2]:loc[3]]
		body, ok := blockAt(src, loc[1]-1)
		if !ok {
			continue
		}
		if values := s.enumValues(path, name, body, true); len(values) > 0 {
			out = append(out, &schema.ModelSchema{Name: name, EnumValues: values})
		}
	}

	for _, loc := range constEnumDecl.FindAllStringSubmatchIndex(src, -1) {
		name := src[loc[2]:loc[3]]
		open := loc[1] - 1
		end := matchBrace(src, open)
		if end < 0 || !asConstTail.MatchString(src[end+1:]) {
			continue
		}
		if values := s.enumValues(path, name, src[open+1:end], false); len(values) > 0 {
			out = append(out, &schema.ModelSchema{Name: name, EnumValues: values})
		}
	}

	for _, m := range unionTypeDecl.FindAllStringSubmatch(src, -1) {
		var values []string
		for _, lit := range literalValue.FindAllStringSubmatch(m[2], -1) {
			values = append(values, lit[1])
		}
		if len(values) > 0 {
			out = append(out, &schema.ModelSchema{Name: m[1], EnumValues: values})
		}
	}
	return out
}

func (s *Scanner) enumValues(path, name, body string, allowBare bool) []string {
	var values []string
	for _, line := range splitMembers(body) {
		if m := enumMember.FindStringSubmatch(line); m != nil {
			values = append(values, firstNonEmpty(m[2], m[3], m[4]))
			continue
		}
		if allowBare {
			if m := bareEnumMember.FindStringSubmatch(line); m != nil {
				values = append(values, m[1])
				continue
			}
		}
		s.log.Debug("skipping unrecognized enum member", slog.String("file", path), slog.String("enum", name), slog.String("member", line))
	}
	return values
}

// splitMembers splits an enum body on commas and newlines.
func splitMembers(body string) []string {
	var out []string
	for _, line := range topLevelLines(body) {
		for _, part := range strings.Split(line, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
