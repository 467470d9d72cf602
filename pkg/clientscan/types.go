package clientscan

import (
	"regexp"
	"strings"

	"github.com/getmockd/seedmock/pkg/schema"
)

// tsType is a TypeScript type annotation reduced to what synthesis needs.
type tsType struct {
	Type    schema.FieldType
	IsArray bool
	Ref     string
}

var (
	identPattern      = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)
	stringLiteralType = regexp.MustCompile(`^(['"][^'"]*['"]\s*\|?\s*)+$`)
)

// parseTSType maps a type annotation such as "Array<Pet> | null".
func parseTSType(t string) tsType {
	t = stripNullable(strings.TrimSpace(t))

	var out tsType
	switch {
	case strings.HasPrefix(t, "Array<") && strings.HasSuffix(t, ">"):
		out.IsArray = true
		t = strings.TrimSpace(t[len("Array<") : len(t)-1])
	case strings.HasPrefix(t, "Set<") && strings.HasSuffix(t, ">"):
		out.IsArray = true
		t = strings.TrimSpace(t[len("Set<") : len(t)-1])
	case strings.HasSuffix(t, "[]"):
		out.IsArray = true
		t = strings.TrimSpace(strings.TrimSuffix(t, "[]"))
	}
	t = stripNullable(t)

	switch {
	case t == "string" || t == "Blob" || t == "File":
		out.Type = schema.TypeString
	case t == "number" || t == "bigint":
		out.Type = schema.TypeNumber
	case t == "boolean":
		out.Type = schema.TypeBoolean
	case t == "Date":
		out.Type = schema.TypeDate
	case t == "any" || t == "unknown" || t == "":
		out.Type = schema.TypeAny
	case t == "object" || strings.HasPrefix(t, "{") ||
		strings.HasPrefix(t, "Record<") || strings.HasPrefix(t, "Map<"):
		out.Type = schema.TypeObject
	case stringLiteralType.MatchString(t):
		out.Type = schema.TypeString
	case identPattern.MatchString(t):
		out.Type = schema.TypeObject
		out.Ref = t
	default:
		out.Type = schema.TypeAny
	}
	return out
}

// stripNullable drops "| null" and "| undefined" alternatives.
func stripNullable(t string) string {
	if !strings.Contains(t, "|") || strings.HasPrefix(t, "{") {
		return t
	}
	parts := strings.Split(t, "|")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "null" || p == "undefined" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " | ")
}
