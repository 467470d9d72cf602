package clientscan

import (
	"regexp"
	"strings"
)

// stripComments removes // and /* */ comments outside string literals.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := skipString(src, i)
			if end < 0 {
				b.WriteString(src[i:])
				return b.String()
			}
			b.WriteString(src[i : end+1])
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				return b.String()
			}
			i += nl - 1
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// matchBrace returns the index of the brace closing the one at open, or
// -1. Quoted and template strings are skipped.
func matchBrace(src string, open int) int {
	if open < 0 || open >= len(src) || src[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '\'', '"', '`':
			end := skipString(src, i)
			if end < 0 {
				return -1
			}
			i = end
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipString returns the index of the quote closing the string that
// starts at i.
func skipString(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return -1
}

// blockAt returns the text between the brace at open and its match.
func blockAt(src string, open int) (string, bool) {
	end := matchBrace(src, open)
	if end < 0 {
		return "", false
	}
	return src[open+1 : end], true
}

// functionBody returns the body of the function whose name starts at
// nameIdx. The body is the first brace block after the parameter list.
func functionBody(src string, nameIdx int) (string, bool) {
	paren := strings.IndexByte(src[nameIdx:], '(')
	if paren < 0 {
		return "", false
	}
	depth := 0
	i := nameIdx + paren
	for ; i < len(src); i++ {
		if src[i] == '(' {
			depth++
		} else if src[i] == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	if i >= len(src) {
		return "", false
	}
	open := strings.IndexByte(src[i:], '{')
	if open < 0 {
		return "", false
	}
	return blockAt(src, i+open)
}

// returnedObject returns the object literal of the first "return {" in body.
func returnedObject(body string) (string, bool) {
	loc := returnObject.FindStringIndex(body)
	if loc == nil {
		return "", false
	}
	return blockAt(body, loc[1]-1)
}

var returnObject = regexp.MustCompile(`return\s*\{`)

// topLevelLines splits an object or interface body into lines that are
// not inside a nested brace.
func topLevelLines(body string) []string {
	var (
		lines []string
		cur   strings.Builder
		depth int
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '\'', '"', '`':
			end := skipString(body, i)
			if end < 0 {
				end = len(body) - 1
			}
			cur.WriteString(body[i : end+1])
			i = end
			continue
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '\n':
			if depth == 0 {
				if s := strings.TrimSpace(cur.String()); s != "" {
					lines = append(lines, s)
				}
				cur.Reset()
				continue
			}
		}
		cur.WriteByte(c)
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		lines = append(lines, s)
	}
	return lines
}
