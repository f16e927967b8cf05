package catalog

import "strings"

// Object is one top-level element of the catalog array, delimited by its
// braces regardless of which fields it carries.
type Object struct {
	Start int
	End   int
	Line  int
	// Keys lists the object's own field names in order, nested fields excluded.
	Keys []string
}

// Body returns the object's text within doc, braces included.
func (o Object) Body(doc string) string {
	return doc[o.Start:o.End]
}

// Has reports whether the object declares field key at its top level.
func (o Object) Has(key string) bool {
	for _, k := range o.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SegmentObjects returns every object literal that sits directly inside a
// top-level array of doc. String literals and comments are skipped, so braces
// inside them do not count.
func SegmentObjects(doc string) []Object {
	var (
		objects []Object
		stack   []byte
		cur     = -1
		line    = 1
	)

	for i := 0; i < len(doc); i++ {
		c := doc[i]
		switch {
		case c == '\n':
			line++

		case c == '"' || c == '\'' || c == '`':
			end := skipString(doc, i)
			line += strings.Count(doc[i:end], "\n")
			i = end

		case c == '/' && i+1 < len(doc) && doc[i+1] == '/':
			end := strings.IndexByte(doc[i:], '\n')
			if end < 0 {
				return objects
			}
			i += end - 1

		case c == '/' && i+1 < len(doc) && doc[i+1] == '*':
			end := strings.Index(doc[i+2:], "*/")
			if end < 0 {
				return objects
			}
			line += strings.Count(doc[i:i+2+end], "\n")
			i += end + 3

		case c == '[' || c == '{':
			if c == '{' && len(stack) == 1 && stack[0] == '[' {
				objects = append(objects, Object{Start: i, Line: line})
				cur = len(objects) - 1
			}
			stack = append(stack, c)

		case c == ']' || c == '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if c == '}' && cur >= 0 && len(stack) == 1 {
				objects[cur].End = i + 1
				cur = -1
			}

		case cur >= 0 && len(stack) == 2 && isIdentStart(c):
			j := i + 1
			for j < len(doc) && isIdentPart(doc[j]) {
				j++
			}
			k := j
			for k < len(doc) && (doc[k] == ' ' || doc[k] == '\t') {
				k++
			}
			if k < len(doc) && doc[k] == ':' {
				objects[cur].Keys = append(objects[cur].Keys, doc[i:j])
			}
			i = j - 1
		}
	}

	// an unterminated trailing object runs to the end of the document
	if cur >= 0 {
		objects[cur].End = len(doc)
	}
	return objects
}

// skipString returns the index of the quote closing the literal opened at i.
func skipString(doc string, i int) int {
	quote := doc[i]
	for j := i + 1; j < len(doc); j++ {
		switch doc[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(doc) - 1
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
