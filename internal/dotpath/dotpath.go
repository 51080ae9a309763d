// Package dotpath models dot-notation key paths such as "server.tls.cert".
//
// Segments are plain object keys. There is no escaping: a key containing a
// literal dot cannot be addressed.
package dotpath

import (
	"slices"
	"strings"
)

// Separator joins path segments.
const Separator = "."

// Path is an ordered sequence of object keys from the document root.
type Path []string

// Split turns a query string into a Path. Segments are not trimmed and empty
// segments are kept, so the result always has at least one element.
func Split(query string) Path {
	return Path(strings.Split(query, Separator))
}

func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parents returns every segment except the last.
func (p Path) Parents() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns a new path with key appended. The receiver is never aliased.
func (p Path) Child(key string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, key)
}

// HasSuffix reports whether the trailing len(query) segments of p equal query.
// Comparison is exact and case-sensitive.
func (p Path) HasSuffix(query Path) bool {
	if len(query) > len(p) {
		return false
	}
	return slices.Equal(p[len(p)-len(query):], query)
}
