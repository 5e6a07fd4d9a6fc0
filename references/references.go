// Package references provides the Reference type representing a local
// JSON reference of the form `#/a/b/c` and its translation into a JSONPath
// expression evaluable against the raw document.
package references

import (
	"fmt"
	"strings"

	"github.com/oaskit/deref/errors"
)

// ErrUnsupportedRefFormat is returned for references that are not local to
// the document, such as URLs or file paths.
const ErrUnsupportedRefFormat = errors.Error("references must be in the same document and start with #")

// Reference is a local JSON reference of the form `#/a/b/c` identifying a
// node within the same document by path.
type Reference string

var _ fmt.Stringer = (*Reference)(nil)

// Validate checks that the reference is local. Only the leading `#` is
// validated; path segments are treated as opaque.
func (r Reference) Validate() error {
	if !strings.HasPrefix(string(r), "#") {
		return ErrUnsupportedRefFormat.Wrapf("found %q", string(r))
	}
	return nil
}

// Parts returns the slash-delimited path segments after the leading `#`.
// The root reference `#` yields no parts.
func (r Reference) Parts() ([]string, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(string(r), "#")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil, nil
	}

	return strings.Split(path, "/"), nil
}

// ToJSONPath translates the reference into a root-anchored JSONPath
// expression with one quoted name selector per segment, for example
// `#/components/schemas/pet` becomes `$['components']['schemas']['pet']`.
// Segments are not unescaped; they are quoted so characters such as `/` in
// path templates or `.` in names cannot be misread as JSONPath syntax.
func (r Reference) ToJSONPath() (string, error) {
	parts, err := r.Parts()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteByte('$')
	for _, part := range parts {
		sb.WriteString("['")
		sb.WriteString(escapeSelector(part))
		sb.WriteString("']")
	}
	return sb.String(), nil
}

func (r Reference) String() string {
	return string(r)
}

func escapeSelector(segment string) string {
	segment = strings.ReplaceAll(segment, `\`, `\\`)
	return strings.ReplaceAll(segment, `'`, `\'`)
}
