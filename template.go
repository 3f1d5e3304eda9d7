package signpost

import (
	"fmt"
	"strings"

	"github.com/signpost-go/signpost/errors"
)

// TypeTag identifies the conversion applied to a path parameter value
// before it is handed back to the caller.
type TypeTag uint8

const (
	TypeString TypeTag = iota
	TypeInt
	TypeFloat
	TypeUUID

	// TypePath is the catch-all tag: it consumes the remainder of the
	// request path, slashes included, and must be the final segment of
	// its template.
	TypePath
)

var typeTagNames = map[TypeTag]string{
	TypeString: "str",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeUUID:   "uuid",
	TypePath:   "path",
}

var typeTagsByName = map[string]TypeTag{
	"str":   TypeString,
	"int":   TypeInt,
	"float": TypeFloat,
	"uuid":  TypeUUID,
	"path":  TypePath,
}

func (t TypeTag) String() string {
	if name, ok := typeTagNames[t]; ok {
		return name
	}
	return "unknown"
}

// PathSegment is one parsed element of a route template: either a literal
// segment or a typed parameter placeholder.
type PathSegment struct {
	Literal string
	Name    string
	Type    TypeTag
	IsParam bool
}

// RouteTemplate is the parsed, normalized form of a registered path
// such as "/users/{id:int}/posts/{slug:str}". Immutable once parsed.
type RouteTemplate struct {
	raw      string
	segments []PathSegment
	names    []string
}

// Raw returns the normalized template string.
func (rt *RouteTemplate) Raw() string { return rt.raw }

// Segments returns the ordered parsed segments.
func (rt *RouteTemplate) Segments() []PathSegment { return rt.segments }

// ParamNames returns the parameter names in template order.
func (rt *RouteTemplate) ParamNames() []string { return rt.names }

// HasParams reports whether any segment is a parameter.
func (rt *RouteTemplate) HasParams() bool { return len(rt.names) > 0 }

// IsCatchAll reports whether the template terminates in a path-typed
// parameter.
func (rt *RouteTemplate) IsCatchAll() bool {
	if len(rt.segments) == 0 {
		return false
	}
	last := rt.segments[len(rt.segments)-1]
	return last.IsParam && last.Type == TypePath
}

// String reconstructs the normalized "{name:type}" form of the template.
// ParseTemplate(rt.String()) yields an equal template.
func (rt *RouteTemplate) String() string {
	if len(rt.segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for pos := range rt.segments {
		b.WriteByte('/')
		if rt.segments[pos].IsParam {
			b.WriteByte('{')
			b.WriteString(rt.segments[pos].Name)
			b.WriteByte(':')
			b.WriteString(rt.segments[pos].Type.String())
			b.WriteByte('}')
		} else {
			b.WriteString(rt.segments[pos].Literal)
		}
	}
	return b.String()
}

// NormalizePath collapses consecutive slashes and normalizes a path to
// exactly one leading slash and no trailing slash. The root stays "/".
func NormalizePath(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// splitPath breaks a path into its non-empty segments, dropping leading,
// trailing and doubled slashes.
func splitPath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)

	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if start != i {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}

	return segments
}

// ParseTemplate parses a path template into a RouteTemplate. It fails with
// a malformed-path error when a "{...}" block is not exactly one
// colon-separated name/type pair, the type tag is unknown, the parameter
// name is empty or repeated, or a path-typed parameter is not the final
// segment. Parsing is pure: equal inputs yield equal templates.
func ParseTemplate(path string) (*RouteTemplate, error) {
	parts := splitPath(strings.TrimSpace(path))

	rt := &RouteTemplate{segments: make([]PathSegment, 0, len(parts))}
	seen := map[string]struct{}{}

	for pos, part := range parts {
		if part[0] != '{' && !strings.ContainsAny(part, "{}") {
			rt.segments = append(rt.segments, PathSegment{Literal: part})
			continue
		}

		if part[0] != '{' || part[len(part)-1] != '}' || strings.Count(part, "{") != 1 || strings.Count(part, "}") != 1 {
			return nil, malformed(path, fmt.Sprintf("invalid parameter segment %q", part))
		}

		inner := part[1 : len(part)-1]
		colon := strings.IndexByte(inner, ':')
		if colon < 0 || strings.IndexByte(inner[colon+1:], ':') >= 0 {
			return nil, malformed(path, fmt.Sprintf("parameter %q must be a single name:type pair", part))
		}

		name, tagName := inner[:colon], inner[colon+1:]
		if name == "" {
			return nil, malformed(path, fmt.Sprintf("parameter %q has an empty name", part))
		}

		tag, ok := typeTagsByName[tagName]
		if !ok {
			return nil, malformed(path, fmt.Sprintf("unknown type tag %q in %q", tagName, part))
		}

		if _, dup := seen[name]; dup {
			return nil, malformed(path, fmt.Sprintf("duplicate parameter name %q", name))
		}
		seen[name] = struct{}{}

		if tag == TypePath && pos != len(parts)-1 {
			return nil, malformed(path, fmt.Sprintf("catch-all parameter %q must be the final segment", name))
		}

		rt.segments = append(rt.segments, PathSegment{Name: name, Type: tag, IsParam: true})
		rt.names = append(rt.names, name)
	}

	rt.raw = rt.String()
	return rt, nil
}

func malformed(path, reason string) error {
	return errors.Wrap(errors.ErrorMalformedPath, fmt.Errorf("%s (template: %q)", reason, path))
}
