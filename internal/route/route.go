// Package route models route templates declared alongside handler methods.
//
// A template is a `/`-separated path in which a segment prefixed with `:`
// is a named parameter and every other segment is a literal. Routes are
// parsed once per method and immutable afterwards.
package route

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sdkwire/sdkwire/internal/errors"
)

// SegmentKind represents the kind of a single route segment
type SegmentKind int

const (
	LiteralSegment SegmentKind = iota
	ParamSegment
)

// Segment represents a single part of a route template
type Segment struct {
	Kind  SegmentKind
	Value string // literal text, or the parameter name without its marker
}

// Route is an immutable, parsed route template
type Route struct {
	Segments []Segment
}

// routeLexer tokenizes a template so unsupported URL features surface as
// their own token instead of disappearing into a literal.
var routeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Slash", Pattern: `/`},
	{Name: "Marker", Pattern: `:`},
	{Name: "Unsupported", Pattern: `[*?()+]`},
	{Name: "Text", Pattern: `[^/:*?()+]+`},
})

var routeSymbols = routeLexer.Symbols()

var paramNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse parses a route template into a Route.
//
// A valid template is either empty or starts with "/". It fails with a
// RouteFormatError when the template contains unsupported URL features
// (wildcards, regex segments, optional-segment syntax), empty segments,
// or two parameter segments sharing a name.
func Parse(template string) (Route, error) {
	if template == "" {
		return Route{}, nil
	}
	if !strings.HasPrefix(template, "/") {
		return Route{}, errors.Newf(errors.RouteFormatErrorCode,
			"route template %q must start with '/'", template)
	}

	lx, err := routeLexer.LexString("route", template)
	if err != nil {
		return Route{}, errors.Wrapf(errors.RouteFormatErrorCode, err,
			"route template %q could not be tokenized", template)
	}

	var (
		segments  []Segment
		seenNames = make(map[string]struct{})
		// raw token runs for the segment currently being assembled
		current   []lexer.Token
	)

	flush := func() error {
		if len(current) == 0 {
			return errors.Newf(errors.RouteFormatErrorCode,
				"route template %q contains an empty segment", template)
		}
		seg, err := assembleSegment(template, current)
		if err != nil {
			return err
		}
		if seg.Kind == ParamSegment {
			if _, dup := seenNames[seg.Value]; dup {
				return errors.Newf(errors.RouteFormatErrorCode,
					"route template %q declares parameter %q twice", template, seg.Value).
					WithSuggestion("Give each route parameter a unique name")
			}
			seenNames[seg.Value] = struct{}{}
		}
		segments = append(segments, seg)
		current = current[:0]
		return nil
	}

	first := true
	for {
		tok, err := lx.Next()
		if err != nil {
			return Route{}, errors.Wrapf(errors.RouteFormatErrorCode, err,
				"route template %q could not be tokenized", template)
		}
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case routeSymbols["Slash"]:
			if first {
				first = false
				continue
			}
			if err := flush(); err != nil {
				return Route{}, err
			}
		case routeSymbols["Unsupported"]:
			return Route{}, errors.Newf(errors.RouteFormatErrorCode,
				"route template %q uses unsupported URL syntax %q", template, tok.Value).
				WithSuggestion("Wildcards, regex segments and optional segments cannot be rendered into a client method")
		default:
			if first {
				// cannot happen: template starts with "/"
				return Route{}, errors.Internal("route lexer produced %q before the leading slash in %q", tok.Value, template)
			}
			current = append(current, tok)
		}
	}
	if err := flush(); err != nil {
		return Route{}, err
	}

	return Route{Segments: segments}, nil
}

// assembleSegment turns the token run between two slashes into a Segment
func assembleSegment(template string, toks []lexer.Token) (Segment, error) {
	if toks[0].Type == routeSymbols["Marker"] {
		if len(toks) != 2 || toks[1].Type != routeSymbols["Text"] {
			return Segment{}, errors.Newf(errors.RouteFormatErrorCode,
				"route template %q contains a malformed parameter segment", template)
		}
		name := toks[1].Value
		if !paramNamePattern.MatchString(name) {
			return Segment{}, errors.Newf(errors.RouteFormatErrorCode,
				"route template %q uses invalid parameter name %q", template, name)
		}
		return Segment{Kind: ParamSegment, Value: name}, nil
	}

	var b strings.Builder
	for _, tok := range toks {
		if tok.Type == routeSymbols["Marker"] {
			// a colon inside a literal segment is express-style regex syntax
			return Segment{}, errors.Newf(errors.RouteFormatErrorCode,
				"route template %q uses unsupported mid-segment ':'", template)
		}
		b.WriteString(tok.Value)
	}
	return Segment{Kind: LiteralSegment, Value: b.String()}, nil
}

// Unparse reconstructs the original template form, with parameter
// segments rendered with their ':' marker.
func (r Route) Unparse() string {
	if len(r.Segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range r.Segments {
		b.WriteByte('/')
		if seg.Kind == ParamSegment {
			b.WriteByte(':')
		}
		b.WriteString(seg.Value)
	}
	return b.String()
}

// ResolveWith renders the route by replacing every parameter segment with
// fn(name). It fails only when the Route value itself is malformed, which
// indicates a defect in the model builder rather than bad input.
func (r Route) ResolveWith(fn func(name string) string) (string, error) {
	if len(r.Segments) == 0 {
		return "/", nil
	}
	var b strings.Builder
	for _, seg := range r.Segments {
		b.WriteByte('/')
		switch seg.Kind {
		case LiteralSegment:
			b.WriteString(seg.Value)
		case ParamSegment:
			if seg.Value == "" {
				return "", errors.Internal("route contains a parameter segment without a name")
			}
			b.WriteString(fn(seg.Value))
		default:
			return "", errors.Internal("route contains a segment of unknown kind %d", seg.Kind)
		}
	}
	return b.String(), nil
}

// Params returns the parameter names in left-to-right occurrence order.
// The order decides the order of destructured bindings in generated code.
func (r Route) Params() []string {
	var names []string
	for _, seg := range r.Segments {
		if seg.Kind == ParamSegment {
			names = append(names, seg.Value)
		}
	}
	return names
}

// HasParam reports whether the route declares a parameter with this name
func (r Route) HasParam(name string) bool {
	for _, seg := range r.Segments {
		if seg.Kind == ParamSegment && seg.Value == name {
			return true
		}
	}
	return false
}
